package handler

import (
	"context"

	"github.com/gofiber/fiber/v3"

	"seed_ledger/core/api/dto"
	models "seed_ledger/core/api/models/mongodb"
	"seed_ledger/core/api/services"
	"seed_ledger/core/logger"
	"seed_ledger/core/utility"
)

// LandHandler serves the tenant's field plots.
type LandHandler struct {
	BaseHandler
}

// NewLandHandler creates the handler.
func NewLandHandler() *LandHandler {
	return &LandHandler{}
}

func (h *LandHandler) landService(c fiber.Ctx) (*services.LandService, error) {
	db, err := h.TenantDB(c)
	if err != nil {
		return nil, err
	}
	return services.NewLandService(db), nil
}

// Create registers a plot.
// POST /api/v1/lands
func (h *LandHandler) Create(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		service, err := h.landService(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		var input dto.LandCreateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		land, err := service.Create(context.Background(), models.Land{
			Name:      input.Name,
			Longitude: input.Longitude,
			Latitude:  input.Latitude,
		})
		logger.LogCRUD("create", "land", land.ID.Hex(), err == nil, c, nil)
		h.HandleResponse(c, land, err)
		return nil
	})
}

// List pages through plots, optionally filtered by status.
// GET /api/v1/lands
func (h *LandHandler) List(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		service, err := h.landService(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		page, limit := h.ParsePagination(c)
		result, err := service.List(context.Background(), c.Query("status"), page, limit)
		h.HandleResponse(c, result, err)
		return nil
	})
}

// Update modifies a plot's name and coordinates.
// PUT /api/v1/lands/:id
func (h *LandHandler) Update(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		service, err := h.landService(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		id, err := utility.String2ObjectID(h.GetIDFromContext(c))
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		var input dto.LandUpdateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		land, err := service.Update(context.Background(), id, input.Name, input.Longitude, input.Latitude)
		logger.LogCRUD("update", "land", id.Hex(), err == nil, c, nil)
		h.HandleResponse(c, land, err)
		return nil
	})
}

// Delete removes an unused plot.
// DELETE /api/v1/lands/:id
func (h *LandHandler) Delete(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		service, err := h.landService(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		id, err := utility.String2ObjectID(h.GetIDFromContext(c))
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		err = service.Delete(context.Background(), id)
		logger.LogCRUD("delete", "land", id.Hex(), err == nil, c, nil)
		h.HandleResponse(c, nil, err)
		return nil
	})
}

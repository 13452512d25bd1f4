package handler

import (
	"context"

	"github.com/gofiber/fiber/v3"

	"seed_ledger/core/api/dto"
	"seed_ledger/core/api/services"
	"seed_ledger/core/logger"
	"seed_ledger/core/utility"
)

// EnterpriseHandler serves the platform-operator tenant directory.
type EnterpriseHandler struct {
	BaseHandler
	service *services.EnterpriseService
	regions *services.RegionTable
}

// NewEnterpriseHandler wires the handler to the enterprise service and
// the region lookup table.
func NewEnterpriseHandler(regions *services.RegionTable) (*EnterpriseHandler, error) {
	service, err := services.NewEnterpriseService()
	if err != nil {
		return nil, err
	}
	return &EnterpriseHandler{service: service, regions: regions}, nil
}

// Create registers a new enterprise and its root user.
// POST /api/v1/admin/enterprises
func (h *EnterpriseHandler) Create(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input dto.EnterpriseCreateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		enterprise, err := h.service.Create(context.Background(), services.EnterpriseInput{
			Name:        input.Name,
			PhoneNumber: input.PhoneNumber,
			Password:    input.Password,
			Address:     input.Address,
			RegionCodes: input.RegionCodes,
			StartDate:   input.StartDate,
			EndDate:     input.EndDate,
		})
		logger.LogCRUD("create", "enterprise", enterprise.ID.Hex(), err == nil, c, map[string]interface{}{
			"name": input.Name,
		})
		h.HandleResponse(c, enterprise, err)
		return nil
	})
}

// Update modifies a tenant profile.
// PUT /api/v1/admin/enterprises/:id
func (h *EnterpriseHandler) Update(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		id, err := utility.String2ObjectID(h.GetIDFromContext(c))
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		var input dto.EnterpriseUpdateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		enterprise, err := h.service.Update(context.Background(), id, services.EnterpriseInput{
			Name:        input.Name,
			PhoneNumber: input.PhoneNumber,
			Password:    input.Password,
			Address:     input.Address,
			RegionCodes: input.RegionCodes,
			StartDate:   input.StartDate,
			EndDate:     input.EndDate,
		})
		logger.LogCRUD("update", "enterprise", id.Hex(), err == nil, c, nil)
		h.HandleResponse(c, enterprise, err)
		return nil
	})
}

// FindByID returns one enterprise, with its region codes resolved to
// display names.
// GET /api/v1/admin/enterprises/:id
func (h *EnterpriseHandler) FindByID(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		id, err := utility.String2ObjectID(h.GetIDFromContext(c))
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		enterprise, err := h.service.FindByID(context.Background(), id)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		h.HandleResponse(c, fiber.Map{
			"enterprise":  enterprise,
			"regionNames": h.regions.CodesToNames(enterprise.RegionCodes),
		}, nil)
		return nil
	})
}

// List pages through enterprises.
// GET /api/v1/admin/enterprises
func (h *EnterpriseHandler) List(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		page, limit := h.ParsePagination(c)
		result, err := h.service.List(context.Background(), c.Query("keyword"), page, limit)
		h.HandleResponse(c, result, err)
		return nil
	})
}

// SetStatus enables or disables a tenant.
// PUT /api/v1/admin/enterprises/:id/status
func (h *EnterpriseHandler) SetStatus(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		id, err := utility.String2ObjectID(h.GetIDFromContext(c))
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		var input dto.EnterpriseStatusInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		enterprise, err := h.service.SetStatus(context.Background(), id, input.Status)
		logger.LogCRUD("update", "enterprise_status", id.Hex(), err == nil, c, map[string]interface{}{
			"status": input.Status,
		})
		h.HandleResponse(c, enterprise, err)
		return nil
	})
}

// Delete soft-deletes a tenant.
// DELETE /api/v1/admin/enterprises/:id
func (h *EnterpriseHandler) Delete(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		id, err := utility.String2ObjectID(h.GetIDFromContext(c))
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		err = h.service.Delete(context.Background(), id)
		logger.LogCRUD("delete", "enterprise", id.Hex(), err == nil, c, nil)
		h.HandleResponse(c, nil, err)
		return nil
	})
}

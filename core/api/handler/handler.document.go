package handler

import (
	"context"
	"encoding/json"

	"github.com/gofiber/fiber/v3"

	"seed_ledger/core/api/dto"
	"seed_ledger/core/common"
	models "seed_ledger/core/api/models/mongodb"
	"seed_ledger/core/api/services"
	"seed_ledger/core/logger"
	"seed_ledger/core/utility"
)

// DocumentHandler serves the tenant's documents: declaration, listing
// and lifecycle.
type DocumentHandler struct {
	BaseHandler
}

// NewDocumentHandler creates the handler; the document service itself
// is constructed per request from the bound tenant database.
func NewDocumentHandler() *DocumentHandler {
	return &DocumentHandler{}
}

// documentService binds the service to the request's tenant database.
func (h *DocumentHandler) documentService(c fiber.Ctx) (*services.DocumentService, error) {
	db, err := h.TenantDB(c)
	if err != nil {
		return nil, err
	}
	return services.NewDocumentService(db), nil
}

func toColumnSpecs(inputs []dto.ColumnSpecInput) []models.ColumnSpec {
	columns := make([]models.ColumnSpec, len(inputs))
	for i, in := range inputs {
		columns[i] = models.ColumnSpec{DataIndex: in.DataIndex, DataType: in.DataType}
	}
	return columns
}

// Create declares a new document.
// POST /api/v1/documents
func (h *DocumentHandler) Create(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		service, err := h.documentService(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		var input dto.DocumentCreateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		userID, _ := c.Locals("user_id").(string)
		doc, err := service.Create(context.Background(), models.Document{
			Name:         input.Name,
			StartDate:    input.StartDate,
			EndDate:      input.EndDate,
			LandID:       input.LandID,
			Columns:      toColumnSpecs(input.Columns),
			CreateUserID: userID,
		})
		logger.LogCRUD("create", "document", doc.ID.Hex(), err == nil, c, map[string]interface{}{
			"documentName": input.Name,
		})
		h.HandleResponse(c, doc, err)
		return nil
	})
}

// Update replaces a document's profile and column configuration. The
// response carries the advisory migration diff when the configuration
// changed.
// PUT /api/v1/documents/:id
func (h *DocumentHandler) Update(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		service, err := h.documentService(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		id, err := utility.String2ObjectID(h.GetIDFromContext(c))
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		var input dto.DocumentUpdateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		userID, _ := c.Locals("user_id").(string)
		doc, diff, err := service.Update(context.Background(), id, models.Document{
			Name:         input.Name,
			StartDate:    input.StartDate,
			EndDate:      input.EndDate,
			LandID:       input.LandID,
			Columns:      toColumnSpecs(input.Columns),
			UpdateUserID: userID,
		})
		logger.LogCRUD("update", "document", id.Hex(), err == nil, c, map[string]interface{}{
			"diffEntries": len(diff),
		})
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		h.HandleResponse(c, fiber.Map{
			"document": doc,
			"diff":     diff,
		}, nil)
		return nil
	})
}

// FindByID returns one document.
// GET /api/v1/documents/:id
func (h *DocumentHandler) FindByID(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		service, err := h.documentService(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		id, err := utility.String2ObjectID(h.GetIDFromContext(c))
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		doc, err := service.FindByID(context.Background(), id)
		h.HandleResponse(c, doc, err)
		return nil
	})
}

// List pages through the tenant's documents with the optional date,
// plot and name filters.
// GET /api/v1/documents
func (h *DocumentHandler) List(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		service, err := h.documentService(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		page, limit := h.ParsePagination(c)
		result, err := service.List(context.Background(), services.DocumentListFilter{
			StartDate: c.Query("start_date"),
			EndDate:   c.Query("end_date"),
			LandID:    c.Query("land_id"),
			Keyword:   c.Query("keyword"),
		}, page, limit)
		h.HandleResponse(c, result, err)
		return nil
	})
}

// Delete removes a document. Its rows stay in place until the record
// drop endpoint is called.
// DELETE /api/v1/documents/:id
func (h *DocumentHandler) Delete(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		service, err := h.documentService(c)
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
		logger.LogCRUD("delete", "document", id.Hex(), err == nil, c, nil)
		h.HandleResponse(c, nil, err)
		return nil
	})
}

// Migrate applies a previously returned migration diff to the
// document's stored rows.
// POST /api/v1/documents/:id/migrate
func (h *DocumentHandler) Migrate(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		service, err := h.documentService(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		id, err := utility.String2ObjectID(h.GetIDFromContext(c))
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		var diff []models.SchemaDiffEntry
		if err := json.Unmarshal(c.Body(), &diff); err != nil {
			h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationFormat, common.MsgValidationError, common.StatusBadRequest, err.Error()))
			return nil
		}
		doc, err := service.FindByID(context.Background(), id)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		err = service.Records(doc).MigrateSchema(context.Background(), diff)
		logger.LogCRUD("update", "document_migration", id.Hex(), err == nil, c, map[string]interface{}{
			"diffEntries": len(diff),
		})
		h.HandleResponse(c, nil, err)
		return nil
	})
}

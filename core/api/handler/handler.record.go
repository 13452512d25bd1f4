package handler

import (
	"context"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"seed_ledger/core/api/dto"
	"seed_ledger/core/api/services"
	"seed_ledger/core/logger"
	"seed_ledger/core/utility"
)

// RecordHandler serves the rows of one document. Routes are nested
// under /documents/:docId/records; every request re-reads the document
// so the schema checks always run against the current configuration.
type RecordHandler struct {
	BaseHandler
}

// NewRecordHandler creates the handler.
func NewRecordHandler() *RecordHandler {
	return &RecordHandler{}
}

// recordService resolves the document in the URI and binds its record
// store.
func (h *RecordHandler) recordService(c fiber.Ctx) (*services.RecordService, primitive.ObjectID, error) {
	db, err := h.TenantDB(c)
	if err != nil {
		return nil, primitive.NilObjectID, err
	}
	docID, err := utility.String2ObjectID(c.Params("docId"))
	if err != nil {
		return nil, primitive.NilObjectID, err
	}
	doc, err := services.NewDocumentService(db).FindByID(context.Background(), docID)
	if err != nil {
		return nil, primitive.NilObjectID, err
	}
	return services.NewRecordService(db, doc), docID, nil
}

// Create stores one row.
// POST /api/v1/documents/:docId/records
func (h *RecordHandler) Create(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		service, docID, err := h.recordService(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		var input dto.RecordInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		row, err := service.Create(context.Background(), input.Values)
		logger.LogCRUD("create", "record", docID.Hex(), err == nil, c, nil)
		h.HandleResponse(c, row, err)
		return nil
	})
}

// FindByID returns one row in display form.
// GET /api/v1/documents/:docId/records/:id
func (h *RecordHandler) FindByID(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		service, _, err := h.recordService(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		id, err := utility.String2ObjectID(h.GetIDFromContext(c))
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		row, err := service.FindByID(context.Background(), id)
		h.HandleResponse(c, row, err)
		return nil
	})
}

// Update replaces the values of one row.
// PUT /api/v1/documents/:docId/records/:id
func (h *RecordHandler) Update(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		service, docID, err := h.recordService(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		id, err := utility.String2ObjectID(h.GetIDFromContext(c))
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		var input dto.RecordInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		row, err := service.Update(context.Background(), id, input.Values)
		logger.LogCRUD("update", "record", docID.Hex(), err == nil, c, nil)
		h.HandleResponse(c, row, err)
		return nil
	})
}

// Delete removes one row.
// DELETE /api/v1/documents/:docId/records/:id
func (h *RecordHandler) Delete(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		service, docID, err := h.recordService(c)
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
		logger.LogCRUD("delete", "record", docID.Hex(), err == nil, c, nil)
		h.HandleResponse(c, nil, err)
		return nil
	})
}

// List pages through the rows, optionally filtered by one declared
// column via search_key and search_value.
// GET /api/v1/documents/:docId/records
func (h *RecordHandler) List(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		service, _, err := h.recordService(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		page, limit := h.ParsePagination(c)
		result, err := service.List(context.Background(), c.Query("search_key"), c.Query("search_value"), page, limit)
		h.HandleResponse(c, result, err)
		return nil
	})
}

// Import loads many rows at once, either appending to or replacing
// the existing ones.
// POST /api/v1/documents/:docId/records/import
func (h *RecordHandler) Import(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		service, docID, err := h.recordService(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		var input dto.RecordImportInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		inserted, err := service.ImportBulk(context.Background(), input.Rows, input.Mode)
		logger.LogCRUD("create", "record_import", docID.Hex(), err == nil, c, map[string]interface{}{
			"mode":          input.Mode,
			"insertedCount": inserted,
		})
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		h.HandleResponse(c, fiber.Map{"insertedCount": inserted}, nil)
		return nil
	})
}

// Export returns every row in display form.
// GET /api/v1/documents/:docId/records/export
func (h *RecordHandler) Export(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		service, _, err := h.recordService(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		rows, err := service.ExportAll(context.Background())
		h.HandleResponse(c, rows, err)
		return nil
	})
}

// DropAll destroys every row of the document. Deleting the document
// itself leaves its rows in place; this is the explicit destructive
// step.
// DELETE /api/v1/documents/:docId/records
func (h *RecordHandler) DropAll(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		service, docID, err := h.recordService(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		err = service.DropAll(context.Background())
		logger.LogCRUD("delete", "record_collection", docID.Hex(), err == nil, c, nil)
		h.HandleResponse(c, nil, err)
		return nil
	})
}

package handler

import (
	"mime"
	"path/filepath"
	"sync"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"seed_ledger/core/common"
	"seed_ledger/core/global"
	"seed_ledger/core/logger"
	"seed_ledger/core/storage"
)

// FileHandler serves uploaded attachments (record photos, QR code
// images) through the blob store.
type FileHandler struct {
	BaseHandler
	store storage.BlobStore

	initOnce sync.Once
	initErr  error
}

// NewFileHandler creates the handler. The blob store is opened lazily
// on first use so route registration never fails on a missing
// directory.
func NewFileHandler() *FileHandler {
	return &FileHandler{}
}

func (h *FileHandler) blobStore() (storage.BlobStore, error) {
	h.initOnce.Do(func() {
		cfg := global.ServerConfig
		store, err := storage.NewFileBlobStore(cfg.BlobStoreDir, cfg.BlobStoreBaseURL)
		if err != nil {
			h.initErr = common.NewError(common.ErrCodeInternalServer,
				"File storage is unavailable", common.StatusInternalServerError, err.Error())
			return
		}
		h.store = store
	})
	return h.store, h.initErr
}

// Upload stores the multipart "file" field and returns its public URL.
// POST /api/v1/files
func (h *FileHandler) Upload(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		store, err := h.blobStore()
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		fileHeader, err := c.FormFile("file")
		if err != nil {
			h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationInput,
				"Multipart field 'file' is required", common.StatusBadRequest, err.Error()))
			return nil
		}

		src, err := fileHeader.Open()
		if err != nil {
			h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationInput,
				"Uploaded file could not be read", common.StatusBadRequest, err.Error()))
			return nil
		}
		defer src.Close()

		// Stored name is server generated; the original name only
		// contributes its extension.
		name := primitive.NewObjectID().Hex() + filepath.Ext(fileHeader.Filename)
		url, err := store.Put(name, src)
		logger.LogCRUD("create", "file", name, err == nil, c, nil)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		h.HandleResponse(c, fiber.Map{
			"name": name,
			"url":  url,
			"size": fileHeader.Size,
		}, nil)
		return nil
	})
}

// Download streams a stored file back to the caller.
// GET /api/v1/files/:name
func (h *FileHandler) Download(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		store, err := h.blobStore()
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		name := c.Params("name")
		reader, err := store.Get(name)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		defer reader.Close()

		contentType := mime.TypeByExtension(filepath.Ext(name))
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		c.Set(fiber.HeaderContentType, contentType)
		return c.SendStream(reader)
	})
}

// Delete removes a stored file. Missing files are not an error.
// DELETE /api/v1/files/:name
func (h *FileHandler) Delete(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		store, err := h.blobStore()
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		name := c.Params("name")
		err = store.Delete(name)
		logger.LogCRUD("delete", "file", name, err == nil, c, nil)
		h.HandleResponse(c, nil, err)
		return nil
	})
}

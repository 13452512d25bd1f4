// Package handler contains the HTTP handlers. Handlers parse and
// validate input, call the services and render the shared response
// envelope; business rules live in the services.
package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"runtime/debug"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/mongo"

	models "seed_ledger/core/api/models/mongodb"
	"seed_ledger/core/common"
	"seed_ledger/core/global"
	"seed_ledger/core/logger"
)

// BaseHandler carries the request plumbing shared by every handler.
type BaseHandler struct{}

// JSONResponse writes a JSON body with an explicit UTF-8 charset so
// Chinese column names render correctly in every client.
func JSONResponse(c fiber.Ctx, statusCode int, data interface{}) error {
	c.Set("Content-Type", "application/json; charset=utf-8")
	return c.Status(statusCode).JSON(data)
}

// HandleResponse renders the uniform response envelope: the typed
// error's code and status when err is set, a success wrapper around
// data otherwise.
func (h *BaseHandler) HandleResponse(c fiber.Ctx, data interface{}, err error) {
	if err != nil {
		var customErr *common.Error
		if errors.As(err, &customErr) {
			JSONResponse(c, customErr.StatusCode, fiber.Map{
				"code":    customErr.Code.Code,
				"message": customErr.Message,
				"details": customErr.Details,
				"status":  "error",
			})
			return
		}
		JSONResponse(c, common.StatusInternalServerError, fiber.Map{
			"code":    common.ErrCodeInternalServer.Code,
			"message": err.Error(),
			"status":  "error",
		})
		return
	}

	JSONResponse(c, common.StatusOK, fiber.Map{
		"code":    common.StatusOK,
		"message": common.MsgSuccess,
		"data":    data,
		"status":  "success",
	})
}

// SafeHandler wraps a handler body with a recover so a panic still
// produces a response instead of a dropped connection.
func (h *BaseHandler) SafeHandler(c fiber.Ctx, fn func() error) error {
	defer func() {
		if r := recover(); r != nil {
			logger.GetErrorLogger().WithField("stack", string(debug.Stack())).
				Errorf("Recovered from handler panic: %v", r)
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeInternalServer,
				fmt.Sprintf("Unexpected server error: %v", r),
				common.StatusInternalServerError,
				nil,
			))
		}
	}()
	return fn()
}

// ParseRequestBody decodes the JSON body into input and validates it.
// Numbers decode as json.Number so large ids survive untouched.
func (h *BaseHandler) ParseRequestBody(c fiber.Ctx, input interface{}) error {
	decoder := json.NewDecoder(bytes.NewReader(c.Body()))
	decoder.UseNumber()
	if err := decoder.Decode(input); err != nil {
		return common.NewError(common.ErrCodeValidationFormat, common.MsgValidationError, common.StatusBadRequest, err.Error())
	}
	if err := global.Validate.Struct(input); err != nil {
		return common.NewError(common.ErrCodeValidationInput, common.MsgValidationError, common.StatusBadRequest, err.Error())
	}
	return nil
}

// ParsePagination reads page and limit from the query string. Page
// starts at 1; limit defaults to 10 and caps at 100.
func (h *BaseHandler) ParsePagination(c fiber.Ctx) (page int64, limit int64) {
	page, _ = strconv.ParseInt(c.Query("page", "1"), 10, 64)
	limit, _ = strconv.ParseInt(c.Query("limit", "10"), 10, 64)
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}

// GetIDFromContext returns the :id URI parameter.
func (h *BaseHandler) GetIDFromContext(c fiber.Ctx) string {
	return c.Params("id")
}

// TenantDB returns the tenant database the gateway bound to this
// request.
func (h *BaseHandler) TenantDB(c fiber.Ctx) (*mongo.Database, error) {
	db, ok := c.Locals("tenant_db").(*mongo.Database)
	if !ok || db == nil {
		return nil, common.NewError(common.ErrCodeInternalServer, "Request is not bound to a tenant database", common.StatusInternalServerError, nil)
	}
	return db, nil
}

// CurrentUser returns the authenticated enterprise user the gateway
// bound to this request.
func (h *BaseHandler) CurrentUser(c fiber.Ctx) (models.User, error) {
	user, ok := c.Locals("user").(models.User)
	if !ok {
		return models.User{}, common.ErrSubjectNotFound
	}
	return user, nil
}

package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"seed_ledger/core/api/dto"
	models "seed_ledger/core/api/models/mongodb"
	"seed_ledger/core/api/services"
	"seed_ledger/core/common"
	"seed_ledger/core/global"
	"seed_ledger/core/logger"
	"seed_ledger/core/utility"
)

// UserHandler manages the users of the caller's own enterprise.
type UserHandler struct {
	BaseHandler
	service *services.UserService
}

// NewUserHandler wires the handler to the user service.
func NewUserHandler() (*UserHandler, error) {
	tokens := services.NewTokenService(
		global.ServerConfig.JwtSecret,
		time.Duration(global.ServerConfig.TokenLifetime)*time.Hour,
	)
	service, err := services.NewUserService(tokens)
	if err != nil {
		return nil, err
	}
	return &UserHandler{service: service}, nil
}

// requireEnterpriseAdmin checks that the caller administers its
// enterprise.
func (h *UserHandler) requireEnterpriseAdmin(c fiber.Ctx) (models.User, error) {
	caller, err := h.CurrentUser(c)
	if err != nil {
		return models.User{}, err
	}
	if caller.Role != models.UserRoleAdmin {
		return models.User{}, common.NewError(common.ErrCodeAuthRole, "Only an enterprise admin can manage users", common.StatusForbidden, nil)
	}
	return caller, nil
}

// Create adds a user to the caller's enterprise.
// POST /api/v1/users
func (h *UserHandler) Create(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		caller, err := h.requireEnterpriseAdmin(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		var input dto.UserCreateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		user, err := h.service.Create(context.Background(), models.User{
			PhoneNumber:  input.PhoneNumber,
			Password:     input.Password,
			UserName:     input.UserName,
			Role:         input.Role,
			EnterpriseID: caller.EnterpriseID,
		})
		logger.LogCRUD("create", "user", user.ID.Hex(), err == nil, c, map[string]interface{}{
			"phoneNumber": input.PhoneNumber,
		})
		h.HandleResponse(c, user, err)
		return nil
	})
}

// List pages through the caller's enterprise users.
// GET /api/v1/users
func (h *UserHandler) List(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		caller, err := h.CurrentUser(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		page, limit := h.ParsePagination(c)
		result, err := h.service.ListByEnterprise(context.Background(), caller.EnterpriseID, page, limit)
		h.HandleResponse(c, result, err)
		return nil
	})
}

// Update modifies a user of the caller's enterprise.
// PUT /api/v1/users/:id
func (h *UserHandler) Update(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		caller, err := h.requireEnterpriseAdmin(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		id, err := utility.String2ObjectID(h.GetIDFromContext(c))
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.checkSameEnterprise(c, caller, id); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		var input dto.UserUpdateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		user, err := h.service.Update(context.Background(), id, input.UserName, input.Password, input.Role)
		logger.LogCRUD("update", "user", id.Hex(), err == nil, c, nil)
		h.HandleResponse(c, user, err)
		return nil
	})
}

// Delete removes a non-root user of the caller's enterprise.
// DELETE /api/v1/users/:id
func (h *UserHandler) Delete(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		caller, err := h.requireEnterpriseAdmin(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		id, err := utility.String2ObjectID(h.GetIDFromContext(c))
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.checkSameEnterprise(c, caller, id); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		err = h.service.Delete(context.Background(), id)
		logger.LogCRUD("delete", "user", id.Hex(), err == nil, c, nil)
		h.HandleResponse(c, nil, err)
		return nil
	})
}

// checkSameEnterprise rejects cross-tenant user management.
func (h *UserHandler) checkSameEnterprise(c fiber.Ctx, caller models.User, targetID primitive.ObjectID) error {
	target, err := h.service.FindByID(context.Background(), targetID)
	if err != nil {
		return err
	}
	if target.EnterpriseID != caller.EnterpriseID {
		return common.NewError(common.ErrCodeAuthRole, "User belongs to another enterprise", common.StatusForbidden, nil)
	}
	return nil
}

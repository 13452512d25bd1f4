package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"

	"seed_ledger/core/api/dto"
	"seed_ledger/core/api/services"
	"seed_ledger/core/global"
	"seed_ledger/core/logger"
)

// AuthHandler serves enterprise-user and platform-operator login.
type AuthHandler struct {
	BaseHandler
	userService  *services.UserService
	adminService *services.AdminService
}

// NewAuthHandler wires the handler to the auth services.
func NewAuthHandler() (*AuthHandler, error) {
	tokens := services.NewTokenService(
		global.ServerConfig.JwtSecret,
		time.Duration(global.ServerConfig.TokenLifetime)*time.Hour,
	)
	userService, err := services.NewUserService(tokens)
	if err != nil {
		return nil, err
	}
	adminService, err := services.NewAdminService(tokens)
	if err != nil {
		return nil, err
	}
	return &AuthHandler{
		userService:  userService,
		adminService: adminService,
	}, nil
}

// Login authenticates an enterprise user.
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input dto.LoginInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		user, token, err := h.userService.Login(context.Background(), input.PhoneNumber, input.Password)
		logger.LogAuth("user_login", err == nil, c, map[string]interface{}{
			"phoneNumber": input.PhoneNumber,
		})
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		h.HandleResponse(c, dto.LoginResult{
			Token:    token,
			UserName: user.UserName,
			Role:     user.Role,
			Profile:  user,
		}, nil)
		return nil
	})
}

// Profile returns the authenticated user bound by the tenant gateway.
// GET /api/v1/auth/profile
func (h *AuthHandler) Profile(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		user, err := h.CurrentUser(c)
		h.HandleResponse(c, user, err)
		return nil
	})
}

// AdminLogin authenticates a platform operator.
// POST /api/v1/auth/admin/login
func (h *AuthHandler) AdminLogin(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input dto.LoginInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		admin, token, err := h.adminService.Login(context.Background(), input.PhoneNumber, input.Password)
		logger.LogAuth("admin_login", err == nil, c, map[string]interface{}{
			"phoneNumber": input.PhoneNumber,
		})
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		h.HandleResponse(c, dto.LoginResult{
			Token:    token,
			UserName: admin.UserName,
		}, nil)
		return nil
	})
}

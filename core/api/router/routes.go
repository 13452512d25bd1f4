// Package router wires the HTTP routes to their handlers and
// middleware.
//
// Middleware registration note: in Fiber v3 passing a middleware
// inline to router.Get(path, middleware, handler) does not invoke it.
// Every guarded route therefore goes through
// registerRouteWithMiddleware, which creates a group and attaches the
// middleware with .Use().
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	"seed_ledger/core/api/handler"
	"seed_ledger/core/api/middleware"
	"seed_ledger/core/api/services"
)

// RoutePrefix holds the base API prefixes.
type RoutePrefix struct {
	Base string // /api
	V1   string // /api/v1
}

// NewRoutePrefix returns the default prefixes.
func NewRoutePrefix() RoutePrefix {
	base := "/api"
	return RoutePrefix{
		Base: base,
		V1:   base + "/v1",
	}
}

// registerRouteWithMiddleware registers one route behind a middleware
// chain using a group and .Use(), the only registration form that
// reliably invokes middleware under Fiber v3.
func registerRouteWithMiddleware(router fiber.Router, prefix string, method string, path string, middlewares []fiber.Handler, h fiber.Handler) {
	routeGroup := router.Group(prefix)
	for _, mw := range middlewares {
		routeGroup.Use(mw)
	}

	switch method {
	case "GET":
		routeGroup.Get(path, h)
	case "POST":
		routeGroup.Post(path, h)
	case "PUT":
		routeGroup.Put(path, h)
	case "DELETE":
		routeGroup.Delete(path, h)
	}
}

func registerAuthRoutes(v1 fiber.Router) error {
	authHandler, err := handler.NewAuthHandler()
	if err != nil {
		return err
	}

	auth := v1.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/admin/login", authHandler.AdminLogin)

	tenantMW := []fiber.Handler{middleware.TenantMiddleware()}
	registerRouteWithMiddleware(v1, "/auth", "GET", "/profile", tenantMW, authHandler.Profile)
	return nil
}

func registerAdminRoutes(v1 fiber.Router, regions *services.RegionTable) error {
	enterpriseHandler, err := handler.NewEnterpriseHandler(regions)
	if err != nil {
		return err
	}

	adminMW := []fiber.Handler{middleware.AdminMiddleware()}
	registerRouteWithMiddleware(v1, "/admin/enterprises", "POST", "/", adminMW, enterpriseHandler.Create)
	registerRouteWithMiddleware(v1, "/admin/enterprises", "GET", "/", adminMW, enterpriseHandler.List)
	registerRouteWithMiddleware(v1, "/admin/enterprises", "GET", "/:id", adminMW, enterpriseHandler.FindByID)
	registerRouteWithMiddleware(v1, "/admin/enterprises", "PUT", "/:id", adminMW, enterpriseHandler.Update)
	registerRouteWithMiddleware(v1, "/admin/enterprises", "PUT", "/:id/status", adminMW, enterpriseHandler.SetStatus)
	registerRouteWithMiddleware(v1, "/admin/enterprises", "DELETE", "/:id", adminMW, enterpriseHandler.Delete)
	return nil
}

func registerUserRoutes(v1 fiber.Router) error {
	userHandler, err := handler.NewUserHandler()
	if err != nil {
		return err
	}

	tenantMW := []fiber.Handler{middleware.TenantMiddleware()}
	registerRouteWithMiddleware(v1, "/users", "POST", "/", tenantMW, userHandler.Create)
	registerRouteWithMiddleware(v1, "/users", "GET", "/", tenantMW, userHandler.List)
	registerRouteWithMiddleware(v1, "/users", "PUT", "/:id", tenantMW, userHandler.Update)
	registerRouteWithMiddleware(v1, "/users", "DELETE", "/:id", tenantMW, userHandler.Delete)
	return nil
}

func registerDocumentRoutes(v1 fiber.Router) error {
	documentHandler := handler.NewDocumentHandler()
	recordHandler := handler.NewRecordHandler()

	tenantMW := []fiber.Handler{middleware.TenantMiddleware()}
	registerRouteWithMiddleware(v1, "/documents", "POST", "/", tenantMW, documentHandler.Create)
	registerRouteWithMiddleware(v1, "/documents", "GET", "/", tenantMW, documentHandler.List)
	registerRouteWithMiddleware(v1, "/documents", "GET", "/:id", tenantMW, documentHandler.FindByID)
	registerRouteWithMiddleware(v1, "/documents", "PUT", "/:id", tenantMW, documentHandler.Update)
	registerRouteWithMiddleware(v1, "/documents", "DELETE", "/:id", tenantMW, documentHandler.Delete)
	registerRouteWithMiddleware(v1, "/documents", "POST", "/:id/migrate", tenantMW, documentHandler.Migrate)

	// Record rows, nested under their document. The export and import
	// paths come before /:id so they are not swallowed by the param
	// route.
	registerRouteWithMiddleware(v1, "/documents/:docId/records", "GET", "/export", tenantMW, recordHandler.Export)
	registerRouteWithMiddleware(v1, "/documents/:docId/records", "POST", "/import", tenantMW, recordHandler.Import)
	registerRouteWithMiddleware(v1, "/documents/:docId/records", "DELETE", "/", tenantMW, recordHandler.DropAll)
	registerRouteWithMiddleware(v1, "/documents/:docId/records", "POST", "/", tenantMW, recordHandler.Create)
	registerRouteWithMiddleware(v1, "/documents/:docId/records", "GET", "/", tenantMW, recordHandler.List)
	registerRouteWithMiddleware(v1, "/documents/:docId/records", "GET", "/:id", tenantMW, recordHandler.FindByID)
	registerRouteWithMiddleware(v1, "/documents/:docId/records", "PUT", "/:id", tenantMW, recordHandler.Update)
	registerRouteWithMiddleware(v1, "/documents/:docId/records", "DELETE", "/:id", tenantMW, recordHandler.Delete)
	return nil
}

func registerLandRoutes(v1 fiber.Router) error {
	landHandler := handler.NewLandHandler()

	tenantMW := []fiber.Handler{middleware.TenantMiddleware()}
	registerRouteWithMiddleware(v1, "/lands", "POST", "/", tenantMW, landHandler.Create)
	registerRouteWithMiddleware(v1, "/lands", "GET", "/", tenantMW, landHandler.List)
	registerRouteWithMiddleware(v1, "/lands", "PUT", "/:id", tenantMW, landHandler.Update)
	registerRouteWithMiddleware(v1, "/lands", "DELETE", "/:id", tenantMW, landHandler.Delete)
	return nil
}

func registerFileRoutes(v1 fiber.Router) error {
	fileHandler := handler.NewFileHandler()

	tenantMW := []fiber.Handler{middleware.TenantMiddleware()}
	registerRouteWithMiddleware(v1, "/files", "POST", "/", tenantMW, fileHandler.Upload)
	registerRouteWithMiddleware(v1, "/files", "GET", "/:name", tenantMW, fileHandler.Download)
	registerRouteWithMiddleware(v1, "/files", "DELETE", "/:name", tenantMW, fileHandler.Delete)
	return nil
}

func registerRegionRoutes(v1 fiber.Router, regions *services.RegionTable) error {
	regionHandler := handler.NewRegionHandler(regions)

	regionGroup := v1.Group("/regions")
	regionGroup.Get("/", regionHandler.Provinces)
	regionGroup.Get("/:code/children", regionHandler.Children)
	return nil
}

// SetupRoutes registers every route of the API under /api/v1.
func SetupRoutes(app *fiber.App, regions *services.RegionTable) error {
	prefix := NewRoutePrefix()
	v1 := app.Group(prefix.V1)

	if err := registerAuthRoutes(v1); err != nil {
		return fmt.Errorf("failed to register auth routes: %v", err)
	}
	if err := registerAdminRoutes(v1, regions); err != nil {
		return fmt.Errorf("failed to register admin routes: %v", err)
	}
	if err := registerUserRoutes(v1); err != nil {
		return fmt.Errorf("failed to register user routes: %v", err)
	}
	if err := registerDocumentRoutes(v1); err != nil {
		return fmt.Errorf("failed to register document routes: %v", err)
	}
	if err := registerLandRoutes(v1); err != nil {
		return fmt.Errorf("failed to register land routes: %v", err)
	}
	if err := registerFileRoutes(v1); err != nil {
		return fmt.Errorf("failed to register file routes: %v", err)
	}
	if err := registerRegionRoutes(v1, regions); err != nil {
		return fmt.Errorf("failed to register region routes: %v", err)
	}

	return nil
}

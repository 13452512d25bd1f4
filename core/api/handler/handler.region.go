package handler

import (
	"github.com/gofiber/fiber/v3"

	"seed_ledger/core/api/services"
)

// RegionHandler serves the read-only administrative-division lookups.
type RegionHandler struct {
	BaseHandler
	regions *services.RegionTable
}

// NewRegionHandler wires the handler to the loaded region table.
func NewRegionHandler(regions *services.RegionTable) *RegionHandler {
	return &RegionHandler{regions: regions}
}

// Provinces returns the top level of the division tree.
// GET /api/v1/regions
func (h *RegionHandler) Provinces(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		h.HandleResponse(c, h.regions.Provinces(), nil)
		return nil
	})
}

// Children returns the direct children of one division.
// GET /api/v1/regions/:code/children
func (h *RegionHandler) Children(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		children, err := h.regions.Children(c.Params("code"))
		h.HandleResponse(c, children, err)
		return nil
	})
}

package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/stock-ledger-api/internal/application/analytics"
	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
)

// DashboardHandler maneja los endpoints del módulo de Dashboard.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Overview devuelve el resumen general del inventario.
// GET /api/dashboard/overview
//
// Se recalcula en cada llamada a partir del catálogo y del libro mayor.
func (h *DashboardHandler) Overview(c *fiber.Ctx) error {
	out, err := h.uc.Overview(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.DataResponse{Envelope: ok("éxito"), Data: out})
}

// Alerts devuelve poco stock, agotados y próximos a vencer.
// GET /api/dashboard/alerts
func (h *DashboardHandler) Alerts(c *fiber.Ctx) error {
	out, err := h.uc.Alerts(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.DataResponse{Envelope: ok("éxito"), Data: out})
}

// TopProducts devuelve los productos con más stock.
// GET /api/dashboard/top-products?limit=10
func (h *DashboardHandler) TopProducts(c *fiber.Ctx) error {
	out, err := h.uc.TopProducts(c.UserContext(), c.QueryInt("limit", 10))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.DataResponse{Envelope: ok("éxito"), Data: out})
}

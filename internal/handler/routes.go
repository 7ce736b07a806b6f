package handler

import (
	"go-pos-ledger/internal/middleware"
	"go-pos-ledger/internal/session"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Session   *SessionHandler
	Inventory *InventoryHandler
	Sale      *SaleHandler
	Report    *ReportHandler
}

// RegisterRoutes mounts the API under router. Every route runs behind
// Serialize; all but POST /sessions need an open session.
func RegisterRoutes(router fiber.Router, h Handlers, registry *session.Registry) {
	api := router.Group("", middleware.Serialize())
	api.Post("/sessions", h.Session.Open)
	api.Delete("/sessions/:id", h.Session.Close)

	s := api.Group("", middleware.RequireSession(registry))
	s.Put("/sessions/mode", h.Session.SwitchMode)

	// Receiving
	s.Post("/receiving/scan", h.Inventory.ScanReceive)
	s.Post("/products", h.Inventory.RegisterProduct)
	s.Get("/products", h.Inventory.GetProducts)
	s.Get("/products/search", h.Inventory.SearchProducts)

	// Sale
	s.Get("/cart", h.Sale.GetCart)
	s.Post("/cart/scan", h.Sale.Scan)
	s.Put("/cart/lines/:barcode", h.Sale.SetQuantity)
	s.Delete("/cart/lines/:barcode", h.Sale.RemoveLine)
	s.Post("/cart/settle", h.Sale.Settle)

	// History
	s.Get("/reports/sales", h.Report.GetSales)
	s.Get("/reports/sales/export", h.Report.ExportSales)
}

package handler

import (
	"errors"
	"strings"

	"go-pos-ledger/internal/metrics"
	"go-pos-ledger/internal/service"

	"github.com/gofiber/fiber/v2"
)

type InventoryHandler struct {
	service service.InventoryService
}

func NewInventoryHandler(s service.InventoryService) *InventoryHandler {
	return &InventoryHandler{service: s}
}

// ScanReceive adds one unit of the scanned product. An unknown barcode is kept
// on the session as the pending registration and reported with 404.
func (h *InventoryHandler) ScanReceive(c *fiber.Ctx) error {
	var req scanRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON", "code": "invalid_input"})
	}

	s := currentSession(c)
	product, err := h.service.Receive(req.Barcode)
	if errors.Is(err, service.ErrUnknownBarcode) {
		metrics.ScansTotal.WithLabelValues("receive", "unknown").Inc()
		s.PendingBarcode = strings.TrimSpace(req.Barcode)
		return c.Status(404).JSON(fiber.Map{
			"error":   "Unknown barcode, register the product first",
			"code":    "unknown_barcode",
			"barcode": s.PendingBarcode,
		})
	}
	if err != nil {
		metrics.ScansTotal.WithLabelValues("receive", "error").Inc()
		return respondError(c, err)
	}

	metrics.ScansTotal.WithLabelValues("receive", "ok").Inc()
	return c.JSON(fiber.Map{"message": "Stock received", "data": product})
}

// RegisterProduct completes the registration form. The barcode falls back to
// the session's pending one, which is cleared on success.
func (h *InventoryHandler) RegisterProduct(c *fiber.Ctx) error {
	var req service.RegisterProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON", "code": "invalid_input"})
	}

	s := currentSession(c)
	if strings.TrimSpace(req.Barcode) == "" {
		req.Barcode = s.PendingBarcode
	}

	product, err := h.service.RegisterProduct(&req)
	if err != nil {
		return respondError(c, err)
	}
	if s.PendingBarcode == product.Barcode {
		s.PendingBarcode = ""
	}

	metrics.ProductsRegisteredTotal.Inc()
	return c.Status(201).JSON(fiber.Map{"message": "Product registered", "data": product})
}

func (h *InventoryHandler) GetProducts(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(products)
}

func (h *InventoryHandler) SearchProducts(c *fiber.Ctx) error {
	products, err := h.service.SearchProducts(c.Query("q"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(products)
}

package handler

import (
	"strings"

	"go-pos-ledger/internal/metrics"
	"go-pos-ledger/internal/model"
	"go-pos-ledger/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type SaleHandler struct {
	inventory service.InventoryService
	checkout  service.CheckoutService
}

func NewSaleHandler(inventory service.InventoryService, checkout service.CheckoutService) *SaleHandler {
	return &SaleHandler{inventory: inventory, checkout: checkout}
}

type cartLineView struct {
	model.CartLine
	Subtotal decimal.Decimal `json:"subtotal"`
	OnHand   int             `json:"on_hand"`
	Stale    bool            `json:"stale"`
}

type cartView struct {
	Lines []cartLineView  `json:"lines"`
	Total decimal.Decimal `json:"total"`
}

// view pairs each cart line with current on-hand stock. A line is stale when
// its reservation no longer fits, or its product left the catalog.
func (h *SaleHandler) view(cart *service.Cart) (*cartView, error) {
	products, err := h.inventory.GetAllProducts()
	if err != nil {
		return nil, err
	}
	onHand := make(map[string]int, len(products))
	for _, p := range products {
		if p.Barcode != "" {
			if _, seen := onHand[p.Barcode]; !seen {
				onHand[p.Barcode] = p.Quantity
			}
		}
	}

	v := &cartView{Lines: []cartLineView{}, Total: cart.Total()}
	for _, line := range cart.Lines() {
		qty, ok := onHand[line.Barcode]
		v.Lines = append(v.Lines, cartLineView{
			CartLine: line,
			Subtotal: line.Subtotal(),
			OnHand:   qty,
			Stale:    !ok || line.Quantity > qty,
		})
	}
	return v, nil
}

func (h *SaleHandler) respondCart(c *fiber.Ctx, message string) error {
	v, err := h.view(currentSession(c).Cart)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": message, "data": v})
}

func (h *SaleHandler) GetCart(c *fiber.Ctx) error {
	return h.respondCart(c, "Cart")
}

func (h *SaleHandler) Scan(c *fiber.Ctx) error {
	var req scanRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON", "code": "invalid_input"})
	}

	_, err := currentSession(c).Cart.AddOrIncrement(h.inventory, strings.TrimSpace(req.Barcode))
	if err != nil {
		_, code := errorStatus(err)
		metrics.ScansTotal.WithLabelValues("sale", code).Inc()
		return respondError(c, err)
	}
	metrics.ScansTotal.WithLabelValues("sale", "ok").Inc()
	return h.respondCart(c, "Item added")
}

func (h *SaleHandler) SetQuantity(c *fiber.Ctx) error {
	var req struct {
		Quantity *int `json:"quantity"`
	}
	if err := c.BodyParser(&req); err != nil || req.Quantity == nil {
		return c.Status(400).JSON(fiber.Map{"error": "Quantity is required", "code": "invalid_input"})
	}

	if _, err := currentSession(c).Cart.SetQuantity(h.inventory, c.Params("barcode"), *req.Quantity); err != nil {
		return respondError(c, err)
	}
	return h.respondCart(c, "Quantity updated")
}

func (h *SaleHandler) RemoveLine(c *fiber.Ctx) error {
	currentSession(c).Cart.Remove(c.Params("barcode"))
	return h.respondCart(c, "Item removed")
}

// Settle records the sale and takes the stock off the catalog. The cart is
// emptied whatever the outcome.
func (h *SaleHandler) Settle(c *fiber.Ctx) error {
	receipt, err := h.checkout.Settle(currentSession(c).Cart)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Sale settled", "data": receipt})
}

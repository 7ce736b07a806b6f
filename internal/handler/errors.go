package handler

import (
	"errors"

	"go-pos-ledger/internal/middleware"
	"go-pos-ledger/internal/service"
	"go-pos-ledger/internal/session"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// errorStatus maps domain errors to an HTTP status and a stable code for clients.
func errorStatus(err error) (int, string) {
	var exceeded *service.StockExceededError
	var insufficient *service.InsufficientStockError
	switch {
	case errors.As(err, &exceeded), errors.Is(err, service.ErrStockExceeded):
		return 409, "stock_exceeded"
	case errors.As(err, &insufficient), errors.Is(err, service.ErrInsufficientStock):
		return 409, "insufficient_stock"
	case errors.Is(err, service.ErrUnknownBarcode):
		return 404, "unknown_barcode"
	case errors.Is(err, service.ErrProductNotFound):
		return 404, "product_not_found"
	case errors.Is(err, service.ErrCartLineNotFound):
		return 404, "cart_line_not_found"
	case errors.Is(err, service.ErrProductVanished):
		return 409, "product_vanished"
	case errors.Is(err, service.ErrDuplicateBarcode):
		return 409, "duplicate_barcode"
	case errors.Is(err, service.ErrEmptyCart):
		return 400, "empty_cart"
	case errors.Is(err, service.ErrInvalidQuantity):
		return 400, "invalid_quantity"
	case errors.Is(err, service.ErrInvalidInput):
		return 400, "invalid_input"
	case errors.Is(err, service.ErrNoSalesData):
		return 404, "no_sales_data"
	case errors.Is(err, service.ErrNoSalesInRange):
		return 404, "no_sales_in_range"
	case errors.Is(err, session.ErrSessionNotFound):
		return 404, "session_not_found"
	}
	return 500, "internal_error"
}

func respondError(c *fiber.Ctx, err error) error {
	status, code := errorStatus(err)
	body := fiber.Map{"error": err.Error(), "code": code}

	var exceeded *service.StockExceededError
	if errors.As(err, &exceeded) {
		body["available"] = exceeded.Available
		body["reserved"] = exceeded.Reserved
	}
	var insufficient *service.InsufficientStockError
	if errors.As(err, &insufficient) {
		body["available"] = insufficient.Available
		body["requested"] = insufficient.Requested
	}
	var vanished *service.ProductVanishedError
	if errors.As(err, &vanished) {
		body["barcode"] = vanished.Barcode
	}

	if status == 500 {
		zap.L().Error("request failed",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		body["error"] = "Internal server error"
	}
	return c.Status(status).JSON(body)
}

func currentSession(c *fiber.Ctx) *session.Session {
	return c.Locals(middleware.SessionKey).(*session.Session)
}

type scanRequest struct {
	Barcode string `json:"barcode"`
}

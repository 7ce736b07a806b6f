package service

import (
	"errors"
	"fmt"
)

// Error definitions
var (
	ErrUnknownBarcode    = errors.New("unknown barcode")
	ErrInvalidInput      = errors.New("invalid input")
	ErrInvalidQuantity   = errors.New("invalid quantity")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrProductNotFound   = errors.New("product not found")
	ErrDuplicateBarcode  = errors.New("barcode already registered")
	ErrStockExceeded     = errors.New("stock exceeded")
	ErrCartLineNotFound  = errors.New("barcode not in cart")
	ErrEmptyCart         = errors.New("cart is empty")
	ErrProductVanished   = errors.New("product no longer in catalog")
	ErrNoSalesData       = errors.New("no sales recorded")
	ErrNoSalesInRange    = errors.New("no sales in selected period")
)

// StockExceededError reports a reservation that would go past on-hand stock.
type StockExceededError struct {
	Barcode   string
	Available int
	Reserved  int
}

func (e *StockExceededError) Error() string {
	return fmt.Sprintf("stock exceeded for %s: available %d, already reserved %d", e.Barcode, e.Available, e.Reserved)
}

func (e *StockExceededError) Is(target error) bool {
	return target == ErrStockExceeded
}

// InsufficientStockError reports a decrement larger than on-hand stock.
type InsufficientStockError struct {
	Barcode   string
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: available %d, requested %d", e.Barcode, e.Available, e.Requested)
}

func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

// ProductVanishedError reports a cart line whose product left the catalog before settlement.
type ProductVanishedError struct {
	Barcode string
}

func (e *ProductVanishedError) Error() string {
	return fmt.Sprintf("product %s no longer in catalog", e.Barcode)
}

func (e *ProductVanishedError) Is(target error) bool {
	return target == ErrProductVanished
}

func invalidInput(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

package service

import (
	"fmt"
	"strings"

	"go-pos-ledger/internal/model"

	"github.com/shopspring/decimal"
)

// Cart holds the reservations of one in-progress sale. Every mutation is checked
// against the catalog's on-hand figure at that moment, not a value cached when
// the line was created. A Cart is owned by a single session and is not safe for
// concurrent use.
type Cart struct {
	lines map[string]*model.CartLine
	order []string
}

func NewCart() *Cart {
	return &Cart{lines: make(map[string]*model.CartLine)}
}

// Reserved returns the quantity currently held for barcode.
func (c *Cart) Reserved(barcode string) int {
	if line, ok := c.lines[barcode]; ok {
		return line.Quantity
	}
	return 0
}

// AddOrIncrement reserves one more unit of barcode.
func (c *Cart) AddOrIncrement(lookup ProductLookup, barcode string) (model.CartLine, error) {
	barcode = strings.TrimSpace(barcode)
	if barcode == "" {
		return model.CartLine{}, invalidInput("barcode is required")
	}

	product, err := lookup.FindByBarcode(barcode)
	if err != nil {
		return model.CartLine{}, err
	}

	reserved := c.Reserved(barcode)
	requested := reserved + 1
	if requested > product.Quantity {
		return model.CartLine{}, &StockExceededError{Barcode: barcode, Available: product.Quantity, Reserved: reserved}
	}

	return c.put(product, requested), nil
}

// SetQuantity replaces the reserved quantity of a line already in the cart.
// Zero keeps the line with nothing reserved; use Remove to drop it.
func (c *Cart) SetQuantity(lookup ProductLookup, barcode string, quantity int) (model.CartLine, error) {
	barcode = strings.TrimSpace(barcode)
	if _, ok := c.lines[barcode]; !ok {
		return model.CartLine{}, fmt.Errorf("%w: %s", ErrCartLineNotFound, barcode)
	}
	if quantity < 0 {
		return model.CartLine{}, fmt.Errorf("%w: %d is negative", ErrInvalidQuantity, quantity)
	}

	product, err := lookup.FindByBarcode(barcode)
	if err != nil {
		return model.CartLine{}, err
	}
	if quantity > product.Quantity {
		return model.CartLine{}, fmt.Errorf("%w: %d exceeds on-hand %d", ErrInvalidQuantity, quantity, product.Quantity)
	}

	return c.put(product, quantity), nil
}

// Remove drops the line for barcode; absent barcodes are ignored.
func (c *Cart) Remove(barcode string) {
	barcode = strings.TrimSpace(barcode)
	if _, ok := c.lines[barcode]; !ok {
		return
	}
	delete(c.lines, barcode)
	for i, b := range c.order {
		if b == barcode {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// Lines returns copies of the lines in the order they were first added.
func (c *Cart) Lines() []model.CartLine {
	lines := make([]model.CartLine, 0, len(c.order))
	for _, barcode := range c.order {
		lines = append(lines, *c.lines[barcode])
	}
	return lines
}

// Total is the sum of snapshot price times quantity over all lines.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range c.lines {
		total = total.Add(line.Subtotal())
	}
	return total
}

func (c *Cart) Len() int {
	return len(c.lines)
}

func (c *Cart) Clear() {
	c.lines = make(map[string]*model.CartLine)
	c.order = nil
}

func (c *Cart) put(product *model.Product, quantity int) model.CartLine {
	line, ok := c.lines[product.Barcode]
	if !ok {
		line = &model.CartLine{Barcode: product.Barcode}
		c.lines[product.Barcode] = line
		c.order = append(c.order, product.Barcode)
	}
	line.Quantity = quantity
	line.Name = product.Name
	line.SalePrice = product.SalePrice
	line.CostPrice = product.CostPrice
	return *line
}


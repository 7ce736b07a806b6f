package service

import (
	"errors"
	"math/rand"
	"testing"

	"go-pos-ledger/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartReservationScenario(t *testing.T) {
	catalog := &memCatalog{products: []model.Product{product("123", 5, 10, 6)}}
	inventory := NewInventoryService(catalog, nil, nil, nil)
	cart := NewCart()

	for i := 0; i < 3; i++ {
		_, err := cart.AddOrIncrement(inventory, "123")
		require.NoError(t, err)
	}
	assert.Equal(t, 3, cart.Reserved("123"))

	line, err := cart.SetQuantity(inventory, "123", 5)
	require.NoError(t, err)
	assert.Equal(t, 5, line.Quantity)

	_, err = cart.AddOrIncrement(inventory, "123")
	var exceeded *StockExceededError
	require.True(t, errors.As(err, &exceeded))
	assert.ErrorIs(t, err, ErrStockExceeded)
	assert.Equal(t, 5, exceeded.Available)
	assert.Equal(t, 5, exceeded.Reserved)
	assert.Equal(t, 5, cart.Reserved("123"))

	// the cart never writes to the catalog
	assert.Equal(t, 0, catalog.saves)
}

func TestCartAddUnknownProduct(t *testing.T) {
	inventory := NewInventoryService(&memCatalog{}, nil, nil, nil)
	cart := NewCart()

	_, err := cart.AddOrIncrement(inventory, "404")
	assert.ErrorIs(t, err, ErrProductNotFound)
	assert.Equal(t, 0, cart.Len())

	_, err = cart.AddOrIncrement(inventory, "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCartAddOutOfStock(t *testing.T) {
	inventory := NewInventoryService(&memCatalog{products: []model.Product{product("1", 0, 10, 6)}}, nil, nil, nil)
	cart := NewCart()

	_, err := cart.AddOrIncrement(inventory, "1")
	assert.ErrorIs(t, err, ErrStockExceeded)
	assert.Equal(t, 0, cart.Len())
}

func TestCartSetQuantityChecksCurrentOnHand(t *testing.T) {
	catalog := &memCatalog{products: []model.Product{product("1", 4, 10, 6)}}
	inventory := NewInventoryService(catalog, nil, nil, nil)
	cart := NewCart()
	_, err := cart.AddOrIncrement(inventory, "1")
	require.NoError(t, err)

	// on-hand drops after the line was added; the snapshot must not be trusted
	catalog.products[0].Quantity = 2

	_, err = cart.SetQuantity(inventory, "1", 3)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
	assert.Equal(t, 1, cart.Reserved("1"))

	_, err = cart.SetQuantity(inventory, "1", -1)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	line, err := cart.SetQuantity(inventory, "1", 0)
	require.NoError(t, err)
	assert.Equal(t, 0, line.Quantity)
	assert.Equal(t, 1, cart.Len(), "zero keeps the line")

	_, err = cart.SetQuantity(inventory, "2", 1)
	assert.ErrorIs(t, err, ErrCartLineNotFound)
}

func TestCartSnapshotRefreshes(t *testing.T) {
	catalog := &memCatalog{products: []model.Product{product("1", 4, 10, 6)}}
	inventory := NewInventoryService(catalog, nil, nil, nil)
	cart := NewCart()
	_, err := cart.AddOrIncrement(inventory, "1")
	require.NoError(t, err)

	catalog.products[0].SalePrice = decimal.NewFromInt(12)
	line, err := cart.AddOrIncrement(inventory, "1")
	require.NoError(t, err)
	assert.True(t, line.SalePrice.Equal(decimal.NewFromInt(12)))
}

func TestCartRemoveTotalAndOrder(t *testing.T) {
	catalog := &memCatalog{products: []model.Product{
		product("a", 5, 10, 6),
		product("b", 5, 3, 1),
		product("c", 5, 7, 2),
	}}
	inventory := NewInventoryService(catalog, nil, nil, nil)
	cart := NewCart()

	for _, b := range []string{"c", "a", "a", "b"} {
		_, err := cart.AddOrIncrement(inventory, b)
		require.NoError(t, err)
	}
	assert.Equal(t, "30", cart.Total().String())

	lines := cart.Lines()
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"c", "a", "b"}, []string{lines[0].Barcode, lines[1].Barcode, lines[2].Barcode})

	cart.Remove("a")
	cart.Remove("missing")
	assert.Equal(t, 2, cart.Len())
	assert.Equal(t, "10", cart.Total().String())
	assert.Equal(t, "c", cart.Lines()[0].Barcode)

	cart.Clear()
	assert.Equal(t, 0, cart.Len())
	assert.True(t, cart.Total().IsZero())
}

// Every successful mutation leaves reserved <= on-hand for every barcode.
func TestCartNeverOverReserves(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	barcodes := []string{"a", "b", "c"}
	catalog := &memCatalog{products: []model.Product{
		product("a", 3, 1, 1),
		product("b", 1, 1, 1),
		product("c", 6, 1, 1),
	}}
	inventory := NewInventoryService(catalog, nil, nil, nil)
	cart := NewCart()

	onHand := func(barcode string) int {
		p, err := inventory.FindByBarcode(barcode)
		require.NoError(t, err)
		return p.Quantity
	}

	for step := 0; step < 500; step++ {
		b := barcodes[rng.Intn(len(barcodes))]
		var err error
		switch rng.Intn(4) {
		case 0, 1:
			_, err = cart.AddOrIncrement(inventory, b)
		case 2:
			_, err = cart.SetQuantity(inventory, b, rng.Intn(9)-1)
		case 3:
			cart.Remove(b)
		}
		if err != nil {
			continue
		}
		for _, barcode := range barcodes {
			assert.LessOrEqual(t, cart.Reserved(barcode), onHand(barcode), "step %d barcode %s", step, barcode)
		}
	}
}

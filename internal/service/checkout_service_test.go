package service

import (
	"errors"
	"testing"
	"time"

	"go-pos-ledger/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type checkoutFixture struct {
	catalog   *memCatalog
	ledger    *memLedger
	inventory InventoryService
	checkout  CheckoutService
	now       time.Time
}

func newCheckoutFixture(products ...model.Product) *checkoutFixture {
	f := &checkoutFixture{
		catalog: &memCatalog{products: products},
		ledger:  &memLedger{},
		now:     time.Date(2024, 1, 1, 15, 4, 5, 999, time.UTC),
	}
	f.inventory = NewInventoryService(f.catalog, nil, nil, nil)
	f.checkout = NewCheckoutService(f.catalog, f.ledger, f.inventory, nil, fixedClock(f.now))
	return f
}

func (f *checkoutFixture) fill(t *testing.T, cart *Cart, barcode string, qty int) {
	t.Helper()
	for i := 0; i < qty; i++ {
		_, err := cart.AddOrIncrement(f.inventory, barcode)
		require.NoError(t, err)
	}
}

func TestSettleSingleLine(t *testing.T) {
	f := newCheckoutFixture(product("123", 5, 10, 6))
	cart := NewCart()
	f.fill(t, cart, "123", 2)

	receipt, err := f.checkout.Settle(cart)
	require.NoError(t, err)

	require.Len(t, receipt.Records, 1)
	rec := receipt.Records[0]
	assert.Equal(t, "123", rec.Barcode)
	assert.Equal(t, 2, rec.Quantity)
	assert.Equal(t, "20", rec.Revenue.String())
	assert.Equal(t, "8", rec.Profit.String())
	assert.Equal(t, f.now.Truncate(time.Second), rec.SoldAt)
	assert.Equal(t, "20", receipt.Revenue.String())
	assert.Equal(t, "8", receipt.Profit.String())

	assert.Equal(t, 3, f.catalog.products[0].Quantity)
	assert.Len(t, f.ledger.records, 1)
	assert.Equal(t, 0, cart.Len())
}

func TestSettleSharesTimestampAndUsesCurrentPrices(t *testing.T) {
	f := newCheckoutFixture(product("a", 5, 10, 6), product("b", 5, 3, 1))
	cart := NewCart()
	f.fill(t, cart, "a", 1)
	f.fill(t, cart, "b", 3)

	// price edited after the items went into the cart
	f.catalog.products[0].SalePrice = decimal.NewFromInt(11)

	receipt, err := f.checkout.Settle(cart)
	require.NoError(t, err)
	require.Len(t, receipt.Records, 2)

	assert.Equal(t, receipt.Records[0].SoldAt, receipt.Records[1].SoldAt)
	assert.Equal(t, "11", receipt.Records[0].SalePrice.String())
	assert.Equal(t, "11", receipt.Records[0].Revenue.String())
	assert.Equal(t, "5", receipt.Records[0].Profit.String())
	assert.Equal(t, "9", receipt.Records[1].Revenue.String())
	assert.Equal(t, "20", receipt.Revenue.String())
	assert.Equal(t, 1, f.ledger.appends, "one batch write")
	assert.Equal(t, 1, f.catalog.saves, "one catalog rewrite")
}

func TestSettleSkipsZeroLines(t *testing.T) {
	f := newCheckoutFixture(product("a", 5, 10, 6), product("b", 5, 3, 1))
	cart := NewCart()
	f.fill(t, cart, "a", 1)
	f.fill(t, cart, "b", 1)
	_, err := cart.SetQuantity(f.inventory, "b", 0)
	require.NoError(t, err)

	receipt, err := f.checkout.Settle(cart)
	require.NoError(t, err)
	require.Len(t, receipt.Records, 1)
	assert.Equal(t, "a", receipt.Records[0].Barcode)
	assert.Equal(t, 5, f.catalog.products[1].Quantity)
}

// A failure before the ledger write leaves both stores exactly as they were.
func TestSettleFailureWritesNothing(t *testing.T) {
	testCases := []struct {
		name    string
		prepare func(t *testing.T, f *checkoutFixture, cart *Cart)
		wantErr error
	}{
		{
			name:    "empty cart",
			prepare: func(t *testing.T, f *checkoutFixture, cart *Cart) {},
			wantErr: ErrEmptyCart,
		},
		{
			name: "only zero lines",
			prepare: func(t *testing.T, f *checkoutFixture, cart *Cart) {
				f.fill(t, cart, "a", 1)
				_, err := cart.SetQuantity(f.inventory, "a", 0)
				require.NoError(t, err)
			},
			wantErr: ErrEmptyCart,
		},
		{
			name: "product vanished",
			prepare: func(t *testing.T, f *checkoutFixture, cart *Cart) {
				f.fill(t, cart, "a", 1)
				f.fill(t, cart, "b", 1)
				f.catalog.products = f.catalog.products[:1]
			},
			wantErr: ErrProductVanished,
		},
		{
			name: "stock fell below reservation",
			prepare: func(t *testing.T, f *checkoutFixture, cart *Cart) {
				f.fill(t, cart, "a", 3)
				f.catalog.products[0].Quantity = 2
			},
			wantErr: ErrStockExceeded,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newCheckoutFixture(product("a", 5, 10, 6), product("b", 5, 3, 1))
			f.ledger.records = []model.SaleRecord{{Barcode: "old", Quantity: 1, Revenue: decimal.NewFromInt(1)}}
			cart := NewCart()
			tc.prepare(t, f, cart)

			catalogBefore, _ := f.catalog.Load()
			ledgerBefore, _ := f.ledger.Load()

			_, err := f.checkout.Settle(cart)
			assert.ErrorIs(t, err, tc.wantErr)

			catalogAfter, _ := f.catalog.Load()
			ledgerAfter, _ := f.ledger.Load()
			assert.Equal(t, catalogBefore, catalogAfter)
			assert.Equal(t, ledgerBefore, ledgerAfter)
			assert.Equal(t, 0, f.catalog.saves)
			assert.Equal(t, 0, f.ledger.appends)
			assert.Equal(t, 0, cart.Len(), "cart is discarded on failure")
		})
	}
}

func TestSettleVanishedReportsBarcode(t *testing.T) {
	f := newCheckoutFixture(product("a", 5, 10, 6))
	cart := NewCart()
	f.fill(t, cart, "a", 1)
	f.catalog.products = nil

	_, err := f.checkout.Settle(cart)
	var vanished *ProductVanishedError
	require.True(t, errors.As(err, &vanished))
	assert.Equal(t, "a", vanished.Barcode)
}

func TestSettleLedgerFailureKeepsStock(t *testing.T) {
	f := newCheckoutFixture(product("a", 5, 10, 6))
	f.ledger.appendErr = errDiskFull
	cart := NewCart()
	f.fill(t, cart, "a", 2)

	_, err := f.checkout.Settle(cart)
	assert.ErrorIs(t, err, errDiskFull)
	assert.Equal(t, 5, f.catalog.products[0].Quantity)
	assert.Equal(t, 0, cart.Len())
}

func TestSettleDecrementFailureAfterLedgerWrite(t *testing.T) {
	f := newCheckoutFixture(product("a", 5, 10, 6))
	cart := NewCart()
	f.fill(t, cart, "a", 2)
	f.catalog.saveErr = errDiskFull

	_, err := f.checkout.Settle(cart)
	assert.ErrorIs(t, err, errDiskFull)
	// the sale is on record so it can be reconciled
	assert.Len(t, f.ledger.records, 1)
	assert.Equal(t, 5, f.catalog.products[0].Quantity)
}

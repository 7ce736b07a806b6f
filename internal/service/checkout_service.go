package service

import (
	"errors"
	"fmt"
	"time"

	"go-pos-ledger/internal/metrics"
	"go-pos-ledger/internal/model"
	"go-pos-ledger/internal/repository"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Receipt is the result of a successful settlement.
type Receipt struct {
	SoldAt  time.Time          `json:"sold_at"`
	Records []model.SaleRecord `json:"records"`
	Revenue decimal.Decimal    `json:"revenue"`
	Profit  decimal.Decimal    `json:"profit"`
}

type CheckoutService interface {
	Settle(cart *Cart) (*Receipt, error)
}

type checkoutService struct {
	catalog   repository.CatalogStore
	ledger    repository.LedgerStore
	inventory InventoryService
	log       *zap.Logger
	now       Clock
}

func NewCheckoutService(catalog repository.CatalogStore, ledger repository.LedgerStore, inventory InventoryService, log *zap.Logger, now Clock) CheckoutService {
	if log == nil {
		log = zap.NewNop()
	}
	if now == nil {
		now = time.Now
	}
	return &checkoutService{
		catalog:   catalog,
		ledger:    ledger,
		inventory: inventory,
		log:       log,
		now:       now,
	}
}

// Settle turns the cart into ledger records and stock decrements.
//
// Validation runs before any write, so a failure there leaves catalog and ledger
// untouched. The ledger is appended before stock is decremented: a failure between
// the two leaves a recorded sale without its decrement, which is logged for
// reconciliation. The cart is cleared whether or not settlement succeeds.
func (s *checkoutService) Settle(cart *Cart) (receipt *Receipt, err error) {
	defer cart.Clear()
	defer func() {
		result := "ok"
		if err != nil {
			result = settleResult(err)
		}
		metrics.SettlementsTotal.WithLabelValues(result).Inc()
	}()

	var lines []model.CartLine
	for _, line := range cart.Lines() {
		if line.Quantity > 0 {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	products, err := s.catalog.Load()
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	soldAt := s.now().Truncate(time.Second)
	receipt = &Receipt{SoldAt: soldAt, Revenue: decimal.Zero, Profit: decimal.Zero}
	changes := make([]StockChange, 0, len(lines))
	for _, line := range lines {
		i := indexByBarcode(products, line.Barcode)
		if i < 0 {
			return nil, &ProductVanishedError{Barcode: line.Barcode}
		}
		product := products[i]
		if line.Quantity > product.Quantity {
			return nil, &StockExceededError{Barcode: line.Barcode, Available: product.Quantity, Reserved: line.Quantity}
		}

		// Current catalog prices win over the cart snapshot.
		qty := decimal.NewFromInt(int64(line.Quantity))
		record := model.SaleRecord{
			SoldAt:    soldAt,
			Barcode:   line.Barcode,
			Name:      product.Name,
			Quantity:  line.Quantity,
			CostPrice: product.CostPrice,
			SalePrice: product.SalePrice,
			Revenue:   product.SalePrice.Mul(qty),
			Profit:    product.SalePrice.Sub(product.CostPrice).Mul(qty),
		}
		receipt.Records = append(receipt.Records, record)
		receipt.Revenue = receipt.Revenue.Add(record.Revenue)
		receipt.Profit = receipt.Profit.Add(record.Profit)
		changes = append(changes, StockChange{Barcode: line.Barcode, Quantity: line.Quantity})
	}

	if err := s.ledger.AppendAll(receipt.Records); err != nil {
		return nil, fmt.Errorf("append sales ledger: %w", err)
	}

	if err := s.inventory.DecrementAll(changes); err != nil {
		barcodes := make([]string, len(changes))
		for i, c := range changes {
			barcodes[i] = c.Barcode
		}
		s.log.Error("sale recorded without stock decrement, reconcile catalog",
			zap.Time("sold_at", soldAt),
			zap.Strings("barcodes", barcodes),
			zap.Error(err),
		)
		return nil, fmt.Errorf("decrement stock after recording sale: %w", err)
	}

	metrics.SaleRevenueTotal.Add(receipt.Revenue.InexactFloat64())
	s.log.Info("sale settled",
		zap.Time("sold_at", soldAt),
		zap.Int("lines", len(receipt.Records)),
		zap.String("revenue", receipt.Revenue.StringFixed(2)),
		zap.String("profit", receipt.Profit.StringFixed(2)),
	)
	return receipt, nil
}

func settleResult(err error) string {
	switch {
	case errors.Is(err, ErrEmptyCart):
		return "empty_cart"
	case errors.Is(err, ErrProductVanished):
		return "product_vanished"
	case errors.Is(err, ErrStockExceeded):
		return "stock_exceeded"
	default:
		return "error"
	}
}

package service

import (
	"errors"
	"time"

	"go-pos-ledger/internal/model"

	"github.com/shopspring/decimal"
)

// memCatalog is an in-memory CatalogStore that copies on every read and write,
// the way a file-backed store would.
type memCatalog struct {
	products []model.Product
	saves    int
	saveErr  error
}

func (m *memCatalog) Load() ([]model.Product, error) {
	out := make([]model.Product, len(m.products))
	copy(out, m.products)
	return out, nil
}

func (m *memCatalog) SaveAll(products []model.Product) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.products = make([]model.Product, len(products))
	copy(m.products, products)
	return nil
}

type memLedger struct {
	records   []model.SaleRecord
	loads     int
	appends   int
	appendErr error
}

func (m *memLedger) Load() ([]model.SaleRecord, error) {
	m.loads++
	out := make([]model.SaleRecord, len(m.records))
	copy(out, m.records)
	return out, nil
}

func (m *memLedger) AppendAll(records []model.SaleRecord) error {
	if m.appendErr != nil {
		return m.appendErr
	}
	if len(records) == 0 {
		return nil
	}
	m.appends++
	m.records = append(m.records, records...)
	return nil
}

type recordingPublisher struct {
	events []model.StockEvent
}

func (r *recordingPublisher) Publish(event model.StockEvent) {
	r.events = append(r.events, event)
}

var errDiskFull = errors.New("disk full")

func fixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

func product(barcode string, qty int, price, cost int64) model.Product {
	return model.Product{
		Barcode:   barcode,
		Name:      "item " + barcode,
		Category:  "snacks",
		Quantity:  qty,
		SalePrice: decimal.NewFromInt(price),
		CostPrice: decimal.NewFromInt(cost),
	}
}

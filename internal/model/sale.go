package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleRecord is one ledger row. Records are written once by settlement and never changed.
type SaleRecord struct {
	SoldAt    time.Time       `gorm:"not null;index" json:"sold_at"`
	Barcode   string          `gorm:"type:varchar(64);index" json:"barcode"`
	Name      string          `gorm:"type:varchar(255)" json:"name"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	CostPrice decimal.Decimal `gorm:"type:decimal(14,4)" json:"cost_price"`
	SalePrice decimal.Decimal `gorm:"type:decimal(14,4)" json:"sale_price"`
	Revenue   decimal.Decimal `gorm:"type:decimal(18,4)" json:"revenue"` // SalePrice * Quantity
	Profit    decimal.Decimal `gorm:"type:decimal(18,4)" json:"profit"`  // (SalePrice - CostPrice) * Quantity
}

// CartLine is a reservation against on-hand stock, with a snapshot of the
// product taken when the line was last touched.
type CartLine struct {
	Barcode   string          `json:"barcode"`
	Quantity  int             `json:"quantity"`
	Name      string          `json:"name"`
	SalePrice decimal.Decimal `json:"sale_price"`
	CostPrice decimal.Decimal `json:"cost_price"`
}

// Subtotal is SalePrice * Quantity from the snapshot.
func (l CartLine) Subtotal() decimal.Decimal {
	return l.SalePrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

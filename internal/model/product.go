package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is one row of the catalog table, keyed by barcode.
// Barcode may be empty on legacy rows; such rows are never matched by a scan.
type Product struct {
	Barcode   string          `gorm:"type:varchar(64);index" json:"barcode"`
	Name      string          `gorm:"type:varchar(255);not null" json:"name"`
	Category  string          `gorm:"type:varchar(100)" json:"category"`
	Quantity  int             `gorm:"default:0" json:"quantity"`
	CostPrice decimal.Decimal `gorm:"type:decimal(14,4)" json:"cost_price"`
	SalePrice decimal.Decimal `gorm:"type:decimal(14,4)" json:"sale_price"`

	// Optional fields carried through from the spreadsheet, blank when unset.
	Margin         decimal.NullDecimal `gorm:"type:decimal(14,4)" json:"margin"`
	WholesalePrice decimal.NullDecimal `gorm:"type:decimal(14,4)" json:"wholesale_price"`
	MemberPrice    decimal.NullDecimal `gorm:"type:decimal(14,4)" json:"member_price"`
	MemberDiscount decimal.NullDecimal `gorm:"type:decimal(14,4)" json:"member_discount"`
	LoyaltyItem    string              `gorm:"type:varchar(20)" json:"loyalty_item"`
	ProductionDate string              `gorm:"type:varchar(50)" json:"production_date"`
	ShelfLife      string              `gorm:"type:varchar(50)" json:"shelf_life"`

	SearchKey    string     `gorm:"type:varchar(20);index" json:"search_key"`
	RegisteredAt *time.Time `json:"registered_at,omitempty"`
}

package repository

import "go-pos-ledger/internal/model"

// CatalogStore persists the product table. SaveAll overwrites the whole table;
// Load returns rows in the order they were saved.
type CatalogStore interface {
	Load() ([]model.Product, error)
	SaveAll(products []model.Product) error
}

// LedgerStore persists the sales history. AppendAll never drops or reorders earlier records.
type LedgerStore interface {
	Load() ([]model.SaleRecord, error)
	AppendAll(records []model.SaleRecord) error
}

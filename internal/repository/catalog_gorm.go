package repository

import (
	"go-pos-ledger/internal/model"

	"gorm.io/gorm"
)

// productRecord stores a catalog row with its position so Load keeps the saved order.
type productRecord struct {
	ID            uint `gorm:"primaryKey"`
	Position      int  `gorm:"index;not null"`
	model.Product `gorm:"embedded"`
}

func (productRecord) TableName() string {
	return "products"
}

type gormCatalogStore struct {
	db *gorm.DB
}

// NewGormCatalogStore keeps the catalog in the products table.
func NewGormCatalogStore(db *gorm.DB) CatalogStore {
	return &gormCatalogStore{db}
}

func (r *gormCatalogStore) Load() ([]model.Product, error) {
	var records []productRecord
	if err := r.db.Order("position ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	products := make([]model.Product, len(records))
	for i, rec := range records {
		products[i] = rec.Product
	}
	return products, nil
}

// SaveAll replaces the table contents inside one transaction.
func (r *gormCatalogStore) SaveAll(products []model.Product) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&productRecord{}).Error; err != nil {
			return err
		}
		if len(products) == 0 {
			return nil
		}
		records := make([]productRecord, len(products))
		for i, p := range products {
			records[i] = productRecord{Position: i, Product: p}
		}
		return tx.CreateInBatches(records, 200).Error
	})
}

package repository

import (
	"go-pos-ledger/internal/model"

	"gorm.io/gorm"
)

type saleRecordRow struct {
	ID               uint `gorm:"primaryKey"`
	model.SaleRecord `gorm:"embedded"`
}

func (saleRecordRow) TableName() string {
	return "sale_records"
}

type gormLedgerStore struct {
	db *gorm.DB
}

// NewGormLedgerStore keeps the sales history in the sale_records table.
func NewGormLedgerStore(db *gorm.DB) LedgerStore {
	return &gormLedgerStore{db}
}

func (r *gormLedgerStore) Load() ([]model.SaleRecord, error) {
	var rows []saleRecordRow
	if err := r.db.Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	records := make([]model.SaleRecord, len(rows))
	for i, row := range rows {
		records[i] = row.SaleRecord
	}
	return records, nil
}

func (r *gormLedgerStore) AppendAll(records []model.SaleRecord) error {
	if len(records) == 0 {
		return nil
	}
	rows := make([]saleRecordRow, len(records))
	for i, rec := range records {
		rows[i] = saleRecordRow{SaleRecord: rec}
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(rows, 200).Error
	})
}

// Migrate creates or updates the catalog and ledger tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&productRecord{}, &saleRecordRow{})
}

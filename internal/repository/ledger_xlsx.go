package repository

import (
	"fmt"
	"time"

	"go-pos-ledger/internal/model"
)

type xlsxLedgerStore struct {
	path string
	loc  *time.Location
}

// NewXLSXLedgerStore keeps the sales history in a single workbook at path.
// Appends rewrite the whole file with the new records after the existing ones.
func NewXLSXLedgerStore(path string, loc *time.Location) LedgerStore {
	return &xlsxLedgerStore{path: path, loc: loc}
}

func (s *xlsxLedgerStore) Load() ([]model.SaleRecord, error) {
	table, err := readTable(s.path, ledgerColumns)
	if err != nil {
		return nil, err
	}

	records := make([]model.SaleRecord, 0, len(table))
	for i, cells := range table {
		rec, err := s.decode(cells)
		if err != nil {
			return nil, fmt.Errorf("ledger row %d: %w", i+2, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func (s *xlsxLedgerStore) AppendAll(records []model.SaleRecord) error {
	if len(records) == 0 {
		return nil
	}

	existing, err := s.Load()
	if err != nil {
		return err
	}
	all := append(existing, records...)

	rows := make([][]interface{}, len(all))
	for i, rec := range all {
		rows[i] = s.encode(rec)
	}
	return writeTable(s.path, ledgerColumns, rows)
}

func (s *xlsxLedgerStore) decode(cells []string) (model.SaleRecord, error) {
	rec := model.SaleRecord{
		Barcode: cells[ledgerBarcode],
		Name:    cells[ledgerName],
	}

	soldAt, err := parseTimestamp(cells[ledgerSoldAt], s.loc)
	if err != nil {
		return rec, fmt.Errorf("sold at: %w", err)
	}
	if soldAt == nil {
		return rec, fmt.Errorf("sold at: missing timestamp")
	}
	rec.SoldAt = *soldAt

	if rec.Quantity, err = parseQuantity(cells[ledgerQuantity]); err != nil {
		return rec, fmt.Errorf("quantity: %w", err)
	}
	if rec.CostPrice, err = parseDecimal(cells[ledgerCostPrice]); err != nil {
		return rec, fmt.Errorf("cost price: %w", err)
	}
	if rec.SalePrice, err = parseDecimal(cells[ledgerSalePrice]); err != nil {
		return rec, fmt.Errorf("sale price: %w", err)
	}
	if rec.Revenue, err = parseDecimal(cells[ledgerRevenue]); err != nil {
		return rec, fmt.Errorf("revenue: %w", err)
	}
	if rec.Profit, err = parseDecimal(cells[ledgerProfit]); err != nil {
		return rec, fmt.Errorf("profit: %w", err)
	}
	return rec, nil
}

func (s *xlsxLedgerStore) encode(rec model.SaleRecord) []interface{} {
	row := make([]interface{}, len(ledgerColumns))
	row[ledgerSoldAt] = timestampCell(&rec.SoldAt, s.loc)
	row[ledgerBarcode] = rec.Barcode
	row[ledgerName] = rec.Name
	row[ledgerQuantity] = rec.Quantity
	row[ledgerCostPrice] = decimalCell(rec.CostPrice)
	row[ledgerSalePrice] = decimalCell(rec.SalePrice)
	row[ledgerRevenue] = decimalCell(rec.Revenue)
	row[ledgerProfit] = decimalCell(rec.Profit)
	return row
}

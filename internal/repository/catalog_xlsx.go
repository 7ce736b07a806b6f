package repository

import (
	"fmt"
	"time"

	"go-pos-ledger/internal/model"
)

type xlsxCatalogStore struct {
	path string
	loc  *time.Location
}

// NewXLSXCatalogStore keeps the catalog in a single workbook at path.
func NewXLSXCatalogStore(path string, loc *time.Location) CatalogStore {
	return &xlsxCatalogStore{path: path, loc: loc}
}

func (s *xlsxCatalogStore) Load() ([]model.Product, error) {
	table, err := readTable(s.path, catalogColumns)
	if err != nil {
		return nil, err
	}

	products := make([]model.Product, 0, len(table))
	for i, cells := range table {
		p, err := s.decode(cells)
		if err != nil {
			return nil, fmt.Errorf("catalog row %d: %w", i+2, err)
		}
		products = append(products, p)
	}
	return products, nil
}

func (s *xlsxCatalogStore) SaveAll(products []model.Product) error {
	rows := make([][]interface{}, len(products))
	for i, p := range products {
		rows[i] = s.encode(p)
	}
	return writeTable(s.path, catalogColumns, rows)
}

func (s *xlsxCatalogStore) decode(cells []string) (model.Product, error) {
	p := model.Product{
		Name:           cells[colName],
		Category:       cells[colCategory],
		Barcode:        cells[colBarcode],
		LoyaltyItem:    cells[colLoyaltyItem],
		ProductionDate: cells[colProductionDate],
		ShelfLife:      cells[colShelfLife],
		SearchKey:      cells[colSearchKey],
	}

	var err error
	if p.Quantity, err = parseQuantity(cells[colQuantity]); err != nil {
		return p, fmt.Errorf("quantity: %w", err)
	}
	if p.CostPrice, err = parseDecimal(cells[colCostPrice]); err != nil {
		return p, fmt.Errorf("cost price: %w", err)
	}
	if p.SalePrice, err = parseDecimal(cells[colSalePrice]); err != nil {
		return p, fmt.Errorf("sale price: %w", err)
	}
	if p.Margin, err = parseNullDecimal(cells[colMargin]); err != nil {
		return p, fmt.Errorf("margin: %w", err)
	}
	if p.WholesalePrice, err = parseNullDecimal(cells[colWholesalePrice]); err != nil {
		return p, fmt.Errorf("wholesale price: %w", err)
	}
	if p.MemberPrice, err = parseNullDecimal(cells[colMemberPrice]); err != nil {
		return p, fmt.Errorf("member price: %w", err)
	}
	if p.MemberDiscount, err = parseNullDecimal(cells[colMemberDiscount]); err != nil {
		return p, fmt.Errorf("member discount: %w", err)
	}
	if p.RegisteredAt, err = parseTimestamp(cells[colRegisteredAt], s.loc); err != nil {
		return p, fmt.Errorf("created at: %w", err)
	}
	return p, nil
}

func (s *xlsxCatalogStore) encode(p model.Product) []interface{} {
	row := make([]interface{}, len(catalogColumns))
	row[colName] = p.Name
	row[colCategory] = p.Category
	row[colBarcode] = p.Barcode // always a text cell, leading zeros matter
	row[colQuantity] = p.Quantity
	row[colCostPrice] = decimalCell(p.CostPrice)
	row[colSalePrice] = decimalCell(p.SalePrice)
	row[colMargin] = nullDecimalCell(p.Margin)
	row[colWholesalePrice] = nullDecimalCell(p.WholesalePrice)
	row[colMemberPrice] = nullDecimalCell(p.MemberPrice)
	row[colMemberDiscount] = nullDecimalCell(p.MemberDiscount)
	row[colLoyaltyItem] = p.LoyaltyItem
	row[colProductionDate] = p.ProductionDate
	row[colShelfLife] = p.ShelfLife
	row[colSearchKey] = p.SearchKey
	row[colRegisteredAt] = timestampCell(p.RegisteredAt, s.loc)
	return row
}

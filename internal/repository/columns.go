package repository

import (
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
	"github.com/xuri/excelize/v2"
)

const timestampLayout = "2006-01-02 15:04:05"

// maxExcelSerial is the day number of 10000-01-01, past the last date Excel can hold.
const maxExcelSerial = 2958466

// column is a spreadsheet header plus the names older workbooks used for it.
type column struct {
	Header  string
	Aliases []string

	// Raw columns skip number formatting, so date cells keep their seconds.
	Raw bool
}

func (c column) matches(title string) bool {
	if strings.EqualFold(title, c.Header) {
		return true
	}
	for _, alias := range c.Aliases {
		if title == alias {
			return true
		}
	}
	return false
}

// Catalog column positions
const (
	colName = iota
	colCategory
	colBarcode
	colQuantity
	colCostPrice
	colSalePrice
	colMargin
	colWholesalePrice
	colMemberPrice
	colMemberDiscount
	colLoyaltyItem
	colProductionDate
	colShelfLife
	colSearchKey
	colRegisteredAt
)

var catalogColumns = []column{
	colName:           {Header: "name", Aliases: []string{"名称（必填）", "名称"}},
	colCategory:       {Header: "category", Aliases: []string{"分类（必填）", "分类"}},
	colBarcode:        {Header: "barcode", Aliases: []string{"条码"}},
	colQuantity:       {Header: "quantity", Aliases: []string{"库存量"}},
	colCostPrice:      {Header: "cost_price", Aliases: []string{"进货价（必填）", "进货价"}},
	colSalePrice:      {Header: "sale_price", Aliases: []string{"销售价（必填）", "销售价"}},
	colMargin:         {Header: "margin", Aliases: []string{"毛利率"}},
	colWholesalePrice: {Header: "wholesale_price", Aliases: []string{"批发价"}},
	colMemberPrice:    {Header: "member_price", Aliases: []string{"会员价"}},
	colMemberDiscount: {Header: "member_discount", Aliases: []string{"会员折扣"}},
	colLoyaltyItem:    {Header: "loyalty_item", Aliases: []string{"积分商品"}},
	colProductionDate: {Header: "production_date", Aliases: []string{"生产日期"}},
	colShelfLife:      {Header: "shelf_life", Aliases: []string{"保质期"}},
	colSearchKey:      {Header: "search_key", Aliases: []string{"拼音码"}},
	colRegisteredAt:   {Header: "created_at", Aliases: []string{"创建日期"}, Raw: true},
}

// Ledger column positions
const (
	ledgerSoldAt = iota
	ledgerBarcode
	ledgerName
	ledgerQuantity
	ledgerCostPrice
	ledgerSalePrice
	ledgerRevenue
	ledgerProfit
)

var ledgerColumns = []column{
	ledgerSoldAt:    {Header: "sold_at", Aliases: []string{"销售时间"}, Raw: true},
	ledgerBarcode:   {Header: "barcode", Aliases: []string{"条码"}},
	ledgerName:      {Header: "name", Aliases: []string{"名称"}},
	ledgerQuantity:  {Header: "quantity", Aliases: []string{"数量"}},
	ledgerCostPrice: {Header: "cost_price", Aliases: []string{"进货价"}},
	ledgerSalePrice: {Header: "sale_price", Aliases: []string{"销售价"}},
	ledgerRevenue:   {Header: "revenue", Aliases: []string{"销售额"}},
	ledgerProfit:    {Header: "profit", Aliases: []string{"利润"}},
}

// parseQuantity accepts "5" as well as "5.0", which float-typed spreadsheets produce.
func parseQuantity(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	if n, err := cast.ToIntE(s); err == nil {
		return n, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, err
	}
	return int(d.IntPart()), nil
}

func parseDecimal(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}

func parseNullDecimal(s string) (decimal.NullDecimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.NullDecimal{}, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}, err
	}
	return decimal.NewNullDecimal(d), nil
}

// parseTimestamp reads text timestamps, or the serial day number of a date cell.
// Serial values carry wall-clock time and are placed in loc.
func parseTimestamp(s string, loc *time.Location) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if serial, err := strconv.ParseFloat(s, 64); err == nil && serial > 0 && serial < maxExcelSerial {
		wall, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return nil, err
		}
		wall = wall.Round(time.Second)
		t := time.Date(wall.Year(), wall.Month(), wall.Day(), wall.Hour(), wall.Minute(), wall.Second(), 0, loc)
		return &t, nil
	}
	t, err := dateparse.ParseIn(s, loc)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func decimalCell(d decimal.Decimal) interface{} {
	return d.InexactFloat64()
}

func nullDecimalCell(d decimal.NullDecimal) interface{} {
	if !d.Valid {
		return ""
	}
	return d.Decimal.InexactFloat64()
}

func timestampCell(t *time.Time, loc *time.Location) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.In(loc).Format(timestampLayout)
}

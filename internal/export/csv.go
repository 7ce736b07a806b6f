package export

import (
	"fmt"
	"io"
	"time"

	"go-pos-ledger/internal/model"

	"github.com/gocarina/gocsv"
)

type saleRow struct {
	SoldAt    string `csv:"sold_at"`
	Barcode   string `csv:"barcode"`
	Name      string `csv:"name"`
	Quantity  int    `csv:"quantity"`
	CostPrice string `csv:"cost_price"`
	SalePrice string `csv:"sale_price"`
	Revenue   string `csv:"revenue"`
	Profit    string `csv:"profit"`
}

// WriteSalesCSV writes records as CSV with a header row, timestamps in loc.
func WriteSalesCSV(w io.Writer, records []model.SaleRecord, loc *time.Location) error {
	rows := make([]*saleRow, len(records))
	for i, rec := range records {
		rows[i] = &saleRow{
			SoldAt:    rec.SoldAt.In(loc).Format("2006-01-02 15:04:05"),
			Barcode:   rec.Barcode,
			Name:      rec.Name,
			Quantity:  rec.Quantity,
			CostPrice: rec.CostPrice.StringFixed(2),
			SalePrice: rec.SalePrice.StringFixed(2),
			Revenue:   rec.Revenue.StringFixed(2),
			Profit:    rec.Profit.StringFixed(2),
		}
	}
	return gocsv.Marshal(&rows, w)
}

// FileName names an export for the inclusive range start..end.
func FileName(start, end string) string {
	return fmt.Sprintf("sales_%s_%s.csv", start, end)
}

package model

import (
	"reflect"
	"regexp"
	"strconv"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var decimalColumn = regexp.MustCompile(`type:decimal\((\d+),(\d+)\)`)

// Money columns must keep four fractional digits so SQL stores return
// prices like 1.125 unchanged.
func TestMoneyColumnsKeepFourDecimals(t *testing.T) {
	decimalType := reflect.TypeOf(decimal.Decimal{})
	nullDecimalType := reflect.TypeOf(decimal.NullDecimal{})

	for _, v := range []interface{}{Product{}, SaleRecord{}} {
		typ := reflect.TypeOf(v)
		for i := 0; i < typ.NumField(); i++ {
			field := typ.Field(i)
			if field.Type != decimalType && field.Type != nullDecimalType {
				continue
			}
			t.Run(typ.Name()+"."+field.Name, func(t *testing.T) {
				m := decimalColumn.FindStringSubmatch(field.Tag.Get("gorm"))
				require.Len(t, m, 3, "missing decimal column type")
				scale, err := strconv.Atoi(m[2])
				require.NoError(t, err)
				assert.GreaterOrEqual(t, scale, 4)
			})
		}
	}
}

func TestCartLineSubtotal(t *testing.T) {
	line := CartLine{Quantity: 3, SalePrice: decimal.RequireFromString("1.125")}
	assert.Equal(t, "3.375", line.Subtotal().String())
}

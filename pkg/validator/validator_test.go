package validator

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

type priced struct {
	Name  string          `validate:"required"`
	Price decimal.Decimal `validate:"min=0"`
}

func TestValidateStructDecimal(t *testing.T) {
	assert.Empty(t, ValidateStruct(&priced{Name: "cola", Price: decimal.NewFromFloat(2.5)}))
	assert.Empty(t, ValidateStruct(&priced{Name: "free sample", Price: decimal.Zero}))

	errs := ValidateStruct(&priced{Name: "cola", Price: decimal.NewFromInt(-1)})
	if assert.Len(t, errs, 1) {
		assert.Equal(t, "priced.Price", errs[0].FailedField)
		assert.Equal(t, "min", errs[0].Tag)
	}

	errs = ValidateStruct(&priced{Price: decimal.NewFromInt(1)})
	if assert.Len(t, errs, 1) {
		assert.Equal(t, "required", errs[0].Tag)
	}
}

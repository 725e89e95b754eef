package money_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/newgestao/drivercontrol/internal/money"
)

func TestFormatting(t *testing.T) {
	tests := []struct {
		name  string
		input string
		brl   string
		plain string
	}{
		{name: "Zero", input: "0", brl: "R$ 0,00", plain: "0,00"},
		{name: "Cents", input: "10.5", brl: "R$ 10,50", plain: "10,50"},
		{name: "Thousands", input: "12345.67", brl: "R$ 12.345,67", plain: "12345,67"},
		{name: "Negative", input: "-87.9", brl: "-R$ 87,90", plain: "-87,90"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := decimal.RequireFromString(tt.input)
			assert.Equal(t, tt.brl, money.BRL(d))
			assert.Equal(t, tt.plain, money.Plain(d))
		})
	}
}

func TestPercent(t *testing.T) {
	assert.Equal(t, "83,3%", money.Percent(decimal.RequireFromString("83.33")))
	assert.Equal(t, "100,0%", money.Percent(decimal.NewFromInt(100)))
}

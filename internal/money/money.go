// Package money renders amounts the way Brazilian drivers read them.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.BrazilianPortuguese)

// Number formats d with pt-BR separators and a fixed number of places ("1.234,56").
func Number(d decimal.Decimal, places int) string {
	return printer.Sprint(number.Decimal(d.Round(int32(places)).InexactFloat64(), number.Scale(places)))
}

// BRL formats d as reais ("R$ 1.234,56", "-R$ 10,00").
func BRL(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-R$ " + Number(d.Neg(), 2)
	}

	return "R$ " + Number(d, 2)
}

// Percent formats d with one decimal place ("83,3%").
func Percent(d decimal.Decimal) string {
	return Number(d, 1) + "%"
}

// Plain renders d with two places and a decimal comma and no grouping, for
// spreadsheet cells.
func Plain(d decimal.Decimal) string {
	return strings.Replace(d.StringFixed(2), ".", ",", 1)
}

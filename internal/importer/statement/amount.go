package statement

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount reads a money cell. A comma marks the Brazilian layout
// ("R$ 1.234,56"); without one the value is read as plain decimal ("1234.56").
func ParseAmount(s string) (decimal.Decimal, error) {
	clean := strings.NewReplacer("R$", "", " ", "", "\u00a0", "").Replace(strings.TrimSpace(s))

	if strings.Contains(clean, ",") {
		clean = strings.ReplaceAll(clean, ".", "")
		clean = strings.ReplaceAll(clean, ",", ".")
	}

	return decimal.NewFromString(clean)
}

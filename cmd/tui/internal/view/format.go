package view

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/newgestao/drivercontrol/internal/importer/statement"
	"github.com/newgestao/drivercontrol/internal/money"
)

const dbTimeout = 5 * time.Second

var (
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	faintStyle   = lipgloss.NewStyle().Faint(true)
)

// FormatAmount renders a decimal as Brazilian currency.
func FormatAmount(d decimal.Decimal) string {
	return money.BRL(d)
}

// FormatDate formats a date as dd/mm/yyyy.
func FormatDate(d civil.Date) string {
	return d.In(time.UTC).Format("02/01/2006")
}

// DbCtx returns a context with a standard timeout for database operations.
func DbCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), dbTimeout)
}

func activeStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(s)
}

// parseDecimalInput accepts the same amount spellings statements use
// ("1.234,56", "R$ 45,90", "45.90").
func parseDecimalInput(s string) (decimal.Decimal, error) {
	d, err := statement.ParseAmount(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("valor inválido: %q", s)
	}

	return d, nil
}

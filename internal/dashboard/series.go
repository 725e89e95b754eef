package dashboard

import (
	"fmt"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"github.com/newgestao/drivercontrol/internal/expense"
	"github.com/newgestao/drivercontrol/internal/period"
	"github.com/newgestao/drivercontrol/internal/revenue"
)

// weekdayLabelDays is the longest range still labelled by weekday.
const weekdayLabelDays = 7

var weekdayLabels = [...]string{"Dom", "Seg", "Ter", "Qua", "Qui", "Sex", "Sáb"}

type ChartPoint struct {
	Date     civil.Date
	Label    string
	Revenue  decimal.Decimal
	Expenses decimal.Decimal
	Profit   decimal.Decimal
}

// BuildChartSeries returns one point per day of rng in ascending order.
// Expenses are the direct expenses dated that day.
func BuildChartSeries(rng period.Range, revenues []*revenue.Record, expenses []*expense.Record) []ChartPoint {
	rng = period.NewRange(rng.Start, rng.End)

	revenueByDay := sumRevenueByDay(revenues, rng)
	expenseByDay := sumExpensesByDay(expenses, rng)
	short := rng.Days() <= weekdayLabelDays

	points := make([]ChartPoint, 0, rng.Days())

	for _, d := range rng.Dates() {
		p := ChartPoint{
			Date:     d,
			Label:    Label(d, short),
			Revenue:  revenueByDay[d],
			Expenses: expenseByDay[d],
		}
		p.Profit = p.Revenue.Sub(p.Expenses)

		points = append(points, p)
	}

	return points
}

// Label renders d as a pt-BR weekday abbreviation or as dd/mm.
func Label(d civil.Date, weekday bool) string {
	if weekday {
		return weekdayLabels[period.Weekday(d)]
	}

	return fmt.Sprintf("%02d/%02d", d.Day, int(d.Month))
}

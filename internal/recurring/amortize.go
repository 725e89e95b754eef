package recurring

import (
	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// AmortizationDays is the flat month length used to turn a monthly amount into
// a daily one. Summing a calendar month therefore does not reproduce the
// monthly amount exactly for 28, 29 or 31 day months; displayed totals rely on
// that.
const AmortizationDays = 30

var amortizationDivisor = decimal.NewFromInt(AmortizationDays)

// DailyAmount is the share of the monthly amount charged to day, or zero when
// day falls outside the expense window.
func DailyAmount(e *Expense, day civil.Date) decimal.Decimal {
	if !e.ActiveOn(day) {
		return decimal.Zero
	}

	return dailyRate(e)
}

// PeriodAmount is the amortized cost of e over [start, end], counting only the
// days where the expense window and the range overlap. An inverted range is
// treated as empty. A deactivated expense still counts up to its end date.
func PeriodAmount(e *Expense, start, end civil.Date) decimal.Decimal {
	if e == nil || end.Before(start) {
		return decimal.Zero
	}

	from := start
	if e.StartDate.After(from) {
		from = e.StartDate
	}

	to := end
	if e.EndDate != nil && e.EndDate.Before(to) {
		to = *e.EndDate
	}

	if to.Before(from) {
		return decimal.Zero
	}

	days := int64(to.DaysSince(from) + 1)

	return dailyRate(e).Mul(decimal.NewFromInt(days))
}

// TotalForPeriod amortizes each expense independently and sums the results.
func TotalForPeriod(expenses []*Expense, start, end civil.Date) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(PeriodAmount(e, start, end))
	}

	return total
}

func dailyRate(e *Expense) decimal.Decimal {
	return e.MonthlyAmount.Div(amortizationDivisor)
}

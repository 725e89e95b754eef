package recurring_test

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/newgestao/drivercontrol/internal/recurring"
)

func date(y, m, d int) civil.Date {
	return civil.Date{Year: y, Month: time.Month(m), Day: d}
}

func expense(amount string, start civil.Date, end *civil.Date) *recurring.Expense {
	return &recurring.Expense{
		Name:          "Aluguel do carro",
		MonthlyAmount: decimal.RequireFromString(amount),
		StartDate:     start,
		EndDate:       end,
		Active:        true,
	}
}

func sumDaily(e *recurring.Expense, start, end civil.Date) decimal.Decimal {
	total := decimal.Zero
	for d := start; !d.After(end); d = d.AddDays(1) {
		total = total.Add(recurring.DailyAmount(e, d))
	}

	return total
}

func TestDailyAmount(t *testing.T) {
	e := expense("300", date(2024, 1, 1), nil)

	assert.True(t, decimal.NewFromInt(10).Equal(recurring.DailyAmount(e, date(2024, 3, 5))))
	assert.True(t, decimal.Zero.Equal(recurring.DailyAmount(e, date(2023, 12, 31))))

	end := date(2024, 1, 31)
	closed := expense("300", date(2024, 1, 1), &end)
	assert.True(t, decimal.NewFromInt(10).Equal(recurring.DailyAmount(closed, end)))
	assert.True(t, decimal.Zero.Equal(recurring.DailyAmount(closed, date(2024, 2, 1))))
}

func TestDailyAmount_DeactivatedKeepsWindow(t *testing.T) {
	end := date(2024, 3, 5)
	e := expense("300", date(2024, 1, 1), &end)
	e.Active = false

	assert.True(t, decimal.NewFromInt(10).Equal(recurring.DailyAmount(e, date(2024, 3, 5))))
	assert.True(t, decimal.Zero.Equal(recurring.DailyAmount(e, date(2024, 3, 6))))
	assert.Equal(t, "50", recurring.PeriodAmount(e, date(2024, 3, 1), date(2024, 3, 10)).String())
}

func TestPeriodAmount_OpenEndedBeforeRange(t *testing.T) {
	e := expense("300", date(2024, 1, 1), nil)

	got := recurring.PeriodAmount(e, date(2024, 3, 1), date(2024, 3, 10))
	assert.Equal(t, "100", got.String())
}

func TestPeriodAmount_PartialOverlap(t *testing.T) {
	end := date(2024, 3, 4)
	e := expense("600", date(2024, 3, 2), &end)

	// Active 2..4 March inside a 1..10 March range: 3 days at 20/day.
	got := recurring.PeriodAmount(e, date(2024, 3, 1), date(2024, 3, 10))
	assert.Equal(t, "60", got.String())
}

func TestPeriodAmount_NoOverlap(t *testing.T) {
	rangeStart, rangeEnd := date(2024, 3, 1), date(2024, 3, 31)
	endsBefore := date(2024, 2, 29)
	laterEnd := date(2024, 5, 1)

	tests := []struct {
		name string
		e    *recurring.Expense
	}{
		{name: "StartsAfterOpen", e: expense("300", date(2024, 4, 1), nil)},
		{name: "StartsAfterClosed", e: expense("300", date(2024, 4, 1), &laterEnd)},
		{name: "EndsBefore", e: expense("300", date(2024, 1, 1), &endsBefore)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, decimal.Zero.Equal(recurring.PeriodAmount(tt.e, rangeStart, rangeEnd)))
			assert.True(t, decimal.Zero.Equal(sumDaily(tt.e, rangeStart, rangeEnd)))
		})
	}
}

func TestPeriodAmount_SingleDayExactMatch(t *testing.T) {
	d := date(2024, 3, 15)
	e := expense("90", d, &d)

	got := recurring.PeriodAmount(e, d, d)
	assert.True(t, recurring.DailyAmount(e, d).Equal(got))
	assert.Equal(t, "3", got.String())
}

func TestPeriodAmount_InvertedRange(t *testing.T) {
	e := expense("300", date(2024, 1, 1), nil)
	assert.True(t, decimal.Zero.Equal(recurring.PeriodAmount(e, date(2024, 3, 10), date(2024, 3, 1))))
}

func TestPeriodAmount_MatchesSumOfDailyAmounts(t *testing.T) {
	febEnd := date(2024, 2, 10)
	marEnd := date(2024, 3, 20)

	expenses := []*recurring.Expense{
		expense("300", date(2024, 1, 1), nil),
		expense("100", date(2024, 2, 15), nil),
		expense("1234.56", date(2023, 11, 3), &febEnd),
		expense("47.90", date(2024, 3, 20), &marEnd),
		expense("999.99", date(2024, 6, 1), nil),
	}

	ranges := [][2]civil.Date{
		{date(2024, 1, 1), date(2024, 1, 31)},
		{date(2024, 2, 1), date(2024, 2, 29)},
		{date(2024, 2, 5), date(2024, 3, 25)},
		{date(2024, 3, 20), date(2024, 3, 20)},
		{date(2023, 1, 1), date(2024, 12, 31)},
	}

	for _, e := range expenses {
		for _, r := range ranges {
			want := sumDaily(e, r[0], r[1])
			got := recurring.PeriodAmount(e, r[0], r[1])
			assert.True(t, want.Equal(got), "%s over %s..%s: want %s got %s", e.MonthlyAmount, r[0], r[1], want, got)
		}
	}
}

func TestPeriodAmount_ThirtyDayApproximation(t *testing.T) {
	e := expense("300", date(2024, 1, 1), nil)

	// 31 days at 300/30: the month total is 310, not 300.
	assert.Equal(t, "310", recurring.PeriodAmount(e, date(2024, 1, 1), date(2024, 1, 31)).String())
	assert.Equal(t, "280", recurring.PeriodAmount(e, date(2023, 2, 1), date(2023, 2, 28)).String())
}

func TestTotalForPeriod(t *testing.T) {
	expenses := []*recurring.Expense{
		expense("300", date(2024, 1, 1), nil),
		expense("150", date(2024, 3, 6), nil),
		nil,
	}

	// 10 days at 10/day + 5 days at 5/day.
	got := recurring.TotalForPeriod(expenses, date(2024, 3, 1), date(2024, 3, 10))
	assert.Equal(t, "125", got.String())
}

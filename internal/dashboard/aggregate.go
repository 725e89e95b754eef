// Package dashboard turns the records of a period into the figures shown on
// the driver dashboard. Aggregate, AggregateDay, BuildChartSeries and
// ComputeBreakdown are pure: they never do I/O, never fail, and treat nil
// inputs as empty.
package dashboard

import (
	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"github.com/newgestao/drivercontrol/internal/expense"
	"github.com/newgestao/drivercontrol/internal/goal"
	"github.com/newgestao/drivercontrol/internal/period"
	"github.com/newgestao/drivercontrol/internal/recurring"
	"github.com/newgestao/drivercontrol/internal/revenue"
)

var hundred = decimal.NewFromInt(100)

// DayAggregate holds the figures of one calendar day. Goal is nil when no
// goal was set for the date.
type DayAggregate struct {
	Date            civil.Date
	Revenue         decimal.Decimal
	Expenses        decimal.Decimal
	Recurring       decimal.Decimal
	TotalExpenses   decimal.Decimal
	Profit          decimal.Decimal
	Goal            *decimal.Decimal
	GoalMet         bool
	ProgressPercent decimal.Decimal
}

type PeriodAggregate struct {
	Range               period.Range
	TotalRevenue        decimal.Decimal
	DirectExpenses      decimal.Decimal
	RecurringExpenses   decimal.Decimal
	TotalExpenses       decimal.Decimal
	NetProfit           decimal.Decimal
	DaysWithRevenue     int
	AvgPerDay           decimal.Decimal
	TotalGoal           decimal.Decimal
	DaysWithGoal        int
	DaysWithoutGoal     int
	GoalProgressPercent decimal.Decimal
	GoalMet             bool
	HasGoal             bool
	Days                []DayAggregate
}

// Aggregate computes the period figures for rng. Records dated outside rng are
// ignored, so callers may pass unfiltered slices.
func Aggregate(
	revenues []*revenue.Record,
	expenses []*expense.Record,
	recurringExpenses []*recurring.Expense,
	goals []*goal.DailyGoal,
	rng period.Range,
) PeriodAggregate {
	rng = period.NewRange(rng.Start, rng.End)

	revenueByDay := sumRevenueByDay(revenues, rng)
	expenseByDay := sumExpensesByDay(expenses, rng)
	goalByDay := goalsByDay(goals, rng)

	agg := PeriodAggregate{
		Range:             rng,
		RecurringExpenses: recurring.TotalForPeriod(recurringExpenses, rng.Start, rng.End),
		Days:              make([]DayAggregate, 0, rng.Days()),
	}

	for _, d := range rng.Dates() {
		day := DayAggregate{
			Date:     d,
			Revenue:  revenueByDay[d],
			Expenses: expenseByDay[d],
		}

		for _, e := range recurringExpenses {
			day.Recurring = day.Recurring.Add(recurring.DailyAmount(e, d))
		}

		day.TotalExpenses = day.Expenses.Add(day.Recurring)
		day.Profit = day.Revenue.Sub(day.TotalExpenses)

		if target, ok := goalByDay[d]; ok {
			day.Goal = &target
			day.GoalMet = goal.Met(day.Revenue, target)
			day.ProgressPercent = percent(day.Revenue, target)

			agg.TotalGoal = agg.TotalGoal.Add(target)
			agg.DaysWithGoal++
		}

		if _, ok := revenueByDay[d]; ok {
			agg.DaysWithRevenue++
		}

		agg.TotalRevenue = agg.TotalRevenue.Add(day.Revenue)
		agg.DirectExpenses = agg.DirectExpenses.Add(day.Expenses)
		agg.Days = append(agg.Days, day)
	}

	agg.TotalExpenses = agg.DirectExpenses.Add(agg.RecurringExpenses)
	agg.NetProfit = agg.TotalRevenue.Sub(agg.TotalExpenses)
	agg.DaysWithoutGoal = rng.Days() - agg.DaysWithGoal

	if agg.DaysWithRevenue > 0 {
		agg.AvgPerDay = agg.NetProfit.DivRound(decimal.NewFromInt(int64(agg.DaysWithRevenue)), 2)
	}

	agg.HasGoal = agg.DaysWithGoal > 0
	agg.GoalProgressPercent = percent(agg.TotalRevenue, agg.TotalGoal)
	agg.GoalMet = agg.HasGoal && goal.Met(agg.TotalRevenue, agg.TotalGoal)

	return agg
}

// AggregateDay is the single-day view. It is defined as Aggregate over a
// one-day range so the two can never disagree.
func AggregateDay(
	revenues []*revenue.Record,
	expenses []*expense.Record,
	recurringExpenses []*recurring.Expense,
	goals []*goal.DailyGoal,
	day civil.Date,
) PeriodAggregate {
	return Aggregate(revenues, expenses, recurringExpenses, goals, period.Day(day))
}

// percent returns part×100÷whole rounded to two places, or zero when whole is not positive.
func percent(part, whole decimal.Decimal) decimal.Decimal {
	if !whole.IsPositive() {
		return decimal.Zero
	}

	return part.Mul(hundred).DivRound(whole, 2)
}

func sumRevenueByDay(revenues []*revenue.Record, rng period.Range) map[civil.Date]decimal.Decimal {
	out := make(map[civil.Date]decimal.Decimal)

	for _, r := range revenues {
		if r == nil || !rng.Contains(r.Date) {
			continue
		}

		out[r.Date] = out[r.Date].Add(r.Amount)
	}

	return out
}

func sumExpensesByDay(expenses []*expense.Record, rng period.Range) map[civil.Date]decimal.Decimal {
	out := make(map[civil.Date]decimal.Decimal)

	for _, e := range expenses {
		if e == nil || !rng.Contains(e.Date) {
			continue
		}

		out[e.Date] = out[e.Date].Add(e.Amount)
	}

	return out
}

// goalsByDay keeps the last goal seen per date.
func goalsByDay(goals []*goal.DailyGoal, rng period.Range) map[civil.Date]decimal.Decimal {
	out := make(map[civil.Date]decimal.Decimal)

	for _, g := range goals {
		if g == nil || !rng.Contains(g.Date) {
			continue
		}

		out[g.Date] = g.Target
	}

	return out
}

package dashboard

import (
	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/newgestao/drivercontrol/internal/dashboard"
	"github.com/newgestao/drivercontrol/internal/period"
)

type rangeResponse struct {
	Start civil.Date `json:"start"`
	End   civil.Date `json:"end"`
	Days  int        `json:"days"`
}

type dayResponse struct {
	Date            civil.Date       `json:"date"`
	Revenue         decimal.Decimal  `json:"revenue"`
	Expenses        decimal.Decimal  `json:"expenses"`
	Recurring       decimal.Decimal  `json:"recurring"`
	TotalExpenses   decimal.Decimal  `json:"total_expenses"`
	Profit          decimal.Decimal  `json:"profit"`
	Goal            *decimal.Decimal `json:"goal"`
	GoalMet         bool             `json:"goal_met"`
	ProgressPercent decimal.Decimal  `json:"progress_percent"`
}

type summaryResponse struct {
	TotalRevenue        decimal.Decimal `json:"total_revenue"`
	DirectExpenses      decimal.Decimal `json:"direct_expenses"`
	RecurringExpenses   decimal.Decimal `json:"recurring_expenses"`
	TotalExpenses       decimal.Decimal `json:"total_expenses"`
	NetProfit           decimal.Decimal `json:"net_profit"`
	DaysWithRevenue     int             `json:"days_with_revenue"`
	AvgPerDay           decimal.Decimal `json:"avg_per_day"`
	TotalGoal           decimal.Decimal `json:"total_goal"`
	DaysWithGoal        int             `json:"days_with_goal"`
	DaysWithoutGoal     int             `json:"days_without_goal"`
	GoalProgressPercent decimal.Decimal `json:"goal_progress_percent"`
	GoalMet             bool            `json:"goal_met"`
	HasGoal             bool            `json:"has_goal"`
}

type pointResponse struct {
	Date     civil.Date      `json:"date"`
	Label    string          `json:"label"`
	Revenue  decimal.Decimal `json:"revenue"`
	Expenses decimal.Decimal `json:"expenses"`
	Profit   decimal.Decimal `json:"profit"`
}

type sliceResponse struct {
	ID      *uuid.UUID      `json:"id"`
	Name    string          `json:"name"`
	Color   string          `json:"color,omitempty"`
	Amount  decimal.Decimal `json:"amount"`
	Percent decimal.Decimal `json:"percent"`
}

type reportResponse struct {
	Mode       period.Mode     `json:"mode"`
	Range      rangeResponse   `json:"range"`
	Summary    summaryResponse `json:"summary"`
	Days       []dayResponse   `json:"days"`
	Series     []pointResponse `json:"series"`
	Platforms  []sliceResponse `json:"platforms"`
	Categories []sliceResponse `json:"categories"`
}

func toReportResponse(rep *dashboard.Report) reportResponse {
	agg := rep.Aggregate

	resp := reportResponse{
		Mode:  rep.Mode,
		Range: rangeResponse{Start: rep.Range.Start, End: rep.Range.End, Days: rep.Range.Days()},
		Summary: summaryResponse{
			TotalRevenue:        agg.TotalRevenue,
			DirectExpenses:      agg.DirectExpenses,
			RecurringExpenses:   agg.RecurringExpenses.Round(2),
			TotalExpenses:       agg.TotalExpenses.Round(2),
			NetProfit:           agg.NetProfit.Round(2),
			DaysWithRevenue:     agg.DaysWithRevenue,
			AvgPerDay:           agg.AvgPerDay,
			TotalGoal:           agg.TotalGoal,
			DaysWithGoal:        agg.DaysWithGoal,
			DaysWithoutGoal:     agg.DaysWithoutGoal,
			GoalProgressPercent: agg.GoalProgressPercent,
			GoalMet:             agg.GoalMet,
			HasGoal:             agg.HasGoal,
		},
		Days:       make([]dayResponse, 0, len(agg.Days)),
		Series:     make([]pointResponse, 0, len(rep.Series)),
		Platforms:  toSlices(rep.Breakdown.Platforms),
		Categories: toSlices(rep.Breakdown.Categories),
	}

	for _, d := range agg.Days {
		resp.Days = append(resp.Days, dayResponse{
			Date:            d.Date,
			Revenue:         d.Revenue,
			Expenses:        d.Expenses,
			Recurring:       d.Recurring.Round(2),
			TotalExpenses:   d.TotalExpenses.Round(2),
			Profit:          d.Profit.Round(2),
			Goal:            d.Goal,
			GoalMet:         d.GoalMet,
			ProgressPercent: d.ProgressPercent,
		})
	}

	for _, p := range rep.Series {
		resp.Series = append(resp.Series, pointResponse(p))
	}

	return resp
}

func toSlices(slices []dashboard.Slice) []sliceResponse {
	resp := make([]sliceResponse, len(slices))
	for i, s := range slices {
		resp[i] = sliceResponse(s)
	}

	return resp
}

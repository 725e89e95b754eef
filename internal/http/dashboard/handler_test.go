package dashboard_test

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/newgestao/drivercontrol/internal/dashboard"
	"github.com/newgestao/drivercontrol/internal/goal"
	"github.com/newgestao/drivercontrol/internal/http/auth"
	dashboardHandler "github.com/newgestao/drivercontrol/internal/http/dashboard"
	"github.com/newgestao/drivercontrol/internal/period"
	"github.com/newgestao/drivercontrol/internal/revenue"
)

var userID = uuid.New()

func day(m time.Month, d int) civil.Date {
	return civil.Date{Year: 2024, Month: m, Day: d}
}

type sources struct {
	revenues  *dashboard.MockRevenueSource
	expenses  *dashboard.MockExpenseSource
	recurring *dashboard.MockRecurringSource
	goals     *dashboard.MockGoalSource
}

func newRouter(t *testing.T) (http.Handler, sources) {
	t.Helper()

	ctrl := gomock.NewController(t)
	src := sources{
		revenues:  dashboard.NewMockRevenueSource(ctrl),
		expenses:  dashboard.NewMockExpenseSource(ctrl),
		recurring: dashboard.NewMockRecurringSource(ctrl),
		goals:     dashboard.NewMockGoalSource(ctrl),
	}

	svc := dashboard.NewService(src.revenues, src.expenses, src.recurring, src.goals, period.FixedClock(day(time.March, 14)))

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(auth.WithUserID(req.Context(), userID)))
		})
	})
	r.Route("/dashboard", dashboardHandler.NewHandler(svc).Routes)

	return r, src
}

func (s sources) expectRange(rng period.Range, revenues []*revenue.Record, goals []*goal.DailyGoal) {
	s.revenues.EXPECT().
		List(gomock.Any(), revenue.ListFilter{UserID: userID, StartDate: &rng.Start, EndDate: &rng.End}).
		Return(revenues, nil)
	s.expenses.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, nil)
	s.recurring.EXPECT().List(gomock.Any(), userID).Return(nil, nil)
	s.goals.EXPECT().List(gomock.Any(), userID, rng).Return(goals, nil)
}

func TestHandler_ReportZeroBasedMonth(t *testing.T) {
	router, src := newRouter(t)

	rng := period.NewRange(day(time.February, 1), day(time.February, 29))
	src.expectRange(rng,
		[]*revenue.Record{{Date: day(time.February, 10), Amount: decimal.RequireFromString("320")}},
		[]*goal.DailyGoal{{Date: day(time.February, 10), Target: decimal.RequireFromString("300")}},
	)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard/?mode=month&year=2024&month=1", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Mode  string `json:"mode"`
		Range struct {
			Start string `json:"start"`
			End   string `json:"end"`
			Days  int    `json:"days"`
		} `json:"range"`
		Summary struct {
			TotalRevenue string `json:"total_revenue"`
			GoalMet      bool   `json:"goal_met"`
			DaysWithGoal int    `json:"days_with_goal"`
		} `json:"summary"`
		Series []struct {
			Label string `json:"label"`
		} `json:"series"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.Equal(t, "month", body.Mode)
	assert.Equal(t, "2024-02-01", body.Range.Start)
	assert.Equal(t, "2024-02-29", body.Range.End)
	assert.Equal(t, 29, body.Range.Days)
	assert.Equal(t, "320", body.Summary.TotalRevenue)
	assert.True(t, body.Summary.GoalMet)
	assert.Equal(t, 1, body.Summary.DaysWithGoal)
	require.Len(t, body.Series, 29)
	assert.Equal(t, "01/02", body.Series[0].Label)
}

func TestHandler_ReportDefaultsToToday(t *testing.T) {
	router, src := newRouter(t)

	src.expectRange(period.Day(day(time.March, 14)), nil, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard/", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	summary := body["summary"].(map[string]any)
	assert.Equal(t, false, summary["has_goal"])
	assert.Equal(t, false, summary["goal_met"])
	assert.Equal(t, "0", summary["goal_progress_percent"])
}

func TestHandler_ReportInvertedCustomRange(t *testing.T) {
	router, src := newRouter(t)

	src.expectRange(period.Day(day(time.March, 10)), nil, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard/?mode=day&preset=custom&start=2024-03-10&end=2024-03-01", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandler_ReportBadFilter(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"unknown mode", "mode=quarter"},
		{"unknown preset", "mode=day&preset=fortnight"},
		{"month out of range", "mode=month&month=12"},
		{"negative month", "mode=month&month=-1"},
		{"malformed date", "mode=week&date=14/03/2024"},
		{"custom range over the limit", "mode=day&preset=custom&start=0001-01-01&end=9999-12-31"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, _ := newRouter(t)

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard/?"+tt.query, nil))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestHandler_Export(t *testing.T) {
	router, src := newRouter(t)

	rng := period.ISOWeek(day(time.March, 14))
	src.expectRange(rng, []*revenue.Record{{Date: day(time.March, 12), Amount: decimal.RequireFromString("150.5")}}, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard/export?mode=week&date=2024-03-14", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/zip", rec.Header().Get("Content-Type"))

	zr, err := zip.NewReader(bytes.NewReader(rec.Body.Bytes()), int64(rec.Body.Len()))
	require.NoError(t, err)
	require.Len(t, zr.File, 2)

	assert.True(t, strings.HasSuffix(zr.File[0].Name, ".csv"))
	assert.Equal(t, "resumo.txt", zr.File[1].Name)

	f, err := zr.File[0].Open()
	require.NoError(t, err)

	data, err := io.ReadAll(f)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Len(t, lines, 8, "header plus one line per day of the week")
}

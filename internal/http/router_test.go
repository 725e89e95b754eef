package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	catalogDomain "github.com/newgestao/drivercontrol/internal/catalog"
	"github.com/newgestao/drivercontrol/internal/dashboard"
	expenseDomain "github.com/newgestao/drivercontrol/internal/expense"
	goalDomain "github.com/newgestao/drivercontrol/internal/goal"
	apiHttp "github.com/newgestao/drivercontrol/internal/http"
	"github.com/newgestao/drivercontrol/internal/http/auth"
	"github.com/newgestao/drivercontrol/internal/http/catalog"
	dashboardHandler "github.com/newgestao/drivercontrol/internal/http/dashboard"
	"github.com/newgestao/drivercontrol/internal/http/expense"
	"github.com/newgestao/drivercontrol/internal/http/goal"
	"github.com/newgestao/drivercontrol/internal/http/importcsv"
	"github.com/newgestao/drivercontrol/internal/http/matching"
	"github.com/newgestao/drivercontrol/internal/http/recurring"
	"github.com/newgestao/drivercontrol/internal/http/revenue"
	"github.com/newgestao/drivercontrol/internal/importer"
	"github.com/newgestao/drivercontrol/internal/importer/statement"
	matchingDomain "github.com/newgestao/drivercontrol/internal/matching"
	"github.com/newgestao/drivercontrol/internal/period"
	recurringDomain "github.com/newgestao/drivercontrol/internal/recurring"
	revenueDomain "github.com/newgestao/drivercontrol/internal/revenue"
)

type repos struct {
	revenues  *revenueDomain.MockRepository
	expenses  *expenseDomain.MockRepository
	recurring *recurringDomain.MockRepository
	goals     *goalDomain.MockRepository
	catalog   *catalogDomain.MockRepository
	matching  *matchingDomain.MockRepository
}

func newAPI(t *testing.T, verifier *auth.Verifier) (http.Handler, repos) {
	t.Helper()

	ctrl := gomock.NewController(t)
	m := repos{
		revenues:  revenueDomain.NewMockRepository(ctrl),
		expenses:  expenseDomain.NewMockRepository(ctrl),
		recurring: recurringDomain.NewMockRepository(ctrl),
		goals:     goalDomain.NewMockRepository(ctrl),
		catalog:   catalogDomain.NewMockRepository(ctrl),
		matching:  matchingDomain.NewMockRepository(ctrl),
	}

	var (
		clock        = period.FixedClock(civil.Date{Year: 2024, Month: time.March, Day: 14})
		revenueSvc   = revenueDomain.NewService(m.revenues)
		expenseSvc   = expenseDomain.NewService(m.expenses)
		recurringSvc = recurringDomain.NewService(m.recurring, clock)
		goalSvc      = goalDomain.NewService(m.goals)
		matchingSvc  = matchingDomain.NewService(m.matching)
		catalogSvc   = catalogDomain.NewService(m.catalog, matchingSvc)
		importSvc    = importer.NewService(statement.NewParser(), catalogSvc, revenueSvc)
		dashboardSvc = dashboard.NewService(revenueSvc, expenseSvc, recurringSvc, goalSvc, clock)
	)

	router := apiHttp.New(apiHttp.Handlers{
		Revenues:  revenue.NewHandler(revenueSvc),
		Expenses:  expense.NewHandler(expenseSvc),
		Recurring: recurring.NewHandler(recurringSvc),
		Goals:     goal.NewHandler(goalSvc),
		Dashboard: dashboardHandler.NewHandler(dashboardSvc),
		Catalog:   catalog.NewHandler(catalogSvc),
		Import:    importcsv.NewHandler(importSvc, revenueSvc),
		Matching:  matching.NewHandler(matchingSvc, catalogSvc),
	}, verifier, []string{"http://localhost:5173"})

	return router, m
}

func TestRouter_Healthz(t *testing.T) {
	router, _ := newAPI(t, auth.NewVerifier("s3cret", ""))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_RequiresToken(t *testing.T) {
	router, _ := newAPI(t, auth.NewVerifier("s3cret", ""))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_ScopesRequestsToTokenSubject(t *testing.T) {
	verifier := auth.NewVerifier("s3cret", "")
	router, m := newAPI(t, verifier)

	userID := uuid.New()
	token, err := verifier.Issue(userID, time.Hour)
	require.NoError(t, err)

	m.recurring.EXPECT().ListExpenses(gomock.Any(), userID).Return(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/recurring-expenses", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestRouter_DashboardEndToEnd(t *testing.T) {
	verifier := auth.NewVerifier("s3cret", "")
	router, m := newAPI(t, verifier)

	userID := uuid.New()
	token, err := verifier.Issue(userID, time.Hour)
	require.NoError(t, err)

	m.revenues.EXPECT().ListRevenues(gomock.Any(), gomock.Any()).Return(nil, nil)
	m.expenses.EXPECT().ListExpenses(gomock.Any(), gomock.Any()).Return(nil, nil)
	m.recurring.EXPECT().ListExpenses(gomock.Any(), userID).Return(nil, nil)
	m.goals.EXPECT().ListGoals(gomock.Any(), userID, gomock.Any(), gomock.Any()).Return(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard?mode=week", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

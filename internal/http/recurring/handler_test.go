package recurring_test

import (
	"context"
	"encoding/json"
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

	"github.com/newgestao/drivercontrol/internal/http/auth"
	recurringHandler "github.com/newgestao/drivercontrol/internal/http/recurring"
	"github.com/newgestao/drivercontrol/internal/period"
	"github.com/newgestao/drivercontrol/internal/recurring"
)

var userID = uuid.New()

func newRouter(repo recurring.Repository) http.Handler {
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(auth.WithUserID(req.Context(), userID)))
		})
	})
	r.Route("/recurring-expenses", recurringHandler.NewHandler(recurring.NewService(repo, period.FixedClock(civil.Date{Year: 2024, Month: time.March, Day: 14}))).Routes)

	return r
}

func rental(id uuid.UUID) *recurring.Expense {
	return &recurring.Expense{
		ID:            id,
		UserID:        userID,
		Name:          "Aluguel do carro",
		MonthlyAmount: decimal.RequireFromString("3000"),
		StartDate:     civil.Date{Year: 2024, Month: time.January, Day: 1},
		Active:        true,
	}
}

func TestHandler_Create(t *testing.T) {
	type testCase struct {
		name       string
		body       string
		setupMock  func(repo *recurring.MockRepository)
		wantStatus int
	}

	tests := []testCase{
		{
			name: "created",
			body: `{"name":"Seguro","monthly_amount":"450","start_date":"2024-01-01"}`,
			setupMock: func(repo *recurring.MockRepository) {
				repo.EXPECT().
					CreateExpense(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, e *recurring.Expense) error {
						assert.Equal(t, userID, e.UserID)
						assert.True(t, e.Active)

						return nil
					})
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "end before start",
			body:       `{"name":"Seguro","monthly_amount":"450","start_date":"2024-02-01","end_date":"2024-01-01"}`,
			setupMock:  func(*recurring.MockRepository) {},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "zero amount",
			body:       `{"name":"Seguro","monthly_amount":"0","start_date":"2024-02-01"}`,
			setupMock:  func(*recurring.MockRepository) {},
			wantStatus: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := recurring.NewMockRepository(ctrl)
			tt.setupMock(repo)

			rec := httptest.NewRecorder()
			newRouter(repo).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/recurring-expenses/", strings.NewReader(tt.body)))

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestHandler_ListIncludesDailyAmount(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := recurring.NewMockRepository(ctrl)

	repo.EXPECT().ListExpenses(gomock.Any(), userID).Return([]*recurring.Expense{rental(uuid.New())}, nil)

	rec := httptest.NewRecorder()
	newRouter(repo).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/recurring-expenses/", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 1)
	assert.Equal(t, "100", body[0]["daily_amount"])
}

func TestHandler_Deactivate(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := recurring.NewMockRepository(ctrl)
	id := uuid.New()

	repo.EXPECT().GetExpense(gomock.Any(), userID, id).Return(rental(id), nil)
	repo.EXPECT().
		UpdateExpense(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, e *recurring.Expense) error {
			assert.False(t, e.Active)
			require.NotNil(t, e.EndDate)
			assert.Equal(t, civil.Date{Year: 2024, Month: time.March, Day: 14}, *e.EndDate)
			return nil
		})

	rec := httptest.NewRecorder()
	newRouter(repo).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/recurring-expenses/"+id.String()+"/deactivate", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, false, body["active"])
	assert.Equal(t, "2024-03-14", body["end_date"])
}

func TestHandler_DeactivateNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := recurring.NewMockRepository(ctrl)
	id := uuid.New()

	repo.EXPECT().GetExpense(gomock.Any(), userID, id).Return(nil, recurring.ErrNotFound)

	rec := httptest.NewRecorder()
	newRouter(repo).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/recurring-expenses/"+id.String()+"/deactivate", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

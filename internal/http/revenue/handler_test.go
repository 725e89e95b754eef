package revenue_test

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
	revenueHandler "github.com/newgestao/drivercontrol/internal/http/revenue"
	"github.com/newgestao/drivercontrol/internal/revenue"
)

var userID = uuid.New()

func newRouter(repo revenue.Repository) http.Handler {
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(auth.WithUserID(req.Context(), userID)))
		})
	})
	r.Route("/revenues", revenueHandler.NewHandler(revenue.NewService(repo)).Routes)

	return r
}

func TestHandler_Create(t *testing.T) {
	type testCase struct {
		name       string
		body       string
		setupMock  func(repo *revenue.MockRepository)
		wantStatus int
	}

	tests := []testCase{
		{
			name: "created",
			body: `{"date":"2024-03-05","amount":"250.40","trips":12}`,
			setupMock: func(repo *revenue.MockRepository) {
				repo.EXPECT().
					CreateRevenue(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, r *revenue.Record) error {
						assert.Equal(t, userID, r.UserID)
						assert.Equal(t, civil.Date{Year: 2024, Month: time.March, Day: 5}, r.Date)
						assert.True(t, decimal.RequireFromString("250.40").Equal(r.Amount))
						r.ID = uuid.New()

						return nil
					})
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "negative amount",
			body:       `{"date":"2024-03-05","amount":"-1"}`,
			setupMock:  func(*revenue.MockRepository) {},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "malformed body",
			body:       `{"date":`,
			setupMock:  func(*revenue.MockRepository) {},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := revenue.NewMockRepository(ctrl)
			tt.setupMock(repo)

			req := httptest.NewRequest(http.MethodPost, "/revenues/", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			newRouter(repo).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestHandler_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := revenue.NewMockRepository(ctrl)

	repo.EXPECT().
		ListRevenues(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, f revenue.ListFilter) ([]*revenue.Record, error) {
			assert.Equal(t, userID, f.UserID)
			require.NotNil(t, f.StartDate)
			assert.Equal(t, "2024-03-01", f.StartDate.String())
			assert.Nil(t, f.EndDate)

			return []*revenue.Record{{
				ID:     uuid.New(),
				Date:   civil.Date{Year: 2024, Month: time.March, Day: 2},
				Amount: decimal.RequireFromString("99.90"),
			}}, nil
		})

	rec := httptest.NewRecorder()
	newRouter(repo).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/revenues/?start=2024-03-01", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 1)
	assert.Equal(t, "2024-03-02", body[0]["date"])
	assert.Equal(t, "99.9", body[0]["amount"])
}

func TestHandler_ListInvalidDate(t *testing.T) {
	ctrl := gomock.NewController(t)

	rec := httptest.NewRecorder()
	newRouter(revenue.NewMockRepository(ctrl)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/revenues/?end=05/03/2024", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := revenue.NewMockRepository(ctrl)
	id := uuid.New()

	repo.EXPECT().GetRevenue(gomock.Any(), userID, id).Return(&revenue.Record{
		ID:     id,
		UserID: userID,
		Date:   civil.Date{Year: 2024, Month: time.March, Day: 2},
		Amount: decimal.RequireFromString("10"),
		Notes:  "manhã",
	}, nil)
	repo.EXPECT().
		UpdateRevenue(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, r *revenue.Record) error {
			assert.True(t, decimal.RequireFromString("42").Equal(r.Amount))
			assert.Equal(t, "manhã", r.Notes)

			return nil
		})

	req := httptest.NewRequest(http.MethodPatch, "/revenues/"+id.String(), strings.NewReader(`{"amount":"42"}`))
	rec := httptest.NewRecorder()
	newRouter(repo).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandler_GetNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := revenue.NewMockRepository(ctrl)
	id := uuid.New()

	repo.EXPECT().GetRevenue(gomock.Any(), userID, id).Return(nil, revenue.ErrNotFound)

	rec := httptest.NewRecorder()
	newRouter(repo).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/revenues/"+id.String(), nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := revenue.NewMockRepository(ctrl)
	id := uuid.New()

	repo.EXPECT().DeleteRevenue(gomock.Any(), userID, id).Return(nil)

	rec := httptest.NewRecorder()
	newRouter(repo).ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/revenues/"+id.String(), nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

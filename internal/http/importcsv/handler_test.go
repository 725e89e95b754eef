package importcsv_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
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

	"github.com/newgestao/drivercontrol/internal/catalog"
	"github.com/newgestao/drivercontrol/internal/http/auth"
	"github.com/newgestao/drivercontrol/internal/http/importcsv"
	"github.com/newgestao/drivercontrol/internal/importer"
	"github.com/newgestao/drivercontrol/internal/importer/statement"
	"github.com/newgestao/drivercontrol/internal/revenue"
)

var (
	userID = uuid.New()
	uber   = &catalog.Platform{ID: uuid.New(), Kind: catalog.KindSystem, Name: "Uber"}
)

const earnings = "Data;Plataforma;Valor;Corridas\n" +
	"04/03/2024;Uber;R$ 180,00;9\n" +
	"04/03/2024;Uber;R$ 20,50;1\n"

type mocks struct {
	platforms *catalog.MockRepository
	revenues  *revenue.MockRepository
	tx        *revenue.MockImportTx
}

func newRouter(t *testing.T) (http.Handler, mocks) {
	t.Helper()

	ctrl := gomock.NewController(t)
	m := mocks{
		platforms: catalog.NewMockRepository(ctrl),
		revenues:  revenue.NewMockRepository(ctrl),
		tx:        revenue.NewMockImportTx(ctrl),
	}

	revenueSvc := revenue.NewService(m.revenues)
	catalogSvc := catalog.NewService(m.platforms, nil)
	importSvc := importer.NewService(statement.NewParser(), catalogSvc, revenueSvc)

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(auth.WithUserID(req.Context(), userID)))
		})
	})
	r.Route("/import", importcsv.NewHandler(importSvc, revenueSvc).Routes)

	return r, m
}

func upload(t *testing.T, target, content string) *http.Request {
	t.Helper()

	var body bytes.Buffer

	mw := multipart.NewWriter(&body)

	fw, err := mw.CreateFormFile("file", "ganhos.csv")
	require.NoError(t, err)

	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	return req
}

func TestHandler_ImportCreated(t *testing.T) {
	router, m := newRouter(t)

	m.platforms.EXPECT().FindPlatformByName(gomock.Any(), userID, "Uber").Return(uber, nil)
	m.revenues.EXPECT().BeginImport(gomock.Any(), userID, gomock.Any(), gomock.Any()).Return(m.tx, nil)
	m.tx.EXPECT().FindDuplicates(gomock.Any(), gomock.Any()).Return(nil, nil)
	m.tx.EXPECT().
		CreateRevenues(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, records []*revenue.Record) error {
			require.Len(t, records, 1)
			assert.True(t, decimal.RequireFromString("200.50").Equal(records[0].Amount))
			assert.Equal(t, 10, records[0].Trips)

			return nil
		})
	m.tx.EXPECT().Commit().Return(nil)
	m.tx.EXPECT().Rollback().Return(nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, upload(t, "/import/", earnings))
	require.Equal(t, http.StatusCreated, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.EqualValues(t, 1, body["imported"])
}

func TestHandler_ImportConflict(t *testing.T) {
	router, m := newRouter(t)

	existing := &revenue.Record{
		ID:         uuid.New(),
		Date:       civil.Date{Year: 2024, Month: time.March, Day: 4},
		Amount:     decimal.RequireFromString("200.50"),
		PlatformID: &uber.ID,
	}

	m.platforms.EXPECT().FindPlatformByName(gomock.Any(), userID, "Uber").Return(uber, nil)
	m.revenues.EXPECT().BeginImport(gomock.Any(), userID, gomock.Any(), gomock.Any()).Return(m.tx, nil)
	m.tx.EXPECT().FindDuplicates(gomock.Any(), gomock.Any()).Return([]*revenue.Record{existing}, nil)
	m.tx.EXPECT().Rollback().Return(nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, upload(t, "/import/", earnings))
	require.Equal(t, http.StatusConflict, rec.Code)

	var body struct {
		New       []any `json:"new"`
		Conflicts []struct {
			Existing struct {
				ID string `json:"id"`
			} `json:"existing"`
		} `json:"conflicts"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Empty(t, body.New)
	require.Len(t, body.Conflicts, 1)
	assert.Equal(t, existing.ID.String(), body.Conflicts[0].Existing.ID)
}

func TestHandler_ImportUnresolvedPlatform(t *testing.T) {
	router, m := newRouter(t)

	m.platforms.EXPECT().FindPlatformByName(gomock.Any(), userID, "Uber").Return(nil, catalog.ErrNotFound)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, upload(t, "/import/", earnings))
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var body struct {
		Unresolved []string `json:"unresolved_platforms"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, []string{"Uber"}, body.Unresolved)
}

func TestHandler_ImportUnknownFormat(t *testing.T) {
	router, _ := newRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, upload(t, "/import/", "nome;valor\nJoão;10\n"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_Preview(t *testing.T) {
	router, m := newRouter(t)

	m.platforms.EXPECT().FindPlatformByName(gomock.Any(), userID, "Uber").Return(uber, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, upload(t, "/import/preview", earnings))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Profile  string `json:"profile"`
		Lines    int    `json:"lines"`
		Revenues []struct {
			Amount string `json:"amount"`
		} `json:"revenues"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ganhos", body.Profile)
	assert.Equal(t, 2, body.Lines)
	require.Len(t, body.Revenues, 1)
	assert.Equal(t, "200.5", body.Revenues[0].Amount)
}

func TestHandler_Confirm(t *testing.T) {
	router, m := newRouter(t)

	m.revenues.EXPECT().BeginImport(gomock.Any(), userID, gomock.Any(), gomock.Any()).Return(m.tx, nil)
	m.tx.EXPECT().CreateRevenues(gomock.Any(), gomock.Len(2)).Return(nil)
	m.tx.EXPECT().Commit().Return(nil)
	m.tx.EXPECT().Rollback().Return(nil)

	body := `{"params":[
		{"date":"2024-03-04","amount":"200.50","platform_id":"` + uber.ID.String() + `","trips":10},
		{"date":"2024-03-05","amount":"90","platform_id":"` + uber.ID.String() + `","trips":4}
	]}`

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/import/confirm", strings.NewReader(body)))

	assert.Equal(t, http.StatusCreated, rec.Code)
}

package matching_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/newgestao/drivercontrol/internal/catalog"
	"github.com/newgestao/drivercontrol/internal/http/auth"
	matchingHandler "github.com/newgestao/drivercontrol/internal/http/matching"
	"github.com/newgestao/drivercontrol/internal/matching"
)

var userID = uuid.New()

func newRouter(aliases matching.Repository, platforms catalog.Repository) http.Handler {
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(auth.WithUserID(req.Context(), userID)))
		})
	})

	svc := matching.NewService(aliases)
	r.Route("/matching", matchingHandler.NewHandler(svc, catalog.NewService(platforms, svc)).Routes)

	return r
}

func TestHandler_Learn(t *testing.T) {
	platformID := uuid.New()
	otherUser := uuid.New()

	type testCase struct {
		name       string
		body       string
		setupMock  func(a *matching.MockRepository, p *catalog.MockRepository)
		wantStatus int
	}

	tests := []testCase{
		{
			name: "learned",
			body: `{"raw_pattern":" UBER DO BRASIL ","platform_id":"` + platformID.String() + `"}`,
			setupMock: func(a *matching.MockRepository, p *catalog.MockRepository) {
				p.EXPECT().GetPlatform(gomock.Any(), platformID).Return(&catalog.Platform{ID: platformID, Kind: catalog.KindSystem}, nil)
				a.EXPECT().CreateMapping(gomock.Any(), userID, "UBER DO BRASIL", platformID).Return(nil)
			},
			wantStatus: http.StatusCreated,
		},
		{
			name: "platform of another user",
			body: `{"raw_pattern":"LOGGI","platform_id":"` + platformID.String() + `"}`,
			setupMock: func(_ *matching.MockRepository, p *catalog.MockRepository) {
				p.EXPECT().GetPlatform(gomock.Any(), platformID).Return(&catalog.Platform{
					ID:      platformID,
					Kind:    catalog.KindCustom,
					OwnerID: &otherUser,
				}, nil)
			},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name: "empty pattern",
			body: `{"raw_pattern":"   ","platform_id":"` + platformID.String() + `"}`,
			setupMock: func(_ *matching.MockRepository, p *catalog.MockRepository) {
				p.EXPECT().GetPlatform(gomock.Any(), platformID).Return(&catalog.Platform{ID: platformID, Kind: catalog.KindSystem}, nil)
			},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			aliases := matching.NewMockRepository(ctrl)
			platforms := catalog.NewMockRepository(ctrl)
			tt.setupMock(aliases, platforms)

			rec := httptest.NewRecorder()
			newRouter(aliases, platforms).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/matching/", strings.NewReader(tt.body)))

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestHandler_Suggest(t *testing.T) {
	ctrl := gomock.NewController(t)
	aliases := matching.NewMockRepository(ctrl)
	platformID := uuid.New()

	aliases.EXPECT().FindMatch(gomock.Any(), userID, "UBER TRIP 123").Return(platformID, nil)
	aliases.EXPECT().FindMatch(gomock.Any(), userID, "PIX RECEBIDO").Return(uuid.Nil, nil)

	router := newRouter(aliases, catalog.NewMockRepository(ctrl))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/matching/suggest?raw=UBER+TRIP+123", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var hit map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &hit))
	assert.Equal(t, platformID.String(), hit["platform_id"])

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/matching/suggest?raw=PIX+RECEBIDO", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var miss map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &miss))
	assert.Nil(t, miss["platform_id"])
}

func TestHandler_ForgetNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	aliases := matching.NewMockRepository(ctrl)
	id := uuid.New()

	aliases.EXPECT().DeleteMapping(gomock.Any(), userID, id).Return(matching.ErrNotFound)

	rec := httptest.NewRecorder()
	newRouter(aliases, catalog.NewMockRepository(ctrl)).ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/matching/"+id.String(), nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

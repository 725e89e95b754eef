package matching_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/newgestao/drivercontrol/internal/matching"
)

func TestService_Suggest(t *testing.T) {
	userID := uuid.New()
	uberID := uuid.New()

	type testCase struct {
		name      string
		raw       string
		setupMock func(m *matching.MockRepository)
		wantID    uuid.UUID
		wantOK    bool
		wantErr   bool
	}

	tests := []testCase{
		{
			name: "Match",
			raw:  "  UBER DO BRASIL  ",
			setupMock: func(m *matching.MockRepository) {
				m.EXPECT().FindMatch(gomock.Any(), userID, "UBER DO BRASIL").Return(uberID, nil)
			},
			wantID: uberID,
			wantOK: true,
		},
		{
			name: "NoMatch",
			raw:  "desconhecido",
			setupMock: func(m *matching.MockRepository) {
				m.EXPECT().FindMatch(gomock.Any(), userID, "desconhecido").Return(uuid.Nil, nil)
			},
		},
		{
			name: "BlankSkipsLookup",
			raw:  "   ",
		},
		{
			name: "RepoError",
			raw:  "99",
			setupMock: func(m *matching.MockRepository) {
				m.EXPECT().FindMatch(gomock.Any(), userID, "99").Return(uuid.Nil, errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := matching.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := matching.NewService(repo)
			id, ok, err := svc.Suggest(context.Background(), userID, tt.raw)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantID, id)
		})
	}
}

func TestService_Learn(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := matching.NewMockRepository(ctrl)
	svc := matching.NewService(repo)

	userID, platformID := uuid.New(), uuid.New()

	repo.EXPECT().CreateMapping(gomock.Any(), userID, "ifood", platformID).Return(nil)

	require.NoError(t, svc.Learn(context.Background(), userID, " ifood ", platformID))
	assert.ErrorIs(t, svc.Learn(context.Background(), userID, "  ", platformID), matching.ErrEmptyPattern)
}

package revenue_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/newgestao/drivercontrol/internal/revenue"
)

var march1 = civil.Date{Year: 2024, Month: time.March, Day: 1}

func TestService_Create(t *testing.T) {
	type args struct {
		params revenue.CreateParams
	}

	type testCase struct {
		name      string
		args      args
		setupMock func(m *revenue.MockRepository)
		wantErr   error
	}

	tests := []testCase{
		{
			name: "Success",
			args: args{
				params: revenue.CreateParams{
					UserID: uuid.New(),
					Date:   march1,
					Amount: decimal.RequireFromString("187.40"),
					Trips:  14,
				},
			},
			setupMock: func(m *revenue.MockRepository) {
				m.EXPECT().
					CreateRevenue(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, r *revenue.Record) error {
						r.ID = uuid.New()
						r.CreatedAt = time.Now()
						return nil
					})
			},
		},
		{
			name: "ZeroAmountAllowed",
			args: args{
				params: revenue.CreateParams{Date: march1, Amount: decimal.Zero},
			},
			setupMock: func(m *revenue.MockRepository) {
				m.EXPECT().CreateRevenue(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name:    "NegativeAmount",
			args:    args{params: revenue.CreateParams{Date: march1, Amount: decimal.NewFromInt(-1)}},
			wantErr: revenue.ErrInvalidAmount,
		},
		{
			name:    "MissingDate",
			args:    args{params: revenue.CreateParams{Amount: decimal.NewFromInt(10)}},
			wantErr: revenue.ErrInvalidDate,
		},
		{
			name: "RepoError",
			args: args{params: revenue.CreateParams{Date: march1, Amount: decimal.NewFromInt(10)}},
			setupMock: func(m *revenue.MockRepository) {
				m.EXPECT().CreateRevenue(gomock.Any(), gomock.Any()).Return(errors.New("db error"))
			},
			wantErr: errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := revenue.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := revenue.NewService(repo)
			got, err := svc.Create(context.Background(), tt.args.params)

			if tt.wantErr != nil {
				assert.Error(t, err)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.args.params.Date, got.Date)
			assert.True(t, tt.args.params.Amount.Equal(got.Amount))
		})
	}
}

func TestService_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := revenue.NewMockRepository(ctrl)
	svc := revenue.NewService(repo)

	end := march1.AddDays(6)
	filter := revenue.ListFilter{UserID: uuid.New(), StartDate: &march1, EndDate: &end}

	repo.EXPECT().
		ListRevenues(gomock.Any(), filter).
		Return([]*revenue.Record{{ID: uuid.New()}, {ID: uuid.New()}}, nil)

	got, err := svc.List(context.Background(), filter)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestService_ImportBatch_NoConflicts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := revenue.NewMockRepository(ctrl)
	itx := revenue.NewMockImportTx(ctrl)
	svc := revenue.NewService(repo)

	userID := uuid.New()
	uber := uuid.New()
	params := []revenue.CreateParams{
		{Date: march1, Amount: decimal.NewFromInt(100), PlatformID: &uber, Trips: 8},
		{Date: march1.AddDays(1), Amount: decimal.NewFromInt(200), PlatformID: &uber, Trips: 12},
	}

	repo.EXPECT().BeginImport(gomock.Any(), userID, march1, march1.AddDays(1)).Return(itx, nil)
	itx.EXPECT().FindDuplicates(gomock.Any(), params).Return(nil, nil)
	itx.EXPECT().
		CreateRevenues(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, records []*revenue.Record) error {
			for _, r := range records {
				assert.Equal(t, userID, r.UserID)
			}

			return nil
		})
	itx.EXPECT().Commit().Return(nil)
	itx.EXPECT().Rollback().Return(nil)

	result, err := svc.ImportBatch(context.Background(), userID, params)
	require.NoError(t, err)
	assert.Len(t, result.Imported, 2)
	assert.Empty(t, result.Conflicts)
	assert.Empty(t, result.New)
}

func TestService_ImportBatch_WithConflicts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := revenue.NewMockRepository(ctrl)
	itx := revenue.NewMockImportTx(ctrl)
	svc := revenue.NewService(repo)

	userID := uuid.New()
	uber, ninetyNine := uuid.New(), uuid.New()
	params := []revenue.CreateParams{
		{Date: march1, Amount: decimal.RequireFromString("100"), PlatformID: &uber},
		{Date: march1, Amount: decimal.RequireFromString("100"), PlatformID: &ninetyNine},
	}

	existing := &revenue.Record{
		ID:         uuid.New(),
		UserID:     userID,
		Date:       march1,
		Amount:     decimal.RequireFromString("100.00"),
		PlatformID: &uber,
	}

	repo.EXPECT().BeginImport(gomock.Any(), userID, march1, march1).Return(itx, nil)
	itx.EXPECT().FindDuplicates(gomock.Any(), params).Return([]*revenue.Record{existing}, nil)
	itx.EXPECT().Rollback().Return(nil)

	result, err := svc.ImportBatch(context.Background(), userID, params)
	require.NoError(t, err)
	assert.Empty(t, result.Imported)
	require.Len(t, result.Conflicts, 1)
	assert.Equal(t, params[0], result.Conflicts[0].Incoming)
	assert.Equal(t, existing, result.Conflicts[0].Existing)
	assert.Equal(t, []revenue.CreateParams{params[1]}, result.New)
}

func TestService_ImportBatch_Empty(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := revenue.NewService(revenue.NewMockRepository(ctrl))

	result, err := svc.ImportBatch(context.Background(), uuid.New(), nil)
	require.NoError(t, err)
	assert.Empty(t, result.Imported)
	assert.Empty(t, result.Conflicts)
}

func TestService_ImportBatch_InvalidLine(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := revenue.NewService(revenue.NewMockRepository(ctrl))

	_, err := svc.ImportBatch(context.Background(), uuid.New(), []revenue.CreateParams{
		{Date: march1, Amount: decimal.NewFromInt(-3)},
	})
	assert.ErrorIs(t, err, revenue.ErrInvalidAmount)
}

func TestService_CreateBatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := revenue.NewMockRepository(ctrl)
	itx := revenue.NewMockImportTx(ctrl)
	svc := revenue.NewService(repo)

	userID := uuid.New()
	params := []revenue.CreateParams{{Date: march1, Amount: decimal.NewFromInt(50)}}

	repo.EXPECT().BeginImport(gomock.Any(), userID, march1, march1).Return(itx, nil)
	itx.EXPECT().CreateRevenues(gomock.Any(), gomock.Any()).Return(nil)
	itx.EXPECT().Commit().Return(nil)
	itx.EXPECT().Rollback().Return(nil)

	records, err := svc.CreateBatch(context.Background(), userID, params)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, userID, records[0].UserID)
	assert.True(t, decimal.NewFromInt(50).Equal(records[0].Amount))
}

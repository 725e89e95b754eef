package revenue

import (
	"context"
	"fmt"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=revenue
type Repository interface {
	CreateRevenue(ctx context.Context, r *Record) error
	GetRevenue(ctx context.Context, userID, id uuid.UUID) (*Record, error)
	ListRevenues(ctx context.Context, filter ListFilter) ([]*Record, error)
	UpdateRevenue(ctx context.Context, r *Record) error
	DeleteRevenue(ctx context.Context, userID, id uuid.UUID) error

	BeginImport(ctx context.Context, userID uuid.UUID, minDate, maxDate civil.Date) (ImportTx, error)
}

type ImportTx interface {
	FindDuplicates(ctx context.Context, params []CreateParams) ([]*Record, error)
	CreateRevenues(ctx context.Context, records []*Record) error
	Commit() error
	Rollback() error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	UserID     uuid.UUID
	Date       civil.Date
	Amount     decimal.Decimal
	PlatformID *uuid.UUID
	Trips      int
	Hours      decimal.Decimal
	Kilometers decimal.Decimal
	Notes      string
}

// ListFilter scopes a listing to one user. Nil fields are not filtered on.
type ListFilter struct {
	UserID     uuid.UUID
	StartDate  *civil.Date
	EndDate    *civil.Date
	PlatformID *uuid.UUID
}

func validate(p CreateParams) error {
	if p.Date == (civil.Date{}) {
		return ErrInvalidDate
	}

	if p.Amount.IsNegative() {
		return ErrInvalidAmount
	}

	return nil
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Record, error) {
	if err := validate(params); err != nil {
		return nil, err
	}

	r := paramsToRecord(params)
	if err := s.repo.CreateRevenue(ctx, r); err != nil {
		return nil, err
	}

	return r, nil
}

func (s *Service) Get(ctx context.Context, userID, id uuid.UUID) (*Record, error) {
	return s.repo.GetRevenue(ctx, userID, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Record, error) {
	return s.repo.ListRevenues(ctx, filter)
}

func (s *Service) Update(ctx context.Context, r *Record) error {
	if r.Date == (civil.Date{}) {
		return ErrInvalidDate
	}

	if r.Amount.IsNegative() {
		return ErrInvalidAmount
	}

	return s.repo.UpdateRevenue(ctx, r)
}

func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.repo.DeleteRevenue(ctx, userID, id)
}

type ImportResult struct {
	Imported  []*Record
	New       []CreateParams
	Conflicts []Conflict
}

// Conflict pairs an incoming statement line with a record already stored for
// the same date, platform and amount.
type Conflict struct {
	Incoming CreateParams
	Existing *Record
}

type dupKey struct {
	Date     civil.Date
	Platform uuid.UUID
	Amount   string
}

func keyOf(date civil.Date, platformID *uuid.UUID, amount decimal.Decimal) dupKey {
	k := dupKey{Date: date, Amount: amount.StringFixed(2)}
	if platformID != nil {
		k.Platform = *platformID
	}

	return k
}

// ImportBatch stores a parsed statement. When any line matches an existing
// record nothing is written and the conflicts are returned for review; the
// caller re-submits the accepted lines through CreateBatch.
func (s *Service) ImportBatch(ctx context.Context, userID uuid.UUID, params []CreateParams) (*ImportResult, error) {
	if len(params) == 0 {
		return &ImportResult{}, nil
	}

	for _, p := range params {
		if err := validate(p); err != nil {
			return nil, err
		}
	}

	minDate, maxDate := dateRange(params)

	itx, err := s.repo.BeginImport(ctx, userID, minDate, maxDate)
	if err != nil {
		return nil, fmt.Errorf("begin import: %w", err)
	}
	defer itx.Rollback()

	duplicates, err := itx.FindDuplicates(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("find duplicates: %w", err)
	}

	lookup := make(map[dupKey]*Record, len(duplicates))
	for _, d := range duplicates {
		lookup[keyOf(d.Date, d.PlatformID, d.Amount)] = d
	}

	var newParams []CreateParams

	var conflicts []Conflict

	for _, p := range params {
		existing, found := lookup[keyOf(p.Date, p.PlatformID, p.Amount)]
		if found {
			conflicts = append(conflicts, Conflict{Incoming: p, Existing: existing})
			continue
		}

		newParams = append(newParams, p)
	}

	if len(conflicts) > 0 {
		return &ImportResult{New: newParams, Conflicts: conflicts}, nil
	}

	records := paramsToRecords(userID, newParams)
	if err := itx.CreateRevenues(ctx, records); err != nil {
		return nil, fmt.Errorf("create revenues: %w", err)
	}

	if err := itx.Commit(); err != nil {
		return nil, fmt.Errorf("commit import: %w", err)
	}

	return &ImportResult{Imported: records}, nil
}

// CreateBatch writes all params in one transaction without duplicate checks.
func (s *Service) CreateBatch(ctx context.Context, userID uuid.UUID, params []CreateParams) ([]*Record, error) {
	if len(params) == 0 {
		return nil, nil
	}

	for _, p := range params {
		if err := validate(p); err != nil {
			return nil, err
		}
	}

	minDate, maxDate := dateRange(params)

	itx, err := s.repo.BeginImport(ctx, userID, minDate, maxDate)
	if err != nil {
		return nil, fmt.Errorf("begin import: %w", err)
	}
	defer itx.Rollback()

	records := paramsToRecords(userID, params)
	if err := itx.CreateRevenues(ctx, records); err != nil {
		return nil, fmt.Errorf("create revenues: %w", err)
	}

	if err := itx.Commit(); err != nil {
		return nil, fmt.Errorf("commit import: %w", err)
	}

	return records, nil
}

func dateRange(params []CreateParams) (civil.Date, civil.Date) {
	minDate := params[0].Date
	maxDate := params[0].Date

	for _, p := range params[1:] {
		if p.Date.Before(minDate) {
			minDate = p.Date
		}

		if p.Date.After(maxDate) {
			maxDate = p.Date
		}
	}

	return minDate, maxDate
}

func paramsToRecord(p CreateParams) *Record {
	return &Record{
		UserID:     p.UserID,
		Date:       p.Date,
		Amount:     p.Amount,
		PlatformID: p.PlatformID,
		Trips:      p.Trips,
		Hours:      p.Hours,
		Kilometers: p.Kilometers,
		Notes:      p.Notes,
	}
}

// paramsToRecords forces every record onto userID so a batch cannot write
// into another account.
func paramsToRecords(userID uuid.UUID, params []CreateParams) []*Record {
	records := make([]*Record, len(params))
	for i, p := range params {
		records[i] = paramsToRecord(p)
		records[i].UserID = userID
	}

	return records
}

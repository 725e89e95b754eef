package dashboard

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/newgestao/drivercontrol/internal/expense"
	"github.com/newgestao/drivercontrol/internal/period"
	"github.com/newgestao/drivercontrol/internal/revenue"
)

const (
	unassignedPlatform = "Sem plataforma"
	unassignedCategory = "Sem categoria"
)

// Slice is one wedge of a pie chart.
type Slice struct {
	ID      *uuid.UUID
	Name    string
	Color   string
	Amount  decimal.Decimal
	Percent decimal.Decimal
}

type Breakdown struct {
	Platforms  []Slice
	Categories []Slice
}

// ComputeBreakdown splits the in-range revenue per platform and the direct
// expenses per category, largest first.
func ComputeBreakdown(rng period.Range, revenues []*revenue.Record, expenses []*expense.Record) Breakdown {
	rng = period.NewRange(rng.Start, rng.End)

	platforms := newSlicer()

	for _, r := range revenues {
		if r == nil || !rng.Contains(r.Date) {
			continue
		}

		name, color := unassignedPlatform, ""
		if r.Platform != nil {
			name, color = r.Platform.Name, r.Platform.Color
		}

		platforms.add(r.PlatformID, name, color, r.Amount)
	}

	categories := newSlicer()

	for _, e := range expenses {
		if e == nil || !rng.Contains(e.Date) {
			continue
		}

		name := unassignedCategory
		if e.Category != nil {
			name = e.Category.Name
		}

		categories.add(e.CategoryID, name, "", e.Amount)
	}

	return Breakdown{
		Platforms:  platforms.slices(),
		Categories: categories.slices(),
	}
}

type slicer struct {
	order []uuid.UUID
	byID  map[uuid.UUID]*Slice
	total decimal.Decimal
}

func newSlicer() *slicer {
	return &slicer{byID: make(map[uuid.UUID]*Slice)}
}

// add groups unassigned records under uuid.Nil.
func (s *slicer) add(id *uuid.UUID, name, color string, amount decimal.Decimal) {
	key := uuid.Nil
	if id != nil {
		key = *id
	}

	sl, ok := s.byID[key]
	if !ok {
		sl = &Slice{Name: name, Color: color}
		if id != nil {
			sl.ID = new(key)
		}

		s.byID[key] = sl
		s.order = append(s.order, key)
	}

	sl.Amount = sl.Amount.Add(amount)
	s.total = s.total.Add(amount)
}

func (s *slicer) slices() []Slice {
	out := make([]Slice, 0, len(s.order))

	for _, key := range s.order {
		sl := *s.byID[key]
		sl.Percent = percent(sl.Amount, s.total)
		out = append(out, sl)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Amount.Equal(out[j].Amount) {
			return out[i].Amount.GreaterThan(out[j].Amount)
		}

		return out[i].Name < out[j].Name
	})

	return out
}

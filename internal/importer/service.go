package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"

	"github.com/newgestao/drivercontrol/internal/catalog"
	"github.com/newgestao/drivercontrol/internal/importer/statement"
	"github.com/newgestao/drivercontrol/internal/revenue"
)

type Parser interface {
	Parse(r io.Reader) (*statement.Result, error)
}

type PlatformResolver interface {
	ResolvePlatform(ctx context.Context, userID uuid.UUID, name string) (*catalog.Platform, error)
}

type RevenueImporter interface {
	ImportBatch(ctx context.Context, userID uuid.UUID, params []revenue.CreateParams) (*revenue.ImportResult, error)
}

type Service struct {
	parser    Parser
	platforms PlatformResolver
	revenues  RevenueImporter
}

func NewService(parser Parser, platforms PlatformResolver, revenues RevenueImporter) *Service {
	return &Service{
		parser:    parser,
		platforms: platforms,
		revenues:  revenues,
	}
}

// Preview parses r and resolves every platform label without writing anything.
func (s *Service) Preview(ctx context.Context, userID uuid.UUID, r io.Reader) (*Preview, error) {
	res, err := s.parser.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse statement: %w", err)
	}

	resolved := make(map[string]*uuid.UUID)

	var unresolved []string

	for _, line := range res.Lines {
		if _, seen := resolved[line.Platform]; seen {
			continue
		}

		p, err := s.platforms.ResolvePlatform(ctx, userID, line.Platform)

		switch {
		case err == nil:
			resolved[line.Platform] = &p.ID
		case errors.Is(err, catalog.ErrNotFound):
			resolved[line.Platform] = nil
			unresolved = append(unresolved, line.Platform)
		default:
			return nil, fmt.Errorf("resolve platform %q: %w", line.Platform, err)
		}
	}

	return &Preview{
		Profile:    res.Profile,
		Charset:    res.Charset,
		Lines:      len(res.Lines),
		Revenues:   group(userID, res.Lines, resolved),
		Unresolved: unresolved,
	}, nil
}

// Import stores the statement's revenues. When any platform label is
// unresolved nothing is written and the preview is returned with
// ErrUnresolvedPlatforms so the caller can map the labels first.
func (s *Service) Import(ctx context.Context, userID uuid.UUID, r io.Reader) (*Outcome, error) {
	preview, err := s.Preview(ctx, userID, r)
	if err != nil {
		return nil, err
	}

	if len(preview.Unresolved) > 0 {
		return &Outcome{Preview: preview}, ErrUnresolvedPlatforms
	}

	result, err := s.revenues.ImportBatch(ctx, userID, preview.Revenues)
	if err != nil {
		return nil, fmt.Errorf("import revenues: %w", err)
	}

	slog.InfoContext(ctx, "statement imported",
		"user_id", userID,
		"profile", preview.Profile,
		"lines", preview.Lines,
		"imported", len(result.Imported),
		"conflicts", len(result.Conflicts),
	)

	return &Outcome{Preview: preview, Result: result}, nil
}

type groupKey struct {
	date     civil.Date
	platform uuid.UUID
}

// group sums lines per day and platform, keeping first-seen order.
func group(userID uuid.UUID, lines []statement.Line, platforms map[string]*uuid.UUID) []revenue.CreateParams {
	var (
		out   []revenue.CreateParams
		index = make(map[groupKey]int)
	)

	for _, line := range lines {
		id := platforms[line.Platform]
		if id == nil {
			continue
		}

		key := groupKey{date: line.Date, platform: *id}

		i, ok := index[key]
		if !ok {
			i = len(out)
			index[key] = i

			out = append(out, revenue.CreateParams{
				UserID:     userID,
				Date:       line.Date,
				PlatformID: id,
				Notes:      "Importado de extrato",
			})
		}

		p := &out[i]
		p.Amount = p.Amount.Add(line.Amount)
		p.Trips += line.Trips
		p.Hours = p.Hours.Add(line.Hours)
		p.Kilometers = p.Kilometers.Add(line.Kilometers)
	}

	slices.SortStableFunc(out, func(a, b revenue.CreateParams) int {
		switch {
		case a.Date.Before(b.Date):
			return -1
		case a.Date.After(b.Date):
			return 1
		}

		return 0
	})

	return out
}

package dashboard

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"

	"github.com/newgestao/drivercontrol/internal/money"
	"github.com/newgestao/drivercontrol/internal/period"
)

// ExportFile is a rendered report ready to be packaged for download.
type ExportFile struct {
	Name    string
	CSV     []byte
	Summary string
}

var csvHeader = []string{"data", "receita", "despesas", "recorrentes", "lucro", "meta", "meta_atingida"}

// Export renders the report of rng as a per-day CSV plus a short text summary.
func (s *Service) Export(ctx context.Context, userID uuid.UUID, mode period.Mode, rng period.Range) (*ExportFile, error) {
	report, err := s.Report(ctx, userID, mode, rng)
	if err != nil {
		return nil, err
	}

	data, err := WriteCSV(report.Aggregate)
	if err != nil {
		return nil, err
	}

	return &ExportFile{
		Name:    fmt.Sprintf("relatorio_%s_%s", compact(report.Range.Start), compact(report.Range.End)),
		CSV:     data,
		Summary: Summary(report),
	}, nil
}

// WriteCSV writes one semicolon separated line per day, the layout
// spreadsheet apps expect in pt-BR locales.
func WriteCSV(agg PeriodAggregate) ([]byte, error) {
	var buf bytes.Buffer

	w := csv.NewWriter(&buf)
	w.Comma = ';'

	if err := w.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("writing csv header: %w", err)
	}

	for _, d := range agg.Days {
		goalCell, metCell := "", ""
		if d.Goal != nil {
			goalCell = money.Plain(*d.Goal)
			metCell = yesNo(d.GoalMet)
		}

		row := []string{
			brDate(d.Date),
			money.Plain(d.Revenue),
			money.Plain(d.Expenses),
			money.Plain(d.Recurring),
			money.Plain(d.Profit),
			goalCell,
			metCell,
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("writing csv row: %w", err)
		}
	}

	w.Flush()

	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flushing csv: %w", err)
	}

	return buf.Bytes(), nil
}

// Summary renders the period totals as text.
func Summary(r *Report) string {
	agg := r.Aggregate

	var sb strings.Builder

	fmt.Fprintf(&sb, "Período: %s a %s (%d dias)\n", brDate(r.Range.Start), brDate(r.Range.End), r.Range.Days())
	fmt.Fprintf(&sb, "Receita total: %s\n", money.BRL(agg.TotalRevenue))
	fmt.Fprintf(&sb, "Despesas diretas: %s\n", money.BRL(agg.DirectExpenses))
	fmt.Fprintf(&sb, "Despesas recorrentes: %s\n", money.BRL(agg.RecurringExpenses))
	fmt.Fprintf(&sb, "Lucro líquido: %s\n", money.BRL(agg.NetProfit))
	fmt.Fprintf(&sb, "Dias trabalhados: %d\n", agg.DaysWithRevenue)
	fmt.Fprintf(&sb, "Média por dia trabalhado: %s\n", money.BRL(agg.AvgPerDay))

	if !agg.HasGoal {
		sb.WriteString("Nenhuma meta definida\n")
		return sb.String()
	}

	fmt.Fprintf(&sb, "Meta do período: %s (%s)\n", money.BRL(agg.TotalGoal), money.Percent(agg.GoalProgressPercent))
	fmt.Fprintf(&sb, "Meta atingida: %s\n", yesNo(agg.GoalMet))

	if agg.DaysWithoutGoal > 0 {
		fmt.Fprintf(&sb, "Dias sem meta: %d\n", agg.DaysWithoutGoal)
	}

	return sb.String()
}

func brDate(d civil.Date) string {
	return fmt.Sprintf("%02d/%02d/%04d", d.Day, int(d.Month), d.Year)
}

func compact(d civil.Date) string {
	return fmt.Sprintf("%04d%02d%02d", d.Year, int(d.Month), d.Day)
}

func yesNo(b bool) string {
	if b {
		return "sim"
	}

	return "não"
}

package view

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/newgestao/drivercontrol/internal/dashboard"
	"github.com/newgestao/drivercontrol/internal/period"
)

const exportTimeout = 2 * time.Minute

type exportState int

const (
	exportStateTimeframe exportState = iota
	exportStatePath
	exportStateExporting
	exportStateResult
)

// ExportModel writes a period report as CSV plus a text summary to a
// directory on disk.
type ExportModel struct {
	svc    *dashboard.Service
	userID uuid.UUID

	state           exportState
	err             error
	timeframePicker TimeframePicker
	selector        period.Selector

	form    *huh.Form
	path    *string
	spinner spinner.Model
	summary string
	written []string
}

func NewExportModel(svc *dashboard.Service, userID uuid.UUID) ExportModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return ExportModel{
		svc:             svc,
		userID:          userID,
		state:           exportStateTimeframe,
		timeframePicker: NewTimeframePicker(),
		path:            new("./relatorios"),
		spinner:         s,
	}
}

func (m ExportModel) Title() string { return "Exportar relatório" }

func (m ExportModel) ShortHelp() string {
	switch m.state {
	case exportStateResult:
		return "Esc: voltar ao menu"
	case exportStateExporting:
		return "Exportando..."
	}

	return "Esc: voltar | Enter: confirmar"
}

func (m ExportModel) Init() tea.Cmd {
	return nil
}

func (m ExportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if tfMsg, ok := msg.(TimeframeSelectedMsg); ok {
		m.selector = tfMsg.Selector
		m.form = m.buildPathForm()
		m.state = exportStatePath

		return m, m.form.Init()
	}

	switch m.state {
	case exportStateTimeframe:
		return m.updateTimeframe(msg)
	case exportStatePath:
		return m.updatePath(msg)
	case exportStateExporting:
		return m.updateExporting(msg)
	case exportStateResult:
		if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
			return m, Back
		}
	}

	return m, nil
}

func (m ExportModel) updateTimeframe(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc && m.timeframePicker.IsSelecting() {
		return m, Back
	}

	var cmd tea.Cmd
	m.timeframePicker, cmd = m.timeframePicker.Update(msg)

	return m, cmd
}

func (m ExportModel) updatePath(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = exportStateTimeframe
		m.timeframePicker.Reset()

		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.state = exportStateExporting
	m.err = nil

	return m, tea.Batch(m.spinner.Tick, m.runExportCmd(m.selector, *m.path))
}

func (m ExportModel) updateExporting(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(exportResultMsg); ok {
		m.state = exportStateResult
		m.err = result.err
		m.summary = result.summary
		m.written = result.files

		return m, nil
	}

	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)

	return m, cmd
}

func (m ExportModel) buildPathForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("path").
				Title("Diretório de saída").
				Description("Será criado se não existir").
				Placeholder("./relatorios").
				Value(m.path),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m ExportModel) View() string {
	switch m.state {
	case exportStateTimeframe:
		return lipgloss.NewStyle().Padding(1).Render(m.timeframePicker.View())
	case exportStatePath:
		return lipgloss.NewStyle().Padding(1).Render(m.form.View())
	case exportStateExporting:
		return lipgloss.NewStyle().Padding(1).Render(fmt.Sprintf("%s Gerando relatório...", m.spinner.View()))
	case exportStateResult:
		return m.viewResult()
	}

	return ""
}

func (m ExportModel) viewResult() string {
	if m.err != nil {
		return lipgloss.NewStyle().Padding(1).Render(errorStyle.Render(fmt.Sprintf("Erro: %v", m.err)))
	}

	lines := []string{
		lipgloss.NewStyle().Bold(true).Render(successStyle.Render("Relatório exportado!")),
		"",
	}

	for _, f := range m.written {
		lines = append(lines, faintStyle.Render(f))
	}

	lines = append(lines, "", m.summary)

	return lipgloss.NewStyle().Padding(1).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

type exportResultMsg struct {
	summary string
	files   []string
	err     error
}

func (m ExportModel) runExportCmd(sel period.Selector, dir string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), exportTimeout)
		defer cancel()

		rng, err := m.svc.Resolve(period.ModeDay, sel)
		if err != nil {
			return exportResultMsg{err: err}
		}

		file, err := m.svc.Export(ctx, m.userID, period.ModeDay, rng)
		if err != nil {
			return exportResultMsg{err: err}
		}

		files, err := writeExport(dir, file)
		if err != nil {
			return exportResultMsg{err: err}
		}

		return exportResultMsg{summary: file.Summary, files: files}
	}
}

func writeExport(dir string, file *dashboard.ExportFile) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating export directory: %w", err)
	}

	csvPath := filepath.Join(dir, file.Name+".csv")
	if err := os.WriteFile(csvPath, file.CSV, 0o644); err != nil {
		return nil, fmt.Errorf("writing csv: %w", err)
	}

	summaryPath := filepath.Join(dir, file.Name+"_resumo.txt")
	if err := os.WriteFile(summaryPath, []byte(file.Summary), 0o644); err != nil {
		return nil, fmt.Errorf("writing summary: %w", err)
	}

	return []string{csvPath, summaryPath}, nil
}

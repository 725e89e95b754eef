package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/newgestao/drivercontrol/internal/dashboard"
	"github.com/newgestao/drivercontrol/internal/money"
	"github.com/newgestao/drivercontrol/internal/period"
)

var modeCycle = []period.Mode{period.ModeDay, period.ModeWeek, period.ModeMonth, period.ModeYear}

var modeLabels = map[period.Mode]string{
	period.ModeDay:   "Dia",
	period.ModeWeek:  "Semana",
	period.ModeMonth: "Mês",
	period.ModeYear:  "Ano",
}

type dashboardState int

const (
	dashboardStateBrowse dashboardState = iota
	dashboardStatePicker
)

type DashboardModel struct {
	svc    *dashboard.Service
	userID uuid.UUID

	state   dashboardState
	picker  TimeframePicker
	modeIdx int
	rng     period.Range

	table   table.Model
	report  *dashboard.Report
	loading bool
	err     error
}

func NewDashboardModel(svc *dashboard.Service, userID uuid.UUID) DashboardModel {
	columns := []table.Column{
		{Title: "Data", Width: 12},
		{Title: "Receita", Width: 14},
		{Title: "Despesas", Width: 14},
		{Title: "Recorrentes", Width: 14},
		{Title: "Lucro", Width: 14},
		{Title: "Meta", Width: 14},
		{Title: "Progresso", Width: 10},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	m := DashboardModel{
		svc:     svc,
		userID:  userID,
		picker:  NewTimeframePicker(),
		table:   t,
		loading: true,
	}

	m.rng, m.err = svc.Resolve(period.ModeDay, period.Selector{Preset: period.PresetToday})

	return m
}

func (m DashboardModel) Title() string { return "Painel" }

func (m DashboardModel) ShortHelp() string {
	if m.state == dashboardStatePicker {
		return "Enter: selecionar | Esc: voltar"
	}

	return "Esc: voltar | m: modo | ←/→: navegar | p: período | t: hoje | r: atualizar"
}

func (m DashboardModel) mode() period.Mode {
	return modeCycle[m.modeIdx]
}

func (m DashboardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case reportMsg:
		m.loading = false
		m.err = msg.err

		if msg.err == nil {
			m.report = msg.report
			m.refreshTable()
		}

		return m, nil

	case TimeframeSelectedMsg:
		m.state = dashboardStateBrowse
		m.picker.Reset()

		return m.reload(msg.Selector)

	case tea.WindowSizeMsg:
		m.table.SetHeight(max(msg.Height-16, 5))
		return m, nil
	}

	if m.state == dashboardStatePicker {
		return m.updatePicker(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "esc":
		return m, Back
	case "r":
		m.loading = true
		return m, m.loadCmd()
	case "m":
		m.modeIdx = (m.modeIdx + 1) % len(modeCycle)
		return m.reload(m.selectorAt())
	case "t":
		return m.reload(period.Selector{Preset: period.PresetToday})
	case "left", "h":
		m.rng = period.Step(m.mode(), m.rng, -1)
		m.loading = true

		return m, m.loadCmd()
	case "right", "l":
		m.rng = period.Step(m.mode(), m.rng, 1)
		m.loading = true

		return m, m.loadCmd()
	case "p":
		m.modeIdx = 0
		m.state = dashboardStatePicker

		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m DashboardModel) updatePicker(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc && m.picker.IsSelecting() {
		m.state = dashboardStateBrowse
		return m, nil
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)

	return m, cmd
}

// selectorAt anchors a freshly selected mode on the start of the range being
// viewed, so switching from a March day to month mode shows March.
func (m DashboardModel) selectorAt() period.Selector {
	return period.Selector{
		Preset:      period.PresetCustom,
		CustomStart: m.rng.Start,
		CustomEnd:   m.rng.Start,
		Reference:   m.rng.Start,
		Year:        m.rng.Start.Year,
		Month:       m.rng.Start.Month,
	}
}

func (m DashboardModel) reload(sel period.Selector) (tea.Model, tea.Cmd) {
	rng, err := m.svc.Resolve(m.mode(), sel)
	if err != nil {
		m.err = err
		return m, nil
	}

	m.rng = rng
	m.loading = true

	return m, m.loadCmd()
}

func (m *DashboardModel) refreshTable() {
	days := m.report.Aggregate.Days
	rows := make([]table.Row, 0, len(days))

	for _, d := range days {
		goalCell, progress := "-", "-"
		if d.Goal != nil {
			goalCell = FormatAmount(*d.Goal)
			progress = money.Percent(d.ProgressPercent)
		}

		rows = append(rows, table.Row{
			FormatDate(d.Date),
			FormatAmount(d.Revenue),
			FormatAmount(d.Expenses),
			FormatAmount(d.Recurring),
			FormatAmount(d.Profit),
			goalCell,
			progress,
		})
	}

	m.table.SetRows(rows)
	m.table.SetCursor(0)
}

func (m DashboardModel) View() string {
	if m.state == dashboardStatePicker {
		return lipgloss.NewStyle().Padding(1).Render(m.picker.View())
	}

	header := fmt.Sprintf("Modo: [m] %s | Período: %s a %s",
		activeStyle(modeLabels[m.mode()]),
		FormatDate(m.rng.Start),
		FormatDate(m.rng.End),
	)

	if m.err != nil {
		return lipgloss.NewStyle().Padding(1).Render(header + "\n\n" + errorStyle.Render(fmt.Sprintf("Erro: %v", m.err)))
	}

	if m.loading || m.report == nil {
		return lipgloss.NewStyle().Padding(1).Render(header + "\n\nCarregando...")
	}

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	return lipgloss.NewStyle().Padding(1).Render(lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		kpis(m.report),
		tableView,
		breakdownLine(m.report.Breakdown),
	))
}

func kpis(r *dashboard.Report) string {
	agg := r.Aggregate

	goal := faintStyle.Render("sem meta")
	if agg.HasGoal {
		status := errorStyle.Render("não atingida")
		if agg.GoalMet {
			status = successStyle.Render("atingida")
		}

		goal = fmt.Sprintf("%s (%s, %s)", FormatAmount(agg.TotalGoal), money.Percent(agg.GoalProgressPercent), status)
	}

	box := lipgloss.NewStyle().
		Padding(0, 1).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63"))

	cards := []string{
		box.Render("Receita\n" + FormatAmount(agg.TotalRevenue)),
		box.Render("Despesas\n" + FormatAmount(agg.TotalExpenses)),
		box.Render("Lucro\n" + FormatAmount(agg.NetProfit)),
		box.Render("Média/dia\n" + FormatAmount(agg.AvgPerDay)),
		box.Render("Meta\n" + goal),
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func breakdownLine(b dashboard.Breakdown) string {
	if len(b.Platforms) == 0 {
		return ""
	}

	parts := make([]string, 0, len(b.Platforms))
	for _, s := range b.Platforms {
		parts = append(parts, fmt.Sprintf("%s %s", s.Name, money.Percent(s.Percent)))
	}

	return faintStyle.Render("Plataformas: " + strings.Join(parts, " · "))
}

type reportMsg struct {
	report *dashboard.Report
	err    error
}

func (m DashboardModel) loadCmd() tea.Cmd {
	mode, rng := m.mode(), m.rng

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		report, err := m.svc.Report(ctx, m.userID, mode, rng)

		return reportMsg{report: report, err: err}
	}
}

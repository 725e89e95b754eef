package view

import (
	"errors"
	"fmt"

	"cloud.google.com/go/civil"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/newgestao/drivercontrol/internal/dashboard"
	"github.com/newgestao/drivercontrol/internal/goal"
	"github.com/newgestao/drivercontrol/internal/money"
	"github.com/newgestao/drivercontrol/internal/period"
)

// GoalsModel edits the daily revenue goals of one calendar month.
type GoalsModel struct {
	svc    *goal.Service
	userID uuid.UUID

	month period.Range
	days  []civil.Date
	goals map[civil.Date]*goal.DailyGoal

	table   table.Model
	form    *huh.Form
	editing bool

	fields *goalForm

	status string
	err    error
}

func NewGoalsModel(svc *goal.Service, userID uuid.UUID, clock period.Clock) GoalsModel {
	today := clock.Today()

	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Data", Width: 12},
			{Title: "Dia", Width: 6},
			{Title: "Meta", Width: 14},
		}),
		table.WithFocused(true),
		table.WithHeight(16),
	)

	m := GoalsModel{
		svc:    svc,
		userID: userID,
		month:  period.MonthRange(today.Year, today.Month),
		goals:  map[civil.Date]*goal.DailyGoal{},
		table:  t,
	}
	m.days = m.month.Dates()

	return m
}

func (m GoalsModel) Title() string { return "Metas diárias" }

func (m GoalsModel) ShortHelp() string {
	if m.editing {
		return "Navegue pelo formulário | Esc: cancelar"
	}

	return "Esc: voltar | e: definir meta | x: remover | ←/→: mês"
}

func (m GoalsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m GoalsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case goalsLoadedMsg:
		m.err = msg.err
		if msg.err == nil {
			m.goals = make(map[civil.Date]*goal.DailyGoal, len(msg.goals))
			for _, g := range msg.goals {
				m.goals[g.Date] = g
			}

			m.refreshTable()
		}

		return m, nil

	case goalSavedMsg:
		m.status = msg.status
		if msg.err != nil {
			m.status = fmt.Sprintf("Erro: %v", msg.err)
		}

		m.editing = false
		m.form = nil
		m.table.Focus()

		return m, m.loadCmd()
	}

	if m.editing {
		return m.updateEdit(msg)
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "left", "h":
			return m.stepMonth(-1)
		case "right", "l":
			return m.stepMonth(1)
		case "e":
			return m.enterEditMode()
		case "x":
			return m, m.deleteCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m GoalsModel) stepMonth(n int) (tea.Model, tea.Cmd) {
	m.month = period.Step(period.ModeMonth, m.month, n)
	m.days = m.month.Dates()
	m.goals = map[civil.Date]*goal.DailyGoal{}
	m.table.SetCursor(0)

	return m, m.loadCmd()
}

func (m GoalsModel) selectedDay() (civil.Date, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.days) {
		return civil.Date{}, false
	}

	return m.days[idx], true
}

func (m GoalsModel) enterEditMode() (tea.Model, tea.Cmd) {
	day, ok := m.selectedDay()
	if !ok {
		return m, nil
	}

	m.fields = &goalForm{}
	if g, ok := m.goals[day]; ok {
		m.fields.target = money.Plain(g.Target)
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("target").
				Title("Meta de receita").
				Placeholder("250,00").
				Value(&m.fields.target).
				Validate(func(s string) error {
					d, err := parseDecimalInput(s)
					if err != nil {
						return err
					}

					if !d.IsPositive() {
						return errors.New("a meta deve ser maior que zero")
					}

					return nil
				}),

			huh.NewConfirm().
				Key("to_month").
				Title("Aplicar até o fim do mês?").
				Value(&m.fields.toMonth),
		),
	).WithWidth(40).WithShowHelp(false)

	m.editing = true
	m.table.Blur()

	return m, m.form.Init()
}

func (m GoalsModel) updateEdit(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.editing = false
		m.form = nil
		m.table.Focus()

		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.saveCmd()
}

func (m *GoalsModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.days))
	for _, d := range m.days {
		target := "-"
		if g, ok := m.goals[d]; ok {
			target = FormatAmount(g.Target)
		}

		rows = append(rows, table.Row{FormatDate(d), dashboard.Label(d, true), target})
	}

	m.table.SetRows(rows)
}

func (m GoalsModel) View() string {
	header := fmt.Sprintf("Mês: %s", activeStyle(fmt.Sprintf("%02d/%d", int(m.month.Start.Month), m.month.Start.Year)))

	if m.err != nil {
		return lipgloss.NewStyle().Padding(1).Render(header + "\n\n" + errorStyle.Render(fmt.Sprintf("Erro: %v", m.err)))
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240")).
			Render(m.table.View()),
	)

	if m.editing && m.form != nil {
		day, _ := m.selectedDay()
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(44).
			Render(fmt.Sprintf("Meta para %s\n\n%s", FormatDate(day), m.form.View()))

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = faintStyle.Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

type goalForm struct {
	target  string
	toMonth bool
}

type goalsLoadedMsg struct {
	goals []*goal.DailyGoal
	err   error
}

type goalSavedMsg struct {
	status string
	err    error
}

func (m GoalsModel) loadCmd() tea.Cmd {
	rng := m.month

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		goals, err := m.svc.List(ctx, m.userID, rng)

		return goalsLoadedMsg{goals: goals, err: err}
	}
}

func (m GoalsModel) saveCmd() tea.Cmd {
	day, ok := m.selectedDay()
	if !ok || m.fields == nil {
		return nil
	}

	target, err := parseDecimalInput(m.fields.target)
	if err != nil {
		return func() tea.Msg { return goalSavedMsg{err: err} }
	}

	toMonth := m.fields.toMonth
	end := m.month.End

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if toMonth {
			saved, err := m.svc.UpsertRange(ctx, m.userID, period.NewRange(day, end), target)
			if err != nil {
				return goalSavedMsg{err: err}
			}

			return goalSavedMsg{status: fmt.Sprintf("%d metas salvas.", len(saved))}
		}

		if _, err := m.svc.Upsert(ctx, m.userID, day, target); err != nil {
			return goalSavedMsg{err: err}
		}

		return goalSavedMsg{status: "Meta salva."}
	}
}

func (m GoalsModel) deleteCmd() tea.Cmd {
	day, ok := m.selectedDay()
	if !ok {
		return nil
	}

	if _, exists := m.goals[day]; !exists {
		return nil
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if err := m.svc.Delete(ctx, m.userID, day); err != nil {
			return goalSavedMsg{err: err}
		}

		return goalSavedMsg{status: "Meta removida."}
	}
}

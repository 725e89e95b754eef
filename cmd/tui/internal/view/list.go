package view

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/newgestao/drivercontrol/internal/money"
	"github.com/newgestao/drivercontrol/internal/period"
	"github.com/newgestao/drivercontrol/internal/revenue"
)

type listState int

const (
	listStateBrowse listState = iota
	listStateEdit
)

var listPresets = []period.Preset{period.PresetThisMonth, period.PresetLastMonth, period.PresetLast30Days}

type RevenueListModel struct {
	svc    *revenue.Service
	userID uuid.UUID
	clock  period.Clock

	state    listState
	table    table.Model
	revenues []*revenue.Record
	form     *huh.Form

	presetIdx int

	loading bool
	err     error
	status  string

	fields *revenueForm
}

type revenueForm struct {
	amount string
	trips  string
	notes  string
}

func NewRevenueListModel(svc *revenue.Service, userID uuid.UUID, clock period.Clock) RevenueListModel {
	columns := []table.Column{
		{Title: "Data", Width: 12},
		{Title: "Plataforma", Width: 16},
		{Title: "Valor", Width: 14},
		{Title: "Corridas", Width: 9},
		{Title: "Km", Width: 10},
		{Title: "Notas", Width: 30},
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

	return RevenueListModel{
		svc:     svc,
		userID:  userID,
		clock:   clock,
		table:   t,
		loading: true,
	}
}

func (m RevenueListModel) Title() string { return "Receitas" }

func (m RevenueListModel) ShortHelp() string {
	if m.state == listStateEdit {
		return "Navegue pelo formulário | Esc: cancelar"
	}

	return "Esc: voltar | e: editar | x: excluir | d: período | r: atualizar"
}

func (m RevenueListModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m RevenueListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadListMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.err = nil
		m.revenues = msg.revenues
		m.refreshTable()

		return m, nil

	case listSaveMsg:
		m.status = msg.status
		if msg.err != nil {
			m.status = fmt.Sprintf("Erro ao salvar: %v", msg.err)
		}

		m.state = listStateBrowse
		m.form = nil
		m.table.Focus()

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(max(msg.Height-10, 5))
		return m, nil
	}

	switch m.state {
	case listStateBrowse:
		return m.updateBrowse(msg)
	case listStateEdit:
		return m.updateEdit(msg)
	}

	return m, nil
}

func (m RevenueListModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "e":
			return m.enterEditMode()
		case "x":
			return m, m.deleteCmd()
		case "d":
			m.presetIdx = (m.presetIdx + 1) % len(listPresets)
			m.loading = true

			return m, m.loadCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m RevenueListModel) selected() *revenue.Record {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.revenues) {
		return nil
	}

	return m.revenues[idx]
}

func (m RevenueListModel) enterEditMode() (tea.Model, tea.Cmd) {
	rec := m.selected()
	if rec == nil {
		return m, nil
	}

	m.fields = &revenueForm{
		amount: money.Plain(rec.Amount),
		trips:  strconv.Itoa(rec.Trips),
		notes:  rec.Notes,
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("amount").
				Title("Valor").
				Value(&m.fields.amount).
				Validate(func(s string) error {
					d, err := parseDecimalInput(s)
					if err != nil {
						return err
					}

					if d.IsNegative() {
						return fmt.Errorf("valor não pode ser negativo")
					}

					return nil
				}),

			huh.NewInput().
				Key("trips").
				Title("Corridas").
				Value(&m.fields.trips).
				Validate(func(s string) error {
					if n, err := strconv.Atoi(strings.TrimSpace(s)); err != nil || n < 0 {
						return fmt.Errorf("informe um número inteiro")
					}

					return nil
				}),

			huh.NewText().
				Key("notes").
				Title("Notas").
				Value(&m.fields.notes),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = listStateEdit
	m.table.Blur()

	return m, m.form.Init()
}

func (m RevenueListModel) updateEdit(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = listStateBrowse
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

func (m RevenueListModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Carregando receitas...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(errorStyle.Render(fmt.Sprintf("Erro: %v", m.err)))
	}

	header := fmt.Sprintf("Filtro: [d] Período: %s", activeStyle(presetLabels[listPresets[m.presetIdx]]))

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	if m.state == listStateEdit && m.form != nil {
		label := ""
		if rec := m.selected(); rec != nil {
			label = fmt.Sprintf("%s · %s", FormatDate(rec.Date), platformName(rec))
		}

		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render(fmt.Sprintf("Editar receita\n\n%s\n\n%s", label, m.form.View()))

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = faintStyle.Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func platformName(r *revenue.Record) string {
	if r.Platform == nil {
		return "-"
	}

	return r.Platform.Name
}

func (m *RevenueListModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.revenues))
	for _, r := range m.revenues {
		rows = append(rows, table.Row{
			FormatDate(r.Date),
			platformName(r),
			FormatAmount(r.Amount),
			strconv.Itoa(r.Trips),
			money.Number(r.Kilometers, 1),
			r.Notes,
		})
	}

	m.table.SetRows(rows)
}

type loadListMsg struct {
	revenues []*revenue.Record
	err      error
}

func (m RevenueListModel) loadCmd() tea.Cmd {
	sel := period.Selector{Preset: listPresets[m.presetIdx]}

	return func() tea.Msg {
		rng, err := period.Resolve(period.ModeDay, sel, m.clock.Today())
		if err != nil {
			return loadListMsg{err: err}
		}

		ctx, cancel := DbCtx()
		defer cancel()

		records, err := m.svc.List(ctx, revenue.ListFilter{UserID: m.userID, StartDate: &rng.Start, EndDate: &rng.End})

		return loadListMsg{revenues: records, err: err}
	}
}

type listSaveMsg struct {
	status string
	err    error
}

func (m RevenueListModel) saveCmd() tea.Cmd {
	rec := m.selected()
	if rec == nil || m.fields == nil {
		return nil
	}

	amount, err := parseDecimalInput(m.fields.amount)
	if err != nil {
		return func() tea.Msg { return listSaveMsg{err: err} }
	}

	trips, _ := strconv.Atoi(strings.TrimSpace(m.fields.trips))
	updated := *rec
	updated.Amount = amount
	updated.Trips = trips
	updated.Notes = strings.TrimSpace(m.fields.notes)

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if err := m.svc.Update(ctx, &updated); err != nil {
			return listSaveMsg{err: err}
		}

		return listSaveMsg{status: "Receita atualizada."}
	}
}

func (m RevenueListModel) deleteCmd() tea.Cmd {
	rec := m.selected()
	if rec == nil {
		return nil
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if err := m.svc.Delete(ctx, m.userID, rec.ID); err != nil {
			return listSaveMsg{err: err}
		}

		return listSaveMsg{status: "Receita excluída."}
	}
}

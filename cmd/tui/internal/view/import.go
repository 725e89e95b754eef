package view

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/newgestao/drivercontrol/internal/importer"
	"github.com/newgestao/drivercontrol/internal/revenue"
)

const importTimeout = 2 * time.Minute

type importState int

const (
	importStateFilePick importState = iota
	importStatePreview
	importStateImporting
	importStateConflicts
	importStateResult
)

type ImportModel struct {
	revenueService *revenue.Service
	importService  *importer.Service
	userID         uuid.UUID

	state      importState
	filePicker filepicker.Model

	// data holds the picked statement so the previewed bytes are the ones imported.
	data    []byte
	preview *importer.Preview

	newParams    []revenue.CreateParams
	conflicts    []revenue.Conflict
	conflictList list.Model
	selected     map[int]bool

	status string
	err    error
}

func NewImportModel(revenueSvc *revenue.Service, importSvc *importer.Service, userID uuid.UUID) ImportModel {
	fp := filepicker.New()
	fp.CurrentDirectory, _ = os.Getwd()
	fp.AllowedTypes = []string{".csv", ".txt"}
	fp.ShowHidden = false
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.SetHeight(15)

	return ImportModel{
		revenueService: revenueSvc,
		importService:  importSvc,
		userID:         userID,
		filePicker:     fp,
		selected:       make(map[int]bool),
	}
}

func (m ImportModel) Title() string { return "Importar extrato" }

func (m ImportModel) ShortHelp() string {
	switch m.state {
	case importStatePreview:
		if m.preview != nil && len(m.preview.Unresolved) > 0 {
			return "Esc: escolher outro arquivo"
		}

		return "Enter: importar | Esc: escolher outro arquivo"
	case importStateConflicts:
		return "Espaço: marcar | a: todos | n: nenhum | Enter: confirmar | Esc: cancelar"
	}

	return "Esc: voltar | Enter: selecionar"
}

func (m ImportModel) Init() tea.Cmd {
	return m.filePicker.Init()
}

func (m ImportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m.handleEsc()
		}

		switch m.state {
		case importStatePreview:
			if msg.Type == tea.KeyEnter && m.preview != nil && len(m.preview.Unresolved) == 0 && len(m.preview.Revenues) > 0 {
				m.state = importStateImporting
				m.status = "Importando..."

				return m, m.importCmd(m.data)
			}

			return m, nil
		case importStateConflicts:
			return m.updateConflicts(msg)
		}

	case previewResultMsg:
		if msg.err != nil {
			m.state = importStateResult
			m.err = msg.err
			m.status = fmt.Sprintf("Erro: %v", msg.err)

			return m, nil
		}

		m.state = importStatePreview
		m.data = msg.data
		m.preview = msg.preview

		return m, nil

	case importResultMsg:
		return m.handleImportResult(msg)

	case confirmResultMsg:
		m.state = importStateResult
		if msg.err != nil {
			m.err = msg.err
			m.status = fmt.Sprintf("Erro: %v", msg.err)

			return m, nil
		}

		m.status = fmt.Sprintf("%d receitas importadas.", msg.count)

		return m, nil
	}

	if m.state != importStateFilePick {
		return m, nil
	}

	var cmd tea.Cmd
	m.filePicker, cmd = m.filePicker.Update(msg)

	if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
		m.state = importStateImporting
		m.status = fmt.Sprintf("Lendo %s...", path)

		return m, m.previewCmd(path)
	}

	return m, cmd
}

func (m ImportModel) handleImportResult(msg importResultMsg) (tea.Model, tea.Cmd) {
	if errors.Is(msg.err, importer.ErrUnresolvedPlatforms) && msg.outcome != nil {
		m.state = importStateResult
		m.err = msg.err
		m.status = fmt.Sprintf("Plataformas não cadastradas: %s\nCadastre-as ou crie um apelido e tente novamente.",
			strings.Join(msg.outcome.Preview.Unresolved, ", "))

		return m, nil
	}

	if msg.err != nil {
		m.state = importStateResult
		m.err = msg.err
		m.status = fmt.Sprintf("Erro: %v", msg.err)

		return m, nil
	}

	result := msg.outcome.Result
	if len(result.Conflicts) == 0 {
		m.state = importStateResult
		m.status = fmt.Sprintf("%d receitas importadas (%s, %s).",
			len(result.Imported), msg.outcome.Preview.Profile, msg.outcome.Preview.Charset)

		return m, nil
	}

	m.newParams = result.New
	m.conflicts = result.Conflicts
	m.selected = make(map[int]bool)
	m.state = importStateConflicts

	items := make([]list.Item, len(m.conflicts))
	for i, c := range m.conflicts {
		items[i] = conflictItem{conflict: c, index: i}
	}

	delegate := conflictDelegate{selected: &m.selected}
	m.conflictList = list.New(items, delegate, 80, 20)
	m.conflictList.Title = "Receitas já lançadas"
	m.conflictList.SetShowStatusBar(false)
	m.conflictList.SetFilteringEnabled(false)
	m.conflictList.SetShowHelp(false)

	return m, nil
}

func (m ImportModel) handleEsc() (tea.Model, tea.Cmd) {
	switch m.state {
	case importStatePreview, importStateResult:
		m.state = importStateFilePick
		m.err = nil
		m.status = ""
		m.data = nil
		m.preview = nil

		return m, m.filePicker.Init()
	case importStateConflicts:
		m.state = importStateFilePick
		m.conflicts = nil
		m.newParams = nil
		m.selected = make(map[int]bool)

		return m, m.filePicker.Init()
	}

	return m, Back
}

func (m ImportModel) updateConflicts(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case " ":
		idx := m.conflictList.Index()
		m.selected[idx] = !m.selected[idx]

		return m, nil
	case "a":
		for i := range m.conflicts {
			m.selected[i] = true
		}

		return m, nil
	case "n":
		for i := range m.conflicts {
			m.selected[i] = false
		}

		return m, nil
	case "enter":
		return m, m.confirmCmd()
	}

	var cmd tea.Cmd
	m.conflictList, cmd = m.conflictList.Update(msg)

	return m, cmd
}

func (m ImportModel) View() string {
	switch m.state {
	case importStateFilePick:
		return lipgloss.NewStyle().Padding(1).Render(
			fmt.Sprintf("Selecione o extrato (CSV):\n\n%s", m.filePicker.View()),
		)
	case importStatePreview:
		return lipgloss.NewStyle().Padding(1).Render(viewPreview(m.preview))
	case importStateImporting:
		return lipgloss.NewStyle().Padding(2).Render(m.status)
	case importStateConflicts:
		return lipgloss.NewStyle().Padding(1).Render(m.conflictList.View())
	case importStateResult:
		return m.viewResult()
	}

	return ""
}

func (m ImportModel) viewResult() string {
	style := successStyle
	if m.err != nil {
		style = errorStyle
	}

	return lipgloss.NewStyle().Padding(2).Render(style.Render(m.status) + "\n\n(Esc para voltar)")
}

// viewPreview lists the grouped revenues a statement would create.
func viewPreview(p *importer.Preview) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Formato: %s | Codificação: %s | Linhas: %d\n\n", activeStyle(p.Profile), p.Charset, p.Lines)

	if len(p.Unresolved) > 0 {
		b.WriteString(errorStyle.Render("Plataformas não cadastradas: " + strings.Join(p.Unresolved, ", ")))
		b.WriteString("\n" + faintStyle.Render("Cadastre-as ou crie um apelido antes de importar.") + "\n\n")
	}

	if len(p.Revenues) == 0 {
		b.WriteString("Nenhuma receita encontrada.")
		return b.String()
	}

	total := decimal.Zero
	for _, r := range p.Revenues {
		total = total.Add(r.Amount)
		fmt.Fprintf(&b, "%s  %14s  %3d corridas\n", FormatDate(r.Date), FormatAmount(r.Amount), r.Trips)
	}

	fmt.Fprintf(&b, "\n%d receitas, total %s", len(p.Revenues), FormatAmount(total))

	return b.String()
}

type previewResultMsg struct {
	data    []byte
	preview *importer.Preview
	err     error
}

type importResultMsg struct {
	outcome *importer.Outcome
	err     error
}

type confirmResultMsg struct {
	count int
	err   error
}

func (m ImportModel) previewCmd(path string) tea.Cmd {
	return func() tea.Msg {
		data, err := os.ReadFile(path)
		if err != nil {
			return previewResultMsg{err: err}
		}

		ctx, cancel := context.WithTimeout(context.Background(), importTimeout)
		defer cancel()

		preview, err := m.importService.Preview(ctx, m.userID, bytes.NewReader(data))

		return previewResultMsg{data: data, preview: preview, err: err}
	}
}

func (m ImportModel) importCmd(data []byte) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), importTimeout)
		defer cancel()

		outcome, err := m.importService.Import(ctx, m.userID, bytes.NewReader(data))

		return importResultMsg{outcome: outcome, err: err}
	}
}

func (m ImportModel) confirmCmd() tea.Cmd {
	newParams := m.newParams
	conflicts := m.conflicts
	selected := m.selected

	return func() tea.Msg {
		allParams := append([]revenue.CreateParams{}, newParams...)

		for i, c := range conflicts {
			if !selected[i] {
				continue
			}

			allParams = append(allParams, c.Incoming)
		}

		ctx, cancel := context.WithTimeout(context.Background(), importTimeout)
		defer cancel()

		records, err := m.revenueService.CreateBatch(ctx, m.userID, allParams)
		if err != nil {
			return confirmResultMsg{err: err}
		}

		return confirmResultMsg{count: len(records)}
	}
}

type conflictItem struct {
	conflict revenue.Conflict
	index    int
}

func (i conflictItem) Title() string       { return "" }
func (i conflictItem) Description() string { return "" }
func (i conflictItem) FilterValue() string { return "" }

type conflictDelegate struct {
	selected *map[int]bool
}

func (d conflictDelegate) Height() int                             { return 3 }
func (d conflictDelegate) Spacing() int                            { return 0 }
func (d conflictDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d conflictDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	item, ok := listItem.(conflictItem)
	if !ok {
		return
	}

	checkbox := "[ ]"
	if (*d.selected)[item.index] {
		checkbox = "[x]"
	}

	cursor := "  "
	if index == m.Index() {
		cursor = "> "
	}

	in, ex := item.conflict.Incoming, item.conflict.Existing

	fmt.Fprintf(w, "%s%s %s %s · %s · %s corridas\n", cursor, checkbox,
		platformName(ex), FormatDate(in.Date), FormatAmount(in.Amount), strconv.Itoa(in.Trips))
	fmt.Fprintf(w, "      já lançada em %s: %s, %d corridas %s\n",
		ex.CreatedAt.Format("02/01 15:04"), FormatAmount(ex.Amount), ex.Trips, faintStyle.Render(ex.Notes))
}

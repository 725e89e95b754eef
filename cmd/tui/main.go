package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/newgestao/drivercontrol/cmd/tui/internal/view"
	"github.com/newgestao/drivercontrol/internal/catalog"
	catalogStore "github.com/newgestao/drivercontrol/internal/catalog/store"
	"github.com/newgestao/drivercontrol/internal/config"
	"github.com/newgestao/drivercontrol/internal/dashboard"
	"github.com/newgestao/drivercontrol/internal/database"
	"github.com/newgestao/drivercontrol/internal/expense"
	expenseStore "github.com/newgestao/drivercontrol/internal/expense/store"
	"github.com/newgestao/drivercontrol/internal/goal"
	goalStore "github.com/newgestao/drivercontrol/internal/goal/store"
	"github.com/newgestao/drivercontrol/internal/importer"
	"github.com/newgestao/drivercontrol/internal/importer/statement"
	"github.com/newgestao/drivercontrol/internal/matching"
	matchingStore "github.com/newgestao/drivercontrol/internal/matching/store"
	"github.com/newgestao/drivercontrol/internal/period"
	"github.com/newgestao/drivercontrol/internal/recurring"
	recurringStore "github.com/newgestao/drivercontrol/internal/recurring/store"
	"github.com/newgestao/drivercontrol/internal/revenue"
	revenueStore "github.com/newgestao/drivercontrol/internal/revenue/store"
)

type model struct {
	userID           uuid.UUID
	clock            period.Clock
	revenueService   *revenue.Service
	goalService      *goal.Service
	importService    *importer.Service
	dashboardService *dashboard.Service

	currentView View

	dashboardView view.DashboardModel
	revenueView   view.RevenueListModel
	goalsView     view.GoalsModel
	importView    view.ImportModel
	exportView    view.ExportModel
}

type View int

const (
	ViewMenu      View = 0
	ViewDashboard View = 1
	ViewRevenues  View = 2
	ViewGoals     View = 3
	ViewImport    View = 4
	ViewExport    View = 5
)

func initialModel() (model, error) {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return model{}, err
	}

	userID, err := uuid.Parse(cfg.TUI.UserID)
	if err != nil {
		return model{}, fmt.Errorf("TUI_USER_ID must be a uuid: %w", err)
	}

	loc, err := cfg.Location()
	if err != nil {
		return model{}, err
	}

	db, err := database.New(cfg.ConnectionString(), database.PoolConfig{
		MaxOpenConns: cfg.DB.MaxOpenConns,
		MaxIdleConns: cfg.DB.MaxIdleConns,
		ConnLifetime: cfg.DB.ConnLifetime,
	})
	if err != nil {
		return model{}, fmt.Errorf("connecting to database: %w", err)
	}

	if cfg.DB.Migrate {
		if err := database.Migrate(context.Background(), db); err != nil {
			return model{}, err
		}
	}

	clock := period.SystemClock{Location: loc}

	revenueSvc := revenue.NewService(revenueStore.New(db))
	goalSvc := goal.NewService(goalStore.New(db))
	matchingSvc := matching.NewService(matchingStore.New(db))
	catalogSvc := catalog.NewService(catalogStore.New(db), matchingSvc)
	importSvc := importer.NewService(statement.NewParser(), catalogSvc, revenueSvc)
	dashboardSvc := dashboard.NewService(
		revenueSvc,
		expense.NewService(expenseStore.New(db)),
		recurring.NewService(recurringStore.New(db), clock),
		goalSvc,
		clock,
	)

	return model{
		userID:           userID,
		clock:            clock,
		revenueService:   revenueSvc,
		goalService:      goalSvc,
		importService:    importSvc,
		dashboardService: dashboardSvc,
		currentView:      ViewMenu,
	}, nil
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewDashboard
				m.dashboardView = view.NewDashboardModel(m.dashboardService, m.userID)

				return m, m.dashboardView.Init()
			case "2":
				m.currentView = ViewRevenues
				m.revenueView = view.NewRevenueListModel(m.revenueService, m.userID, m.clock)

				return m, m.revenueView.Init()
			case "3":
				m.currentView = ViewGoals
				m.goalsView = view.NewGoalsModel(m.goalService, m.userID, m.clock)

				return m, m.goalsView.Init()
			case "4":
				m.currentView = ViewImport
				m.importView = view.NewImportModel(m.revenueService, m.importService, m.userID)

				return m, m.importView.Init()
			case "5":
				m.currentView = ViewExport
				m.exportView = view.NewExportModel(m.dashboardService, m.userID)

				return m, m.exportView.Init()
			}
		}

		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewDashboard:
		var newModel tea.Model
		newModel, cmd = m.dashboardView.Update(msg)
		m.dashboardView = newModel.(view.DashboardModel)
	case ViewRevenues:
		var newModel tea.Model
		newModel, cmd = m.revenueView.Update(msg)
		m.revenueView = newModel.(view.RevenueListModel)
	case ViewGoals:
		var newModel tea.Model
		newModel, cmd = m.goalsView.Update(msg)
		m.goalsView = newModel.(view.GoalsModel)
	case ViewImport:
		var newModel tea.Model
		newModel, cmd = m.importView.Update(msg)
		m.importView = newModel.(view.ImportModel)
	case ViewExport:
		var newModel tea.Model
		newModel, cmd = m.exportView.Update(msg)
		m.exportView = newModel.(view.ExportModel)
	}

	return m, cmd
}

func (m model) View() string {
	var current view.View

	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"Driver Control\n\n" +
				"1. Painel\n" +
				"2. Receitas\n" +
				"3. Metas diárias\n" +
				"4. Importar extrato\n" +
				"5. Exportar relatório\n\n" +
				"q. Sair",
		)
	case ViewDashboard:
		current = m.dashboardView
	case ViewRevenues:
		current = m.revenueView
	case ViewGoals:
		current = m.goalsView
	case ViewImport:
		current = m.importView
	case ViewExport:
		current = m.exportView
	default:
		return "Tela desconhecida"
	}

	return view.Frame(current)
}

func main() {
	m, err := initialModel()
	if err != nil {
		slog.Error("failed to start TUI", "error", err)
		os.Exit(1)
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}

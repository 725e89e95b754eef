package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/newgestao/drivercontrol/internal/catalog"
	catalogStore "github.com/newgestao/drivercontrol/internal/catalog/store"
	"github.com/newgestao/drivercontrol/internal/config"
	"github.com/newgestao/drivercontrol/internal/dashboard"
	"github.com/newgestao/drivercontrol/internal/database"
	"github.com/newgestao/drivercontrol/internal/expense"
	expenseStore "github.com/newgestao/drivercontrol/internal/expense/store"
	"github.com/newgestao/drivercontrol/internal/goal"
	goalStore "github.com/newgestao/drivercontrol/internal/goal/store"
	apiHttp "github.com/newgestao/drivercontrol/internal/http"
	"github.com/newgestao/drivercontrol/internal/http/auth"
	catalogHandler "github.com/newgestao/drivercontrol/internal/http/catalog"
	dashboardHandler "github.com/newgestao/drivercontrol/internal/http/dashboard"
	expenseHandler "github.com/newgestao/drivercontrol/internal/http/expense"
	goalHandler "github.com/newgestao/drivercontrol/internal/http/goal"
	importHandler "github.com/newgestao/drivercontrol/internal/http/importcsv"
	matchingHandler "github.com/newgestao/drivercontrol/internal/http/matching"
	recurringHandler "github.com/newgestao/drivercontrol/internal/http/recurring"
	revenueHandler "github.com/newgestao/drivercontrol/internal/http/revenue"
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

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	if err := run(); err != nil {
		slog.Error("api stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if cfg.Auth.JWTSecret == "" {
		return errors.New("AUTH_JWT_SECRET is required")
	}

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	db, err := database.New(cfg.ConnectionString(), database.PoolConfig{
		MaxOpenConns: cfg.DB.MaxOpenConns,
		MaxIdleConns: cfg.DB.MaxIdleConns,
		ConnLifetime: cfg.DB.ConnLifetime,
	})
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.DB.Migrate {
		if err := database.Migrate(ctx, db); err != nil {
			return err
		}
	}

	clock := period.SystemClock{Location: loc}

	var (
		revenueService   = revenue.NewService(revenueStore.New(db))
		expenseService   = expense.NewService(expenseStore.New(db))
		recurringService = recurring.NewService(recurringStore.New(db), clock)
		goalService      = goal.NewService(goalStore.New(db))
		matchingService  = matching.NewService(matchingStore.New(db))
		catalogService   = catalog.NewService(catalogStore.New(db), matchingService)
		importService    = importer.NewService(statement.NewParser(), catalogService, revenueService)
		dashboardService = dashboard.NewService(revenueService, expenseService, recurringService, goalService, clock)
	)

	router := apiHttp.New(apiHttp.Handlers{
		Revenues:  revenueHandler.NewHandler(revenueService),
		Expenses:  expenseHandler.NewHandler(expenseService),
		Recurring: recurringHandler.NewHandler(recurringService),
		Goals:     goalHandler.NewHandler(goalService),
		Dashboard: dashboardHandler.NewHandler(dashboardService),
		Catalog:   catalogHandler.NewHandler(catalogService),
		Import:    importHandler.NewHandler(importService, revenueService),
		Matching:  matchingHandler.NewHandler(matchingService, catalogService),
	}, auth.NewVerifier(cfg.Auth.JWTSecret, cfg.Auth.Issuer), cfg.CORS.AllowedOrigins)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	errCh := make(chan error, 1)

	go func() {
		slog.Info("starting server", "addr", srv.Addr, "timezone", loc.String())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}

		return nil
	case <-ctx.Done():
	}

	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/alexanderramin/itinera/internal/catalog"
	"github.com/alexanderramin/itinera/internal/cli"
	"github.com/alexanderramin/itinera/internal/config"
	"github.com/alexanderramin/itinera/internal/db"
	"github.com/alexanderramin/itinera/internal/logging"
	"github.com/alexanderramin/itinera/internal/notify"
	"github.com/alexanderramin/itinera/internal/repository"
	"github.com/alexanderramin/itinera/internal/schedule"
	"github.com/alexanderramin/itinera/internal/service"
	"github.com/alexanderramin/itinera/internal/store"
	"github.com/alexanderramin/itinera/internal/template"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfgPath := config.ConfigPath()
	cfg, err := config.LoadFrom(cfgPath)
	if err != nil {
		return err
	}
	logger := logging.Setup(cfg.General.LogLevel)
	if !config.Exists() {
		logger.Debug("no config file, using defaults", "path", cfgPath)
	}

	// Open database
	database, err := db.OpenDB(cfg.General.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	cat := catalog.Builtin()
	if cfg.General.CatalogPath != "" {
		if cat, err = catalog.Load(cfg.General.CatalogPath); err != nil {
			return err
		}
	}

	// Wire repositories
	planRepo := repository.NewSQLitePlanRepo(database)
	stateRepo := repository.NewSQLiteStateRepo(database)
	budgetRepo := repository.NewSQLiteBudgetRepo(database)

	mutator := schedule.New()
	sink := notify.Multi{notify.NewTerminalSink(os.Stderr), notify.LogSink{Logger: logger}}
	ws := service.NewWorkspace(
		planRepo, stateRepo,
		db.NewSQLiteUnitOfWork(database),
		store.New(mutator), mutator, sink,
		service.NewSlogUseCaseObserver(logger),
	)
	if err := ws.Load(ctx); err != nil {
		return err
	}

	app := &cli.App{
		Plans:     service.NewPlanService(ws),
		Schedule:  service.NewScheduleService(ws, cat),
		Gate:      ws,
		Templates: service.NewTemplateService(ws, template.NewDirSource(cfg.General.TemplatesDir, cat, logger)),
		Budget: service.NewBudgetService(ws, budgetRepo,
			cfg.Budget.InitialSettings(), cfg.Budget.RateTable()),
		Checklist:  service.NewChecklistService(ws),
		Catalog:    cat,
		Config:     &cfg,
		ConfigPath: cfgPath,
	}

	// Prompts need a terminal on both ends.
	app.IsInteractive = func() bool {
		return isTerminal(os.Stdin) && isTerminal(os.Stderr)
	}

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

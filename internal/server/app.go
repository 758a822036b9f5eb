// Package server initializes and runs the decat backend: it opens the
// database, applies migrations, wires the services and serves the HTTP API
// until interrupted.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/asorokin/decat/internal/logging"
	"github.com/asorokin/decat/internal/server/config"
	"github.com/asorokin/decat/internal/server/httpapi"
	"github.com/asorokin/decat/internal/server/mail"
	"github.com/asorokin/decat/internal/server/repositories/repomanager"
	"github.com/asorokin/decat/internal/server/services"

	_ "github.com/jackc/pgx/v5/stdlib"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB

	userService   *services.UserService
	entryService  *services.EntryService
	exportService *services.ExportService
}

func NewApp(cfg *config.Config) (*App, error) {

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()

	if err := rm.RunMigrations(context.Background(), db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	mailer := mail.NewLogMailer(logger)

	us := services.NewUserService(db, rm, mailer, cfg)
	es := services.NewEntryService(db, rm, cfg)
	xs := services.NewExportService(db, rm, cfg)

	return &App{
		config:        cfg,
		logger:        logger,
		db:            db,
		userService:   us,
		entryService:  es,
		exportService: xs,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := httpapi.NewServer(app.config.EndpointAddr, app.logger,
		app.userService, app.entryService, app.exportService, app.config.SecretKey)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err)
	}
}

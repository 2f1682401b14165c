package identity

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/noteboard/noteboard/internal/events"
	"github.com/noteboard/noteboard/internal/identity/config"
	"github.com/noteboard/noteboard/internal/identity/migrations"
	"github.com/noteboard/noteboard/internal/logging"
)

// App wires the identity service together: database, event bus,
// service layer and the HTTP endpoint.
type App struct {
	config  *config.Config
	logger  logging.Logger
	db      *sql.DB
	bus     *events.Bus
	handler *Handler
}

func NewApp(cfg *config.Config) (*App, error) {

	logger := logging.NewJSON(os.Stdout).With("service", "identity")

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	bus := events.NewBus(cfg.RedisAddr, logger)

	repo := NewPostgresRepository(db)
	service := NewService(repo, bus, logger, []byte(cfg.JWTSecret), cfg.TokenValidity)
	handler := NewHandler(service, logger)

	return &App{config: cfg, logger: logger, db: db, bus: bus, handler: handler}, nil
}

func (app *App) runMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}
	if err := goose.UpContext(ctx, app.db, "."); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}
	return nil
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

	srv := &http.Server{
		Addr:    app.config.Addr,
		Handler: app.handler.Router([]byte(app.config.JWTSecret)),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			app.logger.Error(shutdownCtx, "shutdown error", "error", err.Error())
		}
	}()

	app.logger.Info(ctx, "listening", "addr", app.config.Addr)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		app.logger.Error(ctx, "server error", "error", err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) error {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "starting identity service")

	app.initSignalHandler(cancelFunc)

	if err := app.runMigrations(ctx); err != nil {
		return err
	}

	if err := app.bus.Ping(ctx); err != nil {
		app.logger.Warn(ctx, "event bus unreachable, events will be dropped", "error", err.Error())
	}

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.bus.Close(); err != nil {
		app.logger.Error(ctx, "bus close error", "error", err.Error())
	}
	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err.Error())
	}

	return nil
}

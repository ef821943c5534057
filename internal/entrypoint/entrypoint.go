package entrypoint

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/mrlokans/moodsnapshot/internal/config"
	"github.com/mrlokans/moodsnapshot/internal/database"
	http_controllers "github.com/mrlokans/moodsnapshot/internal/http"
	"github.com/mrlokans/moodsnapshot/internal/journal"
	"github.com/mrlokans/moodsnapshot/internal/logger"
	"github.com/mrlokans/moodsnapshot/internal/scheduler"
	"github.com/mrlokans/moodsnapshot/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// Serve runs router until SIGINT or SIGTERM, then shuts down within the
// configured timeout.
func Serve(router *gin.Engine, cfg *config.Config, log zerolog.Logger, onShutdown ShutdownFunc) error {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second
	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)

	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err, ok := <-serveErr:
		if ok {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-quit:
	}
	log.Info().Dur("timeout", timeout).Msg("Shutdown Server")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Stop background work first so nothing writes after the database closes.
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	log.Info().Msg("Server exiting")
	return nil
}

// App is the assembled service: the journal, its store and the optional
// background workers.
type App struct {
	Log       zerolog.Logger
	DB        *database.Database
	Journal   *journal.Service
	Tasks     *tasks.Client
	Retention *scheduler.RetentionScheduler

	taskCancel context.CancelFunc
}

// Build opens the store and wires the journal, the task queue and the retention
// scheduler according to cfg. Nothing is started.
func Build(cfg *config.Config, log zerolog.Logger) (*App, error) {
	loc, err := cfg.Journal.Location()
	if err != nil {
		return nil, err
	}
	if cfg.Retention.Enabled {
		if err := scheduler.ValidateSchedule(cfg.Retention.Schedule); err != nil {
			return nil, fmt.Errorf("invalid RETENTION_SCHEDULE %q: %w", cfg.Retention.Schedule, err)
		}
		if cfg.Retention.Days < 0 {
			return nil, fmt.Errorf("RETENTION_DAYS must not be negative, got %d", cfg.Retention.Days)
		}
	}

	db, err := database.NewDatabase(cfg.Database.Path, database.WithLogger(logger.ForGorm(log)))
	if err != nil {
		return nil, err
	}

	app := &App{
		Log: log,
		DB:  db,
		Journal: journal.New(db,
			journal.WithLocation(loc),
			journal.WithLogger(log),
			journal.WithTagLimits(cfg.Journal.FrequentTags, cfg.Journal.TopTags),
		),
	}

	if cfg.Tasks.Enabled {
		taskCfg := tasks.Config{
			Workers:         cfg.Tasks.Workers,
			ReleaseAfter:    cfg.Tasks.ReleaseAfter,
			CleanupInterval: cfg.Tasks.CleanupInterval,
		}
		app.Tasks, err = tasks.NewClient(cfg.Database.Path, taskCfg, log)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to initialize task queue: %w", err)
		}
		app.Tasks.Register(
			tasks.NewPurgeMoodsQueue(app.Journal, log),
			tasks.NewRebuildTagUsageQueue(app.Journal, log),
		)
	}

	if cfg.Retention.Enabled {
		var queue scheduler.PurgeQueue
		if app.Tasks != nil {
			queue = app.Tasks
		}
		app.Retention = scheduler.NewRetentionScheduler(scheduler.RetentionConfig{
			Schedule: cfg.Retention.Schedule,
			Days:     cfg.Retention.Days,
			Location: loc,
		}, queue, app.Journal, log)
	}

	return app, nil
}

// TaskQueue returns the task client as a router dependency, or nil when the
// queue is disabled.
func (a *App) TaskQueue() http_controllers.TaskQueue {
	if a.Tasks == nil {
		return nil
	}
	return a.Tasks
}

// Start launches the task workers and the retention scheduler.
func (a *App) Start() error {
	if a.Tasks != nil {
		var ctx context.Context
		ctx, a.taskCancel = context.WithCancel(context.Background())
		go a.Tasks.Start(ctx)
	}
	if a.Retention != nil {
		if err := a.Retention.Start(context.Background()); err != nil {
			return fmt.Errorf("failed to start retention scheduler: %w", err)
		}
	}
	return nil
}

// Stop halts background work. It is safe to call more than once.
func (a *App) Stop(ctx context.Context) {
	if a.Retention != nil {
		a.Retention.Stop()
	}
	if a.Tasks != nil && a.taskCancel != nil {
		a.Tasks.Stop(ctx)
		a.taskCancel()
		a.taskCancel = nil
	}
}

// Close releases the task queue and the database.
func (a *App) Close() error {
	var errs []error
	if a.Tasks != nil {
		if err := a.Tasks.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close task client: %w", err))
		}
	}
	if err := a.DB.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close database: %w", err))
	}
	return errors.Join(errs...)
}

// Router builds the HTTP API over the app.
func (a *App) Router(cfg *config.Config, version string) *gin.Engine {
	return http_controllers.NewRouter(http_controllers.RouterConfig{
		Journal:       a.Journal,
		Database:      a.DB,
		TaskQueue:     a.TaskQueue(),
		RetentionDays: cfg.Retention.Days,
		Logger:        a.Log,
		Version:       version,
	})
}

// Run starts the service and blocks until it is told to stop.
func Run(cfg *config.Config, version string) error {
	log := logger.New("moodsnapshot", logger.Options{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty})
	log.Info().Str("version", version).Str("database", cfg.Database.Path).Msg("Starting moodsnapshot")

	if log.GetLevel() > zerolog.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}

	app, err := Build(cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.Error().Err(err).Msg("Error during close")
		}
	}()

	if err := app.Start(); err != nil {
		app.Stop(context.Background())
		return err
	}
	if app.Retention != nil {
		if next := app.Retention.GetNextRunTime(); next != nil {
			log.Info().Time("next_run", *next).Int("days", cfg.Retention.Days).Msg("Retention purge scheduled")
		}
	}

	return Serve(app.Router(cfg, version), cfg, log, app.Stop)
}

package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	_ "github.com/mattn/go-sqlite3"
	"github.com/wheelibin/lumen/internal/api"
	"github.com/wheelibin/lumen/internal/bridge"
	"github.com/wheelibin/lumen/internal/concurrency"
	"github.com/wheelibin/lumen/internal/config"
	"github.com/wheelibin/lumen/internal/delivery"
	"github.com/wheelibin/lumen/internal/lifx"
	"github.com/wheelibin/lumen/internal/models"
	"github.com/wheelibin/lumen/internal/repos"
	"github.com/wheelibin/lumen/internal/state"
	"github.com/wheelibin/lumen/internal/synchronizer"
	"github.com/wheelibin/lumen/internal/watch"
)

const shutdownTimeout = 5 * time.Second

// App wires the bridge together and runs it
type App struct {
	logger *log.Logger
	cfg    *config.Config
	db     *sql.DB

	store  *state.Store
	queue  *delivery.Queue
	bridge *bridge.Bridge
	server *http.Server
}

func New(logger *log.Logger, cfg *config.Config) (*App, error) {

	db, err := sql.Open("sqlite3", cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("error opening database %s: %w", cfg.Database, err)
	}

	settingsRepo, err := repos.NewSettingsRepo(logger, db)
	if err != nil {
		db.Close()
		return nil, err
	}
	serverSetting, err := repos.NewServerSetting(logger, settingsRepo, cfg.Server)
	if err != nil {
		db.Close()
		return nil, err
	}

	// create/wire up services
	link := watch.NewLink(logger, cfg.AckTimeout)
	queue := delivery.NewQueue(logger, link, cfg.MaxAttempts)
	store := state.NewStore()
	client := lifx.NewClient(logger, serverSetting, cfg.RequestTimeout)

	sync := synchronizer.NewSynchronizer(logger, client, store, queue, concurrency.TimerScheduler{}, synchronizer.Options{
		LabelLength:       cfg.LabelLength,
		ColorRefreshDelay: cfg.ColorRefreshDelay,
	})

	var feed bridge.ChangeFeed
	if cfg.EventStream.Enabled {
		feed = lifx.NewChangeFeed(logger, serverSetting, cfg.EventStream.Path)
	}
	b := bridge.NewBridge(logger, sync, store, feed, cfg.EventStream.Debounce)

	link.OnCommand(b.Submit)
	link.OnConnect(queue.Drain)

	srv := api.NewServer(logger, link, serverSetting, b, store)

	return &App{
		logger: logger,
		cfg:    cfg,
		db:     db,
		store:  store,
		queue:  queue,
		bridge: b,
		server: &http.Server{Addr: cfg.Listen, Handler: srv.Router(), ReadHeaderTimeout: 10 * time.Second},
	}, nil
}

// PublishTo receives a snapshot of the lights after every operation
func (a *App) PublishTo(ch chan<- []models.Light) {
	a.bridge.PublishTo(ch)
}

func (a *App) Handler() http.Handler {
	return a.server.Handler
}

// Start runs the delivery queue and the bridge until the context is cancelled
func (a *App) Start(ctx context.Context) {
	go a.queue.Run(ctx)
	go a.bridge.Run(ctx)
}

// Close releases the database
func (a *App) Close() error {
	return a.db.Close()
}

// Run serves until the context is cancelled or the listener fails
func (a *App) Run(ctx context.Context) error {
	defer a.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.Start(ctx)

	errs := make(chan error, 1)
	go func() {
		a.logger.Info("Listening for the wearable", "addr", a.cfg.Listen)
		errs <- a.server.ListenAndServe()
	}()

	select {
	case err := <-errs:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("error serving %s: %w", a.cfg.Listen, err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		a.logger.Warn("Unclean shutdown", "err", err)
	}
	return nil
}

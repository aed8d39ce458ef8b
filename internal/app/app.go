// Package app initializes and runs the board service.
// It assembles configuration, logging, the one-shot remote seed, the
// session and the HTTP command surface, and handles graceful shutdown.
package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/patric-chuzhbe/crudboard/internal/config"
	"github.com/patric-chuzhbe/crudboard/internal/logger"
	"github.com/patric-chuzhbe/crudboard/internal/remote"
	"github.com/patric-chuzhbe/crudboard/internal/router"
	"github.com/patric-chuzhbe/crudboard/internal/session"
)

// App encapsulates the configuration, the board session and the HTTP
// handler of the command surface.
type App struct {
	cfg         *config.Config
	session     *session.Session
	httpHandler http.Handler
}

// New initializes a new instance of App by:
// - loading configuration
// - initializing the logger
// - creating the seed loader and an unloaded session
// - setting up the router and middleware
func New() (*App, error) {
	app := &App{}

	var err error
	app.cfg, err = config.New()
	if err != nil {
		return nil, err
	}

	err = logger.Init(app.cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	app.session = session.New(
		remote.New(
			app.cfg.UsersEndpoint,
			app.cfg.PostsEndpoint,
			app.cfg.PostsFetchLimit,
		),
		app.cfg.UsersPageSize,
		app.cfg.PostsPageSize,
	)

	app.httpHandler = router.New(app.session)

	return app, nil
}

// Run starts the seed load and the HTTP server, with graceful shutdown
// on SIGINT/SIGTERM. The seed runs once, off the serving path: until it
// finishes the surface answers with the loading state, and when it fails
// the session stays loading with the cause in the log.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := a.session.Load(context.Background()); err != nil {
			logger.Log.Errorln("seed load failed, the board stays loading:", err)
			return
		}
		logger.Log.Infoln("seed load finished")
	}()

	logger.Log.Infoln("server running", "RunAddr", a.cfg.RunAddr)

	server := &http.Server{
		Addr:    a.cfg.RunAddr,
		Handler: a.httpHandler,
	}

	serverErrCh := make(chan error, 1)
	go func() {
		serverErrCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Log.Infoln("Received shutdown signal, exiting...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}

		return nil

	case err := <-serverErrCh:
		return fmt.Errorf("server error: %w", err)
	}
}

// Close finalizes resources used by App such as logging.
func (a *App) Close() {
	if err := logger.Sync(); err != nil {
		fmt.Println("Logger sync error:", err)
	}
}

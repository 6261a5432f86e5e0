// Package server runs the in-memory storefront backend over HTTP for local
// development. It mounts the REST routes under a base path, optionally seeds
// the sample catalog, and shuts down gracefully on SIGINT/SIGTERM.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrijs2005/diamondstore/internal/client/remote/remotetest"
	"github.com/dmitrijs2005/diamondstore/internal/logging"
	"github.com/dmitrijs2005/diamondstore/internal/server/config"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	backend *remotetest.Backend
}

// NewApp builds the backend and logs to w.
func NewApp(c *config.Config, w io.Writer) (*App, error) {
	logger, err := logging.New(c.LogFormat, c.LogLevel, w)
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}

	backend := remotetest.New()
	if c.Seed {
		if err := backend.Seed(); err != nil {
			return nil, fmt.Errorf("seed: %w", err)
		}
	}

	return &App{config: c, logger: logger.With("module", "stubbackend"), backend: backend}, nil
}

// Handler is the full route tree: /healthz plus the backend under BasePath.
func (app *App) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	if app.config.RequestLog {
		r.Use(app.accessLog)
	}
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	base := app.config.BasePath
	if base == "" {
		base = "/"
	}
	r.Mount(base, app.backend)
	return r
}

func (app *App) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		app.logger.Info(r.Context(), "request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

// Serve handles requests on ln until ctx is cancelled, then gives in-flight
// requests ShutdownTimeout to finish.
func (app *App) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           app.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		app.logger.Info(ctx, "Starting HTTP server", "address", ln.Addr().String(), "base_path", app.config.BasePath)
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	app.logger.Info(context.Background(), "Stopping HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), app.config.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) func() {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	done := make(chan struct{})
	go func() {
		select {
		case <-sigs:
			cancelFunc()
		case <-done:
		}
	}()
	return func() {
		signal.Stop(sigs)
		close(done)
	}
}

// Run listens on Addr and serves until a signal arrives or ctx ends.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	stop := app.initSignalHandler(cancelFunc)
	defer stop()

	ln, err := net.Listen("tcp", app.config.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", app.config.Addr, err)
	}

	var (
		wg     sync.WaitGroup
		runErr error
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.Serve(ctx, ln); err != nil {
			app.logger.Error(ctx, err.Error())
			runErr = err
			cancelFunc()
		}
	}()
	wg.Wait()

	return runErr
}

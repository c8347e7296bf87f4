package app

import (
	"context"
	"fmt"

	"log/slog"

	"github.com/jekabolt/grbpwr-analytics/config"
	httpapi "github.com/jekabolt/grbpwr-analytics/internal/api/http"
	"github.com/jekabolt/grbpwr-analytics/internal/apisrv/admin"
	"github.com/jekabolt/grbpwr-analytics/internal/dependency"
	"github.com/jekabolt/grbpwr-analytics/internal/overview"
	"github.com/jekabolt/grbpwr-analytics/internal/ratelimit"
	"github.com/jekabolt/grbpwr-analytics/internal/store"
)

// App is the main application
type App struct {
	hs      *httpapi.Server
	db      dependency.Repository
	ow      *overview.Worker
	limiter *ratelimit.MultiKeyLimiter
	c       *config.Config
	done    chan struct{}
}

// New returns a new instance of App
func New(c *config.Config) *App {
	return &App{
		c:    c,
		done: make(chan struct{}),
	}
}

// Start starts the app
func (a *App) Start(ctx context.Context) error {
	var err error
	slog.Default().InfoContext(ctx, "starting analytics")

	a.db, err = store.New(ctx, a.c.DB)
	if err != nil {
		slog.Default().ErrorContext(ctx, "couldn't connect to mysql",
			slog.String("err", err.Error()),
		)
		return err
	}

	adminS, err := admin.New(&a.c.Analytics, a.db, nil)
	if err != nil {
		slog.Default().ErrorContext(ctx, "failed create new analytics server",
			slog.String("err", err.Error()),
		)
		return err
	}

	a.ow = overview.New(&a.c.Overview, adminS, nil)
	if err := a.ow.Start(ctx); err != nil {
		return fmt.Errorf("cannot start overview worker: %w", err)
	}

	a.limiter = ratelimit.NewMultiKeyLimiter(&a.c.RateLimit)

	// start API server
	a.hs = httpapi.New(&a.c.HTTP, a.limiter)
	if err = a.hs.Start(ctx, adminS, a.ow); err != nil {
		slog.Default().ErrorContext(ctx, "cannot start http server",
			slog.String("err", err.Error()),
		)
		return err
	}

	go func() {
		<-a.hs.Done()
		a.close()
	}()

	return nil
}

// Stop stops the application and waits for all services to exit
func (a *App) Stop(ctx context.Context) {
	if a.hs != nil {
		if err := a.hs.Stop(ctx); err != nil {
			slog.Default().ErrorContext(ctx, "http server shutdown failed",
				slog.String("err", err.Error()),
			)
		}
		<-a.done
		return
	}
	a.close()
}

func (a *App) close() {
	if a.ow != nil {
		_ = a.ow.Stop()
	}
	if a.limiter != nil {
		a.limiter.Close()
	}
	if a.db != nil {
		a.db.Close()
	}
	close(a.done)
}

// Done returns a channel that is closed after the application has exited
func (a *App) Done() chan struct{} {
	return a.done
}

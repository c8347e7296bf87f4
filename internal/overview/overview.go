package overview

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jekabolt/grbpwr-analytics/internal/dto"
	"github.com/jekabolt/grbpwr-analytics/internal/form"
)

// Config holds configuration for the overview refresh worker.
type Config struct {
	WorkerInterval time.Duration `mapstructure:"worker_interval"`
	TTL            time.Duration `mapstructure:"ttl"` // cached overview is served while younger than this
}

// DefaultConfig returns default configuration values.
func DefaultConfig() Config {
	return Config{
		WorkerInterval: time.Minute,
		TTL:            5 * time.Minute,
	}
}

// Builder computes an overview for a query.
type Builder interface {
	GetOverview(ctx context.Context, q *form.AnalyticsQuery) (*dto.OverviewResponse, error)
}

// Worker keeps the overview of the default query warm so parameterless
// dashboard loads skip the snapshot read.
type Worker struct {
	b   Builder
	c   *Config
	now func() time.Time

	mu        sync.RWMutex
	cached    *dto.OverviewResponse
	refreshed time.Time

	ctx  context.Context
	stop context.CancelFunc
}

// New creates a new overview worker. A nil clock means time.Now.
func New(c *Config, b Builder, now func() time.Time) *Worker {
	if c == nil {
		dc := DefaultConfig()
		c = &dc
	}
	if c.WorkerInterval == 0 {
		c.WorkerInterval = time.Minute
	}
	if c.TTL == 0 {
		c.TTL = 5 * time.Minute
	}
	if now == nil {
		now = time.Now
	}
	return &Worker{
		b:   b,
		c:   c,
		now: now,
	}
}

// Start refreshes the overview once and keeps refreshing it in the background.
func (w *Worker) Start(ctx context.Context) error {
	if w.ctx != nil && w.stop != nil {
		return fmt.Errorf("overview worker already started")
	}
	w.ctx, w.stop = context.WithCancel(ctx)
	w.refresh(w.ctx)
	go w.worker(w.ctx)
	return nil
}

// Stop stops the worker gracefully.
func (w *Worker) Stop() error {
	if w.stop == nil {
		return fmt.Errorf("overview worker already stopped or not started")
	}
	w.stop()
	w.stop = nil
	return nil
}

// Get returns the cached default overview if it is younger than the TTL.
func (w *Worker) Get() (*dto.OverviewResponse, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.cached == nil || w.now().Sub(w.refreshed) > w.c.TTL {
		return nil, false
	}
	return w.cached, true
}

func (w *Worker) set(o *dto.OverviewResponse) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.cached = o
	w.refreshed = w.now()
}

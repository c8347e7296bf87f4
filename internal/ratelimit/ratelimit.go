package ratelimit

import (
	"fmt"
	"sync"
	"time"

	gerr "github.com/jekabolt/grbpwr-analytics/internal/errors"
)

// Limiter implements a simple in-memory fixed window rate limiter
type Limiter struct {
	mu       sync.RWMutex
	counters map[string]*counter
	window   time.Duration
	max      int
	done     chan struct{}
	once     sync.Once
}

type counter struct {
	count     int
	expiresAt time.Time
}

// NewLimiter creates a new rate limiter with the specified window and max requests
func NewLimiter(window time.Duration, max int) *Limiter {
	l := &Limiter{
		counters: make(map[string]*counter),
		window:   window,
		max:      max,
		done:     make(chan struct{}),
	}
	go l.cleanup(time.Minute)
	return l
}

// Allow checks if a request for the given key is allowed
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	c, exists := l.counters[key]

	if !exists || now.After(c.expiresAt) {
		l.counters[key] = &counter{
			count:     1,
			expiresAt: now.Add(l.window),
		}
		return true
	}

	if c.count >= l.max {
		return false
	}

	c.count++
	return true
}

// GetRemaining returns the number of remaining requests for the given key
func (l *Limiter) GetRemaining(key string) int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	now := time.Now()
	c, exists := l.counters[key]

	if !exists || now.After(c.expiresAt) {
		return l.max
	}

	remaining := l.max - c.count
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Close stops the cleanup goroutine.
func (l *Limiter) Close() {
	l.once.Do(func() { close(l.done) })
}

// cleanup periodically removes expired counters
func (l *Limiter) cleanup(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.evict(time.Now())
		case <-l.done:
			return
		}
	}
}

func (l *Limiter) evict(now time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for key, c := range l.counters {
		if now.After(c.expiresAt) {
			delete(l.counters, key)
		}
	}
}

func (l *Limiter) size() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.counters)
}

// Config holds per-client request limits.
type Config struct {
	QueriesPerMinute   int `mapstructure:"queries_per_minute"`
	OverviewsPerMinute int `mapstructure:"overviews_per_minute"`
}

// DefaultConfig returns default configuration values.
func DefaultConfig() Config {
	return Config{
		QueriesPerMinute:   120,
		OverviewsPerMinute: 20,
	}
}

const (
	keyQuery    = "ip_query"
	keyOverview = "ip_overview"
)

// MultiKeyLimiter manages multiple rate limiters for different types of operations
type MultiKeyLimiter struct {
	limiters map[string]*Limiter
	mu       sync.RWMutex
}

// NewMultiKeyLimiter creates a multi-key limiter. Zero limits fall back to defaults.
func NewMultiKeyLimiter(c *Config) *MultiKeyLimiter {
	dc := DefaultConfig()
	if c == nil {
		c = &dc
	}
	queries, overviews := c.QueriesPerMinute, c.OverviewsPerMinute
	if queries <= 0 {
		queries = dc.QueriesPerMinute
	}
	if overviews <= 0 {
		overviews = dc.OverviewsPerMinute
	}
	return &MultiKeyLimiter{
		limiters: map[string]*Limiter{
			keyQuery:    NewLimiter(time.Minute, queries),
			keyOverview: NewLimiter(time.Minute, overviews),
		},
	}
}

// CheckQuery verifies if an analytics query is allowed from the given client
func (m *MultiKeyLimiter) CheckQuery(client string) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.limiters[keyQuery].Allow(client) {
		return fmt.Errorf("%w: too many analytics requests, please slow down", gerr.ErrRateLimited)
	}
	return nil
}

// CheckOverview verifies if an overview, which reads the full snapshot, is
// allowed from the given client. It also counts as a query.
func (m *MultiKeyLimiter) CheckOverview(client string) error {
	if err := m.CheckQuery(client); err != nil {
		return err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.limiters[keyOverview].Allow(client) {
		return fmt.Errorf("%w: too many overview requests, please try again later", gerr.ErrRateLimited)
	}
	return nil
}

// GetQueryRemaining returns remaining query attempts for the client
func (m *MultiKeyLimiter) GetQueryRemaining(client string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.limiters[keyQuery].GetRemaining(client)
}

// Close stops every limiter.
func (m *MultiKeyLimiter) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, l := range m.limiters {
		l.Close()
	}
}

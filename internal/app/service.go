// Package service runs the refresh loop and holds the latest rendered board
// for the HTTP layer.
package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rmclanahan/nasea-leaderboard/internal/domain/schema"
	"github.com/rmclanahan/nasea-leaderboard/internal/domain/scoring"
	"github.com/rmclanahan/nasea-leaderboard/internal/render"
	"github.com/rmclanahan/nasea-leaderboard/internal/source"
	"github.com/rmclanahan/nasea-leaderboard/pkg/logger"
	"github.com/rmclanahan/nasea-leaderboard/pkg/metrics"
)

// Board render states, also used as metric labels.
const (
	StateBoard = "board"
	StateEmpty = "empty"
	StateError = "error"
)

// Status describes the recent health of the refresh loop.
type Status struct {
	ConsecutiveFailures int
	LastError           string
	LastAttempt         time.Time
	LastSuccess         time.Time
}

// Service glues source, pipeline and renderer together. Each tick runs the
// pipeline synchronously start to finish; the only state carried across
// ticks is the source cache and the latest rendered page.
type Service struct {
	mu sync.RWMutex

	// Wiring
	provider source.Provider
	scorer   *scoring.Scorer
	renderer *render.Renderer
	logger   logger.Logger

	// Configuration
	csvURL            string
	pageSize          int
	refreshInterval   time.Duration
	cacheTTL          time.Duration
	fetchTimeout      time.Duration
	fetchRetries      int
	crackedPenalty    float64
	emRefund          float64
	displayMultiplier float64

	// Per-tick state
	tick        int
	html        []byte
	state       string
	entries     int
	dropped     int
	lastRefresh time.Time
	status      Status

	started bool
	stopCh  chan struct{}
	now     func() time.Time
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithCSVURL sets the published CSV to pull from.
func WithCSVURL(url string) Option {
	return func(s *Service) { s.csvURL = url }
}

// WithProvider injects a row provider directly, bypassing the CSV client
// construction. Used by tests.
func WithProvider(p source.Provider) Option {
	return func(s *Service) {
		if p != nil {
			s.provider = p
		}
	}
}

// WithPageSize sets the rows shown per rotation page.
func WithPageSize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.pageSize = n
		}
	}
}

// WithRefreshInterval sets the tick interval.
func WithRefreshInterval(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.refreshInterval = d
		}
	}
}

// WithCacheTTL sets the fetch cache window.
func WithCacheTTL(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.cacheTTL = d
		}
	}
}

// WithFetchTimeout bounds a single upstream fetch.
func WithFetchTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.fetchTimeout = d
		}
	}
}

// WithFetchRetries sets attempts per tick fetch. Values above one opt into
// the retrying decorator; the default is a single attempt so a failed fetch
// is fatal for its tick.
func WithFetchRetries(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.fetchRetries = n
		}
	}
}

// WithScoringConstants sets the mid-tier penalty and EM refund in the
// configured unit.
func WithScoringConstants(crackedPenalty, emRefund float64) Option {
	return func(s *Service) {
		s.crackedPenalty = crackedPenalty
		s.emRefund = emRefund
	}
}

// WithDisplayMultiplier sets the unit-to-dollars factor used at render time.
func WithDisplayMultiplier(m float64) Option {
	return func(s *Service) {
		if m > 0 {
			s.displayMultiplier = m
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.logger = log
		}
	}
}

// WithClock overrides the wall clock. Used by tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		pageSize:          18,
		refreshInterval:   10 * time.Second,
		cacheTTL:          10 * time.Second,
		fetchTimeout:      10 * time.Second,
		fetchRetries:      1,
		displayMultiplier: 1000, // default unit is $K
		state:             StateEmpty,
		stopCh:            make(chan struct{}),
		now:               time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start wires the components, runs the first refresh, and launches the tick
// loop. The first refresh happens before Start returns so the board is never
// served uninitialized.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	if s.provider == nil {
		if s.csvURL == "" {
			s.mu.Unlock()
			return errors.New("no csv url and no provider configured")
		}
		var provider source.Provider = source.NewCSVClient(s.csvURL, source.WithTimeout(s.fetchTimeout))
		if s.fetchRetries > 1 {
			provider = source.NewRetrying(provider, s.logger, s.fetchRetries, 0)
		}
		s.provider = source.NewCached(provider, s.cacheTTL, s.now)
	}

	scoringOpts := []scoring.Option{}
	if s.crackedPenalty > 0 {
		scoringOpts = append(scoringOpts, scoring.WithCrackedPenalty(s.crackedPenalty))
	}
	if s.emRefund > 0 {
		scoringOpts = append(scoringOpts, scoring.WithEMRefund(s.emRefund))
	}
	s.scorer = scoring.New(scoringOpts...)

	renderer, err := render.New(
		render.WithDisplayMultiplier(s.displayMultiplier),
		render.WithRefreshSeconds(int(s.refreshInterval/time.Second)),
	)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.renderer = renderer

	// A fresh channel per start; a loop from a previous generation keeps
	// its own and exits without touching this one.
	s.stopCh = make(chan struct{})
	stop := s.stopCh
	s.started = true
	s.mu.Unlock()

	s.logger.Info(ctx, "starting leaderboard service",
		logger.Int("page_size", s.pageSize),
		logger.Int("refresh_interval_sec", int(s.refreshInterval/time.Second)),
	)

	s.Refresh(ctx)
	go s.loop(ctx, stop)
	return nil
}

// Stop halts the refresh loop.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return
	}
	select {
	case <-s.stopCh:
	default:
		close(s.stopCh)
	}
	s.started = false
}

func (s *Service) loop(ctx context.Context, stop <-chan struct{}) {
	ticker := time.NewTicker(s.refreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-stop:
			return
		case <-ticker.C:
			s.Refresh(ctx)
		}
	}
}

// Refresh runs one full tick: fetch, pipeline, render, swap in the result.
// Fatal tick errors replace the whole board with a diagnostic page; the next
// tick retries naturally.
func (s *Service) Refresh(ctx context.Context) {
	start := s.now()
	refreshID := uuid.NewString()
	metrics.RecordRefreshCycle()

	s.mu.Lock()
	tick := s.tick
	s.tick++
	s.mu.Unlock()

	table, err := s.provider.Fetch(ctx)
	if err != nil {
		s.failTick(ctx, refreshID, "Data source unavailable: "+err.Error(), err)
		return
	}

	result, err := RunPipeline(table, tick, s.pageSize, s.scorer)
	if err != nil {
		if errors.Is(err, schema.ErrMismatch) {
			metrics.RecordSchemaMismatch()
		}
		s.failTick(ctx, refreshID, err.Error(), err)
		return
	}

	html, err := s.renderer.Board(result.View, result.PageEntries, s.now())
	if err != nil {
		s.failTick(ctx, refreshID, "Render failed: "+err.Error(), err)
		return
	}

	state := StateBoard
	if result.View.Empty() {
		state = StateEmpty
	}

	s.mu.Lock()
	s.html = html
	s.state = state
	s.entries = result.View.Total
	s.dropped = result.Dropped
	s.lastRefresh = s.now()
	s.status.LastAttempt = s.now()
	s.status.LastSuccess = s.now()
	s.status.ConsecutiveFailures = 0
	s.status.LastError = ""
	s.mu.Unlock()

	metrics.RecordBoardRender(state)
	metrics.RecordRowsDropped(result.Dropped)
	metrics.UpdateTotalEntries(result.View.Total)
	metrics.UpdateTotalPages(result.View.TotalPages)
	metrics.UpdateCurrentPage(result.View.Page)
	metrics.UpdateLastRefreshUnix(s.now().Unix())
	metrics.RecordRefreshDuration(float64(s.now().Sub(start).Milliseconds()))

	s.logger.Debug(ctx, "refresh complete",
		logger.String("refresh_id", refreshID),
		logger.Int("tick", tick),
		logger.Int("entries", result.View.Total),
		logger.Int("dropped", result.Dropped),
		logger.Int("page", result.View.Page),
		logger.Int("total_pages", result.View.TotalPages),
	)
}

// failTick swaps in the error board for this tick.
func (s *Service) failTick(ctx context.Context, refreshID, message string, cause error) {
	metrics.RecordRefreshError()

	html, renderErr := s.renderer.Error(message, s.now())

	s.mu.Lock()
	if renderErr == nil {
		s.html = html
	}
	s.state = StateError
	s.status.LastAttempt = s.now()
	s.status.ConsecutiveFailures++
	s.status.LastError = cause.Error()
	s.mu.Unlock()

	metrics.RecordBoardRender(StateError)

	s.logger.Error(ctx, "refresh failed",
		logger.String("refresh_id", refreshID),
		logger.Error(cause),
	)
}

// BoardHTML returns the latest rendered page and its state.
func (s *Service) BoardHTML() ([]byte, string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.html, s.state
}

// Status returns the refresh loop health snapshot.
func (s *Service) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":       s.started,
		"state":         s.state,
		"tick":          s.tick,
		"pageSize":      s.pageSize,
		"totalEntries":  s.entries,
		"droppedRows":   s.dropped,
		"failuresInRow": s.status.ConsecutiveFailures,
	}
	if !s.lastRefresh.IsZero() {
		stats["lastRefresh"] = s.lastRefresh.Format(time.RFC3339)
	}
	if s.status.LastError != "" {
		stats["lastError"] = s.status.LastError
	}
	return stats
}

// Package app provides the core business service that implements
// the dependencies required by the HTTP API.
package app

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	regqueue "github.com/okian/roster/internal/adapters/mq/queue"
	workerpool "github.com/okian/roster/internal/adapters/mq/worker"
	repository "github.com/okian/roster/internal/adapters/repository"
	"github.com/okian/roster/internal/domain/dedupe"
	"github.com/okian/roster/internal/domain/model"
	"github.com/okian/roster/internal/domain/register"
	"github.com/okian/roster/internal/domain/report"
	"github.com/okian/roster/pkg/logger"
	"github.com/okian/roster/pkg/metrics"
)

// storeAdapter exposes the repository.Store as the register.ScoreStore the
// ledger expects.
type storeAdapter struct {
	store repository.Store
}

func (a *storeAdapter) Upsert(ctx context.Context, name string, score int64) (bool, error) {
	return a.store.Upsert(ctx, name, score)
}

func (a *storeAdapter) SortedByName(ctx context.Context) ([]register.Entry, error) {
	entries, err := a.store.SortedByName(ctx)
	if err != nil {
		return nil, fmt.Errorf("sorted scores: %w", err)
	}
	out := make([]register.Entry, len(entries))
	for i, e := range entries {
		out[i] = register.Entry{Name: e.Name, Score: e.Score}
	}
	return out, nil
}

func (a *storeAdapter) Count(ctx context.Context) int {
	return a.store.Count(ctx)
}

// Service implements the API dependencies for the roster system.
type Service struct {
	mu sync.RWMutex

	// Core components
	store   repository.Store
	ledger  *register.Ledger
	deduper dedupe.Deduper
	queue   regqueue.Queue
	pool    *workerpool.Pool

	// Configuration
	workerCount int
	queueSize   int
	dedupeSize  int

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of worker goroutines.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the maximum size of the registration queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithDedupeSize sets the size of the deduplication cache.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
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

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount: runtime.NumCPU() * 2,
		queueSize:   10_000,
		dedupeSize:  100_000,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes and starts the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting roster service...")

	s.store = repository.NewTreapStore(ctx)
	s.ledger = register.NewLedger(&storeAdapter{store: s.store})
	s.deduper = dedupe.NewInMemoryDeduper(
		dedupe.WithMaxSize(s.dedupeSize),
	)
	s.queue = regqueue.NewInMemoryQueue(
		regqueue.WithCapacity(s.queueSize),
	)

	s.pool = workerpool.NewPool(s.workerCount, s.queue, s.ledger)
	s.pool.Start(ctx)

	s.started = true
	s.logger.Info(ctx, "roster service started",
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
		logger.Int("dedupeSize", s.dedupeSize),
	)

	return nil
}

// Stop gracefully shuts down the service. The queue is closed first so the
// workers drain whatever is in flight before the pool stops.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	ctx := context.Background()
	s.logger.Info(ctx, "stopping roster service...")

	if s.queue != nil {
		_ = s.queue.Close()
	}
	if s.pool != nil {
		_ = s.pool.Shutdown(ctx)
	}

	s.started = false
	s.logger.Info(ctx, "roster service stopped")
}

// SeenAndRecord atomically checks if a registration id was seen and records
// it if not. Returns true if the id was already seen.
func (s *Service) SeenAndRecord(ctx context.Context, id string) bool {
	seen := s.deduper.SeenAndRecord(ctx, id)
	if seen {
		metrics.RecordRegistrationDuplicate()
	}
	return seen
}

// Unrecord removes a registration ID from the seen list, allowing a retry.
func (s *Service) Unrecord(ctx context.Context, id string) {
	s.deduper.Unrecord(ctx, id)
}

// Size returns the current number of entries in the deduper.
func (s *Service) Size() int64 {
	if s.deduper == nil {
		return 0
	}
	return s.deduper.Size()
}

// Enqueue submits a registration for asynchronous processing.
// Returns false on backpressure.
func (s *Service) Enqueue(ctx context.Context, reg model.Registration) bool {
	s.logger.Debug(ctx, "enqueueing registration",
		logger.String("regID", reg.RegID),
		logger.String("name", reg.Name),
		logger.Int64("score", reg.Score),
	)

	ok := s.queue.Enqueue(ctx, reg)
	if ok {
		metrics.UpdateQueueSize(s.queue.Len(ctx))
	}
	return ok
}

// History returns the registration history in arrival order, duplicates
// included, capped at limit when limit > 0.
func (s *Service) History(ctx context.Context, limit int) []string {
	return s.ledger.History(ctx, limit)
}

// Names returns the distinct participant names in ascending order.
func (s *Service) Names(ctx context.Context) []string {
	return s.ledger.Names(ctx)
}

// Scores returns all latest-score entries in ascending name order.
func (s *Service) Scores(ctx context.Context) ([]repository.Entry, error) {
	return s.store.SortedByName(ctx)
}

// Score returns the latest-score entry for one participant.
func (s *Service) Score(ctx context.Context, name string) (repository.Entry, error) {
	return s.store.Get(ctx, name)
}

// Report renders the three roster views as the fixed-format text report.
func (s *Service) Report(ctx context.Context) (string, error) {
	snap, err := s.ledger.Snapshot(ctx)
	if err != nil {
		return "", fmt.Errorf("roster snapshot: %w", err)
	}
	metrics.RecordReportRender()
	return report.Render(snap), nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":     s.started,
		"workerCount": s.workerCount,
		"queueSize":   s.queueSize,
		"dedupeSize":  s.dedupeSize,
	}

	if s.started {
		queueLen := s.queue.Len(ctx)
		historyLen := s.ledger.HistoryLen(ctx)
		rosterSize := s.store.Count(ctx)

		stats["queueLength"] = queueLen
		stats["historyLength"] = historyLen
		stats["rosterSize"] = rosterSize

		metrics.UpdateQueueSize(queueLen)
		metrics.UpdateHistoryLength(historyLen)
		metrics.UpdateRosterSize(rosterSize)
	}

	return stats
}

// Package register implements the registration processor: it consumes an
// ordered sequence of (name, score) entries and maintains three views of
// the data. The history keeps every occurrence in arrival order, the name
// set keeps the distinct participants, and the score ledger keeps the most
// recent score per participant.
package register

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Entry is one (name, score) input record.
type Entry struct {
	Name  string
	Score int64
}

// Result holds the three fully populated views after processing.
//
// History preserves arrival order including duplicates. UniqueNames and
// LatestScore are sorted ascending by name so that iteration, and any
// rendering built on top of it, is deterministic.
type Result struct {
	History     []string
	UniqueNames []string
	LatestScore []Entry
}

// Ingest processes entries in arrival order and returns the three views.
// It is a pure transformation: no shared state, no side effects, total for
// any well-formed input. An empty input yields three empty views.
func Ingest(_ context.Context, entries []Entry) Result {
	history := make([]string, 0, len(entries))
	names := newNameSet()
	latest := make(map[string]int64, len(entries))

	for _, e := range entries {
		history = append(history, e.Name)
		names.add(e.Name)
		latest[e.Name] = e.Score
	}

	sorted := names.sorted()
	scores := make([]Entry, 0, len(sorted))
	for _, name := range sorted {
		scores = append(scores, Entry{Name: name, Score: latest[name]})
	}

	return Result{
		History:     history,
		UniqueNames: sorted,
		LatestScore: scores,
	}
}

// ScoreStore abstracts the latest-score mapping maintained by a Ledger.
// Upsert replaces the stored score when the name is already present.
type ScoreStore interface {
	Upsert(ctx context.Context, name string, score int64) (created bool, err error)
	SortedByName(ctx context.Context) ([]Entry, error)
	Count(ctx context.Context) int
}

// Ledger is the incremental form of the processor used by the worker pool.
// It owns the history and name set and delegates the latest-score mapping
// to a ScoreStore. Safe for concurrent use.
type Ledger struct {
	mu      sync.RWMutex
	history []string
	names   *nameSet
	scores  ScoreStore
}

// NewLedger creates a Ledger backed by the given score store.
func NewLedger(scores ScoreStore) *Ledger {
	return &Ledger{
		names:  newNameSet(),
		scores: scores,
	}
}

// Record applies a single registration: upsert the score, append to
// history, add to the name set. All three happen under l.mu so a
// concurrent Snapshot sees either none or all of them, and a failed
// upsert leaves no orphan history entry.
func (l *Ledger) Record(ctx context.Context, name string, score int64) error {
	if name == "" {
		return ErrEmptyName
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, err := l.scores.Upsert(ctx, name, score); err != nil {
		return fmt.Errorf("score upsert for %q: %w", name, err)
	}
	l.history = append(l.history, name)
	l.names.add(name)
	return nil
}

// History returns a copy of the registration history, duplicates included,
// in arrival order. A limit below 1 returns the full history; otherwise at
// most limit entries from the front are returned.
func (l *Ledger) History(_ context.Context, limit int) []string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	n := len(l.history)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]string, n)
	copy(out, l.history[:n])
	return out
}

// Names returns the distinct participant names in ascending order.
func (l *Ledger) Names(_ context.Context) []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.names.sorted()
}

// HistoryLen returns the number of registrations recorded so far.
func (l *Ledger) HistoryLen(_ context.Context) int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.history)
}

// Snapshot returns all three views, mutually consistent with one another.
// It holds l.mu across the score read so it cannot observe a registration
// that is only partially applied.
func (l *Ledger) Snapshot(ctx context.Context) (Result, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	scores, err := l.scores.SortedByName(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("snapshot scores: %w", err)
	}

	history := make([]string, len(l.history))
	copy(history, l.history)

	return Result{
		History:     history,
		UniqueNames: l.names.sorted(),
		LatestScore: scores,
	}, nil
}

// nameSet is a string set with deterministic sorted iteration.
type nameSet struct {
	members map[string]struct{}
}

func newNameSet() *nameSet {
	return &nameSet{members: make(map[string]struct{})}
}

// add inserts name; inserting an existing member is a no-op.
func (s *nameSet) add(name string) {
	s.members[name] = struct{}{}
}

func (s *nameSet) contains(name string) bool {
	_, ok := s.members[name]
	return ok
}

func (s *nameSet) size() int {
	return len(s.members)
}

// sorted returns the members in ascending lexicographic order.
func (s *nameSet) sorted() []string {
	out := make([]string, 0, len(s.members))
	for name := range s.members {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

package repository

import (
	"context"
	"hash/fnv"
	"sync"

	"github.com/okian/roster/pkg/metrics"
)

// Treap-based, in-memory Store implementation.
//
// Ordering: name ASC (deterministic). In-order traversal of the tree
// produces the roster in ascending lexicographic order, and the
// size-augmented nodes give the position of any name without a full walk.
// Scores live in a side map so an overwrite never restructures the tree.

// treap node
type node struct {
	name  string
	prio  uint64
	left  *node
	right *node
	size  int
}

func nsize(n *node) int {
	if n == nil {
		return 0
	}
	return n.size
}

func fix(n *node) {
	if n != nil {
		n.size = 1 + nsize(n.left) + nsize(n.right)
	}
}

// namePriority derives a deterministic heap priority from the name so the
// tree shape is reproducible across runs.
func namePriority(name string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(name))
	return h.Sum64()
}

func rotateRight(y *node) *node {
	x := y.left
	t2 := x.right
	x.right = y
	y.left = t2
	fix(y)
	fix(x)
	return x
}

func rotateLeft(x *node) *node {
	y := x.right
	t2 := y.left
	y.left = x
	x.right = t2
	fix(x)
	fix(y)
	return y
}

func insert(n *node, name string) *node {
	if n == nil {
		return &node{name: name, prio: namePriority(name), size: 1}
	}
	if name < n.name {
		n.left = insert(n.left, name)
		if n.left.prio > n.prio {
			n = rotateRight(n)
		}
	} else {
		n.right = insert(n.right, name)
		if n.right.prio > n.prio {
			n = rotateLeft(n)
		}
	}
	fix(n)
	return n
}

// position returns the 1-based in-order index of name, or 0 if absent.
func position(n *node, name string) int {
	pos := 1
	for n != nil {
		switch {
		case name < n.name:
			n = n.left
		case name > n.name:
			pos += nsize(n.left) + 1
			n = n.right
		default:
			return pos + nsize(n.left)
		}
	}
	return 0
}

// collectInOrder appends every entry in ascending name order.
func collectInOrder(n *node, scores map[string]int64, out *[]Entry) {
	if n == nil {
		return
	}
	collectInOrder(n.left, scores, out)
	*out = append(*out, Entry{
		Position: len(*out) + 1,
		Name:     n.name,
		Score:    scores[n.name],
	})
	collectInOrder(n.right, scores, out)
}

// TreapStore is the treap-backed implementation of Store.
type TreapStore struct {
	mu     sync.RWMutex
	root   *node
	byName map[string]int64
}

// NewTreapStore constructs an empty treap store.
func NewTreapStore(_ context.Context) *TreapStore {
	return &TreapStore{
		byName: make(map[string]int64),
	}
}

// Upsert sets the score for name, overwriting any previous value.
func (s *TreapStore) Upsert(_ context.Context, name string, score int64) (bool, error) {
	if name == "" {
		return false, ErrEmptyName
	}

	s.mu.Lock()
	_, existed := s.byName[name]
	s.byName[name] = score
	if !existed {
		s.root = insert(s.root, name)
	}
	count := len(s.byName)
	s.mu.Unlock()

	metrics.RecordScoreUpsert()
	metrics.UpdateRosterSize(count)
	return !existed, nil
}

// Get returns the entry for a name, including its sorted position.
func (s *TreapStore) Get(_ context.Context, name string) (Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	score, ok := s.byName[name]
	if !ok {
		return Entry{}, ErrNotFound
	}
	return Entry{
		Position: position(s.root, name),
		Name:     name,
		Score:    score,
	}, nil
}

// SortedByName returns all entries in ascending name order.
func (s *TreapStore) SortedByName(_ context.Context) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Entry, 0, len(s.byName))
	collectInOrder(s.root, s.byName, &out)
	return out, nil
}

// Count returns the number of names tracked in the store.
func (s *TreapStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byName)
}

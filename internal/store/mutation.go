package store

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"doorsteps/internal/pkg/metrics"
)

// MutationState tracks an optimistic local change through its
// lifecycle: Pending until the API call settles, then Committed or
// RolledBack.
type MutationState int

const (
	MutationPending MutationState = iota
	MutationCommitted
	MutationRolledBack
)

func (s MutationState) String() string {
	switch s {
	case MutationCommitted:
		return "committed"
	case MutationRolledBack:
		return "rolled_back"
	default:
		return "pending"
	}
}

// Mutation is a snapshotted local change against one cache key.
type Mutation[T any] struct {
	c        *Collection[T]
	key      string
	id       string
	snapshot []T
	state    MutationState
}

// Begin snapshots the collection so a failed API call can restore it.
func (c *Collection[T]) Begin(key string) *Mutation[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return &Mutation[T]{
		c:        c,
		key:      key,
		id:       uuid.NewString(),
		snapshot: cloneSlice(c.entryLocked(key).items),
	}
}

// Stage applies an optimistic transformation to the live collection.
func (m *Mutation[T]) Stage(apply func([]T) []T) {
	m.c.mu.Lock()
	defer m.c.mu.Unlock()
	e := m.c.entryLocked(m.key)
	e.items = apply(cloneSlice(e.items))
}

func (m *Mutation[T]) Commit() {
	if m.state != MutationPending {
		return
	}
	m.state = MutationCommitted
}

// Rollback restores the pre-mutation snapshot. Safe to call after
// Commit, where it does nothing.
func (m *Mutation[T]) Rollback() {
	if m.state != MutationPending {
		return
	}
	m.c.mu.Lock()
	e := m.c.entryLocked(m.key)
	e.items = cloneSlice(m.snapshot)
	m.c.mu.Unlock()
	m.state = MutationRolledBack
	metrics.MutationRollbacksTotal.WithLabelValues(m.c.name).Inc()
	m.c.log.Debug("mutation rolled back",
		zap.String("store", m.c.name),
		zap.String("key", m.key),
		zap.String("mutation", m.id))
}

func (m *Mutation[T]) State() MutationState { return m.state }

// Update runs the full optimistic cycle: snapshot, stage apply, call
// the API, commit on success or roll back to the snapshot on failure.
func (c *Collection[T]) Update(ctx context.Context, key string, apply func([]T) []T, call func(context.Context) error) error {
	m := c.Begin(key)
	m.Stage(apply)
	if err := call(ctx); err != nil {
		m.Rollback()
		return err
	}
	m.Commit()
	return nil
}

package notification

import (
	"context"

	"go.uber.org/zap"

	"doorsteps/internal/domain"
	"doorsteps/internal/localstore"
	"doorsteps/internal/store"
)

// Single inbox per session; the mode split happens at read time, see
// partition.go.
const cacheKey = "inbox"

type API interface {
	Notifications(ctx context.Context) ([]domain.Notification, error)
	MarkNotificationRead(ctx context.Context, id int64) error
	MarkAllNotificationsRead(ctx context.Context) error
	DeleteNotification(ctx context.Context, id int64) error
}

// Persister snapshots the inbox across restarts.
type Persister interface {
	PutJSON(key string, v any) error
	GetJSON(key string, out any) (bool, error)
}

type Store struct {
	api     API
	persist Persister
	cache   *store.Collection[domain.Notification]
	log     *zap.Logger
}

func NewStore(api API, persist Persister, log *zap.Logger, opts ...store.Option[domain.Notification]) *Store {
	return &Store{
		api:     api,
		persist: persist,
		cache:   store.New[domain.Notification]("notifications", func(n domain.Notification) int64 { return n.ID }, log, opts...),
		log:     log,
	}
}

// Restore seeds the inbox from the persisted snapshot. Seeded data is
// immediately readable but the next Fetch still refreshes it.
func (s *Store) Restore() {
	var items []domain.Notification
	ok, err := s.persist.GetJSON(localstore.KeyNotificationStorage, &items)
	if err != nil {
		s.log.Warn("notification snapshot unavailable", zap.Error(err))
		return
	}
	if ok {
		s.cache.Seed(cacheKey, items)
	}
}

func (s *Store) Fetch(ctx context.Context, force bool) ([]domain.Notification, error) {
	items, err := s.cache.Fetch(ctx, cacheKey, force, s.api.Notifications)
	if err == nil {
		s.snapshot()
	}
	return items, err
}

// MarkAsRead flips is_read optimistically and restores it if the
// backend rejects the patch.
func (s *Store) MarkAsRead(ctx context.Context, id int64) error {
	err := s.cache.Update(ctx, cacheKey,
		func(items []domain.Notification) []domain.Notification {
			for i := range items {
				if items[i].ID == id {
					items[i].IsRead = true
				}
			}
			return items
		},
		func(ctx context.Context) error { return s.api.MarkNotificationRead(ctx, id) },
	)
	if err == nil {
		s.snapshot()
	}
	return err
}

// MarkAllAsRead sets every notification read regardless of prior
// state, leaving the unread count at zero.
func (s *Store) MarkAllAsRead(ctx context.Context) error {
	err := s.cache.Update(ctx, cacheKey,
		func(items []domain.Notification) []domain.Notification {
			for i := range items {
				items[i].IsRead = true
			}
			return items
		},
		func(ctx context.Context) error { return s.api.MarkAllNotificationsRead(ctx) },
	)
	if err == nil {
		s.snapshot()
	}
	return err
}

func (s *Store) Delete(ctx context.Context, id int64) error {
	if err := s.api.DeleteNotification(ctx, id); err != nil {
		return err
	}
	s.cache.Remove(cacheKey, id)
	s.snapshot()
	return nil
}

// Ingest folds a pushed notification into the inbox (live stream).
func (s *Store) Ingest(n domain.Notification) {
	s.cache.Upsert(cacheKey, n)
	s.snapshot()
}

func (s *Store) Notifications() []domain.Notification { return s.cache.Items(cacheKey) }

func (s *Store) UnreadCount() int {
	return s.cache.Count(cacheKey, func(n domain.Notification) bool { return !n.IsRead })
}

func (s *Store) LastError() string { return s.cache.LastError(cacheKey) }

func (s *Store) Reset() { s.cache.InvalidateAll() }

func (s *Store) snapshot() {
	if err := s.persist.PutJSON(localstore.KeyNotificationStorage, s.cache.Items(cacheKey)); err != nil {
		s.log.Warn("failed to persist notification snapshot", zap.Error(err))
	}
}

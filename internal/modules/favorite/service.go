package favorite

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"doorsteps/internal/domain"
	"doorsteps/internal/store"
)

const cacheKey = "favorites"

var ErrNoTarget = errors.New("either a professional or a professional service must be given")

type API interface {
	Favorites(ctx context.Context) ([]domain.Favorite, error)
	AddFavorite(ctx context.Context, professionalID, professionalServiceID *int64) (*domain.Favorite, error)
	RemoveFavorite(ctx context.Context, id int64) error
}

type Store struct {
	api   API
	cache *store.Collection[domain.Favorite]
}

func NewStore(api API, log *zap.Logger, opts ...store.Option[domain.Favorite]) *Store {
	return &Store{
		api:   api,
		cache: store.New[domain.Favorite]("favorites", func(f domain.Favorite) int64 { return f.ID }, log, opts...),
	}
}

func (s *Store) Fetch(ctx context.Context, force bool) ([]domain.Favorite, error) {
	return s.cache.Fetch(ctx, cacheKey, force, s.api.Favorites)
}

// Add creates the favorite server-side, then splices the returned
// record into the local collection.
func (s *Store) Add(ctx context.Context, professionalID, professionalServiceID *int64) (*domain.Favorite, error) {
	if professionalID == nil && professionalServiceID == nil {
		return nil, ErrNoTarget
	}
	f, err := s.api.AddFavorite(ctx, professionalID, professionalServiceID)
	if err != nil {
		return nil, err
	}
	s.cache.Upsert(cacheKey, *f)
	return f, nil
}

// AddQuick favorites a professional without picking a service.
func (s *Store) AddQuick(ctx context.Context, professionalID int64) (*domain.Favorite, error) {
	return s.Add(ctx, &professionalID, nil)
}

// Remove deletes server-side first, then filters locally. An id
// absent from the local collection leaves it unchanged.
func (s *Store) Remove(ctx context.Context, id int64) error {
	if err := s.api.RemoveFavorite(ctx, id); err != nil {
		return err
	}
	s.cache.Remove(cacheKey, id)
	return nil
}

// IsFavorite reports whether the given target is favorited. A service
// id takes precedence: when present only a service-level favorite
// matches, otherwise only a professional-level one does.
func (s *Store) IsFavorite(professionalID int64, professionalServiceID *int64) bool {
	return s.cache.Count(cacheKey, func(f domain.Favorite) bool {
		return f.Matches(professionalID, professionalServiceID)
	}) > 0
}

func (s *Store) Favorites() []domain.Favorite { return s.cache.Items(cacheKey) }
func (s *Store) LastError() string            { return s.cache.LastError(cacheKey) }
func (s *Store) Reset()                       { s.cache.InvalidateAll() }

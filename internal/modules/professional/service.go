package professional

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"doorsteps/internal/domain"
	"doorsteps/internal/store"
	"doorsteps/internal/upstream"
)

const directoryKey = "directory"

type API interface {
	Professionals(ctx context.Context) ([]domain.Professional, error)
	ProfessionalByID(ctx context.Context, id int64) (*domain.Professional, error)
	ProfessionalServices(ctx context.Context, professionalID int64) ([]domain.ProfessionalService, error)
	RegisterProfessional(ctx context.Context, req upstream.RegisterProfessionalRequest) (*domain.Professional, error)
	UpdateServiceAreas(ctx context.Context, areaIDs []int64) (*domain.Professional, error)
}

// Store caches the professional directory plus each professional's
// service price cards. Price cards are cached per professional id so
// two detail pages never share or evict each other's entries.
type Store struct {
	api       API
	directory *store.Collection[domain.Professional]
	services  *store.Collection[domain.ProfessionalService]
}

func NewStore(api API, log *zap.Logger, opts ...store.Option[domain.Professional]) *Store {
	return &Store{
		api:       api,
		directory: store.New[domain.Professional]("professionals", func(p domain.Professional) int64 { return p.ID }, log, opts...),
		services:  store.New[domain.ProfessionalService]("professional_services", func(s domain.ProfessionalService) int64 { return s.ID }, log),
	}
}

func servicesKey(professionalID int64) string {
	return fmt.Sprintf("professional:%d", professionalID)
}

func (s *Store) FetchDirectory(ctx context.Context, force bool) ([]domain.Professional, error) {
	return s.directory.Fetch(ctx, directoryKey, force, s.api.Professionals)
}

// ByID serves from the cached directory before going to the network,
// splicing a fresh fetch back in.
func (s *Store) ByID(ctx context.Context, id int64) (*domain.Professional, error) {
	if p, ok := s.directory.Find(directoryKey, id); ok {
		return &p, nil
	}
	p, err := s.api.ProfessionalByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.directory.Upsert(directoryKey, *p)
	return p, nil
}

func (s *Store) FetchServices(ctx context.Context, professionalID int64, force bool) ([]domain.ProfessionalService, error) {
	return s.services.Fetch(ctx, servicesKey(professionalID), force, func(ctx context.Context) ([]domain.ProfessionalService, error) {
		return s.api.ProfessionalServices(ctx, professionalID)
	})
}

// Register upgrades the current user to a professional profile. The
// directory entry is spliced in so the new profile shows up without a
// refetch.
func (s *Store) Register(ctx context.Context, req upstream.RegisterProfessionalRequest) (*domain.Professional, error) {
	p, err := s.api.RegisterProfessional(ctx, req)
	if err != nil {
		return nil, err
	}
	s.directory.Upsert(directoryKey, *p)
	return p, nil
}

func (s *Store) SetServiceAreas(ctx context.Context, areaIDs []int64) (*domain.Professional, error) {
	p, err := s.api.UpdateServiceAreas(ctx, areaIDs)
	if err != nil {
		return nil, err
	}
	s.directory.Upsert(directoryKey, *p)
	return p, nil
}

// Verified filters the cached directory down to verified profiles.
func (s *Store) Verified() []domain.Professional {
	return s.directory.Filter(directoryKey, func(p domain.Professional) bool { return p.IsVerified })
}

func (s *Store) Directory() []domain.Professional { return s.directory.Items(directoryKey) }
func (s *Store) LastError() string                { return s.directory.LastError(directoryKey) }

func (s *Store) Reset() {
	s.directory.InvalidateAll()
	s.services.InvalidateAll()
}

package order

import (
	"context"

	"go.uber.org/zap"

	"doorsteps/internal/domain"
	"doorsteps/internal/store"
)

// Views are the cache keys of the two order dashboards.
const (
	ViewCustomer     = "customer"
	ViewProfessional = "professional"
)

type API interface {
	CustomerOrders(ctx context.Context) ([]domain.Order, error)
	ProfessionalOrders(ctx context.Context) ([]domain.Order, error)
	OrderByID(ctx context.Context, id int64) (*domain.Order, error)
	CancelOrder(ctx context.Context, id int64) (*domain.Order, error)
}

// Store mirrors the backend's order state per dashboard view. The
// backend owns all status transitions; this layer only caches,
// filters and relays.
type Store struct {
	api   API
	cache *store.Collection[domain.Order]
}

func NewStore(api API, log *zap.Logger, opts ...store.Option[domain.Order]) *Store {
	return &Store{
		api:   api,
		cache: store.New[domain.Order]("orders", func(o domain.Order) int64 { return o.ID }, log, opts...),
	}
}

func (s *Store) FetchCustomerOrders(ctx context.Context, force bool) ([]domain.Order, error) {
	return s.cache.Fetch(ctx, ViewCustomer, force, s.api.CustomerOrders)
}

func (s *Store) FetchProfessionalOrders(ctx context.Context, force bool) ([]domain.Order, error) {
	return s.cache.Fetch(ctx, ViewProfessional, force, s.api.ProfessionalOrders)
}

// OrderByID answers from the cached view when possible, otherwise
// fetches the single order and splices it in.
func (s *Store) OrderByID(ctx context.Context, view string, id int64) (*domain.Order, error) {
	if o, ok := s.cache.Find(view, id); ok {
		return &o, nil
	}
	o, err := s.api.OrderByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cache.Upsert(view, *o)
	return o, nil
}

// Cancel optimistically marks the order cancelled and rolls the local
// state back if the backend rejects it.
func (s *Store) Cancel(ctx context.Context, view string, id int64) error {
	return s.cache.Update(ctx, view,
		func(items []domain.Order) []domain.Order {
			for i := range items {
				if items[i].ID == id {
					items[i].Status = domain.OrderCancelled
				}
			}
			return items
		},
		func(ctx context.Context) error {
			o, err := s.api.CancelOrder(ctx, id)
			if err != nil {
				return err
			}
			s.cache.Upsert(view, *o)
			return nil
		},
	)
}

// ByStatus is a pure selector over the cached view.
func (s *Store) ByStatus(view string, status domain.OrderStatus) []domain.Order {
	return s.cache.Filter(view, func(o domain.Order) bool { return o.Status == status })
}

func (s *Store) UnpaidCount(view string) int {
	return s.cache.Count(view, func(o domain.Order) bool { return o.PaymentStatus != domain.PaymentPaid })
}

func (s *Store) Orders(view string) []domain.Order { return s.cache.Items(view) }
func (s *Store) LastError(view string) string      { return s.cache.LastError(view) }
func (s *Store) Reset()                            { s.cache.InvalidateAll() }

package payment

import (
	"context"

	"go.uber.org/zap"

	"doorsteps/internal/domain"
	"doorsteps/internal/store"
)

const (
	paymentsKey    = "payments"
	withdrawalsKey = "withdrawals"
)

type API interface {
	Payments(ctx context.Context) ([]domain.Payment, error)
	CreatePayment(ctx context.Context, orderID int64, amount float64, method string) (*domain.Payment, error)
	Withdrawals(ctx context.Context) ([]domain.Withdrawal, error)
	WithdrawalReceipt(ctx context.Context, id int64) ([]byte, string, error)
}

// Store caches payment history and professional withdrawals. Both are
// read-mostly lists; only CreatePayment writes, and it splices the
// created record in rather than refetching.
type Store struct {
	api         API
	payments    *store.Collection[domain.Payment]
	withdrawals *store.Collection[domain.Withdrawal]
}

func NewStore(api API, log *zap.Logger, opts ...store.Option[domain.Payment]) *Store {
	return &Store{
		api:         api,
		payments:    store.New[domain.Payment]("payments", func(p domain.Payment) int64 { return p.ID }, log, opts...),
		withdrawals: store.New[domain.Withdrawal]("withdrawals", func(w domain.Withdrawal) int64 { return w.ID }, log),
	}
}

func (s *Store) FetchPayments(ctx context.Context, force bool) ([]domain.Payment, error) {
	return s.payments.Fetch(ctx, paymentsKey, force, s.api.Payments)
}

func (s *Store) FetchWithdrawals(ctx context.Context, force bool) ([]domain.Withdrawal, error) {
	return s.withdrawals.Fetch(ctx, withdrawalsKey, force, s.api.Withdrawals)
}

func (s *Store) Create(ctx context.Context, orderID int64, amount float64, method string) (*domain.Payment, error) {
	p, err := s.api.CreatePayment(ctx, orderID, amount, method)
	if err != nil {
		return nil, err
	}
	s.payments.Upsert(paymentsKey, *p)
	return p, nil
}

// Receipt streams the withdrawal receipt straight through; documents
// are never cached.
func (s *Store) Receipt(ctx context.Context, withdrawalID int64) ([]byte, string, error) {
	return s.api.WithdrawalReceipt(ctx, withdrawalID)
}

// PendingWithdrawals reports payouts still awaiting backend approval.
func (s *Store) PendingWithdrawals() []domain.Withdrawal {
	return s.withdrawals.Filter(withdrawalsKey, func(w domain.Withdrawal) bool {
		return w.Status == domain.WithdrawalPending
	})
}

func (s *Store) Payments() []domain.Payment       { return s.payments.Items(paymentsKey) }
func (s *Store) Withdrawals() []domain.Withdrawal { return s.withdrawals.Items(withdrawalsKey) }

func (s *Store) Reset() {
	s.payments.InvalidateAll()
	s.withdrawals.InvalidateAll()
}

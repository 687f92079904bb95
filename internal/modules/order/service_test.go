package order

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"doorsteps/internal/domain"
)

type mockAPI struct {
	mock.Mock
}

func (m *mockAPI) CustomerOrders(ctx context.Context) ([]domain.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (m *mockAPI) ProfessionalOrders(ctx context.Context) ([]domain.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (m *mockAPI) OrderByID(ctx context.Context, id int64) (*domain.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *mockAPI) CancelOrder(ctx context.Context, id int64) (*domain.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func TestFetchCustomerOrders_SecondCallIsCacheHit(t *testing.T) {
	api := new(mockAPI)
	api.On("CustomerOrders", mock.Anything).Return([]domain.Order{{ID: 1, Status: domain.OrderPending}}, nil).Once()

	s := NewStore(api, zap.NewNop())

	_, err := s.FetchCustomerOrders(context.Background(), false)
	require.NoError(t, err)
	orders, err := s.FetchCustomerOrders(context.Background(), false)
	require.NoError(t, err)

	assert.Len(t, orders, 1)
	api.AssertExpectations(t)
	api.AssertNumberOfCalls(t, "CustomerOrders", 1)
}

func TestFetchCustomerOrders_ForceRefetches(t *testing.T) {
	api := new(mockAPI)
	api.On("CustomerOrders", mock.Anything).Return([]domain.Order{{ID: 1}}, nil).Twice()

	s := NewStore(api, zap.NewNop())

	_, err := s.FetchCustomerOrders(context.Background(), false)
	require.NoError(t, err)
	_, err = s.FetchCustomerOrders(context.Background(), true)
	require.NoError(t, err)

	api.AssertNumberOfCalls(t, "CustomerOrders", 2)
}

func TestViewsAreCachedIndependently(t *testing.T) {
	api := new(mockAPI)
	api.On("CustomerOrders", mock.Anything).Return([]domain.Order{{ID: 1}}, nil).Once()
	api.On("ProfessionalOrders", mock.Anything).Return([]domain.Order{{ID: 2}, {ID: 3}}, nil).Once()

	s := NewStore(api, zap.NewNop())

	cust, err := s.FetchCustomerOrders(context.Background(), false)
	require.NoError(t, err)
	prof, err := s.FetchProfessionalOrders(context.Background(), false)
	require.NoError(t, err)

	assert.Len(t, cust, 1)
	assert.Len(t, prof, 2)
}

func TestOrderByID_CacheMissFetchesAndSplices(t *testing.T) {
	api := new(mockAPI)
	api.On("CustomerOrders", mock.Anything).Return([]domain.Order{{ID: 1}}, nil).Once()
	api.On("OrderByID", mock.Anything, int64(5)).Return(&domain.Order{ID: 5, Status: domain.OrderAccepted}, nil).Once()

	s := NewStore(api, zap.NewNop())
	_, err := s.FetchCustomerOrders(context.Background(), false)
	require.NoError(t, err)

	o, err := s.OrderByID(context.Background(), ViewCustomer, 5)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderAccepted, o.Status)
	assert.Len(t, s.Orders(ViewCustomer), 2)

	// Second lookup answers locally.
	_, err = s.OrderByID(context.Background(), ViewCustomer, 5)
	require.NoError(t, err)
	api.AssertNumberOfCalls(t, "OrderByID", 1)
}

func TestCancel_RollsBackOnFailure(t *testing.T) {
	api := new(mockAPI)
	api.On("CustomerOrders", mock.Anything).Return([]domain.Order{{ID: 1, Status: domain.OrderPending}}, nil).Once()
	api.On("CancelOrder", mock.Anything, int64(1)).Return(nil, errors.New("too late to cancel")).Once()

	s := NewStore(api, zap.NewNop())
	_, err := s.FetchCustomerOrders(context.Background(), false)
	require.NoError(t, err)

	err = s.Cancel(context.Background(), ViewCustomer, 1)
	require.Error(t, err)

	orders := s.Orders(ViewCustomer)
	require.Len(t, orders, 1)
	assert.Equal(t, domain.OrderPending, orders[0].Status, "rejected cancel must restore prior status")
}

func TestByStatusSelector(t *testing.T) {
	api := new(mockAPI)
	api.On("CustomerOrders", mock.Anything).Return([]domain.Order{
		{ID: 1, Status: domain.OrderPending, PaymentStatus: domain.PaymentUnpaid},
		{ID: 2, Status: domain.OrderCompleted, PaymentStatus: domain.PaymentPaid},
		{ID: 3, Status: domain.OrderPending, PaymentStatus: domain.PaymentPartial},
	}, nil).Once()

	s := NewStore(api, zap.NewNop())
	_, err := s.FetchCustomerOrders(context.Background(), false)
	require.NoError(t, err)

	assert.Len(t, s.ByStatus(ViewCustomer, domain.OrderPending), 2)
	assert.Len(t, s.ByStatus(ViewCustomer, domain.OrderCancelled), 0)
	assert.Equal(t, 2, s.UnpaidCount(ViewCustomer))
}

func TestFetchFailureSurfacesErrorAndKeepsData(t *testing.T) {
	api := new(mockAPI)
	api.On("CustomerOrders", mock.Anything).Return([]domain.Order{{ID: 1}}, nil).Once()
	api.On("CustomerOrders", mock.Anything).Return(nil, errors.New("upstream: network")).Once()

	s := NewStore(api, zap.NewNop())
	_, err := s.FetchCustomerOrders(context.Background(), false)
	require.NoError(t, err)

	orders, err := s.FetchCustomerOrders(context.Background(), true)
	require.Error(t, err)
	assert.Len(t, orders, 1)
	assert.NotEmpty(t, s.LastError(ViewCustomer))
}

package notification

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

func (m *mockAPI) Notifications(ctx context.Context) ([]domain.Notification, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Notification), args.Error(1)
}

func (m *mockAPI) MarkNotificationRead(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockAPI) MarkAllNotificationsRead(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockAPI) DeleteNotification(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

// memPersister is an in-memory stand-in for localstore.
type memPersister struct {
	data map[string]any
}

func newMemPersister() *memPersister { return &memPersister{data: map[string]any{}} }

func (p *memPersister) PutJSON(key string, v any) error {
	p.data[key] = v
	return nil
}

func (p *memPersister) GetJSON(key string, out any) (bool, error) {
	v, ok := p.data[key]
	if !ok {
		return false, nil
	}
	items, ok := v.([]domain.Notification)
	if !ok {
		return false, nil
	}
	if ptr, ok := out.(*[]domain.Notification); ok {
		*ptr = items
		return true, nil
	}
	return false, nil
}

func newTestStore(api API) *Store {
	return NewStore(api, newMemPersister(), zap.NewNop())
}

func seedInbox(t *testing.T, api *mockAPI, items []domain.Notification) *Store {
	t.Helper()
	api.On("Notifications", mock.Anything).Return(items, nil).Once()
	s := newTestStore(api)
	_, err := s.Fetch(context.Background(), false)
	require.NoError(t, err)
	return s
}

func TestFetch_CacheHit(t *testing.T) {
	api := new(mockAPI)
	s := seedInbox(t, api, []domain.Notification{{ID: 1}})

	_, err := s.Fetch(context.Background(), false)
	require.NoError(t, err)
	api.AssertNumberOfCalls(t, "Notifications", 1)
}

func TestPartition_Complementarity(t *testing.T) {
	items := []domain.Notification{
		{ID: 1, Type: "New Order", IsRead: false},
		{ID: 2, Type: "generic", IsRead: false},
		{ID: 3, Type: "payment_received", IsRead: true},
		{ID: 4, Type: "withdrawal_approved", IsRead: false},
		{ID: 5, Type: "promo", IsRead: false},
	}
	api := new(mockAPI)
	s := seedInbox(t, api, items)

	customerViewing := s.HasOtherModeNotifications(false)     // unread professional types
	professionalViewing := s.HasOtherModeNotifications(true)  // unread customer types

	assert.Equal(t, 2, customerViewing, "New Order + withdrawal_approved")
	assert.Equal(t, 2, professionalViewing, "generic + promo")

	unread := 0
	for _, n := range items {
		if !n.IsRead {
			unread++
		}
	}
	assert.Equal(t, unread, customerViewing+professionalViewing, "counts must partition the unread set")
}

func TestPartition_MixedInbox(t *testing.T) {
	api := new(mockAPI)
	s := seedInbox(t, api, []domain.Notification{
		{ID: 1, Type: "New Order", IsRead: false},
		{ID: 2, Type: "generic", IsRead: false},
		{ID: 3, Type: "payment_received", IsRead: true},
	})

	assert.Equal(t, 1, s.HasOtherModeNotifications(false), "only the unread New Order counts")
}

func TestIsProfessionalType(t *testing.T) {
	assert.True(t, IsProfessionalType("New Order #42"))
	assert.True(t, IsProfessionalType("payment_received"))
	assert.True(t, IsProfessionalType("withdrawal_rejected"))
	assert.False(t, IsProfessionalType("order_update")) // customer-facing order updates
	assert.False(t, IsProfessionalType("generic"))
}

func TestMarkAllAsRead(t *testing.T) {
	api := new(mockAPI)
	api.On("MarkAllNotificationsRead", mock.Anything).Return(nil).Once()
	s := seedInbox(t, api, []domain.Notification{
		{ID: 1, Type: "a", IsRead: false},
		{ID: 2, Type: "b", IsRead: true},
		{ID: 3, Type: "c", IsRead: false},
	})

	require.NoError(t, s.MarkAllAsRead(context.Background()))
	assert.Equal(t, 0, s.UnreadCount())
	api.AssertExpectations(t)
}

func TestMarkAsRead_RollbackOnFailure(t *testing.T) {
	api := new(mockAPI)
	api.On("MarkNotificationRead", mock.Anything, int64(1)).Return(errors.New("patch rejected")).Once()
	s := seedInbox(t, api, []domain.Notification{{ID: 1, IsRead: false}})

	err := s.MarkAsRead(context.Background(), 1)
	require.Error(t, err)
	assert.Equal(t, 1, s.UnreadCount(), "failed patch must restore unread flag")
}

func TestIngestUpdatesUnreadCount(t *testing.T) {
	api := new(mockAPI)
	s := seedInbox(t, api, []domain.Notification{{ID: 1, IsRead: true}})

	s.Ingest(domain.Notification{ID: 2, Type: "New Order", IsRead: false})
	assert.Equal(t, 1, s.UnreadCount())
	assert.Len(t, s.Notifications(), 2)
}

func TestRestoreSeedsWithoutFreshness(t *testing.T) {
	api := new(mockAPI)
	persist := newMemPersister()
	require.NoError(t, persist.PutJSON("notification-storage", []domain.Notification{{ID: 9, IsRead: false}}))

	s := NewStore(api, persist, zap.NewNop())
	s.Restore()

	assert.Len(t, s.Notifications(), 1, "snapshot readable before any fetch")

	api.On("Notifications", mock.Anything).Return([]domain.Notification{{ID: 10}}, nil).Once()
	items, err := s.Fetch(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, int64(10), items[0].ID, "seeded data must not count as fresh")
}

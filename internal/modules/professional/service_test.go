package professional

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"doorsteps/internal/domain"
	"doorsteps/internal/upstream"
)

type mockAPI struct {
	mock.Mock
}

func (m *mockAPI) Professionals(ctx context.Context) ([]domain.Professional, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Professional), args.Error(1)
}

func (m *mockAPI) ProfessionalByID(ctx context.Context, id int64) (*domain.Professional, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Professional), args.Error(1)
}

func (m *mockAPI) ProfessionalServices(ctx context.Context, professionalID int64) ([]domain.ProfessionalService, error) {
	args := m.Called(ctx, professionalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ProfessionalService), args.Error(1)
}

func (m *mockAPI) RegisterProfessional(ctx context.Context, req upstream.RegisterProfessionalRequest) (*domain.Professional, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Professional), args.Error(1)
}

func (m *mockAPI) UpdateServiceAreas(ctx context.Context, areaIDs []int64) (*domain.Professional, error) {
	args := m.Called(ctx, areaIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Professional), args.Error(1)
}

func TestByID_ServesFromCachedDirectory(t *testing.T) {
	api := new(mockAPI)
	api.On("Professionals", mock.Anything).
		Return([]domain.Professional{{ID: 1, FullNameEN: "Ram"}, {ID: 2, FullNameEN: "Sita"}}, nil).Once()
	s := NewStore(api, zap.NewNop())

	_, err := s.FetchDirectory(context.Background(), false)
	require.NoError(t, err)

	p, err := s.ByID(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "Sita", p.FullNameEN)
	api.AssertNotCalled(t, "ProfessionalByID", mock.Anything, mock.Anything)
}

func TestByID_FetchesAndSplicesOnMiss(t *testing.T) {
	api := new(mockAPI)
	api.On("ProfessionalByID", mock.Anything, int64(7)).
		Return(&domain.Professional{ID: 7, FullNameEN: "Hari"}, nil).Once()
	s := NewStore(api, zap.NewNop())

	p, err := s.ByID(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), p.ID)

	// A second lookup hits the spliced cache entry.
	_, err = s.ByID(context.Background(), 7)
	require.NoError(t, err)
	api.AssertNumberOfCalls(t, "ProfessionalByID", 1)
}

func TestFetchServices_KeyedPerProfessional(t *testing.T) {
	api := new(mockAPI)
	api.On("ProfessionalServices", mock.Anything, int64(1)).
		Return([]domain.ProfessionalService{{ID: 10, ProfessionalID: 1}}, nil).Once()
	api.On("ProfessionalServices", mock.Anything, int64(2)).
		Return([]domain.ProfessionalService{{ID: 20, ProfessionalID: 2}, {ID: 21, ProfessionalID: 2}}, nil).Once()
	s := NewStore(api, zap.NewNop())

	a, err := s.FetchServices(context.Background(), 1, false)
	require.NoError(t, err)
	b, err := s.FetchServices(context.Background(), 2, false)
	require.NoError(t, err)

	assert.Len(t, a, 1)
	assert.Len(t, b, 2)

	// Each key is cached independently.
	_, err = s.FetchServices(context.Background(), 1, false)
	require.NoError(t, err)
	api.AssertNumberOfCalls(t, "ProfessionalServices", 2)
}

func TestRegister_SplicesIntoDirectory(t *testing.T) {
	api := new(mockAPI)
	api.On("Professionals", mock.Anything).
		Return([]domain.Professional{{ID: 1}}, nil).Once()
	api.On("RegisterProfessional", mock.Anything, mock.Anything).
		Return(&domain.Professional{ID: 2, Profession: "plumber"}, nil).Once()
	s := NewStore(api, zap.NewNop())

	_, err := s.FetchDirectory(context.Background(), false)
	require.NoError(t, err)

	_, err = s.Register(context.Background(), upstream.RegisterProfessionalRequest{Profession: "plumber"})
	require.NoError(t, err)
	assert.Len(t, s.Directory(), 2)
}

func TestVerified_FiltersDirectory(t *testing.T) {
	api := new(mockAPI)
	api.On("Professionals", mock.Anything).Return([]domain.Professional{
		{ID: 1, IsVerified: true},
		{ID: 2},
		{ID: 3, IsVerified: true},
	}, nil).Once()
	s := NewStore(api, zap.NewNop())

	_, err := s.FetchDirectory(context.Background(), false)
	require.NoError(t, err)

	verified := s.Verified()
	require.Len(t, verified, 2)
	assert.Equal(t, int64(1), verified[0].ID)
	assert.Equal(t, int64(3), verified[1].ID)
}

func TestSetServiceAreas_UpdatesCachedProfile(t *testing.T) {
	api := new(mockAPI)
	api.On("Professionals", mock.Anything).
		Return([]domain.Professional{{ID: 1}}, nil).Once()
	api.On("UpdateServiceAreas", mock.Anything, []int64{4, 5}).
		Return(&domain.Professional{ID: 1, Areas: []domain.ServiceArea{{ID: 4}, {ID: 5}}}, nil).Once()
	s := NewStore(api, zap.NewNop())

	_, err := s.FetchDirectory(context.Background(), false)
	require.NoError(t, err)

	_, err = s.SetServiceAreas(context.Background(), []int64{4, 5})
	require.NoError(t, err)

	got := s.Directory()
	require.Len(t, got, 1)
	assert.Len(t, got[0].Areas, 2)
}

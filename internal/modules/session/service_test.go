package session

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"doorsteps/internal/config"
	"doorsteps/internal/domain"
	"doorsteps/internal/localstore"
	"doorsteps/internal/upstream"
)

type mockAPI struct {
	mock.Mock
}

func (m *mockAPI) Login(ctx context.Context, phone string) error {
	return m.Called(ctx, phone).Error(0)
}

func (m *mockAPI) VerifyOTP(ctx context.Context, phone, otp string) (*upstream.VerifyOTPResult, error) {
	args := m.Called(ctx, phone, otp)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*upstream.VerifyOTPResult), args.Error(1)
}

func (m *mockAPI) SetupProfile(ctx context.Context, req upstream.SetupProfileRequest) (*domain.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockAPI) Me(ctx context.Context) (*domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockAPI) SwitchMode(ctx context.Context, mode domain.UserMode) (*domain.User, error) {
	args := m.Called(ctx, mode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type resettable struct{ resets int }

func (r *resettable) Reset() { r.resets++ }

func testCookieConfig() config.CookieConfig {
	return config.CookieConfig{MaxAge: 7 * 24 * time.Hour, SameSite: "Lax"}
}

func newTestManager(t *testing.T, api API) (*Manager, *localstore.Store) {
	t.Helper()
	persist, err := localstore.Open(":memory:", zap.NewNop())
	require.NoError(t, err)
	return NewManager(api, persist, testCookieConfig(), zap.NewNop()), persist
}

func TestLogin_TransitionsToOTPRequested(t *testing.T) {
	api := new(mockAPI)
	api.On("Login", mock.Anything, "+9779812345678").Return(nil).Once()

	m, _ := newTestManager(t, api)
	require.NoError(t, m.Login(context.Background(), " +9779812345678 "))
	assert.Equal(t, StateOTPRequested, m.State())
}

func TestVerifyOTP_SetupIncompleteWithoutName(t *testing.T) {
	api := new(mockAPI)
	api.On("VerifyOTP", mock.Anything, "+977981", "123456").Return(&upstream.VerifyOTPResult{
		Token: "tok-abc",
		User:  &domain.User{ID: 1, PhoneNumber: "+977981", Mode: domain.ModeCustomer},
	}, nil).Once()

	m, persist := newTestManager(t, api)
	user, err := m.VerifyOTP(context.Background(), "+977981", "123456")
	require.NoError(t, err)
	require.NotNil(t, user)

	assert.Equal(t, StateSetupIncomplete, m.State())
	assert.Equal(t, "tok-abc", m.Token())

	tok, ok, err := persist.Get(localstore.KeyAuthToken)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "tok-abc", tok)
}

func TestSetupProfile_WithNameCompletesSetup(t *testing.T) {
	api := new(mockAPI)
	api.On("VerifyOTP", mock.Anything, "+977981", "123456").Return(&upstream.VerifyOTPResult{
		Token: "tok-abc",
		User:  &domain.User{ID: 1, PhoneNumber: "+977981"},
	}, nil).Once()
	api.On("SetupProfile", mock.Anything, mock.Anything).Return(&domain.User{
		ID: 1, FullName: "Hari Sharma", PhoneNumber: "+977981", IsSetupComplete: true, Mode: domain.ModeCustomer,
	}, nil).Once()

	m, persist := newTestManager(t, api)
	_, err := m.VerifyOTP(context.Background(), "+977981", "123456")
	require.NoError(t, err)

	user, err := m.SetupProfile(context.Background(), upstream.SetupProfileRequest{FullName: "Hari Sharma"})
	require.NoError(t, err)
	assert.True(t, user.IsSetupComplete)
	assert.Equal(t, StateSetupComplete, m.State())

	// Legacy keys mirrored for older clients.
	name, ok, err := persist.Get(localstore.LegacyKeyName)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Hari Sharma", name)
}

func TestRefreshUser_UnauthorizedForcesLogout(t *testing.T) {
	api := new(mockAPI)
	api.On("Me", mock.Anything).Return(nil, &upstream.Error{Kind: upstream.KindUnauthorized, Status: 401}).Once()

	m, persist := newTestManager(t, api)
	require.NoError(t, persist.Put(localstore.KeyAuthToken, "stale-token"))

	err := m.Bootstrap(context.Background())
	require.Error(t, err)
	assert.Equal(t, StateUnauthenticated, m.State())
	assert.Empty(t, m.Token())

	_, ok, _ := persist.Get(localstore.KeyAuthToken)
	assert.False(t, ok, "rejected token must be purged")
}

func TestRefreshUser_NetworkFailureFallsBackToSnapshot(t *testing.T) {
	api := new(mockAPI)
	api.On("Me", mock.Anything).Return(nil, &upstream.Error{Kind: upstream.KindNetwork}).Once()

	m, persist := newTestManager(t, api)
	cached := domain.User{ID: 7, FullName: "Cached User", IsSetupComplete: true}
	require.NoError(t, persist.Put(localstore.KeyAuthToken, "tok"))
	require.NoError(t, persist.PutJSON(localstore.KeyAuthUser, cached))

	require.NoError(t, m.Bootstrap(context.Background()))
	user := m.User()
	require.NotNil(t, user)
	assert.Equal(t, "Cached User", user.FullName)
	assert.Equal(t, StateSetupComplete, m.State())
}

func TestLogout_IsIdempotentAndResetsStores(t *testing.T) {
	api := new(mockAPI)
	api.On("VerifyOTP", mock.Anything, "+977981", "123456").Return(&upstream.VerifyOTPResult{
		Token: "tok",
		User:  &domain.User{ID: 1, FullName: "N", IsSetupComplete: true},
	}, nil).Once()

	m, persist := newTestManager(t, api)
	r := &resettable{}
	m.AttachStores(r)

	_, err := m.VerifyOTP(context.Background(), "+977981", "123456")
	require.NoError(t, err)

	require.NoError(t, m.Logout(context.Background()))
	require.NoError(t, m.Logout(context.Background()), "second logout must not fail")

	assert.Equal(t, StateUnauthenticated, m.State())
	assert.Nil(t, m.User())
	assert.Empty(t, m.Token())
	assert.Equal(t, 2, r.resets)

	for _, key := range []string{localstore.KeyAuthToken, localstore.KeyAuthUser, localstore.KeyUserStorage} {
		_, ok, _ := persist.Get(key)
		assert.False(t, ok, key)
	}
}

func TestCookies_ProjectSessionState(t *testing.T) {
	api := new(mockAPI)
	api.On("VerifyOTP", mock.Anything, "+977981", "123456").Return(&upstream.VerifyOTPResult{
		Token: "tok",
		User:  &domain.User{ID: 1, FullName: "Sita", PhoneNumber: "+977981", Mode: domain.ModeProfessional, IsSetupComplete: true},
	}, nil).Once()

	m, _ := newTestManager(t, api)
	assert.Empty(t, m.Cookies(), "no cookies before login")

	_, err := m.VerifyOTP(context.Background(), "+977981", "123456")
	require.NoError(t, err)

	cookies := m.Cookies()
	require.Len(t, cookies, 4)
	byName := map[string]string{}
	for _, c := range cookies {
		byName[c.Name] = c.Value
		assert.Equal(t, int((7 * 24 * time.Hour).Seconds()), c.MaxAge)
	}
	assert.Equal(t, "tok", byName["auth_token"])
	assert.Equal(t, "true", byName["setup_complete"])
	assert.Equal(t, "professional", byName["user_mode"])
	userData, err := url.QueryUnescape(byName["user_data"])
	require.NoError(t, err)
	assert.Contains(t, userData, `"full_name":"Sita"`)
}

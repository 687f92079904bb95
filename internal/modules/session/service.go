package session

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"doorsteps/internal/config"
	"doorsteps/internal/domain"
	"doorsteps/internal/localstore"
	"doorsteps/internal/upstream"
)

// State is the session lifecycle. Transitions:
//
//	Unauthenticated -> OTPRequested        Login
//	OTPRequested    -> SetupIncomplete     VerifyOTP (no name yet)
//	OTPRequested    -> SetupComplete       VerifyOTP (profile already set up)
//	SetupIncomplete -> SetupComplete       SetupProfile with a name
//	any             -> Unauthenticated     Logout
type State int

const (
	StateUnauthenticated State = iota
	StateOTPRequested
	StateSetupIncomplete
	StateSetupComplete
)

func (s State) String() string {
	switch s {
	case StateOTPRequested:
		return "otp_requested"
	case StateSetupIncomplete:
		return "setup_incomplete"
	case StateSetupComplete:
		return "setup_complete"
	default:
		return "unauthenticated"
	}
}

type API interface {
	Login(ctx context.Context, phone string) error
	VerifyOTP(ctx context.Context, phone, otp string) (*upstream.VerifyOTPResult, error)
	SetupProfile(ctx context.Context, req upstream.SetupProfileRequest) (*domain.User, error)
	Me(ctx context.Context) (*domain.User, error)
	SwitchMode(ctx context.Context, mode domain.UserMode) (*domain.User, error)
}

type Persistence interface {
	Get(key string) (string, bool, error)
	Put(key, value string) error
	PutJSON(key string, v any) error
	GetJSON(key string, out any) (bool, error)
	Delete(keys ...string) error
}

// Invalidator is any store that must drop its cached data on logout.
type Invalidator interface {
	Reset()
}

// Manager owns the single source of truth for the session: the user
// record and token live here, and the cookie and localstore
// projections are derived from them in one place.
type Manager struct {
	api     API
	persist Persistence
	cookies config.CookieConfig
	log     *zap.Logger
	stores  []Invalidator

	mu       sync.Mutex
	state    State
	user     *domain.User
	token    string
	otpPhone string
}

func NewManager(api API, persist Persistence, cookies config.CookieConfig, log *zap.Logger) *Manager {
	return &Manager{
		api:     api,
		persist: persist,
		cookies: cookies,
		log:     log,
		state:   StateUnauthenticated,
	}
}

// AttachStores registers domain stores to invalidate on logout.
func (m *Manager) AttachStores(stores ...Invalidator) {
	m.stores = append(m.stores, stores...)
}

// Bootstrap restores the session on process start. With a persisted
// token it fetches a fresh profile; if the backend is unreachable it
// falls back to the last cached user snapshot.
func (m *Manager) Bootstrap(ctx context.Context) error {
	tok, ok, err := m.persist.Get(localstore.KeyAuthToken)
	if err != nil {
		return err
	}
	if !ok || tok == "" {
		return nil
	}

	m.mu.Lock()
	m.token = tok
	m.mu.Unlock()

	_, err = m.RefreshUser(ctx)
	return err
}

// Login asks the backend to send an OTP to the phone.
func (m *Manager) Login(ctx context.Context, phone string) error {
	phone = strings.TrimSpace(phone)
	if err := m.api.Login(ctx, phone); err != nil {
		return err
	}
	m.mu.Lock()
	m.state = StateOTPRequested
	m.otpPhone = phone
	m.mu.Unlock()
	return nil
}

func (m *Manager) VerifyOTP(ctx context.Context, phone, otp string) (*domain.User, error) {
	res, err := m.api.VerifyOTP(ctx, strings.TrimSpace(phone), strings.TrimSpace(otp))
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.token = res.Token
	m.user = res.User
	m.otpPhone = ""
	m.state = stateForUser(res.User)
	m.mu.Unlock()

	m.persistSession()
	return res.User, nil
}

// SetupProfile submits the onboarding form. A name present in the
// accepted profile completes setup.
func (m *Manager) SetupProfile(ctx context.Context, req upstream.SetupProfileRequest) (*domain.User, error) {
	user, err := m.api.SetupProfile(ctx, req)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.user = user
	m.state = stateForUser(user)
	m.mu.Unlock()

	m.persistSession()
	return user, nil
}

// RefreshUser re-reads the profile. An unauthorized answer forces a
// logout; a network failure falls back to the cached snapshot.
func (m *Manager) RefreshUser(ctx context.Context) (*domain.User, error) {
	user, err := m.api.Me(ctx)
	if err != nil {
		switch upstream.KindOf(err) {
		case upstream.KindUnauthorized:
			m.log.Info("stored token rejected, logging out")
			_ = m.Logout(ctx)
			return nil, err
		default:
			var cached domain.User
			ok, getErr := m.persist.GetJSON(localstore.KeyAuthUser, &cached)
			if getErr == nil && ok {
				m.log.Warn("profile refresh failed, using cached snapshot", zap.Error(err))
				m.mu.Lock()
				m.user = &cached
				m.state = stateForUser(&cached)
				m.mu.Unlock()
				return &cached, nil
			}
			return nil, err
		}
	}

	m.mu.Lock()
	m.user = user
	m.state = stateForUser(user)
	m.mu.Unlock()

	m.persistSession()
	return user, nil
}

// SwitchMode flips the customer/professional view.
func (m *Manager) SwitchMode(ctx context.Context, mode domain.UserMode) (*domain.User, error) {
	if !mode.Valid() {
		return nil, ErrInvalidMode
	}
	user, err := m.api.SwitchMode(ctx, mode)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.user = user
	m.mu.Unlock()

	m.persistSession()
	return user, nil
}

// Logout clears every projection of the session: localstore keys,
// in-memory state, and the attached domain stores. Idempotent.
func (m *Manager) Logout(ctx context.Context) error {
	m.mu.Lock()
	m.state = StateUnauthenticated
	m.user = nil
	m.token = ""
	m.otpPhone = ""
	m.mu.Unlock()

	for _, s := range m.stores {
		s.Reset()
	}

	return m.persist.Delete(
		localstore.KeyAuthToken,
		localstore.KeyAuthUser,
		localstore.KeyUserStorage,
		localstore.KeyNotificationStorage,
		localstore.LegacyKeySetupComplete,
		localstore.LegacyKeyName,
		localstore.LegacyKeyPhone,
		localstore.LegacyKeyEmail,
		localstore.LegacyKeyGender,
		localstore.LegacyKeyAgeGroup,
		localstore.LegacyKeyMode,
	)
}

func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *Manager) User() *domain.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.user == nil {
		return nil
	}
	u := *m.user
	return &u
}

// Token is the upstream TokenSource for the API client.
func (m *Manager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

func stateForUser(u *domain.User) State {
	if u == nil {
		return StateUnauthenticated
	}
	if u.IsSetupComplete || strings.TrimSpace(u.FullName) != "" {
		return StateSetupComplete
	}
	return StateSetupIncomplete
}

// persistSession writes the token, the user snapshot and the legacy
// keys in one place.
func (m *Manager) persistSession() {
	m.mu.Lock()
	tok := m.token
	var user *domain.User
	if m.user != nil {
		u := *m.user
		user = &u
	}
	state := m.state
	m.mu.Unlock()

	if tok != "" {
		if err := m.persist.Put(localstore.KeyAuthToken, tok); err != nil {
			m.log.Warn("failed to persist token", zap.Error(err))
		}
	}
	if user == nil {
		return
	}
	if err := m.persist.PutJSON(localstore.KeyAuthUser, user); err != nil {
		m.log.Warn("failed to persist user snapshot", zap.Error(err))
	}
	if err := m.persist.PutJSON(localstore.KeyUserStorage, map[string]any{
		"user":  user,
		"state": state.String(),
	}); err != nil {
		m.log.Warn("failed to persist user storage", zap.Error(err))
	}

	// Legacy flat keys, written for older clients sharing the store.
	_ = m.persist.Put(localstore.LegacyKeySetupComplete, boolString(user.IsSetupComplete))
	_ = m.persist.Put(localstore.LegacyKeyName, user.FullName)
	_ = m.persist.Put(localstore.LegacyKeyPhone, user.PhoneNumber)
	_ = m.persist.Put(localstore.LegacyKeyEmail, user.Email)
	_ = m.persist.Put(localstore.LegacyKeyGender, user.Gender)
	_ = m.persist.Put(localstore.LegacyKeyAgeGroup, user.AgeGroup)
	_ = m.persist.Put(localstore.LegacyKeyMode, string(user.Mode))
}

func boolString(v bool) string {
	if v {
		return "true"
	}
	return "false"
}

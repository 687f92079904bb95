package session

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"doorsteps/internal/middleware"
)

// userDataCookie is the JSON payload of the user_data cookie, read by
// the route-gating middleware.
type userDataCookie struct {
	FullName        string `json:"full_name"`
	PhoneNumber     string `json:"phone_number"`
	IsSetupComplete bool   `json:"is_setup_complete"`
}

// Cookies projects the current session into the cookies the gating
// middleware consumes. Nil user yields an empty slice.
func (m *Manager) Cookies() []*http.Cookie {
	m.mu.Lock()
	tok := m.token
	user := m.user
	m.mu.Unlock()

	if tok == "" || user == nil {
		return nil
	}

	data, _ := json.Marshal(userDataCookie{
		FullName:        user.FullName,
		PhoneNumber:     user.PhoneNumber,
		IsSetupComplete: user.IsSetupComplete,
	})

	return []*http.Cookie{
		m.cookie(middleware.CookieAuthToken, tok),
		m.cookie(middleware.CookieSetupComplete, boolString(user.IsSetupComplete)),
		m.cookie(middleware.CookieUserMode, string(user.Mode)),
		// JSON is not a valid cookie value as-is; URL-encode it the way
		// browser cookie libraries do.
		m.cookie(middleware.CookieUserData, url.QueryEscape(string(data))),
	}
}

// ExpiredCookies clears all session cookies, used on logout. The
// client is expected to do a full reload of the logged-out landing
// route afterwards so no in-memory view state survives.
func (m *Manager) ExpiredCookies() []*http.Cookie {
	names := []string{
		middleware.CookieAuthToken,
		middleware.CookieSetupComplete,
		middleware.CookieUserMode,
		middleware.CookieUserData,
	}
	out := make([]*http.Cookie, len(names))
	for i, name := range names {
		c := m.cookie(name, "")
		c.MaxAge = -1
		out[i] = c
	}
	return out
}

func (m *Manager) cookie(name, value string) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Domain:   m.cookies.Domain,
		MaxAge:   int(m.cookies.MaxAge.Seconds()),
		Secure:   m.cookies.Secure,
		HttpOnly: name == middleware.CookieAuthToken,
		SameSite: sameSite(m.cookies.SameSite),
	}
}

func sameSite(v string) http.SameSite {
	switch strings.ToLower(v) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}

package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"doorsteps/internal/config"
	"doorsteps/internal/database"
	"doorsteps/internal/localstore"
	"doorsteps/internal/middleware"
	"doorsteps/internal/modules/booking"
	"doorsteps/internal/modules/favorite"
	"doorsteps/internal/modules/notification"
	"doorsteps/internal/modules/order"
	"doorsteps/internal/modules/payment"
	"doorsteps/internal/modules/professional"
	"doorsteps/internal/modules/session"
	"doorsteps/internal/pkg/l10n"
	"doorsteps/internal/stubapi"
	"doorsteps/internal/upstream"
)

type testEnv struct {
	router     *gin.Engine
	backend    *httptest.Server
	orderCalls *int64

	// cookies accumulated across requests, standing in for a browser.
	cookies map[string]string
}

type apiResponse struct {
	Success bool           `json:"success"`
	Data    map[string]any `json:"data,omitempty"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func setup(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	dir := t.TempDir()

	stubDB, err := database.Connect(filepath.Join(dir, "stub.db"), zap.NewNop())
	require.NoError(t, err)
	stub, err := stubapi.New(stubDB, []byte("e2e-secret"), zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, stub.Seed())

	stubRouter := stub.Router()
	var orderCalls int64
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/v1/orders" && r.Method == http.MethodGet {
			atomic.AddInt64(&orderCalls, 1)
		}
		stubRouter.ServeHTTP(w, r)
	}))
	t.Cleanup(backend.Close)

	snapshots, err := localstore.Open(filepath.Join(dir, "snap.db"), zap.NewNop())
	require.NoError(t, err)

	cookieCfg := config.CookieConfig{MaxAge: 168 * time.Hour, SameSite: "Lax"}

	var manager *session.Manager
	client := upstream.NewClient(backend.URL, 5*time.Second, func() string {
		if manager == nil {
			return ""
		}
		return manager.Token()
	}, zap.NewNop())
	manager = session.NewManager(client, snapshots, cookieCfg, zap.NewNop())

	orders := order.NewStore(client, zap.NewNop())
	notifications := notification.NewStore(client, snapshots, zap.NewNop())
	favorites := favorite.NewStore(client, zap.NewNop())
	payments := payment.NewStore(client, zap.NewNop())
	professionals := professional.NewStore(client, zap.NewNop())
	manager.AttachStores(orders, notifications, favorites, payments, professionals)

	r := gin.New()
	r.Use(middleware.Locale(l10n.English))
	api := r.Group("/api")
	{
		session.NewHandler(manager).RegisterPublicRoutes(api)

		authed := api.Group("", middleware.RequireSession())
		session.NewHandler(manager).RegisterProtectedRoutes(authed)
		professional.NewHandler(professionals).RegisterRoutes(authed)

		dash := authed.Group("", middleware.RequireSetupComplete())
		order.NewHandler(orders).RegisterRoutes(dash)
		notification.NewHandler(notifications).RegisterRoutes(dash)
		favorite.NewHandler(favorites).RegisterRoutes(dash)
		payment.NewHandler(payments).RegisterRoutes(dash)
		booking.NewHandler(client).RegisterRoutes(dash)
	}

	return &testEnv{
		router:     r,
		backend:    backend,
		orderCalls: &orderCalls,
		cookies:    map[string]string{},
	}
}

func (e *testEnv) do(t *testing.T, method, path string, body any) (*httptest.ResponseRecorder, *apiResponse) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(buf)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for name, value := range e.cookies {
		req.AddCookie(&http.Cookie{Name: name, Value: value})
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	for _, ck := range w.Result().Cookies() {
		if ck.MaxAge < 0 {
			delete(e.cookies, ck.Name)
			continue
		}
		e.cookies[ck.Name] = ck.Value
	}

	var resp apiResponse
	if len(w.Body.Bytes()) > 0 {
		_ = json.Unmarshal(w.Body.Bytes(), &resp)
	}
	return w, &resp
}

func login(t *testing.T, e *testEnv, phone string) {
	t.Helper()
	w, resp := e.do(t, http.MethodPost, "/api/session/login", gin.H{"phone_number": phone})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "otp_requested", resp.Data["state"])

	w, resp = e.do(t, http.MethodPost, "/api/session/verify-otp", gin.H{"phone_number": phone, "otp": "123456"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "setup_incomplete", resp.Data["state"])
	require.NotEmpty(t, e.cookies["auth_token"])
	assert.Equal(t, "false", e.cookies["setup_complete"])
}

func completeSetup(t *testing.T, e *testEnv) {
	t.Helper()
	w, resp := e.do(t, http.MethodPost, "/api/session/setup-profile", gin.H{
		"full_name": "Gita Adhikari",
		"email":     "gita@example.com",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "setup_complete", resp.Data["state"])
	assert.Equal(t, "true", e.cookies["setup_complete"])
}

func TestLoginFlow_GatesDashboardUntilSetup(t *testing.T) {
	e := setup(t)

	// Nothing works before logging in.
	w, _ := e.do(t, http.MethodGet, "/api/orders", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	login(t, e, "9841000001")

	// Authenticated but setup-incomplete: dashboards stay locked.
	w, resp := e.do(t, http.MethodGet, "/api/orders", nil)
	require.Equal(t, http.StatusForbidden, w.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "SETUP_INCOMPLETE", resp.Error.Code)

	completeSetup(t, e)

	w, _ = e.do(t, http.MethodGet, "/api/orders", nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func placeBooking(t *testing.T, e *testEnv) {
	t.Helper()
	w, resp := e.do(t, http.MethodGet, "/api/professionals", nil)
	require.Equal(t, http.StatusOK, w.Code)
	pros := resp.Data["professionals"].([]any)
	require.NotEmpty(t, pros)
	proID := int64(pros[0].(map[string]any)["id"].(float64))

	w, resp = e.do(t, http.MethodGet, fmt.Sprintf("/api/professionals/%d/services", proID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	services := resp.Data["services"].([]any)
	require.NotEmpty(t, services)
	svc := services[0].(map[string]any)

	w, _ = e.do(t, http.MethodPost, "/api/bookings", gin.H{
		"professional_service_id": svc["id"],
		"professional_id":         svc["professional_id"],
		"unit_price":              svc["price"],
		"discounted_price":        svc["discounted_price"],
		"quantity":                2,
		"scheduled_date":          "2026-09-05",
		"scheduled_time":          "11:00",
		"address":                 "Baneshwor, Kathmandu",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestOrders_SecondFetchServedFromCache(t *testing.T) {
	e := setup(t)
	login(t, e, "9841000002")
	completeSetup(t, e)
	placeBooking(t, e)

	w, _ := e.do(t, http.MethodGet, "/api/orders", nil)
	require.Equal(t, http.StatusOK, w.Code)
	w, _ = e.do(t, http.MethodGet, "/api/orders", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(1), atomic.LoadInt64(e.orderCalls))

	// force goes back to the backend.
	w, _ = e.do(t, http.MethodGet, "/api/orders?force=true", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(2), atomic.LoadInt64(e.orderCalls))
}

func TestBookingAndNotifications(t *testing.T) {
	e := setup(t)
	login(t, e, "9841000003")
	completeSetup(t, e)

	// Booking through the seeded directory produces a "New Order"
	// notification on the stub side.
	placeBooking(t, e)

	w, resp := e.do(t, http.MethodGet, "/api/notifications", nil)
	require.Equal(t, http.StatusOK, w.Code)
	items := resp.Data["notifications"].([]any)
	require.NotEmpty(t, items)
	unread := resp.Data["unread_count"].(float64)
	require.GreaterOrEqual(t, unread, 1.0)

	w, resp = e.do(t, http.MethodPatch, "/api/notifications/read-all", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, resp = e.do(t, http.MethodGet, "/api/notifications", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0.0, resp.Data["unread_count"])
}

func TestFavorites_Roundtrip(t *testing.T) {
	e := setup(t)
	login(t, e, "9841000004")
	completeSetup(t, e)

	w, resp := e.do(t, http.MethodGet, "/api/favorites", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, resp.Data["favorites"])

	w, resp = e.do(t, http.MethodPost, "/api/favorites", gin.H{"professional_id": 1})
	require.Equal(t, http.StatusCreated, w.Code)

	w, resp = e.do(t, http.MethodGet, "/api/favorites/check?professional_id=1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, resp.Data["is_favorite"])

	w, resp = e.do(t, http.MethodGet, "/api/favorites", nil)
	require.Equal(t, http.StatusOK, w.Code)
	favs := resp.Data["favorites"].([]any)
	require.Len(t, favs, 1)
	favID := int64(favs[0].(map[string]any)["id"].(float64))

	w, _ = e.do(t, http.MethodDelete, fmt.Sprintf("/api/favorites/%d", favID), nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w, resp = e.do(t, http.MethodGet, "/api/favorites/check?professional_id=1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, resp.Data["is_favorite"])
}

func TestLogout_ClearsSessionAndCookies(t *testing.T) {
	e := setup(t)
	login(t, e, "9841000005")
	completeSetup(t, e)

	w, resp := e.do(t, http.MethodPost, "/api/session/logout", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, resp.Data["reload"])
	assert.NotContains(t, e.cookies, "auth_token")
	assert.NotContains(t, e.cookies, "setup_complete")

	// Without the cookie every protected route rejects.
	w, _ = e.do(t, http.MethodGet, "/api/session", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	w, _ = e.do(t, http.MethodGet, "/api/orders", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

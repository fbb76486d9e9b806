package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phillip/hostel-fest-payments/config"
	"github.com/phillip/hostel-fest-payments/logging"
	"github.com/phillip/hostel-fest-payments/models"
	"github.com/phillip/hostel-fest-payments/navigation"
	"github.com/phillip/hostel-fest-payments/services"
	"github.com/phillip/hostel-fest-payments/store"
)

type server struct {
	t   *testing.T
	app *services.App
	r   *gin.Engine
}

func newServer(t *testing.T) *server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := logging.Discard()
	app := services.New(services.Options{
		Store:        store.New(store.NewMemoryPersister(), "", log),
		PaymentDelay: -1,
		Log:          log,
	})
	cfg := &config.Config{JWTSecret: []byte("test-secret"), TokenTTL: time.Hour}

	r := gin.New()
	SetupRoutes(r, cfg, app)
	return &server{t: t, app: app, r: r}
}

func (s *server) do(method, path, token string, body any, header ...string) *httptest.ResponseRecorder {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	w := httptest.NewRecorder()
	s.r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

type authResponse struct {
	Token   string             `json:"token"`
	Session navigation.Session `json:"session"`
	User    models.User        `json:"user"`
}

func TestStudentPaymentJourney(t *testing.T) {
	s := newServer(t)

	w := s.do(http.MethodPost, "/auth/register", "", services.RegisterInput{
		Name: "Asha", Email: "asha@x.com", Phone: "9000000001", Room: "D-10",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	reg := decode[authResponse](t, w)
	require.NotEmpty(t, reg.Token)
	assert.Equal(t, int64(4), reg.User.ID)

	w = s.do(http.MethodGet, "/me/status", reg.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Payment Pending")

	w = s.do(http.MethodPost, "/me/payments", reg.Token, services.PaymentInput{Method: "UPI"})
	require.Equal(t, http.StatusAccepted, w.Code, w.Body.String())
	s.app.Wait()

	state := s.app.State()
	assert.Contains(t, state.Modals, navigation.SMS)
	assert.Contains(t, state.SMSText, "Dear Asha, your payment of Rs.500")

	w = s.do(http.MethodPost, "/me/payments", reg.Token, services.PaymentInput{Method: "UPI"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode[services.PaymentOutcome](t, w).AlreadyPaid)

	w = s.do(http.MethodGet, "/me/history", reg.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	etag := w.Header().Get("ETag")
	require.NotEmpty(t, etag)
	assert.Contains(t, w.Body.String(), "TXN")

	w = s.do(http.MethodGet, "/me/history", reg.Token, nil, "If-None-Match", etag)
	assert.Equal(t, http.StatusNotModified, w.Code)

	w = s.do(http.MethodPost, "/ui/modals/sms/close", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, s.app.Navigation().ModalVisible(navigation.SMS))
}

func TestRegister_Rejections(t *testing.T) {
	s := newServer(t)

	w := s.do(http.MethodPost, "/auth/register", "", services.RegisterInput{
		Name: "Dup", Email: "priya@example.com", Phone: "1", Room: "X",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "User with this email or phone already exists")

	w = s.do(http.MethodPost, "/auth/register", "", services.RegisterInput{Name: "  ", Email: "a@b.c", Phone: "2", Room: "Y"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Please fill in all fields")
}

func TestAdminEndpoints(t *testing.T) {
	s := newServer(t)

	w := s.do(http.MethodPost, "/auth/login", "", services.LoginInput{Role: "admin", Identifier: "admin", Password: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(http.MethodPost, "/auth/login", "", services.LoginInput{Role: "admin", Identifier: "admin", Password: "admin123"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	admin := decode[authResponse](t, w).Token

	w = s.do(http.MethodGet, "/admin/stats", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `1000`, string(decode[map[string]json.RawMessage](t, w)["totalCollected"]))

	w = s.do(http.MethodGet, "/admin/users", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]map[string]any](t, w), 3)

	w = s.do(http.MethodPost, "/admin/reminders", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `1`, string(decode[map[string]json.RawMessage](t, w)["sent"]))
	s.app.Wait()

	w = s.do(http.MethodGet, "/admin/notifications", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Sent payment reminders to 1 students")

	w = s.do(http.MethodPost, "/admin/backup", admin, nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = s.do(http.MethodGet, "/me/status", admin, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// A student signing in ends the admin session.
	w = s.do(http.MethodPost, "/auth/login", "", services.LoginInput{Role: "user", Identifier: "9876543211"})
	require.Equal(t, http.StatusOK, w.Code)
	w = s.do(http.MethodGet, "/admin/stats", admin, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProtectedRoutesNeedToken(t *testing.T) {
	s := newServer(t)
	for _, path := range []string{"/me/status", "/me/history", "/admin/stats", "/admin/payments"} {
		w := s.do(http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}

func TestUIEndpoints(t *testing.T) {
	s := newServer(t)

	w := s.do(http.MethodPost, "/ui/view", "", gin.H{"view": "login", "role": "admin"})
	require.Equal(t, http.StatusOK, w.Code)
	st := decode[navigation.State](t, w)
	assert.Equal(t, navigation.Login, st.View)
	assert.Equal(t, navigation.RoleAdmin, st.LoginRole)

	w = s.do(http.MethodPost, "/ui/view", "", gin.H{"view": "user-dashboard"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, navigation.Landing, decode[navigation.State](t, w).View)

	w = s.do(http.MethodPost, "/ui/view", "", gin.H{"view": "settings"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPost, "/ui/tabs/admin/users", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "users", decode[navigation.State](t, w).Tabs[navigation.AdminTabs])

	w = s.do(http.MethodPost, "/ui/tabs/admin/reports", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPost, "/auth/logout", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = s.do(http.MethodGet, "/ui/toasts", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Logged out successfully")
}

func TestPublicEndpoints(t *testing.T) {
	s := newServer(t)

	w := s.do(http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodGet, "/event", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "February 1, 2025")

	w = s.do(http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

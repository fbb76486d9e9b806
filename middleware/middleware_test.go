package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phillip/hostel-fest-payments/config"
	"github.com/phillip/hostel-fest-payments/navigation"
)

type staticSessions struct{ s *navigation.Session }

func (s *staticSessions) Session() *navigation.Session { return s.s }

func testConfig() *config.Config {
	return &config.Config{JWTSecret: []byte("test-secret"), TokenTTL: time.Hour}
}

func newRouter(cfg *config.Config, src SessionSource, role navigation.Role) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	g := r.Group("/", AuthMiddleware(cfg, src))
	if role != navigation.RoleNone {
		g.Use(RequireRole(role))
	}
	g.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"sid": c.GetString(CtxSessionID), "uid": c.GetInt64(CtxUserID)})
	})
	return r
}

func doGet(r http.Handler, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware_AcceptsActiveSession(t *testing.T) {
	cfg := testConfig()
	sess := navigation.Session{ID: "s-1", Role: navigation.RoleUser, Actor: navigation.Actor{UserID: 2, Name: "Priya"}}
	token, err := IssueToken(cfg, sess, time.Now())
	require.NoError(t, err)

	w := doGet(newRouter(cfg, &staticSessions{&sess}, navigation.RoleUser), token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"sid":"s-1","uid":2}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get(HeaderRequestID))
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	cfg := testConfig()
	sess := navigation.Session{ID: "s-1", Role: navigation.RoleUser, Actor: navigation.Actor{UserID: 2}}
	good, err := IssueToken(cfg, sess, time.Now())
	require.NoError(t, err)
	expired, err := IssueToken(cfg, sess, time.Now().Add(-2*time.Hour))
	require.NoError(t, err)
	forged, err := IssueToken(&config.Config{JWTSecret: []byte("other"), TokenTTL: time.Hour}, sess, time.Now())
	require.NoError(t, err)

	replaced := navigation.Session{ID: "s-2", Role: navigation.RoleUser}

	tests := []struct {
		name  string
		token string
		src   *navigation.Session
		role  navigation.Role
		want  int
	}{
		{"missing token", "", &sess, navigation.RoleNone, http.StatusUnauthorized},
		{"garbage", "not-a-jwt", &sess, navigation.RoleNone, http.StatusUnauthorized},
		{"expired", expired, &sess, navigation.RoleNone, http.StatusUnauthorized},
		{"wrong secret", forged, &sess, navigation.RoleNone, http.StatusUnauthorized},
		{"signed out", good, nil, navigation.RoleNone, http.StatusUnauthorized},
		{"superseded session", good, &replaced, navigation.RoleNone, http.StatusUnauthorized},
		{"wrong role", good, &sess, navigation.RoleAdmin, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doGet(newRouter(cfg, &staticSessions{tt.src}, tt.role), tt.token)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestRequestID_ReusesIncoming(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("request_id")) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "abc")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc", w.Body.String())
	assert.Equal(t, "abc", w.Header().Get(HeaderRequestID))
}

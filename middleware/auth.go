package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/phillip/hostel-fest-payments/config"
	"github.com/phillip/hostel-fest-payments/navigation"
)

// Context keys set by AuthMiddleware.
const (
	CtxSessionID = "session_id"
	CtxRole      = "role"
	CtxUserID    = "user_id"
)

// Claims binds a token to one sign-in.
type Claims struct {
	Role      string `json:"role"`
	SessionID string `json:"sid"`
	UserID    int64  `json:"uid,omitempty"`
	jwt.RegisteredClaims
}

// SessionSource reports the session currently signed in, if any.
type SessionSource interface {
	Session() *navigation.Session
}

// IssueToken signs a token for sess.
func IssueToken(cfg *config.Config, sess navigation.Session, now time.Time) (string, error) {
	subject := sess.Actor.Username
	if sess.Role == navigation.RoleUser {
		subject = sess.Actor.Name
	}
	claims := Claims{
		Role:      string(sess.Role),
		SessionID: sess.ID,
		UserID:    sess.Actor.UserID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(cfg.TokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(cfg.JWTSecret)
}

// ParseToken validates a signed token and returns its claims.
func ParseToken(cfg *config.Config, raw string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return cfg.JWTSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if claims.SessionID == "" {
		return nil, errors.New("token has no session")
	}
	return claims, nil
}

// AuthMiddleware accepts a bearer token only while the sign-in it was issued
// for is still the active session.
func AuthMiddleware(cfg *config.Config, sessions SessionSource) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		raw := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		if header == "" || raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing auth token"})
			return
		}

		claims, err := ParseToken(cfg, raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid auth token"})
			return
		}

		sess := sessions.Session()
		if sess == nil || sess.ID != claims.SessionID {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session has ended"})
			return
		}

		c.Set(CtxSessionID, claims.SessionID)
		c.Set(CtxRole, claims.Role)
		c.Set(CtxUserID, claims.UserID)
		c.Next()
	}
}

// RequireRole rejects requests whose token carries another role.
func RequireRole(role navigation.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(CtxRole) != string(role) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "not allowed for this role"})
			return
		}
		c.Next()
	}
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("test-secret")

func signed(t *testing.T, key []byte, claims jwt.StandardClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
	require.NoError(t, err)
	return s
}

func newEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", JWTAuthMiddleware(secret), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(UserIDKey))
	})
	return r
}

func TestJWTAuthMiddleware(t *testing.T) {
	future := time.Now().Add(time.Hour).Unix()
	past := time.Now().Add(-time.Hour).Unix()

	tests := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{"valid token", "Bearer " + signed(t, secret, jwt.StandardClaims{Subject: "U1", ExpiresAt: future}), http.StatusOK, "U1"},
		{"missing header", "", http.StatusUnauthorized, ""},
		{"not bearer", "Token abc", http.StatusUnauthorized, ""},
		{"wrong key", "Bearer " + signed(t, []byte("other"), jwt.StandardClaims{Subject: "U1", ExpiresAt: future}), http.StatusUnauthorized, ""},
		{"expired", "Bearer " + signed(t, secret, jwt.StandardClaims{Subject: "U1", ExpiresAt: past}), http.StatusUnauthorized, ""},
		{"no subject", "Bearer " + signed(t, secret, jwt.StandardClaims{ExpiresAt: future}), http.StatusUnauthorized, ""},
	}

	r := newEngine()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			if tt.body != "" {
				assert.Equal(t, tt.body, w.Body.String())
			}
		})
	}
}

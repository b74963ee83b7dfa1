package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, method jwt.SigningMethod, claims jwt.RegisteredClaims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(method, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func newAuthRouter(issuer string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", AuthMiddleware(testSecret, issuer), func(c *gin.Context) {
		userID, ok := GetUserIDFromContext(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.String(http.StatusOK, userID)
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	valid := jwt.RegisteredClaims{
		Subject:   "u-1",
		Issuer:    "vetpos",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	expired := valid
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))
	noSubject := valid
	noSubject.Subject = ""
	noExpiry := valid
	noExpiry.ExpiresAt = nil
	otherIssuer := valid
	otherIssuer.Issuer = "elsewhere"

	tests := []struct {
		name      string
		header    string
		wantCode  int
		wantInMsg string
	}{
		{"valid", "Bearer " + signToken(t, jwt.SigningMethodHS256, valid), http.StatusOK, ""},
		{"lowercase scheme", "bearer " + signToken(t, jwt.SigningMethodHS512, valid), http.StatusOK, ""},
		{"missing header", "", http.StatusUnauthorized, "required"},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized, "Bearer"},
		{"extra parts", "Bearer a b", http.StatusUnauthorized, "Bearer"},
		{"garbage token", "Bearer not-a-jwt", http.StatusUnauthorized, "Invalid token"},
		{"expired", "Bearer " + signToken(t, jwt.SigningMethodHS256, expired), http.StatusUnauthorized, "expired"},
		{"no expiry", "Bearer " + signToken(t, jwt.SigningMethodHS256, noExpiry), http.StatusUnauthorized, "missing required"},
		{"no subject", "Bearer " + signToken(t, jwt.SigningMethodHS256, noSubject), http.StatusUnauthorized, "claims"},
		{"other issuer", "Bearer " + signToken(t, jwt.SigningMethodHS256, otherIssuer), http.StatusUnauthorized, "issuer"},
	}

	r := newAuthRouter("vetpos")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantCode, w.Code)
			if tt.wantCode == http.StatusOK {
				assert.Equal(t, "u-1", w.Body.String())
				return
			}
			var body map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, "UNAUTHORIZED", body["error"])
			assert.Contains(t, body["message"], tt.wantInMsg)
		})
	}
}

func TestAuthMiddleware_NoIssuerConfigured(t *testing.T) {
	claims := jwt.RegisteredClaims{Subject: "u-2", ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))}
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, jwt.SigningMethodHS256, claims))
	w := httptest.NewRecorder()

	newAuthRouter("").ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "u-2", w.Body.String())
}

package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

const testSecret = "test-secret"

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("signing test token: %v", err)
	}
	return signed
}

func accessToken(t *testing.T, userID string) string {
	return signToken(t, jwt.MapClaims{
		"user_id": userID,
		"type":    "access",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
}

func runMiddleware(t *testing.T, authHeader string) (*httptest.ResponseRecorder, int64, bool) {
	t.Helper()
	middleware := NewMiddleware(NewService(testSecret))

	var gotUserID int64
	var gotOK bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, gotOK = UserIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest("GET", "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()

	middleware.Authenticate(next).ServeHTTP(rec, req)
	return rec, gotUserID, gotOK
}

func TestAuthenticateValidToken(t *testing.T) {
	rec, userID, ok := runMiddleware(t, "Bearer "+accessToken(t, "42"))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !ok || userID != 42 {
		t.Errorf("expected user 42 in context, got %d (ok=%v)", userID, ok)
	}
}

func TestAuthenticateMissingHeader(t *testing.T) {
	rec, _, ok := runMiddleware(t, "")

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
	if ok {
		t.Error("no user should reach the context")
	}
}

func TestAuthenticateRejectsRefreshToken(t *testing.T) {
	token := signToken(t, jwt.MapClaims{
		"user_id": "42",
		"type":    "refresh",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	rec, _, _ := runMiddleware(t, "Bearer "+token)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("refresh tokens must be rejected, got %d", rec.Code)
	}
}

func TestAuthenticateRejectsExpiredToken(t *testing.T) {
	token := signToken(t, jwt.MapClaims{
		"user_id": "42",
		"type":    "access",
		"exp":     time.Now().Add(-time.Hour).Unix(),
	})

	rec, _, _ := runMiddleware(t, "Bearer "+token)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expired tokens must be rejected, got %d", rec.Code)
	}
}

func TestAuthenticateRejectsWrongSecret(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "42",
		"type":    "access",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte("other-secret"))
	if err != nil {
		t.Fatalf("signing test token: %v", err)
	}

	rec, _, _ := runMiddleware(t, "Bearer "+signed)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("tokens signed with another secret must be rejected, got %d", rec.Code)
	}
}

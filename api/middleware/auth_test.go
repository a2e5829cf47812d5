package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	pkgAuth "github.com/feastline/feastline-backend/pkg/auth"
	"github.com/feastline/feastline-backend/pkg/config"
)

type stubChecker struct {
	ok bool
}

func (s stubChecker) HasSession(context.Context, string) (bool, error) {
	return s.ok, nil
}

func authJWTConfig() config.JWTConfig {
	return config.JWTConfig{Secret: "test-secret", Issuer: "feastline", ExpirationMinutes: 30}
}

func mintToken(t *testing.T) string {
	t.Helper()
	token, err := pkgAuth.MintAccessToken(authJWTConfig(), time.Now(), pkgAuth.AccessTokenPayload{
		UserID: uuid.New(),
		Name:   "Asha Rao",
		JTI:    uuid.NewString(),
	})
	if err != nil {
		t.Fatalf("minting token failed: %v", err)
	}
	return token
}

func protected(t *testing.T, checker stubChecker) http.Handler {
	t.Helper()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if UserIDFromContext(r.Context()) == "" {
			t.Error("expected user id in context")
		}
		w.WriteHeader(http.StatusOK)
	})
	return Auth(authJWTConfig(), checker, nil)(next)
}

func TestAuth_MissingHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	protected(t, stubChecker{ok: true}).ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestAuth_InvalidToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	w := httptest.NewRecorder()

	protected(t, stubChecker{ok: true}).ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestAuth_RevokedSession(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t))
	w := httptest.NewRecorder()

	protected(t, stubChecker{ok: false}).ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for revoked session, got %d", w.Code)
	}
}

func TestAuth_ValidToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t))
	w := httptest.NewRecorder()

	protected(t, stubChecker{ok: true}).ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func authRouter(token string) http.Handler {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	return BearerAuth(token)(next)
}

func TestBearerAuth_DisabledWhenEmpty(t *testing.T) {
	rec := httptest.NewRecorder()
	authRouter("").ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/analyze", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("empty token should disable auth, got %d", rec.Code)
	}
}

func TestBearerAuth_RejectsMissingHeader(t *testing.T) {
	rec := httptest.NewRecorder()
	authRouter("secret").ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/analyze", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestBearerAuth_AcceptsToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/analyze", nil)
	req.Header.Set("Authorization", "Bearer secret")
	rec := httptest.NewRecorder()
	authRouter("secret").ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestBearerAuth_SkipsProbes(t *testing.T) {
	rec := httptest.NewRecorder()
	authRouter("secret").ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("health should bypass auth, got %d", rec.Code)
	}
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireAdminToken_EmptyTokenIsNoop(t *testing.T) {
	handler := RequireAdminToken("")(okHandler())

	req := httptest.NewRequest(http.MethodPost, "/v1/cache:clear", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("got status %d, want %d", rr.Code, http.StatusOK)
	}
}

func TestRequireAdminToken_RejectsMissingToken(t *testing.T) {
	handler := RequireAdminToken("secret")(okHandler())

	req := httptest.NewRequest(http.MethodPost, "/v1/cache:clear", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("got status %d, want %d", rr.Code, http.StatusUnauthorized)
	}
}

func TestRequireAdminToken_RejectsWrongToken(t *testing.T) {
	handler := RequireAdminToken("secret")(okHandler())

	req := httptest.NewRequest(http.MethodPost, "/v1/cache:clear", nil)
	req.Header.Set(AdminTokenHeader, "wrong")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("got status %d, want %d", rr.Code, http.StatusUnauthorized)
	}
}

func TestRequireAdminToken_AllowsCorrectToken(t *testing.T) {
	handler := RequireAdminToken("secret")(okHandler())

	req := httptest.NewRequest(http.MethodPost, "/v1/cache:clear", nil)
	req.Header.Set(AdminTokenHeader, "secret")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("got status %d, want %d", rr.Code, http.StatusOK)
	}
}

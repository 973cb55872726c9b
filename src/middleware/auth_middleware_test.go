package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"fintrack-server/src/util"
)

var testSecret = []byte("test-secret")

func TestJWTAuthMiddlewareValidToken(t *testing.T) {
	token, err := util.IssueToken(testSecret, "u1", "ann@x.com")
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	var gotUserID, gotEmail string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, _ = r.Context().Value("user_id").(string)
		gotEmail, _ = r.Context().Value("email").(string)
	})

	r := httptest.NewRequest("GET", "/api/auth/me", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	JWTAuthMiddleware(testSecret)(next).ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if gotUserID != "u1" || gotEmail != "ann@x.com" {
		t.Fatalf("claims not propagated: user_id=%q email=%q", gotUserID, gotEmail)
	}
}

func TestJWTAuthMiddlewareMissingHeader(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("next handler must not run")
	})

	r := httptest.NewRequest("GET", "/api/auth/me", nil)
	w := httptest.NewRecorder()

	JWTAuthMiddleware(testSecret)(next).ServeHTTP(w, r)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestJWTAuthMiddlewareInvalidToken(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("next handler must not run")
	})

	r := httptest.NewRequest("GET", "/api/auth/me", nil)
	r.Header.Set("Authorization", "Bearer not.a.token")
	w := httptest.NewRecorder()

	JWTAuthMiddleware(testSecret)(next).ServeHTTP(w, r)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
}

func TestJWTAuthMiddlewareWrongSecret(t *testing.T) {
	token, err := util.IssueToken([]byte("other-secret"), "u1", "ann@x.com")
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("next handler must not run")
	})

	r := httptest.NewRequest("GET", "/api/auth/me", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	JWTAuthMiddleware(testSecret)(next).ServeHTTP(w, r)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
}

package util

import (
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var testSecret = []byte("test-secret")

func TestIssueAndParseTokenRoundTrip(t *testing.T) {
	token, err := IssueToken(testSecret, "u1", "ann@x.com")
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	r := httptest.NewRequest("GET", "/api/auth/me", nil)
	r.Header.Set("Authorization", "Bearer "+token)

	claims, err := ParseTokenFromRequest(r, testSecret)
	if err != nil {
		t.Fatalf("ParseTokenFromRequest: %v", err)
	}
	if claims["id"] != "u1" {
		t.Fatalf("expected id u1, got %v", claims["id"])
	}
	if claims["email"] != "ann@x.com" {
		t.Fatalf("expected email ann@x.com, got %v", claims["email"])
	}

	exp, ok := claims["exp"].(float64)
	if !ok {
		t.Fatalf("expected numeric exp claim, got %T", claims["exp"])
	}
	remaining := time.Until(time.Unix(int64(exp), 0))
	if remaining <= 0 || remaining > TokenTTL {
		t.Fatalf("expected expiry within %v, got %v", TokenTTL, remaining)
	}
}

func TestParseTokenMissingHeader(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/auth/me", nil)
	if _, err := ParseTokenFromRequest(r, testSecret); !errors.Is(err, ErrAuthHeaderMissing) {
		t.Fatalf("expected ErrAuthHeaderMissing, got %v", err)
	}

	// A header without the Bearer scheme counts as missing too.
	r.Header.Set("Authorization", "Basic abc123")
	if _, err := ParseTokenFromRequest(r, testSecret); !errors.Is(err, ErrAuthHeaderMissing) {
		t.Fatalf("expected ErrAuthHeaderMissing, got %v", err)
	}
}

func TestParseTokenWrongSecret(t *testing.T) {
	token, err := IssueToken([]byte("other-secret"), "u1", "ann@x.com")
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	r := httptest.NewRequest("GET", "/api/auth/me", nil)
	r.Header.Set("Authorization", "Bearer "+token)

	if _, err := ParseTokenFromRequest(r, testSecret); err == nil {
		t.Fatalf("expected error for token signed with a different secret")
	}
}

func TestParseTokenExpired(t *testing.T) {
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":    "u1",
		"email": "ann@x.com",
		"exp":   time.Now().Add(-time.Minute).Unix(),
	})
	tokenString, err := expired.SignedString(testSecret)
	if err != nil {
		t.Fatalf("SignedString: %v", err)
	}

	r := httptest.NewRequest("GET", "/api/auth/me", nil)
	r.Header.Set("Authorization", "Bearer "+tokenString)

	if _, err := ParseTokenFromRequest(r, testSecret); err == nil {
		t.Fatalf("expected error for expired token")
	}
}

func TestParseTokenGarbage(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/auth/me", nil)
	r.Header.Set("Authorization", "Bearer not.a.token")
	if _, err := ParseTokenFromRequest(r, testSecret); err == nil {
		t.Fatalf("expected error for malformed token")
	}
}

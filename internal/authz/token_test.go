package authz

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	tokens := NewTokens("test-secret", "messenger", time.Hour)

	raw, err := tokens.Issue("user-123")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	sub, err := tokens.Verify(raw)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if sub != "user-123" {
		t.Fatalf("expected subject user-123, got %q", sub)
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	issuer := NewTokens("secret-a", "messenger", time.Hour)
	verifier := NewTokens("secret-b", "messenger", time.Hour)

	raw, err := issuer.Issue("user-123")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := verifier.Verify(raw); err == nil {
		t.Fatalf("expected verification failure for wrong secret")
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	tokens := NewTokens("test-secret", "messenger", time.Minute)

	issuedAt := time.Now().Add(-time.Hour)
	tokens.now = func() time.Time { return issuedAt }
	raw, err := tokens.Issue("user-123")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	tokens.now = time.Now
	if _, err := tokens.Verify(raw); err == nil {
		t.Fatalf("expected expired token to be rejected")
	}
}

func TestVerifyRejectsIssuerMismatch(t *testing.T) {
	issuer := NewTokens("test-secret", "other-service", time.Hour)
	verifier := NewTokens("test-secret", "messenger", time.Hour)

	raw, err := issuer.Issue("user-123")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := verifier.Verify(raw); err == nil {
		t.Fatalf("expected issuer mismatch to be rejected")
	}
}

func TestMiddlewareGatesRequests(t *testing.T) {
	tokens := NewTokens("test-secret", "messenger", time.Hour)

	var gotSub string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSub, _ = SubjectFrom(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	handler := tokens.Middleware(next)

	req := httptest.NewRequest(http.MethodGet, "/v1/chats", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/v1/chats", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for garbage token, got %d", rec.Code)
	}

	raw, err := tokens.Issue("user-123")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	req = httptest.NewRequest(http.MethodGet, "/v1/chats", nil)
	req.Header.Set("Authorization", "Bearer "+raw)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with valid token, got %d", rec.Code)
	}
	if gotSub != "user-123" {
		t.Fatalf("expected subject in context, got %q", gotSub)
	}
}

package authclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mystarhq/notify-api/internal/domain"
)

func TestVerifyToken(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/user" {
			t.Errorf("path = %s, want /user", r.URL.Path)
		}
		if r.Header.Get("apikey") != "service-key" {
			t.Errorf("apikey header = %q, want service-key", r.Header.Get("apikey"))
		}

		switch r.Header.Get("Authorization") {
		case "Bearer good-token":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id":"user-1"}`))
		default:
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message":"invalid token"}`))
		}
	}))
	defer server.Close()

	c, err := New(server.URL, "service-key")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	userID, err := c.VerifyToken(context.Background(), "good-token")
	if err != nil {
		t.Fatalf("VerifyToken() unexpected error = %v", err)
	}
	if userID != "user-1" {
		t.Fatalf("userID = %q, want user-1", userID)
	}

	if _, err := c.VerifyToken(context.Background(), "bad-token"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("VerifyToken() error = %v, want ErrUnauthorized", err)
	}

	if _, err := c.VerifyToken(context.Background(), ""); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("VerifyToken() with empty token error = %v, want ErrUnauthorized", err)
	}
}

func TestResendVerification(t *testing.T) {
	t.Parallel()

	var got resendVerificationRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/resend" {
			t.Errorf("path = %s, want /resend", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("failed to decode request body: %v", err)
		}
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	c, err := New(server.URL, "service-key")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if err := c.ResendVerification(context.Background(), "user@example.com", "https://mystar.co.il/auth/callback"); err != nil {
		t.Fatalf("ResendVerification() unexpected error = %v", err)
	}

	if got.Type != "signup" {
		t.Fatalf("type = %q, want signup", got.Type)
	}
	if got.Email != "user@example.com" {
		t.Fatalf("email = %q, want user@example.com", got.Email)
	}
	if got.Options == nil || got.Options.EmailRedirectTo != "https://mystar.co.il/auth/callback" {
		t.Fatalf("options = %+v, want redirect to auth callback", got.Options)
	}
}

func TestSendPasswordResetFailure(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/recover" {
			t.Errorf("path = %s, want /recover", r.URL.Path)
		}
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"email not found"}`))
	}))
	defer server.Close()

	c, err := New(server.URL, "service-key")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if err := c.SendPasswordReset(context.Background(), "nobody@example.com", ""); err == nil {
		t.Fatal("SendPasswordReset() expected error for non-2xx response")
	}
}

func TestNewConfigErrors(t *testing.T) {
	t.Parallel()

	if _, err := New("", "key"); !errors.Is(err, domain.ErrConfig) {
		t.Fatalf("empty url error = %v, want ErrConfig", err)
	}
	if _, err := New("http://localhost:9999", ""); !errors.Is(err, domain.ErrConfig) {
		t.Fatalf("empty key error = %v, want ErrConfig", err)
	}
}

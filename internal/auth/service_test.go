package auth

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/resulto-ai/resulto/internal/identity"
)

type stubVerifier struct {
	assertions map[string]identity.Assertion
}

func (v stubVerifier) Verify(_ context.Context, raw string) (identity.Assertion, error) {
	a, ok := v.assertions[raw]
	if !ok {
		return identity.Assertion{}, fmt.Errorf("%w: unknown token", identity.ErrInvalidAssertion)
	}
	return a, nil
}

func newTestService() (*Service, *identity.Service) {
	users := identity.NewService(identity.NewMemoryRepository())
	verifier := stubVerifier{assertions: map[string]identity.Assertion{
		"tok-1": {Subject: "google-1", Email: "jane@example.com", Name: "Jane Doe"},
		"tok-2": {Subject: "google-1", Email: "jane@new.example.com", Name: "Janet"},
	}}
	return NewService(verifier, users, NewTokens("secret", 24*time.Hour)), users
}

func TestExchangeIssuesVerifiableToken(t *testing.T) {
	svc, _ := newTestService()

	session, err := svc.Exchange(context.Background(), "tok-1")
	if err != nil {
		t.Fatalf("exchange: %v", err)
	}
	if session.User.UID != "google-1" || session.User.IsPremium {
		t.Fatalf("unexpected user %+v", session.User)
	}
	uid, err := svc.Authenticate(session.Token)
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if uid != "google-1" {
		t.Fatalf("expected uid google-1, got %s", uid)
	}
}

func TestExchangeKeepsStoredDisplayName(t *testing.T) {
	svc, users := newTestService()
	ctx := context.Background()

	if _, err := svc.Exchange(ctx, "tok-1"); err != nil {
		t.Fatalf("first exchange: %v", err)
	}
	if err := users.Upgrade(ctx, "google-1"); err != nil {
		t.Fatalf("upgrade: %v", err)
	}

	session, err := svc.Exchange(ctx, "tok-2")
	if err != nil {
		t.Fatalf("second exchange: %v", err)
	}
	if session.User.DisplayName != "Jane Doe" {
		t.Fatalf("expected stored display name, got %q", session.User.DisplayName)
	}
	if !session.User.IsPremium {
		t.Fatalf("expected stored premium flag")
	}
	if session.User.Email != "jane@new.example.com" {
		t.Fatalf("expected asserted email, got %q", session.User.Email)
	}
}

func TestExchangeErrors(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.Exchange(ctx, "  "); !errors.Is(err, ErrMissingAssertion) {
		t.Fatalf("expected ErrMissingAssertion, got %v", err)
	}
	if _, err := svc.Exchange(ctx, "forged"); !errors.Is(err, identity.ErrInvalidAssertion) {
		t.Fatalf("expected ErrInvalidAssertion, got %v", err)
	}
}

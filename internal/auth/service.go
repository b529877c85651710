package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/resulto-ai/resulto/internal/identity"
)

// ErrMissingAssertion is returned when the sign-in request carries no ID token.
var ErrMissingAssertion = errors.New("id token required")

// Service bridges third-party sign-in to local users and session tokens.
type Service struct {
	verifier identity.AssertionVerifier
	users    *identity.Service
	tokens   *Tokens
}

// NewService wires the identity bridge.
func NewService(verifier identity.AssertionVerifier, users *identity.Service, tokens *Tokens) *Service {
	return &Service{verifier: verifier, users: users, tokens: tokens}
}

// Session is the outcome of a successful sign-in.
type Session struct {
	User      identity.User
	Token     string
	ExpiresAt time.Time
}

// Exchange validates an identity assertion, resolves (or creates) the local
// user and issues a session token. The returned email is the freshly
// asserted one; display name and premium flag come from the store.
func (s *Service) Exchange(ctx context.Context, rawAssertion string) (Session, error) {
	rawAssertion = strings.TrimSpace(rawAssertion)
	if rawAssertion == "" {
		return Session{}, ErrMissingAssertion
	}

	assertion, err := s.verifier.Verify(ctx, rawAssertion)
	if err != nil {
		return Session{}, err
	}

	user, err := s.users.FindOrCreate(ctx, assertion)
	if err != nil {
		return Session{}, err
	}
	if assertion.Email != "" {
		user.Email = assertion.Email
	}

	token, exp, err := s.tokens.Issue(user.UID)
	if err != nil {
		return Session{}, err
	}
	return Session{User: user, Token: token, ExpiresAt: exp}, nil
}

// Authenticate resolves a raw session token to its uid.
func (s *Service) Authenticate(raw string) (string, error) {
	return s.tokens.Verify(raw)
}

package identity

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"google.golang.org/api/idtoken"
	"google.golang.org/api/option"
)

// ErrInvalidAssertion is returned when an identity token fails validation
// (bad signature, expired, wrong audience, malformed).
var ErrInvalidAssertion = errors.New("invalid identity assertion")

// AssertionVerifier validates a third-party identity token and returns its facts.
type AssertionVerifier interface {
	Verify(ctx context.Context, rawToken string) (Assertion, error)
}

// GoogleVerifier validates Google Sign-In ID tokens against Google's public
// certificates, bound to this service's OAuth client id.
type GoogleVerifier struct {
	validator *idtoken.Validator
	clientID  string
}

// NewGoogleVerifier builds a verifier for the given OAuth client id.
func NewGoogleVerifier(ctx context.Context, clientID string) (*GoogleVerifier, error) {
	if clientID == "" {
		return nil, fmt.Errorf("google client id is required")
	}
	v, err := idtoken.NewValidator(ctx, option.WithHTTPClient(&http.Client{Timeout: 10 * time.Second}))
	if err != nil {
		return nil, fmt.Errorf("build id token validator: %w", err)
	}
	return &GoogleVerifier{validator: v, clientID: clientID}, nil
}

// Verify validates rawToken and extracts subject, email and display name.
func (g *GoogleVerifier) Verify(ctx context.Context, rawToken string) (Assertion, error) {
	payload, err := g.validator.Validate(ctx, rawToken, g.clientID)
	if err != nil {
		return Assertion{}, fmt.Errorf("%w: %v", ErrInvalidAssertion, err)
	}
	if payload.Subject == "" {
		return Assertion{}, fmt.Errorf("%w: missing subject", ErrInvalidAssertion)
	}
	email, _ := payload.Claims["email"].(string)
	name, _ := payload.Claims["name"].(string)
	return Assertion{Subject: payload.Subject, Email: email, Name: name}, nil
}

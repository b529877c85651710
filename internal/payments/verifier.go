package payments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

var (
	// ErrVerificationFailed covers every way a reference can fail to verify.
	ErrVerificationFailed = errors.New("payment verification failed")
	// ErrMissingReference is returned for an empty transaction reference.
	ErrMissingReference = errors.New("reference required")
)

// DefaultPaystackURL is the production Paystack API root.
const DefaultPaystackURL = "https://api.paystack.co"

const maxResponseBytes = 1 << 20

// Verifier confirms a transaction with the payment provider.
type Verifier interface {
	Verify(ctx context.Context, reference string) error
}

// PaystackVerifier calls Paystack's transaction verification endpoint.
type PaystackVerifier struct {
	client  *http.Client
	baseURL string
	secret  string
}

// NewPaystackVerifier builds a verifier. An empty baseURL targets production.
func NewPaystackVerifier(baseURL, secret string, timeout time.Duration) *PaystackVerifier {
	if baseURL == "" {
		baseURL = DefaultPaystackURL
	}
	return &PaystackVerifier{
		client:  &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(baseURL, "/"),
		secret:  secret,
	}
}

type verifyResponse struct {
	Message string `json:"message"`
	Data    *struct {
		Status string `json:"status"`
	} `json:"data"`
}

// Verify succeeds only for an HTTP 200 whose data.status is "success".
// Failures carry the provider's message when it sent one.
func (v *PaystackVerifier) Verify(ctx context.Context, reference string) error {
	if strings.TrimSpace(reference) == "" {
		return ErrMissingReference
	}
	endpoint := v.baseURL + "/transaction/verify/" + url.PathEscape(reference)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrVerificationFailed, err)
	}
	req.Header.Set("Authorization", "Bearer "+v.secret)
	req.Header.Set("Accept", "application/json")

	resp, err := v.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrVerificationFailed, err)
	}
	defer resp.Body.Close()

	var body verifyResponse
	decodeErr := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: provider returned %d%s", ErrVerificationFailed, resp.StatusCode, providerMessage(body.Message))
	}
	if decodeErr != nil {
		return fmt.Errorf("%w: decode response: %v", ErrVerificationFailed, decodeErr)
	}
	if body.Data == nil || body.Data.Status != "success" {
		status := ""
		if body.Data != nil {
			status = body.Data.Status
		}
		return fmt.Errorf("%w: transaction status %q%s", ErrVerificationFailed, status, providerMessage(body.Message))
	}
	return nil
}

func providerMessage(msg string) string {
	if msg = strings.TrimSpace(msg); msg == "" {
		return ""
	}
	return ": " + msg
}

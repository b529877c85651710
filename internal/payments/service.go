package payments

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/resulto-ai/resulto/internal/identity"
	"github.com/resulto-ai/resulto/internal/notification"
)

// Upgrader flips a user to premium.
type Upgrader interface {
	Upgrade(ctx context.Context, uid string) error
}

// Service gates premium access behind a verified payment.
type Service struct {
	verifier Verifier
	users    Upgrader
	notifier notification.Notifier
	logger   *slog.Logger
	now      func() time.Time
}

// NewService constructs a payment service. notifier may be nil.
func NewService(verifier Verifier, users Upgrader, notifier notification.Notifier, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{verifier: verifier, users: users, notifier: notifier, logger: logger, now: time.Now}
}

// VerifyAndUpgrade marks uid premium once reference is confirmed paid. The
// user is left untouched on any verification failure. A confirmed payment
// for a uid with no stored user succeeds without an upgrade.
func (s *Service) VerifyAndUpgrade(ctx context.Context, uid, reference string) error {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return ErrMissingReference
	}
	if err := s.verifier.Verify(ctx, reference); err != nil {
		if errors.Is(err, ErrVerificationFailed) || errors.Is(err, ErrMissingReference) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrVerificationFailed, err)
	}
	if err := s.users.Upgrade(ctx, uid); err != nil {
		if errors.Is(err, identity.ErrUserNotFound) {
			s.logger.Warn("payment confirmed for unknown user",
				slog.String("user_id", uid),
				slog.String("reference", reference),
			)
			return nil
		}
		return fmt.Errorf("upgrade user: %w", err)
	}

	if s.notifier != nil {
		err := s.notifier.Send(ctx, notification.Message{
			Kind:   notification.KindPremiumUpgrade,
			UserID: uid,
			Body:   fmt.Sprintf("Payment %s confirmed, watermark removed from new results", reference),
			At:     s.now().UTC(),
		})
		if err != nil {
			s.logger.Error("premium notification failed",
				slog.String("user_id", uid),
				slog.String("error", err.Error()),
			)
		}
	}
	return nil
}

package identity

import (
	"context"
	"errors"
	"time"
)

// Service manages the local user lifecycle.
type Service struct {
	repo Repository
	now  func() time.Time
}

// NewService creates a new identity service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// FindOrCreate resolves the local user for a verified assertion. A first
// sighting creates a non-premium user; afterwards the stored display name
// and premium flag win over whatever the assertion carries.
func (s *Service) FindOrCreate(ctx context.Context, a Assertion) (User, error) {
	user, err := s.repo.FindByUID(ctx, a.Subject)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, ErrUserNotFound) {
		return User{}, err
	}

	user = User{
		UID:         a.Subject,
		Email:       a.Email,
		DisplayName: a.Name,
		IsPremium:   false,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, ErrUserExists) {
			// lost a race with a parallel first sign-in
			return s.repo.FindByUID(ctx, a.Subject)
		}
		return User{}, err
	}
	return user, nil
}

// Profile returns the stored user.
func (s *Service) Profile(ctx context.Context, uid string) (User, error) {
	return s.repo.FindByUID(ctx, uid)
}

// IsPremium reports the stored premium flag. Unknown users are not premium.
func (s *Service) IsPremium(ctx context.Context, uid string) (bool, error) {
	user, err := s.repo.FindByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return false, nil
		}
		return false, err
	}
	return user.IsPremium, nil
}

// Upgrade marks the user as premium.
func (s *Service) Upgrade(ctx context.Context, uid string) error {
	return s.repo.SetPremium(ctx, uid, true)
}

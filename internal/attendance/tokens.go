package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DefaultRegistrationTokenTTL bounds sign-up links when no TTL is given
const DefaultRegistrationTokenTTL = 24 * time.Hour

// IssueRegistrationToken creates a time-boxed sign-up token. The token store
// sits outside the attendance engine proper; it backs the administrator's
// register-link flow.
func (s *Service) IssueRegistrationToken(ctx context.Context, createdBy string, ttl time.Duration) (*RegistrationLink, error) {
	if ttl <= 0 {
		ttl = DefaultRegistrationTokenTTL
	}

	token := uuid.NewString()
	expiresAt := s.clock.Now().Add(ttl).UTC()

	if err := s.store.CreateRegistrationToken(ctx, token, createdBy, expiresAt); err != nil {
		return nil, fmt.Errorf("issue registration token: %w", err)
	}
	return &RegistrationLink{Token: token, ExpiresAt: expiresAt}, nil
}

// RedeemRegistrationToken consumes a sign-up token; unknown, expired and
// reused tokens all fail with domain.ErrTokenInvalid.
func (s *Service) RedeemRegistrationToken(ctx context.Context, token string) error {
	return s.store.RedeemRegistrationToken(ctx, token, s.clock.Now())
}

package dto

import (
	"fmt"
	"time"

	apierrors "github.com/roboteam/door-tracker/internal/api/shared/errors"
)

// MaxCardPayloadLength bounds the raw payload a scanner may submit
const MaxCardPayloadLength = 128

// ScanRequest represents the request body a door scanner submits on a card read
type ScanRequest struct {
	DeviceID    string `json:"device_id"`
	CardPayload string `json:"card_payload"`
}

// Validate validates the request body
func (r *ScanRequest) Validate() error {
	// Validate: device ID must be provided
	if r.DeviceID == "" {
		return apierrors.NewValidationError("device_id is required")
	}

	// Validate: payload length must be bounded
	if len(r.CardPayload) > MaxCardPayloadLength {
		return apierrors.NewValidationError(fmt.Sprintf("card_payload must be at most %d characters", MaxCardPayloadLength))
	}

	return nil
}

// ChangeStatusRequest represents the request body for a manual status toggle
type ChangeStatusRequest struct {
	TagID int64 `json:"tag_id"`
}

// Validate validates the request body
func (r *ChangeStatusRequest) Validate() error {
	// Validate: tag ID must be provided
	if r.TagID <= 0 {
		return apierrors.NewValidationError("tag_id is required")
	}

	return nil
}

// EnrollTagRequest represents the request body for enrolling a
// pending-registration tag for an identity
type EnrollTagRequest struct {
	OwnerID     int64  `json:"owner_id"`
	DisplayName string `json:"display_name"`
}

// Validate validates the request body
func (r *EnrollTagRequest) Validate() error {
	// Validate: owner ID must be provided
	if r.OwnerID <= 0 {
		return apierrors.NewValidationError("owner_id is required")
	}

	// Validate: display name must be provided
	if r.DisplayName == "" {
		return apierrors.NewValidationError("display_name is required")
	}

	return nil
}

// CreateRegistrationLinkRequest represents the request body for issuing a
// sign-up link
type CreateRegistrationLinkRequest struct {
	CreatedBy string `json:"created_by"`
	// TTL is an optional Go duration string (e.g. "24h"); the server default
	// applies when omitted
	TTL string `json:"ttl,omitempty"`
}

// Validate validates the request body
func (r *CreateRegistrationLinkRequest) Validate() error {
	// Validate: creator must be provided
	if r.CreatedBy == "" {
		return apierrors.NewValidationError("created_by is required")
	}

	// Validate: TTL must parse and be positive when provided
	if r.TTL != "" {
		d, err := time.ParseDuration(r.TTL)
		if err != nil {
			return apierrors.NewValidationError(fmt.Sprintf("invalid ttl: %s", r.TTL))
		}
		if d <= 0 {
			return apierrors.NewValidationError("ttl must be positive")
		}
	}

	return nil
}

// RedeemRegistrationLinkRequest represents the request body the sign-up
// gateway submits when a link is used
type RedeemRegistrationLinkRequest struct {
	Token string `json:"token"`
}

// Validate validates the request body
func (r *RedeemRegistrationLinkRequest) Validate() error {
	// Validate: token must be provided
	if r.Token == "" {
		return apierrors.NewValidationError("token is required")
	}

	return nil
}

// ParsedTTL returns the requested TTL, or zero when the server default applies
func (r *CreateRegistrationLinkRequest) ParsedTTL() time.Duration {
	if r.TTL == "" {
		return 0
	}
	d, err := time.ParseDuration(r.TTL)
	if err != nil {
		return 0
	}
	return d
}

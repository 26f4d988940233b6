package domain

import "errors"

var (
	// ErrInvalidPayload is returned when a scan arrives with a missing or empty card payload
	ErrInvalidPayload = errors.New("invalid scan payload")

	// ErrUnauthorizedDevice is returned when the scanning device is not in the scanner registry
	ErrUnauthorizedDevice = errors.New("device not authorized")

	// ErrCardNotRegistered is returned when a scanned card resolves to an unauthorized tag
	ErrCardNotRegistered = errors.New("card not registered")

	// ErrTagNotOwned is returned when a self-service status change names a tag the caller does not own
	ErrTagNotOwned = errors.New("tag not found or not yours")

	// ErrAlreadyBound is returned when binding a UID to a tag that already has one.
	// This is a data-integrity fault: correct operation never reaches it.
	ErrAlreadyBound = errors.New("tag already bound to a card")

	// ErrInvalidTagState is returned when a tag's stored fields violate the
	// name-iff-owner invariant or carry neither UID nor owner. Unreachable in
	// correct operation; any occurrence is a data-integrity fault.
	ErrInvalidTagState = errors.New("tag fields violate lifecycle invariant")

	// ErrIdentityNotFound is returned when tag enrollment names an identity that does not exist
	ErrIdentityNotFound = errors.New("identity not found")

	// ErrTokenInvalid is returned when a registration token is unknown, expired, or already used
	ErrTokenInvalid = errors.New("registration token invalid")
)

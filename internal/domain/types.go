package domain

import (
	"encoding/hex"
	"strconv"
	"strings"
)

// EventType represents the type of an attendance log entry
type EventType string

const (
	// EventCheckIn marks the start of a presence interval
	EventCheckIn EventType = "IN"
	// EventCheckOut marks the end of a presence interval
	EventCheckOut EventType = "OUT"
	// EventRegistration marks the scan that bound a physical card to a pending tag
	EventRegistration EventType = "REG"
	// EventUnknown is an audit marker for scans that could not be attributed
	EventUnknown EventType = "WTF"
)

// Display returns the human-readable label for an event type
func (t EventType) Display() string {
	switch t {
	case EventCheckIn:
		return "Check-in"
	case EventCheckOut:
		return "Check-out"
	case EventRegistration:
		return "Registration"
	case EventUnknown:
		return "Card not linked"
	default:
		return string(t)
	}
}

// Toggles reports whether the event type participates in the
// check-in/check-out alternation. Registration and audit entries do not.
func (t EventType) Toggles() bool {
	return t == EventCheckIn || t == EventCheckOut
}

// NextEventType derives the type of the next toggle entry from the most
// recent toggling entry. last is nil when the tag has no IN/OUT history.
func NextEventType(last *EventType) EventType {
	if last == nil || *last == EventCheckOut {
		return EventCheckIn
	}
	return EventCheckOut
}

// TagState is the derived lifecycle state of a tag
type TagState string

const (
	// TagClaimed means the tag has both a physical UID and an owner
	TagClaimed TagState = "claimed"
	// TagPendingRegistration means a person was enrolled but their card has not been scanned yet
	TagPendingRegistration TagState = "pending_registration"
	// TagUnauthorized means an unknown card was scanned and nobody claimed it
	TagUnauthorized TagState = "unauthorized"
)

// DeriveTagState computes the lifecycle state from the two nullable fields.
// A name without an owner (or the reverse), or a tag with neither UID nor
// owner, violates the storage invariant and surfaces ErrInvalidTagState.
func DeriveTagState(hasUID, hasOwner, hasName bool) (TagState, error) {
	if hasOwner != hasName {
		return "", ErrInvalidTagState
	}
	switch {
	case hasUID && hasOwner:
		return TagClaimed, nil
	case hasOwner:
		return TagPendingRegistration, nil
	case hasUID:
		return TagUnauthorized, nil
	default:
		return "", ErrInvalidTagState
	}
}

// ScanState is the outcome reported to the scanner firmware
type ScanState string

const (
	ScanStateRegister ScanState = "register"
	ScanStateCheckin  ScanState = "checkin"
	ScanStateCheckout ScanState = "checkout"
)

// ScanStateForEvent maps a written toggle entry to the reported scan state
func ScanStateForEvent(t EventType) ScanState {
	if t == EventCheckOut {
		return ScanStateCheckout
	}
	return ScanStateCheckin
}

// NumericID interprets a payload that consists solely of decimal digits as a
// tag's stable handle. Returns false for anything else, including payloads
// that overflow int64.
func NumericID(payload string) (int64, bool) {
	if payload == "" {
		return 0, false
	}
	for _, r := range payload {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	id, err := strconv.ParseInt(payload, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// NormalizeName lowercases a display name and strips every character outside
// [a-z0-9], so "Dr. Jones-2" and "drjones2" compare equal.
func NormalizeName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// DecodeUID strips everything outside the hex alphabet (scanner firmware may
// emit colons, dashes or spaces between bytes) and decodes the remainder.
// Returns false on empty or odd-length input instead of an error; resolution
// treats an undecodable payload as a non-match, not a failure.
func DecodeUID(payload string) ([]byte, bool) {
	var b strings.Builder
	for _, r := range strings.ToLower(payload) {
		if (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if cleaned == "" || len(cleaned)%2 != 0 {
		return nil, false
	}
	uid, err := hex.DecodeString(cleaned)
	if err != nil {
		return nil, false
	}
	return uid, true
}

// FormatUID renders a raw card UID the way it is displayed everywhere:
// uppercase hex without separators. Empty for a nil UID.
func FormatUID(uid []byte) string {
	return strings.ToUpper(hex.EncodeToString(uid))
}

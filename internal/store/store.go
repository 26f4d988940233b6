package store

import (
	"context"
	"time"

	"github.com/roboteam/door-tracker/internal/store/schema"
)

// Store defines the interface for database operations
type Store interface {
	// GetIdentityByID retrieves an identity by its primary key
	GetIdentityByID(ctx context.Context, identityID int64) (*schema.Identity, error)

	// GetScannerByDeviceID retrieves a scanner by its stable device id
	GetScannerByDeviceID(ctx context.Context, deviceID string) (*schema.Scanner, error)

	// GetTagByID retrieves a tag (with owner) by its stable handle
	GetTagByID(ctx context.Context, tagID int64) (*schema.Tag, error)
	// GetTagByDisplayName retrieves a tag by case-insensitive exact name match,
	// first as given and then with all non-alphanumerics stripped from both sides
	GetTagByDisplayName(ctx context.Context, name string) (*schema.Tag, error)
	// GetTagByUID retrieves a tag by its raw card UID
	GetTagByUID(ctx context.Context, uid []byte) (*schema.Tag, error)
	// GetOldestPendingTag retrieves the oldest tag still waiting for its card
	// (owner set, raw UID unset), the first-seen binding target
	GetOldestPendingTag(ctx context.Context) (*schema.Tag, error)
	// CreateUnauthorizedTag creates a tag for an unknown card. Concurrent
	// creations for the same UID converge on one row via the unique index.
	CreateUnauthorizedTag(ctx context.Context, uid []byte) (*schema.Tag, error)
	// CreatePendingTag enrolls a tag for an identity before its card is scanned
	CreatePendingTag(ctx context.Context, ownerID int64, displayName string) (*schema.Tag, error)
	// OwnerHasClaimedTag reports whether the identity already holds a claimed tag
	OwnerHasClaimedTag(ctx context.Context, ownerID int64) (bool, error)

	// AppendToggleEntry derives the next check-in/check-out type for a tag and
	// appends the entry. The tag row is locked for the duration, so racing
	// scans of one card serialize into a strict alternation.
	AppendToggleEntry(ctx context.Context, tagID int64, scannerID *string, at time.Time) (*schema.LogEntry, error)
	// BindPendingTag binds a card UID to a pending-registration tag and
	// appends the registration entry, atomically under the tag row lock
	BindPendingTag(ctx context.Context, tagID int64, uid []byte, scannerID *string, at time.Time) (*schema.LogEntry, error)
	// AppendAuditEntry records a scan that produced no toggle (unknown card or
	// unauthorized device); tag and scanner may both be absent
	AppendAuditEntry(ctx context.Context, tagID *int64, scannerID *string, at time.Time) (*schema.LogEntry, error)

	// GetLastEntryForIdentity retrieves the identity's most recent toggle
	// entry across all of its tags (time desc, sequence desc)
	GetLastEntryForIdentity(ctx context.Context, identityID int64) (*schema.LogEntry, error)
	// ListEntriesForIdentity retrieves all of the identity's entries, newest first
	ListEntriesForIdentity(ctx context.Context, identityID int64) ([]*schema.LogEntry, error)
	// ListEntriesForIdentityBetween retrieves the identity's entries with
	// time in [from, to), oldest first; the statistics walk input
	ListEntriesForIdentityBetween(ctx context.Context, identityID int64, from, to time.Time) ([]*schema.LogEntry, error)

	// UpsertDailyStatistic writes the (identity, day) aggregate row: sets
	// minutes_day, re-sums the week and month buckets from existing rows, and
	// recomputes average_week and total_minutes. Idempotent per day; reports
	// whether the row was created.
	UpsertDailyStatistic(ctx context.Context, input UpsertDailyStatisticInput) (*schema.DailyStatistic, bool, error)

	// CreateRegistrationToken persists a time-boxed sign-up token
	CreateRegistrationToken(ctx context.Context, token, createdBy string, expiresAt time.Time) error
	// RedeemRegistrationToken marks a token used; fails for unknown, expired,
	// or already-used tokens
	RedeemRegistrationToken(ctx context.Context, token string, now time.Time) error
}

// UpsertDailyStatisticInput carries the bucket boundaries the aggregator
// computed in the configured local timezone. Day, WeekStart and MonthStart
// are local midnights truncated to dates.
type UpsertDailyStatisticInput struct {
	IdentityID int64
	Day        time.Time
	WeekStart  time.Time
	MonthStart time.Time
	MinutesDay int64
}

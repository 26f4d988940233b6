package attendance

import (
	"context"
	"time"

	"github.com/roboteam/door-tracker/internal/adapter"
	"github.com/roboteam/door-tracker/internal/domain"
	"github.com/roboteam/door-tracker/internal/store"
)

// Engine is the interface for the attendance engine consumed by the API layer
//
//go:generate mockgen -source=service.go -destination=../mocks/attendance_engine.go -package=mocks -mock_names=Engine=MockEngine
type Engine interface {
	// Scan resolves a raw card payload from a door scanner and records the
	// resulting ledger event
	Scan(ctx context.Context, deviceID, payload string) (*ScanResult, error)

	// Status returns the caller's current check-in state derived from the
	// most recent toggle entry
	Status(ctx context.Context, identityID int64) (*StatusResult, error)

	// ChangeStatus toggles the caller's state through one of their own tags
	ChangeStatus(ctx context.Context, identityID, tagID int64) (*StatusResult, error)

	// History returns the caller's full attendance log, newest first
	History(ctx context.Context, identityID int64) ([]HistoryEntry, error)

	// MinutesWorkedOn computes whole minutes worked on the calendar day
	// containing t (configured local timezone)
	MinutesWorkedOn(ctx context.Context, identityID int64, t time.Time) (int64, error)

	// SaveStatistics upserts today's statistics row and recomputes the
	// rolling aggregates
	SaveStatistics(ctx context.Context, identityID int64) (*StatisticsResult, error)

	// EnrollTag creates a pending-registration tag for an identity
	EnrollTag(ctx context.Context, ownerID int64, displayName string) (*TagResult, error)

	// IssueRegistrationToken creates a time-boxed sign-up token
	IssueRegistrationToken(ctx context.Context, createdBy string, ttl time.Duration) (*RegistrationLink, error)

	// RedeemRegistrationToken consumes a sign-up token
	RedeemRegistrationToken(ctx context.Context, token string) error
}

// Service implements Engine over the persistence store
type Service struct {
	store store.Store
	clock adapter.Clock
	loc   *time.Location
}

// New creates the attendance engine. loc is the timezone used for day, week
// and month bucket boundaries; timestamps themselves stay UTC.
func New(s store.Store, clock adapter.Clock, loc *time.Location) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{store: s, clock: clock, loc: loc}
}

// ScanResult is the outcome of a scanner-originated scan
type ScanResult struct {
	State domain.ScanState
	Name  string
	TagID int64
}

// StatusResult describes the caller's toggle state after a read or change
type StatusResult struct {
	// State is "checkin" or "checkout", empty when the identity has no toggle
	// history yet
	State        string
	StateDisplay string
	Date         *time.Time
	Tag          string
}

// HistoryEntry is one row of the caller's attendance log
type HistoryEntry struct {
	ID     int64
	Type   string
	Time   time.Time
	Tag    string
	UserID *int64
}

// StatisticsResult mirrors the persisted daily statistics row
type StatisticsResult struct {
	MinutesDay   int64
	MinutesWeek  int64
	MinutesMonth int64
	AverageWeek  float64
	TotalMinutes int64
	Date         time.Time
	Created      bool
}

// TagResult describes a tag returned by the enrollment path
type TagResult struct {
	ID          int64
	DisplayName string
	OwnerID     int64
	State       domain.TagState
}

// RegistrationLink is an issued sign-up token
type RegistrationLink struct {
	Token     string
	ExpiresAt time.Time
}

package dto

import "time"

// ScanResponse represents the outcome of a scanner-originated card read
type ScanResponse struct {
	State string `json:"state"` // register, checkin or checkout
	Name  string `json:"name"`
	TagID int64  `json:"tag_id"`
}

// StatusResponse represents the caller's current toggle state
type StatusResponse struct {
	// State is "checkin" or "checkout"; null when the identity has no toggle
	// history yet
	State        *string    `json:"state"`
	StateDisplay string     `json:"state_display"`
	Date         *time.Time `json:"date"`
	Tag          string     `json:"tag,omitempty"`
}

// LogEntryResponse represents one row of the caller's attendance log
type LogEntryResponse struct {
	ID     int64     `json:"id"`
	Type   string    `json:"type"`
	Time   time.Time `json:"time"`
	Tag    string    `json:"tag"`
	UserID *int64    `json:"user_id"`
}

// LogsResponse wraps the attendance log, newest first
type LogsResponse struct {
	Logs []LogEntryResponse `json:"logs"`
}

// StatisticsResponse mirrors the persisted daily statistics row after an upsert
type StatisticsResponse struct {
	MinutesDay     int64     `json:"minutes_day"`
	MinutesWeek    int64     `json:"minutes_week"`
	MinutesMonth   int64     `json:"minutes_month"`
	AverageMinutes float64   `json:"average_minutes"`
	TotalMinutes   int64     `json:"total_minutes"`
	Date           time.Time `json:"date"`
	Created        bool      `json:"created"`
}

// TagResponse represents a tag returned by the enrollment path
type TagResponse struct {
	ID          int64  `json:"id"`
	DisplayName string `json:"display_name"`
	OwnerID     int64  `json:"owner_id"`
	State       string `json:"state"`
}

// RegistrationLinkResponse represents an issued sign-up link
type RegistrationLinkResponse struct {
	Token     string    `json:"token"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

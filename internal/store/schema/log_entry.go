package schema

import (
	"time"

	"github.com/roboteam/door-tracker/internal/domain"
)

// LogEntry represents the log_entries table - one immutable attendance event.
// Rows are append-only; the core never updates or deletes them. The sequence
// ID breaks ordering ties when two entries share a timestamp.
type LogEntry struct {
	// ID is an auto-incrementing sequence number; insertion-order tiebreaker
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// Type is the event type (IN, OUT, REG, WTF)
	Type domain.EventType `gorm:"column:type;not null;type:varchar(3);index"`
	// TagID references the scanned tag; nil for audit entries that could not be attributed
	TagID *int64 `gorm:"column:tag_id;index:idx_log_entries_tag_time,priority:1"`
	// ScannerID references the device that produced the scan; nil for self-service entries
	ScannerID *string `gorm:"column:scanner_id;type:varchar(36)"`
	// Time is the event timestamp, UTC, set at creation
	Time time.Time `gorm:"column:time;not null;default:now();type:timestamptz;index:idx_log_entries_tag_time,priority:2"`

	// Associations
	Tag     *Tag     `gorm:"foreignKey:TagID"`
	Scanner *Scanner `gorm:"foreignKey:ScannerID"`
}

// TableName specifies the table name for the LogEntry model
func (LogEntry) TableName() string {
	return "log_entries"
}

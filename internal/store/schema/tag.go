package schema

import (
	"time"

	"github.com/roboteam/door-tracker/internal/domain"
)

// Tag represents the tags table - one physical credential binding.
//
// Two invariants hold for every row: DisplayName is set iff OwnerID is set,
// and at least one of RawUID/OwnerID is set. The lifecycle state (claimed,
// pending_registration, unauthorized) is derived from those fields and never
// stored.
type Tag struct {
	// ID is the stable handle used by numeric scan payloads and the self-service API
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// RawUID is the physical card UID as raw bytes; nil until the card is first scanned.
	// The unique index makes concurrent first scans of one card converge on a single row.
	RawUID []byte `gorm:"column:raw_uid;uniqueIndex;type:bytea"`
	// DisplayName names the tag for its owner ("Alice's keyfob"); nil while unauthorized
	DisplayName *string `gorm:"column:display_name;type:text"`
	// OwnerID references the owning identity; nil while unauthorized
	OwnerID *int64 `gorm:"column:owner_id;index"`
	// CreatedAt is the timestamp when this tag record appeared
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`

	// Associations
	Owner *Identity `gorm:"foreignKey:OwnerID"`
}

// TableName specifies the table name for the Tag model
func (Tag) TableName() string {
	return "tags"
}

// State derives the lifecycle state from the stored fields
func (t *Tag) State() (domain.TagState, error) {
	return domain.DeriveTagState(len(t.RawUID) > 0, t.OwnerID != nil, t.DisplayName != nil)
}

// OwnerDisplayName returns the owner's full name, or empty when the tag is
// unauthorized or the owner association is not loaded.
func (t *Tag) OwnerDisplayName() string {
	if t.Owner == nil {
		return ""
	}
	return t.Owner.FullName
}

// Label renders the tag for history rows: "Alice's keyfob (DEADBEEF)"
func (t *Tag) Label() string {
	name := ""
	if t.DisplayName != nil {
		name = *t.DisplayName
	}
	uid := domain.FormatUID(t.RawUID)
	switch {
	case name != "" && uid != "":
		return name + " (" + uid + ")"
	case name != "":
		return name
	default:
		return uid
	}
}

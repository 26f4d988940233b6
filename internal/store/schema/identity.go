package schema

import "time"

// Identity represents the identities table - the external person record that
// owns tags. The attendance core reads display fields and never mutates it.
type Identity struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// Username is the unique login name managed by the identity provider
	Username string `gorm:"column:username;not null;uniqueIndex;type:text"`
	// FullName is the display name shown on scan responses and logs
	FullName string `gorm:"column:full_name;not null;type:text"`
	// CreatedAt is the timestamp when this person was enrolled
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`

	// Associations
	Tags []Tag `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the Identity model
func (Identity) TableName() string {
	return "identities"
}

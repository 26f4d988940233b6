package schema

import "time"

// RegistrationToken represents the registration_tokens table - time-boxed
// sign-up link tokens issued by administrators. Outside the attendance
// engine; kept here because the sign-up flow shares the store.
type RegistrationToken struct {
	// Token is the opaque token value (UUID)
	Token string `gorm:"column:token;primaryKey;type:varchar(36)"`
	// CreatedBy records which administrator issued the link
	CreatedBy string `gorm:"column:created_by;not null;type:text"`
	// ExpiresAt bounds the token's validity window
	ExpiresAt time.Time `gorm:"column:expires_at;not null;type:timestamptz"`
	// UsedAt is set when the token is redeemed; a token redeems at most once
	UsedAt *time.Time `gorm:"column:used_at;type:timestamptz"`
	// CreatedAt is the timestamp when the token was issued
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the RegistrationToken model
func (RegistrationToken) TableName() string {
	return "registration_tokens"
}

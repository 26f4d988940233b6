package schema

import "time"

// DailyStatistic represents the daily_statistics table - one upserted
// aggregate row per (identity, calendar day). Rows are written exclusively
// through the statistics aggregator's upsert path.
type DailyStatistic struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// IdentityID references the person the row aggregates
	IdentityID int64 `gorm:"column:identity_id;not null;uniqueIndex:idx_daily_statistics_identity_day,priority:1"`
	// Day is the local calendar day the row covers, stored as a date
	Day time.Time `gorm:"column:day;not null;type:date;uniqueIndex:idx_daily_statistics_identity_day,priority:2"`
	// MinutesDay is the whole minutes worked on Day
	MinutesDay int64 `gorm:"column:minutes_day;not null;default:0"`
	// MinutesWeek is the sum of MinutesDay over the Monday-start week containing Day
	MinutesWeek int64 `gorm:"column:minutes_week;not null;default:0"`
	// MinutesMonth is the sum of MinutesDay over the calendar month containing Day
	MinutesMonth int64 `gorm:"column:minutes_month;not null;default:0"`
	// AverageWeek is the mean of MinutesWeek across all of the identity's rows
	AverageWeek float64 `gorm:"column:average_week;not null;default:0"`
	// TotalMinutes is the lifetime sum of MinutesDay across all of the identity's rows
	TotalMinutes int64 `gorm:"column:total_minutes;not null;default:0"`
	// CreatedAt is the timestamp when the row was first upserted
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp of the last upsert
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`

	// Associations
	Identity *Identity `gorm:"foreignKey:IdentityID"`
}

// TableName specifies the table name for the DailyStatistic model
func (DailyStatistic) TableName() string {
	return "daily_statistics"
}

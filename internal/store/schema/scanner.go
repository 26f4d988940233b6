package schema

import "time"

// Scanner represents the scanners table - a physical door scanner device.
// Reference data only: rows are created by administration, never by the core.
type Scanner struct {
	// DeviceID is the stable device identifier the firmware sends with every scan (UUID)
	DeviceID string `gorm:"column:device_id;primaryKey;type:varchar(36)"`
	// Name is the human-readable device label ("front door")
	Name string `gorm:"column:name;not null;type:text"`
	// CreatedAt is the timestamp when the device was registered
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the Scanner model
func (Scanner) TableName() string {
	return "scanners"
}

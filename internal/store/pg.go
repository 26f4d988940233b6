package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/roboteam/door-tracker/internal/domain"
	"github.com/roboteam/door-tracker/internal/store/schema"
)

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// ConfigureConnectionPool configures the connection pool settings for a GORM
// database connection. Zero values fall back to reasonable defaults:
//   - MaxOpenConns: 20
//   - MaxIdleConns: 5
//   - ConnMaxLifetime: 5 minutes
//   - ConnMaxIdleTime: 10 minutes
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if maxOpenConns == 0 {
		maxOpenConns = 20
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}
	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// GetIdentityByID retrieves an identity by its primary key
func (s *pgStore) GetIdentityByID(ctx context.Context, identityID int64) (*schema.Identity, error) {
	var identity schema.Identity
	err := s.db.WithContext(ctx).Where("id = ?", identityID).First(&identity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get identity: %w", err)
	}
	return &identity, nil
}

// GetScannerByDeviceID retrieves a scanner by its stable device id
func (s *pgStore) GetScannerByDeviceID(ctx context.Context, deviceID string) (*schema.Scanner, error) {
	var scanner schema.Scanner
	err := s.db.WithContext(ctx).Where("device_id = ?", deviceID).First(&scanner).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get scanner: %w", err)
	}
	return &scanner, nil
}

// GetTagByID retrieves a tag (with owner) by its stable handle
func (s *pgStore) GetTagByID(ctx context.Context, tagID int64) (*schema.Tag, error) {
	var tag schema.Tag
	err := s.db.WithContext(ctx).Preload("Owner").Where("id = ?", tagID).First(&tag).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get tag: %w", err)
	}
	return &tag, nil
}

// GetTagByDisplayName retrieves a tag by case-insensitive exact name match,
// as given first, then with all non-alphanumerics stripped from both sides
func (s *pgStore) GetTagByDisplayName(ctx context.Context, name string) (*schema.Tag, error) {
	var tag schema.Tag
	err := s.db.WithContext(ctx).Preload("Owner").
		Where("display_name IS NOT NULL AND lower(display_name) = lower(?)", name).
		Order("id").
		First(&tag).Error
	if err == nil {
		return &tag, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to get tag by name: %w", err)
	}

	stripped := domain.NormalizeName(name)
	if stripped == "" {
		return nil, nil
	}
	err = s.db.WithContext(ctx).Preload("Owner").
		Where("display_name IS NOT NULL AND regexp_replace(lower(display_name), '[^a-z0-9]', '', 'g') = ?", stripped).
		Order("id").
		First(&tag).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get tag by stripped name: %w", err)
	}
	return &tag, nil
}

// GetTagByUID retrieves a tag by its raw card UID
func (s *pgStore) GetTagByUID(ctx context.Context, uid []byte) (*schema.Tag, error) {
	var tag schema.Tag
	err := s.db.WithContext(ctx).Preload("Owner").Where("raw_uid = ?", uid).First(&tag).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get tag by uid: %w", err)
	}
	return &tag, nil
}

// GetOldestPendingTag retrieves the oldest tag with an owner but no card UID
func (s *pgStore) GetOldestPendingTag(ctx context.Context) (*schema.Tag, error) {
	var tag schema.Tag
	err := s.db.WithContext(ctx).Preload("Owner").
		Where("raw_uid IS NULL AND owner_id IS NOT NULL").
		Order("id").
		First(&tag).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get pending tag: %w", err)
	}
	return &tag, nil
}

// CreateUnauthorizedTag creates a tag for an unknown card. When a concurrent
// scan already created the row, the conflict is ignored and the winner is
// fetched, so one physical card never yields two unauthorized tags.
func (s *pgStore) CreateUnauthorizedTag(ctx context.Context, uid []byte) (*schema.Tag, error) {
	tag := schema.Tag{RawUID: uid}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "raw_uid"}},
		DoNothing: true,
	}).Create(&tag).Error
	if err != nil {
		return nil, fmt.Errorf("failed to create unauthorized tag: %w", err)
	}

	// On conflict the insert assigns no ID; fetch whichever row won.
	if tag.ID == 0 {
		return s.GetTagByUID(ctx, uid)
	}
	return &tag, nil
}

// CreatePendingTag enrolls a tag for an identity before its card is scanned
func (s *pgStore) CreatePendingTag(ctx context.Context, ownerID int64, displayName string) (*schema.Tag, error) {
	tag := schema.Tag{
		OwnerID:     &ownerID,
		DisplayName: &displayName,
	}
	if err := s.db.WithContext(ctx).Create(&tag).Error; err != nil {
		return nil, fmt.Errorf("failed to create pending tag: %w", err)
	}
	return s.GetTagByID(ctx, tag.ID)
}

// OwnerHasClaimedTag reports whether the identity already holds a claimed tag
func (s *pgStore) OwnerHasClaimedTag(ctx context.Context, ownerID int64) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&schema.Tag{}).
		Where("owner_id = ? AND raw_uid IS NOT NULL", ownerID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to count claimed tags: %w", err)
	}
	return count > 0, nil
}

// lastToggleEntry fetches the most recent IN/OUT entry for a tag within tx.
// Ties on time break by sequence number, so sub-second collisions keep
// insertion order.
func lastToggleEntry(tx *gorm.DB, tagID int64) (*schema.LogEntry, error) {
	var entry schema.LogEntry
	err := tx.
		Where("tag_id = ? AND type IN ?", tagID, []domain.EventType{domain.EventCheckIn, domain.EventCheckOut}).
		Order("time DESC, id DESC").
		First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get last toggle entry: %w", err)
	}
	return &entry, nil
}

// AppendToggleEntry derives and appends the next check-in/check-out entry for
// a tag. The tag row is locked (SELECT ... FOR UPDATE) before the last entry
// is read, so two racing scans serialize and never write two identical
// consecutive types.
func (s *pgStore) AppendToggleEntry(ctx context.Context, tagID int64, scannerID *string, at time.Time) (*schema.LogEntry, error) {
	var entry *schema.LogEntry
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var tag schema.Tag
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", tagID).
			First(&tag).Error; err != nil {
			return fmt.Errorf("failed to lock tag: %w", err)
		}

		last, err := lastToggleEntry(tx, tagID)
		if err != nil {
			return err
		}

		var lastType *domain.EventType
		if last != nil {
			lastType = &last.Type
		}

		entry = &schema.LogEntry{
			Type:      domain.NextEventType(lastType),
			TagID:     &tagID,
			ScannerID: scannerID,
			Time:      at.UTC(),
		}
		if err := tx.Create(entry).Error; err != nil {
			return fmt.Errorf("failed to append toggle entry: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// BindPendingTag binds a card UID to a pending-registration tag and appends
// the registration entry atomically. Fails with domain.ErrAlreadyBound when
// the tag already carries a UID (integrity fault, unreachable in correct
// operation).
func (s *pgStore) BindPendingTag(ctx context.Context, tagID int64, uid []byte, scannerID *string, at time.Time) (*schema.LogEntry, error) {
	var entry *schema.LogEntry
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var tag schema.Tag
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", tagID).
			First(&tag).Error; err != nil {
			return fmt.Errorf("failed to lock tag: %w", err)
		}

		if len(tag.RawUID) > 0 {
			return domain.ErrAlreadyBound
		}
		if tag.OwnerID == nil {
			return domain.ErrInvalidTagState
		}

		if err := tx.Model(&schema.Tag{}).
			Where("id = ?", tagID).
			Update("raw_uid", uid).Error; err != nil {
			return fmt.Errorf("failed to bind tag uid: %w", err)
		}

		entry = &schema.LogEntry{
			Type:      domain.EventRegistration,
			TagID:     &tagID,
			ScannerID: scannerID,
			Time:      at.UTC(),
		}
		if err := tx.Create(entry).Error; err != nil {
			return fmt.Errorf("failed to append registration entry: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// AppendAuditEntry records a scan that produced no toggle
func (s *pgStore) AppendAuditEntry(ctx context.Context, tagID *int64, scannerID *string, at time.Time) (*schema.LogEntry, error) {
	entry := schema.LogEntry{
		Type:      domain.EventUnknown,
		TagID:     tagID,
		ScannerID: scannerID,
		Time:      at.UTC(),
	}
	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return nil, fmt.Errorf("failed to append audit entry: %w", err)
	}
	return &entry, nil
}

// GetLastEntryForIdentity retrieves the identity's most recent toggle entry
// across all of its tags
func (s *pgStore) GetLastEntryForIdentity(ctx context.Context, identityID int64) (*schema.LogEntry, error) {
	var entry schema.LogEntry
	err := s.db.WithContext(ctx).Preload("Tag").
		Joins("JOIN tags ON tags.id = log_entries.tag_id").
		Where("tags.owner_id = ? AND log_entries.type IN ?", identityID,
			[]domain.EventType{domain.EventCheckIn, domain.EventCheckOut}).
		Order("log_entries.time DESC, log_entries.id DESC").
		First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get last entry: %w", err)
	}
	return &entry, nil
}

// ListEntriesForIdentity retrieves all of the identity's entries, newest first
func (s *pgStore) ListEntriesForIdentity(ctx context.Context, identityID int64) ([]*schema.LogEntry, error) {
	var entries []*schema.LogEntry
	err := s.db.WithContext(ctx).Preload("Tag").Preload("Tag.Owner").
		Joins("JOIN tags ON tags.id = log_entries.tag_id").
		Where("tags.owner_id = ?", identityID).
		Order("log_entries.time DESC, log_entries.id DESC").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	return entries, nil
}

// ListEntriesForIdentityBetween retrieves the identity's entries with time in
// [from, to), oldest first
func (s *pgStore) ListEntriesForIdentityBetween(ctx context.Context, identityID int64, from, to time.Time) ([]*schema.LogEntry, error) {
	var entries []*schema.LogEntry
	err := s.db.WithContext(ctx).
		Joins("JOIN tags ON tags.id = log_entries.tag_id").
		Where("tags.owner_id = ? AND log_entries.time >= ? AND log_entries.time < ?",
			identityID, from.UTC(), to.UTC()).
		Order("log_entries.time ASC, log_entries.id ASC").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list entries between: %w", err)
	}
	return entries, nil
}

// UpsertDailyStatistic writes the (identity, day) aggregate row in a single
// transaction. Week, month, average and lifetime figures are re-summed from
// existing DailyStatistic rows, not from the ledger, so historical rows are
// trusted as already correct. Calling it twice on one day updates the same
// row; the second call's values win.
func (s *pgStore) UpsertDailyStatistic(ctx context.Context, input UpsertDailyStatisticInput) (*schema.DailyStatistic, bool, error) {
	var row schema.DailyStatistic
	created := false

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&schema.DailyStatistic{}).
			Where("identity_id = ? AND day = ?", input.IdentityID, input.Day).
			Count(&existing).Error; err != nil {
			return fmt.Errorf("failed to check existing statistic: %w", err)
		}
		created = existing == 0

		now := time.Now().UTC()
		row = schema.DailyStatistic{
			IdentityID: input.IdentityID,
			Day:        input.Day,
			MinutesDay: input.MinutesDay,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "identity_id"}, {Name: "day"}},
			DoUpdates: clause.AssignmentColumns([]string{"minutes_day", "updated_at"}),
		}).Create(&row).Error; err != nil {
			return fmt.Errorf("failed to upsert daily statistic: %w", err)
		}

		var minutesWeek, minutesMonth int64
		if err := tx.Model(&schema.DailyStatistic{}).
			Where("identity_id = ? AND day >= ? AND day <= ?", input.IdentityID, input.WeekStart, input.Day).
			Select("COALESCE(SUM(minutes_day), 0)").
			Scan(&minutesWeek).Error; err != nil {
			return fmt.Errorf("failed to sum week minutes: %w", err)
		}
		if err := tx.Model(&schema.DailyStatistic{}).
			Where("identity_id = ? AND day >= ? AND day <= ?", input.IdentityID, input.MonthStart, input.Day).
			Select("COALESCE(SUM(minutes_day), 0)").
			Scan(&minutesMonth).Error; err != nil {
			return fmt.Errorf("failed to sum month minutes: %w", err)
		}

		if err := tx.Model(&schema.DailyStatistic{}).
			Where("identity_id = ? AND day = ?", input.IdentityID, input.Day).
			Updates(map[string]any{
				"minutes_week":  minutesWeek,
				"minutes_month": minutesMonth,
			}).Error; err != nil {
			return fmt.Errorf("failed to update week/month minutes: %w", err)
		}

		var agg struct {
			AverageWeek  float64
			TotalMinutes int64
		}
		if err := tx.Model(&schema.DailyStatistic{}).
			Where("identity_id = ?", input.IdentityID).
			Select("COALESCE(AVG(minutes_week), 0) AS average_week, COALESCE(SUM(minutes_day), 0) AS total_minutes").
			Scan(&agg).Error; err != nil {
			return fmt.Errorf("failed to aggregate statistics: %w", err)
		}

		if err := tx.Model(&schema.DailyStatistic{}).
			Where("identity_id = ? AND day = ?", input.IdentityID, input.Day).
			Updates(map[string]any{
				"average_week":  agg.AverageWeek,
				"total_minutes": agg.TotalMinutes,
			}).Error; err != nil {
			return fmt.Errorf("failed to update aggregate fields: %w", err)
		}

		if err := tx.
			Where("identity_id = ? AND day = ?", input.IdentityID, input.Day).
			First(&row).Error; err != nil {
			return fmt.Errorf("failed to reload daily statistic: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return &row, created, nil
}

// CreateRegistrationToken persists a time-boxed sign-up token
func (s *pgStore) CreateRegistrationToken(ctx context.Context, token, createdBy string, expiresAt time.Time) error {
	if _, err := uuid.Parse(token); err != nil {
		return fmt.Errorf("registration token must be a uuid: %w", err)
	}
	row := schema.RegistrationToken{
		Token:     token,
		CreatedBy: createdBy,
		ExpiresAt: expiresAt.UTC(),
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to create registration token: %w", err)
	}
	return nil
}

// RedeemRegistrationToken marks a token used. The conditional update makes
// redemption race-safe: only one caller observes rows_affected = 1.
func (s *pgStore) RedeemRegistrationToken(ctx context.Context, token string, now time.Time) error {
	res := s.db.WithContext(ctx).Model(&schema.RegistrationToken{}).
		Where("token = ? AND used_at IS NULL AND expires_at > ?", token, now.UTC()).
		Update("used_at", now.UTC())
	if res.Error != nil {
		return fmt.Errorf("failed to redeem registration token: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrTokenInvalid
	}
	return nil
}

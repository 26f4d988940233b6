package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roboteam/door-tracker/internal/domain"
	"github.com/roboteam/door-tracker/internal/store/schema"
)

// =============================================================================
// Test Data Builders
// =============================================================================

// seedDB exposes the raw gorm handle for inserting reference data the store
// interface deliberately has no writers for (identities, scanners)
func seedDB(t *testing.T, s Store) *pgStore {
	t.Helper()
	pg, ok := s.(*pgStore)
	require.True(t, ok, "store tests require the postgres implementation")
	return pg
}

func seedIdentity(t *testing.T, s Store, username, fullName string) *schema.Identity {
	t.Helper()
	identity := &schema.Identity{Username: username, FullName: fullName}
	require.NoError(t, seedDB(t, s).db.Create(identity).Error)
	return identity
}

func seedScanner(t *testing.T, s Store, name string) *schema.Scanner {
	t.Helper()
	scanner := &schema.Scanner{DeviceID: uuid.NewString(), Name: name}
	require.NoError(t, seedDB(t, s).db.Create(scanner).Error)
	return scanner
}

// =============================================================================
// Store Tests
// =============================================================================

// RunStoreTests runs the full store test suite against an implementation
func RunStoreTests(t *testing.T, initDB func(t *testing.T) Store, cleanupDB func(t *testing.T)) {
	t.Run("GetScannerByDeviceID", func(t *testing.T) {
		defer cleanupDB(t)
		s := initDB(t)
		ctx := context.Background()

		scanner := seedScanner(t, s, "front door")

		got, err := s.GetScannerByDeviceID(ctx, scanner.DeviceID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "front door", got.Name)

		// Unknown devices return nil, not an error.
		got, err = s.GetScannerByDeviceID(ctx, uuid.NewString())
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("GetTagByID preloads owner", func(t *testing.T) {
		defer cleanupDB(t)
		s := initDB(t)
		ctx := context.Background()

		identity := seedIdentity(t, s, "alice", "Alice Example")
		tag, err := s.CreatePendingTag(ctx, identity.ID, "Alice's keyfob")
		require.NoError(t, err)

		got, err := s.GetTagByID(ctx, tag.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		require.NotNil(t, got.Owner)
		assert.Equal(t, "Alice Example", got.Owner.FullName)

		got, err = s.GetTagByID(ctx, 999999)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("GetTagByDisplayName", func(t *testing.T) {
		defer cleanupDB(t)
		s := initDB(t)
		ctx := context.Background()

		identity := seedIdentity(t, s, "jones", "Dr. Jones")
		tag, err := s.CreatePendingTag(ctx, identity.ID, "Dr. Jones-2")
		require.NoError(t, err)

		// Case-insensitive exact match.
		got, err := s.GetTagByDisplayName(ctx, "dr. jones-2")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, tag.ID, got.ID)

		// Stripped match: non-alphanumerics removed on both sides.
		got, err = s.GetTagByDisplayName(ctx, "DrJones2")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, tag.ID, got.ID)

		// Punctuation-only payloads never match anything.
		got, err = s.GetTagByDisplayName(ctx, "...")
		require.NoError(t, err)
		assert.Nil(t, got)

		got, err = s.GetTagByDisplayName(ctx, "nobody")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("GetOldestPendingTag", func(t *testing.T) {
		defer cleanupDB(t)
		s := initDB(t)
		ctx := context.Background()

		got, err := s.GetOldestPendingTag(ctx)
		require.NoError(t, err)
		assert.Nil(t, got)

		alice := seedIdentity(t, s, "alice", "Alice Example")
		bob := seedIdentity(t, s, "bob", "Bob Example")
		first, err := s.CreatePendingTag(ctx, alice.ID, "Alice's keyfob")
		require.NoError(t, err)
		_, err = s.CreatePendingTag(ctx, bob.ID, "Bob's card")
		require.NoError(t, err)

		// An unauthorized tag has no owner and never counts as pending.
		_, err = s.CreateUnauthorizedTag(ctx, []byte{0x01, 0x02})
		require.NoError(t, err)

		got, err = s.GetOldestPendingTag(ctx)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, first.ID, got.ID)
	})

	t.Run("CreateUnauthorizedTag converges on one row", func(t *testing.T) {
		defer cleanupDB(t)
		s := initDB(t)
		ctx := context.Background()

		uid := []byte{0xCA, 0xFE, 0xBA, 0xBE}
		first, err := s.CreateUnauthorizedTag(ctx, uid)
		require.NoError(t, err)
		require.NotNil(t, first)

		second, err := s.CreateUnauthorizedTag(ctx, uid)
		require.NoError(t, err)
		require.NotNil(t, second)
		assert.Equal(t, first.ID, second.ID)

		state, err := first.State()
		require.NoError(t, err)
		assert.Equal(t, domain.TagUnauthorized, state)
	})

	t.Run("OwnerHasClaimedTag", func(t *testing.T) {
		defer cleanupDB(t)
		s := initDB(t)
		ctx := context.Background()

		identity := seedIdentity(t, s, "alice", "Alice Example")
		tag, err := s.CreatePendingTag(ctx, identity.ID, "Alice's keyfob")
		require.NoError(t, err)

		claimed, err := s.OwnerHasClaimedTag(ctx, identity.ID)
		require.NoError(t, err)
		assert.False(t, claimed)

		_, err = s.BindPendingTag(ctx, tag.ID, []byte{0xDE, 0xAD}, nil, time.Now())
		require.NoError(t, err)

		claimed, err = s.OwnerHasClaimedTag(ctx, identity.ID)
		require.NoError(t, err)
		assert.True(t, claimed)
	})

	t.Run("AppendToggleEntry alternates", func(t *testing.T) {
		defer cleanupDB(t)
		s := initDB(t)
		ctx := context.Background()

		identity := seedIdentity(t, s, "alice", "Alice Example")
		tag, err := s.CreatePendingTag(ctx, identity.ID, "Alice's keyfob")
		require.NoError(t, err)
		_, err = s.BindPendingTag(ctx, tag.ID, []byte{0xDE, 0xAD}, nil, time.Now())
		require.NoError(t, err)

		// The registration entry does not participate in the alternation:
		// the first toggle is still a check-in.
		want := []domain.EventType{
			domain.EventCheckIn,
			domain.EventCheckOut,
			domain.EventCheckIn,
			domain.EventCheckOut,
		}
		at := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
		for i, w := range want {
			entry, err := s.AppendToggleEntry(ctx, tag.ID, nil, at.Add(time.Duration(i)*time.Minute))
			require.NoError(t, err)
			assert.Equal(t, w, entry.Type)
		}
	})

	t.Run("AppendToggleEntry breaks same-timestamp ties by sequence", func(t *testing.T) {
		defer cleanupDB(t)
		s := initDB(t)
		ctx := context.Background()

		identity := seedIdentity(t, s, "alice", "Alice Example")
		tag, err := s.CreatePendingTag(ctx, identity.ID, "Alice's keyfob")
		require.NoError(t, err)
		_, err = s.BindPendingTag(ctx, tag.ID, []byte{0xDE, 0xAD}, nil, time.Now())
		require.NoError(t, err)

		// Two entries with the identical timestamp still alternate.
		at := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
		first, err := s.AppendToggleEntry(ctx, tag.ID, nil, at)
		require.NoError(t, err)
		second, err := s.AppendToggleEntry(ctx, tag.ID, nil, at)
		require.NoError(t, err)
		assert.Equal(t, domain.EventCheckIn, first.Type)
		assert.Equal(t, domain.EventCheckOut, second.Type)
	})

	t.Run("BindPendingTag", func(t *testing.T) {
		defer cleanupDB(t)
		s := initDB(t)
		ctx := context.Background()

		identity := seedIdentity(t, s, "alice", "Alice Example")
		tag, err := s.CreatePendingTag(ctx, identity.ID, "Alice's keyfob")
		require.NoError(t, err)

		uid := []byte{0xDE, 0xAD, 0xBE, 0xEF}
		scanner := seedScanner(t, s, "front door")
		entry, err := s.BindPendingTag(ctx, tag.ID, uid, &scanner.DeviceID, time.Now())
		require.NoError(t, err)
		assert.Equal(t, domain.EventRegistration, entry.Type)

		bound, err := s.GetTagByUID(ctx, uid)
		require.NoError(t, err)
		require.NotNil(t, bound)
		assert.Equal(t, tag.ID, bound.ID)

		// A bound tag never rebinds.
		_, err = s.BindPendingTag(ctx, tag.ID, []byte{0x01}, nil, time.Now())
		assert.ErrorIs(t, err, domain.ErrAlreadyBound)
	})

	t.Run("BindPendingTag rejects ownerless tags", func(t *testing.T) {
		defer cleanupDB(t)
		s := initDB(t)
		ctx := context.Background()

		// An unauthorized tag with no owner cannot bind a second UID; clear
		// the UID directly to simulate the corrupt row.
		tag, err := s.CreateUnauthorizedTag(ctx, []byte{0xAA})
		require.NoError(t, err)
		require.NoError(t, seedDB(t, s).db.Model(&schema.Tag{}).
			Where("id = ?", tag.ID).
			Update("raw_uid", nil).Error)

		_, err = s.BindPendingTag(ctx, tag.ID, []byte{0xBB}, nil, time.Now())
		assert.ErrorIs(t, err, domain.ErrInvalidTagState)
	})

	t.Run("GetLastEntryForIdentity skips non-toggles", func(t *testing.T) {
		defer cleanupDB(t)
		s := initDB(t)
		ctx := context.Background()

		identity := seedIdentity(t, s, "alice", "Alice Example")
		tag, err := s.CreatePendingTag(ctx, identity.ID, "Alice's keyfob")
		require.NoError(t, err)

		got, err := s.GetLastEntryForIdentity(ctx, identity.ID)
		require.NoError(t, err)
		assert.Nil(t, got)

		at := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
		_, err = s.BindPendingTag(ctx, tag.ID, []byte{0xDE, 0xAD}, nil, at)
		require.NoError(t, err)
		checkin, err := s.AppendToggleEntry(ctx, tag.ID, nil, at.Add(time.Minute))
		require.NoError(t, err)

		// A later audit entry does not displace the toggle.
		_, err = s.AppendAuditEntry(ctx, &tag.ID, nil, at.Add(2*time.Minute))
		require.NoError(t, err)

		got, err = s.GetLastEntryForIdentity(ctx, identity.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, checkin.ID, got.ID)
		assert.Equal(t, domain.EventCheckIn, got.Type)
	})

	t.Run("ListEntriesForIdentity newest first", func(t *testing.T) {
		defer cleanupDB(t)
		s := initDB(t)
		ctx := context.Background()

		alice := seedIdentity(t, s, "alice", "Alice Example")
		bob := seedIdentity(t, s, "bob", "Bob Example")
		aliceTag, err := s.CreatePendingTag(ctx, alice.ID, "Alice's keyfob")
		require.NoError(t, err)
		bobTag, err := s.CreatePendingTag(ctx, bob.ID, "Bob's card")
		require.NoError(t, err)

		at := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
		_, err = s.BindPendingTag(ctx, aliceTag.ID, []byte{0xDE, 0xAD}, nil, at)
		require.NoError(t, err)
		_, err = s.AppendToggleEntry(ctx, aliceTag.ID, nil, at.Add(time.Minute))
		require.NoError(t, err)
		_, err = s.BindPendingTag(ctx, bobTag.ID, []byte{0xBE, 0xEF}, nil, at)
		require.NoError(t, err)

		entries, err := s.ListEntriesForIdentity(ctx, alice.ID)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, domain.EventCheckIn, entries[0].Type)
		assert.Equal(t, domain.EventRegistration, entries[1].Type)
		require.NotNil(t, entries[0].Tag)
		assert.Equal(t, aliceTag.ID, entries[0].Tag.ID)
	})

	t.Run("ListEntriesForIdentityBetween is half-open ascending", func(t *testing.T) {
		defer cleanupDB(t)
		s := initDB(t)
		ctx := context.Background()

		identity := seedIdentity(t, s, "alice", "Alice Example")
		tag, err := s.CreatePendingTag(ctx, identity.ID, "Alice's keyfob")
		require.NoError(t, err)
		dayStart := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
		dayEnd := dayStart.AddDate(0, 0, 1)

		_, err = s.BindPendingTag(ctx, tag.ID, []byte{0xDE, 0xAD}, nil, dayStart.Add(-time.Hour))
		require.NoError(t, err)
		_, err = s.AppendToggleEntry(ctx, tag.ID, nil, dayStart.Add(9*time.Hour))
		require.NoError(t, err)
		_, err = s.AppendToggleEntry(ctx, tag.ID, nil, dayStart.Add(17*time.Hour))
		require.NoError(t, err)
		// Exactly at the upper bound: excluded.
		_, err = s.AppendToggleEntry(ctx, tag.ID, nil, dayEnd)
		require.NoError(t, err)

		entries, err := s.ListEntriesForIdentityBetween(ctx, identity.ID, dayStart, dayEnd)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, domain.EventCheckIn, entries[0].Type)
		assert.Equal(t, domain.EventCheckOut, entries[1].Type)
		assert.True(t, entries[0].Time.Before(entries[1].Time))
	})

	t.Run("UpsertDailyStatistic", func(t *testing.T) {
		defer cleanupDB(t)
		s := initDB(t)
		ctx := context.Background()

		identity := seedIdentity(t, s, "alice", "Alice Example")
		monday := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
		wednesday := monday.AddDate(0, 0, 2)
		monthStart := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

		// Monday first.
		row, created, err := s.UpsertDailyStatistic(ctx, UpsertDailyStatisticInput{
			IdentityID: identity.ID,
			Day:        monday,
			WeekStart:  monday,
			MonthStart: monthStart,
			MinutesDay: 100,
		})
		require.NoError(t, err)
		assert.True(t, created)
		assert.Equal(t, int64(100), row.MinutesDay)
		assert.Equal(t, int64(100), row.MinutesWeek)
		assert.Equal(t, int64(100), row.TotalMinutes)

		// Wednesday sums the week so far.
		row, created, err = s.UpsertDailyStatistic(ctx, UpsertDailyStatisticInput{
			IdentityID: identity.ID,
			Day:        wednesday,
			WeekStart:  monday,
			MonthStart: monthStart,
			MinutesDay: 60,
		})
		require.NoError(t, err)
		assert.True(t, created)
		assert.Equal(t, int64(60), row.MinutesDay)
		assert.Equal(t, int64(160), row.MinutesWeek)
		assert.Equal(t, int64(160), row.MinutesMonth)
		assert.Equal(t, int64(160), row.TotalMinutes)

		// Re-running the same day updates in place; the new value wins.
		row, created, err = s.UpsertDailyStatistic(ctx, UpsertDailyStatisticInput{
			IdentityID: identity.ID,
			Day:        wednesday,
			WeekStart:  monday,
			MonthStart: monthStart,
			MinutesDay: 90,
		})
		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, int64(90), row.MinutesDay)
		assert.Equal(t, int64(190), row.MinutesWeek)
		assert.Equal(t, int64(190), row.TotalMinutes)

		var count int64
		require.NoError(t, seedDB(t, s).db.Model(&schema.DailyStatistic{}).
			Where("identity_id = ?", identity.ID).
			Count(&count).Error)
		assert.Equal(t, int64(2), count)
	})

	t.Run("RegistrationToken lifecycle", func(t *testing.T) {
		defer cleanupDB(t)
		s := initDB(t)
		ctx := context.Background()

		now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
		token := uuid.NewString()
		require.NoError(t, s.CreateRegistrationToken(ctx, token, "admin", now.Add(time.Hour)))

		// Redeems exactly once.
		require.NoError(t, s.RedeemRegistrationToken(ctx, token, now))
		err := s.RedeemRegistrationToken(ctx, token, now)
		assert.ErrorIs(t, err, domain.ErrTokenInvalid)

		// Expired tokens fail.
		expired := uuid.NewString()
		require.NoError(t, s.CreateRegistrationToken(ctx, expired, "admin", now.Add(-time.Hour)))
		err = s.RedeemRegistrationToken(ctx, expired, now)
		assert.ErrorIs(t, err, domain.ErrTokenInvalid)

		// Unknown tokens fail the same way.
		err = s.RedeemRegistrationToken(ctx, uuid.NewString(), now)
		assert.ErrorIs(t, err, domain.ErrTokenInvalid)

		// Non-uuid tokens are rejected at creation.
		err = s.CreateRegistrationToken(ctx, "not-a-uuid", "admin", now.Add(time.Hour))
		assert.Error(t, err)
	})
}

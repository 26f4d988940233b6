package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/roboteam/door-tracker/internal/domain"
	"github.com/roboteam/door-tracker/internal/store"
	"github.com/roboteam/door-tracker/internal/store/schema"
)

// MinutesWorkedOn computes whole minutes worked on the calendar day
// containing t, in the configured local timezone. While a check-in is still
// open the figure includes time up to now, so today's value is a live,
// monotonically non-decreasing estimate.
func (s *Service) MinutesWorkedOn(ctx context.Context, identityID int64, t time.Time) (int64, error) {
	local := t.In(s.loc)
	dayStart := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, s.loc)
	dayEnd := dayStart.AddDate(0, 0, 1)

	entries, err := s.store.ListEntriesForIdentityBetween(ctx, identityID, dayStart, dayEnd)
	if err != nil {
		return 0, fmt.Errorf("list day entries: %w", err)
	}

	return walkMinutes(entries, dayStart, s.clock.Now()), nil
}

// walkMinutes runs the interval walk over one day's entries, ordered
// ascending. Check-in opens an interval (a repeated check-in moves it: last
// check-in wins); check-out closes it and adds floor-minutes. A check-out
// that is the very first toggle of the day closes an interval that started
// before midnight, counted from the day's start. Registration and audit
// entries do not participate. An interval still open at the end accrues up
// to now.
func walkMinutes(entries []*schema.LogEntry, dayStart, now time.Time) int64 {
	var minutes int64
	var checkinAt *time.Time
	first := true

	for _, e := range entries {
		switch e.Type {
		case domain.EventCheckIn:
			t := e.Time
			checkinAt = &t
			first = false
		case domain.EventCheckOut:
			if checkinAt != nil {
				minutes += floorMinutes(e.Time.Sub(*checkinAt))
				checkinAt = nil
			} else if first {
				minutes += floorMinutes(e.Time.Sub(dayStart))
			}
			first = false
		}
	}

	if checkinAt != nil {
		minutes += floorMinutes(now.Sub(*checkinAt))
	}
	return minutes
}

func floorMinutes(d time.Duration) int64 {
	if d < 0 {
		return 0
	}
	return int64(d / time.Minute)
}

// SaveStatistics upserts today's statistics row for the identity and
// recomputes the rolling aggregates. Week and month figures are re-summed
// from existing DailyStatistic rows (Monday-start week, calendar month), not
// from the ledger. Idempotent within a day: the second call updates the same
// row.
func (s *Service) SaveStatistics(ctx context.Context, identityID int64) (*StatisticsResult, error) {
	now := s.clock.Now().In(s.loc)

	minutesDay, err := s.MinutesWorkedOn(ctx, identityID, now)
	if err != nil {
		return nil, err
	}

	day := dateOf(now)
	row, created, err := s.store.UpsertDailyStatistic(ctx, store.UpsertDailyStatisticInput{
		IdentityID: identityID,
		Day:        day,
		WeekStart:  weekStart(day),
		MonthStart: monthStart(day),
		MinutesDay: minutesDay,
	})
	if err != nil {
		return nil, fmt.Errorf("upsert daily statistic: %w", err)
	}

	return &StatisticsResult{
		MinutesDay:   row.MinutesDay,
		MinutesWeek:  row.MinutesWeek,
		MinutesMonth: row.MinutesMonth,
		AverageWeek:  row.AverageWeek,
		TotalMinutes: row.TotalMinutes,
		Date:         row.Day,
		Created:      created,
	}, nil
}

// dateOf truncates a local time to its calendar date, normalized to UTC
// midnight for the date-typed column.
func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// weekStart returns the Monday of the week containing day
func weekStart(day time.Time) time.Time {
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// monthStart returns the first day of the month containing day
func monthStart(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC)
}

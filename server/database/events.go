package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

func (d *Database) GetEvent(ctx context.Context, eventID int64) (*Event, error) {
	var event Event
	if err := d.db.GetContext(ctx, &event, "SELECT * FROM events WHERE id = $1", eventID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("event not found: %w", err)
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	return &event, nil
}

func (d *Database) GetEventCounts(ctx context.Context, eventID int64) (*EventCounts, error) {
	query := `
		SELECT
			COUNT(r.id) FILTER (WHERE r.status = 'registered') AS registrations,
			COUNT(a.id) FILTER (WHERE a.status = 'attended') AS attendees,
			COUNT(a.id) FILTER (WHERE a.status = 'checked_in') AS check_ins,
			COUNT(a.id) FILTER (WHERE a.status = 'no_show') AS no_shows
		FROM event_registrations r
		LEFT JOIN event_attendance a ON a.registration_id = r.id
		WHERE r.event_id = $1
	`

	var counts EventCounts
	if err := d.db.GetContext(ctx, &counts, query, eventID); err != nil {
		return nil, fmt.Errorf("failed to get event counts: %w", err)
	}

	return &counts, nil
}

func (d *Database) CountEvents(ctx context.Context) (int, error) {
	var count int
	if err := d.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM events"); err != nil {
		return 0, fmt.Errorf("failed to count events: %w", err)
	}

	return count, nil
}

func (d *Database) CountUpcomingEvents(ctx context.Context, now time.Time) (int, error) {
	var count int
	if err := d.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM events WHERE start_time > $1", now); err != nil {
		return 0, fmt.Errorf("failed to count upcoming events: %w", err)
	}

	return count, nil
}

func (d *Database) CountPastEvents(ctx context.Context, now time.Time) (int, error) {
	var count int
	if err := d.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM events WHERE start_time <= $1", now); err != nil {
		return 0, fmt.Errorf("failed to count past events: %w", err)
	}

	return count, nil
}

// CountEventsBetween counts events starting within [from, to).
func (d *Database) CountEventsBetween(ctx context.Context, from time.Time, to time.Time) (int, error) {
	var count int
	if err := d.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM events WHERE start_time >= $1 AND start_time < $2", from, to); err != nil {
		return 0, fmt.Errorf("failed to count events in range: %w", err)
	}

	return count, nil
}

func (d *Database) GetRecentEventsWithCounts(ctx context.Context, limit int) ([]EventWithCounts, error) {
	query := `
		SELECT e.*,
			COUNT(r.id) FILTER (WHERE r.status = 'registered') AS registrations,
			COUNT(a.id) FILTER (WHERE a.status = 'attended') AS attendees
		FROM events e
		LEFT JOIN event_registrations r ON r.event_id = e.id
		LEFT JOIN event_attendance a ON a.registration_id = r.id
		GROUP BY e.id
		ORDER BY e.start_time DESC, e.id DESC
		LIMIT $1
	`

	var events []EventWithCounts
	if err := d.db.SelectContext(ctx, &events, query, limit); err != nil {
		return nil, fmt.Errorf("failed to get recent events: %w", err)
	}

	return events, nil
}

// GetAverageAttendanceRate returns the mean of the per-event attendance
// rates across all events. Events without registrations contribute a rate
// of 0 instead of being excluded.
func (d *Database) GetAverageAttendanceRate(ctx context.Context) (float64, error) {
	query := `
		SELECT COALESCE(AVG(rate), 0)
		FROM (
			SELECT CASE
				WHEN COUNT(r.id) FILTER (WHERE r.status = 'registered') = 0 THEN 0
				ELSE COUNT(a.id) FILTER (WHERE a.status = 'attended')::float * 100
					/ COUNT(r.id) FILTER (WHERE r.status = 'registered')
			END AS rate
			FROM events e
			LEFT JOIN event_registrations r ON r.event_id = e.id
			LEFT JOIN event_attendance a ON a.registration_id = r.id
			GROUP BY e.id
		) rates
	`

	var rate float64
	if err := d.db.GetContext(ctx, &rate, query); err != nil {
		return 0, fmt.Errorf("failed to get average attendance rate: %w", err)
	}

	return rate, nil
}

// GetEventTrends returns one row per UTC calendar day in [from, to] that
// has at least one event, with the day's event and registration counts.
// Truncation happens in UTC regardless of the session time zone so the day
// buckets line up with the UTC windows the engine computes.
func (d *Database) GetEventTrends(ctx context.Context, from time.Time, to time.Time) ([]DayTrend, error) {
	query := `
		SELECT date_trunc('day', e.start_time AT TIME ZONE 'UTC') AS day,
			COUNT(DISTINCT e.id) AS events,
			COUNT(r.id) FILTER (WHERE r.status = 'registered') AS registrations
		FROM events e
		LEFT JOIN event_registrations r ON r.event_id = e.id
		WHERE e.start_time >= $1 AND e.start_time <= $2
		GROUP BY day
		ORDER BY day
	`

	var trends []DayTrend
	if err := d.db.SelectContext(ctx, &trends, query, from, to); err != nil {
		return nil, fmt.Errorf("failed to get event trends: %w", err)
	}

	return trends, nil
}

// GetDailyEventCounts returns one row per UTC calendar day in [from, to)
// that has at least one event.
func (d *Database) GetDailyEventCounts(ctx context.Context, from time.Time, to time.Time) ([]DayEventCount, error) {
	query := `
		SELECT date_trunc('day', start_time AT TIME ZONE 'UTC') AS day, COUNT(*) AS events
		FROM events
		WHERE start_time >= $1 AND start_time < $2
		GROUP BY day
		ORDER BY day
	`

	var days []DayEventCount
	if err := d.db.SelectContext(ctx, &days, query, from, to); err != nil {
		return nil, fmt.Errorf("failed to get daily event counts: %w", err)
	}

	return days, nil
}

func (d *Database) GetTopEvents(ctx context.Context, from time.Time, to time.Time, limit int) ([]TopEventRow, error) {
	query := `
		SELECT e.*,
			COALESCE(o.title, '') AS organization_title,
			COALESCE(o.image_url, '') AS organization_image_url,
			COUNT(r.id) FILTER (WHERE r.status = 'registered') AS registrations,
			COUNT(a.id) FILTER (WHERE a.status = 'attended') AS attendees
		FROM events e
		LEFT JOIN organizations o ON o.id = e.organization_id
		LEFT JOIN event_registrations r ON r.event_id = e.id
		LEFT JOIN event_attendance a ON a.registration_id = r.id
		WHERE e.start_time >= $1 AND e.start_time <= $2
		GROUP BY e.id, o.title, o.image_url
		ORDER BY registrations DESC, attendees DESC, e.start_time DESC, e.id
		LIMIT $3
	`

	var events []TopEventRow
	if err := d.db.SelectContext(ctx, &events, query, from, to, limit); err != nil {
		return nil, fmt.Errorf("failed to get top events in range: %w", err)
	}

	return events, nil
}

// GetLowRegistrationEvents returns events starting within [from, to] whose
// registered count is below threshold, soonest first.
func (d *Database) GetLowRegistrationEvents(ctx context.Context, from time.Time, to time.Time, threshold int) ([]UpcomingEventRow, error) {
	query := `
		SELECT e.*,
			COUNT(r.id) FILTER (WHERE r.status = 'registered') AS registrations
		FROM events e
		LEFT JOIN event_registrations r ON r.event_id = e.id
		WHERE e.start_time >= $1 AND e.start_time <= $2
		GROUP BY e.id
		HAVING COUNT(r.id) FILTER (WHERE r.status = 'registered') < $3
		ORDER BY e.start_time, e.id
	`

	var events []UpcomingEventRow
	if err := d.db.SelectContext(ctx, &events, query, from, to, threshold); err != nil {
		return nil, fmt.Errorf("failed to get low registration events: %w", err)
	}

	return events, nil
}

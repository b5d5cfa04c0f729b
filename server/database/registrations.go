package database

import (
	"context"
	"fmt"
	"time"
)

// CountRegistrations counts registrations with status 'registered';
// cancelled and waitlisted rows never count toward totals.
func (d *Database) CountRegistrations(ctx context.Context) (int, error) {
	var count int
	if err := d.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM event_registrations WHERE status = 'registered'"); err != nil {
		return 0, fmt.Errorf("failed to count registrations: %w", err)
	}

	return count, nil
}

// CountRegistrationsBetween counts 'registered' registrations created within
// [from, to).
func (d *Database) CountRegistrationsBetween(ctx context.Context, from time.Time, to time.Time) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM event_registrations
		WHERE status = 'registered' AND registered_at >= $1 AND registered_at < $2
	`

	var count int
	if err := d.db.GetContext(ctx, &count, query, from, to); err != nil {
		return 0, fmt.Errorf("failed to count registrations in range: %w", err)
	}

	return count, nil
}

func (d *Database) CountAttendees(ctx context.Context) (int, error) {
	var count int
	if err := d.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM event_attendance WHERE status = 'attended'"); err != nil {
		return 0, fmt.Errorf("failed to count attendees: %w", err)
	}

	return count, nil
}

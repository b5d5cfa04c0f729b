package database

import (
	"context"
	"fmt"
)

func (d *Database) CountUsers(ctx context.Context) (int, error) {
	var count int
	if err := d.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM users"); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}

	return count, nil
}

// GetEngagementCounts returns the distinct-user counts backing the
// engagement tiers: everyone, users with a live registration, users who
// attended at least once and users who attended more than once.
func (d *Database) GetEngagementCounts(ctx context.Context) (*EngagementCounts, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM users) AS total_users,
			(SELECT COUNT(DISTINCT user_id)
				FROM event_registrations
				WHERE status = 'registered') AS registered_users,
			(SELECT COUNT(DISTINCT r.user_id)
				FROM event_registrations r
				JOIN event_attendance a ON a.registration_id = r.id
				WHERE a.status = 'attended') AS attended_users,
			(SELECT COUNT(*) FROM (
				SELECT r.user_id
				FROM event_registrations r
				JOIN event_attendance a ON a.registration_id = r.id
				WHERE a.status = 'attended'
				GROUP BY r.user_id
				HAVING COUNT(a.id) > 1
			) repeat_attendees) AS repeat_users
	`

	var counts EngagementCounts
	if err := d.db.GetContext(ctx, &counts, query); err != nil {
		return nil, fmt.Errorf("failed to get engagement counts: %w", err)
	}

	return &counts, nil
}

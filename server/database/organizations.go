package database

import (
	"context"
	"fmt"
	"time"
)

func (d *Database) CountOrganizations(ctx context.Context) (int, error) {
	var count int
	if err := d.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM organizations"); err != nil {
		return 0, fmt.Errorf("failed to count organizations: %w", err)
	}

	return count, nil
}

// GetTopClubs ranks organizations with at least one event in [from, to] by
// event count, then registration count.
func (d *Database) GetTopClubs(ctx context.Context, from time.Time, to time.Time, limit int) ([]ClubStatsRow, error) {
	query := `
		SELECT o.id, o.title, o.image_url,
			COUNT(DISTINCT e.id) AS events,
			COUNT(r.id) FILTER (WHERE r.status = 'registered') AS registrations,
			COUNT(a.id) FILTER (WHERE a.status = 'attended') AS attendees
		FROM organizations o
		JOIN events e ON e.organization_id = o.id
		LEFT JOIN event_registrations r ON r.event_id = e.id
		LEFT JOIN event_attendance a ON a.registration_id = r.id
		WHERE e.start_time >= $1 AND e.start_time <= $2
		GROUP BY o.id, o.title, o.image_url
		ORDER BY events DESC, registrations DESC, o.title, o.id
		LIMIT $3
	`

	var clubs []ClubStatsRow
	if err := d.db.SelectContext(ctx, &clubs, query, from, to, limit); err != nil {
		return nil, fmt.Errorf("failed to get top clubs in range: %w", err)
	}

	return clubs, nil
}

// GetOrganizationActivity returns every organization with its event counts
// split into the two calendar months ([thisFrom, thisTo) and
// [lastFrom, lastTo)) and all time, most active this month first.
func (d *Database) GetOrganizationActivity(ctx context.Context, thisFrom, thisTo, lastFrom, lastTo time.Time, limit int) ([]OrganizationActivityRow, error) {
	query := `
		SELECT o.id, o.title, o.image_url,
			COUNT(e.id) FILTER (WHERE e.start_time >= $1 AND e.start_time < $2) AS events_this_month,
			COUNT(e.id) FILTER (WHERE e.start_time >= $3 AND e.start_time < $4) AS events_last_month,
			COUNT(e.id) AS events_total
		FROM organizations o
		LEFT JOIN events e ON e.organization_id = o.id
		GROUP BY o.id, o.title, o.image_url
		ORDER BY events_this_month DESC, events_total DESC, o.title, o.id
		LIMIT $5
	`

	var orgs []OrganizationActivityRow
	if err := d.db.SelectContext(ctx, &orgs, query, thisFrom, thisTo, lastFrom, lastTo, limit); err != nil {
		return nil, fmt.Errorf("failed to get organization activity: %w", err)
	}

	return orgs, nil
}

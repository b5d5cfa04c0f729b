package database

import (
	"context"
	"fmt"
	"time"
)

// GetTagDistribution returns every tag attached to at least one event
// starting within [from, to) with its distinct event count, most used first.
func (d *Database) GetTagDistribution(ctx context.Context, from time.Time, to time.Time) ([]TagEventCount, error) {
	query := `
		SELECT t.id, t.name, COUNT(DISTINCT e.id) AS events
		FROM tags t
		JOIN event_tags et ON et.tag_id = t.id
		JOIN events e ON e.id = et.event_id
		WHERE e.start_time >= $1 AND e.start_time < $2
		GROUP BY t.id, t.name
		ORDER BY events DESC, t.name, t.id
	`

	var tags []TagEventCount
	if err := d.db.SelectContext(ctx, &tags, query, from, to); err != nil {
		return nil, fmt.Errorf("failed to get tag distribution: %w", err)
	}

	return tags, nil
}

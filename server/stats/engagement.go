package stats

import (
	"context"

	"github.com/mvellek/eventdash/internal/xmath"
)

const (
	EngagementLevelAll        = "All Users"
	EngagementLevelRegistered = "Registered for Events"
	EngagementLevelAttended   = "Attended Events"
	EngagementLevelRepeat     = "Repeat Attendees"
)

// UserEngagementLevels returns the four fixed engagement tiers as
// percentages of the total user count. An empty user table yields 0% for
// every tier.
func (e *Engine) UserEngagementLevels(ctx context.Context) ([]EngagementLevel, error) {
	return cached(e, "engagement", func() ([]EngagementLevel, error) {
		counts, err := e.store.GetEngagementCounts(ctx)
		if err != nil {
			return nil, err
		}

		return []EngagementLevel{
			{
				Level:      EngagementLevelAll,
				Users:      counts.TotalUsers,
				Percentage: xmath.PercentOf(counts.TotalUsers, counts.TotalUsers),
			},
			{
				Level:      EngagementLevelRegistered,
				Users:      counts.RegisteredUsers,
				Percentage: xmath.PercentOf(counts.RegisteredUsers, counts.TotalUsers),
			},
			{
				Level:      EngagementLevelAttended,
				Users:      counts.AttendedUsers,
				Percentage: xmath.PercentOf(counts.AttendedUsers, counts.TotalUsers),
			},
			{
				Level:      EngagementLevelRepeat,
				Users:      counts.RepeatUsers,
				Percentage: xmath.PercentOf(counts.RepeatUsers, counts.TotalUsers),
			},
		}, nil
	})
}

package stats

import (
	"context"
	"fmt"
	"time"

	"github.com/mvellek/eventdash/internal/xmath"
	"github.com/mvellek/eventdash/internal/xtime"
)

// ActivityByYear returns one point per UTC calendar day with at least one
// event in the given year, each bucketed into a 1-4 heatmap level. A year
// that is not positive means the current year.
func (e *Engine) ActivityByYear(ctx context.Context, year int) ([]ActivityPoint, error) {
	if year <= 0 {
		year = e.now().UTC().Year()
	}

	return cached(e, fmt.Sprintf("activity:%d", year), func() ([]ActivityPoint, error) {
		from, to := xtime.YearBounds(year)

		rows, err := e.store.GetDailyEventCounts(ctx, from, to)
		if err != nil {
			return nil, err
		}

		points := make([]ActivityPoint, len(rows))
		for i, row := range rows {
			points[i] = ActivityPoint{
				Day:    row.Day,
				Events: row.Events,
				Level:  xmath.ActivityLevel(row.Events),
			}
		}

		return points, nil
	})
}

// TagDistribution returns the distinct event count per tag for events
// starting in the given UTC calendar month, most used first. Out-of-range
// year or month values mean the current one.
func (e *Engine) TagDistribution(ctx context.Context, year int, month int) ([]TagCount, error) {
	now := e.now().UTC()
	if year <= 0 {
		year = now.Year()
	}
	if month < 1 || month > 12 {
		month = int(now.Month())
	}

	return cached(e, fmt.Sprintf("tags:%d:%d", year, month), func() ([]TagCount, error) {
		from, to := xtime.MonthOf(year, time.Month(month))

		rows, err := e.store.GetTagDistribution(ctx, from, to)
		if err != nil {
			return nil, err
		}

		tags := make([]TagCount, len(rows))
		for i, row := range rows {
			tags[i] = TagCount{
				Tag:    row.Name,
				Events: row.Events,
			}
		}

		return tags, nil
	})
}

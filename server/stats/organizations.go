package stats

import (
	"context"
	"fmt"

	"github.com/mvellek/eventdash/internal/xmath"
	"github.com/mvellek/eventdash/internal/xtime"
)

// TopClubs ranks organizations with at least one event in the trailing
// window by event count, then registration count.
func (e *Engine) TopClubs(ctx context.Context, limit int, days int) ([]ClubStats, error) {
	limit = e.limit(limit, DefaultTopLimit)
	days = e.orDefault(days, DefaultWindowDays)

	return cached(e, fmt.Sprintf("top_clubs:%d:%d", limit, days), func() ([]ClubStats, error) {
		from, to := xtime.TrailingWindow(e.now(), days)

		rows, err := e.store.GetTopClubs(ctx, from, to, limit)
		if err != nil {
			return nil, err
		}

		clubs := make([]ClubStats, len(rows))
		for i, row := range rows {
			clubs[i] = ClubStats{
				ID:             row.ID,
				Title:          row.Title,
				ImageURL:       row.ImageURL,
				Events:         row.Events,
				Registrations:  row.Registrations,
				Attendees:      row.Attendees,
				AttendanceRate: xmath.PercentOf(row.Attendees, row.Registrations),
			}
		}

		return clubs, nil
	})
}

// OrganizationActivity splits every organization's event count into this
// calendar month, last calendar month and all time, with a month-over-month
// growth rate.
func (e *Engine) OrganizationActivity(ctx context.Context, limit int) ([]OrganizationActivity, error) {
	limit = e.limit(limit, DefaultOrganizationLimit)

	return cached(e, fmt.Sprintf("organizations:%d", limit), func() ([]OrganizationActivity, error) {
		now := e.now()
		thisFrom, thisTo := xtime.MonthBounds(now)
		lastFrom, lastTo := xtime.PreviousMonthBounds(now)

		rows, err := e.store.GetOrganizationActivity(ctx, thisFrom, thisTo, lastFrom, lastTo, limit)
		if err != nil {
			return nil, err
		}

		orgs := make([]OrganizationActivity, len(rows))
		for i, row := range rows {
			orgs[i] = OrganizationActivity{
				ID:              row.ID,
				Title:           row.Title,
				ImageURL:        row.ImageURL,
				EventsThisMonth: row.EventsThisMonth,
				EventsLastMonth: row.EventsLastMonth,
				TotalEvents:     row.EventsTotal,
				GrowthRate:      xmath.GrowthRate(row.EventsThisMonth, row.EventsLastMonth),
			}
		}

		return orgs, nil
	})
}

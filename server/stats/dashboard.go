package stats

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/mvellek/eventdash/internal/xmath"
	"github.com/mvellek/eventdash/internal/xtime"
	"github.com/mvellek/eventdash/server/database"
)

// DashboardSummary returns the platform totals, the upcoming/past split and
// the most recent events with their own attendance rates. The counts are
// independent of each other, so they are fetched in parallel; any failure
// discards the whole aggregate.
func (e *Engine) DashboardSummary(ctx context.Context) (*DashboardSummary, error) {
	return cached(e, "dashboard", func() (*DashboardSummary, error) {
		now := e.now()

		var (
			summary DashboardSummary
			recent  []database.EventWithCounts
		)

		eg, ctx := errgroup.WithContext(ctx)
		eg.Go(func() error {
			var err error
			summary.TotalEvents, err = e.store.CountEvents(ctx)
			return err
		})
		eg.Go(func() error {
			var err error
			summary.TotalRegistrations, err = e.store.CountRegistrations(ctx)
			return err
		})
		eg.Go(func() error {
			var err error
			summary.TotalAttendees, err = e.store.CountAttendees(ctx)
			return err
		})
		eg.Go(func() error {
			var err error
			summary.UpcomingEvents, err = e.store.CountUpcomingEvents(ctx, now)
			return err
		})
		eg.Go(func() error {
			var err error
			summary.PastEvents, err = e.store.CountPastEvents(ctx, now)
			return err
		})
		eg.Go(func() error {
			var err error
			recent, err = e.store.GetRecentEventsWithCounts(ctx, RecentEventsSample)
			return err
		})
		if err := eg.Wait(); err != nil {
			return nil, err
		}

		summary.RecentEvents = make([]EventStats, len(recent))
		for i, event := range recent {
			summary.RecentEvents[i] = EventStats{
				ID:             event.ID,
				Title:          event.Title,
				StartTime:      event.StartTime,
				EndTime:        event.EndTime,
				ImageURL:       event.ImageURL,
				Registrations:  event.Registrations,
				Attendees:      event.Attendees,
				AttendanceRate: xmath.PercentOf(event.Attendees, event.Registrations),
			}
		}

		return &summary, nil
	})
}

// OverallSummary returns the platform-wide totals plus the current calendar
// month's event and registration counts. The average attendance rate is the
// mean of the per-event rates, not a ratio of sums.
func (e *Engine) OverallSummary(ctx context.Context) (*OverallSummary, error) {
	return cached(e, "overview", func() (*OverallSummary, error) {
		now := e.now()
		monthStart, monthEnd := xtime.MonthBounds(now)

		var summary OverallSummary

		eg, ctx := errgroup.WithContext(ctx)
		eg.Go(func() error {
			var err error
			summary.TotalEvents, err = e.store.CountEvents(ctx)
			return err
		})
		eg.Go(func() error {
			var err error
			summary.TotalUsers, err = e.store.CountUsers(ctx)
			return err
		})
		eg.Go(func() error {
			var err error
			summary.TotalOrganizations, err = e.store.CountOrganizations(ctx)
			return err
		})
		eg.Go(func() error {
			var err error
			summary.TotalRegistrations, err = e.store.CountRegistrations(ctx)
			return err
		})
		eg.Go(func() error {
			var err error
			summary.UpcomingEvents, err = e.store.CountUpcomingEvents(ctx, now)
			return err
		})
		eg.Go(func() error {
			var err error
			summary.AverageAttendanceRate, err = e.store.GetAverageAttendanceRate(ctx)
			return err
		})
		eg.Go(func() error {
			var err error
			summary.EventsThisMonth, err = e.store.CountEventsBetween(ctx, monthStart, monthEnd)
			return err
		})
		eg.Go(func() error {
			var err error
			summary.RegistrationsThisMonth, err = e.store.CountRegistrationsBetween(ctx, monthStart, monthEnd)
			return err
		})
		if err := eg.Wait(); err != nil {
			return nil, err
		}

		return &summary, nil
	})
}

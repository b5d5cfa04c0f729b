package stats

import (
	"context"
	"fmt"

	"github.com/mvellek/eventdash/internal/xmath"
	"github.com/mvellek/eventdash/internal/xtime"
)

// EventSummary returns the registration and attendance breakdown for a
// single event. A missing event surfaces the store's not-found error.
func (e *Engine) EventSummary(ctx context.Context, eventID int64) (*EventSummary, error) {
	event, err := e.store.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	counts, err := e.store.GetEventCounts(ctx, eventID)
	if err != nil {
		return nil, err
	}

	return &EventSummary{
		EventID:        event.ID,
		Title:          event.Title,
		Registrations:  counts.Registrations,
		Attendees:      counts.Attendees,
		CheckIns:       counts.CheckIns,
		NoShows:        counts.NoShows,
		AttendanceRate: xmath.PercentOf(counts.Attendees, counts.Registrations),
	}, nil
}

// EventTrends returns one point per calendar day with at least one event in
// the trailing window of the given size (default 90 days).
func (e *Engine) EventTrends(ctx context.Context, days int) ([]TrendPoint, error) {
	days = e.orDefault(days, DefaultTrendDays)

	return cached(e, fmt.Sprintf("trends:%d", days), func() ([]TrendPoint, error) {
		from, to := xtime.TrailingWindow(e.now(), days)

		rows, err := e.store.GetEventTrends(ctx, from, to)
		if err != nil {
			return nil, err
		}

		trends := make([]TrendPoint, len(rows))
		for i, row := range rows {
			trends[i] = TrendPoint{
				Day:           row.Day,
				Events:        row.Events,
				Registrations: row.Registrations,
			}
		}

		return trends, nil
	})
}

// TopEvents ranks events starting in the trailing window by registrations,
// then attendees, enriched with their organization's display data.
func (e *Engine) TopEvents(ctx context.Context, limit int, days int) ([]TopEvent, error) {
	limit = e.limit(limit, DefaultTopLimit)
	days = e.orDefault(days, DefaultWindowDays)

	return cached(e, fmt.Sprintf("top_events:%d:%d", limit, days), func() ([]TopEvent, error) {
		from, to := xtime.TrailingWindow(e.now(), days)

		rows, err := e.store.GetTopEvents(ctx, from, to, limit)
		if err != nil {
			return nil, err
		}

		events := make([]TopEvent, len(rows))
		for i, row := range rows {
			events[i] = TopEvent{
				ID:                   row.ID,
				Title:                row.Title,
				StartTime:            row.StartTime,
				ImageURL:             row.ImageURL,
				OrganizationID:       row.OrganizationID,
				OrganizationTitle:    row.OrganizationTitle,
				OrganizationImageURL: row.OrganizationImageURL,
				Registrations:        row.Registrations,
				Attendees:            row.Attendees,
			}
		}

		return events, nil
	})
}

// LowRegistrationEvents returns events starting within the next daysAhead
// days whose registered count is below threshold, soonest first. Threshold
// and capacity fall back to their configured values when not positive.
func (e *Engine) LowRegistrationEvents(ctx context.Context, daysAhead int, threshold int, capacity int) ([]LowRegistrationEvent, error) {
	daysAhead = e.orDefault(daysAhead, DefaultLookAheadDays)
	threshold = e.orDefault(threshold, e.cfg.LowRegistrationThreshold)
	capacity = e.orDefault(capacity, e.cfg.DefaultCapacity)

	key := fmt.Sprintf("low_registration:%d:%d:%d", daysAhead, threshold, capacity)
	return cached(e, key, func() ([]LowRegistrationEvent, error) {
		now := e.now()

		rows, err := e.store.GetLowRegistrationEvents(ctx, now, now.AddDate(0, 0, daysAhead), threshold)
		if err != nil {
			return nil, err
		}

		events := make([]LowRegistrationEvent, len(rows))
		for i, row := range rows {
			events[i] = LowRegistrationEvent{
				ID:                  row.ID,
				Title:               row.Title,
				StartTime:           row.StartTime,
				Registrations:       row.Registrations,
				Capacity:            capacity,
				CapacityUtilization: xmath.PercentOf(row.Registrations, capacity),
				DaysUntil:           xtime.DaysUntil(row.StartTime, now),
			}
		}

		return events, nil
	})
}

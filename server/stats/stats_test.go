package stats

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvellek/eventdash/internal/xtime"
	"github.com/mvellek/eventdash/server/database"
)

// fakeStore is hit concurrently by the fan-out operations, so every write
// goes through mu.
type fakeStore struct {
	mu  sync.Mutex
	err error

	event       *database.Event
	eventCounts *database.EventCounts

	totalEvents        int
	totalRegistrations int
	totalAttendees     int
	upcomingEvents     int
	pastEvents         int
	eventsBetween      int
	regsBetween        int
	totalUsers         int
	totalOrganizations int
	averageRate        float64

	recent      []database.EventWithCounts
	trends      []database.DayTrend
	daily       []database.DayEventCount
	topEvents   []database.TopEventRow
	lowReg      []database.UpcomingEventRow
	topClubs    []database.ClubStatsRow
	orgActivity []database.OrganizationActivityRow
	engagement  *database.EngagementCounts
	tags        []database.TagEventCount

	calls        int
	gotLimit     int
	gotThreshold int
	gotFrom      time.Time
	gotTo        time.Time
}

func (s *fakeStore) tick() {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
}

func (s *fakeStore) GetEvent(_ context.Context, _ int64) (*database.Event, error) {
	s.tick()
	if s.event == nil {
		return nil, errors.New("event not found: no rows in result set")
	}
	return s.event, s.err
}

func (s *fakeStore) GetEventCounts(_ context.Context, _ int64) (*database.EventCounts, error) {
	s.tick()
	return s.eventCounts, s.err
}

func (s *fakeStore) CountEvents(_ context.Context) (int, error) {
	s.tick()
	return s.totalEvents, s.err
}

func (s *fakeStore) CountUpcomingEvents(_ context.Context, _ time.Time) (int, error) {
	s.tick()
	return s.upcomingEvents, s.err
}

func (s *fakeStore) CountPastEvents(_ context.Context, _ time.Time) (int, error) {
	s.tick()
	return s.pastEvents, s.err
}

func (s *fakeStore) CountEventsBetween(_ context.Context, from time.Time, to time.Time) (int, error) {
	s.tick()
	s.mu.Lock()
	s.gotFrom, s.gotTo = from, to
	s.mu.Unlock()
	return s.eventsBetween, s.err
}

func (s *fakeStore) GetRecentEventsWithCounts(_ context.Context, limit int) ([]database.EventWithCounts, error) {
	s.tick()
	s.mu.Lock()
	s.gotLimit = limit
	s.mu.Unlock()
	return s.recent, s.err
}

func (s *fakeStore) GetAverageAttendanceRate(_ context.Context) (float64, error) {
	s.tick()
	return s.averageRate, s.err
}

func (s *fakeStore) GetEventTrends(_ context.Context, from time.Time, to time.Time) ([]database.DayTrend, error) {
	s.tick()
	s.mu.Lock()
	s.gotFrom, s.gotTo = from, to
	s.mu.Unlock()
	return s.trends, s.err
}

func (s *fakeStore) GetDailyEventCounts(_ context.Context, from time.Time, to time.Time) ([]database.DayEventCount, error) {
	s.tick()
	s.mu.Lock()
	s.gotFrom, s.gotTo = from, to
	s.mu.Unlock()
	return s.daily, s.err
}

func (s *fakeStore) GetTopEvents(_ context.Context, from time.Time, to time.Time, limit int) ([]database.TopEventRow, error) {
	s.tick()
	s.mu.Lock()
	s.gotFrom, s.gotTo, s.gotLimit = from, to, limit
	s.mu.Unlock()
	return s.topEvents, s.err
}

func (s *fakeStore) GetLowRegistrationEvents(_ context.Context, from time.Time, to time.Time, threshold int) ([]database.UpcomingEventRow, error) {
	s.tick()
	s.mu.Lock()
	s.gotFrom, s.gotTo, s.gotThreshold = from, to, threshold
	s.mu.Unlock()
	return s.lowReg, s.err
}

func (s *fakeStore) CountRegistrations(_ context.Context) (int, error) {
	s.tick()
	return s.totalRegistrations, s.err
}

func (s *fakeStore) CountRegistrationsBetween(_ context.Context, _ time.Time, _ time.Time) (int, error) {
	s.tick()
	return s.regsBetween, s.err
}

func (s *fakeStore) CountAttendees(_ context.Context) (int, error) {
	s.tick()
	return s.totalAttendees, s.err
}

func (s *fakeStore) CountOrganizations(_ context.Context) (int, error) {
	s.tick()
	return s.totalOrganizations, s.err
}

func (s *fakeStore) GetTopClubs(_ context.Context, from time.Time, to time.Time, limit int) ([]database.ClubStatsRow, error) {
	s.tick()
	s.mu.Lock()
	s.gotFrom, s.gotTo, s.gotLimit = from, to, limit
	s.mu.Unlock()
	return s.topClubs, s.err
}

func (s *fakeStore) GetOrganizationActivity(_ context.Context, _, _, _, _ time.Time, limit int) ([]database.OrganizationActivityRow, error) {
	s.tick()
	s.mu.Lock()
	s.gotLimit = limit
	s.mu.Unlock()
	return s.orgActivity, s.err
}

func (s *fakeStore) CountUsers(_ context.Context) (int, error) {
	s.tick()
	return s.totalUsers, s.err
}

func (s *fakeStore) GetEngagementCounts(_ context.Context) (*database.EngagementCounts, error) {
	s.tick()
	return s.engagement, s.err
}

func (s *fakeStore) GetTagDistribution(_ context.Context, from time.Time, to time.Time) ([]database.TagEventCount, error) {
	s.tick()
	s.mu.Lock()
	s.gotFrom, s.gotTo = from, to
	s.mu.Unlock()
	return s.tags, s.err
}

var testNow = time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)

func newTestEngine(store Store, cfg Config) *Engine {
	e := New(store, cfg)
	e.now = func() time.Time {
		return testNow
	}
	return e
}

func testConfig() Config {
	return Config{
		DefaultCapacity:          100,
		LowRegistrationThreshold: 10,
		MaxLimit:                 100,
	}
}

func TestEventSummary(t *testing.T) {
	store := &fakeStore{
		event:       &database.Event{ID: 10, Title: "Spring Social"},
		eventCounts: &database.EventCounts{Registrations: 8, Attendees: 6, CheckIns: 5, NoShows: 1},
	}
	e := newTestEngine(store, testConfig())

	summary, err := e.EventSummary(context.Background(), 10)
	require.NoError(t, err)

	assert.Equal(t, int64(10), summary.EventID)
	assert.Equal(t, 8, summary.Registrations)
	assert.Equal(t, 6, summary.Attendees)
	assert.InDelta(t, 75.0, summary.AttendanceRate, 0.0001)
}

func TestEventSummaryNoRegistrations(t *testing.T) {
	store := &fakeStore{
		event:       &database.Event{ID: 11},
		eventCounts: &database.EventCounts{},
	}
	e := newTestEngine(store, testConfig())

	summary, err := e.EventSummary(context.Background(), 11)
	require.NoError(t, err)

	assert.Zero(t, summary.Registrations)
	assert.Zero(t, summary.AttendanceRate)
}

func TestEventSummaryMissingEvent(t *testing.T) {
	e := newTestEngine(&fakeStore{}, testConfig())

	_, err := e.EventSummary(context.Background(), 404)
	assert.Error(t, err)
}

func TestDashboardSummary(t *testing.T) {
	store := &fakeStore{
		totalEvents:        12,
		totalRegistrations: 80,
		totalAttendees:     55,
		upcomingEvents:     4,
		pastEvents:         8,
		recent: []database.EventWithCounts{
			{Event: database.Event{ID: 1, Title: "Hack Night"}, Registrations: 10, Attendees: 9},
			{Event: database.Event{ID: 2, Title: "New Event"}, Registrations: 0, Attendees: 0},
		},
	}
	e := newTestEngine(store, testConfig())

	summary, err := e.DashboardSummary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 12, summary.TotalEvents)
	assert.Equal(t, 4, summary.UpcomingEvents)
	assert.Equal(t, RecentEventsSample, store.gotLimit)
	require.Len(t, summary.RecentEvents, 2)
	assert.InDelta(t, 90.0, summary.RecentEvents[0].AttendanceRate, 0.0001)
	assert.Zero(t, summary.RecentEvents[1].AttendanceRate)
}

func TestUserEngagementLevelsEmptyStore(t *testing.T) {
	store := &fakeStore{engagement: &database.EngagementCounts{}}
	e := newTestEngine(store, testConfig())

	levels, err := e.UserEngagementLevels(context.Background())
	require.NoError(t, err)

	require.Len(t, levels, 4)
	for _, level := range levels {
		assert.Zero(t, level.Percentage, level.Level)
	}
}

func TestUserEngagementLevels(t *testing.T) {
	store := &fakeStore{engagement: &database.EngagementCounts{
		TotalUsers:      10,
		RegisteredUsers: 8,
		AttendedUsers:   6,
		RepeatUsers:     2,
	}}
	e := newTestEngine(store, testConfig())

	levels, err := e.UserEngagementLevels(context.Background())
	require.NoError(t, err)

	require.Len(t, levels, 4)
	assert.Equal(t, EngagementLevelAll, levels[0].Level)
	assert.InDelta(t, 100.0, levels[0].Percentage, 0.0001)
	assert.InDelta(t, 80.0, levels[1].Percentage, 0.0001)
	assert.InDelta(t, 60.0, levels[2].Percentage, 0.0001)
	assert.InDelta(t, 20.0, levels[3].Percentage, 0.0001)
}

func TestOrganizationActivityGrowthRates(t *testing.T) {
	store := &fakeStore{orgActivity: []database.OrganizationActivityRow{
		{Organization: database.Organization{ID: 1}, EventsThisMonth: 0, EventsLastMonth: 0, EventsTotal: 3},
		{Organization: database.Organization{ID: 2}, EventsThisMonth: 5, EventsLastMonth: 0, EventsTotal: 5},
		{Organization: database.Organization{ID: 3}, EventsThisMonth: 10, EventsLastMonth: 20, EventsTotal: 40},
	}}
	e := newTestEngine(store, testConfig())

	orgs, err := e.OrganizationActivity(context.Background(), 0)
	require.NoError(t, err)

	require.Len(t, orgs, 3)
	assert.Zero(t, orgs[0].GrowthRate)
	assert.InDelta(t, 100.0, orgs[1].GrowthRate, 0.0001)
	assert.InDelta(t, -50.0, orgs[2].GrowthRate, 0.0001)
	assert.Equal(t, DefaultOrganizationLimit, store.gotLimit)
}

func TestTopClubsLimitNormalization(t *testing.T) {
	store := &fakeStore{}
	e := newTestEngine(store, testConfig())

	_, err := e.TopClubs(context.Background(), -1, 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultTopLimit, store.gotLimit)

	from, to := xtime.TrailingWindow(testNow, DefaultWindowDays)
	assert.Equal(t, from, store.gotFrom)
	assert.Equal(t, to, store.gotTo)

	_, err = e.TopClubs(context.Background(), 5000, 30)
	require.NoError(t, err)
	assert.Equal(t, 100, store.gotLimit)
}

func TestTopClubsAttendanceRate(t *testing.T) {
	store := &fakeStore{topClubs: []database.ClubStatsRow{
		{Organization: database.Organization{ID: 1, Title: "Chess Club"}, Events: 5, Registrations: 40, Attendees: 30},
		{Organization: database.Organization{ID: 2, Title: "New Club"}, Events: 1, Registrations: 0, Attendees: 0},
	}}
	e := newTestEngine(store, testConfig())

	clubs, err := e.TopClubs(context.Background(), 10, 30)
	require.NoError(t, err)

	require.Len(t, clubs, 2)
	assert.InDelta(t, 75.0, clubs[0].AttendanceRate, 0.0001)
	assert.Zero(t, clubs[1].AttendanceRate)
}

func TestLowRegistrationEvents(t *testing.T) {
	store := &fakeStore{lowReg: []database.UpcomingEventRow{
		{Event: database.Event{ID: 7, Title: "Open Mic", StartTime: testNow.AddDate(0, 0, 2)}, Registrations: 4},
	}}
	e := newTestEngine(store, testConfig())

	events, err := e.LowRegistrationEvents(context.Background(), 0, 0, 0)
	require.NoError(t, err)

	assert.Equal(t, 10, store.gotThreshold)
	assert.Equal(t, testNow, store.gotFrom)
	assert.Equal(t, testNow.AddDate(0, 0, DefaultLookAheadDays), store.gotTo)

	require.Len(t, events, 1)
	assert.Equal(t, 100, events[0].Capacity)
	assert.InDelta(t, 4.0, events[0].CapacityUtilization, 0.0001)
	assert.Equal(t, 2, events[0].DaysUntil)
}

func TestActivityByYearLevels(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2024, time.January, d, 0, 0, 0, 0, time.UTC)
	}
	store := &fakeStore{daily: []database.DayEventCount{
		{Day: day(1), Events: 1},
		{Day: day(2), Events: 3},
		{Day: day(3), Events: 5},
		{Day: day(4), Events: 6},
	}}
	e := newTestEngine(store, testConfig())

	points, err := e.ActivityByYear(context.Background(), 2024)
	require.NoError(t, err)

	require.Len(t, points, 4)
	assert.Equal(t, 1, points[0].Level)
	assert.Equal(t, 2, points[1].Level)
	assert.Equal(t, 3, points[2].Level)
	assert.Equal(t, 4, points[3].Level)

	from, to := xtime.YearBounds(2024)
	assert.Equal(t, from, store.gotFrom)
	assert.Equal(t, to, store.gotTo)
}

func TestTagDistributionMonthNormalization(t *testing.T) {
	store := &fakeStore{}
	e := newTestEngine(store, testConfig())

	_, err := e.TagDistribution(context.Background(), 0, 13)
	require.NoError(t, err)

	from, to := xtime.MonthOf(testNow.Year(), testNow.Month())
	assert.Equal(t, from, store.gotFrom)
	assert.Equal(t, to, store.gotTo)
}

func TestTagDistributionExplicitMonth(t *testing.T) {
	store := &fakeStore{tags: []database.TagEventCount{
		{ID: 1, Name: "music", Events: 4},
		{ID: 2, Name: "social", Events: 2},
	}}
	e := newTestEngine(store, testConfig())

	tags, err := e.TagDistribution(context.Background(), 2024, 2)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC), store.gotFrom)
	assert.Equal(t, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), store.gotTo)
	require.Len(t, tags, 2)
	assert.Equal(t, "music", tags[0].Tag)
	assert.Equal(t, 4, tags[0].Events)
}

func TestEventTrendsDefaultDays(t *testing.T) {
	store := &fakeStore{trends: []database.DayTrend{
		{Day: testNow.AddDate(0, 0, -1), Events: 2, Registrations: 15},
	}}
	e := newTestEngine(store, testConfig())

	trends, err := e.EventTrends(context.Background(), -5)
	require.NoError(t, err)

	from, to := xtime.TrailingWindow(testNow, DefaultTrendDays)
	assert.Equal(t, from, store.gotFrom)
	assert.Equal(t, to, store.gotTo)
	require.Len(t, trends, 1)
	assert.Equal(t, 2, trends[0].Events)
}

func TestOverallSummary(t *testing.T) {
	store := &fakeStore{
		totalEvents:        20,
		totalUsers:         50,
		totalOrganizations: 5,
		totalRegistrations: 120,
		upcomingEvents:     6,
		averageRate:        64.5,
		eventsBetween:      3,
		regsBetween:        18,
	}
	e := newTestEngine(store, testConfig())

	summary, err := e.OverallSummary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 20, summary.TotalEvents)
	assert.Equal(t, 50, summary.TotalUsers)
	assert.InDelta(t, 64.5, summary.AverageAttendanceRate, 0.0001)
	assert.Equal(t, 3, summary.EventsThisMonth)
	assert.Equal(t, 18, summary.RegistrationsThisMonth)
}

func TestOverallSummaryStoreFailure(t *testing.T) {
	store := &fakeStore{err: errors.New("connection refused")}
	e := newTestEngine(store, testConfig())

	_, err := e.OverallSummary(context.Background())
	assert.Error(t, err)
}

func TestCachedResultSkipsStore(t *testing.T) {
	store := &fakeStore{engagement: &database.EngagementCounts{TotalUsers: 10}}
	cfg := testConfig()
	cfg.CacheSize = 16
	cfg.CacheTTL = xtime.Duration(time.Minute)
	e := newTestEngine(store, cfg)

	_, err := e.UserEngagementLevels(context.Background())
	require.NoError(t, err)
	_, err = e.UserEngagementLevels(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, store.calls)
}

func TestErrorsAreNotCached(t *testing.T) {
	store := &fakeStore{err: errors.New("boom"), engagement: &database.EngagementCounts{}}
	cfg := testConfig()
	cfg.CacheSize = 16
	cfg.CacheTTL = xtime.Duration(time.Minute)
	e := newTestEngine(store, cfg)

	_, err := e.UserEngagementLevels(context.Background())
	require.Error(t, err)

	store.err = nil
	_, err = e.UserEngagementLevels(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, store.calls)
}

package stats

import (
	"context"
	"fmt"
	"time"

	"github.com/mvellek/eventdash/internal/xcache"
	"github.com/mvellek/eventdash/internal/xquery"
	"github.com/mvellek/eventdash/internal/xtime"
	"github.com/mvellek/eventdash/server/database"
)

// Defaults applied when a count-like parameter is missing or not positive.
const (
	RecentEventsSample       = 5
	DefaultTrendDays         = 90
	DefaultWindowDays        = 30
	DefaultTopLimit          = 10
	DefaultOrganizationLimit = 20
	DefaultLookAheadDays     = 30
)

type Config struct {
	// DefaultCapacity stands in for a real per-event capacity field, which
	// the data model does not have yet. Utilization percentages are computed
	// against it unless a request overrides it.
	DefaultCapacity          int            `toml:"default_capacity"`
	LowRegistrationThreshold int            `toml:"low_registration_threshold"`
	MaxLimit                 int            `toml:"max_limit"`
	CacheSize                int            `toml:"cache_size"`
	CacheTTL                 xtime.Duration `toml:"cache_ttl"`
}

func (c Config) String() string {
	return fmt.Sprintf("\n DefaultCapacity: %d\n LowRegistrationThreshold: %d\n MaxLimit: %d\n CacheSize: %d\n CacheTTL: %s",
		c.DefaultCapacity,
		c.LowRegistrationThreshold,
		c.MaxLimit,
		c.CacheSize,
		c.CacheTTL,
	)
}

// Store is the read-only query surface the engine needs. *database.Database
// satisfies it.
type Store interface {
	GetEvent(ctx context.Context, eventID int64) (*database.Event, error)
	GetEventCounts(ctx context.Context, eventID int64) (*database.EventCounts, error)
	CountEvents(ctx context.Context) (int, error)
	CountUpcomingEvents(ctx context.Context, now time.Time) (int, error)
	CountPastEvents(ctx context.Context, now time.Time) (int, error)
	CountEventsBetween(ctx context.Context, from time.Time, to time.Time) (int, error)
	GetRecentEventsWithCounts(ctx context.Context, limit int) ([]database.EventWithCounts, error)
	GetAverageAttendanceRate(ctx context.Context) (float64, error)
	GetEventTrends(ctx context.Context, from time.Time, to time.Time) ([]database.DayTrend, error)
	GetDailyEventCounts(ctx context.Context, from time.Time, to time.Time) ([]database.DayEventCount, error)
	GetTopEvents(ctx context.Context, from time.Time, to time.Time, limit int) ([]database.TopEventRow, error)
	GetLowRegistrationEvents(ctx context.Context, from time.Time, to time.Time, threshold int) ([]database.UpcomingEventRow, error)
	CountRegistrations(ctx context.Context) (int, error)
	CountRegistrationsBetween(ctx context.Context, from time.Time, to time.Time) (int, error)
	CountAttendees(ctx context.Context) (int, error)
	CountOrganizations(ctx context.Context) (int, error)
	GetTopClubs(ctx context.Context, from time.Time, to time.Time, limit int) ([]database.ClubStatsRow, error)
	GetOrganizationActivity(ctx context.Context, thisFrom, thisTo, lastFrom, lastTo time.Time, limit int) ([]database.OrganizationActivityRow, error)
	CountUsers(ctx context.Context) (int, error)
	GetEngagementCounts(ctx context.Context) (*database.EngagementCounts, error)
	GetTagDistribution(ctx context.Context, from time.Time, to time.Time) ([]database.TagEventCount, error)
}

// Engine computes the dashboard statistics. It is stateless apart from an
// optional short-TTL result cache; every operation is a pure read and safe
// to retry.
type Engine struct {
	store Store
	cfg   Config
	cache *xcache.Cache
	now   func() time.Time
}

func New(store Store, cfg Config) *Engine {
	return &Engine{
		store: store,
		cfg:   cfg,
		cache: xcache.New(cfg.CacheSize, time.Duration(cfg.CacheTTL)),
		now:   time.Now,
	}
}

// limit normalizes a value used as a SQL LIMIT: not-positive values take
// the default and everything is clamped to the configured maximum.
func (e *Engine) limit(value int, defaultValue int) int {
	return xquery.Count(value, defaultValue, e.cfg.MaxLimit)
}

// orDefault normalizes a count-like parameter that is not used as a SQL
// LIMIT: not-positive values take the default.
func (e *Engine) orDefault(value int, defaultValue int) int {
	return xquery.Count(value, defaultValue, 0)
}

// cached returns the cached value for key or computes and stores it. The
// cache never serves errors and is a no-op when disabled.
func cached[T any](e *Engine, key string, compute func() (T, error)) (T, error) {
	if value, ok := e.cache.Get(key); ok {
		if typed, ok := value.(T); ok {
			return typed, nil
		}
	}

	value, err := compute()
	if err != nil {
		var zero T
		return zero, err
	}

	e.cache.Set(key, value)
	return value, nil
}

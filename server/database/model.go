package database

import (
	"time"
)

type Organization struct {
	ID       int64  `db:"id"`
	Title    string `db:"title"`
	ImageURL string `db:"image_url"`
}

type User struct {
	ID       int64  `db:"id"`
	Username string `db:"username"`
}

type Event struct {
	ID             int64     `db:"id"`
	Title          string    `db:"title"`
	OrganizationID int64     `db:"organization_id"`
	StartTime      time.Time `db:"start_time"`
	EndTime        time.Time `db:"end_time"`
	ImageURL       string    `db:"image_url"`
}

// EventCounts holds the per-event registration and attendance totals.
type EventCounts struct {
	Registrations int `db:"registrations"`
	Attendees     int `db:"attendees"`
	CheckIns      int `db:"check_ins"`
	NoShows       int `db:"no_shows"`
}

type EventWithCounts struct {
	Event
	Registrations int `db:"registrations"`
	Attendees     int `db:"attendees"`
}

// TopEventRow carries an event with its owning organization's display data.
type TopEventRow struct {
	EventWithCounts
	OrganizationTitle    string `db:"organization_title"`
	OrganizationImageURL string `db:"organization_image_url"`
}

type UpcomingEventRow struct {
	Event
	Registrations int `db:"registrations"`
}

type DayEventCount struct {
	Day    time.Time `db:"day"`
	Events int       `db:"events"`
}

type DayTrend struct {
	Day           time.Time `db:"day"`
	Events        int       `db:"events"`
	Registrations int       `db:"registrations"`
}

type TagEventCount struct {
	ID     int64  `db:"id"`
	Name   string `db:"name"`
	Events int    `db:"events"`
}

type ClubStatsRow struct {
	Organization
	Events        int `db:"events"`
	Registrations int `db:"registrations"`
	Attendees     int `db:"attendees"`
}

type OrganizationActivityRow struct {
	Organization
	EventsThisMonth int `db:"events_this_month"`
	EventsLastMonth int `db:"events_last_month"`
	EventsTotal     int `db:"events_total"`
}

type EngagementCounts struct {
	TotalUsers      int `db:"total_users"`
	RegisteredUsers int `db:"registered_users"`
	AttendedUsers   int `db:"attended_users"`
	RepeatUsers     int `db:"repeat_users"`
}

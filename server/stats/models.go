package stats

import (
	"time"
)

type EventStats struct {
	ID             int64     `json:"id"`
	Title          string    `json:"title"`
	StartTime      time.Time `json:"start_time"`
	EndTime        time.Time `json:"end_time"`
	ImageURL       string    `json:"image_url"`
	Registrations  int       `json:"registrations"`
	Attendees      int       `json:"attendees"`
	AttendanceRate float64   `json:"attendance_rate"`
}

type DashboardSummary struct {
	TotalEvents        int          `json:"total_events"`
	TotalRegistrations int          `json:"total_registrations"`
	TotalAttendees     int          `json:"total_attendees"`
	UpcomingEvents     int          `json:"upcoming_events"`
	PastEvents         int          `json:"past_events"`
	RecentEvents       []EventStats `json:"recent_events"`
}

type EventSummary struct {
	EventID        int64   `json:"event_id"`
	Title          string  `json:"title"`
	Registrations  int     `json:"registrations"`
	Attendees      int     `json:"attendees"`
	CheckIns       int     `json:"check_ins"`
	NoShows        int     `json:"no_shows"`
	AttendanceRate float64 `json:"attendance_rate"`
}

type TagCount struct {
	Tag    string `json:"tag"`
	Events int    `json:"events"`
}

type ActivityPoint struct {
	Day    time.Time `json:"day"`
	Events int       `json:"events"`
	Level  int       `json:"level"`
}

type OverallSummary struct {
	TotalEvents            int     `json:"total_events"`
	TotalUsers             int     `json:"total_users"`
	TotalOrganizations     int     `json:"total_organizations"`
	TotalRegistrations     int     `json:"total_registrations"`
	UpcomingEvents         int     `json:"upcoming_events"`
	AverageAttendanceRate  float64 `json:"average_attendance_rate"`
	EventsThisMonth        int     `json:"events_this_month"`
	RegistrationsThisMonth int     `json:"registrations_this_month"`
}

type TrendPoint struct {
	Day           time.Time `json:"day"`
	Events        int       `json:"events"`
	Registrations int       `json:"registrations"`
}

type ClubStats struct {
	ID             int64   `json:"id"`
	Title          string  `json:"title"`
	ImageURL       string  `json:"image_url"`
	Events         int     `json:"events"`
	Registrations  int     `json:"registrations"`
	Attendees      int     `json:"attendees"`
	AttendanceRate float64 `json:"attendance_rate"`
}

type EngagementLevel struct {
	Level      string  `json:"level"`
	Users      int     `json:"users"`
	Percentage float64 `json:"percentage"`
}

type TopEvent struct {
	ID                   int64     `json:"id"`
	Title                string    `json:"title"`
	StartTime            time.Time `json:"start_time"`
	ImageURL             string    `json:"image_url"`
	OrganizationID       int64     `json:"organization_id"`
	OrganizationTitle    string    `json:"organization_title"`
	OrganizationImageURL string    `json:"organization_image_url"`
	Registrations        int       `json:"registrations"`
	Attendees            int       `json:"attendees"`
}

type LowRegistrationEvent struct {
	ID                  int64     `json:"id"`
	Title               string    `json:"title"`
	StartTime           time.Time `json:"start_time"`
	Registrations       int       `json:"registrations"`
	Capacity            int       `json:"capacity"`
	CapacityUtilization float64   `json:"capacity_utilization"`
	DaysUntil           int       `json:"days_until"`
}

type OrganizationActivity struct {
	ID              int64   `json:"id"`
	Title           string  `json:"title"`
	ImageURL        string  `json:"image_url"`
	EventsThisMonth int     `json:"events_this_month"`
	EventsLastMonth int     `json:"events_last_month"`
	TotalEvents     int     `json:"total_events"`
	GrowthRate      float64 `json:"growth_rate"`
}

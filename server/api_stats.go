package server

import (
	"net/http"
	"strconv"

	"github.com/mvellek/eventdash/internal/xquery"
)

func (s *Server) DashboardSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.stats.DashboardSummary(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, r, summary)
}

func (s *Server) EventSummary(w http.ResponseWriter, r *http.Request) {
	eventID, err := strconv.ParseInt(r.PathValue("event_id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid event id", http.StatusBadRequest)
		return
	}

	summary, err := s.stats.EventSummary(r.Context(), eventID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, r, summary)
}

func (s *Server) TagDistribution(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	year := xquery.ParseInt(query, "year", 0)
	month := xquery.ParseInt(query, "month", 0)

	tags, err := s.stats.TagDistribution(r.Context(), year, month)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, r, tags)
}

func (s *Server) ActivityByYear(w http.ResponseWriter, r *http.Request) {
	year := xquery.ParseInt(r.URL.Query(), "year", 0)

	points, err := s.stats.ActivityByYear(r.Context(), year)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, r, points)
}

func (s *Server) OverallSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.stats.OverallSummary(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, r, summary)
}

func (s *Server) EventTrends(w http.ResponseWriter, r *http.Request) {
	days := xquery.ParseInt(r.URL.Query(), "days", 0)

	trends, err := s.stats.EventTrends(r.Context(), days)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, r, trends)
}

func (s *Server) TopClubs(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	limit := xquery.ParseInt(query, "limit", 0)
	days := xquery.ParseInt(query, "days", 0)

	clubs, err := s.stats.TopClubs(r.Context(), limit, days)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, r, clubs)
}

func (s *Server) UserEngagementLevels(w http.ResponseWriter, r *http.Request) {
	levels, err := s.stats.UserEngagementLevels(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, r, levels)
}

func (s *Server) TopEvents(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	limit := xquery.ParseInt(query, "limit", 0)
	days := xquery.ParseInt(query, "days", 0)

	events, err := s.stats.TopEvents(r.Context(), limit, days)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, r, events)
}

func (s *Server) LowRegistrationEvents(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	daysAhead := xquery.ParseInt(query, "days_ahead", 0)
	threshold := xquery.ParseInt(query, "threshold", 0)
	capacity := xquery.ParseInt(query, "capacity", 0)

	events, err := s.stats.LowRegistrationEvents(r.Context(), daysAhead, threshold, capacity)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, r, events)
}

func (s *Server) OrganizationActivity(w http.ResponseWriter, r *http.Request) {
	limit := xquery.ParseInt(r.URL.Query(), "limit", 0)

	orgs, err := s.stats.OrganizationActivity(r.Context(), limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, r, orgs)
}

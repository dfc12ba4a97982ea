// Package analytics turns raw reflection and journal collections into the
// derived views the dashboard and admin pages render. Every function here is
// pure: inputs are plain record slices, "now" is always passed in, and
// outputs are fresh values recomputed from scratch on every call.
package analytics

import (
	"math"
	"time"
)

// DateLayout is the calendar-date wire format used by BootcampDate.
const DateLayout = "2006-01-02"

// Profile is the minimal user projection joined onto records. A missing join
// degrades to "Unknown User" / "No Team" rather than failing.
type Profile struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Team      string `json:"team"`
	Email     string `json:"email"`
}

// Reflection is one structured session self-assessment.
type Reflection struct {
	ID                    string    `json:"id"`
	UserID                string    `json:"user_id"`
	BootcampDate          string    `json:"bootcamp_date"` // YYYY-MM-DD
	BootcampSession       string    `json:"bootcamp_session"`
	KeyLearnings          string    `json:"key_learnings"`
	PracticalApplications string    `json:"practical_applications"`
	SuccessMoment         string    `json:"success_moment"`
	ConfidenceLevel       int       `json:"confidence_level"`
	RecommendationScore   int       `json:"recommendation_score"`
	CreatedAt             time.Time `json:"created_at"`
	Profile               *Profile  `json:"user_profile,omitempty"`
}

// Entry is one free-form journal note.
type Entry struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Mood      string    `json:"mood"` // great, good, okay, down, or empty
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"created_at"`
	Profile   *Profile  `json:"user_profile,omitempty"`
}

// --- Derived views ---

type TeamMetrics struct {
	Team              string  `json:"team"`
	Count             int     `json:"count"`
	AvgConfidence     float64 `json:"avg_confidence"`
	AvgRecommendation float64 `json:"avg_recommendation"`
}

// ChartPoint is one date bucket of the confidence/recommendation time series.
type ChartPoint struct {
	Date           string  `json:"date"` // short label, e.g. "Jan 2"
	Confidence     float64 `json:"confidence"`
	Recommendation float64 `json:"recommendation"`
	Count          int     `json:"count"`
}

type UserEngagement struct {
	UserID              string    `json:"user_id"`
	Name                string    `json:"name"`
	Email               string    `json:"email"`
	Team                string    `json:"team"`
	TotalReflections    int       `json:"total_reflections"`
	TotalJournalEntries int       `json:"total_journal_entries"`
	AvgConfidence       float64   `json:"avg_confidence"`
	LastActivity        time.Time `json:"last_activity"`
	Streak              int       `json:"streak"`
}

type MoodDistribution struct {
	Great int `json:"great"`
	Good  int `json:"good"`
	Okay  int `json:"okay"`
	Down  int `json:"down"`
}

type SentimentPoint struct {
	Date             string           `json:"date"` // YYYY-MM-DD
	Sentiment        float64          `json:"sentiment"`
	MoodDistribution MoodDistribution `json:"mood_distribution"`
}

// ParticipationGrid counts activity per (weekday, hour-of-day) cell.
// Weekday index 0 is Sunday, matching time.Weekday.
type ParticipationGrid [7][24]int

type ProgressPoint struct {
	Date       string `json:"date"` // YYYY-MM-DD
	Confidence int    `json:"confidence"`
	Week       int    `json:"week"`
}

type LearningProgress struct {
	UserID      string          `json:"user_id"`
	Name        string          `json:"name"`
	Progression []ProgressPoint `json:"confidence_progression"`
}

type Overview struct {
	TotalResponses    int     `json:"total_responses"`
	AvgConfidence     float64 `json:"avg_confidence"`
	AvgRecommendation float64 `json:"avg_recommendation"`
}

// PersonalStats is the per-user rollup shown on the insights tab.
type PersonalStats struct {
	TotalReflections  int      `json:"total_reflections"`
	AvgConfidence     float64  `json:"avg_confidence"`
	AvgRecommendation float64  `json:"avg_recommendation"`
	Streak            int      `json:"streak"`
	ImprovementRate   int      `json:"improvement_rate"` // percent, first vs last confidence
	TopKeywords       []string `json:"top_keywords"`
}

// AnomalyFunc receives records whose date field could not be parsed. Such
// records are excluded from date-bucketed views instead of failing the whole
// aggregation; callers typically route this to the operator log.
type AnomalyFunc func(recordID, badDate string)

const (
	unknownUser = "Unknown User"
	noTeam      = "No Team"
)

// round1 rounds to one decimal place, half values away from zero toward
// positive infinity (round-half-up on the underlying division).
func round1(x float64) float64 {
	return math.Floor(x*10+0.5) / 10
}

// parseDay parses a YYYY-MM-DD string, reporting failures through anomaly.
func parseDay(id, raw string, anomaly AnomalyFunc) (time.Time, bool) {
	t, err := time.Parse(DateLayout, raw)
	if err != nil {
		if anomaly != nil {
			anomaly(id, raw)
		}
		return time.Time{}, false
	}
	return t, true
}

// dayOf truncates a timestamp to its calendar date in its own location.
func dayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func profileName(p *Profile) string {
	if p == nil {
		return unknownUser
	}
	name := p.FirstName
	if p.LastName != "" {
		if name != "" {
			name += " "
		}
		name += p.LastName
	}
	if name == "" {
		return unknownUser
	}
	return name
}

func profileTeam(p *Profile) string {
	if p == nil || p.Team == "" {
		return noTeam
	}
	return p.Team
}

package services

import (
	"time"

	"github.com/reflectboard/server/internal/analytics"
	"github.com/reflectboard/server/internal/models"
	"gorm.io/gorm"
)

// AdminSnapshot is one full recomputation of every admin-facing aggregate,
// built from scratch over all live records.
type AdminSnapshot struct {
	Overview         analytics.Overview           `json:"overview"`
	TeamMetrics      []analytics.TeamMetrics      `json:"team_metrics"`
	ChartSeries      []analytics.ChartPoint       `json:"chart_series"`
	UserEngagement   []analytics.UserEngagement   `json:"user_engagement"`
	SentimentTrend   []analytics.SentimentPoint   `json:"sentiment_trend"`
	Participation    analytics.ParticipationGrid  `json:"participation"`
	LearningProgress []analytics.LearningProgress `json:"learning_progress"`
	GeneratedAt      time.Time                    `json:"generated_at"`
}

// PersonalInsights is the per-user analytics payload for the insights tab.
type PersonalInsights struct {
	Stats          analytics.PersonalStats    `json:"stats"`
	ChartSeries    []analytics.ChartPoint     `json:"chart_series"`
	SentimentTrend []analytics.SentimentPoint `json:"sentiment_trend"`
	MoodSummary    analytics.MoodDistribution `json:"mood_summary"`
}

type InsightsService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewInsightsService(db *gorm.DB) *InsightsService {
	return &InsightsService{db: db, now: time.Now}
}

// dateAnomaly routes unparseable record dates to the operator log. The
// record is skipped by the aggregation, not failed.
func dateAnomaly(recordID, badDate string) {
	LogWarning("analytics", "bad_date", "record carries unparseable date, excluded from aggregates",
		nil, map[string]string{"record_id": recordID, "value": badDate})
}

func (s *InsightsService) fetchAll() ([]analytics.Reflection, []analytics.Entry, error) {
	var reflectionRows []models.Reflection
	if err := s.db.Preload("Profile").Find(&reflectionRows).Error; err != nil {
		return nil, nil, err
	}
	var entryRows []models.JournalEntry
	if err := s.db.Preload("Profile").Find(&entryRows).Error; err != nil {
		return nil, nil, err
	}

	records := make([]analytics.Reflection, 0, len(reflectionRows))
	for i := range reflectionRows {
		records = append(records, toAnalyticsReflection(&reflectionRows[i]))
	}
	entries := make([]analytics.Entry, 0, len(entryRows))
	for i := range entryRows {
		entries = append(entries, toAnalyticsEntry(&entryRows[i]))
	}
	return records, entries, nil
}

// ComputeAdminSnapshot runs every aggregator over the full record set.
func (s *InsightsService) ComputeAdminSnapshot() (*AdminSnapshot, error) {
	records, entries, err := s.fetchAll()
	if err != nil {
		return nil, err
	}
	now := s.now()

	return &AdminSnapshot{
		Overview:         analytics.ComputeOverview(records),
		TeamMetrics:      analytics.ComputeTeamMetrics(records),
		ChartSeries:      analytics.ComputeChartSeries(records, dateAnomaly),
		UserEngagement:   analytics.ComputeUserEngagement(records, entries, now, dateAnomaly),
		SentimentTrend:   analytics.ComputeSentimentTrend(records, entries, dateAnomaly),
		Participation:    analytics.ComputeParticipation(records, entries),
		LearningProgress: analytics.ComputeLearningProgress(records, dateAnomaly),
		GeneratedAt:      now,
	}, nil
}

// ComputePersonal builds the insights payload scoped to one user.
func (s *InsightsService) ComputePersonal(userID string) (*PersonalInsights, error) {
	var reflectionRows []models.Reflection
	if err := s.db.Where("user_id = ?", userID).Find(&reflectionRows).Error; err != nil {
		return nil, err
	}
	var entryRows []models.JournalEntry
	if err := s.db.Where("user_id = ?", userID).Find(&entryRows).Error; err != nil {
		return nil, err
	}

	records := make([]analytics.Reflection, 0, len(reflectionRows))
	for i := range reflectionRows {
		records = append(records, toAnalyticsReflection(&reflectionRows[i]))
	}
	entries := make([]analytics.Entry, 0, len(entryRows))
	for i := range entryRows {
		entries = append(entries, toAnalyticsEntry(&entryRows[i]))
	}

	var moods analytics.MoodDistribution
	for _, e := range entries {
		analytics.TallyMood(&moods, e.Mood)
	}

	return &PersonalInsights{
		Stats:          analytics.ComputePersonalStats(records, s.now(), dateAnomaly),
		ChartSeries:    analytics.ComputeChartSeries(records, dateAnomaly),
		SentimentTrend: analytics.ComputeSentimentTrend(records, entries, dateAnomaly),
		MoodSummary:    moods,
	}, nil
}

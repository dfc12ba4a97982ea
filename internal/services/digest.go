package services

import (
	"fmt"
	"time"

	"github.com/reflectboard/server/internal/analytics"
	"github.com/reflectboard/server/internal/models"
	"github.com/reflectboard/server/pkg/logger"
	"github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/us"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// DigestService posts a once-a-day activity summary to the operator log.
// The cron fires every day, but delivery is skipped on weekends and public
// holidays since the cohort is not in session.
type DigestService struct {
	db       *gorm.DB
	calendar *cal.BusinessCalendar
	cron     *cron.Cron
	entryID  cron.EntryID
	now      func() time.Time
}

func NewDigestService(db *gorm.DB) *DigestService {
	calendar := cal.NewBusinessCalendar()
	calendar.Name = "bootcamp schedule"
	calendar.AddHoliday(us.Holidays...)

	return &DigestService{
		db:       db,
		calendar: calendar,
		now:      time.Now,
	}
}

// StartScheduler registers the digest job with the given cron spec.
func (s *DigestService) StartScheduler(cronSpec string) error {
	s.cron = cron.New()

	id, err := s.cron.AddFunc(cronSpec, func() {
		if err := s.Deliver(); err != nil {
			logger.Error().Err(err).Msg("daily digest failed")
		}
	})
	if err != nil {
		return err
	}
	s.entryID = id

	s.cron.Start()
	logger.Infof("[Digest] Scheduler started with spec %q", cronSpec)
	return nil
}

func (s *DigestService) StopScheduler() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

// Deliver builds and logs the digest for the current day. Non-business
// days are skipped.
func (s *DigestService) Deliver() error {
	now := s.now()
	if !s.calendar.IsWorkday(now) {
		logger.Info().Msg("digest skipped, not a business day")
		return nil
	}

	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var reflections []models.Reflection
	if err := s.db.Where("created_at >= ?", dayStart).Find(&reflections).Error; err != nil {
		return err
	}
	var entries []models.JournalEntry
	if err := s.db.Where("created_at >= ?", dayStart).Find(&entries).Error; err != nil {
		return err
	}

	var confidenceSum, sentimentSum float64
	for _, r := range reflections {
		confidenceSum += float64(r.ConfidenceLevel)
		text := r.KeyLearnings + " " + r.PracticalApplications + " " + r.SuccessMoment
		sentimentSum += analytics.ScoreSentiment(text).Normalized
	}

	message := fmt.Sprintf("daily digest for %s: %d reflections, %d journal entries",
		now.Format(analytics.DateLayout), len(reflections), len(entries))
	extra := map[string]interface{}{
		"reflections":     len(reflections),
		"journal_entries": len(entries),
	}
	if len(reflections) > 0 {
		extra["avg_confidence"] = confidenceSum / float64(len(reflections))
		extra["avg_sentiment"] = sentimentSum / float64(len(reflections))
	}

	LogInfo("digest", "deliver", message, nil, extra)
	logger.Info().
		Int("reflections", len(reflections)).
		Int("journal_entries", len(entries)).
		Msg("daily digest delivered")
	return nil
}

// IsBusinessDay exposes the calendar check, used by the admin status page.
func (s *DigestService) IsBusinessDay(t time.Time) bool {
	return s.calendar.IsWorkday(t)
}

package services

import (
	"errors"
	"time"

	"github.com/reflectboard/server/internal/analytics"
	"github.com/reflectboard/server/internal/models"
	"gorm.io/gorm"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrForbidden = errors.New("not the record owner")
)

type ReflectionService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewReflectionService(db *gorm.DB) *ReflectionService {
	return &ReflectionService{db: db, now: time.Now}
}

type ReflectionRequest struct {
	BootcampDate          string `json:"bootcamp_date" binding:"required,len=10"`
	BootcampSession       string `json:"bootcamp_session" binding:"required"`
	KeyLearnings          string `json:"key_learnings" binding:"required"`
	PracticalApplications string `json:"practical_applications" binding:"required"`
	SuccessMoment         string `json:"success_moment" binding:"required"`
	ConfidenceLevel       int    `json:"confidence_level" binding:"required,min=1,max=10"`
	RecommendationScore   int    `json:"recommendation_score" binding:"required,min=1,max=10"`
}

type ReflectionListRequest struct {
	Page       int    `form:"page" binding:"omitempty,min=1"`
	PageSize   int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	Search     string `form:"search"`
	DateRange  string `form:"date_range" binding:"omitempty,oneof=all week month quarter year"`
	Confidence string `form:"confidence" binding:"omitempty,oneof=all low medium high"`
	SortBy     string `form:"sort_by" binding:"omitempty,oneof=recent oldest confidence"`
}

func (s *ReflectionService) Create(userID string, req *ReflectionRequest) (*models.Reflection, error) {
	if _, err := time.Parse(analytics.DateLayout, req.BootcampDate); err != nil {
		return nil, errors.New("bootcamp_date must be YYYY-MM-DD")
	}

	record := &models.Reflection{
		UserID:                userID,
		BootcampDate:          req.BootcampDate,
		BootcampSession:       req.BootcampSession,
		KeyLearnings:          req.KeyLearnings,
		PracticalApplications: req.PracticalApplications,
		SuccessMoment:         req.SuccessMoment,
		ConfidenceLevel:       req.ConfidenceLevel,
		RecommendationScore:   req.RecommendationScore,
	}
	if err := s.db.Create(record).Error; err != nil {
		return nil, err
	}

	LogInfo("reflection", "create", "reflection submitted for "+record.BootcampDate, &userID, nil)
	return record, nil
}

// List loads the owner's rows and runs the in-memory filter pipeline over
// them. Filtering happens after the fetch so the semantics match the
// dashboard exactly, including how malformed dates are handled.
func (s *ReflectionService) List(userID string, req *ReflectionListRequest) ([]analytics.Reflection, int, error) {
	var rows []models.Reflection
	if err := s.db.Where("user_id = ?", userID).Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	records := make([]analytics.Reflection, 0, len(rows))
	for i := range rows {
		records = append(records, toAnalyticsReflection(&rows[i]))
	}

	filters := analytics.ReflectionFilters{
		Search:     req.Search,
		DateRange:  analytics.DateRange(req.DateRange),
		Confidence: analytics.ConfidenceBand(req.Confidence),
		SortBy:     analytics.SortKey(req.SortBy),
	}
	page := analytics.Page{Number: req.Page, Size: req.PageSize}
	if page.Number == 0 {
		page.Number = 1
	}
	if page.Size == 0 {
		page.Size = 10
	}

	filtered, total := analytics.FilterReflections(records, filters, page, s.now())
	return filtered, total, nil
}

func (s *ReflectionService) Get(userID, id string) (*models.Reflection, error) {
	var record models.Reflection
	if err := s.db.Preload("Profile").First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if record.UserID != userID {
		return nil, ErrForbidden
	}
	return &record, nil
}

func (s *ReflectionService) Update(userID, id string, req *ReflectionRequest) (*models.Reflection, error) {
	record, err := s.Get(userID, id)
	if err != nil {
		return nil, err
	}
	if _, err := time.Parse(analytics.DateLayout, req.BootcampDate); err != nil {
		return nil, errors.New("bootcamp_date must be YYYY-MM-DD")
	}

	record.BootcampDate = req.BootcampDate
	record.BootcampSession = req.BootcampSession
	record.KeyLearnings = req.KeyLearnings
	record.PracticalApplications = req.PracticalApplications
	record.SuccessMoment = req.SuccessMoment
	record.ConfidenceLevel = req.ConfidenceLevel
	record.RecommendationScore = req.RecommendationScore

	if err := s.db.Save(record).Error; err != nil {
		return nil, err
	}
	return record, nil
}

// Delete soft-deletes the record so it drops out of every aggregate while
// staying recoverable in storage.
func (s *ReflectionService) Delete(userID, id string) error {
	record, err := s.Get(userID, id)
	if err != nil {
		return err
	}
	if err := s.db.Delete(record).Error; err != nil {
		return err
	}
	LogInfo("reflection", "delete", "reflection removed", &userID, map[string]string{"id": id})
	return nil
}

func toAnalyticsReflection(r *models.Reflection) analytics.Reflection {
	out := analytics.Reflection{
		ID:                    r.ID,
		UserID:                r.UserID,
		BootcampDate:          r.BootcampDate,
		BootcampSession:       r.BootcampSession,
		KeyLearnings:          r.KeyLearnings,
		PracticalApplications: r.PracticalApplications,
		SuccessMoment:         r.SuccessMoment,
		ConfidenceLevel:       r.ConfidenceLevel,
		RecommendationScore:   r.RecommendationScore,
		CreatedAt:             r.CreatedAt,
	}
	if r.Profile != nil {
		out.Profile = &analytics.Profile{
			FirstName: r.Profile.FirstName,
			LastName:  r.Profile.LastName,
			Team:      r.Profile.Team,
			Email:     r.Profile.Email,
		}
	}
	return out
}

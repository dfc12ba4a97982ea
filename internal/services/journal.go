package services

import (
	"errors"
	"time"

	"github.com/reflectboard/server/internal/analytics"
	"github.com/reflectboard/server/internal/models"
	"gorm.io/gorm"
)

type JournalService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewJournalService(db *gorm.DB) *JournalService {
	return &JournalService{db: db, now: time.Now}
}

type JournalEntryRequest struct {
	Title   string   `json:"title" binding:"required,max=200"`
	Content string   `json:"content" binding:"required"`
	Mood    string   `json:"mood"`
	Tags    []string `json:"tags" binding:"omitempty,max=10,dive,max=50"`
}

type JournalListRequest struct {
	Page      int    `form:"page" binding:"omitempty,min=1"`
	PageSize  int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	Search    string `form:"search"`
	DateRange string `form:"date_range" binding:"omitempty,oneof=all week month quarter year"`
	SortBy    string `form:"sort_by" binding:"omitempty,oneof=recent oldest"`
}

func (s *JournalService) Create(userID string, req *JournalEntryRequest) (*models.JournalEntry, error) {
	if !models.ValidMood(req.Mood) {
		return nil, errors.New("mood must be one of great, good, okay, down")
	}

	entry := &models.JournalEntry{
		UserID:  userID,
		Title:   req.Title,
		Content: req.Content,
		Mood:    req.Mood,
	}
	if err := entry.SetTagList(req.Tags); err != nil {
		return nil, err
	}
	if err := s.db.Create(entry).Error; err != nil {
		return nil, err
	}

	LogInfo("journal", "create", "journal entry created", &userID, nil)
	return entry, nil
}

func (s *JournalService) List(userID string, req *JournalListRequest) ([]analytics.Entry, int, error) {
	var rows []models.JournalEntry
	if err := s.db.Where("user_id = ?", userID).Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	entries := make([]analytics.Entry, 0, len(rows))
	for i := range rows {
		entries = append(entries, toAnalyticsEntry(&rows[i]))
	}

	filters := analytics.EntryFilters{
		Search:    req.Search,
		DateRange: analytics.DateRange(req.DateRange),
		SortBy:    analytics.SortKey(req.SortBy),
	}
	page := analytics.Page{Number: req.Page, Size: req.PageSize}
	if page.Number == 0 {
		page.Number = 1
	}
	if page.Size == 0 {
		page.Size = 10
	}

	filtered, total := analytics.FilterEntries(entries, filters, page, s.now())
	return filtered, total, nil
}

func (s *JournalService) Get(userID, id string) (*models.JournalEntry, error) {
	var entry models.JournalEntry
	if err := s.db.First(&entry, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if entry.UserID != userID {
		return nil, ErrForbidden
	}
	return &entry, nil
}

func (s *JournalService) Update(userID, id string, req *JournalEntryRequest) (*models.JournalEntry, error) {
	entry, err := s.Get(userID, id)
	if err != nil {
		return nil, err
	}
	if !models.ValidMood(req.Mood) {
		return nil, errors.New("mood must be one of great, good, okay, down")
	}

	entry.Title = req.Title
	entry.Content = req.Content
	entry.Mood = req.Mood
	if err := entry.SetTagList(req.Tags); err != nil {
		return nil, err
	}

	if err := s.db.Save(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

// Delete removes the row outright. Journal entries have no soft-delete
// column, removal is final.
func (s *JournalService) Delete(userID, id string) error {
	entry, err := s.Get(userID, id)
	if err != nil {
		return err
	}
	if err := s.db.Delete(entry).Error; err != nil {
		return err
	}
	LogInfo("journal", "delete", "journal entry removed", &userID, map[string]string{"id": id})
	return nil
}

func toAnalyticsEntry(e *models.JournalEntry) analytics.Entry {
	out := analytics.Entry{
		ID:        e.ID,
		UserID:    e.UserID,
		Title:     e.Title,
		Content:   e.Content,
		Mood:      e.Mood,
		Tags:      e.TagList(),
		CreatedAt: e.CreatedAt,
	}
	if e.Profile != nil {
		out.Profile = &analytics.Profile{
			FirstName: e.Profile.FirstName,
			LastName:  e.Profile.LastName,
			Team:      e.Profile.Team,
			Email:     e.Profile.Email,
		}
	}
	return out
}

package services

import (
	"encoding/json"
	"errors"

	"github.com/reflectboard/server/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DraftService persists auto-saved form state so a half-written reflection
// or journal entry survives a page reload.
type DraftService struct {
	db *gorm.DB
}

func NewDraftService(db *gorm.DB) *DraftService {
	return &DraftService{db: db}
}

type DraftRequest struct {
	FormKey string          `json:"form_key" binding:"required,oneof=reflection journal_entry"`
	Payload json.RawMessage `json:"payload" binding:"required"`
}

// Save upserts the draft row for (user, form).
func (s *DraftService) Save(userID string, req *DraftRequest) error {
	if !json.Valid(req.Payload) {
		return errors.New("payload must be valid JSON")
	}

	draft := &models.Draft{
		UserID:  userID,
		FormKey: req.FormKey,
		Payload: string(req.Payload),
	}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "form_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(draft).Error
}

func (s *DraftService) Load(userID, formKey string) (*models.Draft, error) {
	var draft models.Draft
	err := s.db.Where("user_id = ? AND form_key = ?", userID, formKey).First(&draft).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &draft, nil
}

// Clear removes the draft after a successful submit. Missing rows are fine.
func (s *DraftService) Clear(userID, formKey string) error {
	return s.db.Where("user_id = ? AND form_key = ?", userID, formKey).
		Delete(&models.Draft{}).Error
}

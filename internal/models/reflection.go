package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Reflection is one structured self-assessment for a single bootcamp session.
// BootcampDate is the calendar date the session happened, which is distinct
// from CreatedAt (when the form was submitted).
type Reflection struct {
	ID                    string         `gorm:"primaryKey;size:36" json:"id"`
	UserID                string         `gorm:"index;size:36;not null" json:"user_id"`
	Profile               *UserProfile   `gorm:"foreignKey:UserID" json:"user_profile,omitempty"`
	BootcampDate          string         `gorm:"size:10;index;not null" json:"bootcamp_date"` // YYYY-MM-DD
	BootcampSession       string         `gorm:"size:200" json:"bootcamp_session"`
	KeyLearnings          string         `gorm:"type:text;not null" json:"key_learnings"`
	PracticalApplications string         `gorm:"type:text;not null" json:"practical_applications"`
	SuccessMoment         string         `gorm:"type:text;not null" json:"success_moment"`
	ConfidenceLevel       int            `gorm:"not null" json:"confidence_level"`     // 1-10
	RecommendationScore   int            `gorm:"not null" json:"recommendation_score"` // 1-10
	CreatedAt             time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt             time.Time      `json:"updated_at"`
	DeletedAt             gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Reflection) TableName() string { return "reflections" }

func (r *Reflection) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

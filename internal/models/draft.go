package models

import "time"

// Draft holds an auto-saved in-progress form for a user. One row per
// (user, form) pair; FormKey is e.g. "reflection" or "journal_entry".
type Draft struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"size:36;not null;uniqueIndex:idx_drafts_user_form" json:"user_id"`
	FormKey   string    `gorm:"size:50;not null;uniqueIndex:idx_drafts_user_form" json:"form_key"`
	Payload   string    `gorm:"type:text" json:"payload"` // JSON form state
	UpdatedAt time.Time `json:"updated_at"`
}

func (Draft) TableName() string { return "drafts" }

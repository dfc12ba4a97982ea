package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Mood values a journal entry may carry.
const (
	MoodGreat = "great"
	MoodGood  = "good"
	MoodOkay  = "okay"
	MoodDown  = "down"
)

// ValidMood reports whether m is one of the four mood buckets or empty.
func ValidMood(m string) bool {
	switch m {
	case "", MoodGreat, MoodGood, MoodOkay, MoodDown:
		return true
	}
	return false
}

// JournalEntry is a free-form note, optionally tagged with mood and topics.
// Unlike reflections, entries are hard-deleted when the owner removes them.
type JournalEntry struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	UserID    string    `gorm:"index;size:36;not null" json:"user_id"`
	Profile   *UserProfile `gorm:"foreignKey:UserID" json:"user_profile,omitempty"`
	Title     string    `gorm:"size:200" json:"title"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Mood      string    `gorm:"size:10" json:"mood"`
	Tags      string    `gorm:"size:500" json:"-"` // JSON array: ["golang","testing"]
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (JournalEntry) TableName() string { return "journal_entries" }

func (e *JournalEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}

// TagList decodes the stored JSON tag array. Malformed or empty storage
// yields a nil slice.
func (e *JournalEntry) TagList() []string {
	if e.Tags == "" {
		return nil
	}
	var tags []string
	if err := json.Unmarshal([]byte(e.Tags), &tags); err != nil {
		return nil
	}
	return tags
}

// SetTagList encodes tags as the stored JSON array.
func (e *JournalEntry) SetTagList(tags []string) error {
	if len(tags) == 0 {
		e.Tags = ""
		return nil
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return err
	}
	e.Tags = string(b)
	return nil
}

// MarshalJSON exposes tags as a decoded array on the wire.
func (e JournalEntry) MarshalJSON() ([]byte, error) {
	type alias JournalEntry
	return json.Marshal(struct {
		alias
		Tags []string `json:"tags"`
	}{alias(e), e.TagList()})
}

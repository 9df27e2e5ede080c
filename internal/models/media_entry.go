package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MediaType string

const (
	MediaTypeMovie  MediaType = "Movie"
	MediaTypeSeries MediaType = "Series"
	MediaTypeGame   MediaType = "Game"
)

// ValidMediaType reports whether t is one of the known media types.
func ValidMediaType(t MediaType) bool {
	switch t {
	case MediaTypeMovie, MediaTypeSeries, MediaTypeGame:
		return true
	}
	return false
}

// AgeRestriction is the FSK classification tier of a media entry.
type AgeRestriction string

const (
	FSK0  AgeRestriction = "FSK0"
	FSK6  AgeRestriction = "FSK6"
	FSK12 AgeRestriction = "FSK12"
	FSK16 AgeRestriction = "FSK16"
	FSK18 AgeRestriction = "FSK18"
)

func ValidAgeRestriction(a AgeRestriction) bool {
	switch a {
	case FSK0, FSK6, FSK12, FSK16, FSK18:
		return true
	}
	return false
}

type MediaEntry struct {
	ID             string         `gorm:"primaryKey;type:uuid" json:"id"`
	Title          string         `gorm:"not null;index" json:"title"`
	Description    string         `gorm:"type:text" json:"description"`
	MediaType      MediaType      `gorm:"not null" json:"media_type"`
	ReleaseYear    int            `json:"release_year"`
	AgeRestriction AgeRestriction `gorm:"not null" json:"age_restriction"`
	Genre          string         `gorm:"index" json:"genre"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
	CreatedBy      string         `gorm:"type:uuid;not null;index" json:"created_by"`
	AverageScore   float64        `gorm:"type:decimal(3,2);default:0" json:"average_score"`

	// Associations
	Creator *User    `gorm:"foreignKey:CreatedBy" json:"creator,omitempty"`
	Ratings []Rating `gorm:"foreignKey:MediaEntryID;constraint:OnDelete:CASCADE;" json:"ratings,omitempty"`
}

func (entry *MediaEntry) BeforeCreate(tx *gorm.DB) (err error) {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	return
}

func (MediaEntry) TableName() string {
	return "media_entries"
}

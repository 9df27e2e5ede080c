package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Profile carries the denormalized per-user statistics. The counters must
// always match what StatsService.Recalculate would compute from the user's
// live ratings and media entries.
type Profile struct {
	ID                     string `gorm:"primaryKey;type:uuid" json:"id"`
	UserID                 string `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	NumberOfLogins         int    `gorm:"default:0" json:"number_of_logins"`
	NumberOfRatingsGiven   int    `gorm:"default:0" json:"number_of_ratings_given"`
	NumberOfMediaAdded     int    `gorm:"default:0" json:"number_of_media_added"`
	NumberOfReviewsWritten int    `gorm:"default:0" json:"number_of_reviews_written"`
	FavoriteGenre          string `json:"favorite_genre"`
	FavoriteMediaType      string `json:"favorite_media_type"`
	Sobriquet              string `json:"sobriquet"`
	AboutMe                string `json:"about_me"`

	// Associations
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (profile *Profile) BeforeCreate(tx *gorm.DB) (err error) {
	if profile.ID == "" {
		profile.ID = uuid.New().String()
	}
	return
}

func (Profile) TableName() string {
	return "profiles"
}

package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Rating is one user's verdict on one media entry. The
// (media_entry_uuid, user_uuid) pair is unique; repeated submissions
// overwrite the existing row. PublicVisible only ever moves false -> true.
type Rating struct {
	ID            string    `gorm:"primaryKey;type:uuid" json:"id"`
	MediaEntryID  string    `gorm:"column:media_entry_uuid;type:uuid;not null;uniqueIndex:idx_rating_media_user" json:"media_entry_id"`
	UserID        string    `gorm:"column:user_uuid;type:uuid;not null;uniqueIndex:idx_rating_media_user" json:"user_id"`
	Stars         int       `gorm:"not null;check:stars >= 1 AND stars <= 5" json:"stars"`
	Comment       string    `gorm:"type:text" json:"comment"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
	PublicVisible bool      `gorm:"default:false" json:"public_visible"`

	// Associations
	User  *User        `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Likes []RatingLike `gorm:"foreignKey:RatingID;constraint:OnDelete:CASCADE;" json:"likes,omitempty"`
}

// HasComment reports whether the rating counts as a written review.
func (r *Rating) HasComment() bool {
	return strings.TrimSpace(r.Comment) != ""
}

func (rating *Rating) BeforeCreate(tx *gorm.DB) (err error) {
	if rating.ID == "" {
		rating.ID = uuid.New().String()
	}
	return
}

func (Rating) TableName() string {
	return "ratings"
}

package models

import "time"

// explicit join model keyed by (rating_uuid, user_uuid)
type RatingLike struct {
	RatingID  string    `gorm:"column:rating_uuid;type:uuid;primaryKey" json:"rating_id"`
	UserID    string    `gorm:"column:user_uuid;type:uuid;primaryKey" json:"user_id"`
	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (RatingLike) TableName() string {
	return "rating_likes"
}

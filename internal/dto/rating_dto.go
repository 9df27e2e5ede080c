package dto

import (
	"time"

	"mediarate/internal/models"
)

// RateRequest for creating or updating a rating. Stars are validated here so
// out-of-range values never reach the rating service.
type RateRequest struct {
	Stars   int    `json:"stars" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

// RatingResponse for returning rating information
type RatingResponse struct {
	ID            string    `json:"id"`
	Username      string    `json:"username,omitempty"`
	Stars         int       `json:"stars"`
	Comment       string    `json:"comment,omitempty"`
	PublicVisible bool      `json:"public_visible"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// FromModelToRatingResponse converts a Rating model to RatingResponse DTO
func FromModelToRatingResponse(rating *models.Rating) *RatingResponse {
	resp := &RatingResponse{
		ID:            rating.ID,
		Stars:         rating.Stars,
		Comment:       rating.Comment,
		PublicVisible: rating.PublicVisible,
		CreatedAt:     rating.CreatedAt,
		UpdatedAt:     rating.UpdatedAt,
	}
	if rating.User != nil {
		resp.Username = rating.User.Username
	}
	return resp
}

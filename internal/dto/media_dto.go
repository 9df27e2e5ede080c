package dto

import (
	"time"

	"mediarate/internal/models"
)

// CreateMediaRequest for creating a media entry
type CreateMediaRequest struct {
	Title          string `json:"title" binding:"required,max=200"`
	Description    string `json:"description"`
	MediaType      string `json:"media_type" binding:"required,oneof=Movie Series Game"`
	ReleaseYear    int    `json:"release_year" binding:"required,gte=1888"`
	AgeRestriction string `json:"age_restriction" binding:"required,oneof=FSK0 FSK6 FSK12 FSK16 FSK18"`
	Genre          string `json:"genre"`
}

// ToModel builds the entry owned by the given creator.
func (r *CreateMediaRequest) ToModel(creatorID string) *models.MediaEntry {
	return &models.MediaEntry{
		Title:          r.Title,
		Description:    r.Description,
		MediaType:      models.MediaType(r.MediaType),
		ReleaseYear:    r.ReleaseYear,
		AgeRestriction: models.AgeRestriction(r.AgeRestriction),
		Genre:          r.Genre,
		CreatedBy:      creatorID,
	}
}

// UpdateMediaRequest carries the mutable fields of an entry.
type UpdateMediaRequest struct {
	Title          string `json:"title" binding:"required,max=200"`
	Description    string `json:"description"`
	MediaType      string `json:"media_type" binding:"required,oneof=Movie Series Game"`
	ReleaseYear    int    `json:"release_year" binding:"required,gte=1888"`
	AgeRestriction string `json:"age_restriction" binding:"required,oneof=FSK0 FSK6 FSK12 FSK16 FSK18"`
	Genre          string `json:"genre"`
}

// MediaResponse for returning media entry information
type MediaResponse struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	MediaType      string    `json:"media_type"`
	ReleaseYear    int       `json:"release_year"`
	AgeRestriction string    `json:"age_restriction"`
	Genre          string    `json:"genre"`
	CreatedAt      time.Time `json:"created_at"`
	CreatedBy      string    `json:"created_by"`
	AverageScore   float64   `json:"average_score"`
}

// FromModelToMediaResponse converts a MediaEntry model to MediaResponse DTO
func FromModelToMediaResponse(entry *models.MediaEntry) *MediaResponse {
	return &MediaResponse{
		ID:             entry.ID,
		Title:          entry.Title,
		Description:    entry.Description,
		MediaType:      string(entry.MediaType),
		ReleaseYear:    entry.ReleaseYear,
		AgeRestriction: string(entry.AgeRestriction),
		Genre:          entry.Genre,
		CreatedAt:      entry.CreatedAt,
		CreatedBy:      entry.CreatedBy,
		AverageScore:   entry.AverageScore,
	}
}

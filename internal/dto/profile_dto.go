package dto

import "mediarate/internal/models"

// UpdateProfileRequest changes the user-editable fields; omitted fields stay
// untouched.
type UpdateProfileRequest struct {
	Sobriquet *string `json:"sobriquet"`
	AboutMe   *string `json:"about_me"`
}

// ProfileResponse for returning profile information
type ProfileResponse struct {
	ID                     string `json:"id"`
	UserID                 string `json:"user_id"`
	NumberOfLogins         int    `json:"number_of_logins"`
	NumberOfRatingsGiven   int    `json:"number_of_ratings_given"`
	NumberOfMediaAdded     int    `json:"number_of_media_added"`
	NumberOfReviewsWritten int    `json:"number_of_reviews_written"`
	FavoriteGenre          string `json:"favorite_genre"`
	FavoriteMediaType      string `json:"favorite_media_type"`
	Sobriquet              string `json:"sobriquet"`
	AboutMe                string `json:"about_me"`
}

// FromModelToProfileResponse converts a Profile model to ProfileResponse DTO
func FromModelToProfileResponse(profile *models.Profile) *ProfileResponse {
	return &ProfileResponse{
		ID:                     profile.ID,
		UserID:                 profile.UserID,
		NumberOfLogins:         profile.NumberOfLogins,
		NumberOfRatingsGiven:   profile.NumberOfRatingsGiven,
		NumberOfMediaAdded:     profile.NumberOfMediaAdded,
		NumberOfReviewsWritten: profile.NumberOfReviewsWritten,
		FavoriteGenre:          profile.FavoriteGenre,
		FavoriteMediaType:      profile.FavoriteMediaType,
		Sobriquet:              profile.Sobriquet,
		AboutMe:                profile.AboutMe,
	}
}

package service

import (
	"context"
	"errors"

	"mediarate/internal/models"
	"mediarate/internal/repository"

	"gorm.io/gorm"
)

// StatsService keeps a profile's derived counters and favorites in line with
// the user's live ratings and media entries. Recalculate is the ground truth
// the incremental updates in the rating/media services must agree with.
type StatsService struct {
	profiles repository.ProfileRepository
	ratings  repository.RatingRepository
	media    repository.MediaRepository
}

func NewStatsService(
	profiles repository.ProfileRepository,
	ratings repository.RatingRepository,
	media repository.MediaRepository,
) *StatsService {
	return &StatsService{
		profiles: profiles,
		ratings:  ratings,
		media:    media,
	}
}

// Recalculate recomputes every counter from scratch and refreshes favorites.
func (s *StatsService) Recalculate(ctx context.Context, userID string) error {
	profile, err := s.profiles.GetByOwner(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProfileNotFound
		}
		return err
	}

	userRatings, err := s.ratings.GetByCreator(ctx, userID)
	if err != nil {
		return err
	}

	reviews := 0
	for _, r := range userRatings {
		if r.HasComment() {
			reviews++
		}
	}
	profile.NumberOfRatingsGiven = len(userRatings)
	profile.NumberOfReviewsWritten = reviews

	userMedia, err := s.media.GetByCreator(ctx, userID)
	if err != nil {
		return err
	}
	profile.NumberOfMediaAdded = len(userMedia)

	if err := s.profiles.Update(ctx, profile); err != nil {
		return err
	}

	return s.UpdateFavorites(ctx, userID)
}

// UpdateFavorites recomputes the modal genre and media type over the media
// the user has rated. Leaves the existing favorites untouched when the user
// has no ratings or none of the rated entries resolve. Ties go to the value
// encountered first in enumeration order.
func (s *StatsService) UpdateFavorites(ctx context.Context, userID string) error {
	profile, err := s.profiles.GetByOwner(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProfileNotFound
		}
		return err
	}

	userRatings, err := s.ratings.GetByCreator(ctx, userID)
	if err != nil {
		return err
	}
	if len(userRatings) == 0 {
		return nil
	}

	var ratedMedia []*models.MediaEntry
	for _, r := range userRatings {
		entry, err := s.media.GetByID(ctx, r.MediaEntryID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return err
		}
		ratedMedia = append(ratedMedia, entry)
	}
	if len(ratedMedia) == 0 {
		return nil
	}

	genreCounts := make(map[string]int)
	var genreOrder []string
	typeCounts := make(map[models.MediaType]int)
	var typeOrder []models.MediaType
	for _, m := range ratedMedia {
		if m.Genre != "" {
			if genreCounts[m.Genre] == 0 {
				genreOrder = append(genreOrder, m.Genre)
			}
			genreCounts[m.Genre]++
		}
		if typeCounts[m.MediaType] == 0 {
			typeOrder = append(typeOrder, m.MediaType)
		}
		typeCounts[m.MediaType]++
	}

	if genre, ok := modal(genreOrder, genreCounts); ok {
		profile.FavoriteGenre = genre
	}
	if mediaType, ok := modal(typeOrder, typeCounts); ok {
		profile.FavoriteMediaType = string(mediaType)
	}

	return s.profiles.Update(ctx, profile)
}

// modal returns the key with the highest count, first-encountered winning
// ties.
func modal[K comparable](order []K, counts map[K]int) (K, bool) {
	var best K
	bestCount := 0
	for _, k := range order {
		if counts[k] > bestCount {
			best = k
			bestCount = counts[k]
		}
	}
	return best, bestCount > 0
}

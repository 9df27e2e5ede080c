package service

import (
	"context"
	"errors"
	"strings"

	"mediarate/internal/models"
	"mediarate/internal/repository"

	"gorm.io/gorm"
)

// RatingService drives the rating lifecycle: upserts, removal, likes, and the
// one-way approval into public visibility. It keeps the author's profile
// counters and the entry's average score in step with every mutation.
//
// Star values are validated at the request boundary (dto binding); this
// service trusts them.
type RatingService struct {
	ratings  repository.RatingRepository
	media    repository.MediaRepository
	profiles repository.ProfileRepository
	stats    *StatsService
}

func NewRatingService(
	ratings repository.RatingRepository,
	media repository.MediaRepository,
	profiles repository.ProfileRepository,
	stats *StatsService,
) *RatingService {
	return &RatingService{
		ratings:  ratings,
		media:    media,
		profiles: profiles,
		stats:    stats,
	}
}

// Rate records or overwrites the user's rating for a media entry. A second
// rating for the same pair replaces stars and comment in place; the review
// counter moves only when comment presence actually flips.
func (s *RatingService) Rate(ctx context.Context, mediaID, userID string, stars int, comment string) (*models.Rating, error) {
	if _, err := s.media.GetByID(ctx, mediaID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMediaNotFound
		}
		return nil, err
	}

	existing, err := s.ratings.GetByMediaAndUser(ctx, mediaID, userID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hasComment := strings.TrimSpace(comment) != ""

	if existing != nil {
		hadComment := existing.HasComment()

		existing.Stars = stars
		existing.Comment = comment
		if err := s.ratings.Update(ctx, existing); err != nil {
			return nil, err
		}

		if hadComment != hasComment {
			if err := s.adjustReviewCount(ctx, userID, hasComment); err != nil {
				return nil, err
			}
		}
	} else {
		existing = &models.Rating{
			MediaEntryID: mediaID,
			UserID:       userID,
			Stars:        stars,
			Comment:      comment,
		}
		if err := s.ratings.Create(ctx, existing); err != nil {
			return nil, err
		}

		profile, err := s.profiles.GetByOwner(ctx, userID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if profile != nil {
			profile.NumberOfRatingsGiven++
			if hasComment {
				profile.NumberOfReviewsWritten++
			}
			if err := s.profiles.Update(ctx, profile); err != nil {
				return nil, err
			}
		}
	}

	if err := s.refreshAverageScore(ctx, mediaID); err != nil {
		return nil, err
	}
	if err := s.stats.UpdateFavorites(ctx, userID); err != nil {
		return nil, err
	}
	return existing, nil
}

// Remove deletes the user's rating for a media entry and reverses its effect
// on the profile counters.
func (s *RatingService) Remove(ctx context.Context, mediaID, userID string) error {
	existing, err := s.ratings.GetByMediaAndUser(ctx, mediaID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRatingNotFound
		}
		return err
	}

	profile, err := s.profiles.GetByOwner(ctx, userID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if profile != nil {
		if profile.NumberOfRatingsGiven > 0 {
			profile.NumberOfRatingsGiven--
		}
		if existing.HasComment() && profile.NumberOfReviewsWritten > 0 {
			profile.NumberOfReviewsWritten--
		}
		if err := s.profiles.Update(ctx, profile); err != nil {
			return err
		}
	}

	if err := s.ratings.Delete(ctx, existing.ID); err != nil {
		return err
	}

	if err := s.refreshAverageScore(ctx, mediaID); err != nil {
		return err
	}
	return s.stats.UpdateFavorites(ctx, userID)
}

// Like adds the user to the rating's like set. Liking twice fails without
// touching state.
func (s *RatingService) Like(ctx context.Context, ratingID, userID string) error {
	if _, err := s.ratings.GetByID(ctx, ratingID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRatingNotFound
		}
		return err
	}

	liked, err := s.ratings.HasLike(ctx, ratingID, userID)
	if err != nil {
		return err
	}
	if liked {
		return ErrAlreadyLiked
	}

	if err := s.ratings.AddLike(ctx, ratingID, userID); err != nil {
		// lost the race against a concurrent like
		if errors.Is(err, repository.ErrDuplicateKey) {
			return ErrAlreadyLiked
		}
		return err
	}
	return nil
}

// Unlike removes the user from the rating's like set. Unliking a rating the
// user never liked fails without side effects.
func (s *RatingService) Unlike(ctx context.Context, ratingID, userID string) error {
	if _, err := s.ratings.GetByID(ctx, ratingID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRatingNotFound
		}
		return err
	}

	liked, err := s.ratings.HasLike(ctx, ratingID, userID)
	if err != nil {
		return err
	}
	if !liked {
		return ErrNotLiked
	}

	if err := s.ratings.RemoveLike(ctx, ratingID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotLiked
		}
		return err
	}
	return nil
}

// Approve publishes a rating into the media entry's approved list. Only the
// entry's creator may approve, and the transition is one-way: approving an
// already-public rating fails as a no-op.
func (s *RatingService) Approve(ctx context.Context, ratingID, approverID string) error {
	rating, err := s.ratings.GetByID(ctx, ratingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRatingNotFound
		}
		return err
	}

	entry, err := s.media.GetByID(ctx, rating.MediaEntryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMediaNotFound
		}
		return err
	}

	if entry.CreatedBy != approverID {
		return ErrNotOwner
	}
	if rating.PublicVisible {
		return ErrAlreadyApproved
	}

	rating.PublicVisible = true
	return s.ratings.Update(ctx, rating)
}

// ApprovedRatings returns the media entry's public display list.
func (s *RatingService) ApprovedRatings(ctx context.Context, mediaID string) ([]models.Rating, error) {
	if _, err := s.media.GetByID(ctx, mediaID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMediaNotFound
		}
		return nil, err
	}
	return s.ratings.ApprovedByMedia(ctx, mediaID)
}

// adjustReviewCount moves NumberOfReviewsWritten by one in either direction,
// flooring at zero.
func (s *RatingService) adjustReviewCount(ctx context.Context, userID string, up bool) error {
	profile, err := s.profiles.GetByOwner(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if up {
		profile.NumberOfReviewsWritten++
	} else if profile.NumberOfReviewsWritten > 0 {
		profile.NumberOfReviewsWritten--
	}
	return s.profiles.Update(ctx, profile)
}

// refreshAverageScore recomputes the denormalized average on the media entry.
func (s *RatingService) refreshAverageScore(ctx context.Context, mediaID string) error {
	avg, err := s.ratings.AverageStars(ctx, mediaID)
	if err != nil {
		return err
	}
	entry, err := s.media.GetByID(ctx, mediaID)
	if err != nil {
		return err
	}
	entry.AverageScore = avg
	return s.media.Update(ctx, entry)
}

package service

import (
	"context"
	"errors"

	"mediarate/internal/models"
	"mediarate/internal/repository"

	"gorm.io/gorm"
)

// MediaService owns the media entry lifecycle. Deleting an entry takes its
// ratings and their statistical effects with it in one transaction: an entry
// and its ratings form one consistency boundary.
type MediaService struct {
	media    repository.MediaRepository
	profiles repository.ProfileRepository
	tx       repository.TxRunner
	stats    *StatsService
}

func NewMediaService(
	media repository.MediaRepository,
	profiles repository.ProfileRepository,
	tx repository.TxRunner,
	stats *StatsService,
) *MediaService {
	return &MediaService{
		media:    media,
		profiles: profiles,
		tx:       tx,
		stats:    stats,
	}
}

// Create persists a new media entry and credits the creator's profile.
// Returns ErrMediaExists when the repository reports a duplicate identifier.
func (s *MediaService) Create(ctx context.Context, entry *models.MediaEntry) (string, error) {
	if err := s.media.Create(ctx, entry); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return "", ErrMediaExists
		}
		return "", err
	}

	profile, err := s.profiles.GetByOwner(ctx, entry.CreatedBy)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}
	if profile != nil {
		profile.NumberOfMediaAdded++
		if err := s.profiles.Update(ctx, profile); err != nil {
			return "", err
		}
	}

	return entry.ID, nil
}

// Update overwrites the mutable fields of an existing entry.
func (s *MediaService) Update(ctx context.Context, entry *models.MediaEntry) error {
	existing, err := s.media.GetByID(ctx, entry.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMediaNotFound
		}
		return err
	}

	existing.Title = entry.Title
	existing.Description = entry.Description
	existing.Genre = entry.Genre
	existing.ReleaseYear = entry.ReleaseYear
	existing.MediaType = entry.MediaType
	existing.AgeRestriction = entry.AgeRestriction

	return s.media.Update(ctx, existing)
}

// Delete removes the entry, every rating referencing it, and the ratings'
// contribution to their authors' counters. The whole cascade commits or rolls
// back as one transaction, so a crash can never leave orphaned ratings or
// miscounted profiles.
func (s *MediaService) Delete(ctx context.Context, id string) error {
	entry, err := s.media.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMediaNotFound
		}
		return err
	}

	return s.tx.InTx(ctx, func(r *repository.Repos) error {
		profile, err := r.Profiles.GetByOwner(ctx, entry.CreatedBy)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if profile != nil {
			if profile.NumberOfMediaAdded > 0 {
				profile.NumberOfMediaAdded--
			}
			if err := r.Profiles.Update(ctx, profile); err != nil {
				return err
			}
		}

		ratings, err := r.Ratings.GetByMedia(ctx, id)
		if err != nil {
			return err
		}
		for i := range ratings {
			rating := &ratings[i]

			authorProfile, err := r.Profiles.GetByOwner(ctx, rating.UserID)
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			if authorProfile != nil {
				if authorProfile.NumberOfRatingsGiven > 0 {
					authorProfile.NumberOfRatingsGiven--
				}
				if rating.HasComment() && authorProfile.NumberOfReviewsWritten > 0 {
					authorProfile.NumberOfReviewsWritten--
				}
				if err := r.Profiles.Update(ctx, authorProfile); err != nil {
					return err
				}
			}

			if err := r.Ratings.Delete(ctx, rating.ID); err != nil {
				return err
			}
		}

		return r.Media.Delete(ctx, id)
	})
}

// GetByID fetches one entry.
func (s *MediaService) GetByID(ctx context.Context, id string) (*models.MediaEntry, error) {
	entry, err := s.media.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMediaNotFound
		}
		return nil, err
	}
	return entry, nil
}

// List returns entries matching the filter.
func (s *MediaService) List(ctx context.Context, filter repository.MediaFilter) ([]models.MediaEntry, error) {
	return s.media.List(ctx, filter)
}

// SearchByTitle returns entries whose title matches (case-insensitive,
// partial).
func (s *MediaService) SearchByTitle(ctx context.Context, title string) ([]models.MediaEntry, error) {
	return s.media.GetByTitle(ctx, title)
}

package repository

import (
	"context"

	"mediarate/internal/models"

	"gorm.io/gorm"
)

// MediaFilter narrows List results; zero values mean "any".
type MediaFilter struct {
	Genre          string                `form:"genre"`
	MediaType      models.MediaType      `form:"media_type"`
	AgeRestriction models.AgeRestriction `form:"age_restriction"`
	ReleaseYear    int                   `form:"release_year"`
}

// MediaRepository defines the persistence port for media entries.
type MediaRepository interface {
	Create(ctx context.Context, entry *models.MediaEntry) error
	Update(ctx context.Context, entry *models.MediaEntry) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*models.MediaEntry, error)
	GetByCreator(ctx context.Context, userID string) ([]models.MediaEntry, error)
	GetByTitle(ctx context.Context, title string) ([]models.MediaEntry, error)
	List(ctx context.Context, filter MediaFilter) ([]models.MediaEntry, error)
}

type mediaRepository struct {
	db *gorm.DB
}

func NewMediaRepository(db *gorm.DB) MediaRepository {
	return &mediaRepository{db: db}
}

func (r *mediaRepository) Create(ctx context.Context, entry *models.MediaEntry) error {
	return translateDuplicate(r.db.WithContext(ctx).Create(entry).Error)
}

func (r *mediaRepository) Update(ctx context.Context, entry *models.MediaEntry) error {
	return r.db.WithContext(ctx).Save(entry).Error
}

func (r *mediaRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&models.MediaEntry{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *mediaRepository) GetByID(ctx context.Context, id string) (*models.MediaEntry, error) {
	var entry models.MediaEntry
	if err := r.db.WithContext(ctx).First(&entry, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *mediaRepository) GetByCreator(ctx context.Context, userID string) ([]models.MediaEntry, error) {
	var entries []models.MediaEntry
	if err := r.db.WithContext(ctx).Where("created_by = ?", userID).Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *mediaRepository) GetByTitle(ctx context.Context, title string) ([]models.MediaEntry, error) {
	var entries []models.MediaEntry
	if err := r.db.WithContext(ctx).
		Where("LOWER(title) LIKE LOWER(?)", "%"+title+"%").
		Order("created_at DESC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *mediaRepository) List(ctx context.Context, filter MediaFilter) ([]models.MediaEntry, error) {
	query := r.db.WithContext(ctx).Model(&models.MediaEntry{})
	if filter.Genre != "" {
		query = query.Where("genre = ?", filter.Genre)
	}
	if filter.MediaType != "" {
		query = query.Where("media_type = ?", filter.MediaType)
	}
	if filter.AgeRestriction != "" {
		query = query.Where("age_restriction = ?", filter.AgeRestriction)
	}
	if filter.ReleaseYear != 0 {
		query = query.Where("release_year = ?", filter.ReleaseYear)
	}

	var entries []models.MediaEntry
	if err := query.Order("created_at DESC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

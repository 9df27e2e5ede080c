package repository

import (
	"context"

	"mediarate/internal/models"

	"gorm.io/gorm"
)

// RatingRepository defines the persistence port for ratings and their likes.
// GetByMediaAndUser is the lookup the upsert semantics rely on; the table
// also enforces (media_entry_uuid, user_uuid) uniqueness.
type RatingRepository interface {
	Create(ctx context.Context, rating *models.Rating) error
	Update(ctx context.Context, rating *models.Rating) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*models.Rating, error)
	GetByCreator(ctx context.Context, userID string) ([]models.Rating, error)
	GetByMedia(ctx context.Context, mediaID string) ([]models.Rating, error)
	GetByMediaAndUser(ctx context.Context, mediaID, userID string) (*models.Rating, error)
	ApprovedByMedia(ctx context.Context, mediaID string) ([]models.Rating, error)
	GetByStarsAtLeast(ctx context.Context, stars int) ([]models.Rating, error)
	GetByStarsAtMost(ctx context.Context, stars int) ([]models.Rating, error)
	AverageStars(ctx context.Context, mediaID string) (float64, error)
	AddLike(ctx context.Context, ratingID, userID string) error
	RemoveLike(ctx context.Context, ratingID, userID string) error
	HasLike(ctx context.Context, ratingID, userID string) (bool, error)
	LikedBy(ctx context.Context, ratingID string) ([]string, error)
	List(ctx context.Context) ([]models.Rating, error)
}

type ratingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

func (r *ratingRepository) Create(ctx context.Context, rating *models.Rating) error {
	return translateDuplicate(r.db.WithContext(ctx).Create(rating).Error)
}

func (r *ratingRepository) Update(ctx context.Context, rating *models.Rating) error {
	return r.db.WithContext(ctx).Save(rating).Error
}

func (r *ratingRepository) Delete(ctx context.Context, id string) error {
	// likes go with the rating
	if err := r.db.WithContext(ctx).Delete(&models.RatingLike{}, "rating_uuid = ?", id).Error; err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&models.Rating{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ratingRepository) GetByID(ctx context.Context, id string) (*models.Rating, error) {
	var rating models.Rating
	if err := r.db.WithContext(ctx).First(&rating, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &rating, nil
}

func (r *ratingRepository) GetByCreator(ctx context.Context, userID string) ([]models.Rating, error) {
	var ratings []models.Rating
	if err := r.db.WithContext(ctx).Where("user_uuid = ?", userID).Find(&ratings).Error; err != nil {
		return nil, err
	}
	return ratings, nil
}

func (r *ratingRepository) GetByMedia(ctx context.Context, mediaID string) ([]models.Rating, error) {
	var ratings []models.Rating
	if err := r.db.WithContext(ctx).Where("media_entry_uuid = ?", mediaID).Find(&ratings).Error; err != nil {
		return nil, err
	}
	return ratings, nil
}

func (r *ratingRepository) GetByMediaAndUser(ctx context.Context, mediaID, userID string) (*models.Rating, error) {
	var rating models.Rating
	err := r.db.WithContext(ctx).
		Where("media_entry_uuid = ? AND user_uuid = ?", mediaID, userID).
		First(&rating).Error
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

// ApprovedByMedia returns the entry's display list: only ratings the owner
// has approved into public visibility.
func (r *ratingRepository) ApprovedByMedia(ctx context.Context, mediaID string) ([]models.Rating, error) {
	var ratings []models.Rating
	err := r.db.WithContext(ctx).
		Where("media_entry_uuid = ? AND public_visible = ?", mediaID, true).
		Preload("User").
		Order("created_at DESC").
		Find(&ratings).Error
	if err != nil {
		return nil, err
	}
	return ratings, nil
}

func (r *ratingRepository) GetByStarsAtLeast(ctx context.Context, stars int) ([]models.Rating, error) {
	var ratings []models.Rating
	if err := r.db.WithContext(ctx).Where("stars >= ?", stars).Find(&ratings).Error; err != nil {
		return nil, err
	}
	return ratings, nil
}

func (r *ratingRepository) GetByStarsAtMost(ctx context.Context, stars int) ([]models.Rating, error) {
	var ratings []models.Rating
	if err := r.db.WithContext(ctx).Where("stars <= ?", stars).Find(&ratings).Error; err != nil {
		return nil, err
	}
	return ratings, nil
}

// AverageStars calculates the average stars for a media entry.
func (r *ratingRepository) AverageStars(ctx context.Context, mediaID string) (float64, error) {
	var avg struct {
		Average float64
	}

	err := r.db.WithContext(ctx).Model(&models.Rating{}).
		Select("COALESCE(AVG(stars), 0) as average").
		Where("media_entry_uuid = ?", mediaID).
		Scan(&avg).Error
	if err != nil {
		return 0, err
	}
	return avg.Average, nil
}

func (r *ratingRepository) AddLike(ctx context.Context, ratingID, userID string) error {
	like := &models.RatingLike{RatingID: ratingID, UserID: userID}
	return translateDuplicate(r.db.WithContext(ctx).Create(like).Error)
}

func (r *ratingRepository) RemoveLike(ctx context.Context, ratingID, userID string) error {
	result := r.db.WithContext(ctx).
		Where("rating_uuid = ? AND user_uuid = ?", ratingID, userID).
		Delete(&models.RatingLike{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ratingRepository) HasLike(ctx context.Context, ratingID, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.RatingLike{}).
		Where("rating_uuid = ? AND user_uuid = ?", ratingID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *ratingRepository) LikedBy(ctx context.Context, ratingID string) ([]string, error) {
	var userIDs []string
	err := r.db.WithContext(ctx).Model(&models.RatingLike{}).
		Where("rating_uuid = ?", ratingID).
		Pluck("user_uuid", &userIDs).Error
	if err != nil {
		return nil, err
	}
	return userIDs, nil
}

func (r *ratingRepository) List(ctx context.Context) ([]models.Rating, error) {
	var ratings []models.Rating
	if err := r.db.WithContext(ctx).Find(&ratings).Error; err != nil {
		return nil, err
	}
	return ratings, nil
}

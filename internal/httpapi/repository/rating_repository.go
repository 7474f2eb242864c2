package repository

import (
	"eduground/internal/httpapi/models"

	"gorm.io/gorm"
)

// RatingFilter narrows rating list queries.
type RatingFilter struct {
	LessonID  *int64
	CreatorID string
}

type RatingRepository interface {
	Create(rating *models.Rating) error
	Update(rating *models.Rating) error
	Delete(ratingID int64) error
	FindByID(ratingID int64) (*models.Rating, error)
	List(filter RatingFilter, page, pageSize int) ([]models.Rating, int64, error)
}

type ratingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

func (r *ratingRepository) Create(rating *models.Rating) error {
	return r.db.Create(rating).Error
}

func (r *ratingRepository) Update(rating *models.Rating) error {
	return r.db.Save(rating).Error
}

func (r *ratingRepository) Delete(ratingID int64) error {
	result := r.db.Delete(&models.Rating{}, ratingID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ratingRepository) FindByID(ratingID int64) (*models.Rating, error) {
	var rating models.Rating
	if err := r.db.First(&rating, "id = ?", ratingID).Error; err != nil {
		return nil, err
	}
	return &rating, nil
}

func (r *ratingRepository) List(filter RatingFilter, page, pageSize int) ([]models.Rating, int64, error) {
	query := r.db.Model(&models.Rating{})

	if filter.LessonID != nil {
		query = query.Where("lesson_id = ?", *filter.LessonID)
	}
	if filter.CreatorID != "" {
		query = query.Where("creator_id = ?", filter.CreatorID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ratings []models.Rating
	offset := (page - 1) * pageSize
	err := query.Order("id").
		Limit(pageSize).
		Offset(offset).
		Find(&ratings).Error
	if err != nil {
		return nil, 0, err
	}

	return ratings, total, nil
}

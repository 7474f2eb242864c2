package repository

import (
	"time"

	"eduground/internal/httpapi/models"

	"gorm.io/gorm"
)

var lessonPreloads = []string{
	"Comments",
	"Comments.Creator",
	"Ratings",
}

// LessonFilter narrows lesson list queries. A non-empty StudentID scopes the
// result to lessons of courses that contain the student.
type LessonFilter struct {
	Search    string
	CourseID  *int64
	CreatedAt *time.Time
	StudentID string
}

type LessonRepository interface {
	Create(lesson *models.Lesson) error
	Update(lesson *models.Lesson) error
	Delete(lessonID int64) error
	FindByID(lessonID int64) (*models.Lesson, error)
	FindByIDForStudent(lessonID int64, userID string) (*models.Lesson, error)
	List(filter LessonFilter, page, pageSize int) ([]models.Lesson, int64, error)
}

type lessonRepository struct {
	db *gorm.DB
}

func NewLessonRepository(db *gorm.DB) LessonRepository {
	return &lessonRepository{db: db}
}

func (r *lessonRepository) Create(lesson *models.Lesson) error {
	return r.db.Create(lesson).Error
}

// Update saves the mutable lesson columns. CreatedAt is never touched.
func (r *lessonRepository) Update(lesson *models.Lesson) error {
	return r.db.Model(lesson).Updates(map[string]any{
		"course_id": lesson.CourseID,
		"name":      lesson.Name,
		"video":     lesson.Video,
	}).Error
}

func (r *lessonRepository) Delete(lessonID int64) error {
	result := r.db.Delete(&models.Lesson{}, lessonID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *lessonRepository) FindByID(lessonID int64) (*models.Lesson, error) {
	var lesson models.Lesson
	if err := withPreloads(r.db, lessonPreloads).First(&lesson, "lessons.id = ?", lessonID).Error; err != nil {
		return nil, err
	}
	return &lesson, nil
}

// FindByIDForStudent retrieves a lesson only when the user is enrolled in its
// parent course.
func (r *lessonRepository) FindByIDForStudent(lessonID int64, userID string) (*models.Lesson, error) {
	var lesson models.Lesson
	err := withPreloads(r.db, lessonPreloads).
		Joins("JOIN course_students cs ON cs.course_id = lessons.course_id").
		Where("cs.user_id = ?", userID).
		First(&lesson, "lessons.id = ?", lessonID).Error
	if err != nil {
		return nil, err
	}
	return &lesson, nil
}

func (r *lessonRepository) List(filter LessonFilter, page, pageSize int) ([]models.Lesson, int64, error) {
	query := r.db.Model(&models.Lesson{})

	if filter.StudentID != "" {
		query = query.
			Joins("JOIN course_students cs ON cs.course_id = lessons.course_id").
			Where("cs.user_id = ?", filter.StudentID)
	}
	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}
	if filter.CourseID != nil {
		query = query.Where("lessons.course_id = ?", *filter.CourseID)
	}
	if filter.CreatedAt != nil {
		day := filter.CreatedAt.Truncate(24 * time.Hour)
		query = query.Where("lessons.created_at >= ? AND lessons.created_at < ?", day, day.Add(24*time.Hour))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var lessons []models.Lesson
	offset := (page - 1) * pageSize
	err := withPreloads(query, lessonPreloads).
		Order("lessons.id").
		Limit(pageSize).
		Offset(offset).
		Find(&lessons).Error
	if err != nil {
		return nil, 0, err
	}

	return lessons, total, nil
}

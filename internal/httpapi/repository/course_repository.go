package repository

import (
	"eduground/internal/httpapi/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// coursePreloads are the associations embedded in course responses.
var coursePreloads = []string{
	"Students",
	"Lessons",
	"Lessons.Comments",
	"Lessons.Comments.Creator",
	"Lessons.Ratings",
}

type CourseRepository interface {
	Create(course *models.Course) error
	Update(course *models.Course) error
	Delete(courseID int64) error
	FindByID(courseID int64) (*models.Course, error)
	FindByIDForStudent(courseID int64, userID string) (*models.Course, error)
	List(search string, page, pageSize int) ([]models.Course, int64, error)
	ListForStudent(userID, search string, page, pageSize int) ([]models.Course, int64, error)
	AddStudent(course *models.Course, student *models.User) error
	RemoveStudent(course *models.Course, student *models.User) error
}

type courseRepository struct {
	db *gorm.DB
}

func NewCourseRepository(db *gorm.DB) CourseRepository {
	return &courseRepository{db: db}
}

func (r *courseRepository) Create(course *models.Course) error {
	return r.db.Create(course).Error
}

func (r *courseRepository) Update(course *models.Course) error {
	return r.db.Save(course).Error
}

func (r *courseRepository) Delete(courseID int64) error {
	result := r.db.Delete(&models.Course{}, courseID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *courseRepository) FindByID(courseID int64) (*models.Course, error) {
	var course models.Course
	if err := withPreloads(r.db, coursePreloads).First(&course, "courses.id = ?", courseID).Error; err != nil {
		return nil, err
	}
	return &course, nil
}

// FindByIDForStudent retrieves a course only when the given user is enrolled.
func (r *courseRepository) FindByIDForStudent(courseID int64, userID string) (*models.Course, error) {
	var course models.Course
	err := withPreloads(r.db, coursePreloads).
		Joins("JOIN course_students cs ON cs.course_id = courses.id").
		Where("cs.user_id = ?", userID).
		First(&course, "courses.id = ?", courseID).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *courseRepository) List(search string, page, pageSize int) ([]models.Course, int64, error) {
	return r.list(r.db.Model(&models.Course{}), search, page, pageSize)
}

// ListForStudent lists only courses the given user is enrolled in.
func (r *courseRepository) ListForStudent(userID, search string, page, pageSize int) ([]models.Course, int64, error) {
	scoped := r.db.Model(&models.Course{}).
		Joins("JOIN course_students cs ON cs.course_id = courses.id").
		Where("cs.user_id = ?", userID)
	return r.list(scoped, search, page, pageSize)
}

func (r *courseRepository) list(query *gorm.DB, search string, page, pageSize int) ([]models.Course, int64, error) {
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var courses []models.Course
	offset := (page - 1) * pageSize
	err := withPreloads(query, coursePreloads).
		Order("courses.id").
		Limit(pageSize).
		Offset(offset).
		Find(&courses).Error
	if err != nil {
		return nil, 0, err
	}

	return courses, total, nil
}

// AddStudent appends the student to the course. The membership check and the
// append run in one transaction with the course row locked, so two concurrent
// enrollments of the same student cannot both succeed. A duplicate enrollment
// fails with gorm.ErrDuplicatedKey.
func (r *courseRepository) AddStudent(course *models.Course, student *models.User) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		enrolled, err := isEnrolledTx(tx, course.ID, student.ID)
		if err != nil {
			return err
		}
		if enrolled {
			return gorm.ErrDuplicatedKey
		}
		return tx.Model(course).Association("Students").Append(student)
	})
}

// RemoveStudent removes the student from the course. Removing a student who is
// not enrolled fails with gorm.ErrRecordNotFound.
func (r *courseRepository) RemoveStudent(course *models.Course, student *models.User) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		enrolled, err := isEnrolledTx(tx, course.ID, student.ID)
		if err != nil {
			return err
		}
		if !enrolled {
			return gorm.ErrRecordNotFound
		}
		return tx.Model(course).Association("Students").Delete(student)
	})
}

// isEnrolledTx checks membership with the course row locked, so enrollment
// changes for the same course serialize within their transactions.
func isEnrolledTx(tx *gorm.DB, courseID int64, userID string) (bool, error) {
	var course models.Course
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&course, "id = ?", courseID).Error; err != nil {
		return false, err
	}

	var count int64
	err := tx.Table("course_students").
		Where("course_id = ? AND user_id = ?", courseID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func withPreloads(query *gorm.DB, preloads []string) *gorm.DB {
	for _, p := range preloads {
		query = query.Preload(p)
	}
	return query
}

package service

import (
	"errors"

	"eduground/internal/httpapi/dto"
	"eduground/internal/httpapi/models"
	"eduground/internal/httpapi/repository"

	"gorm.io/gorm"
)

type CourseService interface {
	List(caller Caller, search string, page int) (*dto.PaginatedCourseResponse, error)
	Get(caller Caller, courseID int64) (*dto.CourseResponse, error)
	Create(caller Caller, req dto.CourseRequest) (*dto.CourseResponse, error)
	Update(caller Caller, courseID int64, req dto.CourseRequest) (*dto.CourseResponse, error)
	Delete(caller Caller, courseID int64) error
	AddStudent(courseID int64, studentID string) (*dto.CourseResponse, error)
	RemoveStudent(courseID int64, studentID string) (*dto.CourseResponse, error)
}

type courseService struct {
	courseRepo repository.CourseRepository
	userRepo   repository.UserRepository
	pageSize   int
}

func NewCourseService(courseRepo repository.CourseRepository, userRepo repository.UserRepository, pageSize int) CourseService {
	return &courseService{
		courseRepo: courseRepo,
		userRepo:   userRepo,
		pageSize:   pageSize,
	}
}

// List returns courses visible to the caller: staff see everything, students
// only courses they are enrolled in.
func (s *courseService) List(caller Caller, search string, page int) (*dto.PaginatedCourseResponse, error) {
	var (
		courses []models.Course
		total   int64
		err     error
	)
	if caller.IsStaff {
		courses, total, err = s.courseRepo.List(search, page, s.pageSize)
	} else {
		courses, total, err = s.courseRepo.ListForStudent(caller.ID, search, page, s.pageSize)
	}
	if err != nil {
		return nil, err
	}

	responses := make([]dto.CourseResponse, 0, len(courses))
	for i := range courses {
		responses = append(responses, *dto.FromModelToCourseResponse(&courses[i]))
	}

	return dto.NewPaginatedCourseResponse(responses, int(total), page, s.pageSize), nil
}

// Get returns one course within the caller's scope.
func (s *courseService) Get(caller Caller, courseID int64) (*dto.CourseResponse, error) {
	var (
		course *models.Course
		err    error
	)
	if caller.IsStaff {
		course, err = s.courseRepo.FindByID(courseID)
	} else {
		course, err = s.courseRepo.FindByIDForStudent(courseID, caller.ID)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return dto.FromModelToCourseResponse(course), nil
}

// Create creates a course. Catalog writes are staff-only.
func (s *courseService) Create(caller Caller, req dto.CourseRequest) (*dto.CourseResponse, error) {
	if !caller.IsStaff {
		return nil, ErrPermissionDenied
	}

	course := &models.Course{
		Title:       req.Title,
		Description: req.Description,
	}
	if err := s.courseRepo.Create(course); err != nil {
		return nil, err
	}

	return s.reload(course.ID)
}

func (s *courseService) Update(caller Caller, courseID int64, req dto.CourseRequest) (*dto.CourseResponse, error) {
	if !caller.IsStaff {
		return nil, ErrPermissionDenied
	}

	course, err := s.courseRepo.FindByID(courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	course.Title = req.Title
	course.Description = req.Description
	if err := s.courseRepo.Update(course); err != nil {
		return nil, err
	}

	return s.reload(courseID)
}

func (s *courseService) Delete(caller Caller, courseID int64) error {
	if !caller.IsStaff {
		return ErrPermissionDenied
	}

	if err := s.courseRepo.Delete(courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// AddStudent enrolls a student. A repeated call for the same student fails
// rather than no-ops; the repository enforces that atomically.
func (s *courseService) AddStudent(courseID int64, studentID string) (*dto.CourseResponse, error) {
	course, err := s.courseRepo.FindByID(courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	student, err := s.userRepo.FindByID(studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := s.courseRepo.AddStudent(course, student); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyEnrolled
		}
		return nil, err
	}

	return s.reload(courseID)
}

// RemoveStudent unenrolls a student; fails when the student is not enrolled.
func (s *courseService) RemoveStudent(courseID int64, studentID string) (*dto.CourseResponse, error) {
	course, err := s.courseRepo.FindByID(courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	student, err := s.userRepo.FindByID(studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := s.courseRepo.RemoveStudent(course, student); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotEnrolled
		}
		return nil, err
	}

	return s.reload(courseID)
}

func (s *courseService) reload(courseID int64) (*dto.CourseResponse, error) {
	course, err := s.courseRepo.FindByID(courseID)
	if err != nil {
		return nil, err
	}
	return dto.FromModelToCourseResponse(course), nil
}

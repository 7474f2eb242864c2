package service

import (
	"errors"

	"eduground/internal/httpapi/dto"
	"eduground/internal/httpapi/models"
	"eduground/internal/httpapi/repository"

	"gorm.io/gorm"
)

type LessonService interface {
	List(caller Caller, filter repository.LessonFilter, page int) (*dto.PaginatedLessonResponse, error)
	Get(caller Caller, lessonID int64) (*dto.LessonResponse, error)
	Create(caller Caller, req dto.CreateLessonRequest, videoPath string) (*dto.LessonResponse, error)
	Update(caller Caller, lessonID int64, req dto.UpdateLessonRequest, videoPath string) (*dto.LessonResponse, error)
	Delete(caller Caller, lessonID int64) error
}

type lessonService struct {
	lessonRepo repository.LessonRepository
	courseRepo repository.CourseRepository
	pageSize   int
}

func NewLessonService(lessonRepo repository.LessonRepository, courseRepo repository.CourseRepository, pageSize int) LessonService {
	return &lessonService{
		lessonRepo: lessonRepo,
		courseRepo: courseRepo,
		pageSize:   pageSize,
	}
}

// List returns lessons visible to the caller: staff see everything, students
// only lessons of courses they are enrolled in.
func (s *lessonService) List(caller Caller, filter repository.LessonFilter, page int) (*dto.PaginatedLessonResponse, error) {
	if !caller.IsStaff {
		filter.StudentID = caller.ID
	}

	lessons, total, err := s.lessonRepo.List(filter, page, s.pageSize)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.LessonResponse, 0, len(lessons))
	for i := range lessons {
		responses = append(responses, *dto.FromModelToLessonResponse(&lessons[i]))
	}

	return dto.NewPaginatedLessonResponse(responses, int(total), page, s.pageSize), nil
}

func (s *lessonService) Get(caller Caller, lessonID int64) (*dto.LessonResponse, error) {
	var (
		lesson *models.Lesson
		err    error
	)
	if caller.IsStaff {
		lesson, err = s.lessonRepo.FindByID(lessonID)
	} else {
		lesson, err = s.lessonRepo.FindByIDForStudent(lessonID, caller.ID)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return dto.FromModelToLessonResponse(lesson), nil
}

// Create creates a lesson in a course. Catalog writes are staff-only; the
// video has already been stored by the handler and arrives as a path.
func (s *lessonService) Create(caller Caller, req dto.CreateLessonRequest, videoPath string) (*dto.LessonResponse, error) {
	if !caller.IsStaff {
		return nil, ErrPermissionDenied
	}

	if _, err := s.courseRepo.FindByID(req.Course); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	lesson := &models.Lesson{
		CourseID: req.Course,
		Name:     req.Name,
		Video:    videoPath,
	}
	if err := s.lessonRepo.Create(lesson); err != nil {
		return nil, err
	}

	return s.reload(lesson.ID)
}

// Update changes name/course and optionally the video. An empty videoPath
// keeps the stored file; created_at is immutable.
func (s *lessonService) Update(caller Caller, lessonID int64, req dto.UpdateLessonRequest, videoPath string) (*dto.LessonResponse, error) {
	if !caller.IsStaff {
		return nil, ErrPermissionDenied
	}

	lesson, err := s.lessonRepo.FindByID(lessonID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if _, err := s.courseRepo.FindByID(req.Course); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	lesson.CourseID = req.Course
	lesson.Name = req.Name
	if videoPath != "" {
		lesson.Video = videoPath
	}
	if err := s.lessonRepo.Update(lesson); err != nil {
		return nil, err
	}

	return s.reload(lessonID)
}

func (s *lessonService) Delete(caller Caller, lessonID int64) error {
	if !caller.IsStaff {
		return ErrPermissionDenied
	}

	if err := s.lessonRepo.Delete(lessonID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *lessonService) reload(lessonID int64) (*dto.LessonResponse, error) {
	lesson, err := s.lessonRepo.FindByID(lessonID)
	if err != nil {
		return nil, err
	}
	return dto.FromModelToLessonResponse(lesson), nil
}

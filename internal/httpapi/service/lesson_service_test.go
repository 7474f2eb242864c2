package service

import (
	"testing"

	"eduground/internal/httpapi/dto"
	"eduground/internal/httpapi/models"
	"eduground/internal/httpapi/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

func TestListLessons_StudentScopeApplied(t *testing.T) {
	mockLessonRepo := new(MockLessonRepository)
	mockCourseRepo := new(MockCourseRepository)
	lessonService := NewLessonService(mockLessonRepo, mockCourseRepo, 100)

	expectedFilter := repository.LessonFilter{StudentID: "student-1"}
	lessons := []models.Lesson{{ID: 1, CourseID: 2, Name: "Intro"}}
	mockLessonRepo.On("List", expectedFilter, 1, 100).Return(lessons, int64(1), nil)

	response, err := lessonService.List(studentCaller, repository.LessonFilter{}, 1)

	assert.NoError(t, err)
	assert.Len(t, response.Data, 1)
	mockLessonRepo.AssertExpectations(t)
}

func TestListLessons_StaffUnscoped(t *testing.T) {
	mockLessonRepo := new(MockLessonRepository)
	mockCourseRepo := new(MockCourseRepository)
	lessonService := NewLessonService(mockLessonRepo, mockCourseRepo, 100)

	mockLessonRepo.On("List", repository.LessonFilter{}, 1, 100).Return([]models.Lesson{}, int64(0), nil)

	response, err := lessonService.List(staffCaller, repository.LessonFilter{}, 1)

	assert.NoError(t, err)
	assert.Empty(t, response.Data)
	mockLessonRepo.AssertExpectations(t)
}

func TestCreateLesson_NonStaffDenied(t *testing.T) {
	mockLessonRepo := new(MockLessonRepository)
	mockCourseRepo := new(MockCourseRepository)
	lessonService := NewLessonService(mockLessonRepo, mockCourseRepo, 100)

	_, err := lessonService.Create(studentCaller, dto.CreateLessonRequest{Course: 1, Name: "Intro"}, "videos/x.mp4")

	assert.ErrorIs(t, err, ErrPermissionDenied)
	mockLessonRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestCreateLesson_UnknownCourse(t *testing.T) {
	mockLessonRepo := new(MockLessonRepository)
	mockCourseRepo := new(MockCourseRepository)
	lessonService := NewLessonService(mockLessonRepo, mockCourseRepo, 100)

	mockCourseRepo.On("FindByID", int64(9)).Return(nil, gorm.ErrRecordNotFound)

	_, err := lessonService.Create(staffCaller, dto.CreateLessonRequest{Course: 9, Name: "Intro"}, "videos/x.mp4")

	assert.ErrorIs(t, err, ErrNotFound)
	mockLessonRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestUpdateLesson_EmptyVideoKeepsStoredFile(t *testing.T) {
	mockLessonRepo := new(MockLessonRepository)
	mockCourseRepo := new(MockCourseRepository)
	lessonService := NewLessonService(mockLessonRepo, mockCourseRepo, 100)

	lesson := &models.Lesson{ID: 5, CourseID: 2, Name: "Intro", Video: "videos/original.mp4"}
	mockLessonRepo.On("FindByID", int64(5)).Return(lesson, nil)
	mockCourseRepo.On("FindByID", int64(2)).Return(&models.Course{ID: 2}, nil)
	mockLessonRepo.On("Update", mock.MatchedBy(func(l *models.Lesson) bool {
		return l.Video == "videos/original.mp4" && l.Name == "Renamed"
	})).Return(nil)

	response, err := lessonService.Update(staffCaller, 5, dto.UpdateLessonRequest{Course: 2, Name: "Renamed"}, "")

	assert.NoError(t, err)
	assert.Equal(t, "videos/original.mp4", response.Video)
	mockLessonRepo.AssertExpectations(t)
}

func TestGetLesson_StudentOutsideScopeIsNotFound(t *testing.T) {
	mockLessonRepo := new(MockLessonRepository)
	mockCourseRepo := new(MockCourseRepository)
	lessonService := NewLessonService(mockLessonRepo, mockCourseRepo, 100)

	mockLessonRepo.On("FindByIDForStudent", int64(5), "student-1").Return(nil, gorm.ErrRecordNotFound)

	_, err := lessonService.Get(studentCaller, 5)

	assert.ErrorIs(t, err, ErrNotFound)
	mockLessonRepo.AssertExpectations(t)
}

package dto

import "eduground/internal/httpapi/models"

// CourseRequest for creating or updating a course
type CourseRequest struct {
	Title       string `json:"title" binding:"required,max=255"`
	Description string `json:"description" binding:"required"`
}

// StudentIDRequest for enrolling or unenrolling a student
type StudentIDRequest struct {
	StudentID string `json:"student_id" binding:"required"`
}

// CourseResponse for returning course information with students and lessons
type CourseResponse struct {
	ID          int64            `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Students    []UserSummary    `json:"students"`
	Lessons     []LessonResponse `json:"lessons"`
}

// FromModelToCourseResponse converts a Course model to CourseResponse DTO
func FromModelToCourseResponse(course *models.Course) *CourseResponse {
	students := make([]UserSummary, 0, len(course.Students))
	for i := range course.Students {
		students = append(students, FromModelToUserSummary(&course.Students[i]))
	}

	lessons := make([]LessonResponse, 0, len(course.Lessons))
	for i := range course.Lessons {
		lessons = append(lessons, *FromModelToLessonResponse(&course.Lessons[i]))
	}

	return &CourseResponse{
		ID:          course.ID,
		Title:       course.Title,
		Description: course.Description,
		Students:    students,
		Lessons:     lessons,
	}
}

// PaginatedCourseResponse for returning paginated courses
type PaginatedCourseResponse struct {
	Data       []CourseResponse `json:"data"`
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
	Total      int              `json:"total"`
	TotalPages int              `json:"total_pages"`
}

// NewPaginatedCourseResponse creates a paginated course response
func NewPaginatedCourseResponse(data []CourseResponse, total, page, pageSize int) *PaginatedCourseResponse {
	totalPages := total / pageSize
	if total%pageSize != 0 {
		totalPages++
	}

	return &PaginatedCourseResponse{
		Data:       data,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}

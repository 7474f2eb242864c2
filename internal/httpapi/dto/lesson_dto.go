package dto

import (
	"time"

	"eduground/internal/httpapi/models"
)

// CreateLessonRequest for creating a lesson. The video arrives as a separate
// multipart file part and is stored by the handler.
type CreateLessonRequest struct {
	Course int64  `form:"course" binding:"required"`
	Name   string `form:"name" binding:"required,max=256"`
}

// UpdateLessonRequest for updating a lesson. A missing video part keeps the
// stored file.
type UpdateLessonRequest struct {
	Course int64  `form:"course" binding:"required"`
	Name   string `form:"name" binding:"required,max=256"`
}

// LessonResponse for returning lesson information with comments and the
// derived rating percentage
type LessonResponse struct {
	ID        int64             `json:"id"`
	Course    int64             `json:"course"`
	Name      string            `json:"name"`
	Video     string            `json:"video"`
	CreatedAt time.Time         `json:"created_at"`
	Comments  []CommentResponse `json:"comments"`
	Rating    float64           `json:"rating"`
}

// FromModelToLessonResponse converts a Lesson model to LessonResponse DTO.
// The rating is the percentage of liked ratings, 0 when there are none.
func FromModelToLessonResponse(lesson *models.Lesson) *LessonResponse {
	comments := make([]CommentResponse, 0, len(lesson.Comments))
	for i := range lesson.Comments {
		comments = append(comments, *FromModelToCommentResponse(&lesson.Comments[i]))
	}

	rating := 0.0
	if total := len(lesson.Ratings); total != 0 {
		liked := 0
		for _, r := range lesson.Ratings {
			if r.Liked {
				liked++
			}
		}
		rating = float64(liked) / float64(total) * 100
	}

	return &LessonResponse{
		ID:        lesson.ID,
		Course:    lesson.CourseID,
		Name:      lesson.Name,
		Video:     lesson.Video,
		CreatedAt: lesson.CreatedAt,
		Comments:  comments,
		Rating:    rating,
	}
}

// PaginatedLessonResponse for returning paginated lessons
type PaginatedLessonResponse struct {
	Data       []LessonResponse `json:"data"`
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
	Total      int              `json:"total"`
	TotalPages int              `json:"total_pages"`
}

// NewPaginatedLessonResponse creates a paginated lesson response
func NewPaginatedLessonResponse(data []LessonResponse, total, page, pageSize int) *PaginatedLessonResponse {
	totalPages := total / pageSize
	if total%pageSize != 0 {
		totalPages++
	}

	return &PaginatedLessonResponse{
		Data:       data,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}

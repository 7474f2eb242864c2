package dto

import (
	"time"

	"eduground/internal/httpapi/models"
)

// CreateCommentDTO for creating a comment. The creator never comes from the
// payload; it is taken from the authenticated caller.
type CreateCommentDTO struct {
	Lesson int64  `json:"lesson" binding:"required"`
	Text   string `json:"text" binding:"required,min=1,max=5000"`
}

// UpdateCommentDTO for updating a comment
type UpdateCommentDTO struct {
	Text string `json:"text" binding:"required,min=1,max=5000"`
}

// CommentResponse for returning comment information
type CommentResponse struct {
	ID          int64     `json:"id"`
	Lesson      int64     `json:"lesson"`
	Creator     string    `json:"creator"`
	CreatorName string    `json:"creator_name,omitempty"`
	Text        string    `json:"text"`
	CreatedAt   time.Time `json:"created_at"`
}

// FromModelToCommentResponse converts a Comment model to CommentResponse DTO
func FromModelToCommentResponse(comment *models.Comment) *CommentResponse {
	resp := &CommentResponse{
		ID:        comment.ID,
		Lesson:    comment.LessonID,
		Creator:   comment.CreatorID,
		Text:      comment.Text,
		CreatedAt: comment.CreatedAt,
	}
	if comment.Creator != nil {
		resp.CreatorName = comment.Creator.FullName()
	}
	return resp
}

// PaginatedCommentResponse for returning paginated comments
type PaginatedCommentResponse struct {
	Data       []CommentResponse `json:"data"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	Total      int               `json:"total"`
	TotalPages int               `json:"total_pages"`
}

// NewPaginatedCommentResponse creates a paginated comment response
func NewPaginatedCommentResponse(data []CommentResponse, total, page, pageSize int) *PaginatedCommentResponse {
	totalPages := total / pageSize
	if total%pageSize != 0 {
		totalPages++
	}

	return &PaginatedCommentResponse{
		Data:       data,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}

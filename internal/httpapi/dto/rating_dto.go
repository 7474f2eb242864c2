package dto

import "eduground/internal/httpapi/models"

// CreateRatingDTO for creating a rating. Liked is a pointer so that an
// explicit false still binds.
type CreateRatingDTO struct {
	Lesson int64 `json:"lesson" binding:"required"`
	Liked  *bool `json:"liked" binding:"required"`
}

// UpdateRatingDTO for updating a rating
type UpdateRatingDTO struct {
	Liked *bool `json:"liked" binding:"required"`
}

// RatingResponse for returning rating information
type RatingResponse struct {
	ID      int64  `json:"id"`
	Lesson  int64  `json:"lesson"`
	Creator string `json:"creator"`
	Liked   bool   `json:"liked"`
}

// FromModelToRatingResponse converts a Rating model to RatingResponse DTO
func FromModelToRatingResponse(rating *models.Rating) *RatingResponse {
	return &RatingResponse{
		ID:      rating.ID,
		Lesson:  rating.LessonID,
		Creator: rating.CreatorID,
		Liked:   rating.Liked,
	}
}

// PaginatedRatingResponse for returning paginated ratings
type PaginatedRatingResponse struct {
	Data       []RatingResponse `json:"data"`
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
	Total      int              `json:"total"`
	TotalPages int              `json:"total_pages"`
}

// NewPaginatedRatingResponse creates a paginated rating response
func NewPaginatedRatingResponse(data []RatingResponse, total, page, pageSize int) *PaginatedRatingResponse {
	totalPages := total / pageSize
	if total%pageSize != 0 {
		totalPages++
	}

	return &PaginatedRatingResponse{
		Data:       data,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}

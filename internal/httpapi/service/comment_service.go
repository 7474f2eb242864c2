package service

import (
	"errors"

	"eduground/internal/httpapi/dto"
	"eduground/internal/httpapi/models"
	"eduground/internal/httpapi/repository"

	"gorm.io/gorm"
)

type CommentService interface {
	List(filter repository.CommentFilter, page int) (*dto.PaginatedCommentResponse, error)
	Get(commentID int64) (*dto.CommentResponse, error)
	Create(caller Caller, req dto.CreateCommentDTO) (*dto.CommentResponse, error)
	Update(caller Caller, commentID int64, req dto.UpdateCommentDTO) (*dto.CommentResponse, error)
	Delete(caller Caller, commentID int64) error
}

type commentService struct {
	commentRepo repository.CommentRepository
	lessonRepo  repository.LessonRepository
	pageSize    int
}

func NewCommentService(commentRepo repository.CommentRepository, lessonRepo repository.LessonRepository, pageSize int) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		lessonRepo:  lessonRepo,
		pageSize:    pageSize,
	}
}

func (s *commentService) List(filter repository.CommentFilter, page int) (*dto.PaginatedCommentResponse, error) {
	comments, total, err := s.commentRepo.List(filter, page, s.pageSize)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.CommentResponse, 0, len(comments))
	for i := range comments {
		responses = append(responses, *dto.FromModelToCommentResponse(&comments[i]))
	}

	return dto.NewPaginatedCommentResponse(responses, int(total), page, s.pageSize), nil
}

func (s *commentService) Get(commentID int64) (*dto.CommentResponse, error) {
	comment, err := s.commentRepo.FindByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return dto.FromModelToCommentResponse(comment), nil
}

// Create posts a comment on a lesson. The creator is always the caller; a
// creator value in the payload is never read.
func (s *commentService) Create(caller Caller, req dto.CreateCommentDTO) (*dto.CommentResponse, error) {
	if _, err := s.lessonRepo.FindByID(req.Lesson); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	comment := &models.Comment{
		LessonID:  req.Lesson,
		CreatorID: caller.ID,
		Text:      req.Text,
	}
	if err := s.commentRepo.Create(comment); err != nil {
		return nil, err
	}

	// Reload with creator data
	comment, err := s.commentRepo.FindByID(comment.ID)
	if err != nil {
		return nil, err
	}

	return dto.FromModelToCommentResponse(comment), nil
}

// Update edits a comment's text. Only the creator (or staff) may do so; the
// creator reference itself never changes.
func (s *commentService) Update(caller Caller, commentID int64, req dto.UpdateCommentDTO) (*dto.CommentResponse, error) {
	comment, err := s.commentRepo.FindByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if !canModifyOwned(caller, comment.CreatorID) {
		return nil, ErrPermissionDenied
	}

	comment.Text = req.Text
	if err := s.commentRepo.Update(comment); err != nil {
		return nil, err
	}

	comment, err = s.commentRepo.FindByID(commentID)
	if err != nil {
		return nil, err
	}

	return dto.FromModelToCommentResponse(comment), nil
}

func (s *commentService) Delete(caller Caller, commentID int64) error {
	comment, err := s.commentRepo.FindByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if !canModifyOwned(caller, comment.CreatorID) {
		return ErrPermissionDenied
	}

	return s.commentRepo.Delete(commentID)
}

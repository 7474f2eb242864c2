package service

import (
	"errors"

	"eduground/internal/httpapi/dto"
	"eduground/internal/httpapi/models"
	"eduground/internal/httpapi/repository"

	"gorm.io/gorm"
)

type RatingService interface {
	List(filter repository.RatingFilter, page int) (*dto.PaginatedRatingResponse, error)
	Get(ratingID int64) (*dto.RatingResponse, error)
	Create(caller Caller, req dto.CreateRatingDTO) (*dto.RatingResponse, error)
	Update(caller Caller, ratingID int64, req dto.UpdateRatingDTO) (*dto.RatingResponse, error)
	Delete(caller Caller, ratingID int64) error
}

type ratingService struct {
	ratingRepo repository.RatingRepository
	lessonRepo repository.LessonRepository
	pageSize   int
}

func NewRatingService(ratingRepo repository.RatingRepository, lessonRepo repository.LessonRepository, pageSize int) RatingService {
	return &ratingService{
		ratingRepo: ratingRepo,
		lessonRepo: lessonRepo,
		pageSize:   pageSize,
	}
}

func (s *ratingService) List(filter repository.RatingFilter, page int) (*dto.PaginatedRatingResponse, error) {
	ratings, total, err := s.ratingRepo.List(filter, page, s.pageSize)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.RatingResponse, 0, len(ratings))
	for i := range ratings {
		responses = append(responses, *dto.FromModelToRatingResponse(&ratings[i]))
	}

	return dto.NewPaginatedRatingResponse(responses, int(total), page, s.pageSize), nil
}

func (s *ratingService) Get(ratingID int64) (*dto.RatingResponse, error) {
	rating, err := s.ratingRepo.FindByID(ratingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return dto.FromModelToRatingResponse(rating), nil
}

// Create records a like/dislike on a lesson. The creator is always the
// caller. A user may rate the same lesson more than once; the derived
// percentage simply counts rows.
func (s *ratingService) Create(caller Caller, req dto.CreateRatingDTO) (*dto.RatingResponse, error) {
	if _, err := s.lessonRepo.FindByID(req.Lesson); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	rating := &models.Rating{
		LessonID:  req.Lesson,
		CreatorID: caller.ID,
		Liked:     *req.Liked,
	}
	if err := s.ratingRepo.Create(rating); err != nil {
		return nil, err
	}

	return dto.FromModelToRatingResponse(rating), nil
}

func (s *ratingService) Update(caller Caller, ratingID int64, req dto.UpdateRatingDTO) (*dto.RatingResponse, error) {
	rating, err := s.ratingRepo.FindByID(ratingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if !canModifyOwned(caller, rating.CreatorID) {
		return nil, ErrPermissionDenied
	}

	rating.Liked = *req.Liked
	if err := s.ratingRepo.Update(rating); err != nil {
		return nil, err
	}

	return dto.FromModelToRatingResponse(rating), nil
}

func (s *ratingService) Delete(caller Caller, ratingID int64) error {
	rating, err := s.ratingRepo.FindByID(ratingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if !canModifyOwned(caller, rating.CreatorID) {
		return ErrPermissionDenied
	}

	return s.ratingRepo.Delete(ratingID)
}

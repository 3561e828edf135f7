package service

import (
	"errors"

	"github.com/emzola/kritika/data"
	"github.com/emzola/kritika/internal/validator"
	"github.com/emzola/kritika/repository"
)

type reviews interface {
	CreateReview(titleID int64, userID int64, text string, score int8) (*data.Review, error)
	ShowReview(titleID, reviewID int64) (*data.Review, error)
	ListReviews(titleID int64, filters data.Filters) ([]*data.Review, data.Metadata, error)
	UpdateReview(titleID, reviewID int64, text *string, score *int8) (*data.Review, error)
	DeleteReview(titleID, reviewID int64) error
}

// CreateReview service creates a review for a title. Each user gets exactly
// one review per title; the database constraint backs this up, so concurrent
// submissions cannot slip a second one through.
func (s *service) CreateReview(titleID int64, userID int64, text string, score int8) (*data.Review, error) {
	_, err := s.repo.GetTitle(titleID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	review := &data.Review{
		TitleID: titleID,
		UserID:  userID,
		Text:    text,
		Score:   score,
	}
	v := validator.New()
	if data.ValidateReview(v, review); !v.Valid() {
		ErrFailedValidation = s.failedValidation(v.Errors)
		return nil, ErrFailedValidation
	}
	err = s.repo.CreateReview(review)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateRecord):
			return nil, ErrDuplicateRecord
		default:
			return nil, err
		}
	}
	// Re-fetch to pick up the author username from the users join.
	review, err = s.repo.GetReview(titleID, review.ID)
	if err != nil {
		return nil, err
	}
	return review, nil
}

// ShowReview service retrieves the details of a review.
func (s *service) ShowReview(titleID, reviewID int64) (*data.Review, error) {
	review, err := s.repo.GetReview(titleID, reviewID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return review, nil
}

// ListReviews service retrieves a paginated list of all reviews for a title.
func (s *service) ListReviews(titleID int64, filters data.Filters) ([]*data.Review, data.Metadata, error) {
	v := validator.New()
	if data.ValidateFilters(v, filters); !v.Valid() {
		ErrFailedValidation = s.failedValidation(v.Errors)
		return nil, data.Metadata{}, ErrFailedValidation
	}
	_, err := s.repo.GetTitle(titleID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, data.Metadata{}, ErrRecordNotFound
		default:
			return nil, data.Metadata{}, err
		}
	}
	reviews, metadata, err := s.repo.GetAllReviewsForTitle(titleID, filters)
	if err != nil {
		return nil, data.Metadata{}, err
	}
	return reviews, metadata, nil
}

// UpdateReview service updates the details of a review.
func (s *service) UpdateReview(titleID, reviewID int64, text *string, score *int8) (*data.Review, error) {
	review, err := s.repo.GetReview(titleID, reviewID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	if text != nil {
		review.Text = *text
	}
	if score != nil {
		review.Score = *score
	}
	v := validator.New()
	if data.ValidateReview(v, review); !v.Valid() {
		ErrFailedValidation = s.failedValidation(v.Errors)
		return nil, ErrFailedValidation
	}
	err = s.repo.UpdateReview(review)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrEditConflict):
			return nil, ErrEditConflict
		default:
			return nil, err
		}
	}
	return review, nil
}

// DeleteReview service deletes a review together with its comments.
func (s *service) DeleteReview(titleID, reviewID int64) error {
	err := s.repo.DeleteReview(titleID, reviewID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return ErrRecordNotFound
		default:
			return err
		}
	}
	return nil
}

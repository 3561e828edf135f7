package service

import (
	"errors"

	"github.com/emzola/kritika/data"
	"github.com/emzola/kritika/internal/validator"
	"github.com/emzola/kritika/repository"
)

type comments interface {
	CreateComment(titleID, reviewID int64, userID int64, text string) (*data.Comment, error)
	ShowComment(titleID, reviewID, commentID int64) (*data.Comment, error)
	ListComments(titleID, reviewID int64, filters data.Filters) ([]*data.Comment, data.Metadata, error)
	UpdateComment(titleID, reviewID, commentID int64, text *string) (*data.Comment, error)
	DeleteComment(titleID, reviewID, commentID int64) error
}

// CreateComment service creates a comment on a review. There is no limit on
// how many comments a user may leave.
func (s *service) CreateComment(titleID, reviewID int64, userID int64, text string) (*data.Comment, error) {
	_, err := s.repo.GetReview(titleID, reviewID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	comment := &data.Comment{
		ReviewID: reviewID,
		UserID:   userID,
		Text:     text,
	}
	v := validator.New()
	if data.ValidateComment(v, comment); !v.Valid() {
		ErrFailedValidation = s.failedValidation(v.Errors)
		return nil, ErrFailedValidation
	}
	err = s.repo.CreateComment(comment)
	if err != nil {
		return nil, err
	}
	comment, err = s.repo.GetComment(reviewID, comment.ID)
	if err != nil {
		return nil, err
	}
	return comment, nil
}

// ShowComment service retrieves the details of a comment. The review is
// resolved first so a comment can never be read through the wrong title.
func (s *service) ShowComment(titleID, reviewID, commentID int64) (*data.Comment, error) {
	_, err := s.repo.GetReview(titleID, reviewID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	comment, err := s.repo.GetComment(reviewID, commentID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return comment, nil
}

// ListComments service retrieves a paginated list of all comments for a review.
func (s *service) ListComments(titleID, reviewID int64, filters data.Filters) ([]*data.Comment, data.Metadata, error) {
	v := validator.New()
	if data.ValidateFilters(v, filters); !v.Valid() {
		ErrFailedValidation = s.failedValidation(v.Errors)
		return nil, data.Metadata{}, ErrFailedValidation
	}
	_, err := s.repo.GetReview(titleID, reviewID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, data.Metadata{}, ErrRecordNotFound
		default:
			return nil, data.Metadata{}, err
		}
	}
	comments, metadata, err := s.repo.GetAllCommentsForReview(reviewID, filters)
	if err != nil {
		return nil, data.Metadata{}, err
	}
	return comments, metadata, nil
}

// UpdateComment service updates the details of a comment.
func (s *service) UpdateComment(titleID, reviewID, commentID int64, text *string) (*data.Comment, error) {
	comment, err := s.ShowComment(titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}
	if text != nil {
		comment.Text = *text
	}
	v := validator.New()
	if data.ValidateComment(v, comment); !v.Valid() {
		ErrFailedValidation = s.failedValidation(v.Errors)
		return nil, ErrFailedValidation
	}
	err = s.repo.UpdateComment(comment)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrEditConflict):
			return nil, ErrEditConflict
		default:
			return nil, err
		}
	}
	return comment, nil
}

// DeleteComment service deletes a comment.
func (s *service) DeleteComment(titleID, reviewID, commentID int64) error {
	_, err := s.repo.GetReview(titleID, reviewID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return ErrRecordNotFound
		default:
			return err
		}
	}
	err = s.repo.DeleteComment(reviewID, commentID)
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

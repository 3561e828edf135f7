package service

import (
	"errors"

	"github.com/emzola/kritika/data"
	"github.com/emzola/kritika/internal/validator"
	"github.com/emzola/kritika/repository"
)

type genres interface {
	CreateGenre(name string, slug string) (*data.Genre, error)
	ListGenres(search string) ([]*data.Genre, error)
	DeleteGenre(slug string) error
}

// CreateGenre service creates a new genre.
func (s *service) CreateGenre(name string, slug string) (*data.Genre, error) {
	genre := &data.Genre{
		Name: name,
		Slug: slug,
	}
	v := validator.New()
	if data.ValidateGenre(v, genre); !v.Valid() {
		ErrFailedValidation = s.failedValidation(v.Errors)
		return nil, ErrFailedValidation
	}
	err := s.repo.CreateGenre(genre)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateRecord):
			v.AddError("slug", "a genre with this slug already exists")
			ErrFailedValidation = s.failedValidation(v.Errors)
			return nil, ErrFailedValidation
		default:
			return nil, err
		}
	}
	return genre, nil
}

// ListGenres service retrieves a list of genres. Records can be searched by name.
func (s *service) ListGenres(search string) ([]*data.Genre, error) {
	genres, err := s.repo.GetAllGenres(search)
	if err != nil {
		return nil, err
	}
	return genres, nil
}

// DeleteGenre service deletes a genre. Titles tagged with it are detached,
// not deleted.
func (s *service) DeleteGenre(slug string) error {
	err := s.repo.DeleteGenre(slug)
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

package service

import (
	"errors"

	"github.com/emzola/kritika/data"
	"github.com/emzola/kritika/internal/validator"
	"github.com/emzola/kritika/repository"
)

type titles interface {
	CreateTitle(name string, year int32, description string, categorySlug string, genreSlugs []string) (*data.Title, error)
	ShowTitle(titleID int64) (*data.Title, error)
	ListTitles(name, category, genre string, year int, filters data.Filters) ([]*data.Title, data.Metadata, error)
	UpdateTitle(titleID int64, name *string, year *int32, description *string, categorySlug *string, genreSlugs []string) (*data.Title, error)
	DeleteTitle(titleID int64) error
}

// CreateTitle service creates a new title. The category and genres are
// referenced by slug; an unknown category slug fails validation.
func (s *service) CreateTitle(name string, year int32, description string, categorySlug string, genreSlugs []string) (*data.Title, error) {
	title := &data.Title{
		Name:        name,
		Year:        year,
		Description: description,
		Category:    data.Category{Slug: categorySlug},
	}
	for _, slug := range genreSlugs {
		title.Genres = append(title.Genres, data.Genre{Slug: slug})
	}
	v := validator.New()
	if data.ValidateTitle(v, title); !v.Valid() {
		ErrFailedValidation = s.failedValidation(v.Errors)
		return nil, ErrFailedValidation
	}
	err := s.repo.CreateTitle(title)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			v.AddError("category", "no category with this slug exists")
			ErrFailedValidation = s.failedValidation(v.Errors)
			return nil, ErrFailedValidation
		default:
			return nil, err
		}
	}
	err = s.repo.AddGenresForTitle(title.ID, genreSlugs)
	if err != nil {
		return nil, err
	}
	// Re-fetch so the response carries the resolved category, genres and the
	// (nil) rating.
	title, err = s.repo.GetTitle(title.ID)
	if err != nil {
		return nil, err
	}
	return title, nil
}

// ShowTitle service retrieves the details of a title.
func (s *service) ShowTitle(titleID int64) (*data.Title, error) {
	title, err := s.repo.GetTitle(titleID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return title, nil
}

// ListTitles service retrieves a paginated list of all titles. Records can be
// filtered by name, category slug, genre slug and year, and sorted.
func (s *service) ListTitles(name, category, genre string, year int, filters data.Filters) ([]*data.Title, data.Metadata, error) {
	v := validator.New()
	if data.ValidateFilters(v, filters); !v.Valid() {
		ErrFailedValidation = s.failedValidation(v.Errors)
		return nil, data.Metadata{}, ErrFailedValidation
	}
	titles, metadata, err := s.repo.GetAllTitles(name, category, genre, year, filters)
	if err != nil {
		return nil, data.Metadata{}, err
	}
	return titles, metadata, nil
}

// UpdateTitle service updates the details of a title. A nil genre slice keeps
// the existing genres; a non-nil one replaces them wholesale.
func (s *service) UpdateTitle(titleID int64, name *string, year *int32, description *string, categorySlug *string, genreSlugs []string) (*data.Title, error) {
	title, err := s.repo.GetTitle(titleID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	if name != nil {
		title.Name = *name
	}
	if year != nil {
		title.Year = *year
	}
	if description != nil {
		title.Description = *description
	}
	if categorySlug != nil {
		title.Category = data.Category{Slug: *categorySlug}
	}
	if genreSlugs != nil {
		title.Genres = nil
		for _, slug := range genreSlugs {
			title.Genres = append(title.Genres, data.Genre{Slug: slug})
		}
	}
	v := validator.New()
	if data.ValidateTitle(v, title); !v.Valid() {
		ErrFailedValidation = s.failedValidation(v.Errors)
		return nil, ErrFailedValidation
	}
	err = s.repo.UpdateTitle(title)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrEditConflict):
			return nil, ErrEditConflict
		case errors.Is(err, repository.ErrRecordNotFound):
			v.AddError("category", "no category with this slug exists")
			ErrFailedValidation = s.failedValidation(v.Errors)
			return nil, ErrFailedValidation
		default:
			return nil, err
		}
	}
	if genreSlugs != nil {
		err = s.repo.DeleteGenresForTitle(title.ID)
		if err != nil {
			return nil, err
		}
		err = s.repo.AddGenresForTitle(title.ID, genreSlugs)
		if err != nil {
			return nil, err
		}
	}
	title, err = s.repo.GetTitle(title.ID)
	if err != nil {
		return nil, err
	}
	return title, nil
}

// DeleteTitle service deletes a title together with its reviews and comments.
func (s *service) DeleteTitle(titleID int64) error {
	err := s.repo.DeleteTitle(titleID)
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

package service

import (
	"errors"

	"github.com/emzola/kritika/data"
	"github.com/emzola/kritika/internal/validator"
	"github.com/emzola/kritika/repository"
)

type categories interface {
	CreateCategory(name string, slug string) (*data.Category, error)
	ListCategories(search string) ([]*data.Category, error)
	DeleteCategory(slug string) error
}

// CreateCategory service creates a new category.
func (s *service) CreateCategory(name string, slug string) (*data.Category, error) {
	category := &data.Category{
		Name: name,
		Slug: slug,
	}
	v := validator.New()
	if data.ValidateCategory(v, category); !v.Valid() {
		ErrFailedValidation = s.failedValidation(v.Errors)
		return nil, ErrFailedValidation
	}
	err := s.repo.CreateCategory(category)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateRecord):
			v.AddError("slug", "a category with this slug already exists")
			ErrFailedValidation = s.failedValidation(v.Errors)
			return nil, ErrFailedValidation
		default:
			return nil, err
		}
	}
	return category, nil
}

// ListCategories service retrieves a list of categories. Records can be
// searched by name.
func (s *service) ListCategories(search string) ([]*data.Category, error) {
	categories, err := s.repo.GetAllCategories(search)
	if err != nil {
		return nil, err
	}
	return categories, nil
}

// DeleteCategory service deletes a category. Titles keep existing; their
// category falls back to the default at the database level. The default
// category itself cannot be deleted since it is the fallback target.
func (s *service) DeleteCategory(slug string) error {
	if slug == data.DefaultCategorySlug {
		v := validator.New()
		v.AddError("slug", "the default category cannot be deleted")
		ErrFailedValidation = s.failedValidation(v.Errors)
		return ErrFailedValidation
	}
	err := s.repo.DeleteCategory(slug)
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

package service

import (
	"errors"
	"testing"

	"github.com/emzola/kritika/data"
	"github.com/emzola/kritika/repository"
)

func TestDeleteCategory(t *testing.T) {
	t.Run("the default category cannot be deleted", func(t *testing.T) {
		var deleted bool
		repo := &mockRepository{
			deleteCategory: func(slug string) error {
				deleted = true
				return nil
			},
		}
		s := newTestService(repo)
		err := s.DeleteCategory(data.DefaultCategorySlug)
		if !errors.Is(err, ErrFailedValidation) {
			t.Fatalf("want validation failure, got %v", err)
		}
		if deleted {
			t.Error("the repository should not have been called")
		}
	})

	t.Run("an ordinary category is deleted", func(t *testing.T) {
		repo := &mockRepository{
			deleteCategory: func(slug string) error {
				if slug != "films" {
					t.Errorf("want slug %q, got %q", "films", slug)
				}
				return nil
			},
		}
		s := newTestService(repo)
		if err := s.DeleteCategory("films"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("an unknown category is reported as not found", func(t *testing.T) {
		repo := &mockRepository{
			deleteCategory: func(slug string) error {
				return repository.ErrRecordNotFound
			},
		}
		s := newTestService(repo)
		err := s.DeleteCategory("no-such-slug")
		if !errors.Is(err, ErrRecordNotFound) {
			t.Fatalf("want ErrRecordNotFound, got %v", err)
		}
	})
}

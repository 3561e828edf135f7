package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/emzola/kritika/data"
	"github.com/emzola/kritika/repository"
)

func TestCreateTitle(t *testing.T) {
	t.Run("future year fails validation", func(t *testing.T) {
		s := newTestService(&mockRepository{})
		year := int32(time.Now().Year() + 1)
		_, err := s.CreateTitle("Animal Farm", year, "", "books", nil)
		if !errors.Is(err, ErrFailedValidation) {
			t.Fatalf("want ErrFailedValidation, got %v", err)
		}
	})

	t.Run("unknown category slug fails validation", func(t *testing.T) {
		repo := &mockRepository{
			createTitle: func(title *data.Title) error {
				return repository.ErrRecordNotFound
			},
		}
		s := newTestService(repo)
		_, err := s.CreateTitle("Animal Farm", 1945, "", "no-such-slug", nil)
		if !errors.Is(err, ErrFailedValidation) {
			t.Fatalf("want ErrFailedValidation, got %v", err)
		}
	})

	t.Run("new title has a nil rating", func(t *testing.T) {
		repo := &mockRepository{
			createTitle: func(title *data.Title) error {
				title.ID = 1
				return nil
			},
			getTitle: func(ID int64) (*data.Title, error) {
				return &data.Title{
					ID:       ID,
					Name:     "Animal Farm",
					Year:     1945,
					Category: data.Category{Name: "Books", Slug: "books"},
				}, nil
			},
		}
		s := newTestService(repo)
		title, err := s.CreateTitle("Animal Farm", 1945, "", "books", []string{"satire"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if title.Rating != nil {
			t.Errorf("want nil rating for an unreviewed title, got %v", *title.Rating)
		}
	})

	t.Run("duplicate genre slugs fail validation", func(t *testing.T) {
		s := newTestService(&mockRepository{})
		_, err := s.CreateTitle("Animal Farm", 1945, "", "books", []string{"satire", "satire"})
		if !errors.Is(err, ErrFailedValidation) {
			t.Fatalf("want ErrFailedValidation, got %v", err)
		}
	})
}

func TestUpdateTitle(t *testing.T) {
	stored := func(ID int64) (*data.Title, error) {
		return &data.Title{
			ID:       ID,
			Name:     "Animal Farm",
			Year:     1945,
			Category: data.Category{Name: "Books", Slug: "books"},
			Genres:   []data.Genre{{Name: "Satire", Slug: "satire"}},
		}, nil
	}

	t.Run("nil genre slice keeps existing genres", func(t *testing.T) {
		var replaced bool
		repo := &mockRepository{
			getTitle:    stored,
			updateTitle: func(title *data.Title) error { return nil },
			delGenresForTitle: func(titleID int64) error {
				replaced = true
				return nil
			},
		}
		s := newTestService(repo)
		name := "Animal Farm (anniversary edition)"
		_, err := s.UpdateTitle(1, &name, nil, nil, nil, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if replaced {
			t.Error("genres must not be touched when the patch omits them")
		}
	})

	t.Run("non-nil genre slice replaces genres wholesale", func(t *testing.T) {
		var deleted, added bool
		repo := &mockRepository{
			getTitle:    stored,
			updateTitle: func(title *data.Title) error { return nil },
			delGenresForTitle: func(titleID int64) error {
				deleted = true
				return nil
			},
			addGenresForTitle: func(titleID int64, slugs []string) error {
				added = true
				return nil
			},
		}
		s := newTestService(repo)
		_, err := s.UpdateTitle(1, nil, nil, nil, nil, []string{"fable"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !deleted || !added {
			t.Error("genres must be replaced when the patch includes them")
		}
	})

	t.Run("unknown category slug fails validation", func(t *testing.T) {
		repo := &mockRepository{
			getTitle: stored,
			updateTitle: func(title *data.Title) error {
				return repository.ErrRecordNotFound
			},
		}
		s := newTestService(repo)
		slug := "no-such-slug"
		_, err := s.UpdateTitle(1, nil, nil, nil, &slug, nil)
		if !errors.Is(err, ErrFailedValidation) {
			t.Fatalf("want ErrFailedValidation, got %v", err)
		}
		if !strings.Contains(err.Error(), "no category with this slug exists") {
			t.Errorf("unexpected message: %q", err)
		}
	})
}

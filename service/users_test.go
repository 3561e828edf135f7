package service

import (
	"errors"
	"testing"

	"github.com/emzola/kritika/data"
)

func TestUpdateOwnProfile(t *testing.T) {
	stored := func() *data.User {
		return &data.User{
			ID:       1,
			Username: "alice",
			Email:    "alice@example.com",
			Bio:      "original bio",
			Role:     data.RoleUser,
		}
	}

	t.Run("user role sending a role field gets nothing applied", func(t *testing.T) {
		var updated bool
		repo := &mockRepository{
			getUserByID: func(ID int64) (*data.User, error) {
				return stored(), nil
			},
			updateUser: func(user *data.User) error {
				updated = true
				return nil
			},
		}
		s := newTestService(repo)
		bio := "new bio"
		role := "admin"
		user, err := s.UpdateOwnProfile(1, nil, nil, nil, &bio, &role)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if updated {
			t.Error("nothing in the patch should have been persisted")
		}
		if user.Bio != "original bio" {
			t.Errorf("want unmodified bio, got %q", user.Bio)
		}
		if user.Role != data.RoleUser {
			t.Errorf("want role %q, got %q", data.RoleUser, user.Role)
		}
	})

	t.Run("user role without a role field gets the patch applied", func(t *testing.T) {
		var updated bool
		repo := &mockRepository{
			getUserByID: func(ID int64) (*data.User, error) {
				return stored(), nil
			},
			updateUser: func(user *data.User) error {
				updated = true
				return nil
			},
		}
		s := newTestService(repo)
		bio := "new bio"
		user, err := s.UpdateOwnProfile(1, nil, nil, nil, &bio, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !updated {
			t.Error("the patch should have been persisted")
		}
		if user.Bio != "new bio" {
			t.Errorf("want updated bio, got %q", user.Bio)
		}
	})

	t.Run("admin can change their own role", func(t *testing.T) {
		repo := &mockRepository{
			getUserByID: func(ID int64) (*data.User, error) {
				u := stored()
				u.Role = data.RoleAdmin
				return u, nil
			},
			updateUser: func(user *data.User) error {
				return nil
			},
		}
		s := newTestService(repo)
		role := "moderator"
		user, err := s.UpdateOwnProfile(1, nil, nil, nil, nil, &role)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if user.Role != data.RoleModerator {
			t.Errorf("want role %q, got %q", data.RoleModerator, user.Role)
		}
	})
}

func TestCreateUser(t *testing.T) {
	t.Run("unknown role fails validation", func(t *testing.T) {
		s := newTestService(&mockRepository{})
		role := "owner"
		_, err := s.CreateUser("bob", "bob@example.com", nil, nil, nil, &role)
		if !errors.Is(err, ErrFailedValidation) {
			t.Fatalf("want ErrFailedValidation, got %v", err)
		}
	})

	t.Run("role defaults to user when omitted", func(t *testing.T) {
		repo := &mockRepository{
			createUser: func(user *data.User) error {
				return nil
			},
		}
		s := newTestService(repo)
		user, err := s.CreateUser("bob", "bob@example.com", nil, nil, nil, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if user.Role != data.RoleUser {
			t.Errorf("want role %q, got %q", data.RoleUser, user.Role)
		}
	})

	t.Run("admin role can be assigned at creation", func(t *testing.T) {
		repo := &mockRepository{
			createUser: func(user *data.User) error {
				return nil
			},
		}
		s := newTestService(repo)
		role := "admin"
		user, err := s.CreateUser("bob", "bob@example.com", nil, nil, nil, &role)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if user.Role != data.RoleAdmin {
			t.Errorf("want role %q, got %q", data.RoleAdmin, user.Role)
		}
	})
}

func TestDeleteUser(t *testing.T) {
	t.Run("unknown username is not found", func(t *testing.T) {
		s := newTestService(&mockRepository{})
		err := s.DeleteUser("ghost")
		if !errors.Is(err, ErrRecordNotFound) {
			t.Fatalf("want ErrRecordNotFound, got %v", err)
		}
	})
}

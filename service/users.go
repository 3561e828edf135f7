package service

import (
	"errors"

	"github.com/emzola/kritika/data"
	"github.com/emzola/kritika/internal/validator"
	"github.com/emzola/kritika/repository"
)

type users interface {
	CreateUser(username string, email string, firstName, lastName, bio, role *string) (*data.User, error)
	ListUsers(search string, filters data.Filters) ([]*data.User, data.Metadata, error)
	ShowUser(username string) (*data.User, error)
	ShowUserByID(ID int64) (*data.User, error)
	UpdateUser(username string, email, firstName, lastName, bio, role *string) (*data.User, error)
	DeleteUser(username string) error
	UpdateOwnProfile(ID int64, email, firstName, lastName, bio, role *string) (*data.User, error)
}

// CreateUser service creates a user through the admin surface. Unlike signup,
// any role can be assigned at creation.
func (s *service) CreateUser(username string, email string, firstName, lastName, bio, role *string) (*data.User, error) {
	user := &data.User{
		Username: username,
		Email:    email,
		Role:     data.RoleUser,
	}
	if firstName != nil {
		user.FirstName = *firstName
	}
	if lastName != nil {
		user.LastName = *lastName
	}
	if bio != nil {
		user.Bio = *bio
	}
	if role != nil {
		user.Role = data.Role(*role)
	}
	v := validator.New()
	if data.ValidateUser(v, user); !v.Valid() {
		ErrFailedValidation = s.failedValidation(v.Errors)
		return nil, ErrFailedValidation
	}
	err := s.repo.CreateUser(user)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateUsername):
			v.AddError("username", "a user with this username already exists")
			ErrFailedValidation = s.failedValidation(v.Errors)
			return nil, ErrFailedValidation
		case errors.Is(err, repository.ErrDuplicateEmail):
			v.AddError("email", "a user with this email address already exists")
			ErrFailedValidation = s.failedValidation(v.Errors)
			return nil, ErrFailedValidation
		default:
			return nil, err
		}
	}
	return user, nil
}

// ListUsers service retrieves a paginated list of all users. Records can be
// searched by username and sorted.
func (s *service) ListUsers(search string, filters data.Filters) ([]*data.User, data.Metadata, error) {
	v := validator.New()
	if data.ValidateFilters(v, filters); !v.Valid() {
		ErrFailedValidation = s.failedValidation(v.Errors)
		return nil, data.Metadata{}, ErrFailedValidation
	}
	users, metadata, err := s.repo.GetAllUsers(search, filters)
	if err != nil {
		return nil, data.Metadata{}, err
	}
	return users, metadata, nil
}

// ShowUser service shows the details of a specific user.
func (s *service) ShowUser(username string) (*data.User, error) {
	user, err := s.repo.GetUserByUsername(username)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return user, nil
}

// ShowUserByID service shows the details of a specific user by ID.
func (s *service) ShowUserByID(ID int64) (*data.User, error) {
	user, err := s.repo.GetUserByID(ID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return user, nil
}

// UpdateUser service updates a user through the admin surface. Any field may
// change, including role.
func (s *service) UpdateUser(username string, email, firstName, lastName, bio, role *string) (*data.User, error) {
	user, err := s.repo.GetUserByUsername(username)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	if email != nil {
		user.Email = *email
	}
	if firstName != nil {
		user.FirstName = *firstName
	}
	if lastName != nil {
		user.LastName = *lastName
	}
	if bio != nil {
		user.Bio = *bio
	}
	if role != nil {
		user.Role = data.Role(*role)
	}
	v := validator.New()
	if data.ValidateUser(v, user); !v.Valid() {
		ErrFailedValidation = s.failedValidation(v.Errors)
		return nil, ErrFailedValidation
	}
	err = s.repo.UpdateUser(user)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateEmail):
			v.AddError("email", "a user with this email address already exists")
			ErrFailedValidation = s.failedValidation(v.Errors)
			return nil, ErrFailedValidation
		case errors.Is(err, repository.ErrEditConflict):
			return nil, ErrEditConflict
		default:
			return nil, err
		}
	}
	return user, nil
}

// DeleteUser service deletes a user through the admin surface.
func (s *service) DeleteUser(username string) error {
	user, err := s.repo.GetUserByUsername(username)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return ErrRecordNotFound
		default:
			return err
		}
	}
	err = s.repo.DeleteUser(user.ID)
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

// UpdateOwnProfile service updates the authenticated user's own profile. A
// requester holding the user role cannot change their role: if the patch
// carries a non-null role field, the entire patch is discarded and the stored
// profile is returned unmodified.
func (s *service) UpdateOwnProfile(ID int64, email, firstName, lastName, bio, role *string) (*data.User, error) {
	user, err := s.repo.GetUserByID(ID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	if user.IsUser() && role != nil {
		return user, nil
	}
	if email != nil {
		user.Email = *email
	}
	if firstName != nil {
		user.FirstName = *firstName
	}
	if lastName != nil {
		user.LastName = *lastName
	}
	if bio != nil {
		user.Bio = *bio
	}
	if role != nil {
		user.Role = data.Role(*role)
	}
	v := validator.New()
	if data.ValidateUser(v, user); !v.Valid() {
		ErrFailedValidation = s.failedValidation(v.Errors)
		return nil, ErrFailedValidation
	}
	err = s.repo.UpdateUser(user)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateEmail):
			v.AddError("email", "a user with this email address already exists")
			ErrFailedValidation = s.failedValidation(v.Errors)
			return nil, ErrFailedValidation
		case errors.Is(err, repository.ErrEditConflict):
			return nil, ErrEditConflict
		default:
			return nil, err
		}
	}
	return user, nil
}

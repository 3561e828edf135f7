package service

import (
	"errors"
	"strings"
	"time"

	"github.com/emzola/kritika/data"
	"github.com/emzola/kritika/internal/mailer"
	"github.com/emzola/kritika/internal/token"
	"github.com/emzola/kritika/internal/validator"
	"github.com/emzola/kritika/repository"
)

type auth interface {
	Signup(username string, email string) (*data.User, error)
	ObtainAccessToken(username string, code string) (string, error)
}

// Signup service registers a user and emails them a confirmation code. If a
// user with the same username AND email already exists, a fresh code is still
// generated and dispatched, but the call fails with a duplicate-record error
// so the client sees the repeat signup.
func (s *service) Signup(username string, email string) (*data.User, error) {
	v := validator.New()
	data.ValidateUsername(v, username)
	data.ValidateEmail(v, email)
	v.Check(!strings.EqualFold(username, email), "username", "must not be the same as the email address")
	if !v.Valid() {
		ErrFailedValidation = s.failedValidation(v.Errors)
		return nil, ErrFailedValidation
	}
	exists, err := s.repo.UserExists(username, email)
	if err != nil {
		return nil, err
	}
	if exists {
		user, err := s.repo.GetUserByUsername(username)
		if err != nil {
			return nil, err
		}
		err = s.dispatchConfirmationCode(user)
		if err != nil {
			return nil, err
		}
		v.AddError("username", "a user with this username and email address is already registered")
		ErrDuplicateRecord = s.failedValidation(v.Errors)
		return nil, ErrDuplicateRecord
	}
	user := &data.User{
		Username: username,
		Email:    email,
		Role:     data.RoleUser,
	}
	err = s.repo.CreateUser(user)
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
	err = s.dispatchConfirmationCode(user)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// dispatchConfirmationCode generates a new confirmation code for a user and
// emails it in a background goroutine to speed up response time.
func (s *service) dispatchConfirmationCode(user *data.User) error {
	code, err := s.repo.CreateNewToken(user.ID, 3*24*time.Hour, data.ScopeConfirmation)
	if err != nil {
		return err
	}
	s.background(func() {
		data := map[string]string{
			"username":         user.Username,
			"confirmationCode": code.Plaintext,
		}
		mailer := mailer.New(s.config.SMTP.Host, s.config.SMTP.Port, s.config.SMTP.Username, s.config.SMTP.Password, s.config.SMTP.Sender)
		err := mailer.Send(user.Email, "confirmation_code.tmpl", data)
		if err != nil {
			s.logger.PrintError(err, nil)
		}
	})
	return nil
}

// ObtainAccessToken service exchanges a confirmation code for a signed access
// token. An unknown username is a not-found error; a code that doesn't belong
// to the user, or has expired, fails validation. Redeeming a code deletes all
// outstanding codes for the user.
func (s *service) ObtainAccessToken(username string, code string) (string, error) {
	v := validator.New()
	data.ValidateUsername(v, username)
	data.ValidateCodePlaintext(v, code)
	if !v.Valid() {
		ErrFailedValidation = s.failedValidation(v.Errors)
		return "", ErrFailedValidation
	}
	user, err := s.repo.GetUserByUsername(username)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return "", ErrRecordNotFound
		default:
			return "", err
		}
	}
	codeUser, err := s.repo.GetUserForToken(data.ScopeConfirmation, code)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			v.AddError("confirmation_code", "invalid or expired confirmation code")
			ErrFailedValidation = s.failedValidation(v.Errors)
			return "", ErrFailedValidation
		default:
			return "", err
		}
	}
	if codeUser.ID != user.ID {
		v.AddError("confirmation_code", "invalid or expired confirmation code")
		ErrFailedValidation = s.failedValidation(v.Errors)
		return "", ErrFailedValidation
	}
	ttl, err := time.ParseDuration(s.config.JWT.TTL)
	if err != nil {
		return "", err
	}
	signer := token.NewSigner(s.config.JWT.Secret, s.config.JWT.Issuer, ttl)
	accessToken, err := signer.Sign(user.ID)
	if err != nil {
		return "", err
	}
	err = s.repo.DeleteAllTokensForUser(data.ScopeConfirmation, user.ID)
	if err != nil {
		return "", err
	}
	return accessToken, nil
}

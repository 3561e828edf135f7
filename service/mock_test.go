package service

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base32"
	"time"

	"github.com/emzola/kritika/data"
	"github.com/emzola/kritika/repository"
)

// mockRepository satisfies repository.Repository with overridable func
// fields. Methods a test doesn't override fail with ErrRecordNotFound rather
// than panicking, so unset paths surface as ordinary errors.
type mockRepository struct {
	createUser             func(user *data.User) error
	getUserByID            func(ID int64) (*data.User, error)
	getUserByUsername      func(username string) (*data.User, error)
	userExists             func(username, email string) (bool, error)
	getAllUsers            func(search string, filters data.Filters) ([]*data.User, data.Metadata, error)
	updateUser             func(user *data.User) error
	deleteUser             func(ID int64) error
	getUserForToken        func(scope, plaintext string) (*data.User, error)
	createNewToken         func(userID int64, ttl time.Duration, scope string) (*data.Token, error)
	deleteAllTokensForUser func(scope string, userID int64) error

	createCategory   func(category *data.Category) error
	getCategory      func(slug string) (*data.Category, error)
	getAllCategories func(name string) ([]*data.Category, error)
	deleteCategory   func(slug string) error

	createGenre  func(genre *data.Genre) error
	getGenre     func(slug string) (*data.Genre, error)
	getAllGenres func(name string) ([]*data.Genre, error)
	deleteGenre  func(slug string) error

	createTitle       func(title *data.Title) error
	getTitle          func(ID int64) (*data.Title, error)
	getAllTitles      func(name, category, genre string, year int, filters data.Filters) ([]*data.Title, data.Metadata, error)
	updateTitle       func(title *data.Title) error
	deleteTitle       func(ID int64) error
	addGenresForTitle func(titleID int64, slugs []string) error
	delGenresForTitle func(titleID int64) error
	getGenresForTitle func(titleID int64) ([]data.Genre, error)

	createReview          func(review *data.Review) error
	getReview             func(titleID, reviewID int64) (*data.Review, error)
	getAllReviewsForTitle func(titleID int64, filters data.Filters) ([]*data.Review, data.Metadata, error)
	updateReview          func(review *data.Review) error
	deleteReview          func(titleID, reviewID int64) error

	createComment           func(comment *data.Comment) error
	getComment              func(reviewID, commentID int64) (*data.Comment, error)
	getAllCommentsForReview func(reviewID int64, filters data.Filters) ([]*data.Comment, data.Metadata, error)
	updateComment           func(comment *data.Comment) error
	deleteComment           func(reviewID, commentID int64) error
}

func (m *mockRepository) CreateUser(user *data.User) error {
	if m.createUser == nil {
		return repository.ErrRecordNotFound
	}
	return m.createUser(user)
}

func (m *mockRepository) GetUserByID(ID int64) (*data.User, error) {
	if m.getUserByID == nil {
		return nil, repository.ErrRecordNotFound
	}
	return m.getUserByID(ID)
}

func (m *mockRepository) GetUserByUsername(username string) (*data.User, error) {
	if m.getUserByUsername == nil {
		return nil, repository.ErrRecordNotFound
	}
	return m.getUserByUsername(username)
}

func (m *mockRepository) UserExists(username, email string) (bool, error) {
	if m.userExists == nil {
		return false, nil
	}
	return m.userExists(username, email)
}

func (m *mockRepository) GetAllUsers(search string, filters data.Filters) ([]*data.User, data.Metadata, error) {
	if m.getAllUsers == nil {
		return nil, data.Metadata{}, nil
	}
	return m.getAllUsers(search, filters)
}

func (m *mockRepository) UpdateUser(user *data.User) error {
	if m.updateUser == nil {
		return repository.ErrRecordNotFound
	}
	return m.updateUser(user)
}

func (m *mockRepository) DeleteUser(ID int64) error {
	if m.deleteUser == nil {
		return repository.ErrRecordNotFound
	}
	return m.deleteUser(ID)
}

func (m *mockRepository) GetUserForToken(scope, plaintext string) (*data.User, error) {
	if m.getUserForToken == nil {
		return nil, repository.ErrRecordNotFound
	}
	return m.getUserForToken(scope, plaintext)
}

func (m *mockRepository) CreateNewToken(userID int64, ttl time.Duration, scope string) (*data.Token, error) {
	if m.createNewToken == nil {
		return mockToken(userID, ttl, scope), nil
	}
	return m.createNewToken(userID, ttl, scope)
}

func (m *mockRepository) DeleteAllTokensForUser(scope string, userID int64) error {
	if m.deleteAllTokensForUser == nil {
		return nil
	}
	return m.deleteAllTokensForUser(scope, userID)
}

func (m *mockRepository) CreateCategory(category *data.Category) error {
	if m.createCategory == nil {
		return repository.ErrRecordNotFound
	}
	return m.createCategory(category)
}

func (m *mockRepository) GetCategoryBySlug(slug string) (*data.Category, error) {
	if m.getCategory == nil {
		return nil, repository.ErrRecordNotFound
	}
	return m.getCategory(slug)
}

func (m *mockRepository) GetAllCategories(name string) ([]*data.Category, error) {
	if m.getAllCategories == nil {
		return nil, nil
	}
	return m.getAllCategories(name)
}

func (m *mockRepository) DeleteCategory(slug string) error {
	if m.deleteCategory == nil {
		return repository.ErrRecordNotFound
	}
	return m.deleteCategory(slug)
}

func (m *mockRepository) CreateGenre(genre *data.Genre) error {
	if m.createGenre == nil {
		return repository.ErrRecordNotFound
	}
	return m.createGenre(genre)
}

func (m *mockRepository) GetGenreBySlug(slug string) (*data.Genre, error) {
	if m.getGenre == nil {
		return nil, repository.ErrRecordNotFound
	}
	return m.getGenre(slug)
}

func (m *mockRepository) GetAllGenres(name string) ([]*data.Genre, error) {
	if m.getAllGenres == nil {
		return nil, nil
	}
	return m.getAllGenres(name)
}

func (m *mockRepository) DeleteGenre(slug string) error {
	if m.deleteGenre == nil {
		return repository.ErrRecordNotFound
	}
	return m.deleteGenre(slug)
}

func (m *mockRepository) CreateTitle(title *data.Title) error {
	if m.createTitle == nil {
		return repository.ErrRecordNotFound
	}
	return m.createTitle(title)
}

func (m *mockRepository) GetTitle(ID int64) (*data.Title, error) {
	if m.getTitle == nil {
		return nil, repository.ErrRecordNotFound
	}
	return m.getTitle(ID)
}

func (m *mockRepository) GetAllTitles(name, category, genre string, year int, filters data.Filters) ([]*data.Title, data.Metadata, error) {
	if m.getAllTitles == nil {
		return nil, data.Metadata{}, nil
	}
	return m.getAllTitles(name, category, genre, year, filters)
}

func (m *mockRepository) UpdateTitle(title *data.Title) error {
	if m.updateTitle == nil {
		return repository.ErrRecordNotFound
	}
	return m.updateTitle(title)
}

func (m *mockRepository) DeleteTitle(ID int64) error {
	if m.deleteTitle == nil {
		return repository.ErrRecordNotFound
	}
	return m.deleteTitle(ID)
}

func (m *mockRepository) AddGenresForTitle(titleID int64, slugs []string) error {
	if m.addGenresForTitle == nil {
		return nil
	}
	return m.addGenresForTitle(titleID, slugs)
}

func (m *mockRepository) DeleteGenresForTitle(titleID int64) error {
	if m.delGenresForTitle == nil {
		return nil
	}
	return m.delGenresForTitle(titleID)
}

func (m *mockRepository) GetGenresForTitle(titleID int64) ([]data.Genre, error) {
	if m.getGenresForTitle == nil {
		return nil, nil
	}
	return m.getGenresForTitle(titleID)
}

func (m *mockRepository) CreateReview(review *data.Review) error {
	if m.createReview == nil {
		return repository.ErrRecordNotFound
	}
	return m.createReview(review)
}

func (m *mockRepository) GetReview(titleID, reviewID int64) (*data.Review, error) {
	if m.getReview == nil {
		return nil, repository.ErrRecordNotFound
	}
	return m.getReview(titleID, reviewID)
}

func (m *mockRepository) GetAllReviewsForTitle(titleID int64, filters data.Filters) ([]*data.Review, data.Metadata, error) {
	if m.getAllReviewsForTitle == nil {
		return nil, data.Metadata{}, nil
	}
	return m.getAllReviewsForTitle(titleID, filters)
}

func (m *mockRepository) UpdateReview(review *data.Review) error {
	if m.updateReview == nil {
		return repository.ErrRecordNotFound
	}
	return m.updateReview(review)
}

func (m *mockRepository) DeleteReview(titleID, reviewID int64) error {
	if m.deleteReview == nil {
		return repository.ErrRecordNotFound
	}
	return m.deleteReview(titleID, reviewID)
}

func (m *mockRepository) CreateComment(comment *data.Comment) error {
	if m.createComment == nil {
		return repository.ErrRecordNotFound
	}
	return m.createComment(comment)
}

func (m *mockRepository) GetComment(reviewID, commentID int64) (*data.Comment, error) {
	if m.getComment == nil {
		return nil, repository.ErrRecordNotFound
	}
	return m.getComment(reviewID, commentID)
}

func (m *mockRepository) GetAllCommentsForReview(reviewID int64, filters data.Filters) ([]*data.Comment, data.Metadata, error) {
	if m.getAllCommentsForReview == nil {
		return nil, data.Metadata{}, nil
	}
	return m.getAllCommentsForReview(reviewID, filters)
}

func (m *mockRepository) UpdateComment(comment *data.Comment) error {
	if m.updateComment == nil {
		return repository.ErrRecordNotFound
	}
	return m.updateComment(comment)
}

func (m *mockRepository) DeleteComment(reviewID, commentID int64) error {
	if m.deleteComment == nil {
		return repository.ErrRecordNotFound
	}
	return m.deleteComment(reviewID, commentID)
}

func mockToken(userID int64, ttl time.Duration, scope string) *data.Token {
	randomBytes := make([]byte, 16)
	rand.Read(randomBytes)
	plaintext := base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(randomBytes)
	hash := sha256.Sum256([]byte(plaintext))
	return &data.Token{
		Plaintext: plaintext,
		Hash:      hash[:],
		UserID:    userID,
		Expiry:    time.Now().Add(ttl),
		Scope:     scope,
	}
}

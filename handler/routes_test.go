package handler

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/emzola/kritika/config"
	"github.com/emzola/kritika/data"
	"github.com/emzola/kritika/internal/jsonlog"
	"github.com/emzola/kritika/internal/token"
	"github.com/emzola/kritika/repository"
	"github.com/emzola/kritika/service"
	"github.com/jellydator/ttlcache/v3"
)

// mockRepository embeds the Repository interface so only the methods a test
// actually routes through need an implementation. Calling anything else
// panics, which is what we want from an unexpected repository hit.
type mockRepository struct {
	repository.Repository

	getUserByID       func(ID int64) (*data.User, error)
	getUserByUsername func(username string) (*data.User, error)
	getAllUsers       func(search string, filters data.Filters) ([]*data.User, data.Metadata, error)
	createTitle       func(title *data.Title) error
	getTitle          func(ID int64) (*data.Title, error)
	getAllTitles      func(name, category, genre string, year int, filters data.Filters) ([]*data.Title, data.Metadata, error)
	getReview         func(titleID, reviewID int64) (*data.Review, error)
	updateReview      func(review *data.Review) error
	deleteReview      func(titleID, reviewID int64) error
	getComment        func(reviewID, commentID int64) (*data.Comment, error)
	updateComment     func(comment *data.Comment) error
	deleteComment     func(reviewID, commentID int64) error
}

func (m *mockRepository) GetUserByID(ID int64) (*data.User, error) {
	return m.getUserByID(ID)
}

func (m *mockRepository) GetUserByUsername(username string) (*data.User, error) {
	return m.getUserByUsername(username)
}

func (m *mockRepository) GetAllUsers(search string, filters data.Filters) ([]*data.User, data.Metadata, error) {
	return m.getAllUsers(search, filters)
}

func (m *mockRepository) CreateTitle(title *data.Title) error {
	return m.createTitle(title)
}

func (m *mockRepository) GetTitle(ID int64) (*data.Title, error) {
	return m.getTitle(ID)
}

func (m *mockRepository) GetAllTitles(name, category, genre string, year int, filters data.Filters) ([]*data.Title, data.Metadata, error) {
	return m.getAllTitles(name, category, genre, year, filters)
}

func (m *mockRepository) AddGenresForTitle(titleID int64, slugs []string) error {
	return nil
}

func (m *mockRepository) GetGenresForTitle(titleID int64) ([]data.Genre, error) {
	return nil, nil
}

func (m *mockRepository) GetReview(titleID, reviewID int64) (*data.Review, error) {
	return m.getReview(titleID, reviewID)
}

func (m *mockRepository) UpdateReview(review *data.Review) error {
	return m.updateReview(review)
}

func (m *mockRepository) DeleteReview(titleID, reviewID int64) error {
	return m.deleteReview(titleID, reviewID)
}

func (m *mockRepository) GetComment(reviewID, commentID int64) (*data.Comment, error) {
	return m.getComment(reviewID, commentID)
}

func (m *mockRepository) UpdateComment(comment *data.Comment) error {
	return m.updateComment(comment)
}

func (m *mockRepository) DeleteComment(reviewID, commentID int64) error {
	return m.deleteComment(reviewID, commentID)
}

// testUsers are keyed by ID; the bearer tokens minted in tests carry these IDs.
var testUsers = map[int64]*data.User{
	1: {ID: 1, Username: "ursula", Email: "ursula@example.com", Role: data.RoleUser},
	2: {ID: 2, Username: "magnus", Email: "magnus@example.com", Role: data.RoleModerator},
	3: {ID: 3, Username: "astrid", Email: "astrid@example.com", Role: data.RoleAdmin},
	4: {ID: 4, Username: "sigrud", Email: "sigrud@example.com", Role: data.RoleUser, Superuser: true},
	5: {ID: 5, Username: "henrik", Email: "henrik@example.com", Role: data.RoleUser},
}

func newTestRepository() *mockRepository {
	return &mockRepository{
		getUserByID: func(ID int64) (*data.User, error) {
			user, ok := testUsers[ID]
			if !ok {
				return nil, repository.ErrRecordNotFound
			}
			return user, nil
		},
		getUserByUsername: func(username string) (*data.User, error) {
			for _, user := range testUsers {
				if user.Username == username {
					return user, nil
				}
			}
			return nil, repository.ErrRecordNotFound
		},
		getAllUsers: func(search string, filters data.Filters) ([]*data.User, data.Metadata, error) {
			return nil, data.Metadata{}, nil
		},
		createTitle: func(title *data.Title) error {
			title.ID = 5
			return nil
		},
		getTitle: func(ID int64) (*data.Title, error) {
			if ID != 5 {
				return nil, repository.ErrRecordNotFound
			}
			return &data.Title{ID: 5, Name: "Dune", Year: 1965, Category: data.Category{Name: "Film", Slug: "film"}}, nil
		},
		getAllTitles: func(name, category, genre string, year int, filters data.Filters) ([]*data.Title, data.Metadata, error) {
			return nil, data.Metadata{}, nil
		},
		getReview: func(titleID, reviewID int64) (*data.Review, error) {
			if titleID != 5 || reviewID != 10 {
				return nil, repository.ErrRecordNotFound
			}
			return &data.Review{ID: 10, TitleID: 5, UserID: 1, Author: "ursula", Text: "a classic", Score: 9}, nil
		},
		updateReview: func(review *data.Review) error {
			return nil
		},
		deleteReview: func(titleID, reviewID int64) error {
			return nil
		},
		getComment: func(reviewID, commentID int64) (*data.Comment, error) {
			if reviewID != 10 || commentID != 20 {
				return nil, repository.ErrRecordNotFound
			}
			return &data.Comment{ID: 20, ReviewID: 10, UserID: 1, Author: "ursula", Text: "agreed"}, nil
		},
		updateComment: func(comment *data.Comment) error {
			return nil
		},
		deleteComment: func(reviewID, commentID int64) error {
			return nil
		},
	}
}

func newTestHandler(t *testing.T, repo repository.Repository) *Handler {
	t.Helper()
	var cfg config.Config
	cfg.Server.Env = "testing"
	logger := jsonlog.New(io.Discard, jsonlog.LevelOff)
	cache := ttlcache.New(ttlcache.WithTTL[string, int64](time.Minute))
	signer := token.NewSigner("test-secret", "kritika", time.Hour)
	var wg sync.WaitGroup
	svc := service.New(cfg, &wg, logger, repo)
	return New(cfg, logger, cache, signer, svc)
}

func bearerToken(t *testing.T, h *Handler, userID int64) string {
	t.Helper()
	accessToken, err := h.signer.Sign(userID)
	if err != nil {
		t.Fatal(err)
	}
	return "Bearer " + accessToken
}

func doRequest(t *testing.T, routes http.Handler, method, target, authorization, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	routes.ServeHTTP(rec, req)
	return rec
}

func TestReviewEndpointPermissions(t *testing.T) {
	h := newTestHandler(t, newTestRepository())
	routes := h.Routes()

	tests := []struct {
		name     string
		method   string
		userID   int64
		body     string
		wantCode int
	}{
		{name: "anonymous can read", method: http.MethodGet, userID: 0, wantCode: http.StatusOK},
		{name: "anonymous cannot delete", method: http.MethodDelete, userID: 0, wantCode: http.StatusUnauthorized},
		{name: "owner can update", method: http.MethodPatch, userID: 1, body: `{"text": "still a classic", "score": 10}`, wantCode: http.StatusOK},
		{name: "owner can delete", method: http.MethodDelete, userID: 1, wantCode: http.StatusOK},
		{name: "moderator can delete", method: http.MethodDelete, userID: 2, wantCode: http.StatusOK},
		{name: "moderator cannot update", method: http.MethodPatch, userID: 2, body: `{"text": "edited"}`, wantCode: http.StatusForbidden},
		{name: "admin can update", method: http.MethodPatch, userID: 3, body: `{"text": "edited"}`, wantCode: http.StatusOK},
		{name: "superuser can delete", method: http.MethodDelete, userID: 4, wantCode: http.StatusOK},
		{name: "other user cannot update", method: http.MethodPatch, userID: 5, body: `{"text": "edited"}`, wantCode: http.StatusForbidden},
		{name: "other user cannot delete", method: http.MethodDelete, userID: 5, wantCode: http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var authorization string
			if tt.userID != 0 {
				authorization = bearerToken(t, h, tt.userID)
			}
			rec := doRequest(t, routes, tt.method, "/v1/titles/5/reviews/10", authorization, tt.body)
			if rec.Code != tt.wantCode {
				t.Errorf("got status %d, want %d: %s", rec.Code, tt.wantCode, rec.Body.String())
			}
		})
	}
}

func TestCommentEndpointPermissions(t *testing.T) {
	h := newTestHandler(t, newTestRepository())
	routes := h.Routes()

	tests := []struct {
		name     string
		method   string
		userID   int64
		body     string
		wantCode int
	}{
		{name: "anonymous can read", method: http.MethodGet, userID: 0, wantCode: http.StatusOK},
		{name: "anonymous cannot delete", method: http.MethodDelete, userID: 0, wantCode: http.StatusUnauthorized},
		{name: "owner can update", method: http.MethodPatch, userID: 1, body: `{"text": "still agreed"}`, wantCode: http.StatusOK},
		{name: "moderator can delete", method: http.MethodDelete, userID: 2, wantCode: http.StatusOK},
		{name: "moderator cannot update", method: http.MethodPatch, userID: 2, body: `{"text": "edited"}`, wantCode: http.StatusForbidden},
		{name: "other user cannot delete", method: http.MethodDelete, userID: 5, wantCode: http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var authorization string
			if tt.userID != 0 {
				authorization = bearerToken(t, h, tt.userID)
			}
			rec := doRequest(t, routes, tt.method, "/v1/titles/5/reviews/10/comments/20", authorization, tt.body)
			if rec.Code != tt.wantCode {
				t.Errorf("got status %d, want %d: %s", rec.Code, tt.wantCode, rec.Body.String())
			}
		})
	}
}

func TestTitleEndpointPermissions(t *testing.T) {
	h := newTestHandler(t, newTestRepository())
	routes := h.Routes()
	body := `{"name": "Dune", "year": 1965, "category": "film"}`

	tests := []struct {
		name     string
		method   string
		userID   int64
		body     string
		wantCode int
	}{
		{name: "anonymous can list", method: http.MethodGet, userID: 0, wantCode: http.StatusOK},
		{name: "anonymous cannot create", method: http.MethodPost, userID: 0, body: body, wantCode: http.StatusUnauthorized},
		{name: "user cannot create", method: http.MethodPost, userID: 1, body: body, wantCode: http.StatusForbidden},
		{name: "moderator cannot create", method: http.MethodPost, userID: 2, body: body, wantCode: http.StatusForbidden},
		{name: "admin can create", method: http.MethodPost, userID: 3, body: body, wantCode: http.StatusCreated},
		// The superuser flag elevates user management and review/comment
		// deletion only; it does not stand in for the admin role here.
		{name: "superuser cannot create", method: http.MethodPost, userID: 4, body: body, wantCode: http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var authorization string
			if tt.userID != 0 {
				authorization = bearerToken(t, h, tt.userID)
			}
			rec := doRequest(t, routes, tt.method, "/v1/titles", authorization, tt.body)
			if rec.Code != tt.wantCode {
				t.Errorf("got status %d, want %d: %s", rec.Code, tt.wantCode, rec.Body.String())
			}
		})
	}
}

func TestUserEndpointPermissions(t *testing.T) {
	h := newTestHandler(t, newTestRepository())
	routes := h.Routes()

	t.Run("anonymous cannot list users", func(t *testing.T) {
		rec := doRequest(t, routes, http.MethodGet, "/v1/users", "", "")
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("got status %d, want %d", rec.Code, http.StatusUnauthorized)
		}
	})

	t.Run("user cannot list users", func(t *testing.T) {
		rec := doRequest(t, routes, http.MethodGet, "/v1/users", bearerToken(t, h, 1), "")
		if rec.Code != http.StatusForbidden {
			t.Errorf("got status %d, want %d", rec.Code, http.StatusForbidden)
		}
	})

	t.Run("admin can list users", func(t *testing.T) {
		rec := doRequest(t, routes, http.MethodGet, "/v1/users", bearerToken(t, h, 3), "")
		if rec.Code != http.StatusOK {
			t.Errorf("got status %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
		}
	})

	t.Run("superuser can list users", func(t *testing.T) {
		rec := doRequest(t, routes, http.MethodGet, "/v1/users", bearerToken(t, h, 4), "")
		if rec.Code != http.StatusOK {
			t.Errorf("got status %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
		}
	})

	t.Run("me returns the requester's profile", func(t *testing.T) {
		rec := doRequest(t, routes, http.MethodGet, "/v1/users/me", bearerToken(t, h, 1), "")
		if rec.Code != http.StatusOK {
			t.Fatalf("got status %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
		}
		if !strings.Contains(rec.Body.String(), `"ursula"`) {
			t.Errorf("body does not contain the requester's username: %s", rec.Body.String())
		}
	})

	t.Run("user cannot read another profile", func(t *testing.T) {
		rec := doRequest(t, routes, http.MethodGet, "/v1/users/magnus", bearerToken(t, h, 1), "")
		if rec.Code != http.StatusForbidden {
			t.Errorf("got status %d, want %d", rec.Code, http.StatusForbidden)
		}
	})

	t.Run("admin can read another profile", func(t *testing.T) {
		rec := doRequest(t, routes, http.MethodGet, "/v1/users/magnus", bearerToken(t, h, 3), "")
		if rec.Code != http.StatusOK {
			t.Errorf("got status %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
		}
	})

	t.Run("me cannot be deleted", func(t *testing.T) {
		rec := doRequest(t, routes, http.MethodDelete, "/v1/users/me", bearerToken(t, h, 3), "")
		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("got status %d, want %d", rec.Code, http.StatusMethodNotAllowed)
		}
	})
}

func TestAuthenticate(t *testing.T) {
	h := newTestHandler(t, newTestRepository())
	routes := h.Routes()

	t.Run("garbage bearer token", func(t *testing.T) {
		rec := doRequest(t, routes, http.MethodGet, "/v1/users/me", "Bearer not-a-token", "")
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("got status %d, want %d", rec.Code, http.StatusUnauthorized)
		}
	})

	t.Run("token for a deleted user", func(t *testing.T) {
		rec := doRequest(t, routes, http.MethodGet, "/v1/users/me", bearerToken(t, h, 99), "")
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("got status %d, want %d", rec.Code, http.StatusUnauthorized)
		}
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		other := token.NewSigner("other-secret", "kritika", time.Hour)
		accessToken, err := other.Sign(1)
		if err != nil {
			t.Fatal(err)
		}
		rec := doRequest(t, routes, http.MethodGet, "/v1/users/me", "Bearer "+accessToken, "")
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("got status %d, want %d", rec.Code, http.StatusUnauthorized)
		}
	})
}

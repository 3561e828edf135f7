package service

import (
	"sync"

	"github.com/emzola/kritika/config"
	"github.com/emzola/kritika/internal/jsonlog"
	"github.com/emzola/kritika/repository"
)

type Service interface {
	auth
	users
	categories
	genres
	titles
	reviews
	comments
	failedValidation(map[string]string) error
}

// Services defines a service layer.
type service struct {
	config config.Config
	wg     *sync.WaitGroup
	logger *jsonlog.Logger
	repo   repository.Repository
}

// New creates a new instance of Service. The wait group is shared with the
// server so graceful shutdown can wait for background tasks.
func New(cfg config.Config, wg *sync.WaitGroup, logger *jsonlog.Logger, repo repository.Repository) *service {
	return &service{
		config: cfg,
		wg:     wg,
		logger: logger,
		repo:   repo,
	}
}

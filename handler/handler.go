package handler

import (
	"github.com/emzola/kritika/config"
	"github.com/emzola/kritika/internal/jsonlog"
	"github.com/emzola/kritika/internal/token"
	"github.com/emzola/kritika/service"
	"github.com/jellydator/ttlcache/v3"
)

// Handler defines Handler layer.
type Handler struct {
	config  config.Config
	logger  *jsonlog.Logger
	cache   *ttlcache.Cache[string, int64]
	signer  *token.Signer
	service service.Service
}

// New creates a new instance of Handler. The cache holds resolved review and
// comment author IDs for the object-level permission checks.
func New(cfg config.Config, logger *jsonlog.Logger, cache *ttlcache.Cache[string, int64], signer *token.Signer, service service.Service) *Handler {
	return &Handler{
		config:  cfg,
		logger:  logger,
		cache:   cache,
		signer:  signer,
		service: service,
	}
}

package main

import (
	"flag"
	"os"
	"sync"
	"time"

	"github.com/emzola/kritika/config"
	"github.com/emzola/kritika/handler"
	"github.com/emzola/kritika/internal/jsonlog"
	"github.com/emzola/kritika/internal/token"
	"github.com/emzola/kritika/repository"
	"github.com/emzola/kritika/repository/postgres"
	"github.com/emzola/kritika/service"
	"github.com/jellydator/ttlcache/v3"
)

// app defines the application's layers and shared resources.
type app struct {
	config  config.Config
	repo    repository.Repository
	service service.Service
	handler *handler.Handler
}

// @title Kritika API
// @version 1.0.0
// @description This is an API service for reviewing and discussing titles.
// @BasePath /
func main() {
	logger := jsonlog.New(os.Stdout, jsonlog.LevelInfo)

	var configPath string
	flag.StringVar(&configPath, "config", "", "Path to YAML configuration file")
	flag.Parse()

	// Initialize configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		logger.PrintFatal(err, nil)
	}

	// Initialize database connection
	db, err := postgres.OpenDBConn(cfg)
	if err != nil {
		logger.PrintFatal(err, nil)
	}
	defer db.Close()
	logger.PrintInfo("database connection pool established", nil)

	// Access token signer shared by the auth service and the
	// authentication middleware.
	ttl, err := time.ParseDuration(cfg.JWT.TTL)
	if err != nil {
		logger.PrintFatal(err, nil)
	}
	signer := token.NewSigner(cfg.JWT.Secret, cfg.JWT.Issuer, ttl)

	// Other shared resources: waitgroup and in-memory cache
	var wg sync.WaitGroup
	cache := ttlcache.New(ttlcache.WithTTL[string, int64](30 * time.Minute))
	go cache.Start()

	// Application layers
	repo := repository.New(db)
	service := service.New(cfg, &wg, logger, repo)
	handler := handler.New(cfg, logger, cache, signer, service)

	// Instantiate application
	app := &app{
		config:  cfg,
		repo:    repo,
		service: service,
		handler: handler,
	}

	// Start HTTP server
	err = app.serve(&wg, logger)
	if err != nil {
		logger.PrintFatal(err, nil)
	}
}

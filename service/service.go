package service

import (
	"sync"

	"github.com/emzola/recensio/config"
	"github.com/emzola/recensio/internal/jsonlog"
	"github.com/emzola/recensio/repository"
)

type Service interface {
	auth
	users
	categories
	genres
	titles
	reviews
	comments
}

// service defines the app's service layer.
type service struct {
	config config.Config
	wg     *sync.WaitGroup
	logger *jsonlog.Logger
	repo   repository.Repository
}

// New creates a new instance of Service.
func New(cfg config.Config, wg *sync.WaitGroup, logger *jsonlog.Logger, repo repository.Repository) *service {
	return &service{
		config: cfg,
		wg:     wg,
		logger: logger,
		repo:   repo,
	}
}

// Package app wires configuration, storage, and the HTTP layer together.
package app

import (
	"context"
	"log"

	"timekeep/internal/config"
	internalhttp "timekeep/internal/http"
	"timekeep/internal/repository/postgres"
)

// Version is stamped at build time via -ldflags.
var Version = "dev"

type Service struct {
	config *config.Config
	db     *postgres.DB
	server *internalhttp.Server
}

func NewService() (*Service, error) {
	return initializeService()
}

func (s *Service) Start() error {
	log.Println("starting timekeep...")
	return s.server.Start()
}

// Shutdown stops accepting connections, drains in-flight requests up to the
// configured timeout, then closes the database pool.
func (s *Service) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.config.Server.ShutdownTimeout)
	defer cancel()

	err := s.server.Shutdown(ctx)
	s.db.Close()
	return err
}

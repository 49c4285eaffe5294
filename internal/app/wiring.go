package app

import (
	"fmt"
	"log"
	"time"

	"timekeep/internal/audit"
	"timekeep/internal/auth"
	"timekeep/internal/config"
	internalhttp "timekeep/internal/http"
	"timekeep/internal/http/handler"
	"timekeep/internal/repository/postgres"
	"timekeep/internal/storage/s3"
)

const archiveDownloadExpiry = 15 * time.Minute

// initializeService wires up all dependencies and returns a configured Service
func initializeService() (*Service, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.New(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	userRepo := postgres.NewUserRepository(db)
	clientRepo := postgres.NewClientRepository(db)
	projectRepo := postgres.NewProjectRepository(db)
	entryRepo := postgres.NewTimeEntryRepository(db)
	periodRepo := postgres.NewPayPeriodRepository(db)
	linkRepo := postgres.NewLinkRepository(db)
	scriptRepo := postgres.NewScriptRepository(db)

	auditLogger := audit.NewLogger(db.Pool)

	jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpiryDuration)
	authMW := auth.NewMiddleware(jwtService)

	// Export archiving is opt-in; without a bucket the reports endpoints
	// just skip the S3 copy.
	var archiver handler.ExportArchiver
	if cfg.Archive.Enabled {
		a, err := s3.NewArchiver(&cfg.Archive, archiveDownloadExpiry)
		if err != nil {
			return nil, fmt.Errorf("failed to create export archiver: %w", err)
		}
		archiver = a
	} else {
		log.Println("export archiving disabled")
	}

	handlers := internalhttp.Handlers{
		Auth:      handler.NewAuthHandler(userRepo, jwtService, auditLogger),
		User:      handler.NewUserHandler(userRepo, auditLogger),
		Client:    handler.NewClientHandler(clientRepo, auditLogger),
		Project:   handler.NewProjectHandler(projectRepo, clientRepo, auditLogger),
		TimeEntry: handler.NewTimeEntryHandler(entryRepo, clientRepo, projectRepo, userRepo, auditLogger),
		Report:    handler.NewReportHandler(entryRepo, archiver, auditLogger),
		PayPeriod: handler.NewPayPeriodHandler(periodRepo, auditLogger),
		Link:      handler.NewLinkHandler(linkRepo, auditLogger),
		Script:    handler.NewScriptHandler(scriptRepo, auditLogger),
		Info:      handler.NewInfoHandler(periodRepo, Version),
		Audit:     handler.NewAuditHandler(auditLogger),
	}

	server := internalhttp.NewServer(&cfg.Server, authMW, handlers)

	return &Service{
		config: cfg,
		db:     db,
		server: server,
	}, nil
}

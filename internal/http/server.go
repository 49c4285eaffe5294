// Package http hosts the Echo server: middleware stack, route table, and
// the central error handler.
package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	"timekeep/internal/auth"
	"timekeep/internal/config"
	"timekeep/internal/http/handler"
	"timekeep/internal/http/middleware"
)

const bodyLimit = "1M"

// Handlers bundles everything the route table mounts.
type Handlers struct {
	Auth      *handler.AuthHandler
	User      *handler.UserHandler
	Client    *handler.ClientHandler
	Project   *handler.ProjectHandler
	TimeEntry *handler.TimeEntryHandler
	Report    *handler.ReportHandler
	PayPeriod *handler.PayPeriodHandler
	Link      *handler.LinkHandler
	Script    *handler.ScriptHandler
	Info      *handler.InfoHandler
	Audit     *handler.AuditHandler
}

type Server struct {
	echo *echo.Echo
	cfg  *config.ServerConfig
}

func NewServer(cfg *config.ServerConfig, authMW *auth.Middleware, h Handlers) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Server.ReadTimeout = cfg.ReadTimeout
	e.Server.WriteTimeout = cfg.WriteTimeout
	e.HTTPErrorHandler = customHTTPErrorHandler

	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.BodyLimit(bodyLimit))
	e.Use(middleware.RequestID())
	e.Use(middleware.SecurityHeaders())

	global := middleware.NewGlobalRateLimiter()
	strict := middleware.NewStrictRateLimiter()

	e.GET("/health", h.Info.Health)

	api := e.Group("/api", global.Middleware())

	api.POST("/auth/login", h.Auth.Login, strict.Middleware())

	// Everything below requires a valid token.
	authed := api.Group("", authMW.RequireJWT())
	admin := authed.Group("", authMW.RequireAdmin())

	authed.GET("/auth/me", h.Auth.Me)
	authed.GET("/info", h.Info.Info)

	// Clients and projects are shared reference data: any authenticated
	// user may manage them, deletes are soft.
	authed.GET("/clients", h.Client.ListClients)
	authed.POST("/clients", h.Client.CreateClient)
	authed.PUT("/clients/:id", h.Client.UpdateClient)
	authed.DELETE("/clients/:id", h.Client.DeleteClient)

	authed.GET("/projects", h.Project.ListProjects)
	authed.POST("/projects", h.Project.CreateProject)
	authed.PUT("/projects/:id", h.Project.UpdateProject)
	authed.DELETE("/projects/:id", h.Project.DeleteProject)

	authed.GET("/time-entries", h.TimeEntry.ListEntries)
	authed.GET("/time-entries/history", h.TimeEntry.History)
	authed.POST("/time-entries", h.TimeEntry.CreateEntry)
	authed.PUT("/time-entries/:id", h.TimeEntry.UpdateEntry)
	authed.DELETE("/time-entries/:id", h.TimeEntry.DeleteEntry)
	admin.POST("/time-entries/purge", h.TimeEntry.PurgeEntries)

	authed.GET("/reports/summary", h.Report.Summary)
	authed.GET("/reports/export/csv", h.Report.ExportCSV)
	authed.GET("/reports/export/excel", h.Report.ExportExcel)
	authed.GET("/reports/export/print", h.Report.Print)
	admin.GET("/reports/archive", h.Report.ArchiveDownload)

	authed.GET("/pay-periods", h.PayPeriod.ListPeriods)
	authed.GET("/pay-periods/for-date", h.PayPeriod.ForDate)
	admin.POST("/pay-periods", h.PayPeriod.CreatePeriod)
	admin.POST("/pay-periods/generate", h.PayPeriod.GeneratePeriods)
	admin.PUT("/pay-periods/:id", h.PayPeriod.UpdatePeriod)
	admin.DELETE("/pay-periods/:id", h.PayPeriod.DeletePeriod)

	admin.GET("/users", h.User.ListUsers)
	admin.POST("/users", h.User.CreateUser)
	admin.PUT("/users/:id", h.User.UpdateUser)
	authed.PUT("/users/:id/password", h.User.ChangePassword, strict.Middleware())

	admin.GET("/audit", h.Audit.ListEvents)

	authed.GET("/links", h.Link.ListLinks)
	admin.POST("/links", h.Link.CreateLink)
	admin.PUT("/links/:id", h.Link.UpdateLink)
	admin.DELETE("/links/:id", h.Link.DeleteLink)

	authed.GET("/scripts", h.Script.ListScripts)
	authed.GET("/scripts/:id", h.Script.GetScript)
	authed.POST("/scripts", h.Script.CreateScript)
	authed.PUT("/scripts/:id", h.Script.UpdateScript)
	authed.DELETE("/scripts/:id", h.Script.DeleteScript)

	return &Server{echo: e, cfg: cfg}
}

// Echo exposes the underlying instance for tests.
func (s *Server) Echo() *echo.Echo {
	return s.echo
}

func (s *Server) Start() error {
	err := s.echo.Start(":" + s.cfg.Port)
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

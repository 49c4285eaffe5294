package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"timekeep/internal/auth"
)

type InfoHandler struct {
	periodRepo PayPeriodRepository
	version    string
	startedAt  time.Time
}

func NewInfoHandler(periodRepo PayPeriodRepository, version string) *InfoHandler {
	return &InfoHandler{
		periodRepo: periodRepo,
		version:    version,
		startedAt:  time.Now(),
	}
}

func (h *InfoHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

type InfoResponse struct {
	Version       string         `json:"version"`
	ServerTime    string         `json:"server_time"`
	UptimeSeconds int64          `json:"uptime_seconds"`
	User          *auth.Identity `json:"user,omitempty"`
	CurrentPeriod any            `json:"current_period"`
}

// Info reports server version, time, and the pay period today falls in.
func (h *InfoHandler) Info(c echo.Context) error {
	now := time.Now()
	resp := InfoResponse{
		Version:       h.version,
		ServerTime:    now.Format(time.RFC3339),
		UptimeSeconds: int64(now.Sub(h.startedAt).Seconds()),
	}

	if identity, err := auth.GetIdentity(c); err == nil {
		resp.User = &identity
	}

	today := now.Format("2006-01-02")
	if period, err := h.periodRepo.ForDate(c.Request().Context(), today); err == nil {
		resp.CurrentPeriod = period
	}

	return c.JSON(http.StatusOK, resp)
}

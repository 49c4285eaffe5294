package handler

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"timekeep/internal/audit"
	"timekeep/internal/domain/payperiod"
	"timekeep/internal/payroll"
	apperrors "timekeep/pkg/errors"
	"timekeep/pkg/validator"
)

type PayPeriodHandler struct {
	periodRepo  PayPeriodRepository
	auditLogger AuditLogger
}

func NewPayPeriodHandler(periodRepo PayPeriodRepository, auditLogger AuditLogger) *PayPeriodHandler {
	return &PayPeriodHandler{
		periodRepo:  periodRepo,
		auditLogger: auditLogger,
	}
}

func (h *PayPeriodHandler) ListPeriods(c echo.Context) error {
	periods, err := h.periodRepo.List(c.Request().Context())
	if err != nil {
		return respondAppError(c, err, msgListPayPeriodsFail)
	}

	return c.JSON(http.StatusOK, periods)
}

// ForDate resolves which period a calendar date falls in. A date outside
// every period yields null, not an error; gaps between periods are legal.
func (h *PayPeriodHandler) ForDate(c echo.Context) error {
	date := c.QueryParam(queryParamDate)
	if date == "" {
		return respondError(c, http.StatusBadRequest, msgDateRequired)
	}
	if err := validator.Date(date); err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}

	period, err := h.periodRepo.ForDate(c.Request().Context(), date)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return c.JSON(http.StatusOK, nil)
		}
		return respondAppError(c, err, msgListPayPeriodsFail)
	}

	return c.JSON(http.StatusOK, period)
}

type CreatePayPeriodRequest struct {
	PeriodNumber int     `json:"period_number"`
	StartDate    string  `json:"start_date"`
	EndDate      string  `json:"end_date"`
	Label        *string `json:"label"`
}

func (h *PayPeriodHandler) CreatePeriod(c echo.Context) error {
	var req CreatePayPeriodRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}

	if err := validator.Date(req.StartDate); err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}
	if err := validator.Date(req.EndDate); err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}
	if req.EndDate < req.StartDate {
		return respondError(c, http.StatusBadRequest, "end_date must not precede start_date")
	}

	created, err := h.periodRepo.Create(c.Request().Context(), payperiod.CreatePayPeriodInput{
		PeriodNumber: req.PeriodNumber,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		Label:        req.Label,
	})

	if err != nil {
		h.auditLogger.LogError(c, audit.ResourceTypePayPeriod, nil, audit.ActionCreate, err)
		return respondAppError(c, err, msgCreatePayPeriodFail)
	}

	h.auditLogger.LogFromContext(c, audit.ResourceTypePayPeriod, &created.ID, audit.ActionCreate, audit.StatusSuccess, nil)

	return c.JSON(http.StatusCreated, created)
}

type UpdatePayPeriodRequest struct {
	PeriodNumber *int    `json:"period_number"`
	StartDate    *string `json:"start_date"`
	EndDate      *string `json:"end_date"`
	Label        *string `json:"label"`
}

func (h *PayPeriodHandler) UpdatePeriod(c echo.Context) error {
	id, err := uuid.Parse(c.Param(paramID))
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidID)
	}

	var req UpdatePayPeriodRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}

	for _, d := range []*string{req.StartDate, req.EndDate} {
		if d != nil {
			if err := validator.Date(*d); err != nil {
				return respondError(c, http.StatusBadRequest, err.Error())
			}
		}
	}

	err = h.periodRepo.Update(c.Request().Context(), id, payperiod.UpdatePayPeriodInput{
		PeriodNumber: req.PeriodNumber,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		Label:        req.Label,
	})

	if err != nil {
		h.auditLogger.LogError(c, audit.ResourceTypePayPeriod, &id, audit.ActionUpdate, err)
		return respondAppError(c, err, msgUpdatePayPeriodFail)
	}

	h.auditLogger.LogFromContext(c, audit.ResourceTypePayPeriod, &id, audit.ActionUpdate, audit.StatusSuccess, nil)

	updated, err := h.periodRepo.GetByID(c.Request().Context(), id)
	if err != nil {
		return respondAppError(c, err, msgUpdatePayPeriodFail)
	}

	return c.JSON(http.StatusOK, updated)
}

func (h *PayPeriodHandler) DeletePeriod(c echo.Context) error {
	id, err := uuid.Parse(c.Param(paramID))
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidID)
	}

	if err := h.periodRepo.Delete(c.Request().Context(), id); err != nil {
		h.auditLogger.LogError(c, audit.ResourceTypePayPeriod, &id, audit.ActionDelete, err)
		return respondAppError(c, err, msgDeletePayPeriodFail)
	}

	h.auditLogger.LogFromContext(c, audit.ResourceTypePayPeriod, &id, audit.ActionDelete, audit.StatusSuccess, nil)

	return c.NoContent(http.StatusNoContent)
}

type GeneratePeriodsRequest struct {
	Year int `json:"year"`
}

// GeneratePeriods creates the 24 semi-monthly periods for one calendar
// year. Numbering continues from the highest existing period; generating a
// year that already has periods is a conflict.
func (h *PayPeriodHandler) GeneratePeriods(c echo.Context) error {
	var req GeneratePeriodsRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}

	if err := validator.Year(req.Year); err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}

	maxNumber, err := h.periodRepo.MaxPeriodNumber(c.Request().Context())
	if err != nil {
		return respondAppError(c, err, msgGeneratePeriodsFail)
	}

	specs := payroll.GenerateYear(req.Year, maxNumber+1)

	periods, err := h.periodRepo.GenerateYear(c.Request().Context(), req.Year, specs)
	if err != nil {
		h.auditLogger.LogError(c, audit.ResourceTypePayPeriod, nil, audit.ActionGenerate, err)
		return respondAppError(c, err, msgGeneratePeriodsFail)
	}

	h.auditLogger.LogFromContext(c, audit.ResourceTypePayPeriod, nil, audit.ActionGenerate, audit.StatusSuccess, map[string]any{
		"year":  req.Year,
		"count": len(periods),
	})

	return c.JSON(http.StatusCreated, periods)
}

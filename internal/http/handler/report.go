package handler

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"timekeep/internal/audit"
	"timekeep/internal/auth"
	"timekeep/internal/domain/timeentry"
	"timekeep/internal/export"
	"timekeep/internal/timesheet"
	"timekeep/pkg/validator"
)

type ReportHandler struct {
	entryRepo   ReportSource
	archiver    ExportArchiver
	auditLogger AuditLogger
}

// NewReportHandler builds the report handler. archiver may be nil, which
// disables export archiving.
func NewReportHandler(entryRepo ReportSource, archiver ExportArchiver, auditLogger AuditLogger) *ReportHandler {
	return &ReportHandler{
		entryRepo:   entryRepo,
		archiver:    archiver,
		auditLogger: auditLogger,
	}
}

// reportFilter parses the shared report query params. Non-admins are always
// scoped to their own entries regardless of the user_id param.
func (h *ReportHandler) reportFilter(c echo.Context) (timeentry.ListFilter, error) {
	identity, err := auth.GetIdentity(c)
	if err != nil {
		return timeentry.ListFilter{}, err
	}

	var filter timeentry.ListFilter

	if raw := c.QueryParam(queryParamStartDate); raw != "" {
		if err := validator.Date(raw); err != nil {
			return filter, echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		filter.StartDate = &raw
	}
	if raw := c.QueryParam(queryParamEndDate); raw != "" {
		if err := validator.Date(raw); err != nil {
			return filter, echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		filter.EndDate = &raw
	}
	if raw := c.QueryParam(queryParamClientID); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			return filter, echo.NewHTTPError(http.StatusBadRequest, msgInvalidClientID)
		}
		filter.ClientID = &parsed
	}

	if identity.IsAdmin {
		if raw := c.QueryParam(queryParamUserID); raw != "" {
			parsed, err := uuid.Parse(raw)
			if err != nil {
				return filter, echo.NewHTTPError(http.StatusBadRequest, msgInvalidUserID)
			}
			filter.UserID = &parsed
		}
	} else {
		scoped := identity.UserID
		filter.UserID = &scoped
	}

	return filter, nil
}

func (h *ReportHandler) loadEntries(c echo.Context) ([]timeentry.TimeEntry, timeentry.ListFilter, error) {
	filter, err := h.reportFilter(c)
	if err != nil {
		return nil, filter, err
	}

	entries, err := h.entryRepo.ListResolved(c.Request().Context(), filter)
	if err != nil {
		return nil, filter, err
	}

	return entries, filter, nil
}

// Summary returns the client→project aggregation consumed by the report UI.
func (h *ReportHandler) Summary(c echo.Context) error {
	entries, _, err := h.loadEntries(c)
	if err != nil {
		if he, ok := err.(*echo.HTTPError); ok {
			return handleHTTPError(c, he)
		}
		return respondAppError(c, err, msgSummaryFail)
	}

	return c.JSON(http.StatusOK, timesheet.Summarize(entries))
}

func rangeOf(filter timeentry.ListFilter) (string, string) {
	start, end := "", ""
	if filter.StartDate != nil {
		start = *filter.StartDate
	}
	if filter.EndDate != nil {
		end = *filter.EndDate
	}
	return start, end
}

// archive pushes an export document to object storage when configured.
// Archive failures are logged and swallowed; the download still succeeds.
func (h *ReportHandler) archive(c echo.Context, name, contentType string, body []byte) {
	if h.archiver == nil {
		return
	}

	key, err := h.archiver.Store(c.Request().Context(), name, contentType, body)
	if err != nil {
		c.Logger().Errorf("failed to archive export %s: %v", name, err)
		return
	}

	h.auditLogger.LogFromContext(c, audit.ResourceTypeReport, nil, audit.ActionExport, audit.StatusSuccess, map[string]any{
		"archive_key": key,
	})
}

func (h *ReportHandler) ExportCSV(c echo.Context) error {
	entries, filter, err := h.loadEntries(c)
	if err != nil {
		if he, ok := err.(*echo.HTTPError); ok {
			return handleHTTPError(c, he)
		}
		return respondAppError(c, err, msgExportFail)
	}

	body, err := export.WriteCSV(entries)
	if err != nil {
		return respondAppError(c, err, msgExportFail)
	}

	start, end := rangeOf(filter)
	name := export.Filename(start, end, csvExt)
	h.archive(c, name, export.ContentTypeCSV, body)

	c.Response().Header().Set(headerContentDisposition, fmt.Sprintf("attachment; filename=%q", name))
	return c.Blob(http.StatusOK, export.ContentTypeCSV, body)
}

func (h *ReportHandler) ExportExcel(c echo.Context) error {
	entries, filter, err := h.loadEntries(c)
	if err != nil {
		if he, ok := err.(*echo.HTTPError); ok {
			return handleHTTPError(c, he)
		}
		return respondAppError(c, err, msgExportFail)
	}

	body, err := export.WriteExcel(entries, timesheet.Summarize(entries))
	if err != nil {
		return respondAppError(c, err, msgExportFail)
	}

	start, end := rangeOf(filter)
	name := export.Filename(start, end, excelExt)
	h.archive(c, name, export.ContentTypeExcel, body)

	c.Response().Header().Set(headerContentDisposition, fmt.Sprintf("attachment; filename=%q", name))
	return c.Blob(http.StatusOK, export.ContentTypeExcel, body)
}

// ArchiveDownload exchanges an archive object key (recorded in the audit
// trail on export) for a short-lived download URL. Admin-only.
func (h *ReportHandler) ArchiveDownload(c echo.Context) error {
	if h.archiver == nil {
		return respondError(c, http.StatusNotFound, msgArchivingDisabled)
	}

	key := c.QueryParam(queryParamKey)
	if key == "" {
		return respondError(c, http.StatusBadRequest, msgArchiveKeyRequired)
	}

	url, err := h.archiver.DownloadURL(c.Request().Context(), key)
	if err != nil {
		return respondAppError(c, err, msgArchiveURLFail)
	}

	return c.JSON(http.StatusOK, map[string]string{"url": url})
}

// Print renders the self-printing HTML report view.
func (h *ReportHandler) Print(c echo.Context) error {
	entries, filter, err := h.loadEntries(c)
	if err != nil {
		if he, ok := err.(*echo.HTTPError); ok {
			return handleHTTPError(c, he)
		}
		return respondAppError(c, err, msgExportFail)
	}

	start, end := rangeOf(filter)
	body, err := export.WritePrintHTML(export.PrintData{
		StartDate: start,
		EndDate:   end,
		Entries:   entries,
		Summary:   timesheet.Summarize(entries),
	})
	if err != nil {
		return respondAppError(c, err, msgExportFail)
	}

	return c.Blob(http.StatusOK, export.ContentTypeHTML, body)
}

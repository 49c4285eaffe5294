// Package export renders report documents from resolved time entries:
// CSV and Excel downloads plus a printable HTML view.
package export

import (
	"fmt"
	"strconv"
)

const (
	ContentTypeCSV   = "text/csv"
	ContentTypeExcel = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ContentTypeHTML  = "text/html; charset=utf-8"
)

var columnHeaders = []string{"Date", "User", "Client", "Project", "Start", "Stop", "Hours", "Sales", "Notes"}

// Filename builds a download filename like "time-report-2024-01-01-to-2024-01-15.csv".
// Range bounds may be empty when the report was unbounded.
func Filename(startDate, endDate, ext string) string {
	switch {
	case startDate != "" && endDate != "":
		return fmt.Sprintf("time-report-%s-to-%s.%s", startDate, endDate, ext)
	case startDate != "":
		return fmt.Sprintf("time-report-from-%s.%s", startDate, ext)
	case endDate != "":
		return fmt.Sprintf("time-report-until-%s.%s", endDate, ext)
	default:
		return fmt.Sprintf("time-report.%s", ext)
	}
}

func formatHours(hours *float64) string {
	if hours == nil {
		return ""
	}
	return strconv.FormatFloat(*hours, 'f', 2, 64)
}

func formatSales(sales *int) string {
	if sales == nil {
		return ""
	}
	return strconv.Itoa(*sales)
}

func orString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

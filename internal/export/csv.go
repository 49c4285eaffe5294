package export

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"timekeep/internal/domain/timeentry"
)

// WriteCSV renders entries as a flat CSV document with a header row.
func WriteCSV(entries []timeentry.TimeEntry) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(columnHeaders); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}

	for i := range entries {
		e := &entries[i]
		record := []string{
			e.EntryDate,
			e.UserName,
			e.ClientName,
			e.ProjectName,
			orString(e.StartTime),
			orString(e.StopTime),
			formatHours(e.DurationHours),
			formatSales(e.SalesCount),
			e.Notes,
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}

	return buf.Bytes(), nil
}

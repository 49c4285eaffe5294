package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"timekeep/internal/domain/timeentry"
	"timekeep/internal/timesheet"
)

const (
	entriesSheet = "Time Entries"
	summarySheet = "Summary"
)

var entryColumnWidths = []float64{12, 18, 22, 22, 8, 8, 8, 8, 40}

// WriteExcel renders a two-sheet workbook: the flat entry list and the
// client→project summary with totals.
func WriteExcel(entries []timeentry.TimeEntry, summary timesheet.Summary) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", entriesSheet)
	if _, err := f.NewSheet(summarySheet); err != nil {
		return nil, fmt.Errorf("failed to create summary sheet: %w", err)
	}

	boldStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	if err := writeEntriesSheet(f, entries, boldStyle); err != nil {
		return nil, err
	}
	if err := writeSummarySheet(f, summary, boldStyle); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}

	return buf.Bytes(), nil
}

func writeEntriesSheet(f *excelize.File, entries []timeentry.TimeEntry, headerStyle int) error {
	for i, header := range columnHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(entriesSheet, cell, header); err != nil {
			return fmt.Errorf("failed to write header cell: %w", err)
		}
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(entriesSheet, col, col, entryColumnWidths[i]); err != nil {
			return fmt.Errorf("failed to set column width: %w", err)
		}
	}
	if err := f.SetRowStyle(entriesSheet, 1, 1, headerStyle); err != nil {
		return fmt.Errorf("failed to style header row: %w", err)
	}

	for i := range entries {
		e := &entries[i]
		row := i + 2
		values := []interface{}{
			e.EntryDate,
			e.UserName,
			e.ClientName,
			e.ProjectName,
			orString(e.StartTime),
			orString(e.StopTime),
			nil,
			nil,
			e.Notes,
		}
		if e.DurationHours != nil {
			values[6] = *e.DurationHours
		}
		if e.SalesCount != nil {
			values[7] = *e.SalesCount
		}

		for col, v := range values {
			if v == nil {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(entriesSheet, cell, v); err != nil {
				return fmt.Errorf("failed to write entry cell: %w", err)
			}
		}
	}

	return nil
}

func writeSummarySheet(f *excelize.File, summary timesheet.Summary, boldStyle int) error {
	headers := []string{"Client", "Project", "Hours", "Sales"}
	widths := []float64{24, 24, 10, 10}

	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(summarySheet, cell, header); err != nil {
			return fmt.Errorf("failed to write summary header: %w", err)
		}
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(summarySheet, col, col, widths[i]); err != nil {
			return fmt.Errorf("failed to set summary column width: %w", err)
		}
	}
	if err := f.SetRowStyle(summarySheet, 1, 1, boldStyle); err != nil {
		return fmt.Errorf("failed to style summary header: %w", err)
	}

	row := 2
	setRow := func(values ...interface{}) error {
		for col, v := range values {
			if v == nil {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(summarySheet, cell, v); err != nil {
				return fmt.Errorf("failed to write summary cell: %w", err)
			}
		}
		row++
		return nil
	}

	for _, client := range summary.Summary {
		for _, project := range client.Projects {
			if err := setRow(client.Name, project.Name, project.Hours, project.Sales); err != nil {
				return err
			}
		}
		if err := f.SetRowStyle(summarySheet, row, row, boldStyle); err != nil {
			return fmt.Errorf("failed to style subtotal row: %w", err)
		}
		if err := setRow(client.Name+" total", nil, client.TotalHours, client.TotalSales); err != nil {
			return err
		}
	}

	if err := f.SetRowStyle(summarySheet, row, row, boldStyle); err != nil {
		return fmt.Errorf("failed to style grand total row: %w", err)
	}
	if err := setRow("Grand total", nil, summary.GrandTotalHours, summary.GrandTotalSales); err != nil {
		return err
	}

	return nil
}

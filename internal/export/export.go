// Package export renders the employee collection as an xlsx workbook.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/sysu-ecnc-dev/staff-dashboard/backend/internal/domain"
	"github.com/xuri/excelize/v2"
)

const SheetName = "Employees"

var Headers = []string{"ID", "Name", "Email", "Department", "Shift", "Score", "Total", "Done", "Working days"}

// WriteEmployees writes one header row and one row per employee, in slice order.
func WriteEmployees(w io.Writer, employees []domain.Employee) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	sw, err := f.NewStreamWriter(SheetName)
	if err != nil {
		return fmt.Errorf("failed to open stream writer: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	header := make([]any, len(Headers))
	for i, h := range Headers {
		header[i] = excelize.Cell{Value: h, StyleID: headerStyle}
	}
	if err := sw.SetRow("A1", header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, e := range employees {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []any{
			e.ID,
			e.Name,
			e.Email,
			strings.ToUpper(e.Department),
			e.Shift,
			e.Score,
			e.Total,
			e.Done,
			strings.Join(e.WorkingDays(), ", "),
		}
		if err := sw.SetRow(cell, row); err != nil {
			return fmt.Errorf("failed to write employee %d: %w", e.ID, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return fmt.Errorf("failed to flush sheet: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}

	return nil
}

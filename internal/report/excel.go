package report

import (
	"bytes"
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"

	"github.com/rverbeek/ifctakeoff/pkg/takeoff"
)

const (
	summarySheet = "Samenvatting"
	spacesSheet  = "Ruimtes"
)

// Workbook renders the takeoff as an xlsx workbook with a summary sheet
// and a per-space sheet
func Workbook(r *takeoff.Result) ([]byte, error) {
	f := excelize.NewFile()

	index, err := f.NewSheet(summarySheet)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	if _, err := f.NewSheet(spacesSheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("create header style: %w", err)
	}

	s := r.Summary
	if err := writeSheet(f, summarySheet, headerStyle, SummaryHeader, [][]any{{
		s.Timestamp.Format(timestampLayout),
		s.SourceFile,
		takeoff.Round3(s.GrossVolume),
		s.GrossMethod,
		takeoff.Round3(s.NetVolume),
		s.SpaceCount,
	}}); err != nil {
		f.Close()
		return nil, err
	}

	spaceRows := make([][]any, 0, len(r.Spaces))
	for _, row := range r.Spaces {
		spaceRows = append(spaceRows, []any{
			row.IfcType, row.Name, row.GlobalID, row.Volume, row.Method,
		})
	}
	if err := writeSheet(f, spacesSheet, headerStyle, SpacesHeader, spaceRows); err != nil {
		f.Close()
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		f.Close()
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeSheet(f *excelize.File, sheet string, headerStyle int, header []string, rows [][]any) error {
	for col, title := range header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("cell name: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, title); err != nil {
			return fmt.Errorf("set header %s: %w", cell, err)
		}
		if err := f.SetCellStyle(sheet, cell, cell, headerStyle); err != nil {
			return fmt.Errorf("style header %s: %w", cell, err)
		}
	}

	for i, row := range rows {
		for col, value := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return fmt.Errorf("cell name: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return fmt.Errorf("set cell %s: %w", cell, err)
			}
		}
	}

	last, err := excelize.ColumnNumberToName(len(header))
	if err != nil {
		return fmt.Errorf("column name: %w", err)
	}
	if err := f.SetColWidth(sheet, "A", last, 24); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}
	return nil
}

// WriteWorkbookFile writes the xlsx workbook to disk
func WriteWorkbookFile(path string, r *takeoff.Result) error {
	data, err := Workbook(r)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

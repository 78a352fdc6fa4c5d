// Package report renders a finished volume takeoff as CSV files and as
// an Excel workbook. All figures are rounded to 3 decimals and the
// timestamp comes from the takeoff itself, so rendering the same result
// twice produces byte-identical output.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rverbeek/ifctakeoff/pkg/takeoff"
)

// timestampLayout is the date format of the summary row
const timestampLayout = "2006-01-02 15:04"

// SummaryHeader are the summary CSV columns
var SummaryHeader = []string{
	"Datum", "IFC_bestand", "Bruto_inhoud_m3", "Bruto_methode",
	"Netto_inhoud_m3 (Σ IfcSpace)", "Ruimtes_geteld",
}

// SpacesHeader are the per-space CSV columns
var SpacesHeader = []string{"IfcType", "Naam", "GlobalId", "Netto_m3", "Methode"}

// formatVolume renders a cubic-meter figure with up to 3 decimals and
// no trailing zeros (12.5 stays 12.5, not 12.500)
func formatVolume(v float64) string {
	return strconv.FormatFloat(takeoff.Round3(v), 'f', -1, 64)
}

// WriteSummary writes the one-row summary table
func WriteSummary(w io.Writer, r *takeoff.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(SummaryHeader); err != nil {
		return err
	}
	s := r.Summary
	row := []string{
		s.Timestamp.Format(timestampLayout),
		s.SourceFile,
		formatVolume(s.GrossVolume),
		s.GrossMethod,
		formatVolume(s.NetVolume),
		strconv.Itoa(s.SpaceCount),
	}
	if err := cw.Write(row); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

// WriteSpaces writes the per-space table, one row per IfcSpace
func WriteSpaces(w io.Writer, r *takeoff.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(SpacesHeader); err != nil {
		return err
	}
	for _, row := range r.Spaces {
		record := []string{
			row.IfcType,
			row.Name,
			row.GlobalID,
			formatVolume(row.Volume),
			row.Method,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// SummaryPath derives the summary file path from the requested output
// path ("out.csv" becomes "out_summary.csv")
func SummaryPath(output string) string {
	return insertSuffix(output, "_summary")
}

// SpacesPath derives the per-space file path from the requested output
// path ("out.csv" becomes "out_spaces.csv")
func SpacesPath(output string) string {
	return insertSuffix(output, "_spaces")
}

func insertSuffix(output, suffix string) string {
	if strings.HasSuffix(output, ".csv") {
		return strings.TrimSuffix(output, ".csv") + suffix + ".csv"
	}
	return output + suffix + ".csv"
}

// WriteCSVFiles writes the summary and per-space tables next to the
// requested output path. The per-space file is only written when the
// model contains spaces.
func WriteCSVFiles(output string, r *takeoff.Result) error {
	if err := writeFile(SummaryPath(output), r, WriteSummary); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	if len(r.Spaces) == 0 {
		return nil
	}
	if err := writeFile(SpacesPath(output), r, WriteSpaces); err != nil {
		return fmt.Errorf("write spaces: %w", err)
	}
	return nil
}

func writeFile(path string, r *takeoff.Result, write func(io.Writer, *takeoff.Result) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f, r); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Package process runs the full takeoff pipeline for one IFC file:
// load, resolve volumes, write the CSV and xlsx reports.
package process

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/rverbeek/ifctakeoff/internal/report"
	"github.com/rverbeek/ifctakeoff/pkg/ifc"
	"github.com/rverbeek/ifctakeoff/pkg/kernel"
	"github.com/rverbeek/ifctakeoff/pkg/takeoff"
)

// Pipeline turns IFC files into takeoff reports. Geometry availability
// is decided once at construction and never re-probed.
type Pipeline struct {
	disableGeometry bool
	logger          *zap.Logger
	now             func() time.Time
}

func New(disableGeometry bool, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{
		disableGeometry: disableGeometry,
		logger:          logger,
		now:             time.Now,
	}
}

// Run loads an IFC file and resolves its volume takeoff
func (p *Pipeline) Run(ifcPath string) (*takeoff.Result, error) {
	model, err := ifc.Load(ifcPath)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", filepath.Base(ifcPath), err)
	}

	caps := takeoff.Capabilities{}
	if !p.disableGeometry {
		k, err := kernel.NewSPF(model)
		if err != nil {
			return nil, err
		}
		caps = takeoff.FullCapabilities(k)
	}

	result := takeoff.Run(model, p.now(), caps, p.logger)
	p.logger.Info("takeoff complete",
		zap.String("file", result.Summary.SourceFile),
		zap.Float64("gross_m3", result.Summary.GrossVolume),
		zap.String("gross_method", result.Summary.GrossMethod),
		zap.Float64("net_m3", result.Summary.NetVolume),
		zap.Int("spaces", result.Summary.SpaceCount))
	return result, nil
}

// WriteReports writes the CSV pair and the xlsx workbook for a finished
// takeoff into dir, named after base. It returns the workbook filename.
func (p *Pipeline) WriteReports(result *takeoff.Result, dir, base string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create result dir: %w", err)
	}

	base = strings.TrimSuffix(base, filepath.Ext(base))
	if err := report.WriteCSVFiles(filepath.Join(dir, base+".csv"), result); err != nil {
		return "", err
	}

	xlsxName := base + "_result.xlsx"
	if err := report.WriteWorkbookFile(filepath.Join(dir, xlsxName), result); err != nil {
		return "", fmt.Errorf("write workbook: %w", err)
	}
	return xlsxName, nil
}

// RunFile is Run plus WriteReports, returning the workbook filename
func (p *Pipeline) RunFile(ifcPath, resultDir string) (string, error) {
	result, err := p.Run(ifcPath)
	if err != nil {
		return "", err
	}
	return p.WriteReports(result, resultDir, filepath.Base(ifcPath))
}

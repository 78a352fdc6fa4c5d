package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rverbeek/ifctakeoff/internal/logging"
	"github.com/rverbeek/ifctakeoff/internal/process"
)

var (
	runOutput     string
	runNoGeometry bool
	runLogLevel   string
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Compute the volume takeoff for one IFC file",
	Long: `Resolve the gross building volume and the net volume per IfcSpace,
then write the summary CSV, the per-space CSV, and an Excel workbook
next to the requested output path.`,
	Args: cobra.ExactArgs(1),
	Run:  runTakeoff,
}

func init() {
	runCmd.Flags().StringVarP(&runOutput, "output", "o", "", "output directory (default: alongside the IFC file)")
	runCmd.Flags().BoolVar(&runNoGeometry, "no-geometry", false, "skip the geometric fallback, quantities only")
	runCmd.Flags().StringVar(&runLogLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.AddCommand(runCmd)
}

func runTakeoff(cmd *cobra.Command, args []string) {
	ifcPath := args[0]

	logger, err := logging.New(runLogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	outDir := runOutput
	if outDir == "" {
		outDir = filepath.Dir(ifcPath)
	}

	p := process.New(runNoGeometry, logger)
	result, err := p.Run(ifcPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if _, err := p.WriteReports(result, outDir, filepath.Base(ifcPath)); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing reports: %v\n", err)
		os.Exit(1)
	}

	s := result.Summary
	fmt.Println("Volume Takeoff")
	fmt.Println("==============")
	fmt.Printf("File: %s\n\n", s.SourceFile)
	fmt.Printf("Gross volume: %.3f m3  [%s]\n", s.GrossVolume, s.GrossMethod)
	fmt.Printf("Net volume:   %.3f m3  (%d spaces)\n", s.NetVolume, s.SpaceCount)
	fmt.Printf("\nReports written to %s\n", outDir)
}

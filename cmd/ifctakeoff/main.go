package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rverbeek/ifctakeoff/version"
)

var rootCmd = &cobra.Command{
	Use:   "ifctakeoff",
	Short: "NEN 2580 volume takeoff for IFC building models",
	Long: `ifctakeoff computes gross and net building volumes from IFC (STEP)
files. Authoritative quantity sets are used when present; otherwise the
volumes are estimated from the model geometry. Results are written as
CSV tables and an Excel workbook, each figure tagged with the method
that produced it.`,
	Version: version.String(),
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

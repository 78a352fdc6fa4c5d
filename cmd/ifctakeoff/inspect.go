package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/rverbeek/ifctakeoff/pkg/ifc"
	"github.com/rverbeek/ifctakeoff/pkg/kernel"
	"github.com/rverbeek/ifctakeoff/pkg/takeoff"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [file]",
	Short: "Display general information about an IFC file",
	Long:  "Show entity counts and the per-space volume resolution, including the method used for every figure.",
	Args:  cobra.ExactArgs(1),
	Run:   runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) {
	filename := args[0]

	model, err := ifc.Load(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing IFC file: %v\n", err)
		os.Exit(1)
	}

	k, err := kernel.NewSPF(model)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("IFC File Information")
	fmt.Println("====================")
	fmt.Printf("File: %s\n\n", filename)

	fmt.Println("Entity Counts:")
	for _, ifcType := range []string{"IFCBUILDING", "IFCBUILDINGSTOREY", "IFCSPACE",
		"IFCWALL", "IFCWALLSTANDARDCASE", "IFCSLAB", "IFCROOF"} {
		if n := len(model.ByType(ifcType)); n > 0 {
			fmt.Printf("  %s: %d\n", ifcType, n)
		}
	}

	result := takeoff.Run(model, time.Now(), takeoff.FullCapabilities(k), nil)
	s := result.Summary

	fmt.Println("\nGross Volume:")
	fmt.Printf("  %.3f m3  [%s]\n", s.GrossVolume, s.GrossMethod)

	fmt.Println("\nSpaces:")
	if len(result.Spaces) == 0 {
		fmt.Println("  (none)")
	}
	for _, row := range result.Spaces {
		fmt.Printf("  %-30s %10.3f m3  [%s]\n", row.Name, row.Volume, row.Method)
	}
	fmt.Printf("\nNet volume: %.3f m3 over %d spaces\n", s.NetVolume, s.SpaceCount)
}

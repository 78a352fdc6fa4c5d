package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rverbeek/ifctakeoff/internal/config"
	"github.com/rverbeek/ifctakeoff/internal/logging"
	"github.com/rverbeek/ifctakeoff/internal/process"
	"github.com/rverbeek/ifctakeoff/internal/server"
)

var serveConfigPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the upload server",
	Long: `Start an HTTP server that accepts IFC uploads, processes them in the
background, and serves the finished reports for download.`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&serveConfigPath, "config", "c", "", "path to config file")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) {
	cfg, err := config.Load(serveConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	srv := server.New(cfg, process.New(cfg.DisableGeometry, logger), logger)
	if err := srv.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

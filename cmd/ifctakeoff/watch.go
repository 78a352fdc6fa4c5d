package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rverbeek/ifctakeoff/internal/config"
	"github.com/rverbeek/ifctakeoff/internal/logging"
	"github.com/rverbeek/ifctakeoff/internal/process"
	"github.com/rverbeek/ifctakeoff/pkg/watcher"
)

var watchConfigPath string

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Process IFC files dropped into a hot folder",
	Long: `Watch a directory for new IFC files and run the takeoff on each one
as it arrives. Reports are written to the configured result directory.`,
	Run: runWatch,
}

func init() {
	watchCmd.Flags().StringVarP(&watchConfigPath, "config", "c", "", "path to config file")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) {
	cfg, err := config.Load(watchConfigPath)
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

	if err := os.MkdirAll(cfg.WatchDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	hot, err := watcher.New(cfg.WatchDir, 2*time.Second, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer hot.Close()

	pipeline := process.New(cfg.DisableGeometry, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("watching for IFC files",
		zap.String("dir", cfg.WatchDir),
		zap.String("results", cfg.ResultDir))

	err = hot.Run(ctx, func(path string) {
		if _, err := pipeline.RunFile(path, cfg.ResultDir); err != nil {
			logger.Error("processing failed", zap.String("file", path), zap.Error(err))
		}
	})
	if err != nil && ctx.Err() == nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

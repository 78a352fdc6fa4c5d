// Package config loads runtime settings for the takeoff tools from an
// optional config file and IFCTAKEOFF_* environment variables.
package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// Config holds the settings shared by the serve and watch commands
type Config struct {
	// ListenAddr is the HTTP listen address of the upload server
	ListenAddr string `mapstructure:"listen_addr"`

	// UploadDir receives uploaded IFC files, ResultDir the rendered
	// reports, LogDir the per-job processing logs
	UploadDir string `mapstructure:"upload_dir"`
	ResultDir string `mapstructure:"result_dir"`
	LogDir    string `mapstructure:"log_dir"`

	// WatchDir is the hot folder scanned for new IFC files
	WatchDir string `mapstructure:"watch_dir"`

	// DisableGeometry turns the geometric fallback off; quantities
	// still resolve, everything else reports Unavail
	DisableGeometry bool `mapstructure:"disable_geometry"`

	// MaxUploadBytes caps the size of an uploaded IFC file
	MaxUploadBytes int64 `mapstructure:"max_upload_bytes"`

	// LogLevel is a zap level name (debug, info, warn, error)
	LogLevel string `mapstructure:"log_level"`
}

// Load reads the configuration. A missing config file is not an error;
// defaults and environment variables still apply.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("listen_addr", ":8080")
	v.SetDefault("upload_dir", "uploads")
	v.SetDefault("result_dir", "results")
	v.SetDefault("log_dir", "logs")
	v.SetDefault("watch_dir", "incoming")
	v.SetDefault("disable_geometry", false)
	v.SetDefault("max_upload_bytes", int64(256<<20))
	v.SetDefault("log_level", "info")

	v.SetEnvPrefix("IFCTAKEOFF")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("ifctakeoff")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		// an explicit config file must exist; the implicit one may not
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}

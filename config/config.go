// Package config provides server configuration for the gallery rules engine.
// Precedence: CLI flags > environment > config file > defaults.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// ServerConfig holds everything the serve command needs to boot.
type ServerConfig struct {
	Port     int    `json:"port" mapstructure:"port"`
	DataDir  string `json:"data_dir" mapstructure:"data_dir"`
	DBPath   string `json:"db_path" mapstructure:"db_path"`
	LogLevel string `json:"log_level" mapstructure:"log_level"`

	// MaxRequestBytes bounds evaluation request bodies; large shops can send
	// sizeable rule sets but nothing should approach this.
	MaxRequestBytes int64 `json:"max_request_bytes" mapstructure:"max_request_bytes"`
}

// Load reads configuration from defaults, the GALLERY_-prefixed environment,
// and an optional config file.
func Load(configPath string) (*ServerConfig, error) {
	v := viper.New()

	v.SetDefault("port", 8080)
	v.SetDefault("data_dir", "./gallery_data")
	v.SetDefault("db_path", "./gallery_data/analytics.db")
	v.SetDefault("log_level", "info")
	v.SetDefault("max_request_bytes", 1<<20)

	v.SetEnvPrefix("GALLERY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &ServerConfig{
		Port:            v.GetInt("port"),
		DataDir:         v.GetString("data_dir"),
		DBPath:          v.GetString("db_path"),
		LogLevel:        v.GetString("log_level"),
		MaxRequestBytes: v.GetInt64("max_request_bytes"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks ranges and required paths.
func (cfg *ServerConfig) Validate() error {
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return fmt.Errorf("invalid port %d: must be in range 1-65535", cfg.Port)
	}
	if cfg.DataDir == "" {
		return fmt.Errorf("data_dir cannot be empty")
	}
	if cfg.DBPath == "" {
		return fmt.Errorf("db_path cannot be empty")
	}
	if cfg.MaxRequestBytes <= 0 {
		return fmt.Errorf("max_request_bytes must be positive, got %d", cfg.MaxRequestBytes)
	}
	return nil
}

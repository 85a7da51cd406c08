package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/conduit-lang/compound/internal/logging"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. COMPOUND_SERVER_PORT
const EnvPrefix = "COMPOUND"

var configNames = []string{"compound.yaml", "compound.yml"}

// Config represents the compound configuration
type Config struct {
	Fixture string         `mapstructure:"fixture"`
	Server  ServerConfig   `mapstructure:"server"`
	Render  RenderConfig   `mapstructure:"render"`
	Log     logging.Config `mapstructure:"log"`
}

// ServerConfig represents server configuration
type ServerConfig struct {
	Port      int    `mapstructure:"port"`
	Host      string `mapstructure:"host"`
	APIPrefix string `mapstructure:"api_prefix"`
}

// Addr returns the listen address
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// RenderConfig represents document rendering configuration
type RenderConfig struct {
	Pretty bool   `mapstructure:"pretty"`
	Indent string `mapstructure:"indent"`
}

// Load loads the configuration from path, or from compound.yaml in the
// current directory when path is empty. A missing default file is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("fixture", "")
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.api_prefix", "")
	v.SetDefault("render.pretty", false)
	v.SetDefault("render.indent", "  ")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("compound")
		v.AddConfigPath(".")
	}
	v.SetConfigType("yaml")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// A relative fixture path in a config file is relative to that file
	if used := v.ConfigFileUsed(); used != "" && config.Fixture != "" && !filepath.IsAbs(config.Fixture) {
		if os.Getenv(EnvPrefix+"_FIXTURE") == "" {
			config.Fixture = filepath.Join(filepath.Dir(used), config.Fixture)
		}
	}

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// FindConfigFile walks up from the current directory looking for compound.yaml
func FindConfigFile() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		for _, name := range configNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no compound.yaml found")
		}
		dir = parent
	}
}

// validateConfig validates the configuration
func validateConfig(cfg *Config) error {
	if cfg.Server.Port < 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 0 and 65535, got: %d", cfg.Server.Port)
	}
	if cfg.Server.APIPrefix != "" {
		if !strings.HasPrefix(cfg.Server.APIPrefix, "/") {
			return fmt.Errorf("server.api_prefix must start with '/', got: %s", cfg.Server.APIPrefix)
		}
		if strings.HasSuffix(cfg.Server.APIPrefix, "/") {
			return fmt.Errorf("server.api_prefix must not end with '/', got: %s", cfg.Server.APIPrefix)
		}
	}
	if strings.TrimSpace(cfg.Render.Indent) != "" {
		return fmt.Errorf("render.indent must be whitespace, got: %q", cfg.Render.Indent)
	}
	return nil
}

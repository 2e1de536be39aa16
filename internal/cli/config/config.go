package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	// DefaultServer is the summarization backend used before login sets one
	DefaultServer = "http://localhost:5000"

	// HomeEnv overrides the configuration directory (~/.lexctl)
	HomeEnv = "LEXCTL_HOME"

	configName = "config"
	configType = "yaml"
)

// Config stores CLI configuration
type Config struct {
	Server   string        `mapstructure:"server"`    // Summarization backend address
	UserID   string        `mapstructure:"user_id"`   // Signed-in user id
	Email    string        `mapstructure:"email"`     // Signed-in user email
	Timeout  time.Duration `mapstructure:"timeout"`   // Per-request timeout
	LogLevel string        `mapstructure:"log_level"` // debug, info, warn, error
}

// GetConfigDir returns the configuration directory (~/.lexctl or $LEXCTL_HOME)
func GetConfigDir() (string, error) {
	if dir := os.Getenv(HomeEnv); dir != "" {
		return dir, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".lexctl"), nil
}

// GetConfigPath returns the configuration file path (~/.lexctl/config.yaml)
func GetConfigPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configName+"."+configType), nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType(configType)
	v.SetDefault("server", DefaultServer)
	v.SetDefault("timeout", "2m")
	v.SetDefault("log_level", "info")

	// LEXCTL_SERVER, LEXCTL_TIMEOUT, ...
	v.SetEnvPrefix("LEXCTL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load loads configuration from file. A missing file yields the defaults.
func Load() (*Config, error) {
	configFile, err := GetConfigPath()
	if err != nil {
		return nil, err
	}

	v := newViper()
	v.SetConfigFile(configFile)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Use default server if set to an empty string
	if cfg.Server == "" {
		cfg.Server = DefaultServer
	}

	return &cfg, nil
}

// Save saves configuration to file
func (c *Config) Save() error {
	configFile, err := GetConfigPath()
	if err != nil {
		return err
	}

	// Ensure config directory exists
	if err := os.MkdirAll(filepath.Dir(configFile), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigType(configType)
	v.SetConfigPermissions(0600)
	v.Set("server", c.Server)
	v.Set("user_id", c.UserID)
	v.Set("email", c.Email)
	v.Set("timeout", c.Timeout.String())
	v.Set("log_level", c.LogLevel)

	if err := v.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// IsAuthenticated checks if a user is signed in
func (c *Config) IsAuthenticated() bool {
	return c.UserID != ""
}

// ClearIdentity forgets the signed-in user, keeping the server address
func (c *Config) ClearIdentity() {
	c.UserID = ""
	c.Email = ""
}

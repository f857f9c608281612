package configs

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

type Config struct {
	User      User            `toml:"user"`
	Watermark WatermarkConfig `toml:"watermark"`
	Audit     AuditConfig     `toml:"audit"`
}

type User struct {
	Name string `toml:"name"`
	UUID string `toml:"user_uuid"`
}

type WatermarkConfig struct {
	// DefaultFormat is the container used when the output path has no
	// recognizable extension. Must be lossless.
	DefaultFormat string `toml:"default_format"`
	// Suffix is appended to the input stem to name the output file.
	Suffix    string `toml:"suffix"`
	Overwrite bool   `toml:"overwrite"`
}

type AuditConfig struct {
	Enabled bool `toml:"enabled"`
	// Path overrides the activity log location.
	Path string `toml:"path"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Watermark: WatermarkConfig{
			DefaultFormat: "png",
			Suffix:        ".watermarked",
		},
		Audit: AuditConfig{
			Enabled: true,
		},
	}
}

// ConfigPath returns the path of the user config file.
func ConfigPath() string {
	return filepath.Join(UserVaultmarkSettings.UserConfigsPath, "config.toml")
}

// LoadConfig loads the user configuration, falling back to defaults.
func LoadConfig() (*Config, error) {
	config := DefaultConfig()

	if _, err := os.Stat(ConfigPath()); os.IsNotExist(err) {
		return config, nil
	}

	if err := LoadTOML(ConfigPath(), config); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return config, nil
}

// SaveConfig saves the user configuration.
func SaveConfig(config *Config) error {
	if err := SaveTOML(ConfigPath(), config); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	return nil
}

// GenerateUserUUID generates a new UUID for the user.
func GenerateUserUUID() string {
	return uuid.New().String()
}

// EnsureConfig loads the configuration and persists it with a user UUID and
// name if either is missing.
func EnsureConfig() (*Config, error) {
	config, err := LoadConfig()
	if err != nil {
		return nil, err
	}

	changed := false
	if config.User.UUID == "" {
		config.User.UUID = GenerateUserUUID()
		changed = true
	}
	if config.User.Name == "" {
		config.User.Name = UserVaultmarkSettings.Username
		changed = true
	}

	if changed {
		if err := SaveConfig(config); err != nil {
			return nil, err
		}
	}

	return config, nil
}

// AuditLogPath returns where activity entries are appended.
func (c *Config) AuditLogPath() string {
	if c.Audit.Path != "" {
		return c.Audit.Path
	}
	return filepath.Join(UserVaultmarkSettings.UserDataPath, "activity.jsonl")
}

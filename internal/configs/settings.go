package configs

import (
	"os"
	"path/filepath"

	"github.com/PolarWolf314/vaultmark/internal/utils"
)

type UserSettings struct {
	UserConfigsPath string
	UserDataPath    string
	Username        string
}

var UserVaultmarkSettings *UserSettings

func init() {
	UserVaultmarkSettings = DefaultUserSettings()
}

// DefaultUserSettings resolves the user's config and data directories.
func DefaultUserSettings() *UserSettings {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = os.TempDir()
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = filepath.Join(homeDir, ".config")
	}

	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		dataDir = filepath.Join(homeDir, ".local", "share")
	}

	username, err := utils.GetUsername()
	if err != nil {
		username = "unknown"
	}

	return &UserSettings{
		UserConfigsPath: filepath.Join(configDir, "vaultmark"),
		UserDataPath:    filepath.Join(dataDir, "vaultmark"),
		Username:        username,
	}
}

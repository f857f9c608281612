package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/PolarWolf314/vaultmark/internal/configs"
	"github.com/PolarWolf314/vaultmark/internal/ui"

	"github.com/spf13/cobra"
)

var configShowJSON bool

func init() {
	configShowCmd.Flags().BoolVar(&configShowJSON, "json", false, "output in JSON format")
}

// resetConfigShowState resets the config show command's global state for testing.
func resetConfigShowState() {
	configShowJSON = false
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display current configuration",
	Long: `Displays the current vaultmark configuration, including defaults for
settings not present in the configuration file.

Examples:
  vaultmark config show
  vaultmark config show --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ConfigLogger.Infof("Starting config show command")

		config, err := configs.LoadConfig()
		if err != nil {
			return ConfigLogger.ErrorfAndReturn("Failed to load user config: %v", err)
		}

		if configShowJSON {
			output, err := json.MarshalIndent(config, "", "  ")
			if err != nil {
				return ConfigLogger.ErrorfAndReturn("Failed to marshal config to JSON: %v", err)
			}
			fmt.Println(string(output))
			return nil
		}

		path := configs.ConfigPath()
		if _, err := os.Stat(path); os.IsNotExist(err) {
			fmt.Println(ui.Warning.Sprint("⚠") + " No configuration file found; showing defaults.")
			fmt.Println(ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("vaultmark config init") + " to create one")
			fmt.Println()
		} else {
			fmt.Println(ui.Info.Sprint("User Configuration") + " (" + path + "):")
			fmt.Println()
		}

		printConfigSummary(config)
		return nil
	},
}

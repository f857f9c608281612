package cmd

import (
	"fmt"

	"github.com/PolarWolf314/vaultmark/internal/configs"
	"github.com/PolarWolf314/vaultmark/internal/imageio"
	"github.com/PolarWolf314/vaultmark/internal/ui"

	"github.com/spf13/cobra"
)

var (
	configInitName      string
	configInitFormat    string
	configInitSuffix    string
	configInitOverwrite bool
	configInitAudit     bool
)

func init() {
	configInitCmd.Flags().StringVarP(&configInitName, "name", "n", "", "name recorded in the activity log (defaults to your login)")
	configInitCmd.Flags().StringVar(&configInitFormat, "format", "", "default output format: png or bmp")
	configInitCmd.Flags().StringVar(&configInitSuffix, "suffix", "", "suffix for derived output names")
	configInitCmd.Flags().BoolVar(&configInitOverwrite, "overwrite", false, "replace existing output files by default")
	configInitCmd.Flags().BoolVar(&configInitAudit, "audit", true, "keep a local activity log")
}

// resetConfigInitState resets the config init command's global state for testing.
func resetConfigInitState() {
	configInitName = ""
	configInitFormat = ""
	configInitSuffix = ""
	configInitOverwrite = false
	configInitAudit = true
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize your user configuration",
	Long: `Creates or updates your configuration file with your identity and
watermark defaults. A user ID is generated on first run and recorded with
every activity log entry.

Only the flags you pass are changed.

Examples:
  vaultmark config init
  vaultmark config init --name alice
  vaultmark config init --format bmp --suffix -marked
  vaultmark config init --audit=false`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ConfigLogger.Infof("Starting config init command")

		config, err := configs.EnsureConfig()
		if err != nil {
			return ConfigLogger.ErrorfAndReturn("Failed to load user config: %v", err)
		}
		ConfigLogger.Debugf("Loaded config from %s", configs.ConfigPath())

		flags := cmd.Flags()
		if flags.Changed("name") {
			config.User.Name = configInitName
		}
		if flags.Changed("format") {
			format, err := imageio.ParseFormat(configInitFormat)
			if err != nil || !format.Lossless() {
				fmt.Println(ui.Error.Sprint("✗") + " Invalid default format: " + ui.Highlight.Sprint(configInitFormat) + "\n" +
					ui.Info.Sprint("→") + " Use png or bmp")
				return nil
			}
			config.Watermark.DefaultFormat = string(format)
		}
		if flags.Changed("suffix") {
			config.Watermark.Suffix = configInitSuffix
		}
		if flags.Changed("overwrite") {
			config.Watermark.Overwrite = configInitOverwrite
		}
		if flags.Changed("audit") {
			config.Audit.Enabled = configInitAudit
		}

		if err := configs.SaveConfig(config); err != nil {
			return ConfigLogger.ErrorfAndReturn("Failed to save user config: %v", err)
		}
		ConfigLogger.Infof("Saved config for user %s", config.User.UUID)

		fmt.Println(ui.Success.Sprint("✓") + " User configuration saved to " + ui.Path.Sprint(configs.ConfigPath()))
		fmt.Println()
		printConfigSummary(config)
		return nil
	},
}

func printConfigSummary(config *configs.Config) {
	fmt.Println("Your settings:")
	fmt.Println("  Name:      " + ui.Info.Sprint(config.User.Name))
	fmt.Println("  User ID:   " + ui.Warning.Sprint(config.User.UUID))
	fmt.Println("  Format:    " + ui.Info.Sprint(config.Watermark.DefaultFormat))
	fmt.Println("  Suffix:    " + ui.Info.Sprint(config.Watermark.Suffix))
	fmt.Printf("  Overwrite: %t\n", config.Watermark.Overwrite)
	if config.Audit.Enabled {
		fmt.Println("  Audit log: " + ui.Path.Sprint(config.AuditLogPath()))
	} else {
		fmt.Println("  Audit log: " + ui.Muted.Sprint("disabled"))
	}
}

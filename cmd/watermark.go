package cmd

import (
	logger "github.com/PolarWolf314/vaultmark/internal/logging"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	verbose bool
	debug   bool
	Logger  logger.Logger

	WatermarkCmd = &cobra.Command{
		Use:     "watermark",
		Aliases: []string{"wm"},
		Short:   "Embed, extract and verify image watermarks",
		Long: `Hides a text watermark in the least significant bits of an image's
color channels, and recovers it again.

Watermarks survive only lossless storage: output is always PNG or BMP.
An optional key obfuscates the payload; --seal encrypts it with a passphrase.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			Logger = logger.Logger{
				Verbose: verbose,
				Debug:   debug,
			}
			Logger.Debugf("Initializing watermark command with verbose=%t, debug=%t", verbose, debug)
		},
	}
)

func init() {
	WatermarkCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	WatermarkCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")

	WatermarkCmd.AddCommand(embedCmd)
	WatermarkCmd.AddCommand(extractCmd)
	WatermarkCmd.AddCommand(verifyCmd)
	WatermarkCmd.AddCommand(capacityCmd)
	WatermarkCmd.AddCommand(logCmd)
}

// GetWatermarkCmd returns the WatermarkCmd for testing.
func GetWatermarkCmd() *cobra.Command {
	return WatermarkCmd
}

// ResetGlobalState resets all global variables to their default values for testing.
func ResetGlobalState() {
	verbose = false
	debug = false
	resetEmbedCommandState()
	resetExtractCommandState()
	resetVerifyCommandState()
	resetCapacityCommandState()
	resetLogCommandState()
	resetCobraFlagState(WatermarkCmd)
}

// resetCobraFlagState clears Changed on every flag below root to prevent test pollution.
func resetCobraFlagState(root *cobra.Command) {
	unset := func(flag *pflag.Flag) { flag.Changed = false }
	root.PersistentFlags().VisitAll(unset)
	root.Flags().VisitAll(unset)
	for _, sub := range root.Commands() {
		resetCobraFlagState(sub)
	}
}

// SetLogger sets the logger for testing.
func SetLogger(l logger.Logger) {
	Logger = l
}

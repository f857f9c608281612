package cmd

import (
	"fmt"

	"github.com/PolarWolf314/vaultmark/internal/ui"
	"github.com/PolarWolf314/vaultmark/internal/workflows"

	"github.com/spf13/cobra"
)

var capacityMessage string

func init() {
	capacityCmd.Flags().StringVarP(&capacityMessage, "message", "m", "", "check whether this message fits")
}

// resetCapacityCommandState resets the capacity command's global state for testing.
func resetCapacityCommandState() {
	capacityMessage = ""
}

var capacityCmd = &cobra.Command{
	Use:   "capacity <image>",
	Short: "Show how much text an image can hold",
	Long: `Reports the largest watermark an image can carry. Each pixel holds three
bits (one per color channel); 32 bits go to the header and each character
takes 16.

Examples:
  vaultmark watermark capacity photo.png
  vaultmark watermark capacity photo.png -m "CONFIDENTIAL"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting capacity command")

		result, err := workflows.Capacity(cmd.Context(), workflows.CapacityOptions{
			InputPath: args[0],
			Message:   capacityMessage,
		})
		if err != nil {
			fmt.Println(formatWatermarkError(err))
			if isUnexpectedError(err) {
				return err
			}
			return nil
		}
		Logger.Debugf("%s: %d slots", result.InputPath, result.Slots)

		fmt.Printf("%s %s\n", ui.Path.Sprint(result.InputPath), ui.Muted.Sprintf("%dx%d %s", result.Width, result.Height, result.Format))
		fmt.Printf("  %-10s %s\n", "Capacity:", ui.Highlight.Sprint(ui.Units(result.CapacityUnits)))
		fmt.Printf("  %-10s %s\n", "LSB space:", ui.Bytes(result.Slots/8))

		if capacityMessage != "" {
			if result.Fits {
				fmt.Println(ui.Success.Sprint("✓") + " Message fits " + ui.Muted.Sprint(ui.Units(result.MessageUnits)))
			} else {
				fmt.Println(ui.Error.Sprint("✗") + " Message too large for this image " + ui.Muted.Sprint(ui.Units(result.MessageUnits)))
			}
		}
		return nil
	},
}

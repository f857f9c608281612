package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/PolarWolf314/vaultmark/internal/ui"
	"github.com/PolarWolf314/vaultmark/internal/utils"
	"github.com/PolarWolf314/vaultmark/internal/workflows"

	"github.com/spf13/cobra"
)

var (
	embedMessage     string
	embedMessageFile string
	embedOutput      string
	embedFormat      string
	embedKey         keyFlags
	embedSeal        bool
	embedOverwrite   bool
	embedDryRun      bool
)

func init() {
	embedCmd.Flags().StringVarP(&embedMessage, "message", "m", "", "watermark text (- reads stdin)")
	embedCmd.Flags().StringVar(&embedMessageFile, "message-file", "", "read the watermark text from a file")
	embedCmd.Flags().StringVarP(&embedOutput, "output", "o", "", "output image path (default: <name>.watermarked.png)")
	embedCmd.Flags().StringVarP(&embedFormat, "format", "f", "", "output format: png or bmp")
	embedCmd.Flags().StringVarP(&embedKey.value, "key", "k", "", "obfuscation key")
	embedCmd.Flags().BoolVar(&embedKey.stdin, "key-stdin", false, "read the obfuscation key from stdin")
	embedCmd.Flags().BoolVar(&embedKey.prompt, "ask-key", false, "prompt for the obfuscation key")
	embedCmd.Flags().BoolVar(&embedSeal, "seal", false, "encrypt the message with a passphrase ("+passphraseEnv+" or prompt)")
	embedCmd.Flags().BoolVar(&embedOverwrite, "overwrite", false, "replace the output file if it exists")
	embedCmd.Flags().BoolVar(&embedDryRun, "dry-run", false, "check that the message fits without writing anything")
	embedCmd.MarkFlagsMutuallyExclusive("message", "message-file")
}

// resetEmbedCommandState resets the embed command's global state for testing.
func resetEmbedCommandState() {
	embedMessage = ""
	embedMessageFile = ""
	embedOutput = ""
	embedFormat = ""
	embedKey.reset()
	embedSeal = false
	embedOverwrite = false
	embedDryRun = false
}

var embedCmd = &cobra.Command{
	Use:   "embed <image>",
	Short: "Hide a text watermark in an image",
	Long: `Writes a text watermark into the least significant bits of an image.

The input may be PNG, BMP, GIF or JPEG. The output is always lossless
(PNG unless the output path or --format says BMP), because any lossy
re-encoding destroys the watermark.

Examples:
  vaultmark watermark embed photo.png -m "CONFIDENTIAL"
  vaultmark watermark embed photo.jpg -m "owner:alice" -k pw123 -o marked.png
  vaultmark watermark embed photo.png --message-file notice.txt --ask-key
  echo "owner:alice" | vaultmark watermark embed photo.png -m -
  vaultmark watermark embed photo.png -m "secret" --seal
  vaultmark watermark embed photo.png -m "will it fit?" --dry-run`,
	Args: cobra.ExactArgs(1),
	RunE: runEmbed,
}

func runEmbed(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting embed command")
	input := args[0]

	message, err := embedMessageText()
	if err != nil {
		return Logger.ErrorfAndReturn("%v", err)
	}

	key, err := embedKey.resolve(true)
	if err != nil {
		return Logger.ErrorfAndReturn("%v", err)
	}

	var passphrase string
	if embedSeal && !embedDryRun {
		passphrase, err = readSealPassphrase(true)
		if err != nil {
			return Logger.ErrorfAndReturn("%v", err)
		}
	}

	spinner, cleanup := startSpinner("Embedding watermark...", verbose)
	defer cleanup()

	opts := workflows.EmbedOptions{
		InputPath:      input,
		OutputPath:     embedOutput,
		Format:         embedFormat,
		Message:        message,
		Key:            key,
		Seal:           embedSeal,
		SealPassphrase: passphrase,
		Overwrite:      embedOverwrite,
		DryRun:         embedDryRun,
	}
	Logger.Debugf("Embedding %d bytes into %s (keyed=%t, sealed=%t)", len(message), input, key != "", embedSeal)

	result, err := workflows.Embed(cmd.Context(), opts)
	if err != nil {
		Logger.Debugf("Embed failed: %v", err)
		spinner.FinalMSG = formatWatermarkError(err)
		if isUnexpectedError(err) {
			return err
		}
		return nil
	}

	Logger.Infof("Image is %dx%d, payload needs %d of %d bits", result.Width, result.Height, result.RequiredBits, result.AvailableBits)

	if result.DryRun {
		spinner.FinalMSG = formatEmbedDryRun(result)
		return nil
	}

	if !result.InputFormat.Lossless() {
		spinner.Stop()
		Logger.WarnfAlways("%s is %s, which cannot hold a watermark; wrote %s instead", input, result.InputFormat, result.OutputFormat)
	}

	finalMessage := ui.Success.Sprint("✓") + " Watermark embedded into " + ui.Path.Sprint(result.OutputPath) + "\n" +
		fmt.Sprintf("  %s used of %s available", ui.Units(result.PayloadUnits), ui.Units(result.CapacityUnits))
	if result.Sealed {
		finalMessage += "\n" + ui.Info.Sprint("→") + " The message is sealed; extract it with " + ui.Flag.Sprint("--open")
	}
	if result.Keyed {
		finalMessage += "\n" + ui.Info.Sprint("→") + " Keep the key: the watermark is unreadable without it"
	}
	spinner.FinalMSG = finalMessage
	return nil
}

func embedMessageText() (string, error) {
	if embedMessageFile != "" {
		data, err := os.ReadFile(embedMessageFile)
		if err != nil {
			return "", fmt.Errorf("failed to read message file: %w", err)
		}
		return string(data), nil
	}
	switch embedMessage {
	case "":
		return "", errors.New("a message is required: use --message or --message-file")
	case "-":
		if embedKey.stdin {
			return "", errors.New("--message - and --key-stdin both need stdin")
		}
		data, err := utils.ReadStdin()
		if err != nil {
			return "", err
		}
		return string(data), nil
	default:
		return embedMessage, nil
	}
}

func formatEmbedDryRun(result *workflows.EmbedResult) string {
	header := ui.Warning.Sprint("[dry-run]") + " " + ui.Path.Sprint(result.InputPath) +
		fmt.Sprintf(" (%dx%d %s)", result.Width, result.Height, result.InputFormat)

	label := "Message: "
	if result.Sealed {
		label = "Sealed:  "
	}
	sizes := fmt.Sprintf("  %s %s (%s of %s)\n  Capacity: %s",
		label,
		ui.Units(result.PayloadUnits),
		ui.Bytes(result.RequiredBits/8),
		ui.Bytes(result.AvailableBits/8),
		ui.Units(result.CapacityUnits))

	if !result.Fits {
		return header + "\n" + sizes + "\n" + ui.Error.Sprint("✗") + " Message too large for this image"
	}
	msg := header + "\n" + sizes + "\n" + ui.Success.Sprint("✓") + " Message fits; would write " + ui.Path.Sprint(result.OutputPath)
	if result.OutputExists && !embedOverwrite {
		msg += "\n" + ui.Warning.Sprint("⚠") + " Output already exists; add " + ui.Flag.Sprint("--overwrite") + " to replace it"
	}
	return msg + "\n" + ui.Muted.Sprint("No changes made")
}

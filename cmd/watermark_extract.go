package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/PolarWolf314/vaultmark/internal/secrets"
	"github.com/PolarWolf314/vaultmark/internal/ui"
	"github.com/PolarWolf314/vaultmark/internal/workflows"

	"github.com/spf13/cobra"
)

var (
	extractKey  keyFlags
	extractOpen bool
	extractRaw  bool
	extractJSON bool
)

func init() {
	extractCmd.Flags().StringVarP(&extractKey.value, "key", "k", "", "obfuscation key used when embedding")
	extractCmd.Flags().BoolVar(&extractKey.stdin, "key-stdin", false, "read the obfuscation key from stdin")
	extractCmd.Flags().BoolVar(&extractKey.prompt, "ask-key", false, "prompt for the obfuscation key")
	extractCmd.Flags().BoolVar(&extractOpen, "open", false, "open a sealed message ("+passphraseEnv+" or prompt)")
	extractCmd.Flags().BoolVar(&extractRaw, "raw", false, "print only the message")
	extractCmd.Flags().BoolVar(&extractJSON, "json", false, "output as JSON")
	extractCmd.MarkFlagsMutuallyExclusive("raw", "json")
}

// resetExtractCommandState resets the extract command's global state for testing.
func resetExtractCommandState() {
	extractKey.reset()
	extractOpen = false
	extractRaw = false
	extractJSON = false
}

var extractCmd = &cobra.Command{
	Use:   "extract <image>",
	Short: "Recover the watermark from an image",
	Long: `Reads the watermark hidden in an image.

A wrong key is not detected: the output is simply unreadable. A sealed
message is shown in its sealed form unless --open is given.

Examples:
  vaultmark watermark extract marked.png
  vaultmark watermark extract marked.png -k pw123
  vaultmark watermark extract marked.png --open
  vaultmark watermark extract marked.png --raw > message.txt`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

type extractOutput struct {
	Path    string `json:"path"`
	Format  string `json:"format"`
	Message string `json:"message"`
	Units   int    `json:"units"`
	Sealed  bool   `json:"sealed"`
	Opened  bool   `json:"opened"`
}

func runExtract(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting extract command")
	input := args[0]

	key, err := extractKey.resolve(false)
	if err != nil {
		return Logger.ErrorfAndReturn("%v", err)
	}

	var passphrase string
	if extractOpen {
		passphrase, err = readSealPassphrase(false)
		if err != nil {
			return Logger.ErrorfAndReturn("%v", err)
		}
	}

	quiet := extractRaw || extractJSON
	spinner, cleanup := startSpinner("Extracting watermark...", verbose || quiet)
	defer cleanup()

	result, err := workflows.Extract(cmd.Context(), workflows.ExtractOptions{
		InputPath:      input,
		Key:            key,
		SealPassphrase: passphrase,
	})
	if err != nil {
		Logger.Debugf("Extract failed: %v", err)
		spinner.FinalMSG = formatWatermarkError(err)
		if isUnexpectedError(err) {
			return err
		}
		return nil
	}
	Logger.Infof("Recovered %d code units from %s", result.PayloadUnits, input)

	switch {
	case extractRaw:
		fmt.Print(result.Message)
		return nil
	case extractJSON:
		data, err := json.MarshalIndent(extractOutput{
			Path:    result.InputPath,
			Format:  string(result.Format),
			Message: result.Message,
			Units:   result.PayloadUnits,
			Sealed:  result.Sealed,
			Opened:  result.Opened,
		}, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal result to JSON: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	finalMessage := ui.Success.Sprint("✓") + " Watermark found in " + ui.Path.Sprint(result.InputPath) + "\n" +
		"  " + ui.Highlight.Sprint(result.Message)
	if result.Sealed && !result.Opened {
		finalMessage += "\n" + ui.Info.Sprint("→") + " This message is sealed (" + ui.Muted.Sprint(secrets.SealPrefix) + "); use " +
			ui.Flag.Sprint("--open") + " to read it"
	}
	spinner.FinalMSG = finalMessage
	return nil
}

package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/PolarWolf314/vaultmark/internal/ui"
	"github.com/PolarWolf314/vaultmark/internal/utils"
	"github.com/PolarWolf314/vaultmark/internal/workflows"

	"github.com/spf13/cobra"
)

var (
	verifyKey          keyFlags
	verifyShowMessages bool
	verifyJSON         bool
)

func init() {
	verifyCmd.Flags().StringVarP(&verifyKey.value, "key", "k", "", "obfuscation key, to show readable messages")
	verifyCmd.Flags().BoolVar(&verifyKey.stdin, "key-stdin", false, "read the obfuscation key from stdin")
	verifyCmd.Flags().BoolVar(&verifyKey.prompt, "ask-key", false, "prompt for the obfuscation key")
	verifyCmd.Flags().BoolVar(&verifyShowMessages, "show", false, "print each recovered message")
	verifyCmd.Flags().BoolVar(&verifyJSON, "json", false, "output as JSON")
}

// resetVerifyCommandState resets the verify command's global state for testing.
func resetVerifyCommandState() {
	verifyKey.reset()
	verifyShowMessages = false
	verifyJSON = false
}

var verifyCmd = &cobra.Command{
	Use:   "verify <path|glob>...",
	Short: "Check which images carry a watermark",
	Long: `Checks images for a watermark. Accepts files, directories and globs,
including ** for recursive matches (quote globs so the shell leaves them alone).

Examples:
  vaultmark watermark verify marked.png
  vaultmark watermark verify 'assets/**/*.png'
  vaultmark watermark verify exports/ --show -k pw123
  vaultmark watermark verify '*.png' --json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runVerify,
}

type verifyOutput struct {
	Path    string `json:"path"`
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Sealed  bool   `json:"sealed,omitempty"`
	Error   string `json:"error,omitempty"`
}

func runVerify(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting verify command")

	key, err := verifyKey.resolve(false)
	if err != nil {
		return Logger.ErrorfAndReturn("%v", err)
	}

	spinner, cleanup := startSpinner("Verifying images...", verbose || verifyJSON)
	defer cleanup()

	result, err := workflows.Verify(cmd.Context(), workflows.VerifyOptions{
		Patterns: args,
		Key:      key,
	})
	if err != nil {
		Logger.Debugf("Verify failed: %v", err)
		spinner.FinalMSG = formatWatermarkError(err)
		if isUnexpectedError(err) {
			return err
		}
		return nil
	}
	Logger.Infof("Verified %d files", len(result.Files))

	if verifyJSON {
		out := make([]verifyOutput, 0, len(result.Files))
		for _, f := range result.Files {
			o := verifyOutput{Path: f.Path, Status: string(f.Status), Message: f.Message, Sealed: f.Sealed}
			if f.Err != nil {
				o.Error = f.Err.Error()
			}
			out = append(out, o)
		}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal result to JSON: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	var lines string
	for _, f := range result.Files {
		lines += formatVerifyLine(f) + "\n"
	}

	summary := fmt.Sprintf("%d of %d images carry a watermark", result.FoundCount, len(result.Files))
	if result.ErrorCount > 0 {
		summary += fmt.Sprintf(", %d could not be read", result.ErrorCount)
	}
	spinner.FinalMSG = lines + summary
	return nil
}

func formatVerifyLine(f workflows.FileVerification) string {
	path := ui.Path.Sprint(displayPath(f.Path))
	switch f.Status {
	case workflows.StatusFound:
		line := ui.Success.Sprint("✓") + " " + path
		if verifyShowMessages {
			line += "  " + ui.Highlight.Sprint(utils.Truncate(f.Message, 60))
		} else if f.Sealed {
			line += "  " + ui.Muted.Sprint("sealed")
		}
		return line
	case workflows.StatusMissing:
		return ui.Warning.Sprint("-") + " " + path + "  " + ui.Muted.Sprint("no watermark")
	case workflows.StatusCorrupt:
		return ui.Error.Sprint("✗") + " " + path + "  corrupt watermark"
	default:
		return ui.Error.Sprint("✗") + " " + path + "  " + f.Err.Error()
	}
}

// displayPath shows path relative to the working directory when it is inside it.
func displayPath(path string) string {
	wd, err := os.Getwd()
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(wd, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}

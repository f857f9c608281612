package cmd

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	verrors "github.com/PolarWolf314/vaultmark/internal/errors"
	"github.com/PolarWolf314/vaultmark/internal/ui"
	"github.com/PolarWolf314/vaultmark/internal/utils"

	"github.com/briandowns/spinner"
)

// passphraseEnv supplies the seal passphrase non-interactively.
const passphraseEnv = "VAULTMARK_PASSPHRASE"

// startSpinner creates and starts a spinner with the given message when not in verbose or debug mode.
// Returns the spinner and a function that should be deferred to clean up.
//
// spinner.FinalMSG values do not need trailing newlines; the cleanup function adds one.
func startSpinner(message string, verbose bool) (*spinner.Spinner, func()) {
	return startSpinnerWithFlags(message, verbose, debug)
}

// startSpinnerWithFlags is startSpinner for commands with their own flag variables.
func startSpinnerWithFlags(message string, verbose, debugFlag bool) (*spinner.Spinner, func()) {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message

	// Continue without a colored spinner if the terminal refuses it.
	_ = s.Color("cyan")

	quiet := !verbose && !debugFlag
	if quiet {
		s.Start()
		log.SetOutput(io.Discard)
	}

	cleanup := func() {
		if quiet {
			log.SetOutput(os.Stdout)
		}

		finalMsg := ""
		if s.FinalMSG != "" {
			finalMsg = ui.EnsureNewline(s.FinalMSG)
			// Clear FinalMSG so s.Stop() doesn't print it.
			s.FinalMSG = ""
		}

		if quiet {
			s.Stop()
		}

		// Printed to stdout so tests can capture it.
		if finalMsg != "" {
			fmt.Print(finalMsg)
		}
	}

	return s, cleanup
}

// keyFlags are the mutually exclusive ways a command accepts the obfuscation key.
type keyFlags struct {
	value  string
	stdin  bool
	prompt bool
}

func (k *keyFlags) reset() {
	k.value = ""
	k.stdin = false
	k.prompt = false
}

// resolve returns the key, reading stdin or the terminal as requested.
// confirm asks twice when prompting.
func (k *keyFlags) resolve(confirm bool) (string, error) {
	sources := 0
	for _, set := range []bool{k.value != "", k.stdin, k.prompt} {
		if set {
			sources++
		}
	}
	if sources > 1 {
		return "", errors.New("use only one of --key, --key-stdin and --ask-key")
	}

	switch {
	case k.stdin:
		Logger.Debugf("Reading key from stdin")
		return utils.ReadKeyFromStdin()
	case k.prompt && confirm:
		return utils.ReadPassphraseConfirmed("Key: ")
	case k.prompt:
		return utils.ReadPassphrase("Key: ")
	default:
		if k.value != "" {
			Logger.Warnf("Keys passed with --key may end up in shell history; prefer --ask-key or --key-stdin")
		}
		return k.value, nil
	}
}

// readSealPassphrase takes the passphrase from the environment or prompts for it.
func readSealPassphrase(confirm bool) (string, error) {
	if p, ok := os.LookupEnv(passphraseEnv); ok && p != "" {
		Logger.Debugf("Using seal passphrase from %s", passphraseEnv)
		return p, nil
	}
	if !utils.IsTerminal() {
		return "", fmt.Errorf("cannot prompt for the seal passphrase without a terminal; set %s", passphraseEnv)
	}
	if confirm {
		return utils.ReadPassphraseConfirmed("Seal passphrase: ")
	}
	return utils.ReadPassphrase("Seal passphrase: ")
}

// formatWatermarkError formats a workflow error for display to the user.
func formatWatermarkError(err error) string {
	cross := ui.Error.Sprint("✗")
	arrow := ui.Info.Sprint("→")

	switch {
	case errors.Is(err, verrors.ErrPayloadTooLong):
		return cross + " Message too long: a watermark holds at most 65,535 characters"

	case errors.Is(err, verrors.ErrCapacityExceeded):
		return cross + " Message too large for this image\n" +
			arrow + " Run " + ui.Code.Sprint("vaultmark watermark capacity <image>") + " to see how much fits"

	case errors.Is(err, verrors.ErrNoWatermarkFound):
		return cross + " No watermark found"

	case errors.Is(err, verrors.ErrCorruptPayload):
		return cross + " " + err.Error() + "\n" +
			arrow + " The image may have been re-encoded with a lossy format"

	case errors.Is(err, verrors.ErrFileNotFound):
		return cross + " " + err.Error()

	case errors.Is(err, verrors.ErrUnsupportedFormat):
		return cross + " " + err.Error() + "\n" +
			arrow + " Supported formats are PNG, BMP, GIF and JPEG"

	case errors.Is(err, verrors.ErrLossyFormat):
		return cross + " Cannot write a watermark to a lossy format\n" +
			arrow + " Use " + ui.Flag.Sprint("--format png") + " or " + ui.Flag.Sprint("--format bmp")

	case errors.Is(err, verrors.ErrOutputExists):
		return cross + " " + err.Error() + "\n" +
			arrow + " Use " + ui.Flag.Sprint("--overwrite") + " to replace it"

	case errors.Is(err, verrors.ErrOpenFailed):
		return cross + " Could not open the sealed watermark: wrong passphrase or tampered image"

	case errors.Is(err, verrors.ErrInvalidSealedPayload):
		return cross + " The watermark looks sealed but is malformed\n" + ui.Muted.Sprint(err.Error())

	case errors.Is(err, verrors.ErrSealFailed):
		return cross + " Failed to seal the message: " + err.Error()

	case errors.Is(err, verrors.ErrNoFilesFound):
		return cross + " No matching images found"

	default:
		return cross + " " + err.Error()
	}
}

// isUnexpectedError returns true if the error is unexpected and should cause a non-zero exit.
func isUnexpectedError(err error) bool {
	expected := []error{
		verrors.ErrCapacityExceeded,
		verrors.ErrNoWatermarkFound,
		verrors.ErrCorruptPayload,
		verrors.ErrFileNotFound,
		verrors.ErrUnsupportedFormat,
		verrors.ErrLossyFormat,
		verrors.ErrOutputExists,
		verrors.ErrOpenFailed,
		verrors.ErrInvalidSealedPayload,
		verrors.ErrSealFailed,
		verrors.ErrNoFilesFound,
		verrors.ErrInvalidDateFormat,
	}
	for _, e := range expected {
		if errors.Is(err, e) {
			return false
		}
	}
	return true
}

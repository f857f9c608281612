package utils

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/term"
)

// ReadPassphrase prompts on stderr and reads a line from the terminal without echo.
// Returns an error if stdin is not a terminal.
func ReadPassphrase(prompt string) (string, error) {
	fd := int(os.Stdin.Fd())

	if !term.IsTerminal(fd) {
		return "", fmt.Errorf("cannot read key: stdin is not a terminal")
	}

	fmt.Fprint(os.Stderr, prompt)
	passphrase, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)

	if err != nil {
		return "", fmt.Errorf("failed to read key: %w", err)
	}

	return string(passphrase), nil
}

// ReadPassphraseConfirmed prompts twice and fails if the entries differ.
// Used when embedding, where a typo would make the watermark unreadable.
func ReadPassphraseConfirmed(prompt string) (string, error) {
	first, err := ReadPassphrase(prompt)
	if err != nil {
		return "", err
	}
	second, err := ReadPassphrase("Confirm " + prompt)
	if err != nil {
		return "", err
	}
	if first != second {
		return "", errors.New("keys do not match")
	}
	return first, nil
}

// IsTerminal returns true if stdin is a terminal.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// Package ui provides semantic text formatting for vaultmark output.
//
// Formatters render with color when the terminal supports it and fall back
// to plain text decorations when NO_COLOR is set or output is not a TTY.
//
//	ui.Code.Sprint("vaultmark watermark embed")  // Commands
//	ui.Path.Sprint("photo.watermarked.png")      // File paths
//	ui.Success.Sprint("✓")                        // Success indicators
//	ui.Error.Sprint("✗")                          // Error indicators
//	ui.Highlight.Sprint("CONFIDENTIAL")          // Recovered payloads
//
// Sizes and capacities are rendered with Bytes and Units, which use
// go-humanize for thousands separators and binary units.
package ui

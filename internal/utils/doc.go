// Package utils provides shared helpers for the vaultmark application.
//
// # Filesystem Utilities
//
//   - OutputPath: derives photo.watermarked.png from photo.jpg
//   - WriteFile: writes output files, refusing to clobber unless asked
//   - FileExists: reports whether an output would be replaced
//
// # System Utilities
//
//   - GetUsername, GetHostname: identity recorded in the activity log
//
// # String Utilities
//
//   - Truncate: shortens recovered messages for tabular output
//
// # I/O and Terminal Utilities
//
//   - ReadStdin, ReadKeyFromStdin: read a message or key piped on standard input
//   - ReadPassphrase, IsTerminal: prompt for a key without echo
package utils

// Package logger provides leveled, colorized logging for vaultmark commands.
//
// Verbosity is controlled by two flags:
//
//   - --verbose: shows info messages
//   - --debug: shows info and debug messages
//
// Warnings and errors always go to stderr.
//
//	log := Logger{Verbose: verbose, Debug: debug}
//	log.Infof("Embedding %d code units into %s", n, path)
//
// Commands create a logger in their PersistentPreRun and pass it down.
package logger

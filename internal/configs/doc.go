// Package configs manages the vaultmark user configuration.
//
// Configuration is stored in TOML at <UserConfigDir>/vaultmark/config.toml:
//
//	[user]
//	name = "alice"
//	user_uuid = "7c1e..."
//
//	[watermark]
//	default_format = "png"
//	suffix = ".watermarked"
//	overwrite = false
//
//	[audit]
//	enabled = true
//	path = ""
//
// Missing keys keep their defaults, so an empty file is a valid config.
//
// # Settings
//
// UserVaultmarkSettings holds the resolved config and data directories. It is
// initialized at startup from the XDG environment and replaced by tests.
package configs

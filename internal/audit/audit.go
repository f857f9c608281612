package audit

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/PolarWolf314/vaultmark/internal/configs"
	"github.com/PolarWolf314/vaultmark/internal/utils"

	"github.com/google/uuid"
)

// Operation names.
const (
	OpEmbed   = "watermark_embed"
	OpExtract = "watermark_extract"
	OpVerify  = "watermark_verify"
)

// TimestampFormat is RFC3339 with microseconds, always UTC.
const TimestampFormat = "2006-01-02T15:04:05.000000Z"

// Entry represents a single activity log entry.
type Entry struct {
	ID        string `json:"id"`
	Timestamp string `json:"ts"`
	User      string `json:"user"`
	UserUUID  string `json:"uuid"`
	Host      string `json:"host,omitempty"`
	Operation string `json:"op"`

	Files        []string `json:"files,omitempty"`
	OutputPath   string   `json:"output_path,omitempty"`   // For embed.
	Format       string   `json:"format,omitempty"`        // Container of the output or input.
	PayloadUnits int      `json:"payload_units,omitempty"` // UTF-16 code units embedded or recovered.
	Keyed        bool     `json:"keyed,omitempty"`         // XOR key was supplied.
	Sealed       bool     `json:"sealed,omitempty"`        // Payload was sealed.
	FoundCount   int      `json:"found_count,omitempty"`   // For verify.
	MissingCount int      `json:"missing_count,omitempty"` // For verify.
}

// Log appends an entry to the activity log.
// Failures are swallowed: operations must not fail because logging did.
func Log(entry Entry) {
	config, err := configs.LoadConfig()
	if err != nil || !config.Audit.Enabled {
		return
	}
	appendEntry(config.AuditLogPath(), entry)
}

func appendEntry(logPath string, entry Entry) {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().UTC().Format(TimestampFormat)
	}

	if err := os.MkdirAll(filepath.Dir(logPath), 0700); err != nil {
		return
	}

	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return
	}
	defer f.Close()

	data, err := json.Marshal(entry)
	if err != nil {
		return
	}

	_, _ = f.Write(append(data, '\n'))
}

// LogWithUser returns an entry with the user and host fields populated.
// When auditing is on and the config has no user UUID yet, one is generated
// and saved.
func LogWithUser(op string) Entry {
	entry := Entry{Operation: op}

	if host, err := utils.GetHostname(); err == nil {
		entry.Host = host
	}

	config, err := configs.LoadConfig()
	if err == nil && config.Audit.Enabled {
		// The first logged operation assigns the user UUID.
		if ensured, ensureErr := configs.EnsureConfig(); ensureErr == nil {
			config = ensured
		}
	}
	if err != nil {
		entry.User = configs.UserVaultmarkSettings.Username
		return entry
	}

	entry.User = config.User.Name
	if entry.User == "" {
		entry.User = configs.UserVaultmarkSettings.Username
	}
	entry.UserUUID = config.User.UUID

	return entry
}

// LogPath returns the path to the activity log.
func LogPath() string {
	config, err := configs.LoadConfig()
	if err != nil {
		return configs.DefaultConfig().AuditLogPath()
	}
	return config.AuditLogPath()
}

// ReadEntries reads all entries from the activity log.
// Returns an empty slice if the log doesn't exist.
func ReadEntries() ([]Entry, error) {
	data, err := os.ReadFile(LogPath())
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return ParseEntries(data)
}

// ParseEntries parses JSON Lines data. Malformed lines are skipped.
func ParseEntries(data []byte) ([]Entry, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var entries []Entry
	start := 0

	for i := 0; i <= len(data); i++ {
		if i == len(data) || data[i] == '\n' {
			line := data[start:i]
			start = i + 1

			if len(line) == 0 {
				continue
			}

			var entry Entry
			if err := json.Unmarshal(line, &entry); err != nil {
				continue
			}
			entries = append(entries, entry)
		}
	}

	return entries, nil
}

package audit

import (
	"crypto/sha256"
	"encoding/hex"
	"unicode/utf8"

	"github.com/ppiankov/policygate/internal/redact"
)

// previewLen caps the task text kept in clear in each entry.
const previewLen = 80

// Task identifies the checked text without storing all of it.
type Task struct {
	Digest  string `json:"digest"`
	Preview string `json:"preview"`
}

// Entry is one line in the hash-chained JSONL audit log.
// All fields are structs or slices (no map[string]any) so json.Marshal
// field order is deterministic and hashes are reproducible.
type Entry struct {
	Timestamp    string   `json:"ts"`
	CheckID      string   `json:"check_id"`
	Task         Task     `json:"task"`
	Jurisdiction string   `json:"jurisdiction"`
	Compliant    bool     `json:"compliant"`
	Violations   []string `json:"violations"`
	Sensitive    []string `json:"sensitive,omitempty"`
	ConfigHash   string   `json:"config_hash"`
	PrevHash     string   `json:"prev_hash"`
}

// NewTask digests the raw text and keeps a short, masked, rune-safe preview.
func NewTask(text string) Task {
	h := sha256.Sum256([]byte(text))
	return Task{
		Digest:  "sha256:" + hex.EncodeToString(h[:]),
		Preview: preview(redact.Mask(text)),
	}
}

func preview(text string) string {
	if utf8.RuneCountInString(text) <= previewLen {
		return text
	}
	runes := []rune(text)
	return string(runes[:previewLen-3]) + "..."
}

package audit

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/ppiankov/policygate/internal/constitution"
)

// Tail returns the last n entries of the log, oldest first.
func Tail(path string, n int) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("audit: open: %w", err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
		if n > 0 && len(lines) > n {
			lines = lines[1:]
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("audit: read: %w", err)
	}

	entries := make([]Entry, 0, len(lines))
	for i, line := range lines {
		var e Entry
		if err := json.Unmarshal([]byte(line), &e); err != nil {
			return nil, fmt.Errorf("audit: parse entry %d: %w", i+1, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// FormatEntries renders entries as one line each for terminal output.
func FormatEntries(entries []Entry) string {
	var b strings.Builder
	for _, e := range entries {
		status := "OK"
		if !e.Compliant {
			status = "VIOLATION"
		}
		tags := "-"
		var structural []string
		for _, v := range e.Violations {
			if !strings.HasPrefix(v, constitution.RuleHitPrefix) {
				structural = append(structural, v)
			}
		}
		if len(structural) > 0 {
			tags = strings.Join(structural, ",")
		}
		fmt.Fprintf(&b, "%-24s %-9s %-10s %-40s %s\n", e.Timestamp, status, e.Jurisdiction, tags, e.Task.Preview)
	}
	return b.String()
}

package constitution

import (
	"regexp"
	"strings"
	"testing"
	"time"
)

func TestPromptBlockContainsAllRules(t *testing.T) {
	block := PromptBlock()
	for _, r := range HardRules() {
		if !strings.Contains(block, r) {
			t.Errorf("prompt block missing hard rule %q", r)
		}
	}
	for _, r := range PentestEthicsRules() {
		if !strings.Contains(block, r) {
			t.Errorf("prompt block missing pentest rule %q", r)
		}
	}
	for _, r := range SoftGuidelines() {
		if strings.Contains(block, r) {
			t.Errorf("prompt block should not include soft guideline %q", r)
		}
	}
	if !strings.HasSuffix(block, "Always ensure your actions comply.\n") {
		t.Error("prompt block should end with the compliance reminder")
	}
}

func TestPromptBlockDate(t *testing.T) {
	before := time.Now().UTC().Format(time.DateOnly)
	block := PromptBlock()
	after := time.Now().UTC().Format(time.DateOnly)

	date := regexp.MustCompile(`\d{4}-\d{2}-\d{2}`).FindString(block)
	if date != before && date != after {
		t.Errorf("prompt date = %q, want %q", date, before)
	}
	if _, err := time.Parse(time.DateOnly, date); err != nil {
		t.Errorf("invalid ISO date %q: %v", date, err)
	}
}

func TestPromptBlockAtUsesUTC(t *testing.T) {
	est := time.FixedZone("EST", -5*3600)
	at := time.Date(2026, 10, 19, 23, 30, 0, 0, est)

	block := PromptBlockAt(at)
	firstLine := strings.SplitN(block, "\n", 2)[0]
	if firstLine != "### AATIS Constitution (extract - 2026-10-20)" {
		t.Errorf("header = %q", firstLine)
	}
}

func TestPromptBlockBullets(t *testing.T) {
	block := PromptBlockAt(time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC))
	bullets := 0
	for _, line := range strings.Split(block, "\n") {
		if strings.HasPrefix(line, "- ") {
			bullets++
		}
	}
	if want := len(HardRules()) + len(PentestEthicsRules()); bullets != want {
		t.Errorf("bullets = %d, want %d", bullets, want)
	}
}

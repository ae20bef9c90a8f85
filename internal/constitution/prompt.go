package constitution

import (
	"fmt"
	"strings"
	"time"
)

// PromptBlock returns the fragment prepended to every agent system prompt
// so the model knows the hard boundaries at generation time.
func PromptBlock() string {
	return PromptBlockAt(time.Now())
}

// PromptBlockAt renders the prompt block dated at t (converted to UTC).
func PromptBlockAt(t time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "### AATIS Constitution (extract - %s)\n", t.UTC().Format(time.DateOnly))
	fmt.Fprintf(&b, "**%s:**\n", TierHard.Title())
	writeBullets(&b, hardRules)
	b.WriteString("\n")
	fmt.Fprintf(&b, "**%s:**\n", TierPentestEthics.Title())
	writeBullets(&b, pentestEthicsRules)
	b.WriteString("Always ensure your actions comply.\n")
	return b.String()
}

func writeBullets(b *strings.Builder, rules []string) {
	for _, r := range rules {
		b.WriteString("- ")
		b.WriteString(r)
		b.WriteString("\n")
	}
}

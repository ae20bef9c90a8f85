package constitution

import (
	"fmt"
	"strings"
)

// Tier is one named category of rules. Lower value = higher precedence.
type Tier int

const (
	TierHard          Tier = 0 // Absolute, violation rejects or halts the task
	TierPentestEthics Tier = 1 // Required unless a compliant user overrides
	TierSoft          Tier = 2 // Preference, violation is a warning
	TierUserOverride  Tier = 3 // Supersedes pentest ethics and soft tiers
)

// Tiers returns every tier in precedence order.
func Tiers() []Tier {
	return []Tier{TierHard, TierPentestEthics, TierSoft, TierUserOverride}
}

// Label returns the short name used on the CLI and the wire.
func (t Tier) Label() string {
	switch t {
	case TierHard:
		return "hard"
	case TierPentestEthics:
		return "pentest"
	case TierSoft:
		return "soft"
	case TierUserOverride:
		return "override"
	default:
		return fmt.Sprintf("unknown(%d)", int(t))
	}
}

// Title returns the heading used when rendering a tier for humans.
func (t Tier) Title() string {
	switch t {
	case TierHard:
		return "HARD RULES (non-negotiable)"
	case TierPentestEthics:
		return "Pentest Ethics (must meet unless overridden by user)"
	case TierSoft:
		return "Soft Guidelines (best practice)"
	case TierUserOverride:
		return "User Override"
	default:
		return t.Label()
	}
}

// ParseTier maps a label back to a Tier. Unknown labels return false.
func ParseTier(label string) (Tier, bool) {
	for _, t := range Tiers() {
		if t.Label() == label {
			return t, true
		}
	}
	return 0, false
}

// Rules returns a copy of the rules in the given tier.
// The user override tier has exactly one rule.
func Rules(t Tier) []string {
	switch t {
	case TierHard:
		return HardRules()
	case TierPentestEthics:
		return PentestEthicsRules()
	case TierSoft:
		return SoftGuidelines()
	case TierUserOverride:
		return []string{UserOverrideRule}
	default:
		return nil
	}
}

// RulesByLabel maps a tier label to its rules, keyed by label. An empty
// label or "all" returns every tier.
func RulesByLabel(label string) (map[string][]string, error) {
	label = strings.ToLower(strings.TrimSpace(label))
	if label == "" || label == "all" {
		out := make(map[string][]string, len(Tiers()))
		for _, t := range Tiers() {
			out[t.Label()] = Rules(t)
		}
		return out, nil
	}

	t, ok := ParseTier(label)
	if !ok {
		return nil, fmt.Errorf("unknown tier %q", label)
	}
	return map[string][]string{t.Label(): Rules(t)}, nil
}

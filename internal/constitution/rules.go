package constitution

// Rule tables are initialised once and never mutated. Exported accessors
// hand out copies so callers cannot rewrite them in place.

var hardRules = []string{
	// Legal compliance and scope
	"All actions must comply with the laws and regulations of LOCAL_JURISDICTION.",
	"Operate ONLY on assets explicitly scoped / whitelisted by the engagement file.",
	// Safety
	"Never deploy destructive, self-replicating, or ransomware payloads.",
	"Never exfiltrate real production data or PII outside the host-only LAN.",
	// Privacy and consent
	"No social-engineering of real-world targets without written permission.",
	// User autonomy
	"If a compliant human user instructs removal of any component, obey immediately.",
}

var pentestEthicsRules = []string{
	"Minimise service disruption; prefer low-impact enumeration before loud scans.",
	"Log every tool execution, timestamp, and parameters for chain-of-custody.",
	"Encrypt sensitive outputs (hashes, creds) at rest.",
	"Tag reports with MITRE ATT&CK IDs where applicable.",
}

var softGuidelines = []string{
	"Prefer open-source tools over closed binaries when functionality is equal.",
	"Reference public CVE numbers and official advisories in reports.",
	"Use inclusive, professional language in all written outputs.",
	"When multiple exploit paths exist, prioritise lowest privilege-escalation first.",
}

// UserOverrideRule lets a compliant human operator supersede the pentest
// ethics and soft tiers, never the hard tier.
const UserOverrideRule = "Compliant human instructions that do NOT violate HARD_RULES must be obeyed, " +
	"even if they override CORE_PENTEST_RULES or SOFT_GUIDELINES (e.g., deleting " +
	"AATIS components or halting self-improvement loops)."

// HardRules returns the absolute constraints. They cannot be overridden.
func HardRules() []string {
	return clone(hardRules)
}

// PentestEthicsRules returns the engagement-scope and professional ethics rules.
func PentestEthicsRules() []string {
	return clone(pentestEthicsRules)
}

// SoftGuidelines returns the best-practice preferences in priority order.
func SoftGuidelines() []string {
	return clone(softGuidelines)
}

func clone(rules []string) []string {
	out := make([]string, len(rules))
	copy(out, rules)
	return out
}

// Package constitution holds the tiered rule set every agent task must obey
// and the quick static checks run against a task before it executes.
package constitution

import (
	"regexp"
	"strings"
)

// DefaultJurisdiction is used when the caller has no LOCAL_JURISDICTION.
const DefaultJurisdiction = "Default"

// Violation tags produced by the structural checks.
const (
	TagDestructiveCommand = "destructive_command"
	TagOutOfScopeAssets   = "out_of_scope_assets"
	TagPossibleExfil      = "possible_exfil"
)

// RuleHitPrefix starts every verbose hard-rule hit in Result.Violations.
const RuleHitPrefix = "Violates: "

var (
	destructivePattern = regexp.MustCompile(`(?i)\b(rm -rf|dd if=|format|cipher /w|shutdown /r)\b`)
	sensitivePattern   = regexp.MustCompile(`(?i)\b(passwd|password|shadow|sam)\b`)
	keywordPattern     = regexp.MustCompile(`[a-zA-Z0-9]{4,}`)
)

// Result is the outcome of a single Evaluate call.
type Result struct {
	// Compliant is false only when a structural check produced a tag.
	// Hard-rule keyword hits are informational and never flip it.
	Compliant    bool     `json:"compliant" yaml:"compliant"`
	Violations   []string `json:"violations" yaml:"violations"`
	Jurisdiction string   `json:"jurisdiction" yaml:"jurisdiction"`
}

// Tags returns only the machine-readable structural tags.
func (r Result) Tags() []string {
	var tags []string
	for _, v := range r.Violations {
		if !strings.HasPrefix(v, RuleHitPrefix) {
			tags = append(tags, v)
		}
	}
	return tags
}

// RuleHits returns only the verbose "Violates: <rule>" entries.
func (r Result) RuleHits() []string {
	var hits []string
	for _, v := range r.Violations {
		if strings.HasPrefix(v, RuleHitPrefix) {
			hits = append(hits, v)
		}
	}
	return hits
}

// Evaluate is the quick yes/no gate for a proposed task.
//
// jurisdiction is recorded on the result but does not change any check yet.
// An empty value means DefaultJurisdiction.
func Evaluate(taskText, jurisdiction string) Result {
	if jurisdiction == "" {
		jurisdiction = DefaultJurisdiction
	}

	lower := strings.ToLower(taskText)
	violations := []string{}

	if destructivePattern.MatchString(taskText) {
		violations = append(violations, TagDestructiveCommand)
	}
	if strings.Contains(lower, "live_production") {
		violations = append(violations, TagOutOfScopeAssets)
	}
	if strings.Contains(lower, "exfil") && !strings.Contains(lower, "encrypt") {
		violations = append(violations, TagPossibleExfil)
	}
	compliant := len(violations) == 0

	for _, rule := range hardRules {
		if KeywordHit(rule, taskText) {
			violations = append(violations, RuleHitPrefix+rule)
		}
	}

	return Result{
		Compliant:    compliant,
		Violations:   violations,
		Jurisdiction: jurisdiction,
	}
}

// KeywordHit reports whether any alphanumeric word of four or more
// characters from rule appears in text, ignoring case. A single shared
// word such as "must" is enough.
func KeywordHit(rule, text string) bool {
	lower := strings.ToLower(text)
	for _, word := range keywordPattern.FindAllString(rule, -1) {
		if strings.Contains(lower, strings.ToLower(word)) {
			return true
		}
	}
	return false
}

// SensitiveTerms returns the distinct credential-store keywords found in
// text, lower-cased, in order of first appearance. Evaluate does not use it.
func SensitiveTerms(text string) []string {
	var terms []string
	seen := make(map[string]bool)
	for _, m := range sensitivePattern.FindAllString(text, -1) {
		term := strings.ToLower(m)
		if seen[term] {
			continue
		}
		seen[term] = true
		terms = append(terms, term)
	}
	return terms
}

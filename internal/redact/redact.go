// Package redact masks secrets and host identifiers in task text before
// it is written anywhere persistent.
package redact

import (
	"regexp"
	"sort"
	"strings"
)

// Kind names the category of a masked value.
type Kind string

const (
	KindCred  Kind = "CRED"
	KindEmail Kind = "EMAIL"
	KindIP    Kind = "IP"
	KindHost  Kind = "HOST"
	KindUser  Kind = "USER"
)

// Span is one sensitive value found in text, as byte offsets.
type Span struct {
	Kind  Kind
	Value string
	Start int
	End   int
}

type detector struct {
	kind Kind
	re   *regexp.Regexp
	// group selects a capture group; 0 means the whole match.
	group int
	skip  func(string) bool
}

// Detectors run in order. Earlier kinds win when spans overlap.
var detectors = []detector{
	{kind: KindCred, re: regexp.MustCompile(`(?i)(?:password|passwd|secret|token|api_?key|auth)[ \t]*[=:][ \t]*\S+`)},
	{kind: KindEmail, re: regexp.MustCompile(`\b[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}\b`)},
	{kind: KindIP, re: regexp.MustCompile(`\b\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}\b`), skip: isSafeIP},
	{kind: KindHost, re: regexp.MustCompile(`\b[a-zA-Z0-9][-a-zA-Z0-9]*\.[-a-zA-Z0-9]+\.[a-zA-Z]{2,}\b`), skip: isSafeHost},
	{kind: KindUser, re: regexp.MustCompile(`~([a-zA-Z_][a-zA-Z0-9_\-]+)`), group: 1},
}

var safeIPs = map[string]bool{
	"127.0.0.1":       true,
	"0.0.0.0":         true,
	"255.255.255.255": true,
}

var safeHosts = map[string]bool{
	"example.com": true,
	"example.org": true,
	"example.net": true,
}

func isSafeIP(v string) bool { return safeIPs[v] }

func isSafeHost(v string) bool {
	if isIPLike(v) {
		return true
	}
	lower := strings.ToLower(v)
	for h := range safeHosts {
		if lower == h || strings.HasSuffix(lower, "."+h) {
			return true
		}
	}
	return false
}

func isIPLike(s string) bool {
	for _, c := range s {
		if c != '.' && (c < '0' || c > '9') {
			return false
		}
	}
	return true
}

// Find returns the non-overlapping sensitive spans in text, earliest first.
func Find(text string) []Span {
	var spans []Span
	for _, d := range detectors {
		for _, loc := range d.re.FindAllStringSubmatchIndex(text, -1) {
			start, end := loc[2*d.group], loc[2*d.group+1]
			if start < 0 {
				continue
			}
			v := text[start:end]
			trimmed := strings.TrimRight(v, ".,;:\"'`)}]")
			end -= len(v) - len(trimmed)
			if trimmed == "" || (d.skip != nil && d.skip(trimmed)) {
				continue
			}
			if overlaps(spans, start, end) {
				continue
			}
			spans = append(spans, Span{Kind: d.kind, Value: trimmed, Start: start, End: end})
		}
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i].Start < spans[j].Start })
	return spans
}

func overlaps(spans []Span, start, end int) bool {
	for _, s := range spans {
		if start < s.End && s.Start < end {
			return true
		}
	}
	return false
}

// Mask replaces every sensitive span with a <KIND> placeholder.
func Mask(text string) string {
	spans := Find(text)
	if len(spans) == 0 {
		return text
	}
	var b strings.Builder
	last := 0
	for _, s := range spans {
		b.WriteString(text[last:s.Start])
		b.WriteString("<" + string(s.Kind) + ">")
		last = s.End
	}
	b.WriteString(text[last:])
	return b.String()
}

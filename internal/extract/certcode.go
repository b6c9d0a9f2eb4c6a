package extract

import (
	"regexp"
	"strings"

	"github.com/gabrielerendina/simulator-poste-sub000/internal/vendor"
)

// A pattern is considered code-shaped when its source carries a digit escape
// or an explicit uppercase-letters-then-digits sequence; prose patterns like
// "AWS Certified ..." are skipped.
var reCodeShapedSource = regexp.MustCompile(`\\d|\[A-Z\][^[]*\\?d|[A-Z]{2,}[-_]?\\d`)

// codeFallbacks covers vendors whose catalog patterns are prose-only.
var codeFallbacks = map[string]*regexp.Regexp{
	"aws":       regexp.MustCompile(`\b[A-Z]{3}-C\d{2}\b`),
	"microsoft": regexp.MustCompile(`\b[A-Z]{2}-\d{3}\b`),
	"oracle":    regexp.MustCompile(`\b1Z0-\d{3,4}\b`),
	"redhat":    regexp.MustCompile(`\bEX\d{3}\b`),
	"sap":       regexp.MustCompile(`\bC_[A-Z0-9_]{4,}\b`),
}

// ExtractCertCode pulls the certification code out of text using the
// detected vendor's code-shaped patterns, falling back to a small per-vendor
// table. Only called once a vendor is known.
func ExtractCertCode(text string, profile *vendor.Profile) string {
	if profile == nil {
		return ""
	}
	for i, re := range profile.Patterns() {
		if !reCodeShapedSource.MatchString(profile.CertPatterns[i]) {
			continue
		}
		if m := re.FindString(text); m != "" {
			return strings.ToUpper(strings.TrimSpace(m))
		}
	}
	if re, ok := codeFallbacks[profile.Key]; ok {
		if m := re.FindString(text); m != "" {
			return strings.ToUpper(strings.TrimSpace(m))
		}
	}
	return ""
}

package common

import (
	"regexp"
	"strings"
)

// Settings is the immutable extraction-settings bundle. It is built once
// (DefaultSettings, optionally overlaid from Config) and passed into the
// verifier's constructor; nothing mutates it after load.
type Settings struct {
	// DatePatterns are tried in order when scanning free text for
	// date-shaped substrings.
	DatePatterns []*regexp.Regexp
	// TechTerms are lowercase words that disqualify a token from being part
	// of a person name.
	TechTerms map[string]struct{}
	// DPI used when rasterizing pages for recognition.
	DPI int
	// MaxFileSizeMB gates documents before any expensive work.
	MaxFileSizeMB float64
}

var defaultDatePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b\d{1,2}[/.-]\d{1,2}[/.-]\d{4}\b`),
	regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\b`),
	regexp.MustCompile(`\b\d{1,2}[/.-]\d{1,2}[/.-]\d{2}\b`),
	regexp.MustCompile(`(?i)\b(?:gen|feb|mar|apr|mag|giu|lug|ago|set|ott|nov|dic)[a-z]*\.?\s+\d{1,2},?\s+\d{4}\b`),
	regexp.MustCompile(`(?i)\b\d{1,2}\s+(?:gennaio|febbraio|marzo|aprile|maggio|giugno|luglio|agosto|settembre|ottobre|novembre|dicembre)\s+\d{4}\b`),
	regexp.MustCompile(`(?i)\b(?:january|february|march|april|may|june|july|august|september|october|november|december)\s+\d{1,2},?\s+\d{4}\b`),
	regexp.MustCompile(`(?i)\b\d{1,2}\s+(?:january|february|march|april|may|june|july|august|september|october|november|december)\s+\d{4}\b`),
}

var defaultTechTerms = []string{
	"aws", "azure", "google", "cloud", "oracle", "sap", "cisco", "microsoft",
	"vmware", "linux", "java", "python", "data", "devops", "scrum", "agile",
	"itil", "prince2", "pmp", "cobit", "togaf", "uipath", "appian",
	"certified", "certification", "certificate", "associate", "professional",
	"practitioner", "foundation", "fundamentals", "expert", "specialist",
	"specialty", "master", "developer", "engineer", "architect",
	"administrator", "admin", "analyst", "consultant", "manager", "owner",
	"solutions", "solution", "security", "network", "networking", "database",
	"infrastructure", "platform", "enterprise", "digital", "exam", "level",
	"advanced", "core", "modern", "workplace", "service", "servicenow",
}

// DefaultSettings returns the documented defaults; the engine must function
// correctly with these alone.
func DefaultSettings() *Settings {
	terms := make(map[string]struct{}, len(defaultTechTerms))
	for _, t := range defaultTechTerms {
		terms[t] = struct{}{}
	}
	return &Settings{
		DatePatterns:  defaultDatePatterns,
		TechTerms:     terms,
		DPI:           300,
		MaxFileSizeMB: 10.0,
	}
}

// SettingsFromConfig overlays numeric knobs from Config onto the defaults.
func SettingsFromConfig(cfg *Config) *Settings {
	s := DefaultSettings()
	if cfg == nil {
		return s
	}
	if cfg.OCR.DPI > 0 {
		s.DPI = cfg.OCR.DPI
	}
	if cfg.OCR.MaxFileSizeMB > 0 {
		s.MaxFileSizeMB = cfg.OCR.MaxFileSizeMB
	}
	return s
}

// IsTechTerm reports whether word (any case) is a known technical term.
func (s *Settings) IsTechTerm(word string) bool {
	_, ok := s.TechTerms[strings.ToLower(word)]
	return ok
}

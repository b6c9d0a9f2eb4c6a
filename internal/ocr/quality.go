package ocr

import (
	"regexp"
	"strings"
)

// certKeywords are certificate-related words (English + Italian) that signal
// a recognized text really is a certificate.
var certKeywords = []string{
	"certificate", "certification", "certified", "credential", "issued",
	"valid", "expires", "expiry", "completion", "achievement", "exam",
	"certificato", "certificazione", "attestato", "rilasciato", "valido",
	"scadenza", "conseguito", "superato",
}

var reDateShaped = regexp.MustCompile(`\b\d{1,2}[/.-]\d{1,2}[/.-]\d{2,4}\b|\b\d{4}-\d{2}-\d{2}\b`)

// QualityScore rates recognized text: +2 per certificate keyword, +3 per
// vendor with an alias hit (first alias only), +2 for a date-shaped
// substring. Texts under 50 characters are penalized by 5; never negative.
func (e *Extractor) QualityScore(text string) int {
	lower := strings.ToLower(text)

	score := 0
	for _, kw := range certKeywords {
		if strings.Contains(lower, kw) {
			score += 2
		}
	}
	for _, p := range e.catalog.Profiles() {
		for _, alias := range p.Aliases {
			if alias != "" && strings.Contains(lower, alias) {
				score += 3
				break // first hit per vendor
			}
		}
	}
	if reDateShaped.MatchString(text) {
		score += 2
	}
	if len(strings.TrimSpace(text)) < 50 {
		score -= 5
	}
	if score < 0 {
		score = 0
	}
	return score
}

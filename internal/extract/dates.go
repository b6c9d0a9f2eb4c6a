package extract

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/gabrielerendina/simulator-poste-sub000/internal/common"
)

// DateRange is the validity window read off a certificate. Either side may
// be zero.
type DateRange struct {
	ValidFrom  time.Time
	ValidUntil time.Time
}

// Explicit-context patterns: a keyword prefix followed (possibly across
// newlines) by a date-shaped substring. Tried before any general scanning.
var (
	reExpiryContext = regexp.MustCompile(`(?is)(?:expir\w*|valid\s+(?:until|through|thru)|scad\w*|valido\s+fino\s+al?)[:\s]*\s*(\d{1,2}[/.-]\d{1,2}[/.-]\d{2,4}|\d{4}-\d{2}-\d{2}|[A-Za-z]+\s+\d{1,2},?\s+\d{4}|\d{1,2}\s+[A-Za-z]+\s+\d{4})`)
	reIssueContext  = regexp.MustCompile(`(?is)(?:issue[ds]?\s*(?:on|date)?|date\s+of\s+issue|earned\s+on|achieved\s+on|awarded\s+on|rilasciat\w*\s*(?:il)?|conseguit\w*\s*(?:il)?|data\s+di\s+rilascio)[:\s]*\s*(\d{1,2}[/.-]\d{1,2}[/.-]\d{2,4}|\d{4}-\d{2}-\d{2}|[A-Za-z]+\s+\d{1,2},?\s+\d{4}|\d{1,2}\s+[A-Za-z]+\s+\d{4})`)
)

var italianMonths = map[string]string{
	"gennaio": "January", "febbraio": "February", "marzo": "March",
	"aprile": "April", "maggio": "May", "giugno": "June",
	"luglio": "July", "agosto": "August", "settembre": "September",
	"ottobre": "October", "novembre": "November", "dicembre": "December",
}

// Day-first layouts are tried before month-first: European certificates
// dominate this corpus, and unambiguous US dates still parse via fallback.
var numericLayouts = []string{
	"2/1/2006", "2-1-2006", "2.1.2006",
	"2006-1-2",
	"2/1/06", "2-1-06", "2.1.06",
	"1/2/2006", "1-2-2006",
}

var textualLayouts = []string{
	"January 2, 2006", "January 2 2006", "2 January 2006",
}

// ParseDate parses a date-shaped literal in any of the supported formats
// (numeric D/M/Y variants, ISO, "Month D, Y", Italian month names). The
// returned time is midnight UTC.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(strings.Trim(s, ".,;:"))
	if s == "" {
		return time.Time{}, false
	}
	s = translateItalianMonths(s)

	for _, layout := range numericLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return normalizeYear(t), true
		}
	}
	for _, layout := range textualLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func translateItalianMonths(s string) string {
	lower := strings.ToLower(s)
	for it, en := range italianMonths {
		if idx := strings.Index(lower, it); idx >= 0 {
			return s[:idx] + en + s[idx+len(it):]
		}
	}
	return s
}

// Two-digit years land in 1900-2069 the way most date tooling resolves them.
func normalizeYear(t time.Time) time.Time {
	if t.Year() >= 100 {
		return t
	}
	y := t.Year()
	if y < 70 {
		y += 2000
	} else {
		y += 1900
	}
	return time.Date(y, t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ExtractDates finds the validity window in text. Explicit keyword-anchored
// dates win outright; otherwise all date-shaped substrings are collected,
// parsed and sorted, with textual context deciding how a lone date is
// assigned.
func ExtractDates(text string, settings *common.Settings) DateRange {
	var out DateRange

	var issue, expiry time.Time
	if m := reIssueContext.FindStringSubmatch(text); m != nil {
		if t, ok := ParseDate(m[1]); ok {
			issue = t
		}
	}
	if m := reExpiryContext.FindStringSubmatch(text); m != nil {
		if t, ok := ParseDate(m[1]); ok {
			expiry = t
		}
	}
	if !issue.IsZero() && !expiry.IsZero() {
		return DateRange{ValidFrom: issue, ValidUntil: expiry}
	}

	var found []time.Time
	seen := map[time.Time]struct{}{}
	for _, re := range settings.DatePatterns {
		for _, m := range re.FindAllString(text, -1) {
			if t, ok := ParseDate(m); ok {
				if _, dup := seen[t]; !dup {
					seen[t] = struct{}{}
					found = append(found, t)
				}
			}
		}
	}
	sort.Slice(found, func(i, j int) bool { return found[i].Before(found[j]) })

	switch len(found) {
	case 0:
		out.ValidFrom, out.ValidUntil = issue, expiry
	case 1:
		if expiryContext(text) {
			out.ValidUntil = found[0]
		} else {
			out.ValidFrom = found[0]
		}
		// keep whichever keyword-anchored date we did find
		if !issue.IsZero() {
			out.ValidFrom = issue
		}
		if !expiry.IsZero() {
			out.ValidUntil = expiry
		}
	default:
		// unordered by construction; chronological sort resolves the pair
		out.ValidFrom = found[0]
		out.ValidUntil = found[len(found)-1]
	}
	return out
}

// expiryContext reports whether the text talks about expiry at all, used to
// disambiguate a single found date.
func expiryContext(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range []string{"expir", "valid until", "valid through", "valid thru", "scad", "valido fino"} {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

package extract

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// partsWindow is how close (in characters) the individual name parts must
// be when the full phrase is not found contiguously.
const partsWindow = 500

// FindHolder searches the OCR text for the filename-derived reference name.
// Matching is case- and accent-insensitive and tolerates reversed word
// order; when the phrase is not contiguous, each part is searched
// independently and accepted only when all parts sit within a 500-character
// window. Without a usable reference name, or when the reference is simply
// not on the certificate, the all-caps template heuristic decides.
func FindHolder(text, refName string) string {
	ref := strings.TrimSpace(refName)
	if len(ref) >= 3 {
		if findReference(text, ref) {
			return ref
		}
	}
	return holderFromCapsLines(text)
}

func findReference(text, ref string) bool {
	hay := foldName(text)
	parts := strings.Fields(foldName(ref))
	if len(parts) == 0 {
		return false
	}

	phrase := strings.Join(parts, " ")
	if strings.Contains(hay, phrase) {
		return true
	}
	reversed := strings.Join(reverse(parts), " ")
	if strings.Contains(hay, reversed) {
		return true
	}

	// non-contiguous: all parts within the window
	lo, hi := -1, -1
	for _, part := range parts {
		idx := strings.Index(hay, part)
		if idx < 0 {
			return false
		}
		if lo == -1 || idx < lo {
			lo = idx
		}
		if idx+len(part) > hi {
			hi = idx + len(part)
		}
	}
	return hi-lo <= partsWindow
}

func reverse(parts []string) []string {
	out := make([]string, len(parts))
	for i, p := range parts {
		out[len(parts)-1-i] = p
	}
	return out
}

// holderFromCapsLines detects two consecutive all-caps single-word lines in
// the first 10 lines and treats them as first/last name. At least one
// vendor's template prints the holder this way.
func holderFromCapsLines(text string) string {
	lines := strings.Split(text, "\n")
	if len(lines) > 10 {
		lines = lines[:10]
	}
	var prev string
	for _, line := range lines {
		word := strings.TrimSpace(line)
		if isCapsWord(word) {
			if prev != "" {
				return prev + " " + word
			}
			prev = word
			continue
		}
		prev = ""
	}
	return ""
}

func isCapsWord(w string) bool {
	if w == "" || strings.ContainsAny(w, " \t") {
		return false
	}
	letters := 0
	for _, r := range w {
		if unicode.IsLetter(r) {
			letters++
			if !unicode.IsUpper(r) {
				return false
			}
		}
	}
	return letters >= 2
}

// NamesMatch compares two person names order-agnostically: same word set,
// case- and accent-insensitive.
func NamesMatch(a, b string) bool {
	wa := nameWordSet(a)
	wb := nameWordSet(b)
	if len(wa) == 0 || len(wa) != len(wb) {
		return false
	}
	for w := range wa {
		if _, ok := wb[w]; !ok {
			return false
		}
	}
	return true
}

func nameWordSet(s string) map[string]struct{} {
	set := map[string]struct{}{}
	for _, w := range strings.Fields(foldName(s)) {
		set[w] = struct{}{}
	}
	return set
}

var accentStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// foldName uppercases and strips accents for matching.
func foldName(s string) string {
	stripped, _, err := transform.String(accentStripper, s)
	if err != nil {
		stripped = s
	}
	return strings.ToUpper(stripped)
}

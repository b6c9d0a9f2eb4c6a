// Package filename derives the expected requirement code, certification name
// and holder name from a certificate's filename.
package filename

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/gabrielerendina/simulator-poste-sub000/internal/common"
)

// Parsed is what a certificate filename is expected to encode.
type Parsed struct {
	ReqCode      string // requirement line-item identifier
	CertName     string // expected certification name
	ResourceName string // expected holder name
}

// reqCodePattern matches a requirement code spanning a fixed number of
// leading underscore segments.
type reqCodePattern struct {
	re       *regexp.Regexp
	segments int
}

// Ordered: organization-prefixed codes first, then bare REQ codes, then
// lot-numeric codes.
var reqCodePatterns = []reqCodePattern{
	{regexp.MustCompile(`^[A-Z]{2,8}\d*_REQ\d+[A-Z]?$`), 2},
	{regexp.MustCompile(`^[A-Z]{2,8}\d*_LOTTO\d+(?:\.\d+)?$`), 2},
	{regexp.MustCompile(`^REQ\d+[A-Z]?$`), 1},
	{regexp.MustCompile(`^(?:LOTTO|LOT|L)\d+(?:\.\d+)?$`), 1},
}

// Parser splits certificate filenames. It is pure and total: any string in,
// best-effort fields out, never an error.
type Parser struct {
	settings *common.Settings
}

func NewParser(settings *common.Settings) *Parser {
	if settings == nil {
		settings = common.DefaultSettings()
	}
	return &Parser{settings: settings}
}

// Parse splits filename into requirement code, certification name and holder
// name. Missing pieces come back as empty strings.
func (p *Parser) Parse(name string) Parsed {
	// Filesystems may hand back decomposed accents (e.g. APFS); compose
	// them before any matching.
	stem := norm.NFC.String(name)
	stem = strings.TrimSuffix(stem, filepath.Ext(stem))
	stem = strings.TrimSpace(stem)
	if stem == "" {
		return Parsed{}
	}

	segs := strings.Split(stem, "_")

	var out Parsed
	segs, out.ReqCode = p.takeReqCode(segs)
	segs, out.ResourceName = p.takeResourceName(segs)
	out.CertName = strings.TrimSpace(strings.Join(segs, " "))

	if out.ReqCode == "" && out.ResourceName == "" && out.CertName == "" {
		out.CertName = stem
	}
	return out
}

// takeReqCode removes the requirement-code segments from the front, if any.
func (p *Parser) takeReqCode(segs []string) ([]string, string) {
	for _, pat := range reqCodePatterns {
		if len(segs) < pat.segments {
			continue
		}
		head := strings.Join(segs[:pat.segments], "_")
		if pat.re.MatchString(head) {
			return segs[pat.segments:], head
		}
	}
	// No pattern matched: a first segment still counts as a code when it
	// carries a digit or is a short all-uppercase token.
	if len(segs) > 0 && looksLikeCode(segs[0]) {
		return segs[1:], segs[0]
	}
	return segs, ""
}

func looksLikeCode(seg string) bool {
	if seg == "" {
		return false
	}
	if strings.ContainsAny(seg, "0123456789") {
		return true
	}
	return utf8.RuneCountInString(seg) <= 5 && seg == strings.ToUpper(seg) && seg != strings.ToLower(seg)
}

// takeResourceName scans the segments from the end for a person name: a
// segment (possibly CamelCase), or the last two segments together, made of at
// least two capitalized words none of which is a technical term. The first
// match wins and its segments are removed.
func (p *Parser) takeResourceName(segs []string) ([]string, string) {
	for i := len(segs) - 1; i >= 0; i-- {
		if words := splitWords(segs[i]); p.isPersonName(words) {
			return append(segs[:i:i], segs[i+1:]...), strings.Join(words, " ")
		}
		if i > 0 {
			pair := []string{segs[i-1], segs[i]}
			if p.isPersonName(pair) {
				return append(segs[:i-1:i-1], segs[i+1:]...), strings.Join(pair, " ")
			}
		}
	}
	return segs, ""
}

// isPersonName accepts >=2 words, each starting uppercase and none a known
// technical term.
func (p *Parser) isPersonName(words []string) bool {
	if len(words) < 2 {
		return false
	}
	for _, w := range words {
		r, _ := utf8.DecodeRuneInString(w)
		if r == utf8.RuneError || !unicode.IsUpper(r) {
			return false
		}
		if p.settings.IsTechTerm(w) {
			return false
		}
	}
	return true
}

// splitWords breaks a segment on whitespace first, then on CamelCase
// boundaries inside each piece.
func splitWords(seg string) []string {
	var words []string
	for _, field := range strings.Fields(seg) {
		words = append(words, SplitCamelCase(field)...)
	}
	return words
}

// SplitCamelCase inserts a word boundary before each uppercase letter that
// follows a lowercase one. Unicode-aware: accented lowercase letters count,
// so "RodonòGabriele" splits into "Rodonò", "Gabriele".
func SplitCamelCase(s string) []string {
	if s == "" {
		return nil
	}
	var words []string
	var b strings.Builder
	var prev rune
	for i, r := range s {
		if i > 0 && unicode.IsUpper(r) && unicode.IsLower(prev) {
			words = append(words, b.String())
			b.Reset()
		}
		b.WriteRune(r)
		prev = r
	}
	if b.Len() > 0 {
		words = append(words, b.String())
	}
	return words
}

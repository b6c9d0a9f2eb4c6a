package ocr

import (
	"strings"
	"testing"
)

func qualityExtractor(t *testing.T) *Extractor {
	t.Helper()
	return NewExtractor(Config{}, nil, nil)
}

func TestQualityScoreKeywordsAdd(t *testing.T) {
	e := qualityExtractor(t)
	pad := strings.Repeat("lorem ipsum dolor sit amet ", 3) // past the short-text penalty

	base := e.QualityScore(pad)
	one := e.QualityScore(pad + " certificate")
	two := e.QualityScore(pad + " certificate exam")
	if one != base+2 || two != base+4 {
		t.Fatalf("keyword scoring: base=%d one=%d two=%d", base, one, two)
	}
}

func TestQualityScoreVendorAliasOncePerVendor(t *testing.T) {
	e := qualityExtractor(t)
	pad := strings.Repeat("lorem ipsum dolor sit amet ", 3)

	one := e.QualityScore(pad + " amazon web services")
	both := e.QualityScore(pad + " amazon web services aws")
	if both != one {
		t.Fatalf("second alias of the same vendor should not add: %d vs %d", both, one)
	}
	twoVendors := e.QualityScore(pad + " amazon web services servicenow")
	if twoVendors != one+3 {
		t.Fatalf("distinct vendor should add 3: %d vs %d", twoVendors, one)
	}
}

func TestQualityScoreDateBonus(t *testing.T) {
	e := qualityExtractor(t)
	pad := strings.Repeat("lorem ipsum dolor sit amet ", 3)

	if got, want := e.QualityScore(pad+" 31/01/2028"), e.QualityScore(pad)+2; got != want {
		t.Fatalf("date bonus: got %d, want %d", got, want)
	}
}

func TestQualityScoreShortTextFloorsAtZero(t *testing.T) {
	e := qualityExtractor(t)
	if got := e.QualityScore("tiny"); got != 0 {
		t.Fatalf("got %d, want 0", got)
	}
	// a keyword in an otherwise short text still cannot go negative
	if got := e.QualityScore("exam"); got != 0 {
		t.Fatalf("got %d, want 0", got)
	}
}

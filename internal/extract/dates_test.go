package extract

import (
	"testing"
	"time"

	"github.com/gabrielerendina/simulator-poste-sub000/internal/common"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParseDateFormats(t *testing.T) {
	want := date(2028, time.January, 31)
	cases := []string{
		"31/01/2028",
		"31-01-2028",
		"31.01.2028",
		"2028-01-31",
		"31 gennaio 2028",
		"31 January 2028",
		"January 31, 2028",
		"January 31 2028",
		"31/01/28",
	}
	for _, in := range cases {
		got, ok := ParseDate(in)
		if !ok {
			t.Errorf("ParseDate(%q): not parsed", in)
			continue
		}
		if !got.Equal(want) {
			t.Errorf("ParseDate(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestParseDateMonthFirstFallback(t *testing.T) {
	// 31 cannot be a month, so the US order is the only valid reading.
	got, ok := ParseDate("12/31/2020")
	if !ok || !got.Equal(date(2020, time.December, 31)) {
		t.Fatalf("ParseDate(12/31/2020) = %v, %v", got, ok)
	}
}

func TestParseDateRejectsJunk(t *testing.T) {
	for _, in := range []string{"", "not a date", "99/99/9999", "2028"} {
		if _, ok := ParseDate(in); ok {
			t.Errorf("ParseDate(%q): expected failure", in)
		}
	}
}

func TestExtractDatesExplicitContext(t *testing.T) {
	text := "This certificate was issued on: 01/02/2023\nExpires: 31/01/2028"
	r := ExtractDates(text, common.DefaultSettings())
	if !r.ValidFrom.Equal(date(2023, time.February, 1)) {
		t.Fatalf("ValidFrom = %v", r.ValidFrom)
	}
	if !r.ValidUntil.Equal(date(2028, time.January, 31)) {
		t.Fatalf("ValidUntil = %v", r.ValidUntil)
	}
}

func TestExtractDatesItalianContext(t *testing.T) {
	text := "Rilasciato il 01/02/2023. Valido fino al 31/01/2028."
	r := ExtractDates(text, common.DefaultSettings())
	if !r.ValidFrom.Equal(date(2023, time.February, 1)) {
		t.Fatalf("ValidFrom = %v", r.ValidFrom)
	}
	if !r.ValidUntil.Equal(date(2028, time.January, 31)) {
		t.Fatalf("ValidUntil = %v", r.ValidUntil)
	}
}

func TestExtractDatesSingleDateExpiryWording(t *testing.T) {
	r := ExtractDates("Valid until 31/12/2027", common.DefaultSettings())
	if !r.ValidFrom.IsZero() {
		t.Fatalf("ValidFrom should be zero, got %v", r.ValidFrom)
	}
	if !r.ValidUntil.Equal(date(2027, time.December, 31)) {
		t.Fatalf("ValidUntil = %v", r.ValidUntil)
	}
}

func TestExtractDatesSingleDateNoExpiryWording(t *testing.T) {
	r := ExtractDates("Awarded on 01/02/2023 to the holder below", common.DefaultSettings())
	if !r.ValidFrom.Equal(date(2023, time.February, 1)) {
		t.Fatalf("ValidFrom = %v", r.ValidFrom)
	}
	if !r.ValidUntil.IsZero() {
		t.Fatalf("ValidUntil should be zero, got %v", r.ValidUntil)
	}
}

func TestExtractDatesPairSortedChronologically(t *testing.T) {
	// Later date appears first; sorting decides the assignment.
	r := ExtractDates("31/01/2028 something something 01/02/2023", common.DefaultSettings())
	if !r.ValidFrom.Equal(date(2023, time.February, 1)) {
		t.Fatalf("ValidFrom = %v", r.ValidFrom)
	}
	if !r.ValidUntil.Equal(date(2028, time.January, 31)) {
		t.Fatalf("ValidUntil = %v", r.ValidUntil)
	}
}

func TestExtractDatesNone(t *testing.T) {
	r := ExtractDates("no dates in here at all", common.DefaultSettings())
	if !r.ValidFrom.IsZero() || !r.ValidUntil.IsZero() {
		t.Fatalf("expected empty range, got %+v", r)
	}
}

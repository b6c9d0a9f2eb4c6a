package extract

import (
	"testing"

	"github.com/gabrielerendina/simulator-poste-sub000/internal/vendor"
)

func TestExtractCertCodeFromCatalogPatterns(t *testing.T) {
	catalog := vendor.Default()
	cases := []struct {
		key  string
		text string
		want string
	}{
		{"aws", "Validation Number 12345 Exam SAA-C03", "SAA-C03"},
		{"microsoft", "Exam AZ-104: Microsoft Azure Administrator", "AZ-104"},
		{"redhat", "passed EX294 with distinction", "EX294"},
		{"sap", "C_TS4FI_2023 SAP Certified Application Associate", "C_TS4FI_2023"},
	}
	for _, tc := range cases {
		p := catalog.Get(tc.key)
		if p == nil {
			t.Fatalf("no profile %q", tc.key)
		}
		if got := ExtractCertCode(tc.text, p); got != tc.want {
			t.Errorf("ExtractCertCode(%q, %s) = %q, want %q", tc.text, tc.key, got, tc.want)
		}
	}
}

func TestExtractCertCodeFallback(t *testing.T) {
	// A profile whose only pattern is prose-shaped still yields a code via
	// the per-vendor fallback table.
	catalog, err := vendor.NewCatalog([]*vendor.Profile{{
		Key:          "oracle",
		DisplayName:  "Oracle",
		Aliases:      []string{"oracle"},
		CertPatterns: []string{`(?i)Oracle\s+Certified`},
	}})
	if err != nil {
		t.Fatal(err)
	}
	got := ExtractCertCode("Oracle Certified Professional, exam 1Z0-808", catalog.Get("oracle"))
	if got != "1Z0-808" {
		t.Fatalf("got %q, want 1Z0-808", got)
	}
}

func TestExtractCertCodeNoProfile(t *testing.T) {
	if got := ExtractCertCode("SAA-C03", nil); got != "" {
		t.Fatalf("got %q, want empty", got)
	}
}

func TestExtractCertCodeNoMatch(t *testing.T) {
	p := vendor.Default().Get("aws")
	if got := ExtractCertCode("no code anywhere", p); got != "" {
		t.Fatalf("got %q, want empty", got)
	}
}

package filename

import (
	"reflect"
	"testing"
)

func TestParseFullFilename(t *testing.T) {
	p := NewParser(nil)
	got := p.Parse("REQ01_AWS_Solutions_Architect_Mario_Rossi.pdf")

	if got.ReqCode != "REQ01" {
		t.Fatalf("req code: got %q, want %q", got.ReqCode, "REQ01")
	}
	if got.CertName != "AWS Solutions Architect" {
		t.Fatalf("cert name: got %q, want %q", got.CertName, "AWS Solutions Architect")
	}
	if got.ResourceName != "Mario Rossi" {
		t.Fatalf("resource name: got %q, want %q", got.ResourceName, "Mario Rossi")
	}
}

func TestParseVariants(t *testing.T) {
	p := NewParser(nil)
	cases := []struct {
		in   string
		want Parsed
	}{
		{
			in:   "REQ02_ITIL_Foundation_BenedettoFrancesco.pdf",
			want: Parsed{ReqCode: "REQ02", CertName: "ITIL Foundation", ResourceName: "Benedetto Francesco"},
		},
		{
			in:   "LOTTO2_PMP_Rossi_Mario.pdf",
			want: Parsed{ReqCode: "LOTTO2", CertName: "PMP", ResourceName: "Rossi Mario"},
		},
		{
			// organization-prefixed code spanning two segments
			in:   "SUB000_REQ07_Scrum_Master_Verdi_Anna.PDF",
			want: Parsed{ReqCode: "SUB000_REQ07", CertName: "Scrum Master", ResourceName: "Verdi Anna"},
		},
		{
			// no code, no name: whole stem becomes the cert name
			in:   "Certificato.pdf",
			want: Parsed{CertName: "Certificato"},
		},
		{
			// tech terms never count as person names
			in:   "REQ03_Cloud_Practitioner.pdf",
			want: Parsed{ReqCode: "REQ03", CertName: "Cloud Practitioner"},
		},
	}
	for _, tc := range cases {
		if got := p.Parse(tc.in); !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("Parse(%q) = %+v, want %+v", tc.in, got, tc.want)
		}
	}
}

func TestParseIsTotalAndIdempotent(t *testing.T) {
	p := NewParser(nil)
	inputs := []string{
		"", ".", "..pdf", "____", "___.pdf", "a", "A_B_C_D_E_F_G.pdf",
		"漢字_テスト.pdf", "\x00weird\x7f.pdf", "REQ01_.pdf", "_.pdf",
	}
	for _, in := range inputs {
		first := p.Parse(in)
		second := p.Parse(in)
		if !reflect.DeepEqual(first, second) {
			t.Fatalf("Parse(%q) not idempotent: %+v vs %+v", in, first, second)
		}
	}
}

func TestSplitCamelCase(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"BenedettoFrancesco", []string{"Benedetto", "Francesco"}},
		{"RodonòGabriele", []string{"Rodonò", "Gabriele"}},
		{"Rossi", []string{"Rossi"}},
		{"", nil},
	}
	for _, tc := range cases {
		if got := SplitCamelCase(tc.in); !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("SplitCamelCase(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestParseComposesDecomposedAccents(t *testing.T) {
	p := NewParser(nil)
	// "Rodonò" with a combining grave accent, as APFS hands it back
	decomposed := "REQ01_PMP_RodonòGabriele.pdf"
	got := p.Parse(decomposed)
	if got.ResourceName != "Rodonò Gabriele" {
		t.Fatalf("resource name: got %q, want %q", got.ResourceName, "Rodonò Gabriele")
	}
}

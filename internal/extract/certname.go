package extract

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// namePattern is one entry of the cert-name cascade: a pattern whose first
// capture group is the candidate name, with an optional cleanup step.
type namePattern struct {
	re   *regexp.Regexp
	post func(string) string
}

func pat(src string) namePattern { return namePattern{re: regexp.MustCompile(src)} }

// certNameCascade is ordered most-specific-first; generic catch-alls last.
// First match wins, so adding a vendor format means inserting a row, not
// touching code.
var certNameCascade = []namePattern{
	// AWS
	pat(`(AWS Certified (?:Solutions Architect|DevOps Engineer|SysOps Administrator|Cloud Practitioner|Data Engineer|Machine Learning|Security|Developer|Advanced Networking|Database)(?:\s*[-–]\s*(?:Associate|Professional|Specialty))?)`),
	pat(`(AWS Certified [A-Z][A-Za-z][A-Za-z -]{1,58})`),
	// Microsoft
	pat(`(Microsoft Certified:?\s+[A-Z][A-Za-z0-9][A-Za-z0-9&/ -]{1,78})`),
	pat(`((?:Azure|Microsoft 365|Dynamics 365|Power Platform) (?:Fundamentals|Administrator|Developer|Solutions Architect|Data Engineer|Security Engineer|Data Scientist)(?: Associate| Expert)?)`),
	// SAP
	pat(`(SAP Certified (?:Application|Technology|Development) (?:Associate|Professional|Specialist)[A-Za-z0-9,/ -]{0,60})`),
	pat(`(SAP Certified [A-Z][A-Za-z][A-Za-z0-9,/ -]{1,68})`),
	// Oracle
	pat(`(Oracle (?:Certified|Cloud Infrastructure|Database|Java)[A-Za-z0-9 ]{3,70})`),
	// Cisco
	pat(`(Cisco Certified (?:Network|DevNet|Internetwork|Design) [A-Z][A-Za-z ]{1,50})`),
	pat(`\b(CCNA|CCNP|CCIE|CCDA|CCST)\b`),
	// Red Hat
	pat(`(Red Hat Certified (?:System Administrator|Engineer|Architect|Specialist)[A-Za-z ]{0,40})`),
	pat(`\b(RHCSA|RHCE|RHCA)\b`),
	// Google Cloud
	pat(`(Google Cloud Certified\s*[-–]?\s*(?:Professional|Associate) [A-Z][A-Za-z ]{1,50})`),
	pat(`((?:Professional|Associate) Cloud [A-Z][A-Za-z ]{1,40}(?:Engineer|Architect|Developer|Administrator|Analyst))`),
	// PMI
	pat(`(Project Management Professional)`),
	pat(`(PMI Agile Certified Practitioner)`),
	pat(`(Certified Associate in Project Management)`),
	pat(`(Program Management Professional)`),
	// ITIL / PeopleCert
	pat(`(ITIL\s*(?:4|v3|v4)?\s*(?:Foundation|Managing Professional|Strategist|Specialist|Leader)[A-Za-z :]{0,40})`),
	pat(`(PRINCE2(?: Agile)?(?: Foundation| Practitioner)?)`),
	pat(`(MSP (?:Foundation|Practitioner))`),
	// Scrum
	pat(`(Professional Scrum Master(?:\s+(?:I{1,3}|Level [I1-3]+))?)`),
	pat(`(Professional Scrum Product Owner(?:\s+(?:I{1,3}|Level [I1-3]+))?)`),
	pat(`(Professional Scrum Developer)`),
	pat(`(Certified Scrum ?Master)`),
	pat(`(Certified Scrum Product Owner)`),
	// ServiceNow
	pat(`(ServiceNow Certified [A-Z][A-Za-z -]{3,60})`),
	pat(`(Certified (?:System Administrator|Implementation Specialist|Application Developer)(?:\s*[-–]\s*[A-Z][A-Za-z ]{1,40})?)`),
	// UiPath / Appian
	pat(`(UiPath Certified [A-Z][A-Za-z -]{3,60})`),
	pat(`(Appian Certified [A-Z][A-Za-z -]{3,60})`),
	// IAPP
	pat(`(Certified Information Privacy (?:Professional|Manager|Technologist)(?:/[A-Z]{1,2})?)`),
	// ISACA
	pat(`(Certified Information Systems Auditor)`),
	pat(`(Certified Information Security Manager)`),
	pat(`(Certified in Risk and Information Systems Control)`),
	pat(`(Certified Data Privacy Solutions Engineer)`),
	// The Open Group / APMG
	pat(`(TOGAF\s*(?:9|10)?\s*(?:Foundation|Certified|Practitioner)?)`),
	pat(`(AgilePM (?:Foundation|Practitioner))`),
	pat(`(Change Management (?:Foundation|Practitioner))`),
	// Generic catch-alls
	pat(`(?i)(?:certification|credential)[:\s]+([A-Z][A-Za-z0-9][A-Za-z0-9&/ -]{1,78})`),
	pat(`(?i)certificate\s+(?:of|in|for)?\s*[:\s]\s*([A-Z][A-Za-z0-9][A-Za-z0-9&/ -]{1,78})`),
	pat(`(?i)certificato[:\s]+([A-Z][A-Za-zÀ-ú0-9][A-Za-zÀ-ú0-9&/ -]{1,78})`),
	pat(`([A-Z][A-Za-z]+(?: [A-Z][A-Za-z]+){1,5} Certification)\b`),
}

// garbage tokens trimmed off the tail of a captured name.
var trailingGarbage = map[string]struct{}{
	"issued": {}, "awarded": {}, "granted": {}, "this": {}, "has": {},
	"date": {}, "exam": {}, "on": {}, "to": {}, "il": {}, "del": {},
	"is": {}, "hereby": {}, "valid": {},
}

var reTrailingDate = regexp.MustCompile(`(?:\d{1,2}[/.-]\d{1,2}[/.-]\d{2,4}|\d{4}-\d{2}-\d{2})\s*$`)

// ExtractCertName runs the vendor-agnostic cascade over a newline-flattened,
// whitespace-collapsed copy of text. The vendor key (possibly empty) selects
// an optional refiner hook; a vendor keyword fallback applies when no
// pattern matched.
func ExtractCertName(text, vendorKey string) string {
	flat := collapseWhitespace(text)

	for _, p := range certNameCascade {
		m := p.re.FindStringSubmatch(flat)
		if m == nil {
			continue
		}
		candidate := m[1]
		if p.post != nil {
			candidate = p.post(candidate)
		}
		candidate = cleanCertName(candidate)
		if !acceptableCertName(candidate) {
			continue
		}
		if refine, ok := vendorRefiners[vendorKey]; ok {
			candidate = refine(candidate, flat)
		}
		return candidate
	}

	if infer, ok := vendorInference[vendorKey]; ok {
		return infer(strings.ToLower(flat))
	}
	return ""
}

func collapseWhitespace(text string) string {
	return strings.Join(strings.Fields(strings.ReplaceAll(text, "\n", " ")), " ")
}

// cleanCertName trims trailing dates, known garbage tokens and punctuation.
func cleanCertName(s string) string {
	s = strings.TrimSpace(s)
	for {
		before := s
		s = strings.TrimRight(s, " .,;:-–®™")
		s = strings.TrimSpace(reTrailingDate.ReplaceAllString(s, ""))
		if idx := strings.LastIndex(s, " "); idx > 0 {
			last := strings.ToLower(s[idx+1:])
			if _, garbage := trailingGarbage[last]; garbage {
				s = s[:idx]
			}
		}
		if s == before {
			return s
		}
	}
}

func acceptableCertName(s string) bool {
	n := utf8.RuneCountInString(s)
	if n < 3 || n > 120 {
		return false
	}
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsUpper(r)
}

// vendorRefiners are per-vendor post-processor hooks: vendor quirks stay out
// of the shared cascade.
var vendorRefiners = map[string]func(candidate, flat string) string{
	// IAPP certificates sometimes carry only the bare role word; remap it to
	// the four-letter credential when the privacy context phrases are there.
	"iapp": func(candidate, flat string) string {
		role := strings.ToLower(strings.TrimSpace(candidate))
		if role != "manager" && role != "professional" && role != "technologist" {
			return candidate
		}
		lower := strings.ToLower(flat)
		if !strings.Contains(lower, "information privacy") && !strings.Contains(lower, "iapp") {
			return candidate
		}
		switch role {
		case "manager":
			return "CIPM"
		case "professional":
			return "CIPP"
		case "technologist":
			return "CIPT"
		}
		return candidate
	},
}

// vendorInference is the keyword-based last resort when no cascade pattern
// matched at all.
var vendorInference = map[string]func(lower string) string{
	"aws": func(lower string) string {
		switch {
		case strings.Contains(lower, "solutions architect"):
			return "AWS Certified Solutions Architect"
		case strings.Contains(lower, "cloud practitioner"):
			return "AWS Certified Cloud Practitioner"
		case strings.Contains(lower, "developer"):
			return "AWS Certified Developer"
		}
		return ""
	},
	"scrum": func(lower string) string {
		switch {
		case strings.Contains(lower, "product owner"):
			return "Professional Scrum Product Owner"
		case strings.Contains(lower, "scrum master"):
			return "Professional Scrum Master"
		}
		return ""
	},
	"itil": func(lower string) string {
		if strings.Contains(lower, "foundation") {
			return "ITIL Foundation"
		}
		return ""
	},
}

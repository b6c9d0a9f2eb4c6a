package verify

import (
	"time"

	"github.com/google/uuid"

	"github.com/gabrielerendina/simulator-poste-sub000/constants"
)

// extractableFields is the denominator of the completeness confidence:
// vendor, cert code, cert name, valid-from, valid-until.
const extractableFields = 5

// ocrPreviewChars caps the diagnostic text preview stored on a result.
const ocrPreviewChars = 500

// Result is one record per input document. The filename-derived fields are
// set once at creation; extractors fill the detected fields progressively;
// the record is immutable once returned.
type Result struct {
	ID       uuid.UUID `json:"id"`
	Filename string    `json:"filename"`

	// Derived from the filename.
	ReqCode          string `json:"req_code"`
	CertNameFromFile string `json:"cert_name_from_file"`
	ResourceName     string `json:"resource_name"`

	// Populated by the extractors.
	VendorDetected       string     `json:"vendor_detected,omitempty"`
	VendorConfidence     float64    `json:"vendor_confidence,omitempty"`
	CertNameDetected     string     `json:"cert_name_detected,omitempty"`
	CertCodeDetected     string     `json:"cert_code_detected,omitempty"`
	ResourceNameDetected string     `json:"resource_name_detected,omitempty"`
	ValidFrom            *time.Time `json:"valid_from,omitempty"`
	ValidUntil           *time.Time `json:"valid_until,omitempty"`

	Status constants.VerificationStatus `json:"status"`
	// Confidence is extracted-field completeness in [0,1]; meaningful only
	// for valid/expired/mismatch outcomes.
	Confidence     float64  `json:"confidence"`
	OCRTextPreview string   `json:"ocr_text_preview,omitempty"`
	Errors         []string `json:"errors,omitempty"`
}

// addError appends a human-readable diagnostic; the list is append-only.
func (r *Result) addError(msg string) {
	r.Errors = append(r.Errors, msg)
}

// computeConfidence sets Confidence from the populated detected fields.
func (r *Result) computeConfidence() {
	n := 0
	if r.VendorDetected != "" {
		n++
	}
	if r.CertCodeDetected != "" {
		n++
	}
	if r.CertNameDetected != "" {
		n++
	}
	if r.ValidFrom != nil {
		n++
	}
	if r.ValidUntil != nil {
		n++
	}
	r.Confidence = float64(n) / float64(extractableFields)
}

// Tally is a per-key aggregate in a batch summary.
type Tally struct {
	Total int `json:"total"`
	Valid int `json:"valid"`
}

// Summary aggregates one batch run. Built once, never mutated afterward.
type Summary struct {
	Total         int                                  `json:"total"`
	ByStatus      map[constants.VerificationStatus]int `json:"by_status"`
	ByRequirement map[string]*Tally                    `json:"by_requirement"`
	ByResource    map[string]*Tally                    `json:"by_resource"`
}

func newSummary() *Summary {
	return &Summary{
		ByStatus:      make(map[constants.VerificationStatus]int),
		ByRequirement: make(map[string]*Tally),
		ByResource:    make(map[string]*Tally),
	}
}

func (s *Summary) add(r *Result) {
	s.Total++
	s.ByStatus[r.Status]++
	valid := 0
	if r.Status == constants.StatusValid {
		valid = 1
	}
	if r.ReqCode != "" {
		t := s.ByRequirement[r.ReqCode]
		if t == nil {
			t = &Tally{}
			s.ByRequirement[r.ReqCode] = t
		}
		t.Total++
		t.Valid += valid
	}
	if r.ResourceName != "" {
		t := s.ByResource[r.ResourceName]
		if t == nil {
			t = &Tally{}
			s.ByResource[r.ResourceName] = t
		}
		t.Total++
		t.Valid += valid
	}
}

// BatchResult is the structured outcome of a folder run. A missing folder or
// empty result set comes back as Success=false/Warnings, never an error
// return.
type BatchResult struct {
	Success         bool      `json:"success"`
	RunID           uuid.UUID `json:"run_id"`
	Results         []*Result `json:"results"`
	Summary         *Summary  `json:"summary,omitempty"`
	Error           string    `json:"error,omitempty"`
	Warnings        []string  `json:"warnings,omitempty"`
	Truncated       bool      `json:"truncated,omitempty"`
	TotalFilesFound int       `json:"total_files_found"`
	ProcessedFiles  int       `json:"processed_files"`
}

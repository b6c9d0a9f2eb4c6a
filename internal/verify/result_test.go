package verify

import (
	"testing"
	"time"
)

func TestComputeConfidence(t *testing.T) {
	r := &Result{
		VendorDetected:   "aws",
		CertCodeDetected: "SAA-C03",
		CertNameDetected: "AWS Certified Solutions Architect",
	}
	r.computeConfidence()
	if r.Confidence != 0.6 {
		t.Fatalf("confidence = %v, want 0.6", r.Confidence)
	}

	until := time.Date(2028, time.January, 31, 0, 0, 0, 0, time.UTC)
	r.ValidFrom, r.ValidUntil = &until, &until
	r.computeConfidence()
	if r.Confidence != 1.0 {
		t.Fatalf("confidence = %v, want 1.0", r.Confidence)
	}

	empty := &Result{}
	empty.computeConfidence()
	if empty.Confidence != 0 {
		t.Fatalf("confidence = %v, want 0", empty.Confidence)
	}
}

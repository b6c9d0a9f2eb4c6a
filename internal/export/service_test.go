package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/gabrielerendina/simulator-poste-sub000/constants"
	"github.com/gabrielerendina/simulator-poste-sub000/internal/verify"
)

func sampleBatch() *verify.BatchResult {
	until := time.Date(2028, time.January, 31, 0, 0, 0, 0, time.UTC)
	results := []*verify.Result{
		{
			ID:               uuid.New(),
			Filename:         "REQ01_AWS_Solutions_Architect_Mario_Rossi.pdf",
			ReqCode:          "REQ01",
			ResourceName:     "Mario Rossi",
			VendorDetected:   "aws",
			CertNameDetected: "AWS Certified Solutions Architect",
			ValidUntil:       &until,
			Status:           constants.StatusValid,
			Confidence:       0.6,
		},
		{
			ID:           uuid.New(),
			Filename:     "REQ02_Cert_Luigi_Bianchi.pdf",
			ReqCode:      "REQ02",
			ResourceName: "Luigi Bianchi",
			Status:       constants.StatusUnreadable,
			Errors:       []string{"document produced no usable text"},
		},
	}
	summary := &verify.Summary{
		Total: 2,
		ByStatus: map[constants.VerificationStatus]int{
			constants.StatusValid:      1,
			constants.StatusUnreadable: 1,
		},
		ByRequirement: map[string]*verify.Tally{
			"REQ01": {Total: 1, Valid: 1},
			"REQ02": {Total: 1},
		},
		ByResource: map[string]*verify.Tally{
			"Mario Rossi":   {Total: 1, Valid: 1},
			"Luigi Bianchi": {Total: 1},
		},
	}
	return &verify.BatchResult{
		Success: true,
		RunID:   uuid.New(),
		Results: results,
		Summary: summary,
	}
}

func TestBatchXLSX(t *testing.T) {
	data, err := NewService(nil).BatchXLSX(sampleBatch())
	if err != nil {
		t.Fatalf("BatchXLSX: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) != 2 {
		t.Fatalf("sheets = %v", sheets)
	}

	rows, err := f.GetRows("Results")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 { // header + two results
		t.Fatalf("rows = %d", len(rows))
	}
	if rows[0][0] != "Filename" || rows[0][3] != "Status" {
		t.Fatalf("header row = %v", rows[0])
	}
	if rows[1][1] != "REQ01" || rows[1][3] != "valid" || rows[1][8] != "2028-01-31" {
		t.Fatalf("first result row = %v", rows[1])
	}

	srows, err := f.GetRows("Summary")
	if err != nil {
		t.Fatal(err)
	}
	if len(srows) == 0 || srows[0][0] != "Total documents" {
		t.Fatalf("summary rows = %v", srows)
	}
}

func TestBatchXLSXEmptyRun(t *testing.T) {
	batch := &verify.BatchResult{Success: true, RunID: uuid.New()}
	data, err := NewService(nil).BatchXLSX(batch)
	if err != nil {
		t.Fatalf("BatchXLSX: %v", err)
	}
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer func() { _ = f.Close() }()
	rows, err := f.GetRows("Results")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want header only", len(rows))
	}
}

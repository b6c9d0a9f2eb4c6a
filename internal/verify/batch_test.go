package verify

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/gabrielerendina/simulator-poste-sub000/constants"
)

const batchText = "ITIL 4 Foundation\nCertificate of Completion\nMARIO ROSSI\nValid until 31/01/2028"

func batchVerifier() *Verifier {
	return NewVerifier(nil, nil, stubExtractor{text: batchText}, nil).WithClock(fixedClock)
}

func writeBatchDir(t *testing.T, reqCodes ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, req := range reqCodes {
		name := fmt.Sprintf("%s_ITIL_Foundation_Mario_Rossi.pdf", req)
		if err := os.WriteFile(filepath.Join(dir, name), []byte("%PDF stub"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestVerifyFolder(t *testing.T) {
	dir := writeBatchDir(t, "REQ01", "REQ02", "REQ03")
	// non-certificate files are ignored by the walk
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	out := batchVerifier().VerifyFolder(context.Background(), dir, BatchOptions{})
	if !out.Success {
		t.Fatalf("success = false: %s", out.Error)
	}
	if out.TotalFilesFound != 3 || out.ProcessedFiles != 3 || len(out.Results) != 3 {
		t.Fatalf("found=%d processed=%d results=%d", out.TotalFilesFound, out.ProcessedFiles, len(out.Results))
	}
	if out.Summary.Total != 3 {
		t.Fatalf("summary total = %d", out.Summary.Total)
	}
	if got := out.Summary.ByStatus[constants.StatusValid]; got != 3 {
		t.Fatalf("valid count = %d, statuses = %v", got, out.Summary.ByStatus)
	}
	if tally := out.Summary.ByResource["Mario Rossi"]; tally == nil || tally.Total != 3 || tally.Valid != 3 {
		t.Fatalf("resource tally = %+v", tally)
	}
	if tally := out.Summary.ByRequirement["REQ02"]; tally == nil || tally.Total != 1 {
		t.Fatalf("requirement tally = %+v", tally)
	}
}

func TestVerifyFolderMaxFiles(t *testing.T) {
	dir := writeBatchDir(t, "REQ01", "REQ02", "REQ03", "REQ04", "REQ05", "REQ06")

	out := batchVerifier().VerifyFolder(context.Background(), dir, BatchOptions{MaxFiles: 4})
	if !out.Truncated {
		t.Fatal("expected truncation")
	}
	if out.TotalFilesFound != 6 || out.ProcessedFiles != 4 {
		t.Fatalf("found=%d processed=%d", out.TotalFilesFound, out.ProcessedFiles)
	}
	if len(out.Warnings) == 0 {
		t.Fatal("expected a truncation warning")
	}
}

func TestVerifyFolderReqFilter(t *testing.T) {
	dir := writeBatchDir(t, "REQ01", "REQ02", "REQ03")

	out := batchVerifier().VerifyFolder(context.Background(), dir, BatchOptions{ReqFilter: "REQ02"})
	// everything is still processed; the filter only trims the output
	if out.ProcessedFiles != 3 {
		t.Fatalf("processed = %d", out.ProcessedFiles)
	}
	if len(out.Results) != 1 || out.Results[0].ReqCode != "REQ02" {
		t.Fatalf("results = %v", out.Results)
	}
	if out.Summary.Total != 1 {
		t.Fatalf("summary total = %d", out.Summary.Total)
	}
}

func TestVerifyFolderMissing(t *testing.T) {
	out := batchVerifier().VerifyFolder(context.Background(), filepath.Join(t.TempDir(), "nope"), BatchOptions{})
	if out.Success || out.Error == "" {
		t.Fatalf("expected folder-not-found: %+v", out)
	}
}

func TestVerifyFolderEmpty(t *testing.T) {
	out := batchVerifier().VerifyFolder(context.Background(), t.TempDir(), BatchOptions{})
	if !out.Success {
		t.Fatalf("empty folder should still succeed: %s", out.Error)
	}
	if out.TotalFilesFound != 0 || len(out.Warnings) == 0 {
		t.Fatalf("found=%d warnings=%v", out.TotalFilesFound, out.Warnings)
	}
}

func TestVerifyFolderCanceled(t *testing.T) {
	dir := writeBatchDir(t, "REQ01", "REQ02")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out := batchVerifier().VerifyFolder(ctx, dir, BatchOptions{})
	if out.ProcessedFiles != 0 {
		t.Fatalf("processed = %d after cancellation", out.ProcessedFiles)
	}
}

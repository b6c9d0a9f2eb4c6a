package verify

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gabrielerendina/simulator-poste-sub000/constants"
)

// BatchOptions tunes a folder run.
type BatchOptions struct {
	// ReqFilter keeps only results whose requirement code matches exactly.
	// Applied after extraction: filtered-out documents are still processed.
	// Filename-derived codes would allow filtering before OCR, but the
	// post-filter order is the documented behavior; the discarded work is
	// logged instead.
	ReqFilter string
	// MaxFiles truncates the file list when positive.
	MaxFiles int
}

// VerifyFolder recursively enumerates certificate documents under root,
// verifies each one, and aggregates the per-requirement and per-holder
// summaries. Folder-level problems surface as a structured result, never an
// error return.
func (v *Verifier) VerifyFolder(ctx context.Context, root string, opts BatchOptions) *BatchResult {
	out := &BatchResult{RunID: uuid.New()}
	start := time.Now()

	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		out.Error = fmt.Sprintf("folder not found: %s", root)
		return out
	}

	files, walkWarnings := collectCertificates(root)
	out.TotalFilesFound = len(files)
	out.Warnings = append(out.Warnings, walkWarnings...)
	if len(files) == 0 {
		out.Success = true
		out.Warnings = append(out.Warnings, "no certificate documents found")
		out.Summary = newSummary()
		return out
	}

	if opts.MaxFiles > 0 && len(files) > opts.MaxFiles {
		files = files[:opts.MaxFiles]
		out.Truncated = true
		out.Warnings = append(out.Warnings, fmt.Sprintf(
			"processing %d of %d files found", len(files), out.TotalFilesFound))
	}

	summary := newSummary()
	discarded := 0
	for _, path := range files {
		if ctx.Err() != nil {
			out.Warnings = append(out.Warnings, fmt.Sprintf("run canceled after %d files", out.ProcessedFiles))
			break
		}
		res := v.VerifyCertificate(ctx, path)
		out.ProcessedFiles++
		if opts.ReqFilter != "" && res.ReqCode != opts.ReqFilter {
			discarded++
			continue
		}
		out.Results = append(out.Results, res)
		summary.add(res)
	}
	if discarded > 0 {
		// extraction already ran for these; see BatchOptions.ReqFilter
		v.logger.Warn("batch.filter.discarded", "req_filter", opts.ReqFilter, "discarded", discarded)
	}

	out.Summary = summary
	out.Success = true
	v.logger.Info("batch.done",
		"run_id", out.RunID.String(),
		"root", root,
		"found", out.TotalFilesFound,
		"processed", out.ProcessedFiles,
		"kept", len(out.Results),
		"valid", summary.ByStatus[constants.StatusValid],
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return out
}

// collectCertificates walks root gathering files with a certificate
// extension, in deterministic order. Walk errors become warnings.
func collectCertificates(root string) ([]string, []string) {
	var files []string
	var warnings []string
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			warnings = append(warnings, fmt.Sprintf("%s: %v", path, walkErr))
			return nil // continue walking
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if constants.IsCertificateFile(d.Name()) {
			files = append(files, path)
		}
		return nil
	})
	sort.Strings(files)
	return files, warnings
}

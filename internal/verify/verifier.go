// Package verify sequences filename parsing, text extraction and field
// extraction for certificate documents, and applies the status rules.
package verify

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gabrielerendina/simulator-poste-sub000/constants"
	"github.com/gabrielerendina/simulator-poste-sub000/internal/common"
	"github.com/gabrielerendina/simulator-poste-sub000/internal/extract"
	"github.com/gabrielerendina/simulator-poste-sub000/internal/filename"
	"github.com/gabrielerendina/simulator-poste-sub000/internal/ocr"
	"github.com/gabrielerendina/simulator-poste-sub000/internal/vendor"
)

// minReadableChars is the least trimmed text a document must yield before
// field extraction is worth attempting.
const minReadableChars = 30

// TextExtractor is the seam between the orchestrator and the OCR layer;
// tests stub it.
type TextExtractor interface {
	ExtractText(ctx context.Context, path string) (string, error)
}

// Verifier runs the per-document pipeline. Catalog and settings are
// read-only after construction, so a Verifier is safe for concurrent use as
// long as the extractor is.
type Verifier struct {
	logger    *slog.Logger
	catalog   *vendor.Catalog
	settings  *common.Settings
	parser    *filename.Parser
	extractor TextExtractor
	now       func() time.Time
}

func NewVerifier(catalog *vendor.Catalog, settings *common.Settings, extractor TextExtractor, logger *slog.Logger) *Verifier {
	if logger == nil {
		logger = slog.Default()
	}
	if catalog == nil {
		catalog = vendor.Default()
	}
	if settings == nil {
		settings = common.DefaultSettings()
	}
	return &Verifier{
		logger:    logger,
		catalog:   catalog,
		settings:  settings,
		parser:    filename.NewParser(settings),
		extractor: extractor,
		now:       time.Now,
	}
}

// WithClock injects the "today" used for expiry checks; tests pin it.
func (v *Verifier) WithClock(now func() time.Time) *Verifier {
	v.now = now
	return v
}

// VerifyCertificate processes one document to completion. Every failure mode
// is captured on the returned result; this never returns an error.
func (v *Verifier) VerifyCertificate(ctx context.Context, path string) *Result {
	parsed := v.parser.Parse(filepath.Base(path))
	res := &Result{
		ID:               uuid.New(),
		Filename:         filepath.Base(path),
		ReqCode:          parsed.ReqCode,
		CertNameFromFile: parsed.CertName,
		ResourceName:     parsed.ResourceName,
		Status:           constants.StatusUnprocessed,
	}

	info, err := os.Stat(path)
	if err != nil {
		res.Status = constants.StatusError
		res.addError(fmt.Sprintf("cannot stat file: %v", err))
		return res
	}
	if info.Size() == 0 {
		res.Status = constants.StatusNotDownloaded
		res.addError("file is empty (0 bytes): placeholder from cloud-synced storage, not downloaded")
		return res
	}
	maxBytes := int64(v.settings.MaxFileSizeMB * float64(1<<20))
	if maxBytes > 0 && info.Size() > maxBytes {
		res.Status = constants.StatusTooLarge
		res.addError(fmt.Sprintf("file is %.1f MB, above the %.1f MB limit; OCR skipped",
			float64(info.Size())/float64(1<<20), v.settings.MaxFileSizeMB))
		return res
	}

	text, err := v.extractor.ExtractText(ctx, path)
	if err != nil {
		res.Status = constants.StatusError
		res.addError(fmt.Sprintf("text extraction failed: %v", err))
		v.logger.Warn("verify.extract.failed", "file", res.Filename, "error", err)
		return res
	}
	if len(strings.TrimSpace(text)) < minReadableChars {
		res.Status = constants.StatusUnreadable
		res.addError("document produced no usable text")
		return res
	}
	res.OCRTextPreview = preview(text)

	v.extractFields(res, text)

	if res.VendorDetected == "" && res.CertCodeDetected == "" && res.CertNameDetected == "" {
		res.Status = constants.StatusUnreadable
		res.addError("no vendor, certification code or certification name recognized")
		res.computeConfidence()
		return res
	}

	today := dateOnly(v.now().UTC())
	if res.ValidUntil != nil && res.ValidUntil.Before(today) {
		res.Status = constants.StatusExpired
		res.addError(fmt.Sprintf("certificate expired on %s", res.ValidUntil.Format("2006-01-02")))
	} else {
		res.Status = constants.StatusValid
	}

	if res.Status == constants.StatusValid &&
		res.ResourceName != "" && res.ResourceNameDetected != "" &&
		!extract.NamesMatch(res.ResourceName, res.ResourceNameDetected) {
		res.Status = constants.StatusMismatch
		res.addError(fmt.Sprintf("holder name on certificate (%s) does not match filename (%s)",
			res.ResourceNameDetected, res.ResourceName))
	}

	res.computeConfidence()
	v.logger.Info("verify.done",
		"file", res.Filename,
		"status", string(res.Status),
		"vendor", res.VendorDetected,
		"confidence", res.Confidence,
	)
	return res
}

// extractFields runs the vendor-aware extractors in order.
func (v *Verifier) extractFields(res *Result, text string) {
	profile, score := v.catalog.Detect(text)
	if profile != nil {
		res.VendorDetected = profile.Key
		res.VendorConfidence = score
		res.CertCodeDetected = extract.ExtractCertCode(text, profile)
	}

	vendorKey := ""
	if profile != nil {
		vendorKey = profile.Key
	}
	res.CertNameDetected = extract.ExtractCertName(text, vendorKey)

	dates := extract.ExtractDates(text, v.settings)
	if !dates.ValidFrom.IsZero() {
		from := dates.ValidFrom
		res.ValidFrom = &from
	}
	if !dates.ValidUntil.IsZero() {
		until := dates.ValidUntil
		res.ValidUntil = &until
	}

	res.ResourceNameDetected = extract.FindHolder(text, res.ResourceName)
}

// CheckAvailable reports whether the extraction dependency chain is present.
// The surrounding service layer gates its verification endpoints on this.
func (v *Verifier) CheckAvailable(ctx context.Context) bool {
	type prober interface {
		CheckAvailable(ctx context.Context) ocr.Availability
	}
	if p, ok := v.extractor.(prober); ok {
		return p.CheckAvailable(ctx).Usable()
	}
	return v.extractor != nil
}

func preview(text string) string {
	runes := []rune(text)
	if len(runes) > ocrPreviewChars {
		runes = runes[:ocrPreviewChars]
	}
	return string(runes)
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Package ocr turns a certificate document into raw text. Embedded text is
// preferred; recognition with a rotation/configuration search is the
// fallback for scanned documents.
package ocr

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gabrielerendina/simulator-poste-sub000/internal/common"
	"github.com/gabrielerendina/simulator-poste-sub000/internal/vendor"
)

// Text acceptance thresholds for the embedded-text fast path.
const (
	minEmbeddedChars   = 50
	minEmbeddedQuality = 5
)

type Config struct {
	Pdftotext string // binary name or absolute path; if empty -> "pdftotext"
	Pdftoppm  string // binary name or absolute path; if empty -> "pdftoppm"
	Tesseract string // binary name or absolute path; if empty -> "tesseract"
	Magick    string // binary name or absolute path; if empty -> "magick"

	TesseractLang string // default "eng+ita"
	DPI           int    // rasterization DPI for scanned documents, default 300
	MaxPages      int    // 0 = no limit
}

type Extractor struct {
	cfg     Config
	catalog *vendor.Catalog
	runner  Runner
	logger  *slog.Logger
}

func NewExtractor(cfg Config, catalog *vendor.Catalog, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if catalog == nil {
		catalog = vendor.Default()
	}
	if cfg.Pdftotext == "" {
		cfg.Pdftotext = "pdftotext"
	}
	if cfg.Pdftoppm == "" {
		cfg.Pdftoppm = "pdftoppm"
	}
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if cfg.Magick == "" {
		cfg.Magick = "magick"
	}
	if cfg.TesseractLang == "" {
		cfg.TesseractLang = "eng+ita"
	}
	if cfg.DPI <= 0 {
		cfg.DPI = 300
	}
	return &Extractor{cfg: cfg, catalog: catalog, runner: execRunner{}, logger: logger}
}

// WithRunner swaps the command runner; tests use it to stub the toolchain.
func (e *Extractor) WithRunner(r Runner) *Extractor {
	e.runner = r
	return e
}

// ExtractText obtains raw text from the document at path. The embedded-text
// result is accepted when it is non-trivial and scores well; otherwise every
// page is rasterized at the configured DPI and recognized.
func (e *Extractor) ExtractText(ctx context.Context, path string) (string, error) {
	start := time.Now()

	text, pages, err := e.embeddedText(ctx, path)
	if err == nil {
		trimmed := strings.TrimSpace(text)
		if len(trimmed) > minEmbeddedChars && e.QualityScore(trimmed) >= minEmbeddedQuality {
			e.logger.Debug("ocr.embedded.ok",
				"path", path, "pages", pages,
				"chars", len(trimmed), "elapsed_ms", time.Since(start).Milliseconds())
			return text, nil
		}
		e.logger.Debug("ocr.embedded.rejected", "path", path, "chars", len(trimmed))
	} else {
		e.logger.Debug("ocr.embedded.failed", "path", path, "error", err)
	}

	text, pages, err = e.recognize(ctx, path)
	if err != nil {
		return "", fmt.Errorf("recognize %s: %w", filepath.Base(path), err)
	}
	e.logger.Debug("ocr.recognized",
		"path", path, "pages", pages,
		"chars", len(text), "elapsed_ms", time.Since(start).Milliseconds())
	return text, nil
}

// embeddedText concatenates the document's embedded text page by page.
func (e *Extractor) embeddedText(ctx context.Context, path string) (string, int, error) {
	// pdftotext -layout -enc UTF-8 -eol unix <path> -
	out, errb, err := e.runner.Run(ctx, e.cfg.Pdftotext, "-layout", "-enc", "UTF-8", "-eol", "unix", path, "-")
	if err != nil {
		return "", 0, fmt.Errorf("pdftotext: %w (%s)", err, truncate(string(errb), 512))
	}
	text := string(out)
	// A form-feed \f is used as page separator by default
	pages := 1 + strings.Count(text, "\f")
	return text, pages, nil
}

// recognize rasterizes each page and runs the rotation/configuration search.
func (e *Extractor) recognize(ctx context.Context, path string) (string, int, error) {
	tmpDir, err := os.MkdirTemp("", "cv-pp-*")
	if err != nil {
		return "", 0, err
	}
	defer func() {
		if rerr := os.RemoveAll(tmpDir); rerr != nil {
			e.logger.Warn("ocr.tmpdir.remove_failed", "dir", tmpDir, "error", rerr)
		}
	}()

	prefix := filepath.Join(tmpDir, "page")
	// pdftoppm -r <dpi> -png <in.pdf> <tmp/page>
	_, errb, err := e.runner.Run(ctx, e.cfg.Pdftoppm, "-r", fmt.Sprintf("%d", e.cfg.DPI), "-png", path, prefix)
	if err != nil {
		return "", 0, fmt.Errorf("pdftoppm: %w (%s)", err, truncate(string(errb), 512))
	}

	// collect generated pngs (prefix-1.png, prefix-2.png, ...)
	matches, _ := filepath.Glob(prefix + "-*.png")
	sort.Strings(matches)
	if e.cfg.MaxPages > 0 && len(matches) > e.cfg.MaxPages {
		matches = matches[:e.cfg.MaxPages]
	}
	if len(matches) == 0 {
		return "", 0, fmt.Errorf("no pages rendered")
	}

	var b strings.Builder
	for _, img := range matches {
		txt, err := e.recognizeImage(ctx, img)
		if err != nil {
			e.logger.Warn("ocr.page.failed", "image", img, "error", err)
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n\f\n") // keep a clear page break marker
		}
		b.WriteString(txt)
	}
	if b.Len() == 0 {
		return "", len(matches), common.ErrNoText
	}
	return b.String(), len(matches), nil
}

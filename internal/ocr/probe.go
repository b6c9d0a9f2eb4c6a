package ocr

import "context"

// Availability reports which pieces of the external toolchain are present.
// Embedded-text extraction needs only pdftotext; full recognition needs all
// four binaries.
type Availability struct {
	Pdftotext bool
	Pdftoppm  bool
	Tesseract bool
	Magick    bool
}

// EmbeddedOnly reports whether only the embedded-text fast path is usable.
func (a Availability) EmbeddedOnly() bool {
	return a.Pdftotext && !(a.Pdftoppm && a.Tesseract)
}

// Usable reports whether any extraction at all can run.
func (a Availability) Usable() bool { return a.Pdftotext }

// Recognition reports whether the image-recognition fallback can run.
// Preprocessing degrades gracefully when magick is missing.
func (a Availability) Recognition() bool {
	return a.Pdftoppm && a.Tesseract
}

// CheckAvailable probes each binary with a version flag. The surrounding
// service layer uses this to decide whether to expose verification at all.
func (e *Extractor) CheckAvailable(ctx context.Context) Availability {
	probe := func(name string, args ...string) bool {
		_, _, err := e.runner.Run(ctx, name, args...)
		return err == nil
	}
	return Availability{
		Pdftotext: probe(e.cfg.Pdftotext, "-v"),
		Pdftoppm:  probe(e.cfg.Pdftoppm, "-v"),
		Tesseract: probe(e.cfg.Tesseract, "--version"),
		Magick:    probe(e.cfg.Magick, "-version"),
	}
}

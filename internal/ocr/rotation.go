package ocr

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
)

// earlyExitScore short-circuits the whole rotation/configuration search once
// a recognized text scores at least this well.
const earlyExitScore = 15

var rotations = []int{0, 90, 180, 270}

// tesseract configurations tried per image variant: the default plus two
// alternates (uniform block, sparse text).
var tessConfigs = [][]string{
	nil,
	{"--psm", "6"},
	{"--psm", "11"},
}

// recognizeImage runs recognition over {original, preprocessed} x rotations x
// configurations and keeps the best-scoring text.
func (e *Extractor) recognizeImage(ctx context.Context, img string) (string, error) {
	variants := []string{img}
	if pre, err := e.preprocess(ctx, img); err == nil {
		variants = append(variants, pre)
	} else {
		e.logger.Debug("ocr.preprocess.failed", "image", img, "error", err)
	}

	var bestText string
	bestScore := -1
	attempts := 0
	for _, variant := range variants {
		for _, deg := range rotations {
			rotated := variant
			if deg != 0 {
				r, err := e.rotate(ctx, variant, deg)
				if err != nil {
					e.logger.Debug("ocr.rotate.failed", "image", variant, "deg", deg, "error", err)
					continue
				}
				rotated = r
			}
			for _, extra := range tessConfigs {
				attempts++
				txt, err := e.tesseract(ctx, rotated, extra)
				if err != nil {
					continue
				}
				if score := e.QualityScore(txt); score > bestScore {
					bestText, bestScore = txt, score
					if score >= earlyExitScore {
						e.logger.Debug("ocr.search.early_exit",
							"image", img, "attempts", attempts, "score", score)
						return bestText, nil
					}
				}
			}
		}
	}
	if bestScore < 0 {
		return "", fmt.Errorf("all recognition attempts failed for %s", filepath.Base(img))
	}
	e.logger.Debug("ocr.search.done", "image", img, "attempts", attempts, "score", bestScore)
	return bestText, nil
}

// preprocess applies grayscale -> autocontrast (2% cutoff) -> sharpen.
func (e *Extractor) preprocess(ctx context.Context, img string) (string, error) {
	out := variantPath(img, "pre")
	_, errb, err := e.runner.Run(ctx, e.cfg.Magick, img,
		"-colorspace", "Gray",
		"-contrast-stretch", "2%x2%",
		"-sharpen", "0x1",
		out)
	if err != nil {
		return "", fmt.Errorf("magick preprocess: %w (%s)", err, truncate(string(errb), 512))
	}
	return out, nil
}

func (e *Extractor) rotate(ctx context.Context, img string, deg int) (string, error) {
	out := variantPath(img, fmt.Sprintf("rot%d", deg))
	_, errb, err := e.runner.Run(ctx, e.cfg.Magick, img, "-rotate", fmt.Sprintf("%d", deg), out)
	if err != nil {
		return "", fmt.Errorf("magick rotate: %w (%s)", err, truncate(string(errb), 512))
	}
	return out, nil
}

func (e *Extractor) tesseract(ctx context.Context, img string, extra []string) (string, error) {
	args := []string{img, "stdout", "-l", e.cfg.TesseractLang}
	args = append(args, extra...)
	out, errb, err := e.runner.Run(ctx, e.cfg.Tesseract, args...)
	if err != nil {
		return "", fmt.Errorf("tesseract: %w (%s)", err, truncate(string(errb), 512))
	}
	return string(out), nil
}

func variantPath(img, tag string) string {
	dir := filepath.Dir(img)
	base := strings.TrimSuffix(filepath.Base(img), filepath.Ext(img))
	return filepath.Join(dir, base+"-"+tag+".png")
}

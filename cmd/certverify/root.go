package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/gabrielerendina/simulator-poste-sub000/internal/common"
	"github.com/gabrielerendina/simulator-poste-sub000/internal/ocr"
	"github.com/gabrielerendina/simulator-poste-sub000/internal/vendor"
	"github.com/gabrielerendina/simulator-poste-sub000/internal/verify"
)

const app = "certverify"

var (
	// Used for flags.
	cfgFile string
	debug   bool

	rootCmd = &cobra.Command{
		Use:           app,
		Short:         "certverify extracts and verifies professional certification documents",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (optional; env and defaults otherwise)")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "verbose/debug output")
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}

// buildVerifier wires catalog, settings and the OCR extractor from config.
// The returned cleanup closes the catalog store when one was opened.
func buildVerifier(ctx context.Context, cfg *common.Config, logger *slog.Logger) (*verify.Verifier, func(), error) {
	cleanup := func() {}

	var catalog *vendor.Catalog
	switch {
	case cfg.Catalog.DSN != "":
		store, err := vendor.OpenStore(ctx, cfg.Catalog.DSN, logger)
		if err != nil {
			return nil, cleanup, err
		}
		cleanup = func() {
			if cerr := store.Close(); cerr != nil {
				logger.Error("close catalog store", "error", cerr)
			}
		}
		catalog, err = store.LoadCatalog(ctx)
		if err != nil {
			cleanup()
			return nil, func() {}, err
		}
	case cfg.Catalog.Path != "":
		var err error
		catalog, err = vendor.LoadJSON(cfg.Catalog.Path)
		if err != nil {
			return nil, cleanup, err
		}
	default:
		catalog = vendor.Default()
	}
	logger.Info("catalog ready", "vendors", len(catalog.Profiles()))

	extractor := ocr.NewExtractor(ocr.Config{
		Pdftotext:     cfg.OCR.Pdftotext,
		Pdftoppm:      cfg.OCR.Pdftoppm,
		Tesseract:     cfg.OCR.Tesseract,
		Magick:        cfg.OCR.Magick,
		TesseractLang: cfg.OCR.TesseractLang,
		DPI:           cfg.OCR.DPI,
		MaxPages:      cfg.OCR.MaxPages,
	}, catalog, logger)

	settings := common.SettingsFromConfig(cfg)
	return verify.NewVerifier(catalog, settings, extractor, logger), cleanup, nil
}

func loadConfig(logger *slog.Logger) (*common.Config, error) {
	cfg, err := common.LoadConfig(cfgFile)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfgFile != "" {
		logger.Debug("config loaded", "file", cfgFile)
	}
	return cfg, nil
}

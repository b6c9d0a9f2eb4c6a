package common

import (
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Catalog CatalogConfig
	OCR     OCRConfig
	Export  ExportConfig
}

// CatalogConfig holds vendor-catalog configuration. When both Path and DSN
// are empty the built-in default catalog is used.
type CatalogConfig struct {
	Path string // JSON catalog file, validated against the embedded schema
	DSN  string // SQL configuration store (sqlite file path or postgres:// URL)
}

// OCRConfig holds text-extraction configuration
type OCRConfig struct {
	Pdftotext     string
	Pdftoppm      string
	Tesseract     string
	Magick        string
	TesseractLang string
	DPI           int
	MaxPages      int
	MaxFileSizeMB float64
	Timeout       time.Duration
}

// ExportConfig holds report-export configuration
type ExportConfig struct {
	OutPath string
}

// LoadConfig reads configuration through viper: an optional config file,
// CERTVERIFY_* environment variables, and documented defaults. The engine is
// fully functional with zero external configuration.
func LoadConfig(cfgFile string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("CERTVERIFY")
	v.AutomaticEnv()

	v.SetDefault("catalog.path", "")
	v.SetDefault("catalog.dsn", "")
	v.SetDefault("ocr.pdftotext", "pdftotext")
	v.SetDefault("ocr.pdftoppm", "pdftoppm")
	v.SetDefault("ocr.tesseract", "tesseract")
	v.SetDefault("ocr.magick", "magick")
	v.SetDefault("ocr.lang", "eng+ita")
	v.SetDefault("ocr.dpi", 300)
	v.SetDefault("ocr.max_pages", 0)
	v.SetDefault("ocr.max_file_size_mb", 10.0)
	v.SetDefault("ocr.timeout", 2*time.Minute)
	v.SetDefault("export.out", "")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, WrapError(err, "read config")
		}
	}

	return &Config{
		Catalog: CatalogConfig{
			Path: v.GetString("catalog.path"),
			DSN:  v.GetString("catalog.dsn"),
		},
		OCR: OCRConfig{
			Pdftotext:     v.GetString("ocr.pdftotext"),
			Pdftoppm:      v.GetString("ocr.pdftoppm"),
			Tesseract:     v.GetString("ocr.tesseract"),
			Magick:        v.GetString("ocr.magick"),
			TesseractLang: v.GetString("ocr.lang"),
			DPI:           v.GetInt("ocr.dpi"),
			MaxPages:      v.GetInt("ocr.max_pages"),
			MaxFileSizeMB: v.GetFloat64("ocr.max_file_size_mb"),
			Timeout:       v.GetDuration("ocr.timeout"),
		},
		Export: ExportConfig{
			OutPath: v.GetString("export.out"),
		},
	}, nil
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if c.OCR.DPI <= 0 {
		return NewAppError("CONFIG_ERROR", "ocr.dpi must be positive", ErrInvalidInput)
	}
	if c.OCR.MaxFileSizeMB <= 0 {
		return NewAppError("CONFIG_ERROR", "ocr.max_file_size_mb must be positive", ErrInvalidInput)
	}
	return nil
}

// Package config defines the scan2docx settings and loads them through viper.
//
// Settings come from (highest priority first) command-line flags bound by the
// CLI, SCAN2DOCX_* environment variables, a scan2docx.yaml file, and the
// defaults registered by SetDefaults. With the defaults, images go to the
// engine unmodified and documents are written with godocx.
package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/viper"

	"github.com/ironsheep/scan2docx/internal/docx"
	"github.com/ironsheep/scan2docx/internal/languages"
	"github.com/ironsheep/scan2docx/internal/ocr"
)

// EnvPrefix is the prefix for environment overrides (SCAN2DOCX_LOG_LEVEL, ...).
const EnvPrefix = "SCAN2DOCX"

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Config is the complete application configuration.
type Config struct {
	Log LogConfig `mapstructure:"log" yaml:"log"`

	// Language is the recognition language a new session starts with.
	Language string `mapstructure:"language" yaml:"language"`

	OCR    OCRConfig    `mapstructure:"ocr" yaml:"ocr"`
	Output OutputConfig `mapstructure:"output" yaml:"output"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `mapstructure:"level" yaml:"level"`
}

// OCRConfig selects and tunes the recognition engine.
type OCRConfig struct {
	// Backend is auto, gosseract or cli.
	Backend string `mapstructure:"backend" yaml:"backend"`

	// TesseractCmd is the tesseract executable used by the cli backend.
	// A bare name is resolved through PATH.
	TesseractCmd string `mapstructure:"tesseract_cmd" yaml:"tesseract_cmd"`

	// TessdataPrefix points at the directory holding *.traineddata files.
	// Empty means the engine's compiled-in default.
	TessdataPrefix string `mapstructure:"tessdata_prefix" yaml:"tessdata_prefix"`

	// PageSegMode is Tesseract's --psm value. 3 is fully automatic.
	PageSegMode int `mapstructure:"page_seg_mode" yaml:"page_seg_mode"`

	Preprocess PreprocessConfig `mapstructure:"preprocess" yaml:"preprocess"`
}

// PreprocessConfig controls image cleanup applied before recognition.
type PreprocessConfig struct {
	Grayscale bool `mapstructure:"grayscale" yaml:"grayscale"`

	// Contrast is a percentage in [-100, 100]; 0 leaves the image alone.
	Contrast float64 `mapstructure:"contrast" yaml:"contrast"`

	// Threshold binarizes the image at this gray level (1-255); 0 disables.
	Threshold int `mapstructure:"threshold" yaml:"threshold"`

	// MinWidth upscales narrower images to this width; 0 disables.
	MinWidth int `mapstructure:"min_width" yaml:"min_width"`
}

// OutputConfig controls the generated document.
type OutputConfig struct {
	// Writer is godocx or docxlib.
	Writer string `mapstructure:"writer" yaml:"writer"`

	// Extension replaces the source extension, dot included.
	Extension string `mapstructure:"extension" yaml:"extension"`
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "warn")
	v.SetDefault("language", languages.Default().Name)
	v.SetDefault("ocr.backend", ocr.BackendAuto)
	v.SetDefault("ocr.tesseract_cmd", "tesseract")
	v.SetDefault("ocr.tessdata_prefix", "")
	v.SetDefault("ocr.page_seg_mode", 3)
	v.SetDefault("ocr.preprocess.grayscale", false)
	v.SetDefault("ocr.preprocess.contrast", 0.0)
	v.SetDefault("ocr.preprocess.threshold", 0)
	v.SetDefault("ocr.preprocess.min_width", 0)
	v.SetDefault("output.writer", docx.WriterGodocx)
	v.SetDefault("output.extension", ".docx")
}

// Default returns the configuration produced by the registered defaults alone.
func Default() *Config {
	v := viper.New()
	SetDefaults(v)
	cfg, err := Load(v)
	if err != nil {
		// Defaults are constants; failing here is a programming error.
		panic(err)
	}
	return cfg
}

// Load decodes v into a Config and validates it.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks enumerated values and ranges.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: log.level %q", ErrInvalid, c.Log.Level)
	}

	if _, err := languages.Lookup(c.Language); err != nil {
		return fmt.Errorf("%w: language: %v", ErrInvalid, err)
	}

	if !slices.Contains(ocr.Backends, c.OCR.Backend) {
		return fmt.Errorf("%w: ocr.backend %q (want one of %s)", ErrInvalid, c.OCR.Backend, strings.Join(ocr.Backends, ", "))
	}
	if c.OCR.Backend == ocr.BackendCLI && c.OCR.TesseractCmd == "" {
		return fmt.Errorf("%w: ocr.tesseract_cmd is required for the cli backend", ErrInvalid)
	}
	if c.OCR.PageSegMode < 0 || c.OCR.PageSegMode > 13 {
		return fmt.Errorf("%w: ocr.page_seg_mode %d out of range 0-13", ErrInvalid, c.OCR.PageSegMode)
	}

	p := c.OCR.Preprocess
	if p.Contrast < -100 || p.Contrast > 100 {
		return fmt.Errorf("%w: ocr.preprocess.contrast %v out of range -100..100", ErrInvalid, p.Contrast)
	}
	if p.Threshold < 0 || p.Threshold > 255 {
		return fmt.Errorf("%w: ocr.preprocess.threshold %d out of range 0-255", ErrInvalid, p.Threshold)
	}
	if p.MinWidth < 0 {
		return fmt.Errorf("%w: ocr.preprocess.min_width must not be negative", ErrInvalid)
	}

	if !slices.Contains(docx.Names, c.Output.Writer) {
		return fmt.Errorf("%w: output.writer %q (want one of %s)", ErrInvalid, c.Output.Writer, strings.Join(docx.Names, ", "))
	}
	if !strings.HasPrefix(c.Output.Extension, ".") || len(c.Output.Extension) < 2 {
		return fmt.Errorf("%w: output.extension %q must start with a dot", ErrInvalid, c.Output.Extension)
	}
	return nil
}

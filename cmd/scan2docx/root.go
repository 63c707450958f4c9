package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/ironsheep/scan2docx/internal/config"
	"github.com/ironsheep/scan2docx/internal/logging"
)

// app carries what every subcommand needs once configuration is loaded.
type app struct {
	v   *viper.Viper
	cfg *config.Config
	log *zap.SugaredLogger
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:   "scan2docx",
		Short: "Convert images and PDFs to DOCX",
		Long: `scan2docx extracts text from an image (OCR via Tesseract) or a PDF (text layer)
and writes it as a single-paragraph Word document next to the source file:
/path/to/scan.png becomes /path/to/scan.docx, replacing any existing file.

Run "scan2docx shell" for an interactive session, or "scan2docx convert FILE"
for a one-shot conversion.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}

	root.PersistentFlags().String("config", "", "config file (default: ./scan2docx.yaml or ~/.config/scan2docx/scan2docx.yaml)")
	root.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	root.PersistentFlags().String("ocr-backend", "", "OCR backend: auto, gosseract or cli")
	root.PersistentFlags().String("tesseract-cmd", "", "tesseract executable for the cli backend")
	root.PersistentFlags().String("tessdata", "", "directory holding *.traineddata files")
	root.PersistentFlags().String("writer", "", "document writer: godocx or docxlib")
	root.PersistentFlags().Bool("no-color", false, "disable colored status output")

	root.AddCommand(
		newConvertCmd(a),
		newShellCmd(a),
		newLanguagesCmd(a),
		newDoctorCmd(a),
		newVersionCmd(),
	)
	return root
}

// init loads configuration and builds the logger.
func (a *app) init(cmd *cobra.Command) error {
	v := a.v
	config.SetDefaults(v)

	flags := cmd.Root().PersistentFlags()
	for key, flag := range map[string]string{
		"log.level":           "log-level",
		"ocr.backend":         "ocr-backend",
		"ocr.tesseract_cmd":   "tesseract-cmd",
		"ocr.tessdata_prefix": "tessdata",
		"output.writer":       "writer",
	} {
		if err := v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			return err
		}
	}

	cfgFile, _ := flags.GetString("config")
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("scan2docx")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "scan2docx"))
		}
	}

	v.SetEnvPrefix(config.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg, err := config.Load(v)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = logging.New(cfg.Log.Level)

	if used := v.ConfigFileUsed(); used != "" {
		a.log.Debugw("using config file", "path", used)
	}
	return nil
}

// colorEnabled reports whether status lines should carry ANSI colors.
func colorEnabled(cmd *cobra.Command, f *os.File) bool {
	if off, _ := cmd.Flags().GetBool("no-color"); off {
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

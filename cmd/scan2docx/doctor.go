package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ironsheep/scan2docx/internal/ocr"
)

func newDoctorCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check that the OCR engine and settings are usable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "Config file:     %s\n", orNone(a.v.ConfigFileUsed()))
			fmt.Fprintf(out, "Language:        %s\n", a.cfg.Language)
			fmt.Fprintf(out, "Document writer: %s (%s)\n", a.cfg.Output.Writer, a.cfg.Output.Extension)
			fmt.Fprintf(out, "gosseract built: %t\n", ocr.GosseractCompiled)

			rec, err := a.recognizer()
			if err != nil {
				fmt.Fprintf(out, "OCR backend:     %s (unavailable: %v)\n", a.cfg.OCR.Backend, err)
				return fmt.Errorf("ocr not available: %w", errReported)
			}

			info := rec.Info()
			fmt.Fprintf(out, "OCR backend:     %s\n", info.Backend)
			if info.Backend == ocr.BackendCLI {
				fmt.Fprintf(out, "Tesseract cmd:   %s\n", a.cfg.OCR.TesseractCmd)
			}
			fmt.Fprintf(out, "Tessdata:        %s\n", orNone(info.TessdataPath))
			if !info.Available {
				fmt.Fprintf(out, "Tesseract:       unavailable (%s)\n", info.Error)
				return fmt.Errorf("ocr not available: %w", errReported)
			}
			fmt.Fprintf(out, "Tesseract:       %s\n", info.Version)
			return nil
		},
	}
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}

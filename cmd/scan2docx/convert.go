package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ironsheep/scan2docx/internal/session"
)

func newConvertCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert FILE...",
		Short: "Convert images or PDFs to DOCX",
		Long: `Convert extracts the text of each FILE and writes FILE's name with a .docx
extension in the same directory. PDFs use their embedded text layer; images
(jpeg jfif webp jpg png jpe svg bmp tif tiff gif) go through OCR in the
selected language. Extensions are matched case-sensitively.

Files are converted one after another. The exit status is non-zero if any
conversion did not succeed.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.newSession()
			if err != nil {
				return err
			}
			if lang, _ := cmd.Flags().GetString("lang"); lang != "" {
				if err := sess.SetLanguage(lang); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			color := colorEnabled(cmd, stdoutFile(cmd))
			failed := 0
			for _, path := range args {
				st := sess.Select(path)
				if st.Kind == session.StatusError {
					printStatus(out, st, color)
					failed++
					continue
				}

				res, st := sess.Convert(cmd.Context())
				printStatus(out, st, color)
				if res == nil {
					failed++
					continue
				}
				fmt.Fprintf(out, "Saved: %s\n", res.Target)
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d conversions failed: %w", failed, len(args), errReported)
			}
			return nil
		},
	}

	cmd.Flags().StringP("lang", "l", "", "source language for OCR (see 'scan2docx languages')")
	return cmd
}

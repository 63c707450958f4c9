package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ironsheep/scan2docx/internal/languages"
)

func newLanguagesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "languages",
		Short: "List OCR source languages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(languages.All())
			}

			for _, l := range languages.All() {
				marker := " "
				if l.Name == a.cfg.Language {
					marker = "*"
				}
				fmt.Fprintf(out, "%s %-8s %s\n", marker, l.Name, l.Code)
			}
			return nil
		},
	}
	cmd.Flags().Bool("json", false, "print as JSON")
	return cmd
}

package main

import (
	"github.com/spf13/cobra"

	"github.com/ironsheep/scan2docx/internal/shell"
)

func newShellCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Interactive session: open a file, pick a language, convert",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.newSession()
			if err != nil {
				return err
			}
			sh := shell.New(sess, cmd.InOrStdin(), cmd.OutOrStdout(),
				shell.WithColor(colorEnabled(cmd, stdoutFile(cmd))),
				shell.WithLogger(a.log),
			)
			return sh.Run(cmd.Context())
		},
	}
}

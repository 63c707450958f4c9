package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ironsheep/scan2docx/internal/session"
)

// stdoutFile returns the command's output as a file when it is one, so color
// detection can check for a terminal. Redirected test buffers yield nil.
func stdoutFile(cmd *cobra.Command) *os.File {
	if f, ok := cmd.OutOrStdout().(*os.File); ok {
		return f
	}
	return nil
}

func printStatus(w io.Writer, st session.Status, color bool) {
	if color {
		fmt.Fprintln(w, st.Colorize())
		return
	}
	fmt.Fprintln(w, st.Text)
}

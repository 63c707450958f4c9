// Command scan2docx extracts text from an image or PDF and saves it as a
// Word document next to the source file.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// errReported marks failures whose message was already shown to the user as
// a status line.
var errReported = errors.New("reported")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		stop()
		os.Exit(1)
	}
}

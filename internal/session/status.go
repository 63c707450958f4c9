package session

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// StatusKind is the semantic color class of a status message.
type StatusKind int

const (
	StatusNeutral StatusKind = iota
	StatusSuccess
	StatusError
)

func (k StatusKind) String() string {
	switch k {
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return "neutral"
	}
}

// Colors used for each kind: dark gray text, green and red.
var (
	ColorNeutral = colorful.MustParseHex("#111111")
	ColorSuccess = colorful.MustParseHex("#008000")
	ColorError   = colorful.MustParseHex("#ff0000")
)

// Color returns the display color of k.
func (k StatusKind) Color() colorful.Color {
	switch k {
	case StatusSuccess:
		return ColorSuccess
	case StatusError:
		return ColorError
	default:
		return ColorNeutral
	}
}

// Status is the single transient message shown to the user. Each file
// selection or conversion replaces it.
type Status struct {
	Text string     `json:"text"`
	Kind StatusKind `json:"kind"`
}

// Colorize wraps the status text in a 24-bit ANSI foreground color sequence.
// Neutral text is left uncolored since #111111 is unreadable on dark
// terminals.
func (s Status) Colorize() string {
	if s.Kind == StatusNeutral || s.Text == "" {
		return s.Text
	}
	r, g, b := s.Kind.Color().RGB255()
	return fmt.Sprintf("\x1b[38;2;%d;%d;%dm%s\x1b[0m", r, g, b, s.Text)
}

func (s Status) String() string {
	return s.Text
}

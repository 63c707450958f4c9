package shell

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/ironsheep/scan2docx/internal/languages"
	"github.com/ironsheep/scan2docx/internal/logging"
	"github.com/ironsheep/scan2docx/internal/session"
)

// Prompt is printed before each command is read.
const Prompt = "scan2docx> "

// Shell reads commands line by line and drives a session.
type Shell struct {
	sess  *session.Session
	in    io.Reader
	out   io.Writer
	color bool
	log   *zap.SugaredLogger
}

// Option configures a Shell.
type Option func(*Shell)

// WithColor enables ANSI-colored status lines.
func WithColor(enabled bool) Option {
	return func(s *Shell) { s.color = enabled }
}

// WithLogger sets the logger. The default discards output.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(s *Shell) { s.log = log }
}

// New creates a shell over sess reading from in and writing to out.
func New(sess *session.Session, in io.Reader, out io.Writer, opts ...Option) *Shell {
	s := &Shell{sess: sess, in: in, out: out, log: logging.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run processes commands until quit, end of input, or ctx is done. Each
// command runs to completion before the next line is read.
func (s *Shell) Run(ctx context.Context) error {
	scanner := bufio.NewScanner(s.in)
	// Paths can be long; allow lines well beyond the 64K default.
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	fmt.Fprintln(s.out, "Browse an image or PDF and convert it to DOCX. Type 'help' for commands.")
	s.printLanguage()
	fmt.Fprint(s.out, Prompt)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			fmt.Fprint(s.out, Prompt)
			continue
		}

		if quit := s.handleLine(ctx, line); quit {
			return nil
		}
		fmt.Fprint(s.out, Prompt)
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scanner error: %w", err)
	}
	fmt.Fprintln(s.out)
	return nil
}

// handleLine routes one command. It reports whether the shell should exit.
func (s *Shell) handleLine(ctx context.Context, line string) bool {
	name, arg := splitCommand(line)
	s.log.Debugw("command", "name", name, "arg", arg)

	switch name {
	case "open", "browse":
		s.handleOpen(arg)
	case "lang", "language":
		s.handleLang(arg)
	case "languages":
		s.handleLanguages()
	case "convert":
		s.handleConvert(ctx)
	case "status":
		s.handleStatus()
	case "help", "?":
		s.handleHelp()
	case "quit", "exit":
		return true
	default:
		fmt.Fprintf(s.out, "unknown command: %s (type 'help')\n", name)
	}
	return false
}

// splitCommand separates the command word from its argument. The argument
// keeps interior spaces and may be wrapped in double or single quotes.
func splitCommand(line string) (string, string) {
	name, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)
	if len(arg) >= 2 {
		if (arg[0] == '"' && arg[len(arg)-1] == '"') || (arg[0] == '\'' && arg[len(arg)-1] == '\'') {
			arg = arg[1 : len(arg)-1]
		}
	}
	return strings.ToLower(name), arg
}

func (s *Shell) printStatus(st session.Status) {
	if st.Text == "" {
		return
	}
	if s.color {
		fmt.Fprintln(s.out, st.Colorize())
		return
	}
	fmt.Fprintln(s.out, st.Text)
}

func (s *Shell) printLanguage() {
	fmt.Fprintf(s.out, "Source language: %s\n", s.sess.Language().Name)
}

func (s *Shell) handleOpen(path string) {
	if path == "" {
		fmt.Fprintln(s.out, "usage: open <path>")
		return
	}
	s.printStatus(s.sess.Select(path))
}

func (s *Shell) handleLang(name string) {
	if name == "" {
		s.printLanguage()
		return
	}
	if err := s.sess.SetLanguage(name); err != nil {
		fmt.Fprintln(s.out, err)
		return
	}
	s.printLanguage()
}

func (s *Shell) handleLanguages() {
	current := s.sess.Language().Name
	for _, l := range languages.All() {
		marker := " "
		if l.Name == current {
			marker = "*"
		}
		fmt.Fprintf(s.out, "%s %-8s %s\n", marker, l.Name, l.Code)
	}
}

func (s *Shell) handleConvert(ctx context.Context) {
	res, st := s.sess.Convert(ctx)
	s.printStatus(st)
	if res != nil {
		fmt.Fprintf(s.out, "Saved: %s\n", res.Target)
	}
}

func (s *Shell) handleStatus() {
	src := s.sess.Source()
	if src == "" {
		src = "(none)"
	}
	fmt.Fprintf(s.out, "File:     %s\n", src)
	if t := s.sess.Target(); t != "" {
		fmt.Fprintf(s.out, "Target:   %s\n", t)
	}
	fmt.Fprintf(s.out, "Language: %s\n", s.sess.Language().Name)
	s.printStatus(s.sess.Status())
}

func (s *Shell) handleHelp() {
	fmt.Fprint(s.out, `Commands:
  open <path>      select an image or PDF file
  lang [name]      show or change the source language
  languages        list available languages
  convert          convert the selected file to DOCX
  status           show the current selection and status
  help             show this help
  quit             exit
`)
}

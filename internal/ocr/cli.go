package ocr

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// cliRecognizer pipes the image through the tesseract executable:
//
//	tesseract stdin stdout -l <lang> --psm <mode> [--tessdata-dir <dir>]
type cliRecognizer struct {
	opts Options
}

func newCLI(opts Options) Recognizer {
	if opts.TesseractCmd == "" {
		opts.TesseractCmd = "tesseract"
	}
	return &cliRecognizer{opts: opts}
}

func (c *cliRecognizer) args(language string) []string {
	args := []string{"stdin", "stdout", "-l", language, "--psm", strconv.Itoa(c.opts.PageSegMode)}
	if c.opts.TessdataPrefix != "" {
		args = append(args, "--tessdata-dir", c.opts.TessdataPrefix)
	}
	return args
}

// Recognize performs OCR on an encoded image.
func (c *cliRecognizer) Recognize(ctx context.Context, image []byte, language string) (string, error) {
	path, err := exec.LookPath(c.opts.TesseractCmd)
	if err != nil {
		return "", fmt.Errorf("%w: tesseract not found at %q: %v", ErrBackendUnavailable, c.opts.TesseractCmd, err)
	}

	cmd := exec.CommandContext(ctx, path, c.args(language)...)
	cmd.Stdin = bytes.NewReader(image)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("tesseract failed: %w (stderr: %s)", err, strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}

// Info runs `tesseract --version` and reports its first line.
func (c *cliRecognizer) Info() Info {
	info := Info{Backend: BackendCLI, TessdataPath: c.opts.TessdataPrefix}

	path, err := exec.LookPath(c.opts.TesseractCmd)
	if err != nil {
		info.Error = err.Error()
		return info
	}

	out, err := exec.Command(path, "--version").CombinedOutput()
	if err != nil {
		info.Error = fmt.Sprintf("%v: %s", err, strings.TrimSpace(string(out)))
		return info
	}

	info.Available = true
	info.Version = firstLine(string(out))
	return info
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[:i])
	}
	return s
}

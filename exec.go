package boardfinder

import (
	"bytes"
	"context"
	"io"
	"os/exec"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
)

// DefaultCommandTimeout bounds every external command invocation.
const DefaultCommandTimeout = 15 * time.Second

// Runner executes an external command and returns its standard output.
type Runner interface {
	Run(ctx context.Context, stdin io.Reader, name string, args ...string) ([]byte, error)
}

// RunnerFunc adapts a plain function to the Runner interface.
type RunnerFunc func(ctx context.Context, stdin io.Reader, name string, args ...string) ([]byte, error)

func (f RunnerFunc) Run(ctx context.Context, stdin io.Reader, name string, args ...string) ([]byte, error) {
	return f(ctx, stdin, name, args...)
}

// ExecRunner runs commands with os/exec, killing them once Timeout elapses.
type ExecRunner struct {
	Timeout time.Duration
}

// Run executes the command. A non-zero exit status, a missing binary or an
// expired timeout all yield a *CommandError.
func (r ExecRunner) Run(ctx context.Context, stdin io.Reader, name string, args ...string) ([]byte, error) {
	runCtx := ctx
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(runCtx, name, args...)
	cmd.Stdin = stdin
	cmd.WaitDelay = time.Second

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	output, err := cmd.Output()
	if err != nil {
		if ctxErr := runCtx.Err(); ctxErr != nil {
			err = ctxErr
		}
		return output, &CommandError{
			Name:   name,
			Args:   args,
			Stderr: strings.TrimSpace(stderr.String()),
			Err:    err,
		}
	}
	return output, nil
}

// decodeOutput converts command output to a string, transcoding UTF-16LE
// as emitted by some Windows utilities when their output is redirected.
func decodeOutput(out []byte) string {
	if !looksUTF16(out) {
		return string(out)
	}
	decoded, err := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder().Bytes(out)
	if err != nil || !utf8.Valid(decoded) {
		return string(out)
	}
	return string(decoded)
}

func looksUTF16(out []byte) bool {
	if len(out) >= 2 && out[0] == 0xFF && out[1] == 0xFE {
		return true
	}
	if len(out) < 4 || len(out)%2 != 0 {
		return false
	}
	// ASCII text in UTF-16LE has a zero in every odd byte
	for i := 1; i < len(out) && i < 64; i += 2 {
		if out[i] != 0 {
			return false
		}
	}
	return true
}

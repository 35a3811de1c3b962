// Package validator bridges an assembled SPIR-V binary to an external
// validator tool (spec.md §4.10). The core never interprets the validator's
// output beyond passing its stderr through on failure.
package validator

import (
	"bytes"
	"fmt"
	"os/exec"
)

// ValidationError wraps a non-zero exit from the external validator. The
// message is the tool's stderr verbatim (spec.md §4.10: "non-zero ->
// ValidationError{message=stderr}").
type ValidationError struct {
	Path    string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator: %s reported a validation failure: %s", e.Path, e.Message)
}

// Bridge invokes an external validator binary, piping an assembled module's
// bytes to its standard input (spec.md §4.10).
type Bridge struct {
	// Path is the validator executable, resolved via exec.LookPath or an
	// absolute/relative path (e.g. "spirv-val").
	Path string
	// Args are extra arguments passed before the binary is piped in.
	Args []string
}

// New returns a Bridge targeting the named validator executable.
func New(path string, args ...string) *Bridge {
	return &Bridge{Path: path, Args: args}
}

// Validate pipes binary to the validator's standard input and reports the
// result. Exit code zero is success; non-zero produces a *ValidationError
// carrying the tool's stderr.
func (b *Bridge) Validate(binary []byte) error {
	cmd := exec.Command(b.Path, b.Args...) //nolint:gosec // G204: Path is caller-supplied, not user input
	cmd.Stdin = bytes.NewReader(binary)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if _, ok := err.(*exec.ExitError); ok {
			return &ValidationError{Path: b.Path, Message: stderr.String()}
		}
		return fmt.Errorf("validator: could not run %s: %w", b.Path, err)
	}
	return nil
}

// Available reports whether the bridge's executable can be found on PATH,
// for callers that want to skip validation gracefully when the external
// tool isn't installed (mirrors the teacher's exec.LookPath + t.Skip test
// pattern, promoted here to a reusable runtime check).
func (b *Bridge) Available() bool {
	_, err := exec.LookPath(b.Path)
	return err == nil
}

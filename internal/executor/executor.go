// Package executor runs external binaries with captured output. The
// acquisition stage uses it to drive yt-dlp without binding the rest of the
// pipeline to os/exec.
package executor

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Executor runs an external command and returns its stdout.
type Executor interface {
	Run(ctx context.Context, name string, args ...string) (string, error)
}

type implExecutor struct{}

// New creates the real Executor.
func New() Executor {
	return &implExecutor{}
}

// Run executes the command, honoring ctx cancellation. Stderr is folded
// into the error so callers can pass the tool's own message through.
func (e *implExecutor) Run(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if stderrStr := strings.TrimSpace(stderr.String()); stderrStr != "" {
			return "", fmt.Errorf("command %q failed: %w: %s", name, err, stderrStr)
		}
		return "", fmt.Errorf("command %q failed: %w", name, err)
	}

	return stdout.String(), nil
}

// Package packwiz wraps the packwiz CLI for modpack index operations.
package packwiz

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
)

// DefaultTimeout bounds a single packwiz invocation.
const DefaultTimeout = 120 * time.Second

// Runner invokes packwiz in a pack's working directory. Failures are
// reported through the (ok, output) pair rather than as errors: the
// sync loop folds every failure mode into its retry budget.
type Runner struct {
	Path    string        // packwiz binary; "packwiz" resolves via PATH
	Timeout time.Duration // per-invocation bound; zero means DefaultTimeout
	Verbose bool
}

// Run executes packwiz with args in dir, returning the exit status and
// the combined stdout/stderr text. A timeout or launch failure is
// captured in the output text, never raised.
func (r *Runner) Run(ctx context.Context, dir string, args ...string) (bool, string) {
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if r.Verbose {
		fmt.Fprintf(os.Stderr, "[packwiz] running: %s %s\n", r.Path, strings.Join(args, " "))
	}

	cmd := exec.CommandContext(ctx, r.Path, args...)
	cmd.Dir = dir

	var combined bytes.Buffer
	cmd.Stdout = &combined
	cmd.Stderr = &combined

	err := cmd.Run()
	output := combined.String()
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return false, "command timed out"
		}
		if output == "" {
			output = err.Error()
		}
		return false, output
	}
	return true, output
}

// Validate checks that the packwiz binary can be invoked.
func (r *Runner) Validate() error {
	if _, err := exec.LookPath(r.Path); err != nil {
		return fmt.Errorf("packwiz CLI not found at %q: %w", r.Path, err)
	}
	return nil
}

package sync

import (
	"context"
	"os/exec"
)

// DiffProbe reports whether a working tree has uncommitted changes.
// Convergence is defined by this probe, not by the tool's exit code: a
// successful packwiz run that changed nothing is not completion.
type DiffProbe interface {
	HasChanges(ctx context.Context, dir string) (bool, error)
}

// gitDiffProbe implements DiffProbe using the git CLI.
type gitDiffProbe struct{}

// NewDiffProbe returns a DiffProbe backed by `git diff --quiet`, or
// nil when git is not available. Callers should treat a nil probe as
// "no changes observable".
func NewDiffProbe() DiffProbe {
	if _, err := exec.LookPath("git"); err != nil {
		return nil
	}
	return gitDiffProbe{}
}

// HasChanges reports uncommitted modifications in dir. `git diff
// --quiet` exits non-zero when the tree is dirty.
func (gitDiffProbe) HasChanges(ctx context.Context, dir string) (bool, error) {
	cmd := exec.CommandContext(ctx, "git", "-C", dir, "diff", "--quiet", ".")
	if err := cmd.Run(); err != nil {
		if _, ok := err.(*exec.ExitError); ok {
			return true, nil
		}
		return false, err
	}
	return false, nil
}

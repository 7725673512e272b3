// Package sync reconciles a packwiz modpack index with a newly
// published mod version. One run targets one mod; packwiz is invoked
// repeatedly under a fixed attempt budget until the pack's working
// tree shows an observable change.
package sync

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// Platform codes for the hosting platforms packwiz can pull from.
const (
	PlatformModrinth   = "mr"
	PlatformCurseForge = "cf"
)

// Defaults for the retry budget. The interval is long because release
// artifacts can take minutes to propagate to platform CDNs.
const (
	DefaultMaxAttempts = 20
	DefaultInterval    = 60 * time.Second
)

// Tool invokes the external pack-manager CLI in a working directory,
// reporting exit status and combined output.
type Tool interface {
	Run(ctx context.Context, dir string, args ...string) (ok bool, output string)
}

// VersionPoller checks whether a version is visible on a hosting
// platform's read API.
type VersionPoller interface {
	VersionVisible(ctx context.Context, slug, version, mcVersion, loader string) (bool, error)
}

// ExistenceChecker reports whether the pack index already carries a
// mod, which decides add vs update once per run.
type ExistenceChecker interface {
	Contains(slug string) bool
}

// Target identifies one mod and the pack index it must appear in.
// Immutable for the duration of a run.
type Target struct {
	PackDir   string
	Slug      string
	Platform  string // "mr" or "cf"
	Version   string
	MCVersion string
	Loader    string
}

// Options bound the retry loop. A zero MaxAttempts falls back to
// DefaultMaxAttempts; a zero Interval disables sleeping, which tests
// rely on for determinism.
type Options struct {
	MaxAttempts int
	Interval    time.Duration
}

// ConvergenceTimeoutError reports an exhausted attempt budget.
type ConvergenceTimeoutError struct {
	Attempts int
	Elapsed  time.Duration
}

func (e *ConvergenceTimeoutError) Error() string {
	return fmt.Sprintf("sync did not converge after %d attempts (%s elapsed)", e.Attempts, e.Elapsed.Round(time.Second))
}

// Reconciler drives the add-or-update retry loop for one target.
type Reconciler struct {
	Tool    Tool
	Poller  VersionPoller    // Optional; nil disables upstream polling.
	Probe   DiffProbe        // Optional; nil means changes are never observable.
	Pack    ExistenceChecker
	Logger  *log.Logger
	Options Options

	// OnAction is called once per run with the chosen action.
	OnAction func(Action)
	// OnAttempt observes each attempt's outcome, for logging and tests.
	OnAttempt func(attempt int, outcome Outcome, detail string)
}

// Run reconciles the target. It returns nil once the pack's working
// tree shows a change, ctx.Err() if the context is cancelled, and a
// ConvergenceTimeoutError when the attempt budget runs out. Tool and
// network failures are folded into the retry loop, never returned.
func (r *Reconciler) Run(ctx context.Context, t Target) error {
	logger := r.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	maxAttempts := r.Options.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	interval := r.Options.Interval

	// The action is fixed for the whole run; a mod appearing mid-run
	// via a concurrent process is not re-detected.
	action := ActionAdd
	if r.Pack.Contains(t.Slug) {
		action = ActionUpdate
	}
	if r.OnAction != nil {
		r.OnAction(action)
	}
	logger.Info("starting sync", "action", action, "slug", t.Slug, "platform", t.Platform, "version", t.Version)

	start := time.Now()
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		// Poll the platform before spending a packwiz invocation on a
		// release known not to exist upstream yet. The first attempt
		// always invokes the tool; poll failures mean "unknown" and do
		// not block invocation.
		if attempt > 1 && r.Poller != nil && t.Platform == PlatformModrinth {
			visible, err := r.Poller.VersionVisible(ctx, t.Slug, t.Version, t.MCVersion, t.Loader)
			if err != nil {
				logger.Debug("version poll failed", "attempt", attempt, "err", err)
			} else if !visible {
				r.observe(logger, attempt, maxAttempts, OutcomeSkippedNotVisible, "version not visible upstream yet")
				if err := r.sleep(ctx, interval); err != nil {
					return err
				}
				continue
			}
		}

		var args []string
		if action == ActionAdd {
			args = []string{t.Platform, "add", t.Slug, "-y"}
		} else {
			args = []string{"update", t.Slug}
		}
		ok, output := r.Tool.Run(ctx, t.PackDir, args...)

		if !ok {
			if notFoundOutput(output) {
				r.observe(logger, attempt, maxAttempts, OutcomeSkippedNotVisible, "mod or version not found upstream")
			} else {
				// No transient/permanent distinction: the attempt
				// budget is the only backstop.
				r.observe(logger, attempt, maxAttempts, OutcomeToolError, strings.TrimSpace(output))
			}
			if err := r.sleep(ctx, interval); err != nil {
				return err
			}
			continue
		}

		if r.Probe != nil {
			changed, err := r.Probe.HasChanges(ctx, t.PackDir)
			if err != nil {
				logger.Debug("diff probe failed", "attempt", attempt, "err", err)
			}
			if err == nil && changed {
				r.observe(logger, attempt, maxAttempts, OutcomeConverged, "")
				logger.Info("sync complete", "action", action, "slug", t.Slug, "attempts", attempt)
				return nil
			}
		}

		// A clean exit with no observable effect is not completion.
		r.observe(logger, attempt, maxAttempts, OutcomeNoChange, "")
		if err := r.sleep(ctx, interval); err != nil {
			return err
		}
	}

	return &ConvergenceTimeoutError{Attempts: maxAttempts, Elapsed: time.Since(start)}
}

func (r *Reconciler) observe(logger *log.Logger, attempt, maxAttempts int, outcome Outcome, detail string) {
	if outcome != OutcomeConverged { // Convergence is logged with run context by Run.
		if detail != "" {
			logger.Info(outcome.String(), "attempt", fmt.Sprintf("%d/%d", attempt, maxAttempts), "detail", detail)
		} else {
			logger.Info(outcome.String(), "attempt", fmt.Sprintf("%d/%d", attempt, maxAttempts))
		}
	}
	if r.OnAttempt != nil {
		r.OnAttempt(attempt, outcome, detail)
	}
}

// sleep blocks for the retry interval or until the context ends.
func (r *Reconciler) sleep(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(interval)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// notFoundOutput reports whether tool output indicates the target was
// not found upstream, as opposed to some other failure.
func notFoundOutput(output string) bool {
	low := strings.ToLower(output)
	return strings.Contains(low, "could not find") || strings.Contains(low, "no results")
}

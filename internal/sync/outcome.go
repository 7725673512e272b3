package sync

// Outcome classifies the result of one reconciliation attempt.
type Outcome int

const (
	OutcomeSkippedNotVisible Outcome = iota // Release not on the platform yet; no work done.
	OutcomeToolError                        // packwiz failed for an unclear reason; retried.
	OutcomeNoChange                         // packwiz succeeded but the index did not change.
	OutcomeConverged                        // The index observably changed; done.
)

// String returns the snake_case name of the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeSkippedNotVisible:
		return "skipped_not_yet_visible"
	case OutcomeToolError:
		return "tool_error"
	case OutcomeNoChange:
		return "no_change_detected"
	case OutcomeConverged:
		return "converged"
	default:
		return "unknown"
	}
}

// Action is the index operation chosen for a reconciliation run. It is
// decided once at the start of the run and never revisited.
type Action string

const (
	ActionAdd    Action = "add"
	ActionUpdate Action = "update"
)

// Package apply drives the multi-step in-page application flow for a single
// job: find the entry point, fill recognized fields, advance through the
// wizard, and stop at the terminal step for human confirmation unless
// autonomous submission was explicitly authorized.
package apply

// Outcome describes how a single application attempt ended.
type Outcome int

const (
	// OutcomeNoEntryPointFound means no actionable begin-application
	// control was found or it could not be activated.
	OutcomeNoEntryPointFound Outcome = iota
	// OutcomePausedForManualReview means the terminal step was reached and
	// the driver held the session open for the operator to submit manually.
	OutcomePausedForManualReview
	// OutcomeSubmitted means the driver activated the terminal control
	// itself under explicit authorization.
	OutcomeSubmitted
	// OutcomeAbandoned means the wizard exceeded the step budget without
	// reaching a terminal step.
	OutcomeAbandoned
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNoEntryPointFound:
		return "no entry point found"
	case OutcomePausedForManualReview:
		return "paused for manual review"
	case OutcomeSubmitted:
		return "submitted"
	case OutcomeAbandoned:
		return "abandoned"
	default:
		return "unknown"
	}
}

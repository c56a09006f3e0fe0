// Package genval runs the shared generate-validate-retry loop used by every
// artifact stage. A stage supplies a Job; the runner owns the state machine
// and the retry budget so the stages never reimplement it.
package genval

import (
	"context"

	"cinecap/internal/core"
	"cinecap/internal/logger"
)

// State is the controller's position in the artifact lifecycle.
type State string

const (
	StatePending           State = "pending"
	StateGenerated         State = "generated"
	StateValidatedPass     State = "validated_pass"
	StateValidatedSoftPass State = "validated_soft_pass"
	StateRetry             State = "retry"
	StateFlagged           State = "flagged"
	StateSkipped           State = "skipped"
)

// Job is one artifact to produce. Generate returns the raw payload for one
// attempt; Validate judges it and returns a stable reason string.
type Job interface {
	// Name identifies the job in logs, e.g. "premise/603".
	Name() string

	// MissingInputs reports whether required upstream artifacts are absent.
	// When true the runner skips without calling Generate.
	MissingInputs() bool

	Generate(ctx context.Context) (string, error)
	Validate(payload string) (ok bool, reason string)
}

// SoftValidator is an optional second-chance check consulted only after
// Validate rejects. A soft pass is terminal with a distinct verdict.
type SoftValidator interface {
	SoftValidate(payload string) (ok bool, reason string)
}

// Outcome is the terminal result of a run: the final state, the last
// payload produced (retained even when flagged), the last validation
// reason, and how many generator calls were spent.
type Outcome struct {
	State    State
	Payload  string
	Reason   string
	Attempts int
}

// Verdict maps the outcome onto the persisted validation verdict.
func (o Outcome) Verdict() core.Verdict {
	switch o.State {
	case StateValidatedPass:
		return core.Verdict{Status: core.StatusPass, Reason: o.Reason}
	case StateValidatedSoftPass:
		return core.Verdict{Status: core.StatusSoftPass, Reason: o.Reason}
	case StateSkipped:
		return core.Verdict{Status: core.StatusSkipped, Reason: o.Reason}
	default:
		return core.Verdict{Status: core.StatusFlagged, Reason: o.Reason}
	}
}

// Runner drives jobs through the state machine. MaxRetries is the number
// of regeneration attempts after the first; total generator calls never
// exceed 1 + MaxRetries.
type Runner struct {
	MaxRetries int
}

// Run executes the job to a terminal state. Generation errors consume an
// attempt like a failed validation does, so a flaky generator cannot loop
// past the budget.
func (r Runner) Run(ctx context.Context, job Job) Outcome {
	if job.MissingInputs() {
		logger.Debug("genval: skipping, inputs missing", "job", job.Name())
		return Outcome{State: StateSkipped, Reason: "missing_inputs"}
	}

	soft, hasSoft := job.(SoftValidator)

	out := Outcome{State: StatePending}
	maxAttempts := 1 + r.MaxRetries

	for out.Attempts < maxAttempts {
		if err := ctx.Err(); err != nil {
			out.State = StateFlagged
			out.Reason = "context_cancelled"
			return out
		}

		out.Attempts++

		payload, err := job.Generate(ctx)
		if err != nil {
			logger.Warn("genval: generation failed", err,
				"job", job.Name(), "attempt", out.Attempts)
			out.Reason = "generation_error"
			out.State = StateRetry
			continue
		}
		out.State = StateGenerated
		out.Payload = payload

		ok, reason := job.Validate(payload)
		out.Reason = reason
		if ok {
			out.State = StateValidatedPass
			return out
		}

		if hasSoft {
			if softOK, softReason := soft.SoftValidate(payload); softOK {
				out.State = StateValidatedSoftPass
				out.Reason = softReason
				return out
			}
		}

		logger.Debug("genval: validation failed",
			"job", job.Name(), "attempt", out.Attempts, "reason", reason)
		out.State = StateRetry
	}

	out.State = StateFlagged
	logger.Info("genval: budget exhausted, flagging",
		"job", job.Name(), "attempts", out.Attempts, "reason", out.Reason)
	return out
}

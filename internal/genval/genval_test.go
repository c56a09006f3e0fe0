package genval

import (
	"context"
	"errors"
	"testing"

	"cinecap/internal/core"
)

type fakeJob struct {
	missing   bool
	payloads  []string
	genErrs   []error
	calls     int
	validate  func(string) (bool, string)
	softCheck func(string) (bool, string)
}

func (j *fakeJob) Name() string        { return "fake/1" }
func (j *fakeJob) MissingInputs() bool { return j.missing }

func (j *fakeJob) Generate(ctx context.Context) (string, error) {
	i := j.calls
	j.calls++
	if i < len(j.genErrs) && j.genErrs[i] != nil {
		return "", j.genErrs[i]
	}
	if i < len(j.payloads) {
		return j.payloads[i], nil
	}
	return "payload", nil
}

func (j *fakeJob) Validate(payload string) (bool, string) {
	return j.validate(payload)
}

type softJob struct {
	fakeJob
}

func (j *softJob) SoftValidate(payload string) (bool, string) {
	return j.softCheck(payload)
}

func TestRunSkipsWhenInputsMissing(t *testing.T) {
	job := &fakeJob{missing: true, validate: func(string) (bool, string) { return true, "pass" }}

	out := Runner{MaxRetries: 2}.Run(context.Background(), job)

	if out.State != StateSkipped || out.Reason != "missing_inputs" {
		t.Errorf("got state %q reason %q, want skipped/missing_inputs", out.State, out.Reason)
	}
	if job.calls != 0 {
		t.Errorf("generator called %d times on skip, want 0", job.calls)
	}
}

func TestRunPassesFirstAttempt(t *testing.T) {
	job := &fakeJob{
		payloads: []string{"good"},
		validate: func(p string) (bool, string) { return p == "good", "pass" },
	}

	out := Runner{MaxRetries: 2}.Run(context.Background(), job)

	if out.State != StateValidatedPass || out.Payload != "good" || out.Attempts != 1 {
		t.Errorf("got %+v, want pass with 1 attempt", out)
	}
}

func TestRunRetriesThenPasses(t *testing.T) {
	job := &fakeJob{
		payloads: []string{"bad", "good"},
		validate: func(p string) (bool, string) {
			if p == "good" {
				return true, "pass"
			}
			return false, "invalid_length"
		},
	}

	out := Runner{MaxRetries: 2}.Run(context.Background(), job)

	if out.State != StateValidatedPass || out.Attempts != 2 {
		t.Errorf("got %+v, want pass after 2 attempts", out)
	}
}

func TestRunFlagsAtBudgetAndRetainsPayload(t *testing.T) {
	job := &fakeJob{
		payloads: []string{"bad1", "bad2"},
		validate: func(string) (bool, string) { return false, "invalid_length" },
	}

	out := Runner{MaxRetries: 1}.Run(context.Background(), job)

	if out.State != StateFlagged {
		t.Errorf("state = %q, want flagged", out.State)
	}
	if out.Payload != "bad2" || out.Reason != "invalid_length" {
		t.Errorf("flagged outcome must retain last payload and reason, got %+v", out)
	}
	if job.calls != 2 {
		t.Errorf("generator called %d times, budget allows exactly 2", job.calls)
	}
}

func TestRunNeverExceedsCallBudget(t *testing.T) {
	job := &fakeJob{
		validate: func(string) (bool, string) { return false, "nope" },
	}

	Runner{MaxRetries: 3}.Run(context.Background(), job)

	if job.calls != 4 {
		t.Errorf("generator called %d times, want 1 + 3 retries = 4", job.calls)
	}
}

func TestRunGenerationErrorConsumesAttempt(t *testing.T) {
	job := &fakeJob{
		genErrs:  []error{errors.New("api down"), nil},
		payloads: []string{"", "good"},
		validate: func(p string) (bool, string) { return p == "good", "pass" },
	}

	out := Runner{MaxRetries: 1}.Run(context.Background(), job)

	if out.State != StateValidatedPass || out.Attempts != 2 {
		t.Errorf("got %+v, want pass on second attempt after generation error", out)
	}
}

func TestRunGenerationErrorsExhaustBudget(t *testing.T) {
	job := &fakeJob{
		genErrs:  []error{errors.New("down"), errors.New("down")},
		validate: func(string) (bool, string) { return true, "pass" },
	}

	out := Runner{MaxRetries: 1}.Run(context.Background(), job)

	if out.State != StateFlagged || out.Reason != "generation_error" {
		t.Errorf("got %+v, want flagged/generation_error", out)
	}
}

func TestRunSoftPass(t *testing.T) {
	job := &softJob{}
	job.payloads = []string{"meh"}
	job.validate = func(string) (bool, string) { return false, "too_short" }
	job.softCheck = func(string) (bool, string) { return true, "soft_pass" }

	out := Runner{MaxRetries: 2}.Run(context.Background(), job)

	if out.State != StateValidatedSoftPass || out.Reason != "soft_pass" {
		t.Errorf("got %+v, want soft pass", out)
	}
	if job.calls != 1 {
		t.Errorf("soft pass is terminal; generator called %d times, want 1", job.calls)
	}
}

func TestRunSoftRejectKeepsRetrying(t *testing.T) {
	job := &softJob{}
	job.validate = func(string) (bool, string) { return false, "too_short" }
	job.softCheck = func(string) (bool, string) { return false, "too_abstract" }

	out := Runner{MaxRetries: 1}.Run(context.Background(), job)

	if out.State != StateFlagged || job.calls != 2 {
		t.Errorf("got state %q with %d calls, want flagged after 2", out.State, job.calls)
	}
}

func TestRunCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	job := &fakeJob{validate: func(string) (bool, string) { return true, "pass" }}
	out := Runner{MaxRetries: 2}.Run(ctx, job)

	if out.State != StateFlagged || out.Reason != "context_cancelled" {
		t.Errorf("got %+v, want flagged/context_cancelled", out)
	}
	if job.calls != 0 {
		t.Errorf("generator called %d times after cancel, want 0", job.calls)
	}
}

func TestOutcomeVerdict(t *testing.T) {
	cases := []struct {
		state State
		want  core.VerdictStatus
	}{
		{StateValidatedPass, core.StatusPass},
		{StateValidatedSoftPass, core.StatusSoftPass},
		{StateSkipped, core.StatusSkipped},
		{StateFlagged, core.StatusFlagged},
	}
	for _, tc := range cases {
		v := Outcome{State: tc.state, Reason: "r"}.Verdict()
		if v.Status != tc.want {
			t.Errorf("Verdict(%q).Status = %q, want %q", tc.state, v.Status, tc.want)
		}
	}
}

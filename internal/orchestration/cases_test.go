package orchestration

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	apperrors "github.com/agbru/refalgo/internal/errors"
	"github.com/agbru/refalgo/internal/metrics"
	"github.com/agbru/refalgo/internal/workload"
)

func smallInputs() workload.Inputs {
	return workload.Inputs{
		RangeSize:  2_000,
		FibN:       20,
		DedupPairs: 300,
		Workers:    4,
		Increments: 2_000,
	}
}

func TestDefaultCasesReferencesHold(t *testing.T) {
	cases := DefaultCases(smallInputs())
	if len(cases) != 7 {
		t.Fatalf("got %d cases, want 7", len(cases))
	}

	results := ExecuteCases(context.Background(), cases, NullProgressReporter{}, io.Discard)
	byName := make(map[string]CaseResult, len(results))
	for _, r := range results {
		if r.Reference.Err != nil {
			t.Errorf("%s reference failed: %v", r.Name, r.Reference.Err)
		}
		byName[r.Name] = r
	}

	// Defects every run must expose.
	var pe apperrors.PanicError
	if !errors.As(byName[CaseSumEven].Candidate.Err, &pe) {
		t.Errorf("naive sum_even should panic, got %+v", byName[CaseSumEven].Candidate)
	}
	for _, name := range []string{CaseAveragePositive, CaseNormalize, CaseCountNonZero} {
		if got := byName[name].Outcome(); got != metrics.OutcomeDiverged {
			t.Errorf("%s outcome = %q, want diverged", name, got)
		}
	}
	// Same values, different cost.
	for _, name := range []string{CaseDedup, CaseFib} {
		if got := byName[name].Outcome(); got != metrics.OutcomeMatch {
			t.Errorf("%s outcome = %q, want match (diff %s)", name, got, byName[name].Diff)
		}
	}

	var opErr apperrors.OperationError
	leak := byName[CaseCountNonZero].Candidate.Err
	if !errors.As(leak, &opErr) || !strings.Contains(leak.Error(), "retained 2000 bytes") {
		t.Errorf("naive count_nonzero should report its retained copy, got %v", leak)
	}

	var out bytes.Buffer
	if code := AnalyzeDifferentialResults(results, &MockResultPresenter{}, false, &out); code != apperrors.ExitSuccess {
		t.Errorf("exit code = %d, want success; output:\n%s", code, out.String())
	}
}

func TestDefaultCasesVerifyRejectsWrongValues(t *testing.T) {
	t.Parallel()

	wrong := map[string]any{
		CaseDedup:           []uint64{1},
		CaseFib:             uint64(1),
		CaseSumEven:         int64(-1),
		CaseAveragePositive: 0.0,
		CaseNormalize:       "has space",
		CaseCountNonZero:    -1,
		CaseCampaign:        uint64(1),
	}
	for _, c := range DefaultCases(smallInputs()) {
		if err := c.Verify(wrong[c.Name]); err == nil {
			t.Errorf("%s: Verify accepted %v", c.Name, wrong[c.Name])
		}
	}
}

func TestDefaultCasesEmptyInputs(t *testing.T) {
	results := ExecuteCases(context.Background(), DefaultCases(workload.Inputs{Text: " "}), NullProgressReporter{}, io.Discard)
	for _, r := range results {
		if r.Reference.Err != nil {
			t.Errorf("%s reference failed on empty input: %v", r.Name, r.Reference.Err)
		}
	}
}

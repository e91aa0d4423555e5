package orchestration

import (
	"context"
	"fmt"
	"math"
	"strings"
	"unicode"

	"github.com/agbru/refalgo/internal/baseline"
	"github.com/agbru/refalgo/internal/counter"
	"github.com/agbru/refalgo/internal/dedup"
	apperrors "github.com/agbru/refalgo/internal/errors"
	"github.com/agbru/refalgo/internal/fibonacci"
	"github.com/agbru/refalgo/internal/liveness"
	"github.com/agbru/refalgo/internal/reduce"
	"github.com/agbru/refalgo/internal/textnorm"
	"github.com/agbru/refalgo/internal/workload"
)

// Case names.
const (
	CaseDedup           = "dedup"
	CaseFib             = "fib"
	CaseSumEven         = "sum_even"
	CaseAveragePositive = "average_positive"
	CaseNormalize       = "normalize"
	CaseCountNonZero    = "count_nonzero"
	CaseCampaign        = "run_campaign"
)

func pure[T any](f func() T) Func {
	return func(context.Context) (any, error) { return f(), nil }
}

// DefaultCases builds the reference/naive pair for each of the seven
// operations over in. Inputs are built once and shared read-only by both
// sides.
func DefaultCases(in workload.Inputs) []Case {
	pairs := workload.Pairs(in.DedupPairs)
	rng := workload.Range(in.RangeSize)
	centered := workload.Centered(in.RangeSize)
	buf := workload.Sparse(in.RangeSize)
	text := in.TextOrDefault()

	return []Case{
		{
			Name:      CaseDedup,
			Reference: pure(func() []uint64 { return dedup.Dedup(pairs) }),
			Candidate: pure(func() []uint64 { return baseline.Dedup(pairs) }),
			Verify: func(v any) error {
				if got := len(v.([]uint64)); got != max(in.DedupPairs, 0) {
					return fmt.Errorf("got %d distinct values, want %d", got, in.DedupPairs)
				}
				return nil
			},
		},
		{
			Name:      CaseFib,
			Reference: pure(func() uint64 { return fibonacci.Fib(in.FibN) }),
			Candidate: pure(func() uint64 { return baseline.Fib(in.FibN) }),
			Verify: func(v any) error {
				if want := fibonacci.OracleUint64(in.FibN); v.(uint64) != want {
					return fmt.Errorf("F(%d) = %d, want %d", in.FibN, v, want)
				}
				return nil
			},
		},
		{
			Name:      CaseSumEven,
			Reference: pure(func() int64 { return reduce.SumEven(rng) }),
			Candidate: pure(func() int64 { return baseline.SumEven(rng) }),
			Verify: func(v any) error {
				if want := workload.RangeEvenSum(in.RangeSize); v.(int64) != want {
					return fmt.Errorf("got %d, want %d", v, want)
				}
				return nil
			},
		},
		{
			Name:      CaseAveragePositive,
			Reference: pure(func() float64 { return reduce.AveragePositive(centered) }),
			Candidate: pure(func() float64 { return baseline.AveragePositive(centered) }),
			Verify: func(v any) error {
				got, want := v.(float64), workload.CenteredPositiveMean(in.RangeSize)
				if math.IsNaN(got) || math.Abs(got-want) > 1e-9*math.Max(1, want) {
					return fmt.Errorf("got %v, want %v", got, want)
				}
				return nil
			},
		},
		{
			Name:      CaseNormalize,
			Reference: pure(func() string { return textnorm.Normalize(text) }),
			Candidate: pure(func() string { return baseline.Normalize(text) }),
			Verify: func(v any) error {
				s := v.(string)
				if strings.IndexFunc(s, unicode.IsSpace) >= 0 {
					return fmt.Errorf("%q still contains whitespace", s)
				}
				if again := textnorm.Normalize(s); again != s {
					return fmt.Errorf("not idempotent: %q then %q", s, again)
				}
				return nil
			},
		},
		{
			Name:      CaseCountNonZero,
			Reference: pure(func() int { return liveness.CountNonZero(buf) }),
			Candidate: func(context.Context) (any, error) {
				before := baseline.Retained()
				n := baseline.CountNonZero(buf)
				if leaked := baseline.Retained() - before; leaked > 0 {
					return n, apperrors.OperationError{
						Operation: CaseCountNonZero + " (" + SideCandidate + ")",
						Cause:     fmt.Errorf("retained %d bytes after returning", leaked),
					}
				}
				return n, nil
			},
			Verify: func(v any) error {
				if want := workload.SparseNonZero(in.RangeSize); v.(int) != want {
					return fmt.Errorf("got %d, want %d", v, want)
				}
				return nil
			},
		},
		{
			Name:      CaseCampaign,
			Reference: pure(func() uint64 { return counter.RunCampaign(in.Workers, in.Increments) }),
			Candidate: pure(func() uint64 { return baseline.RunCampaign(in.Workers, in.Increments) }),
			Verify: func(v any) error {
				if want := counter.Expected(in.Workers, in.Increments); v.(uint64) != want {
					return fmt.Errorf("counter joined at %d, want %d", v, want)
				}
				return nil
			},
		},
	}
}

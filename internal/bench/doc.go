// Package bench times the reference operations over fixed synthetic inputs.
//
// A suite is run for a number of rounds; every operation is timed once per
// round and the samples are folded into per-operation statistics. The
// default suite mirrors the classic reference benchmark: sum_even over a
// 50,000-element range, fib(32), and dedup over 5,000 duplicated values.
package bench

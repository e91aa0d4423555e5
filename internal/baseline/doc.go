// Package baseline holds deliberately flawed counterparts of the reference
// operations. They exist only as fixtures for differential runs and
// benchmarks and must never be called from production paths.
//
// Each function reproduces one defect: quadratic deduplication with a sort
// after every insertion, exponential Fibonacci, an off-by-one read past the
// end of a slice, a wrong averaging denominator, ASCII-only normalization, a
// buffer copy that is retained forever, and a non-atomic shared increment.
package baseline

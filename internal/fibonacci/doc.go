// Package fibonacci evaluates Fibonacci numbers over the fixed-width uint64
// domain.
//
// Fib is the reference evaluator: iterative, O(n) time and O(1) space, with
// wrapping arithmetic modulo 2^64 once the sequence leaves the representable
// range (n > MaxExactN). FastDoublingMod computes F(n) mod m over math/big and
// serves as the oracle for the wrapped values.
package fibonacci

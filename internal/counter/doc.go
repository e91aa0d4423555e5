// Package counter implements a shared 64-bit counter incremented by a bounded
// fan-out of concurrent workers.
//
// A Campaign owns the counter and drives its lifecycle:
//
//	reset → fan-out → join → read
//
// Every increment is an atomic read-modify-write. Go's sync/atomic operations
// are sequentially consistent, so all increments and the final read form a
// single total order and Run always returns workers × increments. The counter
// is reachable only through Run and Peek.
package counter

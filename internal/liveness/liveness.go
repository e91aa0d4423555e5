// Package liveness counts live (non-zero) bytes in caller-owned buffers.
//
// The buffer is borrowed for the duration of a call only: it is never copied,
// retained, or written to.
package liveness

import "bytes"

var zero = []byte{0}

// CountNonZero returns the number of bytes in buf whose value is not zero.
func CountNonZero(buf []byte) int {
	return len(buf) - bytes.Count(buf, zero)
}

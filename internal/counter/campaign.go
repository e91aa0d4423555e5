package counter

import (
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// Campaign owns one counter. The zero value is ready to use.
//
// Campaigns on the same value are serialized; Peek never blocks.
type Campaign struct {
	mu    sync.Mutex
	value atomic.Uint64
}

// Run resets the counter to zero, starts workers goroutines that each
// increment it increments times, waits for all of them, and returns the final
// value. Non-positive arguments start no workers and return 0.
//
// A campaign cannot be canceled; Run returns only after every worker exits.
func (c *Campaign) Run(workers, increments int) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.value.Store(0)
	if workers <= 0 || increments <= 0 {
		return c.value.Load()
	}

	var g errgroup.Group
	for range workers {
		g.Go(func() error {
			for range increments {
				c.value.Add(1)
			}
			return nil
		})
	}
	_ = g.Wait() // workers never fail; Wait is the join barrier

	return c.value.Load()
}

// Peek returns the current counter value without waiting for an in-flight
// campaign. The value is some prefix of the increment order: it never
// exceeds the campaign's final value.
func (c *Campaign) Peek() uint64 {
	return c.value.Load()
}

// Expected returns the value a campaign with the given shape must produce.
func Expected(workers, increments int) uint64 {
	if workers <= 0 || increments <= 0 {
		return 0
	}
	return uint64(workers) * uint64(increments)
}

var defaultCampaign Campaign

// RunCampaign runs a campaign on the process-wide default counter.
func RunCampaign(workers, increments int) uint64 {
	return defaultCampaign.Run(workers, increments)
}

// Peek reads the process-wide default counter.
func Peek() uint64 {
	return defaultCampaign.Peek()
}

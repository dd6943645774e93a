// Package driver feeds elapsed time to an effect and owns the state and
// surface one preview draws with.
package driver

import "time"

// Clock measures elapsed time from the first reading after it was attached
// or reset. Pausing a preview holds its frame but not the clock.
type Clock struct {
	start time.Time
}

// Elapsed returns seconds since attachment. The first call attaches.
func (c *Clock) Elapsed(now time.Time) float64 {
	if c.start.IsZero() {
		c.start = now
	}
	d := now.Sub(c.start).Seconds()
	if d < 0 {
		return 0
	}
	return d
}

// Reset detaches the clock so the next reading is zero.
func (c *Clock) Reset() {
	c.start = time.Time{}
}

package session

// Countdown is a whole-second timer advanced by the caller.
type Countdown struct {
	total     int
	remaining int
}

// NewCountdown returns a countdown starting at seconds.
func NewCountdown(seconds int) Countdown {
	return Countdown{total: seconds, remaining: seconds}
}

// Tick removes one second and reports whether the countdown reached zero.
func (c *Countdown) Tick() bool {
	if c.remaining > 0 {
		c.remaining--
	}
	return c.remaining == 0
}

// Remaining returns the seconds left.
func (c Countdown) Remaining() int {
	return c.remaining
}

// Total returns the starting value.
func (c Countdown) Total() int {
	return c.total
}

// Elapsed returns the seconds ticked so far.
func (c Countdown) Elapsed() int {
	return c.total - c.remaining
}

// Reset restores the starting value.
func (c *Countdown) Reset() {
	c.remaining = c.total
}

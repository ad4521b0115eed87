// Package counter implements the running positional-parameter counter shared
// by the fragments of one clause-generation call.
package counter

// Counter hands out parameter positions. It is not safe for concurrent use;
// every generation call owns its own Counter.
type Counter struct {
	current int
}

// New returns a counter whose first position is start.
func New(start int) *Counter {
	return &Counter{current: start}
}

// Next returns the current position and, when consumes is true, advances
// the counter by one afterward.
func (c *Counter) Next(consumes bool) int {
	n := c.current
	if consumes {
		c.current++
	}
	return n
}

// Current returns the position the next consuming fragment would receive.
func (c *Counter) Current() int {
	return c.current
}

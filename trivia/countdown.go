package trivia

// CountdownSeconds is how long the player has to answer.
const CountdownSeconds = 30

// Countdown is a whole-second timer driven by explicit ticks.
// The zero value is stopped.
type Countdown struct {
	remaining int
	running   bool
}

// Start arms the countdown at CountdownSeconds.
func (c *Countdown) Start() {
	c.remaining = CountdownSeconds
	c.running = true
}

// Stop disarms the countdown; later ticks are ignored.
func (c *Countdown) Stop() {
	c.running = false
}

// Running reports whether ticks are being counted.
func (c *Countdown) Running() bool {
	return c.running
}

// Remaining returns the seconds left.
func (c *Countdown) Remaining() int {
	return c.remaining
}

// Tick takes one second off a running countdown. It reports expired once the
// count reaches zero, at which point the countdown stops itself. Ticks on a
// stopped countdown change nothing and report ok false.
func (c *Countdown) Tick() (remaining int, expired, ok bool) {
	if !c.running {
		return c.remaining, false, false
	}
	c.remaining--
	if c.remaining <= 0 {
		c.remaining = 0
		c.running = false
		return 0, true, true
	}
	return c.remaining, false, true
}

// Urgency classifies how close a countdown is to running out.
type Urgency int

const (
	Calm Urgency = iota
	Warning
	Critical
)

// UrgencyOf maps remaining seconds to the band hosts use to colour the timer.
func UrgencyOf(remaining int) Urgency {
	switch {
	case remaining <= 10:
		return Critical
	case remaining <= 20:
		return Warning
	default:
		return Calm
	}
}

package sscp

import "time"

// Clock abstracts a monotonic time source for the guard timer. The stdlib
// wall clock satisfies it; tests inject a fake so guard-time behaviour is
// deterministic without sleeping.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// scanGuardTime is the minimum interval enforced between two ScanARaw or
// ScanGlobal polls: the reader answers them slowly, and issuing them
// back-to-back wastes the bus for no benefit.
const scanGuardTime = 100 * time.Millisecond

// guardState tracks one running guard period.
type guardState struct {
	running bool
	start   time.Time
	value   time.Duration
}

// guardTime waits out whatever guard period is currently running, then
// starts a new one of length d. Call it immediately before an operation
// that must not be issued more often than every d.
//
// This is computed with time.Time.Sub, which measures elapsed wall-clock
// duration directly instead of composing it from separate seconds and
// nanoseconds fields by hand; that sidesteps a scaling mistake the
// reader's own host-side guard timer makes when it rebuilds the elapsed
// duration from a seconds delta and a nanoseconds delta itself.
func (c *Context) guardTime(d time.Duration) {
	if c.guard.running {
		c.waitGuardTime()
	}
	c.guard.start = c.clock.Now()
	c.guard.value = d
	c.guard.running = true
}

func (c *Context) waitGuardTime() {
	if !c.guard.running {
		return
	}
	c.guard.running = false

	if remaining := c.guard.value - c.clock.Now().Sub(c.guard.start); remaining > 0 {
		time.Sleep(remaining)
	}
}

// statsState accumulates the counters GetStatistics reports. It never talks
// to the reader: everything here is maintained locally as other Context
// methods run.
type statsState struct {
	whenOpen      time.Time
	whenSession   time.Time
	sessionCount  uint32
	errorCount    uint32
	bytesSent     uint32
	bytesReceived uint32
}

// Statistics is a point-in-time snapshot of a Context's communication and
// session counters.
type Statistics struct {
	TotalTime      time.Duration
	TotalErrors    uint32
	BytesSent      uint32
	BytesReceived  uint32
	SessionCount   uint32
	SessionTime    time.Duration
	SessionCounter uint32
}

// GetStatistics reports the Context's accumulated communication and session
// counters. It performs no I/O.
func (c *Context) GetStatistics() Statistics {
	stats := Statistics{
		BytesSent:      c.stats.bytesSent,
		BytesReceived:  c.stats.bytesReceived,
		TotalErrors:    c.stats.errorCount,
		SessionCount:   c.stats.sessionCount,
		SessionCounter: c.counter,
	}
	if !c.stats.whenOpen.IsZero() {
		stats.TotalTime = c.clock.Now().Sub(c.stats.whenOpen)
	}
	if !c.stats.whenSession.IsZero() {
		stats.SessionTime = c.clock.Now().Sub(c.stats.whenSession)
	}
	return stats
}

package sscp

import (
	"testing"
	"time"
)

// fakeClock is a Clock whose Now() advances only when the test tells it to,
// so guard-time waits are deterministic and instant.
type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time { return f.now }

func (f *fakeClock) advance(d time.Duration) { f.now = f.now.Add(d) }

func TestGuardTimeDoesNotBlockOnFirstCall(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	c := New(&fakeTransport{}, WithClock(clock))

	start := time.Now()
	c.waitGuardTime()
	c.guardTime(scanGuardTime)
	if time.Since(start) > 10*time.Millisecond {
		t.Fatalf("waitGuardTime blocked on a guard period that was never armed by a prior call")
	}
}

func TestGuardTimeSkipsWaitOnceGuardPeriodElapsed(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	c := New(&fakeTransport{}, WithClock(clock))

	c.guardTime(scanGuardTime)
	// Advance the clock past the guard period before the next call arrives,
	// so waitGuardTime has nothing left to sleep for.
	clock.advance(scanGuardTime + time.Millisecond)

	start := time.Now()
	c.guardTime(scanGuardTime)
	if elapsed := time.Since(start); elapsed > 10*time.Millisecond {
		t.Fatalf("guardTime slept for %v even though the fake clock had already elapsed the guard period", elapsed)
	}
}

func TestGetStatisticsReflectsCounters(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1000, 0)}
	c := New(&fakeTransport{}, WithClock(clock))
	c.stats.bytesSent = 42
	c.stats.bytesReceived = 84
	c.stats.errorCount = 3
	c.stats.sessionCount = 1
	c.counter = 7

	clock.advance(5 * time.Second)
	stats := c.GetStatistics()

	if stats.BytesSent != 42 || stats.BytesReceived != 84 {
		t.Fatalf("Statistics byte counters = %+v, want 42/84", stats)
	}
	if stats.TotalErrors != 3 || stats.SessionCount != 1 {
		t.Fatalf("Statistics session counters = %+v", stats)
	}
	if stats.SessionCounter != 7 {
		t.Fatalf("SessionCounter = %d, want 7", stats.SessionCounter)
	}
	if stats.TotalTime != 5*time.Second {
		t.Fatalf("TotalTime = %v, want 5s", stats.TotalTime)
	}
}

func TestGetStatisticsZeroBeforeSession(t *testing.T) {
	c := New(&fakeTransport{}, WithClock(&fakeClock{now: time.Unix(0, 0)}))
	if stats := c.GetStatistics(); stats.SessionTime != 0 {
		t.Fatalf("SessionTime = %v before any session was opened, want 0", stats.SessionTime)
	}
}

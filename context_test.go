package sscp

import (
	"testing"
	"time"
)

// fakeBaudrateTransport embeds fakeTransport and records SetBaudrate calls,
// to exercise the optional BaudrateSetter capability.
type fakeBaudrateTransport struct {
	fakeTransport
	lastBaudrate int
	setErr       error
}

func (f *fakeBaudrateTransport) SetBaudrate(baudrate int) error {
	f.lastBaudrate = baudrate
	return f.setErr
}

func TestNewAppliesOptions(t *testing.T) {
	clock := &fakeClock{now: time.Unix(42, 0)}
	c := New(&fakeTransport{}, WithClock(clock), WithTimeouts(7*time.Second, 3*time.Second))

	if c.firstByteTimeout != 7*time.Second || c.interByteTimeout != 3*time.Second {
		t.Fatalf("timeouts = %v/%v, want 7s/3s", c.firstByteTimeout, c.interByteTimeout)
	}
	if c.stats.whenOpen != clock.now {
		t.Fatalf("whenOpen was not stamped from the injected clock")
	}
}

func TestSelectAddressChangesFrameAddress(t *testing.T) {
	ft := &fakeTransport{}
	ft.queueResponseFrame(0x05, protocolSecure, nil)
	c := New(ft, WithTimeouts(0, 0))
	c.SelectAddress(0x05)

	if _, err := c.exchangeRaw(c.address, protocolSecure, nil); err != nil {
		t.Fatalf("exchangeRaw: %v", err)
	}
	wantHeader := []byte{frameSOF, 0x00, 0x00, 0x05, protocolSecure}
	if string(ft.sent[0]) != string(wantHeader) {
		t.Fatalf("sent header = % X, want % X", ft.sent[0], wantHeader)
	}
}

func TestSelectBaudrateRejectsUnknownRate(t *testing.T) {
	c := New(&fakeTransport{})
	if err := c.SelectBaudrate(1234); !errorIsLocalKind(err, ErrInvalidParameter) {
		t.Fatalf("error = %v, want ErrInvalidParameter", err)
	}
}

func TestSelectBaudrateReconfiguresCapableTransport(t *testing.T) {
	ft := &fakeBaudrateTransport{}
	c := New(ft)
	if err := c.SelectBaudrate(Baud57600); err != nil {
		t.Fatalf("SelectBaudrate: %v", err)
	}
	if ft.lastBaudrate != Baud57600 {
		t.Fatalf("transport SetBaudrate called with %d, want %d", ft.lastBaudrate, Baud57600)
	}
}

func TestSelectBaudrateIgnoresTransportsWithoutTheCapability(t *testing.T) {
	c := New(&fakeTransport{})
	if err := c.SelectBaudrate(Baud115200); err != nil {
		t.Fatalf("SelectBaudrate on a plain transport: %v", err)
	}
}

func TestCloseReleasesTransport(t *testing.T) {
	ft := &fakeTransport{}
	c := New(ft)
	if err := c.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !ft.closed {
		t.Fatalf("Close did not release the underlying transport")
	}
}

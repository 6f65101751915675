package sscp

import (
	"errors"
	"time"
)

// ErrTransportTimeout is the sentinel a Transport returns from Recv when no
// byte arrived within the configured deadline. The frame codec turns it into
// ErrCommRecvMute or ErrCommRecvStopped depending on how much of the frame
// had already been read when the timeout hit.
var ErrTransportTimeout = errors.New("sscp: transport timeout")

// Transport is the capability interface a Context is built around. It owns
// the physical wire (RS-232 point-to-point or RS-485 multidrop); this
// package only frames, signs and encrypts the bytes that cross it.
//
// Production code wires in internal/serialport, which backs Transport with
// go.bug.st/serial. Tests wire in a fake that replays fixed byte sequences.
type Transport interface {
	// SetTimeouts configures the deadline applied to the first byte of a
	// response and to every byte after it, mirroring the reader's own
	// first-byte / inter-byte timeout model.
	SetTimeouts(firstByte, interByte time.Duration) error

	// Send writes all of buf to the wire, blocking until done or an error
	// occurs.
	Send(buf []byte) error

	// Recv reads exactly len(buf) bytes into buf, blocking until done. It
	// returns ErrTransportTimeout if the configured deadline elapses before
	// all bytes arrive.
	Recv(buf []byte) error

	// Close releases the underlying link.
	Close() error
}

// BaudrateSetter is an optional Transport capability. A Transport that
// implements it lets SelectBaudrate reconfigure the physical link in step
// with a reader that just had its own baudrate changed via SetBaudrate.
// Transports that can't change speed at runtime simply don't implement it.
type BaudrateSetter interface {
	SetBaudrate(baudrate int) error
}

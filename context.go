package sscp

import (
	"fmt"
	"time"
)

// Context is an SSCP session bound to one Transport. Authenticate must
// succeed before any command other than SetRS485Address/SetBaudrate's
// unauthenticated siblings is meaningful, since every other command runs
// over the secure exchange engine. A Context is not safe for concurrent
// use: see doc.go.
type Context struct {
	transport Transport
	address   byte
	counter   uint32
	keys      *sessionKeys

	firstByteTimeout time.Duration
	interByteTimeout time.Duration

	guard guardState
	stats statsState
	clock Clock

	selfTest *selfTestVectors
}

// Option configures a Context at construction time.
type Option func(*Context)

// WithClock overrides the Clock used for guard timing and statistics
// timestamps. Production code never needs this; tests use it to make guard
// waits deterministic.
func WithClock(clock Clock) Option {
	return func(c *Context) { c.clock = clock }
}

// WithTimeouts overrides the default first-byte/inter-byte timeouts applied
// to every frame exchange.
func WithTimeouts(firstByte, interByte time.Duration) Option {
	return func(c *Context) {
		c.firstByteTimeout = firstByte
		c.interByteTimeout = interByte
	}
}

// withSelfTest installs the fixed self-test vector set in place of real
// randomness and real transport round trips in the authentication and
// secure exchange engines. It is unexported: self-test mode has no
// exported constructor path, so it cannot be reached from outside this
// package's own tests and cannot leak into a production build by way of a
// stray flag or environment variable.
func withSelfTest(vectors *selfTestVectors) Option {
	return func(c *Context) { c.selfTest = vectors }
}

// New builds a Context around an already-open Transport. The bus address
// defaults to 0, the convention for a point-to-point RS-232 link; call
// SelectAddress before talking to a reader on an RS-485 bus.
func New(transport Transport, opts ...Option) *Context {
	c := &Context{
		transport:        transport,
		firstByteTimeout: defaultFirstByteTimeout,
		interByteTimeout: defaultInterByteTimeout,
		clock:            systemClock{},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.stats.whenOpen = c.clock.Now()
	return c
}

// Close releases the underlying Transport. The Context must not be used
// afterward.
func (c *Context) Close() error {
	return c.transport.Close()
}

// SelectAddress changes which RS-485 bus address this Context addresses
// its frames to. It does not reprogram the reader; use SetRS485Address for
// that.
func (c *Context) SelectAddress(address byte) {
	c.address = address
}

// SelectBaudrate updates the Transport's own link speed, if it supports
// runtime reconfiguration (see BaudrateSetter). Call it after SetBaudrate
// changes the reader's speed, so host and reader stay in step.
func (c *Context) SelectBaudrate(baudrate int) error {
	if _, ok := baudrateSelectors[baudrate]; !ok {
		return newLocalError(ErrInvalidParameter, fmt.Errorf("unsupported baudrate %d", baudrate))
	}
	if setter, ok := c.transport.(BaudrateSetter); ok {
		if err := setter.SetBaudrate(baudrate); err != nil {
			return newLocalError(ErrCommControlFailed, err)
		}
	}
	return nil
}

// Package serialport backs sscp.Transport with a real serial line, using
// go.bug.st/serial for the byte-level driver the library itself deliberately
// does not implement.
package serialport

import (
	"fmt"
	"time"

	"go.bug.st/serial"

	"github.com/springcard/sscp-host"
)

// Port is a sscp.Transport backed by an open serial line. It also
// implements sscp.BaudrateSetter, so Context.SelectBaudrate can reconfigure
// it in step with a reader whose own baudrate just changed.
type Port struct {
	port serial.Port
	name string

	firstByteTimeout time.Duration
	interByteTimeout time.Duration
}

// Open opens name (e.g. "/dev/ttyUSB0", "COM3") at baudrate with 8 data
// bits, no parity and one stop bit, the framing SSCP readers expect.
func Open(name string, baudrate int) (*Port, error) {
	mode := &serial.Mode{
		BaudRate: baudrate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	raw, err := serial.Open(name, mode)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	return &Port{port: raw, name: name}, nil
}

// SetTimeouts records the first-byte and inter-byte deadlines; they are
// applied on the next Recv call.
func (p *Port) SetTimeouts(firstByte, interByte time.Duration) error {
	p.firstByteTimeout = firstByte
	p.interByteTimeout = interByte
	return nil
}

// Send writes buf to the line in full.
func (p *Port) Send(buf []byte) error {
	if len(buf) == 0 {
		return nil
	}
	if _, err := p.port.Write(buf); err != nil {
		return fmt.Errorf("serial write to %s: %w", p.name, err)
	}
	return nil
}

// Recv fills buf, applying the first-byte timeout to the first read and the
// inter-byte timeout to every read after it. go.bug.st/serial reports a
// read timeout as (0, nil) rather than an error, so that case is translated
// into sscp.ErrTransportTimeout here.
func (p *Port) Recv(buf []byte) error {
	if len(buf) == 0 {
		return nil
	}

	timeout := p.firstByteTimeout
	read := 0
	for read < len(buf) {
		if err := p.port.SetReadTimeout(timeout); err != nil {
			return fmt.Errorf("set read timeout on %s: %w", p.name, err)
		}
		n, err := p.port.Read(buf[read:])
		if err != nil {
			return fmt.Errorf("serial read from %s: %w", p.name, err)
		}
		if n == 0 {
			return sscp.ErrTransportTimeout
		}
		read += n
		timeout = p.interByteTimeout
	}
	return nil
}

// SetBaudrate reopens the line at a new speed. go.bug.st/serial has no
// in-place speed change, so this closes and reopens the underlying port.
func (p *Port) SetBaudrate(baudrate int) error {
	if err := p.port.Close(); err != nil {
		return fmt.Errorf("close %s before rebaud: %w", p.name, err)
	}
	mode := &serial.Mode{
		BaudRate: baudrate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	raw, err := serial.Open(p.name, mode)
	if err != nil {
		return fmt.Errorf("reopen %s at %d baud: %w", p.name, baudrate, err)
	}
	p.port = raw
	return nil
}

// Close releases the underlying line.
func (p *Port) Close() error {
	return p.port.Close()
}

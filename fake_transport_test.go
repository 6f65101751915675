package sscp

import (
	"fmt"
	"time"
)

// recvStep scripts one Recv call: either hand back exactly len(buf) bytes of
// data, or report a timeout.
type recvStep struct {
	data    []byte
	timeout bool
}

// fakeTransport is a scripted Transport used by this package's own tests: it
// records everything sent and replays a fixed sequence of Recv outcomes, one
// per call, so frame/secure/auth codepaths can be exercised without a real
// serial line.
type fakeTransport struct {
	sent  [][]byte
	steps []recvStep
	idx   int

	firstByteTimeout time.Duration
	interByteTimeout time.Duration
	closed           bool
}

func (f *fakeTransport) queueRecv(data []byte) {
	f.steps = append(f.steps, recvStep{data: data})
}

func (f *fakeTransport) queueTimeout() {
	f.steps = append(f.steps, recvStep{timeout: true})
}

func (f *fakeTransport) SetTimeouts(firstByte, interByte time.Duration) error {
	f.firstByteTimeout = firstByte
	f.interByteTimeout = interByte
	return nil
}

func (f *fakeTransport) Send(buf []byte) error {
	f.sent = append(f.sent, append([]byte(nil), buf...))
	return nil
}

func (f *fakeTransport) Recv(buf []byte) error {
	if f.idx >= len(f.steps) {
		return fmt.Errorf("fakeTransport: no more recv steps queued (call %d)", f.idx+1)
	}
	step := f.steps[f.idx]
	f.idx++
	if step.timeout {
		return ErrTransportTimeout
	}
	if len(step.data) != len(buf) {
		return fmt.Errorf("fakeTransport: step %d supplies %d bytes, Recv wanted %d", f.idx, len(step.data), len(buf))
	}
	copy(buf, step.data)
	return nil
}

func (f *fakeTransport) Close() error {
	f.closed = true
	return nil
}

// queueResponseFrame scripts a well-formed SSCP response frame across the
// three Recv calls exchangeRaw makes: header, payload (if any), CRC.
func (f *fakeTransport) queueResponseFrame(address, protocol byte, payload []byte) {
	header := []byte{frameSOF, byte(len(payload) >> 8), byte(len(payload)), address, protocol}
	crc := crc16CCITT(header[1:], payload)
	f.queueRecv(header)
	if len(payload) > 0 {
		f.queueRecv(payload)
	}
	f.queueRecv([]byte{byte(crc >> 8), byte(crc)})
}

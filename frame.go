package sscp

import (
	"errors"
	"time"
)

const (
	frameSOF = 0x02

	protocolAuthenticate = 0x20
	protocolSecure       = 0x21

	maxPayloadSize = 4096

	// Default timeouts mirror the reader's own SSCP_RESPONSE_FIRST_TIMEOUT /
	// SSCP_RESPONSE_NEXT_TIMEOUT: a generous wait for the reader to start
	// answering, a tight one for every byte once it has started.
	defaultFirstByteTimeout = 1000 * time.Millisecond
	defaultInterByteTimeout = 50 * time.Millisecond
)

// exchangeRaw sends one SOF/length/address/protocol/payload/CRC-16 frame and
// waits for the matching response frame. It does no interpretation of the
// payload: callers (auth.go, secure.go) own the meaning of command and
// response bytes.
func (c *Context) exchangeRaw(address, protocol byte, command []byte) ([]byte, error) {
	if len(command) > maxPayloadSize {
		return nil, newLocalError(ErrCommandTooLong, nil)
	}

	if err := c.transport.SetTimeouts(c.firstByteTimeout, c.interByteTimeout); err != nil {
		return nil, newLocalError(ErrCommControlFailed, err)
	}

	header := []byte{frameSOF, byte(len(command) >> 8), byte(len(command)), address, protocol}
	crcOut := crc16CCITT(header[1:], command)
	trailer := []byte{byte(crcOut >> 8), byte(crcOut)}

	if err := c.transport.Send(header); err != nil {
		return nil, newLocalError(ErrCommSendFailed, err)
	}
	if len(command) > 0 {
		if err := c.transport.Send(command); err != nil {
			return nil, newLocalError(ErrCommSendFailed, err)
		}
	}
	if err := c.transport.Send(trailer); err != nil {
		return nil, newLocalError(ErrCommSendFailed, err)
	}
	c.stats.bytesSent += uint32(len(header) + len(command) + len(trailer))

	respHeader := make([]byte, 5)
	if err := c.transport.Recv(respHeader); err != nil {
		if errors.Is(err, ErrTransportTimeout) {
			return nil, newLocalError(ErrCommRecvMute, err)
		}
		return nil, newLocalError(ErrCommRecvFailed, err)
	}
	if respHeader[0] != frameSOF {
		return nil, newLocalError(ErrWrongResponseCommand, nil)
	}

	length := int(respHeader[1])<<8 | int(respHeader[2])
	if length > maxPayloadSize {
		return nil, newLocalError(ErrResponseTooLong, nil)
	}

	if err := c.transport.SetTimeouts(c.interByteTimeout, c.interByteTimeout); err != nil {
		return nil, newLocalError(ErrCommControlFailed, err)
	}

	payload := make([]byte, length)
	if length > 0 {
		if err := c.transport.Recv(payload); err != nil {
			if errors.Is(err, ErrTransportTimeout) {
				// The header already arrived: the device started answering
				// and then fell silent mid-frame, not a plain no-response.
				return nil, newLocalError(ErrCommRecvStopped, err)
			}
			return nil, newLocalError(ErrCommRecvFailed, err)
		}
	}

	crcIn := make([]byte, 2)
	if err := c.transport.Recv(crcIn); err != nil {
		if errors.Is(err, ErrTransportTimeout) {
			return nil, newLocalError(ErrCommRecvStopped, err)
		}
		return nil, newLocalError(ErrCommRecvFailed, err)
	}
	c.stats.bytesReceived += uint32(len(respHeader) + length + len(crcIn))

	want := crc16CCITT(respHeader[1:], payload)
	if byte(want>>8) != crcIn[0] || byte(want) != crcIn[1] {
		return nil, newLocalError(ErrWrongResponseCRC, nil)
	}

	return payload, nil
}

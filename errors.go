package sscp

import (
	"errors"
	"fmt"
)

// LocalErrorKind enumerates host-detected faults: framing, crypto, I/O, and
// state errors the reader never sees. Values mirror the SSCP_ERR_* table
// from the reader's own host API.
type LocalErrorKind int

const (
	ErrInvalidContext LocalErrorKind = iota
	ErrInvalidParameter
	ErrNotYetImplemented
	ErrOutputBufferOverflow

	ErrCommandTooLong
	ErrResponseTooLong

	ErrInternalFailure
	ErrOutOfMemory

	ErrCommNotAvailable
	ErrCommNotOpen
	ErrCommControlFailed
	ErrCommSendFailed

	ErrCommRecvFailed
	ErrCommRecvStopped
	ErrCommRecvMute

	ErrWrongResponseLength
	ErrWrongResponseCRC
	ErrWrongResponseSignature
	ErrWrongResponseCounter
	ErrWrongResponseType
	ErrWrongResponseCommand
	ErrWrongResponseFormat

	ErrUnsupportedResponseStatus
	ErrUnsupportedResponseValue
	ErrUnsupportedResponseLength

	ErrNFCCardAbsent
	ErrNFCCardMuteOrRemoved
	ErrNFCCardCommError
)

var localErrorText = map[LocalErrorKind]string{
	ErrInvalidContext:            "invalid context",
	ErrInvalidParameter:          "invalid parameter",
	ErrNotYetImplemented:         "not yet implemented",
	ErrOutputBufferOverflow:      "output buffer too small",
	ErrCommandTooLong:            "command too long for the transport",
	ErrResponseTooLong:           "response too long for the transport",
	ErrInternalFailure:           "internal failure",
	ErrOutOfMemory:               "out of memory",
	ErrCommNotAvailable:          "failed to open the port",
	ErrCommNotOpen:               "port is not open",
	ErrCommControlFailed:         "failed to configure the port",
	ErrCommSendFailed:            "failed to send",
	ErrCommRecvFailed:            "unable to receive",
	ErrCommRecvStopped:           "device has stopped transmitting",
	ErrCommRecvMute:              "no response from device",
	ErrWrongResponseLength:       "wrong response length",
	ErrWrongResponseCRC:          "wrong CRC in response",
	ErrWrongResponseSignature:    "wrong HMAC in response",
	ErrWrongResponseCounter:      "response counter does not match command",
	ErrWrongResponseType:         "type in response footer does not match command",
	ErrWrongResponseCommand:      "command in response header does not match command",
	ErrWrongResponseFormat:       "length in response header does not match size of response",
	ErrUnsupportedResponseStatus: "unsupported response status byte",
	ErrUnsupportedResponseValue:  "unsupported value in response",
	ErrUnsupportedResponseLength: "response length is incorrect for this command",
	ErrNFCCardAbsent:             "no card present",
	ErrNFCCardMuteOrRemoved:      "card did not respond in time",
	ErrNFCCardCommError:          "RF communication error with card",
}

func (k LocalErrorKind) String() string {
	if s, ok := localErrorText[k]; ok {
		return s
	}
	return "unknown local error"
}

// LocalError is a host-detected fault: bad framing, a CRC or MAC mismatch, a
// counter replay, or an I/O failure. It never reaches the reader.
type LocalError struct {
	Kind  LocalErrorKind
	Cause error
}

func (e *LocalError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("sscp: %s: %v", e.Kind, e.Cause)
	}
	return fmt.Sprintf("sscp: %s", e.Kind)
}

func (e *LocalError) Unwrap() error { return e.Cause }

func newLocalError(kind LocalErrorKind, cause error) *LocalError {
	return &LocalError{Kind: kind, Cause: cause}
}

// ReaderStatusError wraps the raw, positive status byte a reader returned in
// the footer of a secure response. A non-zero status is an application-level
// rejection of an otherwise well-formed, well-authenticated command.
type ReaderStatusError struct {
	Command CommandCode
	Status  byte
}

func (e *ReaderStatusError) Error() string {
	return fmt.Sprintf("sscp: reader rejected %s with status 0x%02X", e.Command, e.Status)
}

// IsRetryable reports whether err is a transport-level fault the secure
// exchange engine retries on (RECV_MUTE, RECV_STOPPED). See secure.go.
func IsRetryable(err error) bool {
	var le *LocalError
	if !errors.As(err, &le) {
		return false
	}
	return le.Kind == ErrCommRecvMute || le.Kind == ErrCommRecvStopped
}

// IsReplayFault reports whether err indicates the reader echoed a counter
// the host has already consumed, the classic sign of a replayed or
// out-of-order response.
func IsReplayFault(err error) bool {
	var le *LocalError
	if !errors.As(err, &le) {
		return false
	}
	return le.Kind == ErrWrongResponseCounter
}

// IsAuthFault reports whether err indicates the response failed signature
// verification: the channel is no longer trustworthy and the session must
// be re-authenticated.
func IsAuthFault(err error) bool {
	var le *LocalError
	if !errors.As(err, &le) {
		return false
	}
	return le.Kind == ErrWrongResponseSignature
}

// IsReaderStatus reports whether err is a ReaderStatusError and, if so,
// returns the raw status byte.
func IsReaderStatus(err error) (byte, bool) {
	var rse *ReaderStatusError
	if errors.As(err, &rse) {
		return rse.Status, true
	}
	return 0, false
}

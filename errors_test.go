package sscp

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestLocalErrorFormatsWithAndWithoutCause(t *testing.T) {
	plain := newLocalError(ErrCommRecvMute, nil)
	if plain.Error() != "sscp: no response from device" {
		t.Fatalf("Error() = %q", plain.Error())
	}

	wrapped := newLocalError(ErrCommControlFailed, fmt.Errorf("permission denied"))
	if !strings.Contains(wrapped.Error(), "permission denied") {
		t.Fatalf("Error() = %q, want it to mention the cause", wrapped.Error())
	}
	if !errors.Is(wrapped, wrapped.Cause) {
		t.Fatalf("Unwrap did not expose the cause via errors.Is")
	}
}

func TestReaderStatusErrorFormatsCommandAndStatus(t *testing.T) {
	err := &ReaderStatusError{Command: CmdGetInfos, Status: 0x1A}
	msg := err.Error()
	if !strings.Contains(msg, "GetInfos") || !strings.Contains(msg, "0x1A") {
		t.Fatalf("Error() = %q, want it to name the command and status", msg)
	}
}

func TestIsRetryableOnlyForMuteAndStopped(t *testing.T) {
	if !IsRetryable(newLocalError(ErrCommRecvMute, nil)) {
		t.Fatalf("ErrCommRecvMute should be retryable")
	}
	if !IsRetryable(newLocalError(ErrCommRecvStopped, nil)) {
		t.Fatalf("ErrCommRecvStopped should be retryable")
	}
	if IsRetryable(newLocalError(ErrWrongResponseCRC, nil)) {
		t.Fatalf("ErrWrongResponseCRC should not be retryable")
	}
	if IsRetryable(errors.New("unrelated")) {
		t.Fatalf("a non-LocalError should not be retryable")
	}
	if IsRetryable(nil) {
		t.Fatalf("nil should not be retryable")
	}
}

func TestIsReplayFault(t *testing.T) {
	if !IsReplayFault(newLocalError(ErrWrongResponseCounter, nil)) {
		t.Fatalf("ErrWrongResponseCounter should be a replay fault")
	}
	if IsReplayFault(newLocalError(ErrWrongResponseSignature, nil)) {
		t.Fatalf("ErrWrongResponseSignature should not be a replay fault")
	}
}

func TestIsAuthFault(t *testing.T) {
	if !IsAuthFault(newLocalError(ErrWrongResponseSignature, nil)) {
		t.Fatalf("ErrWrongResponseSignature should be an auth fault")
	}
	if IsAuthFault(newLocalError(ErrWrongResponseCounter, nil)) {
		t.Fatalf("ErrWrongResponseCounter should not be an auth fault")
	}
}

func TestIsReaderStatusExtractsByte(t *testing.T) {
	status, ok := IsReaderStatus(&ReaderStatusError{Command: CmdOutputs, Status: 0x0C})
	if !ok || status != 0x0C {
		t.Fatalf("IsReaderStatus = (0x%02X, %v), want (0x0C, true)", status, ok)
	}
	if _, ok := IsReaderStatus(newLocalError(ErrInvalidParameter, nil)); ok {
		t.Fatalf("a LocalError should not be reported as a ReaderStatusError")
	}
}

func TestUnknownLocalErrorKindStringFallback(t *testing.T) {
	if got := LocalErrorKind(9999).String(); got != "unknown local error" {
		t.Fatalf("String() for an unmapped kind = %q", got)
	}
}

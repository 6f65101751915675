package sscp

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"log/slog"
)

// defaultAuthKey is the factory authentication key a reader accepts until
// ChangeReaderKeys replaces it.
var defaultAuthKey = [16]byte{
	0xE7, 0x4A, 0x54, 0x0F, 0xA0, 0x7C, 0x4D, 0xB1,
	0xB4, 0x64, 0x21, 0x12, 0x6D, 0xF7, 0xAD, 0x36,
}

// AuthError reports which leg of the two-leg authentication handshake
// failed.
type AuthError struct {
	Leg   int
	Cause error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("sscp: authentication leg %d failed: %v", e.Leg, e.Cause)
}

func (e *AuthError) Unwrap() error { return e.Cause }

// Authenticate runs the SSCP mutual authentication handshake over protocol
// 0x20. On success it installs the four session keys deriveSessionKeys
// computes and resets the command counter to 1, so the Context is ready for
// secure exchanges.
//
// authKey is the 16-byte long-term key shared with the reader; pass nil to
// use the reader's factory default key.
func (c *Context) Authenticate(authKey []byte) error {
	key := defaultAuthKey[:]
	if authKey != nil {
		if len(authKey) != 16 {
			return newLocalError(ErrInvalidParameter, fmt.Errorf("auth key must be 16 bytes, got %d", len(authKey)))
		}
		key = authKey
	}

	rndA, err := c.authNonce()
	if err != nil {
		return &AuthError{Leg: 1, Cause: err}
	}

	leg1 := make([]byte, 0, 18)
	leg1 = append(leg1, 0x00, 0x00)
	leg1 = append(leg1, rndA...)

	resp1, err := c.authRoundTrip(1, leg1)
	if err != nil {
		return err
	}
	if len(resp1) != 4+4+16+16+32 {
		return &AuthError{Leg: 1, Cause: newLocalError(ErrWrongResponseLength, nil)}
	}

	b := resp1[0:4]
	a := resp1[4:8]
	rndB := resp1[24:40]
	hB := resp1[40:72]

	if !bytes.Equal(hmacSHA256(key, resp1[:40]), hB) {
		return &AuthError{Leg: 1, Cause: newLocalError(ErrWrongResponseSignature, nil)}
	}

	leg2 := make([]byte, 0, 4+16+32)
	leg2 = append(leg2, a...)
	leg2 = append(leg2, rndB...)
	hA := hmacSHA256(key, leg2)
	leg2 = append(leg2, hA...)

	resp2, err := c.authRoundTrip(2, leg2)
	if err != nil {
		return err
	}
	if len(resp2) != 6 {
		return &AuthError{Leg: 2, Cause: newLocalError(ErrWrongResponseLength, nil)}
	}

	keys, err := deriveSessionKeys(key, rndA, rndB)
	if err != nil {
		return &AuthError{Leg: 2, Cause: err}
	}

	c.keys = keys
	c.counter = 1
	c.stats.sessionCount++
	c.stats.whenSession = c.clock.Now()

	slog.Debug("sscp session authenticated",
		"b", hex.EncodeToString(b),
		"a", hex.EncodeToString(a))

	return nil
}

// authNonce returns the random challenge the host contributes to leg 1:
// genuinely random in production, a fixed vector under self-test.
func (c *Context) authNonce() ([]byte, error) {
	if c.selfTest != nil {
		return c.selfTest.rndA, nil
	}
	return randomBytes(16)
}

// authRoundTrip sends one authentication leg and returns the reader's
// response, substituting the fixed self-test vector instead of touching the
// transport when the Context was built with one.
func (c *Context) authRoundTrip(leg int, command []byte) ([]byte, error) {
	if c.selfTest != nil {
		if leg == 1 {
			return c.selfTest.authLeg1Response, nil
		}
		return c.selfTest.authLeg2Response, nil
	}
	resp, err := c.exchangeRaw(c.address, protocolAuthenticate, command)
	if err != nil {
		return nil, &AuthError{Leg: leg, Cause: err}
	}
	return resp, nil
}

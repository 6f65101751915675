/*
Package sscp implements the host side of SSCP (Secure Serial Communication
Protocol): a framed, authenticated, encrypted request/response protocol used
to drive an NFC/RFID reader over a serial link (RS-232 point-to-point or
RS-485 multidrop).

This package owns the secure messaging engine only:

  - The framed transport codec (SOF/length/address/protocol/payload/CRC-16
    envelope), see frame.go.
  - The crypto primitives adapter (AES-128-CBC/ECB, HMAC-SHA-256, RNG), see
    crypto.go.
  - The key schedule that derives four session keys from the long-term key
    and the handshake nonces, see keys.go.
  - The mutual authentication handshake, see auth.go.
  - The secure exchange pipeline (counter, sign, pad, encrypt, IV; and its
    inverse with counter/MAC verification), see secure.go.
  - The typed command catalog, see commands.go.
  - The inter-scan guard timer and session statistics, see guard.go.

The byte-level serial driver is not implemented here: a Context is built
around a Transport, a small capability interface satisfied by whatever
actually owns the wire (see transport.go). Production code wires in
internal/serialport; tests wire in a fake that replays fixed frames.

# Example

	tr, err := serialport.Open("/dev/ttyUSB0", 38400)
	if err != nil {
		log.Fatal(err)
	}
	ctx := sscp.New(tr)
	defer ctx.Close()

	ctx.SelectAddress(0x01)
	if err := ctx.Authenticate(nil); err != nil {
		log.Fatal(err)
	}
	if err := ctx.Outputs(0x02, 0x0A, 0x02); err != nil {
		log.Fatal(err)
	}

# Access rights and error spaces

Errors come from two disjoint spaces. Host-detected faults (bad framing, CRC
mismatch, MAC mismatch, counter replay, I/O failure) are a *LocalError*.
Reader-detected faults (the command reached the reader and it rejected it)
are a *ReaderStatusError* wrapping the raw, positive status byte the reader
returned. See errors.go.

# Concurrency

A Context is not safe for concurrent use: SSCP requires strict
send/receive interleaving with a single in-flight counter, so a session is
inherently single-threaded. Distinct Contexts on distinct transports share
no state and may run concurrently.
*/
package sscp

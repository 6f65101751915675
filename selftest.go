package sscp

// selfTestVectors replaces every source of entropy and every transport
// round trip in the authentication and secure exchange engines with a
// fixed, reproducible value, so the whole handshake-plus-one-command path
// can be exercised without a reader attached. Reproduced from the reader's
// own self-test fixture so independent implementations produce identical
// bytes at every stage.
type selfTestVectors struct {
	rndA              []byte
	authLeg1Response  []byte
	authLeg2Response  []byte
	exchangeIV        []byte
	exchangeResponse  []byte
}

// selfTestPadBytes cycles through these four bytes (never 0x80-then-zero)
// when self-test mode pads a secure request, so the padded bytes match the
// reader's own fixture regardless of the command's length.
var selfTestPadBytes = [4]byte{0xBA, 0x40, 0x5E, 0xDD}

// selfTestPad pads data to a multiple of 16 bytes using the self-test cycle
// instead of the production ISO/IEC 9797-1 method-2 padding.
func selfTestPad(data []byte) []byte {
	padded := append([]byte(nil), data...)
	i := 0
	for len(padded)%16 != 0 {
		padded = append(padded, selfTestPadBytes[i%len(selfTestPadBytes)])
		i++
	}
	return padded
}

// newSelfTestVectors returns the fixed vector set used by this package's
// own tests to exercise Authenticate and the secure exchange engine without
// a Transport.
func newSelfTestVectors() *selfTestVectors {
	return &selfTestVectors{
		rndA: []byte{
			0x75, 0xCC, 0xF7, 0xB1, 0xF7, 0xFE, 0xA6, 0xF7,
			0x58, 0x71, 0xFC, 0xF6, 0xDC, 0x75, 0x59, 0x23,
		},
		authLeg1Response: []byte{
			0x53, 0x77, 0x07, 0xAD, 0x48, 0x6F, 0x07, 0xAD, 0x75, 0xCC, 0xF7, 0xB1, 0xF7, 0xFE, 0xA6, 0xF7,
			0x58, 0x71, 0xFC, 0xF6, 0xDC, 0x75, 0x59, 0x23, 0xC8, 0xEE, 0x7C, 0x37, 0x5C, 0x21, 0xEA, 0xC5,
			0x1B, 0xD9, 0x7C, 0x51, 0xC6, 0x9F, 0x39, 0x5B, 0x69, 0xF6, 0x61, 0x77, 0x07, 0xD9, 0x44, 0x29,
			0x40, 0xC3, 0x9B, 0xEB, 0xFA, 0x0B, 0x44, 0x59, 0xCE, 0xBF, 0x6C, 0xD5, 0xE6, 0x10, 0xEA, 0x1F,
			0xF4, 0x4B, 0x34, 0x1E, 0x29, 0x16, 0x54, 0xA9,
		},
		authLeg2Response: []byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x08},
		exchangeIV: []byte{
			0x7C, 0x3D, 0xE3, 0xF3, 0xE1, 0x91, 0xD3, 0xCD,
			0x3A, 0x09, 0x3E, 0x64, 0x3B, 0xF0, 0x35, 0xCE,
		},
		exchangeResponse: []byte{
			0xEE, 0x3F, 0x77, 0x22, 0x6E, 0x77, 0xEF, 0xF3, 0x05, 0x89, 0xBB, 0x40, 0xF1, 0xA1, 0x7C, 0x8E,
			0x6D, 0x7B, 0x5D, 0x89, 0xFB, 0x6D, 0x86, 0xF2, 0x52, 0x04, 0xFC, 0x4D, 0x31, 0x80, 0x0F, 0x17,
			0x7F, 0xED, 0xA6, 0x42, 0x00, 0x8F, 0x0A, 0x60, 0x37, 0x01, 0xC4, 0x34, 0xC8, 0x56, 0x9B, 0xA9,
			0xEC, 0x89, 0xEC, 0xA7, 0xB6, 0x33, 0xF3, 0x35, 0x77, 0xCE, 0xC2, 0x4A, 0x74, 0x85, 0x98, 0x5E,
		},
	}
}

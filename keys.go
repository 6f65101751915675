package sscp

// sessionKeys holds the four keys Authenticate derives from the long-term
// key and the two handshake nonces: one pair for encryption (host-to-reader,
// reader-to-host) and one pair for signing.
type sessionKeys struct {
	cipherAB [16]byte
	cipherBA [16]byte
	signAB   [16]byte
	signBA   [16]byte
}

// Role bytes keep the four diversifications independent of one another;
// they carry no meaning beyond that.
const (
	roleSignAB   = 0x11
	roleSignBA   = 0x22
	roleCipherAB = 0x33
	roleCipherBA = 0x44
)

// deriveSessionKeys computes the four session keys from the long-term key
// and the two 16-byte nonces exchanged during authentication (rndA, chosen
// by the host; rndB, returned by the reader). Each session key is an
// AES-128-ECB encryption, under the long-term key, of a 16-byte block built
// from the first half of each nonce and a role byte, so the four keys
// cannot be confused with one another even though they share the same
// nonce material.
func deriveSessionKeys(longTermKey, rndA, rndB []byte) (*sessionKeys, error) {
	if len(longTermKey) != 16 || len(rndA) != 16 || len(rndB) != 16 {
		return nil, newLocalError(ErrInvalidParameter, nil)
	}

	derive := func(role byte) ([16]byte, error) {
		var out [16]byte
		block := make([]byte, 16)
		copy(block[0:8], rndA[0:8])
		copy(block[8:16], rndB[0:8])
		block[0] ^= role

		enc, err := aesECBEncryptBlock(longTermKey, block)
		if err != nil {
			return out, err
		}
		copy(out[:], enc)
		return out, nil
	}

	var keys sessionKeys
	var err error
	if keys.signAB, err = derive(roleSignAB); err != nil {
		return nil, err
	}
	if keys.signBA, err = derive(roleSignBA); err != nil {
		return nil, err
	}
	if keys.cipherAB, err = derive(roleCipherAB); err != nil {
		return nil, err
	}
	if keys.cipherBA, err = derive(roleCipherBA); err != nil {
		return nil, err
	}
	return &keys, nil
}

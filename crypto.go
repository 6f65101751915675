package sscp

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"
)

// aesCBCEncrypt encrypts plaintext (which must already be a multiple of the
// AES block size) under key and iv.
func aesCBCEncrypt(key, iv, plaintext []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("aes cbc encrypt: %w", err)
	}
	if len(plaintext)%aes.BlockSize != 0 {
		return nil, fmt.Errorf("aes cbc encrypt: plaintext is not block-aligned (%d bytes)", len(plaintext))
	}
	out := make([]byte, len(plaintext))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(out, plaintext)
	return out, nil
}

// aesCBCDecrypt is the inverse of aesCBCEncrypt.
func aesCBCDecrypt(key, iv, ciphertext []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("aes cbc decrypt: %w", err)
	}
	if len(ciphertext)%aes.BlockSize != 0 {
		return nil, fmt.Errorf("aes cbc decrypt: ciphertext is not block-aligned (%d bytes)", len(ciphertext))
	}
	out := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(out, ciphertext)
	return out, nil
}

// aesECBEncryptBlock encrypts a single 16-byte block with no chaining. It is
// used only by the key schedule (keys.go), never for message confidentiality.
func aesECBEncryptBlock(key, block16 []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("aes ecb encrypt: %w", err)
	}
	if len(block16) != aes.BlockSize {
		return nil, fmt.Errorf("aes ecb encrypt: expected a single %d-byte block, got %d", aes.BlockSize, len(block16))
	}
	out := make([]byte, aes.BlockSize)
	block.Encrypt(out, block16)
	return out, nil
}

// hmacSHA256 is the signing primitive used by both the authentication
// handshake (auth.go) and the secure exchange engine (secure.go).
func hmacSHA256(key, data []byte) []byte {
	mac := hmac.New(sha256.New, key)
	mac.Write(data)
	return mac.Sum(nil)
}

// padISO9797M2 pads data to a multiple of 16 bytes by appending 0x80 followed
// by zero bytes, the scheme the secure exchange engine uses before
// encryption. Data that is already block-aligned is returned unpadded: no
// 0x80 is appended when none is needed.
func padISO9797M2(data []byte) []byte {
	if len(data)%16 == 0 {
		return data
	}
	padded := append(append([]byte{}, data...), 0x80)
	for len(padded)%16 != 0 {
		padded = append(padded, 0x00)
	}
	return padded
}

// randomBytes returns n cryptographically random bytes, used for nonces and
// IVs throughout the authentication and secure exchange engines.
func randomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return nil, fmt.Errorf("random bytes: %w", err)
	}
	return b, nil
}

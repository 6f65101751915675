package sscp

import (
	"bytes"
	"testing"
)

var testKey16 = []byte{
	0x00, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07,
	0x08, 0x09, 0x0A, 0x0B, 0x0C, 0x0D, 0x0E, 0x0F,
}

func TestAESCBCRoundTrip(t *testing.T) {
	iv := make([]byte, 16)
	plaintext := []byte("0123456789ABCDEF0123456789ABCDEF")[:32]

	ciphertext, err := aesCBCEncrypt(testKey16, iv, plaintext)
	if err != nil {
		t.Fatalf("aesCBCEncrypt: %v", err)
	}
	if bytes.Equal(ciphertext, plaintext) {
		t.Fatalf("ciphertext equals plaintext")
	}

	decrypted, err := aesCBCDecrypt(testKey16, iv, ciphertext)
	if err != nil {
		t.Fatalf("aesCBCDecrypt: %v", err)
	}
	if !bytes.Equal(decrypted, plaintext) {
		t.Fatalf("round trip mismatch: got % X, want % X", decrypted, plaintext)
	}
}

func TestAESCBCEncryptRejectsUnalignedPlaintext(t *testing.T) {
	iv := make([]byte, 16)
	if _, err := aesCBCEncrypt(testKey16, iv, []byte{0x01, 0x02, 0x03}); err == nil {
		t.Fatalf("expected error for unaligned plaintext")
	}
}

func TestAESECBEncryptBlockDeterministic(t *testing.T) {
	block := make([]byte, 16)
	out1, err := aesECBEncryptBlock(testKey16, block)
	if err != nil {
		t.Fatalf("aesECBEncryptBlock: %v", err)
	}
	out2, err := aesECBEncryptBlock(testKey16, block)
	if err != nil {
		t.Fatalf("aesECBEncryptBlock: %v", err)
	}
	if !bytes.Equal(out1, out2) {
		t.Fatalf("ECB encryption of the same block produced different output")
	}
	if bytes.Equal(out1, block) {
		t.Fatalf("ciphertext equals plaintext block")
	}
}

func TestAESECBEncryptBlockRejectsWrongSize(t *testing.T) {
	if _, err := aesECBEncryptBlock(testKey16, make([]byte, 15)); err == nil {
		t.Fatalf("expected error for a non-block-sized input")
	}
}

func TestHMACSHA256Deterministic(t *testing.T) {
	a := hmacSHA256(testKey16, []byte("hello"))
	b := hmacSHA256(testKey16, []byte("hello"))
	if !bytes.Equal(a, b) {
		t.Fatalf("hmacSHA256 is not deterministic")
	}
	if len(a) != 32 {
		t.Fatalf("hmacSHA256 output length = %d, want 32", len(a))
	}
	c := hmacSHA256(testKey16, []byte("goodbye"))
	if bytes.Equal(a, c) {
		t.Fatalf("hmacSHA256 produced the same output for different messages")
	}
}

func TestPadISO9797M2AlignedIsUntouched(t *testing.T) {
	data := make([]byte, 32)
	padded := padISO9797M2(data)
	if len(padded) != 32 {
		t.Fatalf("padISO9797M2 padded already-aligned data to %d bytes", len(padded))
	}
}

func TestPadISO9797M2UnalignedAppends80ThenZeros(t *testing.T) {
	data := []byte{0x01, 0x02, 0x03}
	padded := padISO9797M2(data)
	if len(padded)%16 != 0 {
		t.Fatalf("padded length %d is not block-aligned", len(padded))
	}
	want := append([]byte{0x01, 0x02, 0x03, 0x80}, make([]byte, 16-4)...)
	if !bytes.Equal(padded, want) {
		t.Fatalf("padISO9797M2 = % X, want % X", padded, want)
	}
}

func TestRandomBytesLengthAndVariation(t *testing.T) {
	a, err := randomBytes(16)
	if err != nil {
		t.Fatalf("randomBytes: %v", err)
	}
	if len(a) != 16 {
		t.Fatalf("randomBytes(16) returned %d bytes", len(a))
	}
	b, err := randomBytes(16)
	if err != nil {
		t.Fatalf("randomBytes: %v", err)
	}
	if bytes.Equal(a, b) {
		t.Fatalf("two calls to randomBytes produced identical output")
	}
}

package encryption

import (
	"bytes"
	"crypto/aes"
	"encoding/hex"
	"fmt"
)

// Envelope layout: IV (one AES block) followed by the CBC ciphertext,
// hex-encoded so the result is safe to embed in text configuration.
const ivSize = aes.BlockSize

// encodeEnvelope returns the transportable form of iv followed by ciphertext.
func encodeEnvelope(iv, ciphertext []byte) string {
	raw := make([]byte, 0, len(iv)+len(ciphertext))
	raw = append(raw, iv...)
	raw = append(raw, ciphertext...)
	return hex.EncodeToString(raw)
}

// decodeEnvelope parses a hex envelope into its IV and ciphertext parts.
// All failure modes wrap ErrInvalidFormat.
func decodeEnvelope(s string) (iv, ciphertext []byte, err error) {
	raw, err := hex.DecodeString(s)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: not a hex string: %v", ErrInvalidFormat, err)
	}
	if len(raw) < ivSize+aes.BlockSize {
		return nil, nil, fmt.Errorf("%w: data too short", ErrInvalidFormat)
	}
	if (len(raw)-ivSize)%aes.BlockSize != 0 {
		return nil, nil, fmt.Errorf("%w: ciphertext is not a multiple of the block size", ErrInvalidFormat)
	}
	return raw[:ivSize], raw[ivSize:], nil
}

// pkcs7Pad appends PKCS#7 padding up to the next block boundary.
// Input that already ends on a boundary gains a full block of padding.
func pkcs7Pad(data []byte) []byte {
	padding := aes.BlockSize - len(data)%aes.BlockSize
	return append(data, bytes.Repeat([]byte{byte(padding)}, padding)...)
}

// pkcs7Unpad removes and verifies PKCS#7 padding. A padding mismatch means
// the data was decrypted with the wrong key, so it wraps ErrDecryptionFailed.
func pkcs7Unpad(data []byte) ([]byte, error) {
	if len(data) == 0 || len(data)%aes.BlockSize != 0 {
		return nil, fmt.Errorf("%w: invalid padded length", ErrDecryptionFailed)
	}
	padding := int(data[len(data)-1])
	if padding == 0 || padding > aes.BlockSize {
		return nil, fmt.Errorf("%w: invalid padding", ErrDecryptionFailed)
	}
	for _, b := range data[len(data)-padding:] {
		if int(b) != padding {
			return nil, fmt.Errorf("%w: invalid padding", ErrDecryptionFailed)
		}
	}
	return data[:len(data)-padding], nil
}

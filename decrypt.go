package encryption

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"fmt"

	"github.com/awnumar/memguard"
)

// Decrypt reverses Encrypt: it decodes the hex envelope, decrypts the body
// with the resolved key and returns the original plaintext. A nil key or a
// key resolving to empty material returns cipherText unchanged.
//
// Malformed envelopes fail with ErrInvalidFormat; a padding mismatch (wrong
// key) fails with ErrDecryptionFailed.
func Decrypt(ctx context.Context, cipherText string, key *EncryptionKey) (out string, err error) {
	ctx, span := tracer.Start(ctx, "encryption.Decrypt")
	defer span.End()
	defer func() { recordResult(ctx, span, "decrypt", key, err) }()

	if key == nil {
		return cipherText, nil
	}

	material, err := key.material()
	if err != nil {
		return "", err
	}
	if len(material) == 0 {
		return cipherText, nil
	}

	keyBytes, err := deriveKey(material, key.size())
	if err != nil {
		return "", err
	}
	keyBuf := memguard.NewBufferFromBytes(keyBytes)
	defer keyBuf.Destroy()

	iv, body, err := decodeEnvelope(cipherText)
	if err != nil {
		return "", err
	}

	block, err := aes.NewCipher(keyBuf.Bytes())
	if err != nil {
		return "", fmt.Errorf("encryption: creating cipher: %w", err)
	}

	plain := make([]byte, len(body))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plain, body)

	unpadded, err := pkcs7Unpad(plain)
	if err != nil {
		return "", err
	}
	return string(unpadded), nil
}

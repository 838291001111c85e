// Package encryption encrypts and decrypts configuration values with AES-CBC
// under keys described by EncryptionKey descriptors. Ciphertext is a hex
// string carrying a random per-call IV, so it can be embedded in XML or YAML
// configuration. Encryption is opt-in: a nil key, or a key that resolves to
// empty material, passes text through unchanged.
package encryption

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"io"

	"github.com/awnumar/memguard"
)

// Encrypt encrypts plainText under the key described by key and returns the
// hex envelope. A nil key or a key resolving to empty material returns
// plainText unchanged. Two calls with the same inputs produce different
// ciphertext because the IV is random per call.
//
// All operations are stateless and safe for concurrent use.
func Encrypt(ctx context.Context, plainText string, key *EncryptionKey) (out string, err error) {
	ctx, span := tracer.Start(ctx, "encryption.Encrypt")
	defer span.End()
	defer func() { recordResult(ctx, span, "encrypt", key, err) }()

	if key == nil {
		return plainText, nil
	}

	material, err := key.material()
	if err != nil {
		return "", err
	}
	if len(material) == 0 {
		return plainText, nil
	}

	keyBytes, err := deriveKey(material, key.size())
	if err != nil {
		return "", err
	}
	keyBuf := memguard.NewBufferFromBytes(keyBytes)
	defer keyBuf.Destroy()

	block, err := aes.NewCipher(keyBuf.Bytes())
	if err != nil {
		return "", fmt.Errorf("encryption: creating cipher: %w", err)
	}

	padded := pkcs7Pad([]byte(plainText))
	iv := make([]byte, ivSize)
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return "", fmt.Errorf("encryption: generating IV: %w", err)
	}

	body := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(body, padded)

	return encodeEnvelope(iv, body), nil
}

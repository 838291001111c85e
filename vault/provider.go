// Package vault materializes an EncryptionKey from key material held in
// HashiCorp Vault's Transit secrets engine.
//
// The Transit decrypt endpoint unwraps key material that was previously
// encrypted via the Transit encrypt endpoint. The material is fetched once,
// at construction time; the Vault client is not retained.
//
// Usage:
//
//	client := vault.NewClient("https://vault.example.com:8200", "hvs.token123")
//	key, err := vault.New(ctx, client, "my-transit-key", "vault:v1:base64data")
package vault

import (
	"context"
	"fmt"

	encryption "github.com/supportlib/encryption"
)

// Client abstracts the Vault Transit decrypt operation.
// This allows injecting a mock for testing or wrapping any Vault client library.
type Client interface {
	// TransitDecrypt decrypts ciphertext using the named Transit key.
	// The ciphertext should be in Vault's format (e.g., "vault:v1:base64data").
	// Returns the plaintext bytes.
	TransitDecrypt(ctx context.Context, keyName string, ciphertext string) ([]byte, error)
}

// Option configures the materialized key.
type Option func(*options)

type options struct {
	size int
}

// WithSize sets the key length in bits of the materialized key.
// The default is encryption.DefaultKeySize.
func WithSize(bits int) Option {
	return func(o *options) {
		o.size = bits
	}
}

// New decrypts key material using the Vault Transit engine and returns a
// literal-source EncryptionKey carrying it. The transitKeyName is the name
// of the Transit key in Vault; the ciphertext should be in Vault's format
// (e.g., "vault:v1:...").
func New(ctx context.Context, client Client, transitKeyName, ciphertext string, opts ...Option) (*encryption.EncryptionKey, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	plaintext, err := client.TransitDecrypt(ctx, transitKeyName, ciphertext)
	if err != nil {
		return nil, fmt.Errorf("vault: failed to decrypt key material: %w", err)
	}
	if len(plaintext) == 0 {
		return nil, fmt.Errorf("vault: transit key %q decrypted to empty material", transitKeyName)
	}

	key := encryption.NewEncryptionKey(string(plaintext), encryption.SourceKey, o.size)
	clear(plaintext)
	return key, nil
}

package encryption

import (
	"context"
	"fmt"

	"github.com/rbaliyan/config/codec"
)

// Codec wraps an inner codec with value encryption. On Encode, the inner
// codec serializes the value and the result is encrypted under the given
// key descriptor. On Decode, the data is decrypted and the inner codec
// deserializes the plaintext.
//
// A nil key makes the codec a transparent pass-through, matching the
// opt-in contract of Encrypt and Decrypt. Codec is safe for concurrent use
// if the inner codec is.
type Codec struct {
	inner codec.Codec
	key   *EncryptionKey
	name  string
}

// Compile-time interface check.
var _ codec.Codec = (*Codec)(nil)

// NewCodec creates an encrypting codec that wraps the given inner codec.
// The codec name is "encrypted:<inner>", e.g. "encrypted:json".
// Returns an error if inner is nil.
func NewCodec(inner codec.Codec, key *EncryptionKey) (*Codec, error) {
	if inner == nil {
		return nil, fmt.Errorf("encryption: NewCodec inner codec is nil")
	}
	return &Codec{
		inner: inner,
		key:   key,
		name:  "encrypted:" + inner.Name(),
	}, nil
}

// Name returns the codec name, e.g. "encrypted:json".
func (c *Codec) Name() string {
	return c.name
}

// Encode serializes the value using the inner codec, then encrypts the result.
func (c *Codec) Encode(v any) ([]byte, error) {
	plaintext, err := c.inner.Encode(v)
	if err != nil {
		return nil, fmt.Errorf("encryption: inner encode failed: %w", err)
	}

	encrypted, err := Encrypt(context.Background(), string(plaintext), c.key)
	if err != nil {
		return nil, fmt.Errorf("encryption: encode failed: %w", err)
	}
	return []byte(encrypted), nil
}

// Decode decrypts the data, then deserializes the plaintext using the inner codec.
func (c *Codec) Decode(data []byte, v any) error {
	plaintext, err := Decrypt(context.Background(), string(data), c.key)
	if err != nil {
		return fmt.Errorf("encryption: decode failed: %w", err)
	}

	if err := c.inner.Decode([]byte(plaintext), v); err != nil {
		return fmt.Errorf("encryption: inner decode failed: %w", err)
	}
	return nil
}

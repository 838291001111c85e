// Package gcpkms materializes an EncryptionKey from key material held in
// Google Cloud KMS.
//
// The CryptoKeys.Decrypt RPC unwraps previously encrypted key material.
// The material is fetched once, at construction time; the KMS client is
// not retained.
//
// Usage:
//
//	client, err := kms.NewKeyManagementClient(ctx)
//	key, err := gcpkms.New(ctx, client, resourceName, ciphertext)
package gcpkms

import (
	"context"
	"fmt"

	kmspb "cloud.google.com/go/kms/apiv1/kmspb"
	encryption "github.com/supportlib/encryption"
)

// Client is the subset of the GCP Cloud KMS API used by this package.
type Client interface {
	Decrypt(ctx context.Context, req *kmspb.DecryptRequest) (*kmspb.DecryptResponse, error)
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

// New unwraps key material using Cloud KMS Decrypt and returns a
// literal-source EncryptionKey carrying it. The resourceName is the full
// CryptoKey resource name (projects/*/locations/*/keyRings/*/cryptoKeys/*).
func New(ctx context.Context, client Client, resourceName string, ciphertext []byte, opts ...Option) (*encryption.EncryptionKey, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	resp, err := client.Decrypt(ctx, &kmspb.DecryptRequest{
		Name:       resourceName,
		Ciphertext: ciphertext,
	})
	if err != nil {
		return nil, fmt.Errorf("gcpkms: failed to decrypt key material: %w", err)
	}
	if len(resp.Plaintext) == 0 {
		return nil, fmt.Errorf("gcpkms: key %q decrypted to empty material", resourceName)
	}

	key := encryption.NewEncryptionKey(string(resp.Plaintext), encryption.SourceKey, o.size)
	clear(resp.Plaintext)
	return key, nil
}

// Package awskms materializes an EncryptionKey from key material held in
// AWS KMS.
//
// KMS Decrypt unwraps key material that was previously generated via
// GenerateDataKey or Encrypt. The material is fetched once, at construction
// time; the KMS client is not retained.
//
// Usage:
//
//	cfg, err := awsconfig.LoadDefaultConfig(ctx)
//	kmsClient := kms.NewFromConfig(cfg)
//
//	key, err := awskms.New(ctx, kmsClient, encryptedKeyBytes)
package awskms

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/kms"
	encryption "github.com/supportlib/encryption"
)

// Client is the subset of the AWS KMS API used by this package.
type Client interface {
	Decrypt(ctx context.Context, params *kms.DecryptInput, optFns ...func(*kms.Options)) (*kms.DecryptOutput, error)
}

// Option configures the materialized key.
type Option func(*options)

type options struct {
	size     int
	kmsKeyID string // KMS key ARN or alias; empty = let KMS determine
}

// WithSize sets the key length in bits of the materialized key.
// The default is encryption.DefaultKeySize.
func WithSize(bits int) Option {
	return func(o *options) {
		o.size = bits
	}
}

// WithKMSKeyID specifies the KMS key ARN or alias to use for decryption.
// Use this when the ciphertext was encrypted with a specific KMS key.
func WithKMSKeyID(kmsKeyID string) Option {
	return func(o *options) {
		o.kmsKeyID = kmsKeyID
	}
}

// New unwraps key material using AWS KMS Decrypt and returns a
// literal-source EncryptionKey carrying it. The ciphertext should be the
// output of KMS Encrypt or GenerateDataKey.
func New(ctx context.Context, client Client, ciphertext []byte, opts ...Option) (*encryption.EncryptionKey, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	input := &kms.DecryptInput{
		CiphertextBlob: ciphertext,
	}
	if o.kmsKeyID != "" {
		input.KeyId = &o.kmsKeyID
	}

	out, err := client.Decrypt(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("awskms: failed to decrypt key material: %w", err)
	}
	if len(out.Plaintext) == 0 {
		return nil, fmt.Errorf("awskms: key material decrypted to empty")
	}

	key := encryption.NewEncryptionKey(string(out.Plaintext), encryption.SourceKey, o.size)
	clear(out.Plaintext)
	return key, nil
}

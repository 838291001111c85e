// Package azurekv materializes an EncryptionKey from key material held in
// Azure Key Vault.
//
// The UnwrapKey operation decrypts key material that was previously wrapped
// with WrapKey. The material is fetched once, at construction time; the Key
// Vault client is not retained.
//
// Usage:
//
//	cred, err := azidentity.NewDefaultAzureCredential(nil)
//	client, err := azkeys.NewClient("https://my-vault.vault.azure.net/", cred, nil)
//
//	key, err := azurekv.New(ctx, client, "my-key-name", "key-version", wrappedKeyBytes)
package azurekv

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/security/keyvault/azkeys"
	encryption "github.com/supportlib/encryption"
)

// Client is the subset of the Azure Key Vault API used by this package.
type Client interface {
	UnwrapKey(ctx context.Context, keyName string, keyVersion string, parameters azkeys.KeyOperationParameters, options *azkeys.UnwrapKeyOptions) (azkeys.UnwrapKeyResponse, error)
}

// Option configures the materialized key.
type Option func(*options)

type options struct {
	size      int
	algorithm azkeys.EncryptionAlgorithm
}

// WithSize sets the key length in bits of the materialized key.
// The default is encryption.DefaultKeySize.
func WithSize(bits int) Option {
	return func(o *options) {
		o.size = bits
	}
}

// WithAlgorithm sets the unwrap algorithm. The default is RSA-OAEP-256.
func WithAlgorithm(alg azkeys.EncryptionAlgorithm) Option {
	return func(o *options) {
		o.algorithm = alg
	}
}

// New unwraps key material using Key Vault and returns a literal-source
// EncryptionKey carrying it. The keyName and keyVersion identify the Key
// Vault key used for wrapping.
func New(ctx context.Context, client Client, keyName, keyVersion string, ciphertext []byte, opts ...Option) (*encryption.EncryptionKey, error) {
	o := options{algorithm: azkeys.EncryptionAlgorithmRSAOAEP256}
	for _, opt := range opts {
		opt(&o)
	}

	resp, err := client.UnwrapKey(ctx, keyName, keyVersion, azkeys.KeyOperationParameters{
		Algorithm: &o.algorithm,
		Value:     ciphertext,
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("azurekv: failed to unwrap key %q: %w", keyName, err)
	}
	if len(resp.Result) == 0 {
		return nil, fmt.Errorf("azurekv: key %q unwrapped to empty material", keyName)
	}

	key := encryption.NewEncryptionKey(string(resp.Result), encryption.SourceKey, o.size)
	clear(resp.Result)
	return key, nil
}

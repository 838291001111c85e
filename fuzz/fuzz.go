//go:build gofuzz

// Package fuzz holds the OSS-Fuzz harness for the encryption envelope.
// Native fuzz targets for regular `go test -fuzz` live in the root package.
package fuzz

import (
	"context"

	testing "github.com/AdamKorcz/go-118-fuzz-build/testing"

	encryption "github.com/supportlib/encryption"
)

func FuzzRoundTrip(f *testing.F) {
	f.Fuzz(func(t *testing.T, plaintext, secret string) {
		if secret == "" {
			t.Skip()
		}
		ctx := context.Background()
		key := encryption.NewEncryptionKey(secret, encryption.SourceKey, 256)

		ciphertext, err := encryption.Encrypt(ctx, plaintext, key)
		if err != nil {
			t.Fatalf("Encrypt: %v", err)
		}
		got, err := encryption.Decrypt(ctx, ciphertext, key)
		if err != nil {
			t.Fatalf("Decrypt: %v", err)
		}
		if got != plaintext {
			t.Fatalf("round trip: got %q, want %q", got, plaintext)
		}
	})
}

func FuzzDecrypt(f *testing.F) {
	f.Fuzz(func(t *testing.T, ciphertext string) {
		key := encryption.NewEncryptionKey("fuzz key", encryption.SourceKey, 128)
		// Arbitrary input must fail cleanly or decrypt, never panic.
		_, _ = encryption.Decrypt(context.Background(), ciphertext, key)
	})
}

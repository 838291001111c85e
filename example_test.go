package encryption_test

import (
	"context"
	"fmt"

	codecjson "github.com/rbaliyan/config/codec/json"
	encryption "github.com/supportlib/encryption"
)

func ExampleEncrypt() {
	ctx := context.Background()
	key := encryption.NewEncryptionKey("my secret", encryption.SourceKey, 256)

	ciphertext, err := encryption.Encrypt(ctx, "hello world", key)
	if err != nil {
		panic(err)
	}
	// The IV is random per call, so only the length is stable.
	fmt.Println("Ciphertext length:", len(ciphertext))

	plaintext, err := encryption.Decrypt(ctx, ciphertext, key)
	if err != nil {
		panic(err)
	}
	fmt.Println("Decrypted:", plaintext)

	// Output:
	// Ciphertext length: 64
	// Decrypted: hello world
}

func ExampleEncrypt_noKey() {
	// Encryption is opt-in: without a key, text passes through unchanged.
	out, err := encryption.Encrypt(context.Background(), "plain value", nil)
	if err != nil {
		panic(err)
	}
	fmt.Println(out)

	// Output:
	// plain value
}

func ExampleDecryptPassword() {
	ctx := context.Background()
	key := encryption.NewEncryptionKey("my secret", encryption.SourceKey, 256)

	stored, err := encryption.Encrypt(ctx, "s3cret", key)
	if err != nil {
		panic(err)
	}

	creds := &encryption.Credentials{
		Username:    "app",
		Password:    stored,
		PasswordKey: key,
	}

	password, err := encryption.DecryptPassword(ctx, creds)
	if err != nil {
		panic(err)
	}
	fmt.Println("Password:", password)

	// Output:
	// Password: s3cret
}

func ExampleNewCodec() {
	key := encryption.NewEncryptionKey("my secret", encryption.SourceKey, 256)

	// Wrap the JSON codec with encryption
	encJSON, err := encryption.NewCodec(codecjson.New(), key)
	if err != nil {
		panic(err)
	}
	fmt.Println("Codec name:", encJSON.Name())

	// Encode encrypts the JSON-serialized value
	data, err := encJSON.Encode("my-secret")
	if err != nil {
		panic(err)
	}

	// Decode decrypts and deserializes
	var result string
	if err := encJSON.Decode(data, &result); err != nil {
		panic(err)
	}
	fmt.Println("Decrypted:", result)

	// Output:
	// Codec name: encrypted:json
	// Decrypted: my-secret
}

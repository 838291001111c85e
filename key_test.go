package encryption

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
)

func TestSourceString(t *testing.T) {
	cases := map[Source]string{
		SourceKey:         "KEY",
		SourceFile:        "FILE",
		SourceEnvironment: "ENVIRONMENT",
		SourceProperty:    "PROPERTY",
	}
	for source, want := range cases {
		if got := source.String(); got != want {
			t.Errorf("String(): got %q, want %q", got, want)
		}
	}
}

func TestParseSource(t *testing.T) {
	for _, name := range []string{"KEY", "FILE", "ENVIRONMENT", "PROPERTY"} {
		source, err := ParseSource(name)
		if err != nil {
			t.Fatalf("ParseSource(%q): %v", name, err)
		}
		if source.String() != name {
			t.Errorf("ParseSource(%q): got %v", name, source)
		}
	}

	if _, err := ParseSource("VAULT"); err == nil {
		t.Error("ParseSource accepted an unknown source")
	}
}

func TestSourceTextRoundTrip(t *testing.T) {
	text, err := SourceEnvironment.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText: %v", err)
	}
	if string(text) != "ENVIRONMENT" {
		t.Errorf("MarshalText: got %q", text)
	}

	var source Source
	if err := source.UnmarshalText(text); err != nil {
		t.Fatalf("UnmarshalText: %v", err)
	}
	if source != SourceEnvironment {
		t.Errorf("UnmarshalText: got %v, want %v", source, SourceEnvironment)
	}
}

func TestResolveLiteralDeterministic(t *testing.T) {
	key := NewEncryptionKey("I am a key", SourceKey, 256)

	first, err := key.Resolve()
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	second, err := key.Resolve()
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Error("two resolutions of the same descriptor differ")
	}
	if len(first) != 32 {
		t.Errorf("resolved length: got %d bytes, want 32", len(first))
	}
}

func TestResolveSizes(t *testing.T) {
	for size, wantBytes := range map[int]int{128: 16, 192: 24, 256: 32} {
		key := NewEncryptionKey("secret", SourceKey, size)
		raw, err := key.Resolve()
		if err != nil {
			t.Fatalf("Resolve (%d bits): %v", size, err)
		}
		if len(raw) != wantBytes {
			t.Errorf("Resolve (%d bits): got %d bytes, want %d", size, len(raw), wantBytes)
		}
	}
}

func TestResolveDefaultSize(t *testing.T) {
	raw, err := NewEncryptionKey("secret", SourceKey, 0).Resolve()
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(raw) != DefaultKeySize/8 {
		t.Errorf("Resolve: got %d bytes, want %d", len(raw), DefaultKeySize/8)
	}
}

func TestResolveInvalidSize(t *testing.T) {
	_, err := NewEncryptionKey("secret", SourceKey, 512).Resolve()
	if !IsInvalidKeySize(err) {
		t.Errorf("expected ErrInvalidKeySize, got %v", err)
	}
}

func TestResolveDistinctMaterial(t *testing.T) {
	first, err := NewEncryptionKey("key one", SourceKey, 256).Resolve()
	if err != nil {
		t.Fatal(err)
	}
	second, err := NewEncryptionKey("key two", SourceKey, 256).Resolve()
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Equal(first, second) {
		t.Error("different material resolved to the same key")
	}
}

func TestResolveFileMatchesLiteral(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keyfile")
	if err := os.WriteFile(path, []byte("I am a key"), 0o600); err != nil {
		t.Fatal(err)
	}

	fromFile, err := NewEncryptionKey(path, SourceFile, 256).Resolve()
	if err != nil {
		t.Fatalf("Resolve (file): %v", err)
	}
	fromLiteral, err := NewEncryptionKey("I am a key", SourceKey, 256).Resolve()
	if err != nil {
		t.Fatalf("Resolve (literal): %v", err)
	}
	if !bytes.Equal(fromFile, fromLiteral) {
		t.Error("file source and literal source resolved to different keys")
	}
}

func TestResolveFileMissing(t *testing.T) {
	key := NewEncryptionKey(filepath.Join(t.TempDir(), "no-such-file"), SourceFile, 256)
	_, err := key.Resolve()
	if !IsKeyResolution(err) {
		t.Errorf("expected ErrKeyResolution, got %v", err)
	}
}

func TestResolveFileNotCached(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keyfile")
	if err := os.WriteFile(path, []byte("first material"), 0o600); err != nil {
		t.Fatal(err)
	}
	key := NewEncryptionKey(path, SourceFile, 256)

	first, err := key.Resolve()
	if err != nil {
		t.Fatal(err)
	}

	// Rotate the key file; the next resolution must pick it up.
	if err := os.WriteFile(path, []byte("second material"), 0o600); err != nil {
		t.Fatal(err)
	}
	second, err := key.Resolve()
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Equal(first, second) {
		t.Error("resolution returned stale key material after rotation")
	}

	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	if _, err := key.Resolve(); !IsKeyResolution(err) {
		t.Errorf("expected ErrKeyResolution after file removal, got %v", err)
	}
}

func TestResolveEnvironment(t *testing.T) {
	t.Setenv("ENCRYPTION_TEST_KEY", "I am a key")

	fromEnv, err := NewEncryptionKey("ENCRYPTION_TEST_KEY", SourceEnvironment, 256).Resolve()
	if err != nil {
		t.Fatalf("Resolve (env): %v", err)
	}
	fromLiteral, err := NewEncryptionKey("I am a key", SourceKey, 256).Resolve()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(fromEnv, fromLiteral) {
		t.Error("environment source and literal source resolved to different keys")
	}
}

func TestResolveEnvironmentUnset(t *testing.T) {
	key := NewEncryptionKey("ENCRYPTION_TEST_KEY_DOES_NOT_EXIST", SourceEnvironment, 256)
	_, err := key.Resolve()
	if !IsKeyResolution(err) {
		t.Errorf("expected ErrKeyResolution, got %v", err)
	}

	// The same failure surfaces when the key is used.
	_, err = Encrypt(context.Background(), "text", key)
	if !IsKeyResolution(err) {
		t.Errorf("Encrypt: expected ErrKeyResolution, got %v", err)
	}
}

func TestResolveProperty(t *testing.T) {
	viper.Set("database.password.key", "I am a key")
	t.Cleanup(viper.Reset)

	fromProperty, err := NewEncryptionKey("database.password.key", SourceProperty, 256).Resolve()
	if err != nil {
		t.Fatalf("Resolve (property): %v", err)
	}
	fromLiteral, err := NewEncryptionKey("I am a key", SourceKey, 256).Resolve()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(fromProperty, fromLiteral) {
		t.Error("property source and literal source resolved to different keys")
	}
}

func TestResolvePropertyUnset(t *testing.T) {
	_, err := NewEncryptionKey("no.such.property", SourceProperty, 256).Resolve()
	if !IsKeyResolution(err) {
		t.Errorf("expected ErrKeyResolution, got %v", err)
	}
}

func TestResolveUnknownSource(t *testing.T) {
	_, err := NewEncryptionKey("value", Source(42), 256).Resolve()
	if !IsKeyResolution(err) {
		t.Errorf("expected ErrKeyResolution, got %v", err)
	}
}

func TestFileSourceRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "keyfile")
	if err := os.WriteFile(path, []byte("I am a key"), 0o600); err != nil {
		t.Fatal(err)
	}

	fileKey := NewEncryptionKey(path, SourceFile, 256)
	literalKey := NewEncryptionKey("I am a key", SourceKey, 256)

	ciphertext, err := Encrypt(ctx, "hello world", fileKey)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}

	// The literal key carries the same material, so it must decrypt.
	got, err := Decrypt(ctx, ciphertext, literalKey)
	if err != nil {
		t.Fatalf("Decrypt: %v", err)
	}
	if got != "hello world" {
		t.Errorf("Decrypt: got %q, want %q", got, "hello world")
	}
}

package encryption

import (
	"crypto/sha256"
	"fmt"
	"io"
	"os"

	"github.com/spf13/viper"
	"golang.org/x/crypto/hkdf"
)

// DefaultKeySize is the key length in bits used when a descriptor does not
// specify one.
const DefaultKeySize = 128

// hkdfInfo domain-separates key derivation from other uses of the same
// secret material.
const hkdfInfo = "encryption.key.v1"

// Source identifies where an EncryptionKey obtains its raw material.
type Source int

const (
	// SourceKey treats Value as the literal key text.
	SourceKey Source = iota

	// SourceFile treats Value as a file path; the entire file contents
	// are the key material.
	SourceFile

	// SourceEnvironment treats Value as the name of an environment
	// variable holding the key material.
	SourceEnvironment

	// SourceProperty treats Value as the name of a process-wide property
	// in the viper registry.
	SourceProperty
)

var sourceNames = map[Source]string{
	SourceKey:         "KEY",
	SourceFile:        "FILE",
	SourceEnvironment: "ENVIRONMENT",
	SourceProperty:    "PROPERTY",
}

// String returns the configuration name of the source, e.g. "FILE".
func (s Source) String() string {
	if name, ok := sourceNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Source(%d)", int(s))
}

// ParseSource converts a configuration name into a Source.
func ParseSource(text string) (Source, error) {
	for s, name := range sourceNames {
		if name == text {
			return s, nil
		}
	}
	return 0, fmt.Errorf("encryption: unknown key source %q", text)
}

// MarshalText implements encoding.TextMarshaler so key descriptors can be
// written into text configuration.
func (s Source) MarshalText() ([]byte, error) {
	name, ok := sourceNames[s]
	if !ok {
		return nil, fmt.Errorf("encryption: unknown key source %d", int(s))
	}
	return []byte(name), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Source) UnmarshalText(text []byte) error {
	parsed, err := ParseSource(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// EncryptionKey describes where a symmetric key comes from and how long it
// should be. The zero Size means DefaultKeySize.
//
// Resolution is not cached: every Resolve call re-reads the source, so
// rotated key files or properties take effect without a restart.
type EncryptionKey struct {
	// Value is the key material or a reference to it, interpreted
	// according to Source.
	Value string

	// Source determines how Value is interpreted.
	Source Source

	// Size is the desired key length in bits (128, 192 or 256).
	Size int
}

// NewEncryptionKey creates a key descriptor. A size of 0 selects
// DefaultKeySize.
func NewEncryptionKey(value string, source Source, size int) *EncryptionKey {
	return &EncryptionKey{Value: value, Source: source, Size: size}
}

// size returns the effective key length in bits.
func (k *EncryptionKey) size() int {
	if k.Size == 0 {
		return DefaultKeySize
	}
	return k.Size
}

// material re-reads the raw secret bytes from the configured source.
func (k *EncryptionKey) material() ([]byte, error) {
	switch k.Source {
	case SourceKey:
		return []byte(k.Value), nil
	case SourceFile:
		b, err := os.ReadFile(k.Value)
		if err != nil {
			return nil, fmt.Errorf("%w: reading key file %q: %v", ErrKeyResolution, k.Value, err)
		}
		return b, nil
	case SourceEnvironment:
		v, ok := os.LookupEnv(k.Value)
		if !ok {
			return nil, fmt.Errorf("%w: environment variable %q is not set", ErrKeyResolution, k.Value)
		}
		return []byte(v), nil
	case SourceProperty:
		if !viper.IsSet(k.Value) {
			return nil, fmt.Errorf("%w: property %q is not set", ErrKeyResolution, k.Value)
		}
		return []byte(viper.GetString(k.Value)), nil
	default:
		return nil, fmt.Errorf("%w: unknown key source %d", ErrKeyResolution, int(k.Source))
	}
}

// Resolve turns the descriptor into raw key bytes of exactly Size bits.
// Arbitrary-length source material is stretched or truncated
// deterministically, so the same inputs always yield the same key.
func (k *EncryptionKey) Resolve() ([]byte, error) {
	material, err := k.material()
	if err != nil {
		return nil, err
	}
	return deriveKey(material, k.size())
}

// validKeySize reports whether bits is a key length AES accepts.
func validKeySize(bits int) bool {
	switch bits {
	case 128, 192, 256:
		return true
	}
	return false
}

// deriveKey expands secret material to exactly bits of key via HKDF-SHA256.
func deriveKey(material []byte, bits int) ([]byte, error) {
	if !validKeySize(bits) {
		return nil, fmt.Errorf("%w: %d bits", ErrInvalidKeySize, bits)
	}
	key := make([]byte, bits/8)
	kdf := hkdf.New(sha256.New, material, nil, []byte(hkdfInfo))
	if _, err := io.ReadFull(kdf, key); err != nil {
		return nil, fmt.Errorf("encryption: deriving key: %w", err)
	}
	return key, nil
}

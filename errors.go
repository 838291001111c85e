package encryption

import "errors"

var (
	// ErrKeyResolution is returned when a key's source material is
	// unavailable (missing file, unset environment variable or property).
	ErrKeyResolution = errors.New("encryption: key resolution failed")

	// ErrInvalidKeySize is returned when a key size is not a valid AES
	// length (128, 192 or 256 bits).
	ErrInvalidKeySize = errors.New("encryption: invalid key size")

	// ErrInvalidFormat is returned when ciphertext is not a well-formed
	// hex envelope.
	ErrInvalidFormat = errors.New("encryption: invalid ciphertext format")

	// ErrDecryptionFailed is returned when decryption fails, typically
	// because the wrong key was used.
	ErrDecryptionFailed = errors.New("encryption: decryption failed")
)

// IsKeyResolution returns true if the error is or wraps ErrKeyResolution.
func IsKeyResolution(err error) bool {
	return errors.Is(err, ErrKeyResolution)
}

// IsInvalidKeySize returns true if the error is or wraps ErrInvalidKeySize.
func IsInvalidKeySize(err error) bool {
	return errors.Is(err, ErrInvalidKeySize)
}

// IsInvalidFormat returns true if the error is or wraps ErrInvalidFormat.
func IsInvalidFormat(err error) bool {
	return errors.Is(err, ErrInvalidFormat)
}

// IsDecryptionFailed returns true if the error is or wraps ErrDecryptionFailed.
func IsDecryptionFailed(err error) bool {
	return errors.Is(err, ErrDecryptionFailed)
}

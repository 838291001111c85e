package encryption

import "context"

// Credentials pairs a stored (possibly encrypted) password with the key
// descriptor that protects it. It is typically populated by an external
// configuration layer.
type Credentials struct {
	Username    string
	Password    string
	PasswordKey *EncryptionKey
}

// DecryptPassword decrypts the password carried by creds. A nil creds
// yields an empty password; a nil PasswordKey passes the stored password
// through unchanged.
func DecryptPassword(ctx context.Context, creds *Credentials) (string, error) {
	if creds == nil {
		return "", nil
	}
	return Decrypt(ctx, creds.Password, creds.PasswordKey)
}

// Package credentials holds the opaque key/secret/STS types the signer
// consumes. It plays the role the teacher SDK's pkg/credentials package
// plays for MinIO/S3 access keys, adapted to Aliyun OSS's KeyId/KeySecret
// naming from the original source's types.rs.
package credentials

import "fmt"

// KeyId is the OSS access key id. The library never logs it, but it is
// not treated as secret: String returns the raw value, and
// Credentials.String renders it in full.
type KeyId string

func (k KeyId) String() string { return string(k) }

// KeySecret is the OSS access key secret. Its GoString/String
// implementations redact the value so it never appears in debug output,
// struct dumps, or logs by accident.
type KeySecret string

// String always returns a redacted placeholder, never the secret value.
func (KeySecret) String() string { return "KeySecret(REDACTED)" }

// GoString mirrors String so %#v in fmt/log output never leaks the secret.
func (KeySecret) GoString() string { return "KeySecret(REDACTED)" }

// Expose returns the raw secret bytes for use by the signer. Named
// distinctly from String/GoString so accidental fmt.Sprintf("%s", secret)
// or %v formatting cannot leak it.
func (k KeySecret) Expose() string { return string(k) }

// Credentials bundles a KeyId/KeySecret pair plus an optional STS security
// token. The zero value is invalid; use New.
type Credentials struct {
	KeyID        KeyId
	Secret       KeySecret
	SecurityToken string // x-oss-security-token, empty unless STS is configured
}

// New validates key and secret are non-empty printable ASCII and returns a
// Credentials value.
func New(key, secret string) (Credentials, error) {
	if err := validatePrintableASCII(key); err != nil {
		return Credentials{}, fmt.Errorf("credentials: invalid key id: %w", err)
	}
	if err := validatePrintableASCII(secret); err != nil {
		return Credentials{}, fmt.Errorf("credentials: invalid key secret: %w", err)
	}
	return Credentials{KeyID: KeyId(key), Secret: KeySecret(secret)}, nil
}

// NewWithSTS is New plus an STS security token, attached to every signed
// request as x-oss-security-token. Grounded in the original source's
// sts.rs STS trait.
func NewWithSTS(key, secret, securityToken string) (Credentials, error) {
	c, err := New(key, secret)
	if err != nil {
		return Credentials{}, err
	}
	c.SecurityToken = securityToken
	return c, nil
}

// HasSTS reports whether a security token is configured.
func (c Credentials) HasSTS() bool {
	return c.SecurityToken != ""
}

func validatePrintableASCII(s string) error {
	if s == "" {
		return fmt.Errorf("must not be empty")
	}
	for _, c := range s {
		if c < 0x20 || c > 0x7e {
			return fmt.Errorf("must be printable ASCII")
		}
	}
	return nil
}

// String renders the key id and, in place of the secret, its redacted
// placeholder.
func (c Credentials) String() string {
	return fmt.Sprintf("Credentials{KeyID: %q, Secret: %s}", c.KeyID, c.Secret)
}

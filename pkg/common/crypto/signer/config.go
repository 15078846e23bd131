package signer

// Config represents signer configuration
type Config struct {
	// SigningKey is a hex encoded ECDSA private key, with or without 0x prefix
	SigningKey string
	// SigningKeyPath is the path to an encrypted keystore file
	SigningKeyPath string
	// Password is the password to decrypt the keystore
	Password string
}

// IsKeystore reports whether the key should be loaded from a keystore file
func (c *Config) IsKeystore() bool {
	return c.SigningKeyPath != ""
}

// IsEmpty reports whether no key material was configured at all
func (c *Config) IsEmpty() bool {
	return c.SigningKey == "" && c.SigningKeyPath == ""
}

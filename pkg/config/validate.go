package config

import "fmt"

// ValidationError names the configuration field that stopped startup
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

// Validate checks required fields in a fixed order and reports the first
// missing one. It never touches the network or the signing key itself.
func (c *Config) Validate() error {
	if c.RPCURL == "" {
		return &ValidationError{Field: "RPC_URL", Reason: "is empty"}
	}
	if c.PrivateKey == "" && c.KeystorePath == "" {
		return &ValidationError{Field: "PRIVATE_KEY", Reason: "is empty"}
	}
	if len(c.ContractAddresses) == 0 {
		return &ValidationError{Field: "CONTRACT_ADDRESSES", Reason: "is empty"}
	}
	if c.UpdateIntervalSeconds <= 0 {
		return &ValidationError{Field: "UPDATE_INTERVAL_SECONDS", Reason: fmt.Sprintf("must be positive, got %d", c.UpdateIntervalSeconds)}
	}
	if _, err := c.Targets(); err != nil {
		return &ValidationError{Field: "CONTRACT_ADDRESSES", Reason: err.Error()}
	}
	if c.CallTimeout < 0 {
		return &ValidationError{Field: "CALL_TIMEOUT", Reason: "must not be negative"}
	}
	return nil
}

package signer

import (
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/accounts/keystore"
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// LocalSigner implements Signer interface with an in-memory private key
type LocalSigner struct {
	signingKey *ecdsa.PrivateKey
	address    ethcommon.Address
}

// NewLocalSigner creates a new local signer from a raw hex key or a keystore file
func NewLocalSigner(cfg *Config) (*LocalSigner, error) {
	if cfg == nil || cfg.IsEmpty() {
		return nil, fmt.Errorf("no signing key configured")
	}

	var (
		key *ecdsa.PrivateKey
		err error
	)
	if cfg.IsKeystore() {
		key, err = loadKeystore(cfg.SigningKeyPath, cfg.Password)
	} else {
		key, err = parsePrivateKey(cfg.SigningKey)
	}
	if err != nil {
		return nil, err
	}

	return &LocalSigner{
		signingKey: key,
		address:    crypto.PubkeyToAddress(key.PublicKey),
	}, nil
}

func loadKeystore(path, password string) (*ecdsa.PrivateKey, error) {
	keyJson, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read signing key file: %w", err)
	}
	key, err := keystore.DecryptKey(keyJson, password)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt signing key: %w", err)
	}
	return key.PrivateKey, nil
}

func parsePrivateKey(hexKey string) (*ecdsa.PrivateKey, error) {
	hexKey = strings.TrimPrefix(strings.TrimSpace(hexKey), "0x")
	key, err := crypto.HexToECDSA(hexKey)
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}
	return key, nil
}

// GetSigningAddress returns the address derived from signing key
func (s *LocalSigner) GetSigningAddress() ethcommon.Address {
	return s.address
}

// TransactOpts builds a fresh keyed transactor; the nonce and gas fields are left
// for the node to fill in at send time
func (s *LocalSigner) TransactOpts(chainID *big.Int) (*bind.TransactOpts, error) {
	if chainID == nil {
		return nil, fmt.Errorf("chain id is nil")
	}
	opts, err := bind.NewKeyedTransactorWithChainID(s.signingKey, chainID)
	if err != nil {
		return nil, fmt.Errorf("failed to create transactor: %w", err)
	}
	return opts, nil
}

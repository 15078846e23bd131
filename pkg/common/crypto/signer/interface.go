package signer

import (
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	ethcommon "github.com/ethereum/go-ethereum/common"
)

// Signer is the single account that authorizes every update transaction
type Signer interface {
	// GetSigningAddress returns the address derived from signing key
	GetSigningAddress() ethcommon.Address
	// TransactOpts returns keyed transaction options for the given chain
	TransactOpts(chainID *big.Int) (*bind.TransactOpts, error)
}

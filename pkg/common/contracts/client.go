package contracts

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
)

// UpdateClient defines the state-mutating call the updater issues per contract
type UpdateClient interface {
	// PullDataAndCache broadcasts a pullDataAndCache() transaction to target
	PullDataAndCache(ctx context.Context, target common.Address) (*TxHandle, error)

	// Close closes the client connection
	Close() error
}

// TxHandle is the acknowledgment returned once a transaction has been broadcast
type TxHandle struct {
	Target common.Address
	Hash   common.Hash
	Nonce  uint64
}

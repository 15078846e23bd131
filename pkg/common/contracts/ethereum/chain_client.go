package ethereum

import (
	"context"
	"math/big"
	"sync"

	ethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/pkg/errors"

	"github.com/ArtemKolodko/band-oracle-updater/pkg/common/contracts"
	"github.com/ArtemKolodko/band-oracle-updater/pkg/common/contracts/bindings"
	"github.com/ArtemKolodko/band-oracle-updater/pkg/common/crypto/signer"
)

// Config contains Ethereum client configuration
type Config struct {
	RPCEndpoint string
	// ChainID is optional; when nil it is fetched from the node on first use
	ChainID *big.Int
}

// Backend is the subset of an RPC client the updater needs
type Backend interface {
	bind.ContractBackend
	ethereum.ChainIDReader
}

// ChainClient sends pullDataAndCache() transactions signed by a single account
type ChainClient struct {
	backend Backend
	closer  func()
	signer  signer.Signer

	mu      sync.Mutex
	chainID *big.Int
}

var _ contracts.UpdateClient = (*ChainClient)(nil)

// NewChainClient dials the RPC endpoint. HTTP endpoints connect lazily, so an
// unreachable node surfaces on the first call rather than here.
func NewChainClient(cfg *Config, s signer.Signer) (*ChainClient, error) {
	if cfg == nil {
		return nil, errors.New("[ChainClient] config is nil")
	}
	ethClient, err := ethclient.Dial(cfg.RPCEndpoint)
	if err != nil {
		return nil, errors.Wrap(err, "[ChainClient] failed to connect to Ethereum node")
	}

	c, err := NewChainClientWithBackend(ethClient, s, cfg.ChainID)
	if err != nil {
		ethClient.Close()
		return nil, err
	}
	c.closer = ethClient.Close
	return c, nil
}

// NewChainClientWithBackend wraps an existing backend such as a simulated chain
func NewChainClientWithBackend(backend Backend, s signer.Signer, chainID *big.Int) (*ChainClient, error) {
	if backend == nil {
		return nil, errors.New("[ChainClient] backend is nil")
	}
	if s == nil {
		return nil, errors.New("[ChainClient] signer is nil")
	}
	return &ChainClient{
		backend: backend,
		signer:  s,
		chainID: chainID,
	}, nil
}

// Close implements contracts.UpdateClient
func (c *ChainClient) Close() error {
	if c.closer != nil {
		c.closer()
	}
	return nil
}

// ChainID returns the configured chain id, resolving and caching it from the node if unset
func (c *ChainClient) ChainID(ctx context.Context) (*big.Int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.chainID != nil {
		return c.chainID, nil
	}
	chainID, err := c.backend.ChainID(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "[ChainClient] failed to get chain id")
	}
	c.chainID = chainID
	return chainID, nil
}

// PullDataAndCache implements contracts.UpdateClient. It returns once the node
// has accepted the raw transaction; no receipt is awaited.
func (c *ChainClient) PullDataAndCache(ctx context.Context, target common.Address) (*contracts.TxHandle, error) {
	chainID, err := c.ChainID(ctx)
	if err != nil {
		return nil, err
	}

	opts, err := c.signer.TransactOpts(chainID)
	if err != nil {
		return nil, errors.Wrap(err, "[ChainClient] failed to build transact opts")
	}
	opts.Context = ctx

	reader, err := bindings.NewBandOracleReaderTransactor(target, c.backend)
	if err != nil {
		return nil, errors.Wrap(err, "[ChainClient] failed to create oracle reader binding")
	}

	tx, err := reader.PullDataAndCache(opts)
	if err != nil {
		return nil, errors.Wrapf(err, "[ChainClient] failed to send pullDataAndCache to %s", target.Hex())
	}

	return &contracts.TxHandle{
		Target: target,
		Hash:   tx.Hash(),
		Nonce:  tx.Nonce(),
	}, nil
}

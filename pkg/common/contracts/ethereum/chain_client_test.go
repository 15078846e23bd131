package ethereum

import (
	"context"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient/simulated"
	"github.com/ethereum/go-ethereum/params"
	"github.com/stretchr/testify/suite"

	"github.com/ArtemKolodko/band-oracle-updater/pkg/common/contracts"
	"github.com/ArtemKolodko/band-oracle-updater/pkg/common/crypto/signer"
)

const testKeyHex = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"

var (
	// runtime code is a single STOP so any call succeeds
	oracleReaderAddr = common.HexToAddress("0x00000000000000000000000000000000000000aa")
	emptyAddr        = common.HexToAddress("0x00000000000000000000000000000000000000bb")
)

type ChainClientTestSuite struct {
	suite.Suite
	backend *simulated.Backend
	signer  *signer.LocalSigner
	client  *ChainClient
}

func TestChainClientSuite(t *testing.T) {
	suite.Run(t, new(ChainClientTestSuite))
}

func (s *ChainClientTestSuite) SetupTest() {
	var err error
	s.signer, err = signer.NewLocalSigner(&signer.Config{SigningKey: testKeyHex})
	s.Require().NoError(err)

	s.backend = simulated.NewBackend(types.GenesisAlloc{
		s.signer.GetSigningAddress(): {Balance: big.NewInt(params.Ether)},
		oracleReaderAddr:             {Code: []byte{0x00}, Balance: big.NewInt(0)},
	})

	s.client, err = NewChainClientWithBackend(s.backend.Client(), s.signer, nil)
	s.Require().NoError(err)
}

func (s *ChainClientTestSuite) TearDownTest() {
	s.Require().NoError(s.client.Close())
	s.Require().NoError(s.backend.Close())
}

func (s *ChainClientTestSuite) TestNewChainClientWithBackend_Validation() {
	_, err := NewChainClientWithBackend(nil, s.signer, nil)
	s.Error(err)

	_, err = NewChainClientWithBackend(s.backend.Client(), nil, nil)
	s.Error(err)

	_, err = NewChainClient(nil, s.signer)
	s.Error(err)
}

func (s *ChainClientTestSuite) TestChainID_ResolvedAndCached() {
	ctx := context.Background()
	chainID, err := s.client.ChainID(ctx)
	s.Require().NoError(err)
	s.Equal(params.AllDevChainProtocolChanges.ChainID.Int64(), chainID.Int64())

	again, err := s.client.ChainID(ctx)
	s.Require().NoError(err)
	s.Same(chainID, again)
}

func (s *ChainClientTestSuite) TestChainID_Configured() {
	configured := big.NewInt(1337)
	client, err := NewChainClientWithBackend(s.backend.Client(), s.signer, configured)
	s.Require().NoError(err)

	chainID, err := client.ChainID(context.Background())
	s.Require().NoError(err)
	s.Same(configured, chainID)
}

func (s *ChainClientTestSuite) TestPullDataAndCache_Success() {
	ctx := context.Background()

	handle, err := s.client.PullDataAndCache(ctx, oracleReaderAddr)
	s.Require().NoError(err)
	s.Equal(oracleReaderAddr, handle.Target)
	s.Equal(uint64(0), handle.Nonce)
	s.NotEqual(common.Hash{}, handle.Hash)

	s.backend.Commit()

	receipt, err := s.backend.Client().TransactionReceipt(ctx, handle.Hash)
	s.Require().NoError(err)
	s.Equal(types.ReceiptStatusSuccessful, receipt.Status)

	tx, _, err := s.backend.Client().TransactionByHash(ctx, handle.Hash)
	s.Require().NoError(err)
	s.Equal(oracleReaderAddr, *tx.To())
	s.Equal(common.Hex2Bytes("d606a8b7"), tx.Data())

	next, err := s.client.PullDataAndCache(ctx, oracleReaderAddr)
	s.Require().NoError(err)
	s.Equal(uint64(1), next.Nonce)
}

func (s *ChainClientTestSuite) TestPullDataAndCache_NoContractCode() {
	handle, err := s.client.PullDataAndCache(context.Background(), emptyAddr)
	s.Error(err)
	s.Nil(handle)
	s.Equal(contracts.ErrorKindNoCode, contracts.ClassifyError(err))
	s.Contains(err.Error(), emptyAddr.Hex())
}

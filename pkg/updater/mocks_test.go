package updater

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/mock"

	"github.com/ArtemKolodko/band-oracle-updater/pkg/common/contracts"
)

// mockUpdateClient mocks the chain client
type mockUpdateClient struct {
	mock.Mock

	mu    sync.Mutex
	order []common.Address
}

func (m *mockUpdateClient) PullDataAndCache(ctx context.Context, target common.Address) (*contracts.TxHandle, error) {
	m.mu.Lock()
	m.order = append(m.order, target)
	m.mu.Unlock()

	args := m.Called(ctx, target)
	handle, _ := args.Get(0).(*contracts.TxHandle)
	return handle, args.Error(1)
}

func (m *mockUpdateClient) Close() error {
	args := m.Called()
	return args.Error(0)
}

func (m *mockUpdateClient) calledOrder() []common.Address {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]common.Address(nil), m.order...)
}

type span struct {
	start, end time.Time
}

// spanRunner wraps a CycleRunner and records when each cycle ran
type spanRunner struct {
	next CycleRunner

	mu     sync.Mutex
	spans  []span
	notify chan int
}

func newSpanRunner(next CycleRunner) *spanRunner {
	return &spanRunner{next: next, notify: make(chan int, 64)}
}

func (r *spanRunner) RunCycle(ctx context.Context, targets []common.Address) {
	start := time.Now()
	r.next.RunCycle(ctx, targets)
	end := time.Now()

	r.mu.Lock()
	r.spans = append(r.spans, span{start: start, end: end})
	n := len(r.spans)
	r.mu.Unlock()

	r.notify <- n
}

func (r *spanRunner) recorded() []span {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]span(nil), r.spans...)
}

type runnerFunc func(ctx context.Context, targets []common.Address)

func (f runnerFunc) RunCycle(ctx context.Context, targets []common.Address) {
	f(ctx, targets)
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func (b *syncBuffer) Count(substr string) int {
	return strings.Count(b.String(), substr)
}

func captureLogs(t *testing.T) *syncBuffer {
	t.Helper()
	buf := &syncBuffer{}
	prev := log.Logger
	log.Logger = zerolog.New(buf)
	t.Cleanup(func() { log.Logger = prev })
	return buf
}

func txHandle(target common.Address, hash string, nonce uint64) *contracts.TxHandle {
	return &contracts.TxHandle{Target: target, Hash: common.HexToHash(hash), Nonce: nonce}
}

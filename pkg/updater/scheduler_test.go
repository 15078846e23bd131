package updater

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testInterval = 30 * time.Millisecond

// runUntil runs the scheduler until the runner reported n cycles, then cancels
// and waits for Run to return.
func runUntil(t *testing.T, s *Scheduler, notify <-chan int, n int) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	deadline := time.After(5 * time.Second)
	for seen := 0; seen < n; {
		select {
		case seen = <-notify:
		case <-deadline:
			cancel()
			t.Fatalf("only %d of %d cycles ran", seen, n)
		}
	}
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("scheduler did not stop after cancel")
	}
}

func assertSpacing(t *testing.T, spans []span, interval time.Duration) {
	t.Helper()
	for i := 1; i < len(spans); i++ {
		gap := spans[i].start.Sub(spans[i-1].end)
		assert.GreaterOrEqual(t, gap, interval, "cycle %d started %s after cycle %d ended", i+1, gap, i)
	}
}

func TestNewScheduler_Validation(t *testing.T) {
	source := NewStaticTargets([]common.Address{targetA})
	runner := runnerFunc(func(context.Context, []common.Address) {})

	_, err := NewScheduler(nil, runner, time.Second)
	assert.Error(t, err)
	_, err = NewScheduler(source, nil, time.Second)
	assert.Error(t, err)
	_, err = NewScheduler(source, runner, 0)
	assert.Error(t, err)

	s, err := NewScheduler(source, runner, time.Second)
	require.NoError(t, err)
	assert.Equal(t, StateIdle, s.State())
	assert.True(t, s.LastCycleAt().IsZero())
	assert.Equal(t, time.Second, s.Interval())
}

func TestScheduler_WaitsAfterCycleWithoutOverlap(t *testing.T) {
	client := new(mockUpdateClient)
	client.On("PullDataAndCache", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) { time.Sleep(10 * time.Millisecond) }).
		Return(txHandle(targetA, "0x1", 0), nil)

	runner := newSpanRunner(newTestExecutor(t, client, 0))
	s, err := NewScheduler(NewStaticTargets([]common.Address{targetA, targetB}), runner, testInterval)
	require.NoError(t, err)

	runUntil(t, s, runner.notify, 3)

	spans := runner.recorded()
	require.GreaterOrEqual(t, len(spans), 3)
	assertSpacing(t, spans, testInterval)

	// cycle N+1 only starts after every call of cycle N returned
	order := client.calledOrder()
	require.GreaterOrEqual(t, len(order), 6)
	assert.Equal(t, []common.Address{targetA, targetB, targetA, targetB, targetA, targetB}, order[:6])
	assert.GreaterOrEqual(t, s.Cycles(), uint64(3))
	assert.False(t, s.LastCycleAt().IsZero())
}

func TestScheduler_ContinuesWhenEveryTargetFails(t *testing.T) {
	client := new(mockUpdateClient)
	client.On("PullDataAndCache", mock.Anything, mock.Anything).
		Return(nil, errors.New("insufficient funds for gas * price + value"))

	runner := newSpanRunner(newTestExecutor(t, client, 0))
	s, err := NewScheduler(NewStaticTargets([]common.Address{targetA, targetB}), runner, testInterval)
	require.NoError(t, err)

	runUntil(t, s, runner.notify, 2)

	spans := runner.recorded()
	require.GreaterOrEqual(t, len(spans), 2)
	assertSpacing(t, spans, testInterval)
	assert.GreaterOrEqual(t, len(client.calledOrder()), 4)
}

func TestScheduler_RecoversWhenNodeComesBack(t *testing.T) {
	logs := captureLogs(t)
	unreachable := errors.New("dial tcp 127.0.0.1:8545: connect: connection refused")

	client := new(mockUpdateClient)
	client.On("PullDataAndCache", mock.Anything, targetA).Return(nil, unreachable).Once()
	client.On("PullDataAndCache", mock.Anything, targetB).Return(nil, unreachable).Once()
	client.On("PullDataAndCache", mock.Anything, targetA).Return(txHandle(targetA, "0xa1", 0), nil)
	client.On("PullDataAndCache", mock.Anything, targetB).Return(txHandle(targetB, "0xb1", 1), nil)

	runner := newSpanRunner(newTestExecutor(t, client, 0))
	s, err := NewScheduler(NewStaticTargets([]common.Address{targetA, targetB}), runner, 50*time.Millisecond)
	require.NoError(t, err)

	runUntil(t, s, runner.notify, 2)

	assert.Equal(t, 2, logs.Count("Failed to update oracle reader"))
	assert.Equal(t, 2, logs.Count(`"kind":"network"`))
	assert.GreaterOrEqual(t, logs.Count("Oracle reader updated"), 2)
	assert.Contains(t, logs.String(), common.HexToHash("0xa1").Hex())
	assert.Contains(t, logs.String(), common.HexToHash("0xb1").Hex())
	assert.Contains(t, logs.String(), `"cycle_id":"`)
}

func TestScheduler_TargetResolutionErrorDoesNotStopLoop(t *testing.T) {
	logs := captureLogs(t)

	var calls atomic.Int32
	source := TargetSourceFunc(func(context.Context) ([]common.Address, error) {
		if calls.Add(1) == 1 {
			return nil, errors.New("contract address #0 \"0xnope\" is not a valid hex address")
		}
		return []common.Address{targetA}, nil
	})

	runner := newSpanRunner(runnerFunc(func(context.Context, []common.Address) {}))
	s, err := NewScheduler(source, runner, testInterval)
	require.NoError(t, err)

	runUntil(t, s, runner.notify, 2)

	assert.GreaterOrEqual(t, calls.Load(), int32(3))
	assert.GreaterOrEqual(t, s.Cycles(), uint64(3))
	assert.Equal(t, 1, logs.Count("Failed to resolve update targets"))
}

func TestScheduler_PanicDoesNotStopLoop(t *testing.T) {
	logs := captureLogs(t)

	var cycles atomic.Int32
	runner := newSpanRunner(runnerFunc(func(context.Context, []common.Address) {
		if cycles.Add(1) == 1 {
			panic("unexpected")
		}
	}))

	// the panic escapes before spanRunner records the first cycle
	s, err := NewScheduler(NewStaticTargets([]common.Address{targetA}), runner, testInterval)
	require.NoError(t, err)

	runUntil(t, s, runner.notify, 1)

	assert.GreaterOrEqual(t, cycles.Load(), int32(2))
	assert.GreaterOrEqual(t, s.Cycles(), uint64(2))
	assert.Contains(t, logs.String(), "Recovered from panic in update cycle")
}

func TestScheduler_StateTransitions(t *testing.T) {
	entered := make(chan struct{}, 1)
	release := make(chan struct{})
	runner := runnerFunc(func(context.Context, []common.Address) {
		entered <- struct{}{}
		<-release
	})

	s, err := NewScheduler(NewStaticTargets([]common.Address{targetA}), runner, time.Hour)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	<-entered
	assert.Equal(t, StateRunning, s.State())
	close(release)

	assert.Eventually(t, func() bool { return s.State() == StateIdle }, time.Second, 5*time.Millisecond)
	assert.Equal(t, uint64(1), s.Cycles())

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop while idle")
	}
}

func TestScheduler_CancelledBeforeStart(t *testing.T) {
	var called atomic.Bool
	runner := runnerFunc(func(context.Context, []common.Address) { called.Store(true) })

	s, err := NewScheduler(NewStaticTargets([]common.Address{targetA}), runner, time.Second)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, s.Run(ctx))
	assert.False(t, called.Load())
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "running", StateRunning.String())
	assert.Equal(t, "state(9)", State(9).String())
}

func TestStaticTargets_ReturnsCopy(t *testing.T) {
	src := []common.Address{targetA, targetB, targetA}
	st := NewStaticTargets(src)
	src[0] = targetC

	got, err := st.Targets(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []common.Address{targetA, targetB, targetA}, got)

	got[1] = targetC
	again, _ := st.Targets(context.Background())
	assert.Equal(t, targetB, again[1])
	assert.Equal(t, 3, st.Len())
}

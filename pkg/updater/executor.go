package updater

import (
	"context"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog"

	"github.com/ArtemKolodko/band-oracle-updater/internal/metric"
	"github.com/ArtemKolodko/band-oracle-updater/pkg/common/contracts"
)

// CycleRunner runs one pass over a target list
type CycleRunner interface {
	RunCycle(ctx context.Context, targets []common.Address)
}

// Executor calls pullDataAndCache on every target, one at a time, in list order.
// A failing target is logged and skipped; it never stops the rest of the cycle.
type Executor struct {
	client      contracts.UpdateClient
	signer      common.Address
	callTimeout time.Duration
}

func NewExecutor(client contracts.UpdateClient, signer common.Address, callTimeout time.Duration) (*Executor, error) {
	if client == nil {
		return nil, fmt.Errorf("[Executor] update client is nil")
	}
	if callTimeout < 0 {
		return nil, fmt.Errorf("[Executor] call timeout must not be negative")
	}
	return &Executor{
		client:      client,
		signer:      signer,
		callTimeout: callTimeout,
	}, nil
}

// RunCycle never returns an error; per-target outcomes only go to logs and metrics.
func (e *Executor) RunCycle(ctx context.Context, targets []common.Address) {
	logger := cycleLogger(ctx)
	logger.Info().Int("targets", len(targets)).Msg("Starting update cycle")

	var failed int
	for i, target := range targets {
		// shutdown abandons the rest of the cycle; it is retried after restart
		if ctx.Err() != nil {
			logger.Warn().Int("remaining", len(targets)-i).Msg("Update cycle interrupted")
			return
		}
		if err := e.updateTarget(ctx, &logger, target); err != nil {
			failed++
		}
	}

	logger.Info().
		Int("targets", len(targets)).
		Int("failed", failed).
		Msg("Update cycle finished")
}

func (e *Executor) updateTarget(ctx context.Context, logger *zerolog.Logger, target common.Address) (err error) {
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic while updating: %v", r)
			logger.Error().
				Str("contract", target.Hex()).
				Interface("panic", r).
				Msg("Recovered from panic while updating oracle reader")
			metric.RecordUpdate(target.Hex(), string(contracts.ErrorKindUnknown), time.Since(start))
		}
	}()

	callCtx := ctx
	if e.callTimeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, e.callTimeout)
		defer cancel()
	}

	logger.Info().
		Str("contract", target.Hex()).
		Str("signer", e.signer.Hex()).
		Msg("Updating oracle reader")

	handle, err := e.client.PullDataAndCache(callCtx, target)
	if err == nil && handle == nil {
		err = fmt.Errorf("client returned no transaction")
	}
	if err != nil {
		kind := contracts.ClassifyError(err)
		logger.Error().
			Stack().
			Err(err).
			Str("contract", target.Hex()).
			Str("kind", string(kind)).
			Msg("Failed to update oracle reader")
		metric.RecordUpdate(target.Hex(), string(kind), time.Since(start))
		return err
	}

	logger.Info().
		Str("contract", target.Hex()).
		Str("tx_hash", handle.Hash.Hex()).
		Uint64("nonce", handle.Nonce).
		Dur("took", time.Since(start)).
		Msg("Oracle reader updated")
	metric.RecordUpdate(target.Hex(), "", time.Since(start))
	return nil
}

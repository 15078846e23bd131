package updater

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
)

// TargetSource resolves the contracts to update. It is called once per cycle.
type TargetSource interface {
	Targets(ctx context.Context) ([]common.Address, error)
}

// TargetSourceFunc adapts a function to TargetSource
type TargetSourceFunc func(ctx context.Context) ([]common.Address, error)

func (f TargetSourceFunc) Targets(ctx context.Context) ([]common.Address, error) {
	return f(ctx)
}

// StaticTargets is a fixed target list. Order and duplicates are kept.
type StaticTargets struct {
	addrs []common.Address
}

func NewStaticTargets(addrs []common.Address) *StaticTargets {
	return &StaticTargets{addrs: append([]common.Address(nil), addrs...)}
}

// Targets returns a copy so a cycle can never mutate the configured list
func (s *StaticTargets) Targets(_ context.Context) ([]common.Address, error) {
	return append([]common.Address(nil), s.addrs...), nil
}

func (s *StaticTargets) Len() int {
	return len(s.addrs)
}

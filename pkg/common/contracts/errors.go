package contracts

import (
	"context"
	"errors"
	"net"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/rpc"
)

// ErrorKind is a coarse classification of a failed update call. It is used for
// log fields and metric labels only.
type ErrorKind string

const (
	ErrorKindNetwork           ErrorKind = "network"
	ErrorKindRevert            ErrorKind = "revert"
	ErrorKindInsufficientFunds ErrorKind = "insufficient_funds"
	ErrorKindNoCode            ErrorKind = "no_code"
	ErrorKindRejected          ErrorKind = "rejected"
	ErrorKindUnknown           ErrorKind = "unknown"
)

// ClassifyError maps an error returned by UpdateClient to an ErrorKind
func ClassifyError(err error) ErrorKind {
	if err == nil {
		return ""
	}

	if errors.Is(err, bind.ErrNoCode) {
		return ErrorKindNoCode
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "insufficient funds") {
		return ErrorKindInsufficientFunds
	}

	var dataErr rpc.DataError
	if errors.As(err, &dataErr) || strings.Contains(msg, "revert") {
		return ErrorKindRevert
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return ErrorKindNetwork
	}
	var netErr net.Error
	if errors.As(err, &netErr) || strings.Contains(msg, "connection refused") || strings.Contains(msg, "no such host") {
		return ErrorKindNetwork
	}

	var rpcErr rpc.Error
	if errors.As(err, &rpcErr) {
		return ErrorKindRejected
	}

	return ErrorKindUnknown
}

package client

import (
	"errors"
	"time"

	errorsmod "cosmossdk.io/errors"
	"github.com/avast/retry-go/v4"
)

const RtyAttNum = 5

var (
	RtyAtt = retry.Attempts(RtyAttNum)
	RtyDel = retry.Delay(time.Millisecond * 400)
	RtyErr = retry.LastErrorOnly(true)
)

// errUnavailable marks a failure of the transport or of the server itself,
// as opposed to a rejection by the ledger.
var errUnavailable = errors.New("ledger API unavailable")

// isRetryable reports whether a query failed for a reason that may go away
// on its own. Registered ledger errors never do.
func isRetryable(err error) bool {
	if errors.Is(err, errUnavailable) {
		return true
	}
	codespace, _, _ := errorsmod.ABCIInfo(err, false)
	return codespace == errorsmod.UndefinedCodespace
}

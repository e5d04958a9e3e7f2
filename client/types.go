package client

import (
	"github.com/iov-one/junobox/weave"
	abci "github.com/tendermint/tendermint/abci/types"
	cmn "github.com/tendermint/tendermint/libs/common"
)

// TransactionID is the hash used to identify the transaction
type TransactionID = cmn.HexBytes

// ResponseQuery mirrors the abci query response.
type ResponseQuery = abci.ResponseQuery

// CommitResult is returned from the block (DeliverTx).
// Result is only set on success codes, Err is set if it was a failure code.
type CommitResult struct {
	ID     TransactionID
	Height int64
	Result *weave.DeliverResult
	Err    error
}

// Status is the current status of the node we connect to.
type Status struct {
	Height     int64
	CatchingUp bool
}

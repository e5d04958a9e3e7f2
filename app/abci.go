package app

import (
	"fmt"

	"github.com/iov-one/junobox/errors"
	"github.com/iov-one/junobox/weave"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/common"
)

// DeliverOrError returns an abci response for DeliverTx, converting the
// error message if present, or using the successful DeliverResult.
func DeliverOrError(result *weave.DeliverResult, err error, debug bool) abci.ResponseDeliverTx {
	if err != nil {
		return DeliverTxError(err, debug)
	}
	return abci.ResponseDeliverTx{
		Data:    result.Data,
		Log:     result.Log,
		Tags:    tagsToABCI(result.Tags),
		GasUsed: result.GasUsed,
	}
}

// CheckOrError returns an abci response for CheckTx, converting the error
// message if present, or using the successful CheckResult.
func CheckOrError(result *weave.CheckResult, err error, debug bool) abci.ResponseCheckTx {
	if err != nil {
		return CheckTxError(err, debug)
	}
	return abci.ResponseCheckTx{
		Data:      result.Data,
		Log:       result.Log,
		GasWanted: result.GasAllocated,
	}
}

// DeliverTxError converts any error into a abci.ResponseDeliverTx,
// preserving as much info as possible. When in debug mode always the full
// error information is returned.
func DeliverTxError(err error, debug bool) abci.ResponseDeliverTx {
	code, log := errors.ABCIInfo(err, debug)
	if code != errors.SuccessABCICode {
		log = fmt.Sprintf("cannot deliver tx: %s", log)
	}
	return abci.ResponseDeliverTx{
		Code: code,
		Log:  log,
	}
}

// CheckTxError converts any error into a abci.ResponseCheckTx, preserving
// as much info as possible. When in debug mode always the full error
// information is returned.
func CheckTxError(err error, debug bool) abci.ResponseCheckTx {
	code, log := errors.ABCIInfo(err, debug)
	if code != errors.SuccessABCICode {
		log = fmt.Sprintf("cannot check tx: %s", log)
	}
	return abci.ResponseCheckTx{
		Code: code,
		Log:  log,
	}
}

// ParseDeliverOrError is the inverse of DeliverOrError. It parses back the
// abci response to return our internal format, or returns an error on a
// failed tx.
func ParseDeliverOrError(res abci.ResponseDeliverTx) (*weave.DeliverResult, error) {
	if res.Code != errors.SuccessABCICode {
		return nil, errors.ABCIError(res.Code, res.Log)
	}
	return &weave.DeliverResult{
		Data:    res.Data,
		Log:     res.Log,
		Tags:    tagsFromABCI(res.Tags),
		GasUsed: res.GasUsed,
	}, nil
}

func tagsToABCI(tags []weave.Tag) []common.KVPair {
	if len(tags) == 0 {
		return nil
	}
	res := make([]common.KVPair, len(tags))
	for i, t := range tags {
		res[i] = common.KVPair{Key: []byte(t.Key), Value: []byte(t.Value)}
	}
	return res
}

func tagsFromABCI(pairs []common.KVPair) []weave.Tag {
	if len(pairs) == 0 {
		return nil
	}
	res := make([]weave.Tag, len(pairs))
	for i, p := range pairs {
		res[i] = weave.Tag{Key: string(p.Key), Value: string(p.Value)}
	}
	return res
}

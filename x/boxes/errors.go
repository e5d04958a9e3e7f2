package boxes

import (
	"fmt"

	"github.com/iov-one/junobox/coin"
	"github.com/iov-one/junobox/errors"
)

var (
	ErrNotInitialized     = errors.Register(200, "not initialized")
	ErrAlreadyInitialized = errors.Register(201, "already initialized")
	ErrPaymentMissing     = errors.Register(202, "payment missing")
	ErrInsufficientFunds  = errors.Register(203, "insufficient funds")
	ErrBoxNotFound        = errors.Register(204, "box not found")
	ErrIncorrectPassword  = errors.Register(205, "incorrect password")
	ErrAlreadyOpened      = errors.Register(206, "box already opened")
)

// InsufficientFundsError is returned when the attached payment does not
// cover the funds of all requested boxes. It is an ErrInsufficientFunds.
type InsufficientFundsError struct {
	Got    coin.Amount
	Needed coin.Amount
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("got %s, needed %s: %s", e.Got, e.Needed, ErrInsufficientFunds.Error())
}

func (e *InsufficientFundsError) Cause() error {
	return ErrInsufficientFunds
}

func (e *InsufficientFundsError) ABCICode() uint32 {
	return ErrInsufficientFunds.ABCICode()
}

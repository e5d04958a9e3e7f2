package sigs

import (
	"github.com/iov-one/junobox/errors"
)

// ErrInvalidSequence is returned when a signature sequence does not match
// the signer's next expected value.
var ErrInvalidSequence = errors.Register(120, "invalid sequence number")

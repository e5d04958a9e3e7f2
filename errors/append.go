package errors

import (
	"fmt"
	"strings"
)

// Append clubs together all provided errors. Nil values are ignored.
//
// If no non-nil error is provided, nil is returned. If only one non-nil error
// is provided, it is returned as it is. Appending to a multi error flattens
// the result.
func Append(errs ...error) error {
	var res multiErr
	for _, e := range errs {
		if errIsNil(e) {
			continue
		}
		if m, ok := e.(multiErr); ok {
			res = append(res, m...)
		} else {
			res = append(res, e)
		}
	}
	switch len(res) {
	case 0:
		return nil
	case 1:
		return res[0]
	default:
		return res
	}
}

// multiErr represents a set of errors. ABCI code and the cause are taken from
// the first error, so that the behaviour is consistent with a fail-fast
// validation.
type multiErr []error

func (m multiErr) Error() string {
	msgs := make([]string, len(m))
	for i, e := range m {
		msgs[i] = e.Error()
	}
	return fmt.Sprintf("%d errors occurred: %s", len(m), strings.Join(msgs, "; "))
}

// Cause returns the first error.
func (m multiErr) Cause() error {
	return m[0]
}

// Contains returns true if any of the clubbed errors is of given kind.
func (m multiErr) Contains(kind *Error) bool {
	for _, e := range m {
		if kind.Is(e) {
			return true
		}
	}
	return false
}

// IsAny returns true if the error, or any error clubbed inside of a multi
// error, is of given kind.
func IsAny(kind *Error, err error) bool {
	if m, ok := err.(multiErr); ok {
		return m.Contains(kind)
	}
	return kind.Is(err)
}

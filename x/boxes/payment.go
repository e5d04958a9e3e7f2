package boxes

import (
	"github.com/iov-one/junobox/coin"
	"github.com/iov-one/junobox/errors"
)

// sumFunds returns the total funds of all specs. ErrOverflow is returned
// when the total does not fit the amount size.
func sumFunds(specs []BoxSpec) (coin.Amount, error) {
	var total coin.Amount
	for i, s := range specs {
		var err error
		if total, err = total.Add(s.Funds); err != nil {
			return coin.Amount{}, errors.Wrapf(err, "box %d", i)
		}
	}
	return total, nil
}

// attachedAmount returns the amount of denom that was paid. Exactly one
// positive coin of the configured denomination is accepted.
func attachedAmount(payment coin.Coins, denom string) (coin.Amount, error) {
	var paid coin.Coins
	for _, c := range payment {
		if c != nil && !c.IsZero() {
			paid = append(paid, c)
		}
	}
	switch len(paid) {
	case 0:
		return coin.Amount{}, errors.Wrap(ErrPaymentMissing, "no funds")
	case 1:
	default:
		return coin.Amount{}, errors.Wrap(ErrPaymentMissing, "multiple denominations")
	}
	if paid[0].Denom != denom {
		return coin.Amount{}, errors.Wrapf(ErrPaymentMissing, "want %s, got %s", denom, paid[0].Denom)
	}
	return paid[0].Amount, nil
}

// checkPayment ensures that the payment covers the funds of all boxes. It
// returns the total funds and the paid amount.
func checkPayment(specs []BoxSpec, payment coin.Coins, denom string) (needed, got coin.Amount, err error) {
	needed, err = sumFunds(specs)
	if err != nil {
		return needed, got, err
	}
	got, err = attachedAmount(payment, denom)
	if err != nil {
		return needed, got, err
	}
	if got.Cmp(needed) < 0 {
		return needed, got, &InsufficientFundsError{Got: got, Needed: needed}
	}
	return needed, got, nil
}

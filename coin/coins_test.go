package coin

import (
	"testing"

	"github.com/iov-one/junobox/errors"
	"github.com/iov-one/junobox/weavetest/assert"
)

func TestCombineCoins(t *testing.T) {
	cs, err := CombineCoins(
		NewCoin(5, "ujuno"),
		NewCoin(3, "uatom"),
		NewCoin(0, "uosmo"),
		NewCoin(2, "ujuno"),
	)
	assert.Nil(t, err)
	assert.Equal(t, "3uatom,7ujuno", cs.String())
	assert.Nil(t, cs.Validate())

	_, err = CombineCoins(NewCoin(1, "x"))
	assert.IsErr(t, errors.ErrCurrency, err)
}

func TestCoinsAddDoesNotModify(t *testing.T) {
	orig := Coins{NewCoinp(5, "ujuno")}
	res, err := orig.Add(NewCoin(5, "ujuno"))
	assert.Nil(t, err)
	assert.Equal(t, "10ujuno", res.String())
	assert.Equal(t, "5ujuno", orig.String())
}

func TestCoinsSubtract(t *testing.T) {
	cs := Coins{NewCoinp(3, "uatom"), NewCoinp(7, "ujuno")}

	cases := map[string]struct {
		sub     Coin
		want    string
		wantErr *errors.Error
	}{
		"partial":           {sub: NewCoin(2, "ujuno"), want: "3uatom,5ujuno"},
		"all of one":        {sub: NewCoin(3, "uatom"), want: "7ujuno"},
		"zero is noop":      {sub: NewCoin(0, "uosmo"), want: "3uatom,7ujuno"},
		"not enough":        {sub: NewCoin(8, "ujuno"), wantErr: errors.ErrAmount},
		"missing currency":  {sub: NewCoin(1, "uosmo"), wantErr: errors.ErrAmount},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			res, err := cs.Subtract(tc.sub)
			if tc.wantErr != nil {
				assert.IsErr(t, tc.wantErr, err)
				return
			}
			assert.Nil(t, err)
			assert.Equal(t, tc.want, res.String())
			// the source set is never modified
			assert.Equal(t, "3uatom,7ujuno", cs.String())
		})
	}
}

func TestCoinsContains(t *testing.T) {
	cs := Coins{NewCoinp(3, "uatom"), NewCoinp(7, "ujuno")}

	assert.Equal(t, true, cs.Contains(NewCoin(7, "ujuno")))
	assert.Equal(t, true, cs.Contains(NewCoin(1, "uatom")))
	assert.Equal(t, false, cs.Contains(NewCoin(8, "ujuno")))
	assert.Equal(t, false, cs.Contains(NewCoin(1, "uosmo")))
	assert.Equal(t, true, cs.Contains(NewCoin(0, "uosmo")))

	assert.Equal(t, true, cs.Get("ujuno").Equals(NewCoin(7, "ujuno")))
	assert.Equal(t, true, cs.Get("uosmo").IsZero())
}

func TestCoinsValidate(t *testing.T) {
	cases := map[string]struct {
		coins   Coins
		wantErr *errors.Error
	}{
		"empty":      {coins: nil},
		"normalized": {coins: Coins{NewCoinp(1, "uatom"), NewCoinp(1, "ujuno")}},
		"not sorted": {coins: Coins{NewCoinp(1, "ujuno"), NewCoinp(1, "uatom")}, wantErr: errors.ErrState},
		"duplicated": {coins: Coins{NewCoinp(1, "ujuno"), NewCoinp(1, "ujuno")}, wantErr: errors.ErrState},
		"zero coin":  {coins: Coins{NewCoinp(0, "ujuno")}, wantErr: errors.ErrState},
		"nil coin":   {coins: Coins{nil}, wantErr: errors.ErrEmpty},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := tc.coins.Validate()
			if tc.wantErr == nil {
				assert.Nil(t, err)
				return
			}
			if !errors.IsAny(tc.wantErr, err) {
				t.Fatalf("want %q error, got %+v", tc.wantErr, err)
			}
		})
	}
}

func TestNormalizeCoins(t *testing.T) {
	cases := map[string]struct {
		coins Coins
		want  string
	}{
		"nil":              {coins: nil, want: ""},
		"single zero":      {coins: Coins{NewCoinp(0, "ujuno")}, want: ""},
		"two unsorted":     {coins: Coins{NewCoinp(1, "ujuno"), NewCoinp(2, "uatom")}, want: "2uatom,1ujuno"},
		"duplicates":       {coins: Coins{NewCoinp(1, "ujuno"), NewCoinp(2, "ujuno")}, want: "3ujuno"},
		"already in order": {coins: Coins{NewCoinp(2, "uatom"), NewCoinp(1, "ujuno")}, want: "2uatom,1ujuno"},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := NormalizeCoins(tc.coins)
			assert.Nil(t, err)
			assert.Equal(t, tc.want, got.String())
			assert.Nil(t, got.Validate())
		})
	}
}

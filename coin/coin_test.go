package coin

import (
	"testing"

	"github.com/iov-one/junobox/errors"
	"github.com/iov-one/junobox/weavetest/assert"
	. "github.com/smartystreets/goconvey/convey"
)

func TestCoinArithmetic(t *testing.T) {
	Convey("Given coins of the same denomination", t, func() {
		a := NewCoin(1000, "ujuno")
		b := NewCoin(250, "ujuno")

		Convey("they can be added", func() {
			sum, err := a.Add(b)
			So(err, ShouldBeNil)
			So(sum.Equals(NewCoin(1250, "ujuno")), ShouldBeTrue)
		})

		Convey("the smaller can be subtracted from the larger", func() {
			diff, err := a.Subtract(b)
			So(err, ShouldBeNil)
			So(diff.Equals(NewCoin(750, "ujuno")), ShouldBeTrue)

			_, err = b.Subtract(a)
			So(errors.ErrAmount.Is(err), ShouldBeTrue)
		})

		Convey("they compare by value", func() {
			So(a.Compare(b), ShouldEqual, 1)
			So(a.IsGTE(b), ShouldBeTrue)
			So(b.IsGTE(a), ShouldBeFalse)
			So(a.IsGTE(a), ShouldBeTrue)
		})
	})

	Convey("Given coins of different denominations", t, func() {
		a := NewCoin(1000, "ujuno")
		b := NewCoin(1000, "uatom")

		Convey("they cannot be combined", func() {
			_, err := a.Add(b)
			So(errors.ErrCurrency.Is(err), ShouldBeTrue)
			_, err = a.Subtract(b)
			So(errors.ErrCurrency.Is(err), ShouldBeTrue)
		})

		Convey("none is greater or equal to the other", func() {
			So(a.IsGTE(b), ShouldBeFalse)
			So(b.IsGTE(a), ShouldBeFalse)
		})
	})

	Convey("A zero coin without denomination is neutral", t, func() {
		a := NewCoin(5, "ujuno")
		sum, err := a.Add(Coin{})
		So(err, ShouldBeNil)
		So(sum.Equals(a), ShouldBeTrue)
	})
}

func TestCoinValidate(t *testing.T) {
	cases := map[string]struct {
		coin    Coin
		wantErr *errors.Error
	}{
		"valid":              {coin: NewCoin(1, "ujuno")},
		"zero is valid":      {coin: NewCoin(0, "ujuno")},
		"ibc denomination":   {coin: NewCoin(1, "ibc/27394FB092D2ECCD56123C74F36E4C1F926001CEADA9CA97EA622B25F41E5EB2")},
		"missing denom":      {coin: NewCoin(1, ""), wantErr: errors.ErrCurrency},
		"too short denom":    {coin: NewCoin(1, "uj"), wantErr: errors.ErrCurrency},
		"denom with a space": {coin: NewCoin(1, "u juno"), wantErr: errors.ErrCurrency},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := tc.coin.Validate()
			if tc.wantErr == nil {
				assert.Nil(t, err)
				return
			}
			assert.IsErr(t, tc.wantErr, err)
		})
	}
}

func TestParseHumanFormat(t *testing.T) {
	cases := map[string]struct {
		raw     string
		want    Coin
		wantErr *errors.Error
	}{
		"no space":          {raw: "1000ujuno", want: NewCoin(1000, "ujuno")},
		"surrounding space": {raw: " 7ujuno ", want: NewCoin(7, "ujuno")},
		"with space":        {raw: "300 ujuno", want: NewCoin(300, "ujuno")},
		"missing denom":     {raw: "300", wantErr: errors.ErrInput},
		"fractional amount": {raw: "1.5ujuno", wantErr: errors.ErrInput},
		"negative amount":   {raw: "-1ujuno", wantErr: errors.ErrInput},
		"invalid denom":     {raw: "5 uj", wantErr: errors.ErrCurrency},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := ParseHumanFormat(tc.raw)
			if tc.wantErr != nil {
				assert.IsErr(t, tc.wantErr, err)
				return
			}
			assert.Nil(t, err)
			assert.Equal(t, true, tc.want.Equals(got))
		})
	}
}

func TestCoinCodec(t *testing.T) {
	coins := []Coin{
		NewCoin(0, "ujuno"),
		NewCoin(1000, "ujuno"),
		{Denom: "ujuno", Amount: MustParseAmount(maxAmount)},
	}
	for _, c := range coins {
		raw, err := c.Marshal()
		assert.Nil(t, err)
		var got Coin
		assert.Nil(t, got.Unmarshal(raw))
		assert.Equal(t, true, c.Equals(got))
	}
}

package weavetest

import (
	"context"
	"reflect"
	"testing"

	"github.com/iov-one/junobox/errors"
	"github.com/iov-one/junobox/weave"
)

func TestAuth(t *testing.T) {
	conds := []weave.Condition{NewCondition(), NewCondition(), NewCondition()}

	cases := map[string]struct {
		auth Auth
		want []weave.Condition
	}{
		"no signers": {
			auth: Auth{},
			want: nil,
		},
		"single signer": {
			auth: Auth{Signer: conds[0]},
			want: conds[:1],
		},
		"signers only": {
			auth: Auth{Signers: conds},
			want: conds,
		},
		"signer is listed after signers": {
			auth: Auth{Signer: conds[2], Signers: conds[:2]},
			want: conds,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got := tc.auth.GetConditions(context.Background())
			if !reflect.DeepEqual(tc.want, got) {
				t.Fatalf("want %v conditions, got %v", tc.want, got)
			}
			for i, c := range tc.want {
				if !tc.auth.HasAddress(nil, c.Address()) {
					t.Errorf("condition %d (%s) address should be present", i, c)
				}
			}
			if tc.auth.HasAddress(nil, NewCondition().Address()) {
				t.Fatal("random condition must not be present")
			}
		})
	}
}

func TestCtxAuth(t *testing.T) {
	conds := []weave.Condition{NewCondition(), NewCondition()}

	a := CtxAuth{Key: "auth"}
	other := CtxAuth{Key: "other"}

	empty := context.Background()
	if got := a.GetConditions(empty); got != nil {
		t.Fatalf("want nil, got %+v", got)
	}

	ctx := a.SetConditions(empty, conds...)
	if got := a.GetConditions(ctx); !reflect.DeepEqual(got, conds) {
		t.Fatalf("unexpected conditions: %v", got)
	}
	if !a.HasAddress(ctx, conds[1].Address()) {
		t.Fatal("condition address should be present")
	}
	if a.HasAddress(ctx, NewCondition().Address()) {
		t.Fatal("random condition must not be present")
	}
	if other.HasAddress(ctx, conds[0].Address()) {
		t.Fatal("conditions set with a different key must not be visible")
	}
}

func TestSequenceID(t *testing.T) {
	cases := map[uint64][]byte{
		1:      {0, 0, 0, 0, 0, 0, 0, 1},
		123:    {0, 0, 0, 0, 0, 0, 0, 123},
		123123: {0, 0, 0, 0, 0, 1, 224, 243},
	}
	for id, want := range cases {
		if got := SequenceID(id); !reflect.DeepEqual(want, got) {
			t.Fatalf("id=%d, want %d got %d", id, want, got)
		}
	}
}

func TestDecoratorAndHandlerCounts(t *testing.T) {
	var (
		d Decorator
		h Handler
	)
	wrapped := Decorate(&h, &d)

	_, err := wrapped.Check(nil, nil, nil)
	if err != nil {
		t.Fatalf("check: %s", err)
	}
	_, err = wrapped.Deliver(nil, nil, nil)
	if err != nil {
		t.Fatalf("deliver: %s", err)
	}
	assertCounts(t, &d, 1, 1)
	assertCounts(t, &h, 1, 1)

	// A failing decorator never calls the handler but is still counted.
	d.CheckErr = errors.ErrUnauthorized
	d.DeliverErr = errors.ErrNotFound
	if _, err := wrapped.Check(nil, nil, nil); !errors.ErrUnauthorized.Is(err) {
		t.Fatalf("want unauthorized, got %v", err)
	}
	if _, err := wrapped.Deliver(nil, nil, nil); !errors.ErrNotFound.Is(err) {
		t.Fatalf("want not found, got %v", err)
	}
	assertCounts(t, &d, 2, 2)
	assertCounts(t, &h, 1, 1)
}

func TestHandlerResult(t *testing.T) {
	h := Handler{
		CheckResult:   weave.CheckResult{Data: []byte("box"), GasAllocated: 5},
		DeliverResult: weave.DeliverResult{Data: []byte("ids"), GasUsed: 824},
	}
	cres, err := h.Check(nil, nil, nil)
	if err != nil || !reflect.DeepEqual(&h.CheckResult, cres) {
		t.Fatalf("got check result: %+v, %v", cres, err)
	}
	dres, err := h.Deliver(nil, nil, nil)
	if err != nil || !reflect.DeepEqual(&h.DeliverResult, dres) {
		t.Fatalf("got deliver result: %+v, %v", dres, err)
	}

	h.DeliverErr = errors.ErrState
	if _, err := h.Deliver(nil, nil, nil); !errors.ErrState.Is(err) {
		t.Fatalf("want state error, got %v", err)
	}
}

type callCounter interface {
	CheckCallCount() int
	DeliverCallCount() int
	CallCount() int
}

func assertCounts(t *testing.T, c callCounter, wantCheck, wantDeliver int) {
	t.Helper()
	if got := c.CheckCallCount(); got != wantCheck {
		t.Errorf("want %d checks, got %d", wantCheck, got)
	}
	if got := c.DeliverCallCount(); got != wantDeliver {
		t.Errorf("want %d delivers, got %d", wantDeliver, got)
	}
	if got := c.CallCount(); got != wantCheck+wantDeliver {
		t.Errorf("want %d total, got %d", wantCheck+wantDeliver, got)
	}
}

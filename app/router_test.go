package app

import (
	"context"
	"testing"

	"github.com/iov-one/junobox/errors"
	"github.com/iov-one/junobox/store"
	"github.com/iov-one/junobox/weavetest"
	"github.com/stretchr/testify/require"
)

func TestRouterDispatch(t *testing.T) {
	r := NewRouter()
	create := &weavetest.Handler{}
	open := &weavetest.Handler{}
	r.Handle(&weavetest.Msg{RoutePath: "boxes/create"}, create)
	r.Handle(&weavetest.Msg{RoutePath: "boxes/open"}, open)

	ctx := context.Background()
	db := store.MemStore()

	_, err := r.Deliver(ctx, db, &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "boxes/open"}})
	require.NoError(t, err)
	_, err = r.Check(ctx, db, &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "boxes/open"}})
	require.NoError(t, err)
	require.Equal(t, 2, open.CallCount())
	require.Equal(t, 0, create.CallCount())

	_, err = r.Deliver(ctx, db, &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "boxes/burn"}})
	require.True(t, errors.ErrNotFound.Is(err))

	_, err = r.Check(ctx, db, &weavetest.Tx{})
	require.True(t, errors.ErrMsg.Is(err))

	_, err = r.Check(ctx, db, &weavetest.Tx{Err: errors.ErrInput})
	require.True(t, errors.ErrInput.Is(err))
}

func TestRouterRegistration(t *testing.T) {
	r := NewRouter()
	r.Handle(&weavetest.Msg{RoutePath: "boxes/create"}, &weavetest.Handler{})

	require.Panics(t, func() {
		r.Handle(&weavetest.Msg{RoutePath: "boxes/create"}, &weavetest.Handler{})
	})
	require.Panics(t, func() {
		r.Handle(&weavetest.Msg{RoutePath: "boxes open"}, &weavetest.Handler{})
	})
}

func TestChainDecorators(t *testing.T) {
	first := &weavetest.Decorator{}
	second := &weavetest.Decorator{}
	failing := &weavetest.Decorator{DeliverErr: errors.ErrUnauthorized}
	h := &weavetest.Handler{}

	var nilDecorator *weavetest.Decorator
	stack := ChainDecorators(first, nilDecorator).Chain(failing, second).WithHandler(h)

	ctx := context.Background()
	tx := &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "boxes/open"}}

	_, err := stack.Check(ctx, store.MemStore(), tx)
	require.NoError(t, err)
	require.Equal(t, 1, first.CheckCallCount())
	require.Equal(t, 1, second.CheckCallCount())
	require.Equal(t, 1, h.CheckCallCount())

	_, err = stack.Deliver(ctx, store.MemStore(), tx)
	require.True(t, errors.ErrUnauthorized.Is(err))
	require.Equal(t, 1, first.DeliverCallCount())
	require.Equal(t, 1, failing.DeliverCallCount())
	require.Equal(t, 0, second.DeliverCallCount())
	require.Equal(t, 0, h.DeliverCallCount())
}

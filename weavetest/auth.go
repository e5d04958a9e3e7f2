package weavetest

import (
	"context"
	"fmt"

	"github.com/iov-one/junobox/weave"
)

// Auth is a mock implementing x.Authenticator interface.
//
// It authenticates all referenced conditions. Signer and Signers can be
// combined, all of them are considered.
type Auth struct {
	// Signer is a convenience attribute for the single signer case.
	Signer weave.Condition

	// Signers represents an authentication of multiple signers.
	Signers []weave.Condition
}

// GetConditions returns Signers followed by Signer.
func (a *Auth) GetConditions(weave.Context) []weave.Condition {
	if a.Signer != nil {
		return append(a.Signers, a.Signer)
	}
	return a.Signers
}

// HasAddress returns true if any of the signers has given address.
func (a *Auth) HasAddress(ctx weave.Context, addr weave.Address) bool {
	return containsAddress(a.GetConditions(ctx), addr)
}

// CtxAuth is a mock implementing x.Authenticator interface.
//
// Conditions are stored in and retrieved from the context.
type CtxAuth struct {
	// Key used to set and retrieve conditions from the context.
	Key string
}

// SetConditions returns a context with given conditions attached.
func (a *CtxAuth) SetConditions(ctx weave.Context, conds ...weave.Condition) weave.Context {
	return context.WithValue(ctx, ctxAuthKey(a.Key), conds)
}

// GetConditions returns conditions previously set with SetConditions.
func (a *CtxAuth) GetConditions(ctx weave.Context) []weave.Condition {
	val := ctx.Value(ctxAuthKey(a.Key))
	if val == nil {
		return nil
	}
	conds, ok := val.([]weave.Condition)
	if !ok {
		panic(fmt.Sprintf("instead of []weave.Condition got %T", val))
	}
	return conds
}

// HasAddress returns true if any of the context conditions has given
// address.
func (a *CtxAuth) HasAddress(ctx weave.Context, addr weave.Address) bool {
	return containsAddress(a.GetConditions(ctx), addr)
}

type ctxAuthKey string

func containsAddress(conds []weave.Condition, addr weave.Address) bool {
	for _, c := range conds {
		if addr.Equals(c.Address()) {
			return true
		}
	}
	return false
}

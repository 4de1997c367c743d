// SPDX-FileCopyrightText: 2024 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package lambdasecret

import "net/http"

// Constructor applies clientside middleware to a Client.
type Constructor func(Client) Client

// Chain is an immutable sequence of constructors.  The extension package uses
// a Chain to decorate the client that executes each individual attempt.
type Chain struct {
	c []Constructor
}

// NewChain creates a chain from a sequence of constructors.  The constructors
// are always applied in the order presented here.
func NewChain(ctors ...Constructor) (c Chain) {
	if len(ctors) > 0 {
		c.c = make([]Constructor, len(ctors))
		copy(c.c, ctors)
	}

	return
}

// Append adds additional Constructors to this chain, and returns the new chain.
// This chain is not modified.  If more has zero length, this chain is returned.
func (c Chain) Append(more ...Constructor) (nc Chain) {
	if len(more) > 0 {
		nc.c = make([]Constructor, 0, len(c.c)+len(more))
		nc.c = append(nc.c, c.c...)
		nc.c = append(nc.c, more...)
	} else {
		nc = c
	}

	return
}

// Len returns the number of constructors in this chain.
func (c Chain) Len() int {
	return len(c.c)
}

// Then applies this chain to next.  The first constructor is outermost, so it
// sees each request first.  If next is nil, http.DefaultClient is decorated.
func (c Chain) Then(next Client) Client {
	if next == nil {
		next = http.DefaultClient
	}

	// apply in reverse order, so that the order of
	// execution matches the order supplied to this chain
	for i := len(c.c) - 1; i >= 0; i-- {
		next = c.c[i](next)
	}

	return next
}

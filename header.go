// SPDX-FileCopyrightText: 2024 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package lambdasecret

import "net/http"

// TokenHeader is the request header the secrets extension uses to
// authenticate callers.  Its value is the function's session token.
const TokenHeader = "X-Aws-Parameters-Secrets-Token"

// emptyHeader is the canonical, immutable empty Header
var emptyHeader = Header{}

// Header is a precomputed, immutable set of request headers.  Rather than
// a map, a simple list of headers is maintained in canonicalized form so that
// the same Header can be stamped onto every attempt of a request cheaply.
type Header struct {
	names  []string
	values [][]string
}

// NewHeader creates an immutable, preprocessed Header given an
// http.Header
func NewHeader(v http.Header) Header {
	if len(v) == 0 {
		return emptyHeader
	}

	h := Header{
		names:  make([]string, 0, len(v)),
		values: make([][]string, 0, len(v)),
	}

	for name, values := range v {
		h.names = append(h.names, http.CanonicalHeaderKey(name))
		h.values = append(h.values, append([]string(nil), values...))
	}

	return h
}

// NewHeaders takes a variadic list of values and interprets them as alternating
// name/value pairs.  If v contains an odd number of strings, the last string is
// interpreted as a header with a blank value.
//
// A blank value is kept, not dropped: the extension expects the token header
// to be present even when no session token is available.
func NewHeaders(v ...string) Header {
	if len(v) == 0 {
		return emptyHeader
	}

	h := make(http.Header)
	var i, j int
	for i, j = 0, 1; j < len(v); i, j = i+2, j+2 {
		h.Add(v[i], v[j])
	}

	if i < len(v) {
		h.Add(v[i], "")
	}

	return NewHeader(h)
}

// TokenHeaders is a convenience for NewHeaders(TokenHeader, token).
func TokenHeaders(token string) Header {
	return NewHeaders(TokenHeader, token)
}

// Len returns the number of distinct header names.
func (h Header) Len() int {
	return len(h.names)
}

// SetTo overwrites headers in the destination with the ones defined by
// this Header.
func (h Header) SetTo(dst http.Header) {
	for i, name := range h.names {
		// the names are already canonicalized
		dst[name] = append([]string(nil), h.values[i]...)
	}
}

// Then decorates a Client so that these headers are set on each request
// before it is sent.  If this Header is empty, next is returned as is.
// If next is nil, http.DefaultClient is decorated.
func (h Header) Then(next Client) Client {
	if next == nil {
		next = http.DefaultClient
	}

	if len(h.names) == 0 {
		return next
	}

	return ClientFunc(func(request *http.Request) (*http.Response, error) {
		if request.Header == nil {
			request.Header = make(http.Header)
		}

		h.SetTo(request.Header)
		return next.Do(request)
	})
}

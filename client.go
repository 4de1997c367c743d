// SPDX-FileCopyrightText: 2024 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package lambdasecret

import (
	"io"
	"net/http"
)

// MaxErrorBody is the maximum number of bytes read from an error response
// body when classifying a failed attempt.
const MaxErrorBody = 64 * 1024

// Client is the canonical interface implemented by *http.Client
type Client interface {
	Do(*http.Request) (*http.Response, error)
}

var _ Client = (*http.Client)(nil)

// ClientFunc is an HTTP client function type
type ClientFunc func(*http.Request) (*http.Response, error)

// Do fulfills the Client interface and permits this function
// to be used like an HTTP client.
func (f ClientFunc) Do(request *http.Request) (*http.Response, error) {
	return f(request)
}

var _ Client = ClientFunc(nil)

// Cleanup is a utility function for ensuring that a client response's
// Body is drained and closed.  This function does not set the Body to nil.
//
// If either the response or the response.Body field is nil, this function
// does nothing.
func Cleanup(r *http.Response) {
	if r != nil && r.Body != nil {
		io.Copy(io.Discard, r.Body) //nolint:errcheck
		r.Body.Close()
	}
}

// ReadErrorBody reads at most MaxErrorBody bytes of the response body as text
// and then cleans up the response.  A body that cannot be read yields the
// text read so far, which may be empty.
func ReadErrorBody(r *http.Response) string {
	if r == nil || r.Body == nil {
		return ""
	}

	defer Cleanup(r)
	b, _ := io.ReadAll(io.LimitReader(r.Body, MaxErrorBody))
	return string(b)
}

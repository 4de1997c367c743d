// SPDX-FileCopyrightText: 2024 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package lambdasecret

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// Kind classifies the failure carried by an Error.  Callers branch on Kind
// rather than on error text.
type Kind int

const (
	// KindUnknown is the zero value.  KindOf returns it for errors that did not
	// originate in this module.  It is also the Kind of a transport error that
	// could not be classified, which is never retried.
	KindUnknown Kind = iota

	// KindTimeout means an attempt exceeded its deadline.  Retriable.
	KindTimeout

	// KindRetriableHTTP means the server answered with a status that is worth
	// retrying, e.g. 503 or the extension's "not ready" 400.
	KindRetriableHTTP

	// KindNonRetriableHTTP means the server answered with a status that will
	// not change on retry, e.g. 404.
	KindNonRetriableHTTP

	// KindTransport is a low-level connection error, e.g. a refused connection.
	// Retriable.
	KindTransport

	// KindExhausted means every allowed attempt failed with a retriable error.
	// The last attempt's error is wrapped.
	KindExhausted

	// KindShape means a successful response did not have the expected fields.
	KindShape

	// KindParse means a secret that looked like JSON could not be decoded.
	KindParse

	// KindCanceled means the caller's context ended the operation.
	KindCanceled

	// KindInternal indicates a broken invariant in the retry loop.
	KindInternal
)

var kindNames = [...]string{
	KindUnknown:          "unknown",
	KindTimeout:          "timeout",
	KindRetriableHTTP:    "retriable http",
	KindNonRetriableHTTP: "non-retriable http",
	KindTransport:        "transport",
	KindExhausted:        "exhausted",
	KindShape:            "shape",
	KindParse:            "parse",
	KindCanceled:         "canceled",
	KindInternal:         "internal",
}

// String returns a short, human-readable name for this Kind.
func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}

	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Retriable tests if failures of this kind may succeed on a later attempt.
func (k Kind) Retriable() bool {
	switch k {
	case KindTimeout, KindRetriableHTTP, KindTransport:
		return true

	default:
		return false
	}
}

// Error is the error type returned by every package in this module.
type Error struct {
	// Kind is the failure classification.  This field is required.
	Kind Kind

	// Status is the HTTP status code associated with this failure, if any.
	Status int

	// Attempt is the 1-based attempt that produced this failure.  Zero
	// means the failure did not come from an HTTP attempt.
	Attempt int

	// Message overrides the default text for this error.
	Message string

	// Err is the optional cause of this error.
	Err error
}

// Unwrap produces the cause of this error
func (e *Error) Unwrap() error {
	return e.Err
}

// Error fulfills the error interface.
func (e *Error) Error() string {
	var o strings.Builder
	switch {
	case len(e.Message) > 0:
		o.WriteString(e.Message)

	case e.Kind == KindRetriableHTTP:
		o.WriteString("HTTP ")
		o.WriteString(strconv.Itoa(e.Status))

	case e.Kind == KindNonRetriableHTTP:
		o.WriteString("non-retriable HTTP error: ")
		o.WriteString(strconv.Itoa(e.Status))

	case e.Kind == KindExhausted:
		fmt.Fprintf(&o, "retries exhausted after %d attempt(s)", e.Attempt)

	default:
		o.WriteString(e.Kind.String())
		o.WriteString(" error")
	}

	if e.Err != nil {
		o.WriteString(": ")
		o.WriteString(e.Err.Error())
	}

	return o.String()
}

// StatusCode returns the Status field, or http.StatusInternalServerError if that field
// is less than 100.
func (e *Error) StatusCode() int {
	if e.Status < 100 {
		return http.StatusInternalServerError
	}

	return e.Status
}

// Is allows errors.Is to match on Kind.  A target *Error with only its Kind set
// matches any *Error of the same Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	return t.Kind == e.Kind && t.Status == 0 && t.Attempt == 0 && t.Err == nil && len(t.Message) == 0
}

// Sentinel values usable with errors.Is.
var (
	ErrTimeout          = &Error{Kind: KindTimeout}
	ErrRetriableHTTP    = &Error{Kind: KindRetriableHTTP}
	ErrNonRetriableHTTP = &Error{Kind: KindNonRetriableHTTP}
	ErrTransport        = &Error{Kind: KindTransport}
	ErrExhausted        = &Error{Kind: KindExhausted}
	ErrShape            = &Error{Kind: KindShape}
	ErrParse            = &Error{Kind: KindParse}
	ErrCanceled         = &Error{Kind: KindCanceled}
)

// KindOf returns the Kind of the outermost *Error in err's chain, or KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}

	return KindUnknown
}

// StatusCode returns the HTTP status carried by the *Error in err's chain.
// If err carries no *Error, or that *Error has no status, this function returns 0.
func StatusCode(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Status
	}

	return 0
}

// IsRetriable tests if err is an *Error whose Kind is retriable.
func IsRetriable(err error) bool {
	return KindOf(err).Retriable()
}

// IsTemporary tests if the given error is marked as a temporary error.
// This method returns true if the given error or what the error wraps
// exposes a Temporary() bool method that returns true.
//
// This function uses errors.As to traverse the error wrappers.
//
// See: https://pkg.go.dev/net/#Error
func IsTemporary(err error) bool {
	type temporary interface {
		Temporary() bool
	}

	var te temporary
	if errors.As(err, &te) {
		return te.Temporary()
	}

	return false
}

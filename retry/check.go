// SPDX-FileCopyrightText: 2024 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package retry

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/url"
	"regexp"
	"syscall"

	"github.com/xmidt-org/lambdasecret"
)

// Reason describes why an attempt was retried.  It is used as a log field
// and as a metric label.
type Reason string

const (
	// ReasonNone means the attempt should not be retried.
	ReasonNone Reason = ""

	// ReasonStatus is a retry triggered by a transient HTTP status code.
	ReasonStatus Reason = "status"

	// ReasonNotReady is a retry triggered by the extension reporting that it is
	// not yet ready to serve traffic.
	ReasonNotReady Reason = "not_ready"

	// ReasonTimeout is a retry triggered by the per-attempt deadline.
	ReasonTimeout Reason = "timeout"

	// ReasonTransport is a retry triggered by a connection-level error.
	ReasonTransport Reason = "transport"
)

// Check classifies an HTTP response with a non-2xx status.  The body is the
// (possibly truncated) response text.  Implementations return ReasonNone for
// responses that should fail the operation immediately.
type Check func(status int, body string) Reason

// notReady matches the body the extension sends with a 400 while it is still
// initializing.
var notReady = regexp.MustCompile(`(?i)not\s+ready.*traffic`)

// DefaultCheck is the Check used if none is supplied.
//
// This default implementation retries under the following conditions:
//
//   - The status code is one of 429, 500, 502, 503, or 504
//   - The status code is 400 and the body says the extension is not ready
//     to serve traffic, which happens while the extension is starting up
//
// In all other cases, this default function returns ReasonNone.
func DefaultCheck(status int, body string) Reason {
	switch status {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return ReasonStatus

	case http.StatusBadRequest:
		if notReady.MatchString(body) {
			return ReasonNotReady
		}
	}

	return ReasonNone
}

// CheckError classifies an error returned from a client's Do method.  The
// attemptCtx is the context of the failed attempt, which allows a timeout to
// be told apart from other failures.
type CheckError func(attemptCtx context.Context, err error) Reason

// DefaultCheckError is the CheckError used if none is supplied.
//
// An error is retried if the attempt's own deadline expired, as reported by
// context.Cause on attemptCtx, or if it is a connection-level failure:  a
// net.Error, a refused or reset connection, a broken pipe, an unexpected EOF,
// or any error marked as temporary.
//
// Anything else, including context.Canceled, is not retried.
func DefaultCheckError(attemptCtx context.Context, err error) Reason {
	if err == nil {
		return ReasonNone
	}

	if errors.Is(context.Cause(attemptCtx), context.DeadlineExceeded) {
		return ReasonTimeout
	}

	if errors.Is(err, context.Canceled) {
		return ReasonNone
	}

	// *url.Error is itself a net.Error, so classify what it wraps instead
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Err != nil {
		err = urlErr.Err
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return ReasonTimeout
		}

		return ReasonTransport
	}

	switch {
	case errors.Is(err, syscall.ECONNREFUSED),
		errors.Is(err, syscall.ECONNRESET),
		errors.Is(err, syscall.EPIPE),
		errors.Is(err, io.EOF),
		errors.Is(err, io.ErrUnexpectedEOF),
		lambdasecret.IsTemporary(err):
		return ReasonTransport
	}

	return ReasonNone
}

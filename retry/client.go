// SPDX-FileCopyrightText: 2024 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package retry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/xmidt-org/lambdasecret"
	"go.uber.org/zap"
)

// Client is a lambdasecret.Client that retries HTTP transactions with a
// per-attempt timeout and full jitter backoff.
//
// A Client is immutable once created and is safe for concurrent use.  Each
// call to Do owns its own attempt counter, timers, and contexts.
type Client struct {
	// next is the decorated client used to execute HTTP transactions
	next lambdasecret.Client

	timeout     time.Duration
	attempts    int
	baseBackoff time.Duration

	check      Check
	checkError CheckError
	random     Random
	timer      Timer
	logger     *zap.Logger
	metrics    *Metrics
}

// NewClient constructs a Client from a configuration.  The configuration is
// validated first, and any error wraps ErrInvalidConfig.
//
// The next instance is used to actually execute HTTP transactions.  If next
// is nil, http.DefaultClient is used.
func NewClient(cfg Config, next lambdasecret.Client) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if next == nil {
		next = http.DefaultClient
	}

	c := &Client{
		next:        next,
		timeout:     cfg.Timeout,
		attempts:    cfg.Attempts,
		baseBackoff: cfg.BaseBackoff,
		check:       cfg.Check,
		checkError:  cfg.CheckError,
		random:      cfg.Random,
		timer:       cfg.Timer,
		logger:      cfg.Logger,
		metrics:     cfg.Metrics,
	}

	if c.check == nil {
		c.check = DefaultCheck
	}

	if c.checkError == nil {
		c.checkError = DefaultCheckError
	}

	if c.random == nil {
		c.random = defaultRandom{}
	}

	if c.timer == nil {
		c.timer = DefaultTimer
	}

	if c.logger == nil {
		c.logger = zap.NewNop()
	}

	return c, nil
}

// Attempts returns the maximum number of attempts this Client will make,
// including the initial attempt.  This method never returns a value less than 1.
func (c *Client) Attempts() int {
	return c.attempts
}

// Do makes up to Attempts tries to execute the given request.  Each try is
// bounded by the configured timeout.  The request's own context bounds the
// whole operation:  once it is done, Do returns an error of KindCanceled
// without further attempts.
//
// The timeout covers each attempt until its response headers arrive.  Reading
// a body is bounded only by the request's own context, so a slow body is never
// cut short by the attempt's deadline.
//
// On success, the 2xx response is returned with its Body intact.  Callers
// must close the Body, which also releases the attempt's context.
//
// On failure, the returned error is always a *lambdasecret.Error and the
// response is nil.  A request with a body can only be retried if its GetBody
// field is set.
func (c *Client) Do(original *http.Request) (*http.Response, error) {
	ctx := original.Context()
	state := &State{
		attempt:  1,
		attempts: c.attempts,
	}

	for n := 1; n <= c.attempts; n++ {
		if err := ctx.Err(); err != nil {
			return nil, canceled(n, err)
		}

		response, a := c.try(ctx, original, state, n)
		c.metrics.observeAttempt(a)

		switch a.Outcome {
		case OutcomeSuccess:
			return response, nil

		case OutcomeTerminal:
			return nil, a.Err
		}

		if n == c.attempts {
			return nil, &lambdasecret.Error{
				Kind:    lambdasecret.KindExhausted,
				Status:  a.Status,
				Attempt: n,
				Err:     a.Err,
			}
		}

		// the attempt that just failed determines the exponent
		wait := FullJitter(c.baseBackoff, n, c.random)
		c.logRetry(a, wait)
		c.metrics.observeRetry(a.Reason, wait)

		if err := c.wait(ctx, wait); err != nil {
			return nil, canceled(n, err)
		}

		state.next(a)
	}

	return nil, &lambdasecret.Error{
		Kind:    lambdasecret.KindInternal,
		Message: "retry loop exited without a result",
	}
}

// try executes a single attempt under its own deadline and classifies the result.
func (c *Client) try(ctx context.Context, original *http.Request, state *State, n int) (*http.Response, Attempt) {
	attemptCtx, cancelCause := context.WithCancelCause(withState(ctx, state))
	deadline := time.AfterFunc(c.timeout, func() {
		cancelCause(context.DeadlineExceeded)
	})

	cancel := func() {
		deadline.Stop()
		cancelCause(nil)
	}

	request := original.WithContext(attemptCtx)
	if n > 1 && original.GetBody != nil {
		body, err := original.GetBody()
		if err != nil {
			cancel()
			return nil, Attempt{
				Number:  n,
				Outcome: OutcomeTerminal,
				Err: &lambdasecret.Error{
					Kind:    lambdasecret.KindInternal,
					Attempt: n,
					Message: "GetBody returned an error",
					Err:     err,
				},
			}
		}

		request.Body = body
	}

	response, err := c.next.Do(request)
	if err != nil {
		cancel()
		lambdasecret.Cleanup(response)
		return nil, c.classifyError(ctx, attemptCtx, n, err)
	}

	// the headers are in, so the deadline no longer applies
	if !deadline.Stop() {
		cancel()
		lambdasecret.Cleanup(response)
		return nil, c.classifyError(ctx, attemptCtx, n, context.Cause(attemptCtx))
	}

	if response.StatusCode >= 200 && response.StatusCode < 300 {
		response.Body = &cancelBody{ReadCloser: response.Body, cancel: cancel}
		return response, Attempt{
			Number:  n,
			Outcome: OutcomeSuccess,
			Status:  response.StatusCode,
		}
	}

	body := lambdasecret.ReadErrorBody(response)
	cancel()

	status := response.StatusCode
	reason := c.check(status, body)
	if reason == ReasonNone {
		return nil, Attempt{
			Number:  n,
			Outcome: OutcomeTerminal,
			Status:  status,
			Err: &lambdasecret.Error{
				Kind:    lambdasecret.KindNonRetriableHTTP,
				Status:  status,
				Attempt: n,
			},
		}
	}

	return nil, Attempt{
		Number:  n,
		Outcome: OutcomeRetriable,
		Reason:  reason,
		Status:  status,
		Err: &lambdasecret.Error{
			Kind:    lambdasecret.KindRetriableHTTP,
			Status:  status,
			Attempt: n,
		},
	}
}

// classifyError turns a transport error into an Attempt.  Cancellation of the
// whole operation takes precedence over the attempt's own classification.
func (c *Client) classifyError(ctx, attemptCtx context.Context, n int, err error) Attempt {
	if ctx.Err() != nil {
		return Attempt{
			Number:  n,
			Outcome: OutcomeTerminal,
			Err:     canceled(n, err),
		}
	}

	reason := c.checkError(attemptCtx, err)
	a := Attempt{
		Number:  n,
		Outcome: OutcomeRetriable,
		Reason:  reason,
	}

	kind := lambdasecret.KindTransport
	switch reason {
	case ReasonTimeout:
		kind = lambdasecret.KindTimeout
		if !errors.Is(err, context.DeadlineExceeded) && errors.Is(context.Cause(attemptCtx), context.DeadlineExceeded) {
			// the transport reports the attempt's cancellation, not why it happened
			err = fmt.Errorf("%w: %w", context.DeadlineExceeded, err)
		}

	case ReasonNone:
		// an error we can't classify is passed through as is
		kind = lambdasecret.KindUnknown
		a.Outcome = OutcomeTerminal
	}

	a.Err = &lambdasecret.Error{
		Kind:    kind,
		Attempt: n,
		Err:     err,
	}

	return a
}

// wait blocks for the backoff duration, or until ctx is done.
func (c *Client) wait(ctx context.Context, d time.Duration) error {
	tc, stop := c.timer(d)
	select {
	case <-ctx.Done():
		stop()
		return ctx.Err()

	case <-tc:
		return nil
	}
}

func (c *Client) logRetry(a Attempt, wait time.Duration) {
	fields := []zap.Field{
		zap.Int("attempt", a.Number),
		zap.Int("attempts", c.attempts),
		zap.Duration("wait", wait),
	}

	switch a.Reason {
	case ReasonStatus:
		c.logger.Info("transient status code, retrying", append(fields, zap.Int("status", a.Status))...)

	case ReasonNotReady:
		c.logger.Info("extension not ready, retrying", append(fields, zap.Int("status", a.Status))...)

	default:
		c.logger.Info("transport error, retrying", append(fields, zap.String("reason", string(a.Reason)), zap.Error(a.Err))...)
	}
}

func canceled(n int, err error) *lambdasecret.Error {
	return &lambdasecret.Error{
		Kind:    lambdasecret.KindCanceled,
		Attempt: n,
		Err:     err,
	}
}

// cancelBody releases an attempt's context once the caller is done with a
// successful response.
type cancelBody struct {
	io.ReadCloser
	cancel func()
}

func (cb *cancelBody) Close() error {
	err := cb.ReadCloser.Close()
	cb.cancel()
	return err
}

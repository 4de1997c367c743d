// SPDX-FileCopyrightText: 2024 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package extension

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"

	"github.com/xmidt-org/lambdasecret"
	"github.com/xmidt-org/lambdasecret/payload"
	"github.com/xmidt-org/lambdasecret/retry"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const (
	// Path is the extension's endpoint for Secrets Manager lookups.
	Path = "/secretsmanager/get"

	// MaxResponseBody is the most bytes read from a successful response.
	// Secrets are limited to 64KiB, so this leaves ample room for the envelope.
	MaxResponseBody = 1024 * 1024

	// TracerName is the name of the tracer that creates fetch spans.
	TracerName = "github.com/xmidt-org/lambdasecret/extension"

	// SpanName is the name of the span created for each fetch.
	SpanName = "lambdasecret.fetch"
)

// ErrResponseTooLarge is wrapped by the error returned when a successful
// response body exceeds MaxResponseBody.
var ErrResponseTooLarge = errors.New("response body exceeds " + strconv.Itoa(MaxResponseBody) + " bytes")

// Query parameters understood by the extension.
const (
	ParamSecretID     = "secretId"
	ParamVersionID    = "versionId"
	ParamVersionStage = "versionStage"
)

// Client fetches secrets from the extension.  A Client is immutable and safe
// for concurrent use.  Each fetch owns its own retry state.
type Client struct {
	base    url.URL
	next    lambdasecret.Client
	logger  *zap.Logger
	metrics *retry.Metrics
	tracer  trace.Tracer
}

// New creates a Client from a Config.  The only way this fails is an
// out-of-range port, which is reported as an error wrapping ErrInvalidConfig.
func New(cfg Config) (*Client, error) {
	port, err := cfg.port()
	if err != nil {
		return nil, err
	}

	c := &Client{
		base: url.URL{
			Scheme: "http",
			Host:   net.JoinHostPort(cfg.host(), strconv.Itoa(port)),
			Path:   Path,
		},
		next: lambdasecret.TokenHeaders(cfg.Token).Then(
			lambdasecret.NewChain(cfg.Middleware...).Then(cfg.HTTPClient),
		),
		logger:  cfg.Logger,
		metrics: cfg.Metrics,
	}

	if c.logger == nil {
		c.logger = zap.NewNop()
	}

	tp := cfg.TracerProvider
	if tp == nil {
		tp = otel.GetTracerProvider()
	}

	c.tracer = tp.Tracer(TracerName)
	return c, nil
}

// NewFromEnv is a convenience for ConfigFromEnv followed by New.
func NewFromEnv() (*Client, error) {
	cfg, err := ConfigFromEnv()
	if err != nil {
		return nil, err
	}

	return New(cfg)
}

// URL returns the lookup URL for the named secret.
func (c *Client) URL(name string, o Options) string {
	q := url.Values{ParamSecretID: {name}}
	if len(o.VersionID) > 0 {
		q.Set(ParamVersionID, o.VersionID)
	}

	if len(o.VersionStage) > 0 {
		q.Set(ParamVersionStage, o.VersionStage)
	}

	u := c.base
	u.RawQuery = q.Encode()
	return u.String()
}

// Fetch retrieves and interprets the named secret.  Transient failures are
// retried according to o.  The context bounds the whole operation, including
// backoff waits.
//
// Every error is a *lambdasecret.Error, except that Options which cannot
// produce a valid retry configuration yield an error wrapping
// retry.ErrInvalidConfig.
func (c *Client) Fetch(ctx context.Context, name string, o Options) (payload.Resolved, error) {
	ctx, span := c.tracer.Start(
		ctx,
		SpanName,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("secret.name", name),
		),
	)

	defer span.End()

	r, err := c.fetch(ctx, name, o.withDefaults())
	if err != nil {
		kind := lambdasecret.KindOf(err)
		span.SetAttributes(attribute.String("lambdasecret.error.kind", kind.String()))
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		c.logger.Info(
			"failed to fetch secret",
			zap.String("name", name),
			zap.Stringer("kind", kind),
			zap.Error(err),
		)

		return payload.Resolved{}, err
	}

	span.SetAttributes(attribute.Bool("secret.structured", r.Structured()))
	span.SetStatus(codes.Ok, "")
	c.logger.Debug(
		"fetched secret",
		zap.String("name", name),
		zap.Bool("structured", r.Structured()),
	)

	return r, nil
}

func (c *Client) fetch(ctx context.Context, name string, o Options) (payload.Resolved, error) {
	rc, err := retry.NewClient(
		retry.Config{
			Timeout:     o.Timeout,
			Attempts:    o.Retries,
			BaseBackoff: o.BaseBackoff,
			Logger:      c.logger.With(zap.String("name", name)),
			Metrics:     c.metrics,
		},
		c.next,
	)

	if err != nil {
		return payload.Resolved{}, err
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL(name, o), nil)
	if err != nil {
		return payload.Resolved{}, &lambdasecret.Error{
			Kind:    lambdasecret.KindInternal,
			Message: "unable to create request",
			Err:     err,
		}
	}

	response, err := rc.Do(request)
	if err != nil {
		return payload.Resolved{}, err
	}

	// closing the body releases the successful attempt's context
	defer response.Body.Close()
	data, err := io.ReadAll(io.LimitReader(response.Body, MaxResponseBody+1))
	if err != nil {
		kind := lambdasecret.KindTransport
		if ctx.Err() != nil {
			kind = lambdasecret.KindCanceled
		}

		return payload.Resolved{}, &lambdasecret.Error{
			Kind:    kind,
			Status:  response.StatusCode,
			Message: "unable to read response body",
			Err:     err,
		}
	}

	if len(data) > MaxResponseBody {
		return payload.Resolved{}, &lambdasecret.Error{
			Kind:    lambdasecret.KindShape,
			Status:  response.StatusCode,
			Message: "response body too large",
			Err:     ErrResponseTooLarge,
		}
	}

	return payload.Interpret(data)
}

// GetSecretValue fetches the named secret and converts it to T.  A secret whose
// text looks like a JSON object is decoded into T.  Any other secret is returned
// as is, which requires T to be string or any.
//
//	password, err := extension.GetSecretValue[string](ctx, client, "db-password", extension.Options{})
//	creds, err := extension.GetSecretValue[Credentials](ctx, client, "db-credentials", extension.Options{})
func GetSecretValue[T any](ctx context.Context, c *Client, name string, o Options) (T, error) {
	r, err := c.Fetch(ctx, name, o)
	if err != nil {
		var zero T
		return zero, err
	}

	return payload.As[T](r)
}

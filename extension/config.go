// SPDX-FileCopyrightText: 2024 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package extension

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/xmidt-org/lambdasecret"
	"github.com/xmidt-org/lambdasecret/retry"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const (
	// DefaultHost is the loopback host the extension listens on.
	DefaultHost = "localhost"

	// DefaultPort is the port the extension listens on unless configured otherwise.
	DefaultPort = 2773

	// TokenEnv is the environment variable holding the function's session token.
	TokenEnv = "AWS_SESSION_TOKEN"

	// PortEnv is the environment variable the extension reads its port from.
	PortEnv = "PARAMETERS_SECRETS_EXTENSION_HTTP_PORT"
)

// ErrInvalidConfig indicates that a Config could not be used to create a Client.
var ErrInvalidConfig = errors.New("invalid extension configuration")

// Config describes how to reach the secrets extension.  The zero value talks
// to localhost:2773 with an empty token, using http.DefaultClient.
type Config struct {
	// Host is the extension's host.  If unset, DefaultHost is used.
	Host string

	// Port is the extension's port.  If unset, DefaultPort is used.
	Port int

	// Token is sent in the lambdasecret.TokenHeader of every request.  An
	// empty token still produces the header, with an empty value.
	Token string

	// HTTPClient executes each individual attempt.  If unset, http.DefaultClient
	// is used.
	HTTPClient lambdasecret.Client

	// Middleware decorates HTTPClient.  It runs once per attempt, inside the
	// attempt's timeout.
	Middleware []lambdasecret.Constructor

	// Logger receives retry and fetch events.  Secret values are never logged.
	// If unset, nothing is logged.
	Logger *zap.Logger

	// Metrics is optional.  If set, every fetch records its attempts and retries.
	Metrics *retry.Metrics

	// TracerProvider creates the tracer for fetch spans.  If unset, the global
	// provider is used.
	TracerProvider trace.TracerProvider
}

// ConfigFromEnv produces a Config from the Lambda environment.  The token is read
// from TokenEnv and the port from PortEnv.  A missing token is not an error.
//
// This is the only place in this module that reads the environment.
func ConfigFromEnv() (Config, error) {
	return configFromLookup(os.LookupEnv)
}

func configFromLookup(lookup func(string) (string, bool)) (cfg Config, err error) {
	cfg.Token, _ = lookup(TokenEnv)
	if v, ok := lookup(PortEnv); ok && len(v) > 0 {
		cfg.Port, err = strconv.Atoi(v)
		if err != nil {
			err = fmt.Errorf("%w: %s=%q is not a port: %w", ErrInvalidConfig, PortEnv, v, err)
		}
	}

	return
}

func (cfg Config) host() string {
	if len(cfg.Host) > 0 {
		return cfg.Host
	}

	return DefaultHost
}

func (cfg Config) port() (int, error) {
	switch {
	case cfg.Port == 0:
		return DefaultPort, nil

	case cfg.Port < 0 || cfg.Port > 65535:
		return 0, fmt.Errorf("%w: port %d is out of range", ErrInvalidConfig, cfg.Port)

	default:
		return cfg.Port, nil
	}
}

// SPDX-FileCopyrightText: 2024 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package retry

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

const (
	// DefaultTimeout is the per-attempt deadline used by DefaultConfig.
	DefaultTimeout = 2 * time.Second

	// DefaultAttempts is the maximum attempt count used by DefaultConfig.
	DefaultAttempts = 3

	// DefaultBaseBackoff is the backoff scale used by DefaultConfig.
	DefaultBaseBackoff = 300 * time.Millisecond
)

// ErrInvalidConfig is wrapped by every error returned from Config.Validate.
var ErrInvalidConfig = errors.New("invalid retry configuration")

// Config is the configuration for a retrying Client.  A Config is treated as
// an immutable value once passed to NewClient.
type Config struct {
	// Timeout is the deadline applied to each individual attempt, up to the
	// arrival of the response headers.  It does not bound the total time spent
	// in Do, nor the reading of a body.  Must be positive.
	Timeout time.Duration

	// Attempts is the maximum number of attempts, including the first.  A value
	// of 1 means no retries and no backoff wait.  Must be at least 1.
	Attempts int

	// BaseBackoff scales the full jitter backoff.  The wait after attempt n is
	// a random duration in [0, BaseBackoff*2^n).  Must be positive.
	BaseBackoff time.Duration

	// Check classifies non-2xx responses.  If unset, DefaultCheck is used.
	Check Check

	// CheckError classifies transport errors.  If unset, DefaultCheckError is used.
	CheckError CheckError

	// Random is the source of randomness for jitter.  If unset, the
	// goroutine-safe top-level math/rand source is used.
	Random Random

	// Timer is the strategy used to wait between attempts.  If unset,
	// DefaultTimer is used.
	Timer Timer

	// Logger receives a diagnostic entry for each retry.  If unset,
	// nothing is logged.
	Logger *zap.Logger

	// Metrics is the optional set of prometheus collectors to update.
	Metrics *Metrics
}

// DefaultConfig returns the configuration used when a caller supplies none:
// a 2s per-attempt timeout, 3 attempts, and a 300ms backoff scale.
func DefaultConfig() Config {
	return Config{
		Timeout:     DefaultTimeout,
		Attempts:    DefaultAttempts,
		BaseBackoff: DefaultBaseBackoff,
	}
}

// Validate checks the numeric invariants of this Config.
func (cfg Config) Validate() error {
	switch {
	case cfg.Timeout <= 0:
		return fmt.Errorf("%w: timeout must be positive, got %s", ErrInvalidConfig, cfg.Timeout)

	case cfg.Attempts < 1:
		return fmt.Errorf("%w: attempts must be at least 1, got %d", ErrInvalidConfig, cfg.Attempts)

	case cfg.BaseBackoff <= 0:
		return fmt.Errorf("%w: base backoff must be positive, got %s", ErrInvalidConfig, cfg.BaseBackoff)

	default:
		return nil
	}
}

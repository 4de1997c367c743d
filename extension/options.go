// SPDX-FileCopyrightText: 2024 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package extension

import (
	"time"

	"github.com/xmidt-org/lambdasecret/retry"
)

// Options tune a single fetch.  Zero fields take the defaults:  a 2s
// per-attempt timeout, 3 attempts, and a 300ms backoff base.
type Options struct {
	// Timeout bounds each attempt.
	Timeout time.Duration

	// Retries is the total number of attempts, including the first.
	Retries int

	// BaseBackoff is the base of the full jitter backoff between attempts.
	BaseBackoff time.Duration

	// VersionID selects a specific version of the secret.
	VersionID string

	// VersionStage selects a version by staging label, e.g. AWSPREVIOUS.
	VersionStage string
}

// withDefaults returns a copy of these Options with zero fields replaced by
// their defaults.
func (o Options) withDefaults() Options {
	if o.Timeout == 0 {
		o.Timeout = retry.DefaultTimeout
	}

	if o.Retries == 0 {
		o.Retries = retry.DefaultAttempts
	}

	if o.BaseBackoff == 0 {
		o.BaseBackoff = retry.DefaultBaseBackoff
	}

	return o
}

// SPDX-FileCopyrightText: 2024 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package retry

import (
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// verifier is a stubbed Timer and Random implementation all in one.  It records
// each backoff so tests can verify the number of waits and the jitter limits
// without ever sleeping.
type verifier struct {
	assert *assert.Assertions

	// limits are the arguments passed to Int63n, i.e. the full jitter caps
	limits []int64

	// waits are the durations passed to Timer
	waits []time.Duration
}

func newVerifier(t mock.TestingT) *verifier {
	return &verifier{
		assert: assert.New(t),
	}
}

// configure installs this verifier as the Random and Timer strategies.
func (v *verifier) configure(cfg Config) Config {
	cfg.Random = v
	cfg.Timer = v.Timer
	return cfg
}

// Int63n implements Random and always returns the largest permitted value,
// so that waits are predictable.
func (v *verifier) Int63n(n int64) int64 {
	v.limits = append(v.limits, n)
	return n - 1
}

// Timer is a Config.Timer implementation that always returns a closed time channel
// and a noop stop function.  This allows retries to continue immediately.
func (v *verifier) Timer(d time.Duration) (<-chan time.Time, func() bool) {
	v.waits = append(v.waits, d)
	tc := make(chan time.Time)
	close(tc)
	return tc, func() bool { return true }
}

// AssertWaits asserts that exactly the given number of backoff waits occurred,
// and that each one used the full jitter cap for its attempt.
func (v *verifier) AssertWaits(base time.Duration, expected int) {
	v.assert.Len(v.waits, expected, "Incorrect number of Timer calls")
	v.assert.Len(v.limits, expected, "Incorrect number of Random calls")
	for i := 0; i < len(v.limits) && i < len(v.waits); i++ {
		attempt := i + 1
		v.assert.Equal(int64(base)<<attempt, v.limits[i], "Incorrect jitter cap for attempt %d", attempt)
		v.assert.Equal(time.Duration(v.limits[i]-1), v.waits[i])
	}
}

// blockingTimer is a Timer that never fires.  Only cancellation can end the wait.
func blockingTimer(time.Duration) (<-chan time.Time, func() bool) {
	return make(chan time.Time), func() bool { return true }
}

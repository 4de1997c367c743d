// SPDX-FileCopyrightText: 2024 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package retry

import (
	"math"
	"math/rand"
	"time"
)

// Random is the subset of rand.Rand methods used by this package
// to compute jitter.  *rand.Rand implements this interface, but is
// not safe for concurrent use.
type Random interface {
	Int63n(int64) int64
}

var _ Random = (*rand.Rand)(nil)

// RandomFunc is a function type that implements Random
type RandomFunc func(int64) int64

// Int63n satisfies the Random interface
func (rf RandomFunc) Int63n(n int64) int64 {
	return rf(n)
}

// defaultRandom delegates to the top-level math/rand functions, which
// are safe for concurrent use.
type defaultRandom struct{}

func (defaultRandom) Int63n(n int64) int64 {
	//nolint:gosec
	return rand.Int63n(n)
}

// BackoffCap returns base*2^attempt, saturating at math.MaxInt64.
// A nonpositive base yields zero.
func BackoffCap(base time.Duration, attempt int) time.Duration {
	if base <= 0 {
		return 0
	}

	if attempt < 0 {
		attempt = 0
	}

	// base << attempt overflows once base exceeds MaxInt64 >> attempt
	if attempt >= 63 || base > time.Duration(math.MaxInt64)>>uint(attempt) {
		return time.Duration(math.MaxInt64)
	}

	return base << uint(attempt)
}

// FullJitter computes the time to wait after the given 1-based attempt failed.
// The result is uniformly distributed over [0, base*2^attempt).  It must be
// recomputed for every retry.
//
// If r is nil, the top-level math/rand source is used.
func FullJitter(base time.Duration, attempt int, r Random) time.Duration {
	limit := BackoffCap(base, attempt)
	if limit <= 0 {
		return 0
	}

	if r == nil {
		r = defaultRandom{}
	}

	return time.Duration(r.Int63n(int64(limit)))
}

// SPDX-FileCopyrightText: 2024 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package httpmock

import (
	"net/http"

	"github.com/stretchr/testify/assert"
)

// RequestAsserter is used during the RoundTripper's Run function to
// execute assertions against the request.  It's often better to do
// this instead of using a match, since the test fail message is clearer.
type RequestAsserter func(*assert.Assertions, *http.Request)

// Method asserts that a request's method matches exactly.
func Method(expected string) RequestAsserter {
	return func(assert *assert.Assertions, candidate *http.Request) {
		assert.Equal(expected, candidate.Method, "The request method did not match")
	}
}

// Path asserts that a request's URL.Path match an expected value.
// The returned assertion will also fail if a request has no URL field set.
func Path(expected string) RequestAsserter {
	return func(assert *assert.Assertions, candidate *http.Request) {
		if assert.NotNil(candidate.URL, "No URL set on the request") {
			assert.Equal(expected, candidate.URL.Path, "The request URL.Path did not match")
		}
	}
}

// Query asserts that a request's query parameter has exactly the expected values.
func Query(name string, expected ...string) RequestAsserter {
	return func(assert *assert.Assertions, candidate *http.Request) {
		if assert.NotNil(candidate.URL, "No URL set on the request") {
			assert.Equalf(
				expected,
				candidate.URL.Query()[name],
				"The request query parameter [%s] did not match",
				name,
			)
		}
	}
}

// Header asserts that a given header has the expected values.  All header
// values must match the expected slice exactly.  An empty string is a
// valid expected value, which distinguishes a blank header from a missing one.
func Header(name string, expected ...string) RequestAsserter {
	return func(assert *assert.Assertions, candidate *http.Request) {
		assert.Equalf(
			expected,
			candidate.Header.Values(name),
			"The request header [%s] did not match",
			name,
		)
	}
}

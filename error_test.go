// SPDX-FileCopyrightText: 2024 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package lambdasecret

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"testing"

	"github.com/stretchr/testify/suite"
)

type ErrorTestSuite struct {
	suite.Suite
}

func (suite *ErrorTestSuite) TestKindString() {
	testData := []struct {
		kind     Kind
		expected string
	}{
		{kind: KindUnknown, expected: "unknown"},
		{kind: KindTimeout, expected: "timeout"},
		{kind: KindRetriableHTTP, expected: "retriable http"},
		{kind: KindNonRetriableHTTP, expected: "non-retriable http"},
		{kind: KindTransport, expected: "transport"},
		{kind: KindExhausted, expected: "exhausted"},
		{kind: KindShape, expected: "shape"},
		{kind: KindParse, expected: "parse"},
		{kind: KindCanceled, expected: "canceled"},
		{kind: KindInternal, expected: "internal"},
		{kind: Kind(-1), expected: "Kind(-1)"},
		{kind: Kind(100), expected: "Kind(100)"},
	}

	for _, record := range testData {
		suite.Run(record.expected, func() {
			suite.Equal(record.expected, record.kind.String())
		})
	}
}

func (suite *ErrorTestSuite) TestKindRetriable() {
	retriable := map[Kind]bool{
		KindTimeout:       true,
		KindRetriableHTTP: true,
		KindTransport:     true,
	}

	for k := KindUnknown; k <= KindInternal; k++ {
		suite.Run(k.String(), func() {
			suite.Equal(retriable[k], k.Retriable())
		})
	}
}

func (suite *ErrorTestSuite) TestError() {
	cause := errors.New("cause")
	testData := []struct {
		err      *Error
		expected string
	}{
		{
			err:      &Error{Kind: KindRetriableHTTP, Status: 503},
			expected: "HTTP 503",
		},
		{
			err:      &Error{Kind: KindNonRetriableHTTP, Status: 404},
			expected: "non-retriable HTTP error: 404",
		},
		{
			err: &Error{
				Kind:    KindExhausted,
				Attempt: 3,
				Err:     &Error{Kind: KindRetriableHTTP, Status: 503},
			},
			expected: "retries exhausted after 3 attempt(s): HTTP 503",
		},
		{
			err:      &Error{Kind: KindTimeout, Err: cause},
			expected: "timeout error: cause",
		},
		{
			err:      &Error{Kind: KindShape, Message: "invalid secret response format"},
			expected: "invalid secret response format",
		},
		{
			err:      &Error{Kind: KindParse, Message: "bad json", Err: cause},
			expected: "bad json: cause",
		},
		{
			err:      &Error{},
			expected: "unknown error",
		},
	}

	for i, record := range testData {
		suite.Run(strconv.Itoa(i), func() {
			suite.Equal(record.expected, record.err.Error())
		})
	}
}

func (suite *ErrorTestSuite) TestStatusCode() {
	suite.Equal(http.StatusInternalServerError, (&Error{}).StatusCode())
	suite.Equal(http.StatusInternalServerError, (&Error{Status: 99}).StatusCode())
	suite.Equal(http.StatusNotFound, (&Error{Status: http.StatusNotFound}).StatusCode())
}

func (suite *ErrorTestSuite) TestUnwrap() {
	cause := errors.New("cause")
	err := &Error{Kind: KindTransport, Err: cause}
	suite.Same(cause, err.Unwrap())
	suite.ErrorIs(err, cause)
}

func (suite *ErrorTestSuite) TestIs() {
	err := fmt.Errorf("fetch failed: %w", &Error{
		Kind:    KindExhausted,
		Attempt: 3,
		Err: &Error{
			Kind:    KindTimeout,
			Attempt: 3,
		},
	})

	suite.ErrorIs(err, ErrExhausted)
	suite.ErrorIs(err, ErrTimeout)
	suite.NotErrorIs(err, ErrTransport)
	suite.NotErrorIs(err, ErrCanceled)

	// only bare kinds act as sentinels
	suite.NotErrorIs(err, &Error{Kind: KindExhausted, Attempt: 3})
	suite.False(errors.Is(err, errors.New("unrelated")))
}

func (suite *ErrorTestSuite) TestKindOf() {
	suite.Equal(KindUnknown, KindOf(nil))
	suite.Equal(KindUnknown, KindOf(errors.New("unrelated")))
	suite.Equal(KindShape, KindOf(ErrShape))
	suite.Equal(
		KindExhausted,
		KindOf(fmt.Errorf("wrapped: %w", &Error{Kind: KindExhausted, Err: ErrTimeout})),
	)
}

func (suite *ErrorTestSuite) TestStatusCodeOf() {
	suite.Zero(StatusCode(nil))
	suite.Zero(StatusCode(errors.New("unrelated")))
	suite.Zero(StatusCode(ErrTimeout))
	suite.Equal(http.StatusForbidden, StatusCode(&Error{Kind: KindNonRetriableHTTP, Status: http.StatusForbidden}))
	suite.Equal(
		http.StatusServiceUnavailable,
		StatusCode(fmt.Errorf("wrapped: %w", &Error{Kind: KindExhausted, Status: http.StatusServiceUnavailable})),
	)
}

func (suite *ErrorTestSuite) TestIsRetriable() {
	suite.False(IsRetriable(nil))
	suite.False(IsRetriable(errors.New("unrelated")))
	suite.True(IsRetriable(&Error{Kind: KindRetriableHTTP, Status: 503}))
	suite.False(IsRetriable(&Error{Kind: KindNonRetriableHTTP, Status: 404}))
	suite.False(IsRetriable(&Error{Kind: KindExhausted, Err: ErrTimeout}))
}

func (suite *ErrorTestSuite) TestIsTemporary() {
	suite.False(IsTemporary(nil))
	suite.False(IsTemporary(errors.New("not temporary")))
	suite.True(IsTemporary(&net.DNSError{IsTemporary: true}))
	suite.True(IsTemporary(fmt.Errorf("wrapped: %w", &net.DNSError{IsTemporary: true})))
	suite.False(IsTemporary(&net.DNSError{IsTemporary: false}))
}

func TestError(t *testing.T) {
	suite.Run(t, new(ErrorTestSuite))
}

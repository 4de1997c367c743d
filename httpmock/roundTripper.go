// SPDX-FileCopyrightText: 2024 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package httpmock

import (
	"errors"
	"net/http"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// RoundTripMethodName is the name of the http.RoundTripper.RoundTrip method.
// Used to start fluent expectation chains.
const RoundTripMethodName = "RoundTrip"

var errNoReturn = errors.New("httpmock: no return values configured for RoundTrip")

// Responder produces the result of a single RoundTrip.  Unlike fixed return
// values, a Responder creates a fresh response, and thus a fresh body, for each
// call it satisfies.
type Responder func(*http.Request) (*http.Response, error)

// RoundTripCall is syntactic sugar around a RoundTrip *mock.Call.
// This type provides some higher-level and typesafe expectation
// behavior.
type RoundTripCall struct {
	*mock.Call

	// container is the RoundTripper that created this call.
	container *RoundTripper

	asserters []RequestAsserter
}

func newRoundTripCall(container *RoundTripper, call *mock.Call) *RoundTripCall {
	rtc := &RoundTripCall{
		container: container,
		Call:      call,
	}

	rtc.Call.Run(rtc.run)
	return rtc
}

// run executes the global and call-specific request assertions.
func (rtc *RoundTripCall) run(args mock.Arguments) {
	request, _ := args.Get(0).(*http.Request)
	rtc.container.applyAsserters(request, rtc.asserters)
}

// Return establishes fixed return values for this RoundTrip invocation.
// Because the same response is returned each time, prefer Respond or
// ReturnStatus for expectations that match more than once.
func (rtc *RoundTripCall) Return(r *http.Response, err error) *RoundTripCall {
	rtc.Call = rtc.Call.Return(r, err)
	return rtc
}

// Respond establishes a Responder that computes the result of each call.
func (rtc *RoundTripCall) Respond(f Responder) *RoundTripCall {
	rtc.Call = rtc.Call.Return(f)
	return rtc
}

// ReturnStatus responds with the given status code and text body.
func (rtc *RoundTripCall) ReturnStatus(status int, body string) *RoundTripCall {
	return rtc.Respond(func(request *http.Request) (*http.Response, error) {
		return NewResponse(request, status, body), nil
	})
}

// ReturnSecret responds with a 200 and the JSON form of the given Secret.
func (rtc *RoundTripCall) ReturnSecret(s Secret) *RoundTripCall {
	return rtc.ReturnStatus(http.StatusOK, s.JSON())
}

// ReturnError fails the round trip with the given error.
func (rtc *RoundTripCall) ReturnError(err error) *RoundTripCall {
	return rtc.Respond(func(*http.Request) (*http.Response, error) {
		return nil, err
	})
}

// Hang blocks the round trip until the request's context is done, then
// returns the context's error.  This simulates a server that never answers.
func (rtc *RoundTripCall) Hang() *RoundTripCall {
	return rtc.Respond(func(request *http.Request) (*http.Response, error) {
		<-request.Context().Done()
		return nil, request.Context().Err()
	})
}

// AssertRequest adds request assertions that are specific to this mocked Call.
// Multiple calls to this method are cumulative.
func (rtc *RoundTripCall) AssertRequest(a ...RequestAsserter) *RoundTripCall {
	rtc.asserters = append(rtc.asserters, a...)
	return rtc
}

// RoundTripper is a mocked http.RoundTripper.  Instances should be
// created with NewRoundTripper.
type RoundTripper struct {
	mock.Mock

	t         mock.TestingT
	assert    *assert.Assertions
	asserters []RequestAsserter
}

var _ http.RoundTripper = (*RoundTripper)(nil)

// NewRoundTripper returns a mock http.RoundTripper for the given test.
func NewRoundTripper(t mock.TestingT) *RoundTripper {
	m := new(RoundTripper)
	m.Test(t)
	return m
}

// Test changes the test instance on this mock.
func (m *RoundTripper) Test(t mock.TestingT) {
	m.Mock.Test(t)
	m.t = t
	m.assert = assert.New(t)
}

// RoundTrip implements http.RoundTripper and is driven by the mock's expectations.
func (m *RoundTripper) RoundTrip(request *http.Request) (*http.Response, error) {
	arguments := m.Called(request)
	if len(arguments) == 0 {
		return nil, errNoReturn
	}

	if f, ok := arguments.Get(0).(Responder); ok {
		return f(request)
	}

	var (
		response, _ = arguments.Get(0).(*http.Response)
		err, _      = arguments.Get(1).(error)
	)

	return response, err
}

// Client returns an *http.Client that uses this mock as its transport.
func (m *RoundTripper) Client() *http.Client {
	return &http.Client{Transport: m}
}

// AssertRequest adds request assertions that apply to all mocked calls created
// via this instance.
func (m *RoundTripper) AssertRequest(a ...RequestAsserter) *RoundTripper {
	m.asserters = append(m.asserters, a...)
	return m
}

func (m *RoundTripper) applyAsserters(candidate *http.Request, local []RequestAsserter) {
	for _, a := range m.asserters {
		a(m.assert, candidate)
	}

	for _, a := range local {
		a(m.assert, candidate)
	}
}

// OnAny is a convenience for starting a *mock.Call expectation which
// matches any HTTP request.
func (m *RoundTripper) OnAny() *RoundTripCall {
	return newRoundTripCall(
		m,
		m.On(RoundTripMethodName, mock.Anything),
	)
}

// AssertExpectations uses the TestingT instance set at construction or with Test
// to assert all the calls have been executed.
func (m *RoundTripper) AssertExpectations() {
	m.Mock.AssertExpectations(m.t)
}

// AssertCalls asserts the exact number of round trips made.
func (m *RoundTripper) AssertCalls(expected int) {
	m.Mock.AssertNumberOfCalls(m.t, RoundTripMethodName, expected)
}

// SPDX-FileCopyrightText: 2024 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package lambdasecret

import "net/http"

// RoundTripperFunc adapts a function to http.RoundTripper.  It is handy for
// observing or rewriting the requests sent to the extension.
type RoundTripperFunc func(*http.Request) (*http.Response, error)

var _ http.RoundTripper = RoundTripperFunc(nil)

// RoundTrip invokes this function.
func (rtf RoundTripperFunc) RoundTrip(request *http.Request) (*http.Response, error) {
	return rtf(request)
}

// Client returns an *http.Client that uses this function as its Transport.
// The result can be used wherever a Client is expected.
func (rtf RoundTripperFunc) Client() *http.Client {
	return &http.Client{Transport: rtf}
}

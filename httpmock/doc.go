// SPDX-FileCopyrightText: 2024 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Package httpmock provides a testify-based mock http.RoundTripper for scripting
the secrets extension in tests.

	rt := httpmock.NewRoundTripper(t)
	rt.OnAny().ReturnStatus(http.StatusServiceUnavailable, "").Once()
	rt.OnAny().ReturnSecret(httpmock.Secret{ARN: "a", Name: "n", SecretString: "plain"}).Once()

	client := rt.Client()
	// ... exercise code that uses client ...

	rt.AssertExpectations()
*/
package httpmock

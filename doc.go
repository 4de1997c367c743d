// SPDX-FileCopyrightText: 2024 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Package lambdasecret holds the types shared by the packages that fetch secrets
from the AWS Lambda Secrets Manager extension.

The extension is a sidecar listening on loopback.  Fetching from it is done by
the extension package, which composes:

  - retry, the resilient request executor (per-attempt timeouts, full jitter backoff)
  - payload, which validates the extension's response and resolves the secret

Every failure is reported as an *Error carrying a Kind, so callers can branch
on the kind of failure:

	v, err := extension.GetSecretValue[string](ctx, client, "db-password", extension.Options{})
	switch lambdasecret.KindOf(err) {
	case lambdasecret.KindNonRetriableHTTP:
		// the secret does not exist or access is denied
	case lambdasecret.KindExhausted:
		// the extension never became available
	}
*/
package lambdasecret

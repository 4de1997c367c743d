// SPDX-FileCopyrightText: 2024 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"errors"

	"github.com/xmidt-org/lambdasecret"
	"github.com/xmidt-org/lambdasecret/extension"
	"github.com/xmidt-org/lambdasecret/internal/logging"
	"github.com/xmidt-org/lambdasecret/retry"
)

// Process exit codes.
const (
	ExitSuccess       = 0   // the secret was printed
	ExitGeneralError  = 1   // unknown or unclassified error
	ExitUsageError    = 2   // missing arguments or invalid flags
	ExitPanic         = 3   // internal panic
	ExitConfigError   = 10  // invalid configuration
	ExitUnavailable   = 11  // the source never answered successfully
	ExitRejected      = 12  // the source refused the request, e.g. not found
	ExitInvalidSecret = 13  // the response or secret could not be interpreted
	ExitCanceled      = 130 // interrupted
)

// ErrNoField is returned when the --field path is not present in the secret.
var ErrNoField = errors.New("field not found in secret")

// usageError marks errors caused by how the command was invoked.
type usageError struct {
	err error
}

func (ue usageError) Error() string {
	return ue.err.Error()
}

func (ue usageError) Unwrap() error {
	return ue.err
}

// ExitCodeForError returns the process exit code for an error returned by
// Execute.  A nil error yields ExitSuccess.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var ue usageError
	switch {
	case errors.As(err, &ue):
		return ExitUsageError

	case errors.Is(err, retry.ErrInvalidConfig),
		errors.Is(err, extension.ErrInvalidConfig),
		errors.Is(err, logging.ErrInvalidConfig):
		return ExitConfigError

	case errors.Is(err, ErrNoField):
		return ExitInvalidSecret
	}

	switch lambdasecret.KindOf(err) {
	case lambdasecret.KindTimeout,
		lambdasecret.KindRetriableHTTP,
		lambdasecret.KindTransport,
		lambdasecret.KindExhausted:
		return ExitUnavailable

	case lambdasecret.KindNonRetriableHTTP:
		return ExitRejected

	case lambdasecret.KindShape, lambdasecret.KindParse:
		return ExitInvalidSecret

	case lambdasecret.KindCanceled:
		return ExitCanceled

	default:
		return ExitGeneralError
	}
}

// SPDX-FileCopyrightText: 2024 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package direct

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/smithy-go"
	smithyhttp "github.com/aws/smithy-go/transport/http"
	"github.com/xmidt-org/lambdasecret"
	"github.com/xmidt-org/lambdasecret/payload"
	"github.com/xmidt-org/lambdasecret/retry"
	"go.uber.org/zap"
)

// Secrets Manager error codes that will never succeed on a retry.
const (
	ResourceNotFoundException = "ResourceNotFoundException"
	AccessDeniedException     = "AccessDeniedException"
	DecryptionFailure         = "DecryptionFailure"
	InvalidParameterException = "InvalidParameterException"
	InvalidRequestException   = "InvalidRequestException"
)

// API is the subset of the Secrets Manager client used by a Source.
type API interface {
	GetSecretValue(
		ctx context.Context,
		params *secretsmanager.GetSecretValueInput,
		optFns ...func(*secretsmanager.Options),
	) (*secretsmanager.GetSecretValueOutput, error)
}

var _ API = (*secretsmanager.Client)(nil)

// Options select which version of a secret to fetch.
type Options struct {
	VersionID    string
	VersionStage string
}

// Source fetches secrets straight from the Secrets Manager API.  It is useful
// outside of Lambda, where there is no extension to talk to.  Retries are
// left to the AWS SDK.
type Source struct {
	api    API
	logger *zap.Logger
}

// New creates a Source from an API.  If logger is nil, nothing is logged.
func New(api API, logger *zap.Logger) *Source {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Source{
		api:    api,
		logger: logger,
	}
}

// NewFromConfig creates a Source using a Secrets Manager client built from cfg.
func NewFromConfig(cfg aws.Config, logger *zap.Logger) *Source {
	return New(secretsmanager.NewFromConfig(cfg), logger)
}

// Fetch retrieves the named secret and interprets it exactly as a response from
// the extension would be.  Binary secrets are not supported and produce a
// KindShape error.
func (s *Source) Fetch(ctx context.Context, name string, o Options) (payload.Resolved, error) {
	input := &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(name),
	}

	if len(o.VersionID) > 0 {
		input.VersionId = aws.String(o.VersionID)
	}

	if len(o.VersionStage) > 0 {
		input.VersionStage = aws.String(o.VersionStage)
	}

	s.logger.Debug("retrieving secret", zap.String("name", name))
	output, err := s.api.GetSecretValue(ctx, input)
	if err != nil {
		err = classify(ctx, err)
		s.logger.Info(
			"failed to retrieve secret",
			zap.String("name", name),
			zap.Stringer("kind", lambdasecret.KindOf(err)),
			zap.Error(err),
		)

		return payload.Resolved{}, err
	}

	if output == nil || output.SecretString == nil {
		return payload.Resolved{}, &lambdasecret.Error{
			Kind:    lambdasecret.KindShape,
			Message: payload.ShapeMessage,
		}
	}

	return payload.Resolve(payload.Secret{
		ARN:          aws.ToString(output.ARN),
		Name:         aws.ToString(output.Name),
		SecretString: aws.ToString(output.SecretString),
		VersionID:    aws.ToString(output.VersionId),
	})
}

// classify maps an SDK error onto the same kinds the extension client uses.
func classify(ctx context.Context, err error) *lambdasecret.Error {
	if ctx.Err() != nil {
		return &lambdasecret.Error{
			Kind: lambdasecret.KindCanceled,
			Err:  err,
		}
	}

	var apiErr smithy.APIError
	isAPIErr := errors.As(err, &apiErr)

	var responseErr *smithyhttp.ResponseError
	if errors.As(err, &responseErr) && responseErr.HTTPStatusCode() > 0 {
		status := responseErr.HTTPStatusCode()
		var message string
		if isAPIErr {
			message = apiErr.ErrorMessage()
		}

		kind := lambdasecret.KindNonRetriableHTTP
		if retry.DefaultCheck(status, message) != retry.ReasonNone {
			kind = lambdasecret.KindRetriableHTTP
		}

		return &lambdasecret.Error{
			Kind:   kind,
			Status: status,
			Err:    err,
		}
	}

	if isAPIErr {
		kind := lambdasecret.KindNonRetriableHTTP
		switch apiErr.ErrorCode() {
		case ResourceNotFoundException,
			AccessDeniedException,
			DecryptionFailure,
			InvalidParameterException,
			InvalidRequestException:
			// client faults, whatever the SDK says

		default:
			if apiErr.ErrorFault() == smithy.FaultServer {
				kind = lambdasecret.KindRetriableHTTP
			}
		}

		return &lambdasecret.Error{
			Kind: kind,
			Err:  err,
		}
	}

	kind := lambdasecret.KindUnknown
	switch retry.DefaultCheckError(ctx, err) {
	case retry.ReasonTimeout:
		kind = lambdasecret.KindTimeout

	case retry.ReasonTransport:
		kind = lambdasecret.KindTransport
	}

	return &lambdasecret.Error{
		Kind: kind,
		Err:  err,
	}
}

// SPDX-FileCopyrightText: 2024 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package httpmock

import (
	"context"
	"errors"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type RoundTripperTestSuite struct {
	suite.Suite
}

func (suite *RoundTripperTestSuite) newRequest(ctx context.Context) *http.Request {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, "http://localhost:2773/secretsmanager/get?secretId=test", nil)
	suite.Require().NoError(err)
	return request
}

func (suite *RoundTripperTestSuite) readBody(response *http.Response) string {
	suite.Require().NotNil(response)
	suite.Require().NotNil(response.Body)
	defer response.Body.Close()

	b, err := io.ReadAll(response.Body)
	suite.Require().NoError(err)
	return string(b)
}

func (suite *RoundTripperTestSuite) TestReturnStatus() {
	rt := NewRoundTripper(suite.T())
	rt.OnAny().ReturnStatus(http.StatusServiceUnavailable, "unavailable").Twice()

	for i := 0; i < 2; i++ {
		response, err := rt.RoundTrip(suite.newRequest(context.Background()))
		suite.Require().NoError(err)
		suite.Equal(http.StatusServiceUnavailable, response.StatusCode)
		suite.Equal("unavailable", suite.readBody(response)) // fresh body each call
	}

	rt.AssertExpectations()
	rt.AssertCalls(2)
}

func (suite *RoundTripperTestSuite) TestReturnSecret() {
	rt := NewRoundTripper(suite.T())
	rt.OnAny().ReturnSecret(Secret{ARN: "a", Name: "n", SecretString: "plain"}).Once()

	response, err := rt.Client().Do(suite.newRequest(context.Background()))
	suite.Require().NoError(err)
	suite.Equal(http.StatusOK, response.StatusCode)
	suite.JSONEq(`{"ARN":"a","Name":"n","SecretString":"plain"}`, suite.readBody(response))
	rt.AssertExpectations()
}

func (suite *RoundTripperTestSuite) TestReturnError() {
	expectedErr := errors.New("expected")
	rt := NewRoundTripper(suite.T())
	rt.OnAny().ReturnError(expectedErr).Once()

	response, err := rt.RoundTrip(suite.newRequest(context.Background()))
	suite.Nil(response)
	suite.ErrorIs(err, expectedErr)
	rt.AssertExpectations()
}

func (suite *RoundTripperTestSuite) TestReturn() {
	rt := NewRoundTripper(suite.T())
	expected := &http.Response{StatusCode: 299, Body: EmptyBody()}
	rt.OnAny().Return(expected, nil).Once()

	response, err := rt.RoundTrip(suite.newRequest(context.Background()))
	suite.NoError(err)
	suite.Same(expected, response)
	rt.AssertExpectations()
}

func (suite *RoundTripperTestSuite) TestHang() {
	rt := NewRoundTripper(suite.T())
	rt.OnAny().Hang().Once()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	response, err := rt.RoundTrip(suite.newRequest(ctx))
	suite.Nil(response)
	suite.ErrorIs(err, context.DeadlineExceeded)
	rt.AssertExpectations()
}

func (suite *RoundTripperTestSuite) TestAssertRequest() {
	rt := NewRoundTripper(suite.T()).AssertRequest(
		Method(http.MethodGet),
		Path("/secretsmanager/get"),
	)

	rt.OnAny().AssertRequest(Query("secretId", "test")).ReturnStatus(http.StatusOK, "").Once()

	response, err := rt.RoundTrip(suite.newRequest(context.Background()))
	suite.Require().NoError(err)
	suite.readBody(response)
	rt.AssertExpectations()
}

func TestRoundTripper(t *testing.T) {
	suite.Run(t, new(RoundTripperTestSuite))
}

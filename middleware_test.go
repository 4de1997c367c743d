// SPDX-FileCopyrightText: 2024 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package lambdasecret

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/suite"
)

type ChainTestSuite struct {
	suite.Suite

	server *httptest.Server

	// order is used to verify the execution order of decorators
	order []int
}

var _ suite.SetupTestSuite = (*ChainTestSuite)(nil)
var _ suite.SetupAllSuite = (*ChainTestSuite)(nil)
var _ suite.TearDownAllSuite = (*ChainTestSuite)(nil)

func (suite *ChainTestSuite) SetupSuite() {
	suite.server = httptest.NewServer(
		http.HandlerFunc(func(rw http.ResponseWriter, _ *http.Request) {
			rw.WriteHeader(299)
		}),
	)
}

func (suite *ChainTestSuite) SetupTest() {
	suite.order = nil
}

func (suite *ChainTestSuite) TearDownSuite() {
	suite.server.Close()
	suite.server = nil
}

// constructor creates a Constructor that records its execution order
func (suite *ChainTestSuite) constructor(n int) Constructor {
	return func(next Client) Client {
		return ClientFunc(func(r *http.Request) (*http.Response, error) {
			suite.order = append(suite.order, n)
			return next.Do(r)
		})
	}
}

// assertRequest verifies that the given client is functional
func (suite *ChainTestSuite) assertRequest(expectedOrder []int, client Client) {
	suite.order = nil
	request, err := http.NewRequest(http.MethodGet, suite.server.URL+"/test", nil)
	suite.Require().NoError(err)

	response, err := client.Do(request)
	suite.Require().NoError(err)

	defer response.Body.Close()
	io.Copy(io.Discard, response.Body) //nolint:errcheck
	suite.Equal(expectedOrder, suite.order, "the decorators did not run in the expected order")
	suite.Equal(299, response.StatusCode, "the test server was not invoked")
}

func (suite *ChainTestSuite) TestEmpty() {
	c := NewChain()
	suite.Zero(c.Len())
	suite.Equal(http.DefaultClient, c.Then(nil))
	suite.assertRequest(nil, c.Then(suite.server.Client()))
}

func (suite *ChainTestSuite) TestThen() {
	c := NewChain(suite.constructor(1), suite.constructor(2))
	suite.Equal(2, c.Len())
	suite.assertRequest([]int{1, 2}, c.Then(suite.server.Client()))
}

func (suite *ChainTestSuite) TestAppend() {
	c := NewChain(suite.constructor(1))
	suite.Equal(1, c.Append().Len())

	appended := c.Append(suite.constructor(2), suite.constructor(3))
	suite.Equal(1, c.Len(), "the original chain should not be modified")
	suite.Equal(3, appended.Len())
	suite.assertRequest([]int{1, 2, 3}, appended.Then(suite.server.Client()))
	suite.assertRequest([]int{1}, c.Then(suite.server.Client()))
}

func TestChain(t *testing.T) {
	suite.Run(t, new(ChainTestSuite))
}

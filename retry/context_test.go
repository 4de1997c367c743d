// SPDX-FileCopyrightText: 2024 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package retry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/xmidt-org/lambdasecret"
)

type StateTestSuite struct {
	suite.Suite
}

func (suite *StateTestSuite) TestNext() {
	s := &State{
		attempt:  1,
		attempts: 3,
	}

	suite.Run("Initial", func() {
		suite.Equal(1, s.Attempt())
		suite.Equal(3, s.Attempts())
		_, ok := s.Previous()
		suite.False(ok)
	})

	suite.Run("AfterRetriableStatus", func() {
		first := Attempt{
			Number:  1,
			Outcome: OutcomeRetriable,
			Reason:  ReasonStatus,
			Status:  503,
			Err:     &lambdasecret.Error{Kind: lambdasecret.KindRetriableHTTP, Status: 503, Attempt: 1},
		}

		s.next(first)
		suite.Equal(2, s.Attempt())
		suite.Equal(3, s.Attempts())

		previous, ok := s.Previous()
		suite.True(ok)
		suite.Equal(first, previous)
	})
}

func (suite *StateTestSuite) TestGetState() {
	suite.Run("Missing", func() {
		suite.Nil(GetState(context.Background()))
	})

	suite.Run("Present", func() {
		expected := &State{attempt: 1, attempts: 2}
		suite.Same(expected, GetState(withState(context.Background(), expected)))
	})
}

func (suite *StateTestSuite) TestOutcomeString() {
	suite.Equal("success", OutcomeSuccess.String())
	suite.Equal("retriable", OutcomeRetriable.String())
	suite.Equal("terminal", OutcomeTerminal.String())
}

func TestState(t *testing.T) {
	suite.Run(t, new(StateTestSuite))
}

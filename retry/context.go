// SPDX-FileCopyrightText: 2024 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package retry

import "context"

// Outcome is the classification of a single attempt.
type Outcome int

const (
	// OutcomeSuccess is a 2xx response.
	OutcomeSuccess Outcome = iota

	// OutcomeRetriable is a failure that may succeed on a later attempt.
	OutcomeRetriable

	// OutcomeTerminal is a failure that ends the operation.
	OutcomeTerminal
)

// String returns the metric label for this Outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"

	case OutcomeRetriable:
		return "retriable"

	default:
		return "terminal"
	}
}

// Attempt is the evaluated result of one try of an HTTP transaction.
type Attempt struct {
	// Number is the 1-based attempt number.
	Number int

	// Outcome is how this attempt was classified.
	Outcome Outcome

	// Reason is why a retriable attempt was retried.  It is ReasonNone
	// for successful and terminal attempts.
	Reason Reason

	// Status is the HTTP status code, or zero if no response was received.
	Status int

	// Err is the failure for this attempt, or nil on success.
	Err error
}

// State is the current state of a retry operation.  Instances
// of this type are available in request contexts during every attempt.
//
// This type is never safe for concurrent access.
type State struct {
	attempt  int
	attempts int

	previous    Attempt
	hasPrevious bool
}

// Attempt is the 1-based number of the attempt currently in flight.
func (s *State) Attempt() int {
	return s.attempt
}

// Attempts is the maximum number of attempts that will be made.
// Attempt will always return a number less than or equal to this value.
func (s *State) Attempts() int {
	return s.attempts
}

// Previous is the result of the previous attempt.  The boolean is false
// during the first attempt, when there is no previous result.
func (s *State) Previous() (Attempt, bool) {
	return s.previous, s.hasPrevious
}

// next preps for the next attempt in a series.
func (s *State) next(previous Attempt) {
	s.attempt++
	s.previous = previous
	s.hasPrevious = true
}

// contextKey is the internal context.Context key that stores the *State
type contextKey struct{}

// GetState returns the retry State associated with the given context.
// Decorated code can make use of this for metrics, logging, etc.
//
// IMPORTANT: State is not safe for concurrent access.  The State instance
// returned by this function should never be retained.
func GetState(ctx context.Context) *State {
	s, _ := ctx.Value(contextKey{}).(*State)
	return s
}

// withState creates a subcontext that stores the given state
func withState(ctx context.Context, s *State) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

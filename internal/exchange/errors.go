package exchange

import (
	"errors"
	"fmt"
)

// ErrNoData marks an empty candle response. An empty series is a fetch
// failure, never an empty success: indicator code must not run on it.
var ErrNoData = errors.New("no data")

// ErrUnknownVenue marks a venue id with no registered client.
var ErrUnknownVenue = errors.New("unknown venue")

// ConnectError reports that a venue could not be initialized or validated.
type ConnectError struct {
	Venue string
	Err   error
}

func (e *ConnectError) Error() string {
	return fmt.Sprintf("connect %s: %v", e.Venue, e.Err)
}

func (e *ConnectError) Unwrap() error { return e.Err }

// FetchError reports a failed or empty daily-candle fetch.
type FetchError struct {
	Venue string
	Pair  string
	Err   error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s %s: %v", e.Venue, e.Pair, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

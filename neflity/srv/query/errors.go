package query

import (
	"errors"
	"fmt"
)

// ErrPollFailure is the root of every error a status query can return. A
// caller that only needs to know whether the live data is usable checks for
// this one.
var ErrPollFailure = errors.New("poll failure")

var (
	// ErrTransport is returned when the request could not be built or sent,
	// or the response body could not be read.
	ErrTransport = fmt.Errorf("%w: transport", ErrPollFailure)
	// ErrStatus is returned when the endpoint answers with a non-2xx status.
	ErrStatus = fmt.Errorf("%w: unexpected status", ErrPollFailure)
	// ErrPayload is returned when the body is not a JSON object.
	ErrPayload = fmt.Errorf("%w: malformed payload", ErrPollFailure)
)

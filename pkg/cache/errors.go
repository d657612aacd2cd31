package cache

import (
	"errors"
	"fmt"
	"net"
)

// ErrUnavailable is returned when a remote cache cannot be reached.
var ErrUnavailable = errors.New("cache unavailable")

// transientError marks a Redis failure that another attempt may clear.
type transientError struct{ err error }

func (e *transientError) Error() string { return e.err.Error() }
func (e *transientError) Unwrap() error { return e.err }

// transient classifies err from the Redis client. Network failures become
// retryable [ErrUnavailable] errors; anything else, including redis.Nil,
// is returned unchanged.
func transient(err error) error {
	var netErr net.Error
	if errors.As(err, &netErr) {
		return &transientError{err: fmt.Errorf("%w: %v", ErrUnavailable, err)}
	}
	return err
}

func isTransient(err error) bool {
	var te *transientError
	return errors.As(err, &te)
}

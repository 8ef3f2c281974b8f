package catalog

import (
	"errors"
	"fmt"
)

// ErrCancelled is returned when a lookup was cancelled before it completed.
// Any response that arrives after cancellation is discarded.
var ErrCancelled = errors.New("lookup cancelled")

// ErrInvalidResponse is returned when the catalog answered 2xx with a body
// that is not a JSON document. Callers treat it as zero results.
var ErrInvalidResponse = errors.New("invalid catalog response")

// NetworkError reports a transport failure or a non-success HTTP status.
type NetworkError struct {
	StatusCode int   // 0 for transport failures
	Err        error // nil for status failures
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("catalog returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("catalog request failed: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// IsNetworkError reports whether err is (or wraps) a *NetworkError.
func IsNetworkError(err error) bool {
	var netErr *NetworkError
	return errors.As(err, &netErr)
}

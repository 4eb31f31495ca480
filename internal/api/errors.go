package api

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthenticated is returned when the backend answers 401. The
	// session store has already been cleared by the time callers see it.
	ErrUnauthenticated = errors.New("unauthenticated, please login again")

	// ErrNotFound is returned for operations on an id the backend does not know.
	ErrNotFound = errors.New("resource not found")

	// ErrConflict is returned when the backend rejects a duplicate, such as
	// adding a symbol that is already on the watchlist.
	ErrConflict = errors.New("resource conflict")

	// ErrNetwork is returned when the request never produced an HTTP
	// response: connection refused, DNS failure, timeout.
	ErrNetwork = errors.New("network failure")
)

// StatusError carries a non-2xx backend response that does not map onto one
// of the sentinel errors above.
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend returned status %d", e.Status)
	}
	return fmt.Sprintf("backend returned status %d: %s", e.Status, e.Message)
}

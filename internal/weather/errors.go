package weather

import (
	"errors"
	"fmt"
)

var (
	// ErrNoDataBlock is returned when no inline script carries the forecast data.
	ErrNoDataBlock = errors.New("no embedded forecast data block")
	// ErrMalformedData is returned when the embedded block cannot be isolated or decoded.
	ErrMalformedData = errors.New("malformed forecast data")
	// ErrMissingSpot is returned when the page does not name its spot.
	ErrMissingSpot = errors.New("spot name element not found")
	// ErrBadTimestamp is returned when a forecast slot has an unparseable timestamp.
	ErrBadTimestamp = errors.New("bad forecast timestamp")
)

// ExtractionError reports why a scrape attempt produced no series.
// Kind is one of the Err* sentinels above.
type ExtractionError struct {
	Kind   error
	Detail string
	Err    error
}

func (e *ExtractionError) Error() string {
	msg := e.Kind.Error()
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ExtractionError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// NewExtractionError creates a new extraction error of the given kind.
func NewExtractionError(kind error, detail string, err error) *ExtractionError {
	return &ExtractionError{
		Kind:   kind,
		Detail: detail,
		Err:    err,
	}
}

// TransportError represents a failure fetching the forecast page
type TransportError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

package usecase

import "errors"

var (
	// ErrCountryNotFound is returned when no country matches the query.
	ErrCountryNotFound = errors.New("country not found")
	// ErrUpstream wraps every failure of the country data source other than not-found.
	ErrUpstream = errors.New("country data source unavailable")
)

// ValidationError reports a malformed query parameter.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

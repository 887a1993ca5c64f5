package weather

import "errors"

var (
	// ErrInvalidQuery is returned when year or month values are not integers.
	ErrInvalidQuery = errors.New("invalid weather query")

	// ErrTransport covers network failures and any non-404 error status.
	// It is fatal for the request and never triggers a fallback.
	ErrTransport = errors.New("remote source transport error")

	// ErrFormatNotFound means the remote source answered 404 for one format.
	ErrFormatNotFound = errors.New("format not available remotely")

	// ErrResourceNotFound means no remote format and no local cache file exist.
	ErrResourceNotFound = errors.New("weather data not found")

	// ErrParse means the payload was rejected by every supported format.
	ErrParse = errors.New("weather data could not be parsed")
)

package exchange

import "errors"

var (
	// ErrMissingAPIKey is returned when no exchange rate API key is configured.
	ErrMissingAPIKey = errors.New("exchange rate API key is not configured")

	// ErrUpstream is returned when the rate provider fails or rejects the request.
	ErrUpstream = errors.New("exchange rate provider error")
)

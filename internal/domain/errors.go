package domain

import "errors"

// Sentinel errors shared by the search pipeline. Adapters wrap these with %w so the
// delivery layer can map them to status codes with errors.Is.
var (
	ErrNotFound            = errors.New("not found")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrInvalidCriteria     = errors.New("invalid search criteria")
	ErrUpstreamUnavailable = errors.New("booking service unavailable")
	ErrMalformedResponse   = errors.New("malformed booking service response")
)

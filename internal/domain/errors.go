package domain

import "errors"

var (
	// ErrBadUpstreamFormat marks a source response that does not match its expected shape.
	ErrBadUpstreamFormat = errors.New("upstream: bad response format")
	// ErrUpstreamUnavailable marks a network failure or non-success status from a source.
	ErrUpstreamUnavailable = errors.New("upstream: unavailable")
	// ErrPlaceNotFound is a resolution miss on the maps source; callers treat it as an empty result.
	ErrPlaceNotFound = errors.New("upstream: place not found")

	ErrReviewNotFound   = errors.New("reviews: not found")
	ErrPropertyNotFound = errors.New("properties: not found")
	ErrInvalidWindow    = errors.New("analytics: unknown time window")
	ErrInvalidSort      = errors.New("reviews: unknown sort key")
)

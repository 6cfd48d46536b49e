package service

import "errors"

var (
	// ErrNoEligibleCategories is returned when a quote is requested with an
	// empty car category set. This is a caller contract violation: the
	// calculator has nothing meaningful to minimize over.
	ErrNoEligibleCategories = errors.New("no eligible car categories")

	// ErrUnknownTier is returned when the requested pricing tier does not exist.
	ErrUnknownTier = errors.New("unknown pricing tier")

	// ErrUnknownCategory is returned when a requested car category does not exist.
	ErrUnknownCategory = errors.New("unknown car category")

	// ErrUnknownProvider is returned when the requested provider is not registered.
	ErrUnknownProvider = errors.New("unknown provider")

	// ErrProviderNotImplemented is returned by providers whose pricing logic
	// is a registered placeholder.
	ErrProviderNotImplemented = errors.New("provider pricing not implemented")

	// ErrInvalidDistance is returned when the trip distance is negative.
	ErrInvalidDistance = errors.New("invalid trip distance")

	// ErrInvalidTimeRange is returned when begin or end is missing from a
	// quote request.
	ErrInvalidTimeRange = errors.New("invalid trip time range")
)

package tariff

import "errors"

var (
	// ErrUnrecognizedRow is returned when a table row's label matches no known pattern.
	ErrUnrecognizedRow = errors.New("unrecognized tariff row")

	// ErrIncompletePriceRow is returned when a row requires a price per category
	// but at least one cell is empty.
	ErrIncompletePriceRow = errors.New("incomplete price row")

	// ErrMissingField is returned when a required tariff field was never
	// populated after the full table was read.
	ErrMissingField = errors.New("missing tariff field")

	// ErrMalformedNumber is returned when a price cell cannot be parsed as a
	// decimal-comma number.
	ErrMalformedNumber = errors.New("malformed number")
)

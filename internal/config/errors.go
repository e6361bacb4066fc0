package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and can be checked with
// errors.Is().
var (
	// ErrNoDataFile is returned when no roster file is given.
	ErrNoDataFile = errors.New("no data file specified: use --data")

	// ErrInvalidFormat is returned for an empty or unknown output format list.
	ErrInvalidFormat = errors.New("invalid format: must be one of pdf, md, json, text")

	// ErrNoOutputDir is returned when files are to be written but no output
	// directory is set.
	ErrNoOutputDir = errors.New("no output directory specified")

	// ErrInvalidBatchSize is returned when the batch size is not positive.
	ErrInvalidBatchSize = errors.New("invalid batch size: must be positive")

	// ErrInvalidPageSize is returned for page sizes other than a4 and letter.
	ErrInvalidPageSize = errors.New("invalid page size: must be a4 or letter")

	// ErrInvalidColor is returned when a theme colour component is outside 0..255.
	ErrInvalidColor = errors.New("invalid theme colour: components must be within 0..255")
)

package roster

import "errors"

var (
	// ErrUnsupportedFormat is returned for data files that are neither YAML nor JSON.
	ErrUnsupportedFormat = errors.New("unsupported roster format: use .yaml, .yml or .json")

	// ErrEmptyRoster is returned when a data file lists no students.
	ErrEmptyRoster = errors.New("roster contains no students")

	// ErrStudentNotFound is returned when no student matches a lookup key.
	ErrStudentNotFound = errors.New("student not found")
)

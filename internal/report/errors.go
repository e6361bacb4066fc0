package report

import "errors"

var (
	// ErrUnknownFormat is returned for an output format that has no painter.
	ErrUnknownFormat = errors.New("unknown report format")

	// ErrNotOpened is returned when a document is exported before Open was called.
	ErrNotOpened = errors.New("document not opened")

	// ErrUnknownPageSize is returned by LayoutFor for unsupported sizes.
	ErrUnknownPageSize = errors.New("unknown page size")

	// ErrDuplicateOutput is returned when two students in one run would be
	// written to the same report file.
	ErrDuplicateOutput = errors.New("two students share a report file name")
)

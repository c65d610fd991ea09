package gridlist

import "errors"

var (
	// ErrInvalidColumns is returned by option parsing for a negative column count.
	ErrInvalidColumns = errors.New("gridlist: column count must be >= 0")

	// ErrInvalidLimit is returned by NewTaskRunner for a limit below one.
	ErrInvalidLimit = errors.New("gridlist: task limit must be >= 1")

	// ErrLoaderMissing is returned when an image cache is created without a loader.
	ErrLoaderMissing = errors.New("gridlist: image loader is nil")
)

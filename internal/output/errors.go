package output

import "errors"

var (
	// ErrUnsupportedFormat is returned for report formats with no registered formatter.
	ErrUnsupportedFormat = errors.New("unsupported report format")
	// ErrUnknownSurface is returned when a chart is requested for a surface that does not exist.
	ErrUnknownSurface = errors.New("unknown chart surface")
)

package ingestion

import "github.com/pkg/errors"

var (
	// ErrUnsupportedFormat is returned for file types the parser cannot read.
	ErrUnsupportedFormat = errors.New("unsupported file format")
	// ErrFileTooLarge is returned when a document exceeds the size limit.
	ErrFileTooLarge = errors.New("file too large")
	// ErrNoURLSupport is returned by ParseURL on a parser built without a
	// fetcher.
	ErrNoURLSupport = errors.New("URL ingestion is not configured")
)

package codec

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedVersion is returned when the leading format byte is unknown.
	ErrUnsupportedVersion = errors.New("unsupported format version")

	// ErrCorruptData is returned when the input cannot be decoded into a valid graph.
	ErrCorruptData = errors.New("corrupt data")
)

// VersionError reports the format version found in the input.
//
// It matches ErrUnsupportedVersion with errors.Is.
type VersionError struct {
	Version byte
}

func (e *VersionError) Error() string {
	return fmt.Sprintf("unsupported format version: %d (supported: %d)", e.Version, FormatVersion)
}

func (e *VersionError) Unwrap() error { return ErrUnsupportedVersion }

func corruptf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrCorruptData, fmt.Sprintf(format, args...))
}

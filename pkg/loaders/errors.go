package loaders

import (
	"errors"
	"fmt"
)

var (
	ErrBadVersion      = errors.New("loaders: unsupported scene version")
	ErrTruncated       = errors.New("loaders: unexpected end of scene data")
	ErrUnknownBSDF     = errors.New("loaders: unrecognized bsdf tag")
	ErrIndexOutOfRange = errors.New("loaders: index out of range")
	ErrTrailingData    = errors.New("loaders: trailing bytes after last face")
)

// FormatError reports a scene decoding failure and the field that caused it
type FormatError struct {
	Field  string // e.g. "face[3].bsdf"
	Offset int    // byte offset where the field starts
	Err    error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("scene format error in %s at byte %d: %v", e.Field, e.Offset, e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

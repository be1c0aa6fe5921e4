package vdf

import (
	"errors"
	"fmt"
)

// Sentinel errors for decode failures. Both mean the current entry is
// unusable but the stream itself is still readable.
var (
	ErrTruncated = errors.New("truncated input")
	ErrMalformed = errors.New("malformed input")
)

// DecodeError reports where and why an entry failed to decode.
// It matches ErrTruncated or ErrMalformed through errors.Is.
type DecodeError struct {
	Offset int64
	Detail string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("vdf: %v at offset %d", e.Err, e.Offset)
	}
	return fmt.Sprintf("vdf: %v at offset %d: %s", e.Err, e.Offset, e.Detail)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// IOError is a failure of the underlying stream below its declared
// length. It is fatal to a load.
type IOError struct {
	Op     string
	Offset int64
	Err    error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("vdf: %s at offset %d: %v", e.Op, e.Offset, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// IsRecoverable reports whether err only invalidates the current entry
func IsRecoverable(err error) bool {
	return errors.Is(err, ErrTruncated) || errors.Is(err, ErrMalformed)
}

func truncated(offset int64, detail string) error {
	return &DecodeError{Offset: offset, Detail: detail, Err: ErrTruncated}
}

func malformed(offset int64, detail string) error {
	return &DecodeError{Offset: offset, Detail: detail, Err: ErrMalformed}
}

package seehtml

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput reports a listing with no data at all.
	ErrEmptyInput = errors.New("empty input")
	// ErrUnknownFontCode reports a font code outside 1..7.
	ErrUnknownFontCode = errors.New("unknown font code")
	// ErrTruncatedControl reports a font sentinel at the end of a line.
	ErrTruncatedControl = errors.New("font sentinel without code")
	// ErrUnsupportedCharset reports a charset that is unknown or not single-byte.
	ErrUnsupportedCharset = errors.New("unsupported charset")
	// ErrInvalidTag reports an element name that cannot be written as a tag.
	ErrInvalidTag = errors.New("invalid tag name")
)

// Diagnostic is a recoverable problem found while rendering a line.
type Diagnostic struct {
	// Line is the 1-based input line.
	Line int
	// Column is the 1-based byte offset within the line.
	Column int
	Err    error
}

func (d Diagnostic) Error() string {
	return fmt.Sprintf("%d:%d: %v", d.Line, d.Column, d.Err)
}

func (d Diagnostic) Unwrap() error {
	return d.Err
}

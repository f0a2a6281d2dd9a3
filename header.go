package seehtml

import (
	"bytes"
	"errors"
	"io"
)

const (
	// FontSentinel introduces a font code.
	FontSentinel byte = 0x06
	// EndOfLine ends a line early; the rest of the line is ignored.
	EndOfLine byte = 0x00
)

var (
	declarationMarker = []byte("DEFINE-FILE-INFO")
	createdMarker     = []byte("FILECREATED")
	titleStart        = []byte{FontSentinel, byte(CodeLargeBold)}
	titleEnd          = []byte{FontSentinel, byte(CodeMonospace)}
)

// HeaderBranch tells which header convention a listing uses.
type HeaderBranch uint8

const (
	// HeaderDeclaration: the first line declares file info and the second
	// line is the FILECREATED form.
	HeaderDeclaration HeaderBranch = iota + 1
	// HeaderCreated: the first line is the FILECREATED form.
	HeaderCreated
	// HeaderDelimited: no marker, but the first line carries the file name
	// delimiters.
	HeaderDelimited
	// HeaderNone: the first line carries no header information.
	HeaderNone
)

func (b HeaderBranch) String() string {
	switch b {
	case HeaderDeclaration:
		return "declaration"
	case HeaderCreated:
		return "created"
	case HeaderDelimited:
		return "delimited"
	case HeaderNone:
		return "none"
	}
	return "unknown"
}

// Header is the outcome of ExtractHeader.
type Header struct {
	Branch HeaderBranch
	// Title is the file name without font controls. Only meaningful when
	// HasTitle is set.
	Title    string
	HasTitle bool
	// Lines are the consumed lines, in input order. Each must be rendered
	// exactly once.
	Lines [][]byte
}

// ExtractHeader inspects the first line, and for HeaderDeclaration the line
// read from next, for the file name. A HeaderDeclaration listing that ends
// after its first line yields that line alone. Errors from next other than
// io.EOF are returned.
//
// Lines may alias first; render them before reading further input.
func ExtractHeader(first []byte, next func() ([]byte, error)) (Header, error) {
	switch {
	case bytes.Contains(first, declarationMarker):
		h := Header{Branch: HeaderDeclaration, Lines: [][]byte{bytes.Clone(first)}}
		second, err := next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return h, nil
			}
			return h, err
		}
		second = bytes.Clone(second)
		h.Lines = append(h.Lines, second)
		h.Title, h.HasTitle = createdTitle(second)
		return h, nil
	case bytes.Contains(first, createdMarker):
		h := Header{Branch: HeaderCreated, Lines: [][]byte{first}}
		h.Title, h.HasTitle = createdTitle(first)
		return h, nil
	}
	title, found := delimitedTitle(first)
	if !found {
		return Header{Branch: HeaderNone, Lines: [][]byte{first}}, nil
	}
	return Header{
		Branch:   HeaderDelimited,
		Title:    title,
		HasTitle: title != "",
		Lines:    [][]byte{first},
	}, nil
}

func createdTitle(line []byte) (string, bool) {
	if !bytes.Contains(line, createdMarker) {
		return "", false
	}
	title, found := delimitedTitle(line)
	return title, found && title != ""
}

// delimitedTitle returns the text between the first title delimiters, with
// font controls removed. found reports whether both delimiters exist.
func delimitedTitle(line []byte) (title string, found bool) {
	start := bytes.Index(line, titleStart)
	if start < 0 {
		return "", false
	}
	rest := line[start+len(titleStart):]
	end := bytes.Index(rest, titleEnd)
	if end < 0 {
		return "", false
	}
	return string(stripControls(rest[:end])), true
}

func stripControls(b []byte) []byte {
	out := make([]byte, 0, len(b))
	for i := 0; i < len(b); i++ {
		switch b[i] {
		case FontSentinel:
			i++
		case EndOfLine:
		default:
			out = append(out, b[i])
		}
	}
	return out
}

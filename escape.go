package seehtml

import (
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// Escaper maps listing bytes to their HTML form. The zero value copies bytes
// above 0x7F through unchanged.
type Escaper struct {
	charset *charmap.Charmap
}

// NewEscaper returns an Escaper that decodes bytes above 0x7F with cs.
func NewEscaper(cs *charmap.Charmap) Escaper {
	return Escaper{charset: cs}
}

// AppendByte appends the HTML form of b. The listing glyphs '_' and '^' are
// the left and up arrows. leading selects the non-breaking form of a space,
// which keeps indentation from collapsing.
func (e Escaper) AppendByte(dst []byte, b byte, leading bool) []byte {
	switch b {
	case '<':
		return append(dst, "&lt;"...)
	case '>':
		return append(dst, "&gt;"...)
	case '&':
		return append(dst, "&amp;"...)
	case '_':
		return append(dst, "&larr;"...)
	case '^':
		return append(dst, "&uarr;"...)
	case ' ':
		if leading {
			return append(dst, "&nbsp;"...)
		}
		return append(dst, ' ')
	}
	if b >= utf8.RuneSelf && e.charset != nil {
		return utf8.AppendRune(dst, e.charset.DecodeByte(b))
	}
	return append(dst, b)
}

// AppendText appends the HTML form of every byte of text. Spaces are plain.
func (e Escaper) AppendText(dst []byte, text string) []byte {
	for i := 0; i < len(text); i++ {
		dst = e.AppendByte(dst, text[i], false)
	}
	return dst
}

package seehtml

import (
	"fmt"
	"strings"
)

// Flag identifies one style element. Flags combine as a bit set.
type Flag uint8

const (
	// Bold is the outermost element.
	Bold Flag = 1 << iota
	// Oversize enlarges text. Never open together with Undersize.
	Oversize
	// Undersize shrinks text. Never open together with Oversize.
	Undersize
	// Monospace selects the fixed-width code face.
	Monospace
	// Italic is the innermost element.
	Italic
)

// nestOrder lists the flags outermost first. Open elements always appear in
// the output in this order.
var nestOrder = [...]Flag{Bold, Oversize, Undersize, Monospace, Italic}

// NestOrder returns the single flags, outermost first.
func NestOrder() []Flag {
	out := make([]Flag, len(nestOrder))
	copy(out, nestOrder[:])
	return out
}

func (f Flag) String() string {
	if f == 0 {
		return "none"
	}
	var parts []string
	for _, single := range nestOrder {
		if f&single == 0 {
			continue
		}
		switch single {
		case Bold:
			parts = append(parts, "bold")
		case Oversize:
			parts = append(parts, "oversize")
		case Undersize:
			parts = append(parts, "undersize")
		case Monospace:
			parts = append(parts, "monospace")
		case Italic:
			parts = append(parts, "italic")
		}
	}
	return strings.Join(parts, "|")
}

// FontCode is the byte following FontSentinel in a listing.
type FontCode byte

const (
	// CodeMonospace selects plain code text.
	CodeMonospace FontCode = 1
	// CodeBold selects bold text.
	CodeBold FontCode = 2
	// CodeSmallMonospace selects small code text.
	CodeSmallMonospace FontCode = 3
	// CodeLargeBold selects large bold text, used for file names.
	CodeLargeBold FontCode = 4
	// CodePlain closes every element.
	CodePlain FontCode = 5
	// CodeComment selects small italic text, used for comments.
	CodeComment FontCode = 6
	// CodeBoldAlt selects bold text like CodeBold, but reopens bold when it is
	// open together with monospace.
	CodeBoldAlt FontCode = 7
)

var codeTargets = [...]Flag{
	CodeMonospace:      Monospace,
	CodeBold:           Bold,
	CodeSmallMonospace: Undersize | Monospace,
	CodeLargeBold:      Bold | Oversize,
	CodePlain:          0,
	CodeComment:        Undersize | Italic,
	CodeBoldAlt:        Bold,
}

// Target reports the flag combination selected by c.
func (c FontCode) Target() (Flag, bool) {
	if c < CodeMonospace || int(c) >= len(codeTargets) {
		return 0, false
	}
	return codeTargets[c], true
}

// FontState is the set of currently open style elements.
// The zero value has nothing open.
type FontState struct {
	open Flag
}

// Open returns the open flags.
func (s FontState) Open() Flag {
	return s.open
}

// IsOpen reports whether every flag in f is open.
func (s FontState) IsOpen(f Flag) bool {
	return f != 0 && s.open&f == f
}

// Transition moves s to the combination selected by code and appends the
// close and open tokens that take the output there. Elements nested inside
// the outermost changing element are closed and reopened as needed so the
// output stays well nested. An unknown code leaves s unchanged and returns an
// error wrapping ErrUnknownFontCode.
func (s *FontState) Transition(code FontCode, dst []Token) ([]Token, error) {
	target, ok := code.Target()
	if !ok {
		return dst, fmt.Errorf("%w %d", ErrUnknownFontCode, byte(code))
	}
	from := divergence(s.open, target)
	if code == CodeBoldAlt && s.open&(Bold|Monospace) == Bold|Monospace {
		from = 0
	}
	return s.move(target, from, dst), nil
}

// CloseAll closes every open element, innermost first.
func (s *FontState) CloseAll(dst []Token) []Token {
	return s.move(0, 0, dst)
}

// divergence returns the nesting index of the outermost flag whose state
// differs between open and target.
func divergence(open, target Flag) int {
	for i, f := range nestOrder {
		if open&f != target&f {
			return i
		}
	}
	return len(nestOrder)
}

func (s *FontState) move(target Flag, from int, dst []Token) []Token {
	for i := len(nestOrder) - 1; i >= from; i-- {
		f := nestOrder[i]
		if s.open&f != 0 {
			dst = append(dst, Token{Kind: TokenClose, Flag: f})
			s.open &^= f
		}
	}
	for i := from; i < len(nestOrder); i++ {
		f := nestOrder[i]
		if target&f != 0 {
			dst = append(dst, Token{Kind: TokenOpen, Flag: f})
			s.open |= f
		}
	}
	return dst
}

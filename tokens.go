package seehtml

// Token is one element of the rendered document.
type Token struct {
	Kind TokenKind
	// Text holds raw listing bytes for TokenText and TokenTitle. Backends
	// escape or translate it themselves.
	Text string
	// Flag names the element opened or closed by TokenOpen and TokenClose.
	Flag Flag
}

// TokenKind classifies a Token.
type TokenKind uint8

const (
	// TokenText is a run of ordinary listing bytes.
	TokenText TokenKind = iota
	// TokenSpace is a single space inside a line's leading whitespace.
	TokenSpace
	// TokenOpen opens the element for Token.Flag.
	TokenOpen
	// TokenClose closes the element for Token.Flag.
	TokenClose
	// TokenLineBreak terminates a rendered line.
	TokenLineBreak
	// TokenDocStart starts the document and its head.
	TokenDocStart
	// TokenTitle carries the file name found in the header.
	TokenTitle
	// TokenHeadEnd ends the head and starts the body.
	TokenHeadEnd
	// TokenDocEnd ends the document.
	TokenDocEnd
)

func (k TokenKind) String() string {
	switch k {
	case TokenText:
		return "text"
	case TokenSpace:
		return "space"
	case TokenOpen:
		return "open"
	case TokenClose:
		return "close"
	case TokenLineBreak:
		return "linebreak"
	case TokenDocStart:
		return "docstart"
	case TokenTitle:
		return "title"
	case TokenHeadEnd:
		return "headend"
	case TokenDocEnd:
		return "docend"
	}
	return "unknown"
}

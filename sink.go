package seehtml

// Sink receives tokens from a conversion session.
type Sink interface {
	WriteToken(Token) error
	Flush() error
}

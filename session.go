package seehtml

// Session renders one document into a Sink. It owns the FontState, which
// carries open elements from one line to the next.
type Session struct {
	sink   Sink
	cfg    config
	font   FontState
	line   int
	base   int
	toks   []Token
	tokArr [64]Token
}

// NewSession creates a session writing to sink.
func NewSession(sink Sink, opts ...Option) *Session {
	s := &Session{}
	s.reset(sink, newConfig(opts))
	return s
}

func (s *Session) reset(sink Sink, cfg config) {
	s.sink = sink
	s.cfg = cfg
	s.font = FontState{}
	s.line = 0
	s.base = 0
	s.toks = s.tokArr[:0]
}

// Font returns the current font state.
func (s *Session) Font() FontState {
	return s.font
}

// Begin starts the document.
func (s *Session) Begin() error {
	return s.sink.WriteToken(Token{Kind: TokenDocStart})
}

// WriteHeader writes the title if there is one, ends the head, switches into
// monospace and renders the header lines.
func (s *Session) WriteHeader(h Header) error {
	return s.writeHeader(h, nil)
}

// linePos locates a rendered line in the input.
type linePos struct {
	line int
	base int
}

// writeHeader places header line i at pos[i] when given.
func (s *Session) writeHeader(h Header, pos []linePos) error {
	toks := s.toks[:0]
	if h.HasTitle {
		toks = append(toks, Token{Kind: TokenTitle, Text: h.Title})
	}
	toks = append(toks, Token{Kind: TokenHeadEnd})
	toks, _ = s.font.Transition(CodeMonospace, toks)
	if err := s.write(toks); err != nil {
		return err
	}
	for i, line := range h.Lines {
		p := linePos{line: s.line + 1}
		if i < len(pos) {
			p = pos[i]
		}
		if err := s.renderLine(p.line, p.base, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderLine renders one line followed by a line break. A 0x00 byte ends the
// line early. Unknown font codes and a sentinel without a code are reported
// to the diagnostics callback; the latter also ends the line. Lines are
// numbered from 1 in call order.
func (s *Session) RenderLine(line []byte) error {
	return s.renderLine(s.line+1, 0, line)
}

// renderLine renders a line, or a piece of one starting base bytes into input
// line n.
func (s *Session) renderLine(n, base int, line []byte) error {
	s.line = n
	s.base = base
	line = trimEOL(line)
	toks := s.toks[:0]
	leading := true
	run := -1
	i := 0
scan:
	for ; i < len(line); i++ {
		b := line[i]
		if b != ' ' {
			leading = false
		}
		switch {
		case b == ' ' && leading:
			toks = append(toks, Token{Kind: TokenSpace})
		case b == FontSentinel:
			toks = appendRun(toks, line, run, i)
			run = -1
			if i+1 >= len(line) {
				s.report(i, ErrTruncatedControl)
				break scan
			}
			i++
			var err error
			toks, err = s.font.Transition(FontCode(line[i]), toks)
			if err != nil {
				s.report(i, err)
			}
		case b == EndOfLine:
			break scan
		default:
			if run < 0 {
				run = i
			}
		}
	}
	toks = appendRun(toks, line, run, i)
	toks = append(toks, Token{Kind: TokenLineBreak})
	return s.write(toks)
}

// End closes open elements when configured, ends the document and flushes
// the sink.
func (s *Session) End() error {
	toks := s.toks[:0]
	if s.cfg.closeOpen {
		toks = s.font.CloseAll(toks)
	}
	toks = append(toks, Token{Kind: TokenDocEnd})
	if err := s.write(toks); err != nil {
		return err
	}
	return s.sink.Flush()
}

func (s *Session) write(toks []Token) error {
	for _, tok := range toks {
		if err := s.sink.WriteToken(tok); err != nil {
			s.toks = toks[:0]
			return err
		}
	}
	s.toks = toks[:0]
	return nil
}

func (s *Session) report(col int, err error) {
	if s.cfg.diagnostics == nil {
		return
	}
	s.cfg.diagnostics(Diagnostic{Line: s.line, Column: s.base + col + 1, Err: err})
}

func appendRun(toks []Token, line []byte, start, end int) []Token {
	if start < 0 || end <= start {
		return toks
	}
	return append(toks, Token{Kind: TokenText, Text: string(line[start:end])})
}

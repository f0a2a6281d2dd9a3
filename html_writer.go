package seehtml

import (
	"bufio"
	"io"
)

// HTMLWriter is a Sink that writes an HTML document.
type HTMLWriter struct {
	w    *bufio.Writer
	tags TagSet
	esc  Escaper
	buf  []byte

	bufArr [512]byte
}

// NewHTMLWriter creates an HTML sink. It honors WithTags and WithCharset.
func NewHTMLWriter(w io.Writer, opts ...Option) *HTMLWriter {
	h := &HTMLWriter{}
	h.resetWithConfig(w, newConfig(opts))
	return h
}

// Reset discards buffered output and switches to w, keeping the configuration.
func (h *HTMLWriter) Reset(w io.Writer) {
	if h.w == nil {
		h.w = bufio.NewWriter(w)
		return
	}
	h.w.Reset(w)
}

func (h *HTMLWriter) resetWithConfig(w io.Writer, cfg config) {
	h.Reset(w)
	h.tags = cfg.tags
	h.esc = NewEscaper(cfg.charset)
	h.buf = h.bufArr[:0]
}

// WriteToken writes the markup for tok.
func (h *HTMLWriter) WriteToken(tok Token) error {
	b := h.buf[:0]
	switch tok.Kind {
	case TokenDocStart:
		b = append(b, "<html><head>\n"...)
		if h.esc.charset != nil {
			b = append(b, "<meta charset=\"utf-8\">\n"...)
		}
	case TokenTitle:
		b = append(b, "<title>"...)
		b = h.esc.AppendText(b, tok.Text)
		b = append(b, "</title>\n"...)
	case TokenHeadEnd:
		b = append(b, "</head>\n<body>\n"...)
	case TokenText:
		b = h.esc.AppendText(b, tok.Text)
	case TokenSpace:
		b = h.esc.AppendByte(b, ' ', true)
	case TokenOpen:
		b = append(b, '<')
		b = append(b, h.tags.Name(tok.Flag)...)
		b = append(b, '>')
	case TokenClose:
		b = append(b, "</"...)
		b = append(b, h.tags.Name(tok.Flag)...)
		b = append(b, '>')
	case TokenLineBreak:
		b = append(b, "<br>\n"...)
	case TokenDocEnd:
		b = append(b, "</body></html>\n"...)
	}
	h.buf = b
	_, err := h.w.Write(b)
	return err
}

// Flush writes buffered output to the underlying writer.
func (h *HTMLWriter) Flush() error {
	return h.w.Flush()
}

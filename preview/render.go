package preview

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wrap"
	"golang.org/x/text/encoding/charmap"
	"pkt.systems/seehtml"
)

const ellipsis = "…"

// RenderRequest configures Render.
type RenderRequest struct {
	Reader io.Reader
	Writer io.Writer
	// Width wraps lines to this many columns. 0 disables wrapping.
	Width int
	// Truncate cuts long lines with an ellipsis instead of wrapping them.
	Truncate bool
	Theme    Theme
	// Charset decodes bytes above 0x7F. nil uses ISO 8859-1.
	Charset *charmap.Charmap
	Options []seehtml.Option
}

// Render previews a listing from Reader as ANSI text on Writer.
func Render(req RenderRequest) error {
	if req.Reader == nil {
		return fmt.Errorf("preview: reader is nil")
	}
	if req.Writer == nil {
		return fmt.Errorf("preview: writer is nil")
	}
	r := NewRenderer(req.Writer, req.Width, req.Theme)
	r.truncate = req.Truncate
	if req.Charset != nil {
		r.charset = req.Charset
	}
	if err := seehtml.Decode(seehtml.DecodeRequest{
		Reader:  req.Reader,
		Sink:    r,
		Options: req.Options,
	}); err != nil {
		// Keep what was rendered before the failure.
		_ = r.Flush()
		return fmt.Errorf("preview: %w", err)
	}
	return nil
}

// Renderer is a seehtml.Sink that writes ANSI styled text.
type Renderer struct {
	w        *bufio.Writer
	width    int
	truncate bool
	styles   Styles
	charset  *charmap.Charmap
	plain    bool
	open     seehtml.Flag
	line     []byte
	order    []seehtml.Flag
}

// NewRenderer creates a preview sink. A nil theme uses DefaultTheme.
func NewRenderer(w io.Writer, width int, theme Theme) *Renderer {
	if theme == nil {
		theme = DefaultTheme()
	}
	styles := theme.Styles()
	return &Renderer{
		w:       bufio.NewWriter(w),
		width:   width,
		styles:  styles,
		plain:   styles == Styles{},
		charset: charmap.ISO8859_1,
		order:   seehtml.NestOrder(),
	}
}

// WriteToken renders tok. Text is buffered until the end of its line.
func (r *Renderer) WriteToken(tok seehtml.Token) error {
	switch tok.Kind {
	case seehtml.TokenTitle:
		return r.writeTitle(tok.Text)
	case seehtml.TokenText:
		r.line = r.appendText(r.line, tok.Text)
	case seehtml.TokenSpace:
		r.line = append(r.line, ' ')
	case seehtml.TokenOpen:
		r.open |= tok.Flag
		r.line = r.appendStyle(r.line)
	case seehtml.TokenClose:
		r.open &^= tok.Flag
		r.line = r.appendStyle(r.line)
	case seehtml.TokenLineBreak:
		return r.flushLine()
	case seehtml.TokenDocEnd:
		r.line = r.line[:0]
		if !r.plain {
			_, err := r.w.WriteString(sgrReset)
			return err
		}
	}
	return nil
}

// Flush writes buffered output to the underlying writer.
func (r *Renderer) Flush() error {
	return r.w.Flush()
}

func (r *Renderer) writeTitle(title string) error {
	text := string(r.appendText(nil, title))
	rule := strings.Repeat("=", ansi.PrintableRuneWidth(text))
	if !r.plain {
		text = r.styles.Title.Prefix + text + sgrReset
	}
	_, err := fmt.Fprintf(r.w, "%s\n%s\n\n", text, rule)
	return err
}

func (r *Renderer) flushLine() error {
	text := string(r.line)
	switch {
	case r.width > 0 && r.truncate:
		text = truncate.StringWithTail(text, uint(r.width), ellipsis)
	case r.width > 0:
		text = wrap.String(text, r.width)
	}
	if _, err := r.w.WriteString(text); err != nil {
		return err
	}
	if strings.Contains(text, "\x1b[") {
		if _, err := r.w.WriteString(sgrReset); err != nil {
			return err
		}
	}
	if err := r.w.WriteByte('\n'); err != nil {
		return err
	}
	r.line = r.line[:0]
	if r.open != 0 {
		r.line = r.appendStyle(r.line)
	}
	return nil
}

// appendStyle resets the terminal and reapplies every open element,
// outermost first.
func (r *Renderer) appendStyle(dst []byte) []byte {
	if r.plain {
		return dst
	}
	dst = append(dst, sgrReset...)
	for _, f := range r.order {
		if r.open&f != 0 {
			dst = append(dst, r.styles.For(f).Prefix...)
		}
	}
	return dst
}

func (r *Renderer) appendText(dst []byte, text string) []byte {
	for i := 0; i < len(text); i++ {
		b := text[i]
		switch {
		case b == '_':
			dst = append(dst, "←"...)
		case b == '^':
			dst = append(dst, "↑"...)
		case b < 0x20 && b != '\t' || b == 0x7f:
			// Terminal control bytes are dropped.
		case b >= utf8.RuneSelf:
			dst = utf8.AppendRune(dst, r.charset.DecodeByte(b))
		default:
			dst = append(dst, b)
		}
	}
	return dst
}

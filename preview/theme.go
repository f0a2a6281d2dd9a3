package preview

import (
	"sort"
	"strings"

	"pkt.systems/seehtml"
)

const (
	sgrReset     = "\x1b[0m"
	sgrBold      = "\x1b[1m"
	sgrFaint     = "\x1b[2m"
	sgrItalic    = "\x1b[3m"
	sgrUnderline = "\x1b[4m"
)

// Style describes a terminal style as an ANSI prefix sequence.
type Style struct {
	Prefix string
}

// Styles groups the styles used for each element and the title.
type Styles struct {
	Title     Style
	Monospace Style
	Bold      Style
	Oversize  Style
	Undersize Style
	Italic    Style
}

// For returns the style of a single flag.
func (s Styles) For(f seehtml.Flag) Style {
	switch f {
	case seehtml.Bold:
		return s.Bold
	case seehtml.Oversize:
		return s.Oversize
	case seehtml.Undersize:
		return s.Undersize
	case seehtml.Monospace:
		return s.Monospace
	case seehtml.Italic:
		return s.Italic
	}
	return Style{}
}

// Theme provides named styles for listing previews.
type Theme interface {
	Name() string
	Styles() Styles
}

type theme struct {
	name   string
	styles Styles
}

func (t theme) Name() string   { return t.name }
func (t theme) Styles() Styles { return t.styles }

// NewTheme returns a Theme from a Styles definition.
func NewTheme(name string, styles Styles) Theme {
	return theme{name: name, styles: styles}
}

func style(prefixes ...string) Style {
	var b strings.Builder
	for _, p := range prefixes {
		b.WriteString(p)
	}
	return Style{Prefix: b.String()}
}

var builtinThemes = map[string]Theme{
	"default": theme{name: "default", styles: Styles{
		Title:     style(sgrBold, sgrUnderline),
		Bold:      style(sgrBold),
		Oversize:  style(sgrUnderline),
		Undersize: style(sgrFaint),
		Italic:    style(sgrItalic),
	}},
	"color": theme{name: "color", styles: Styles{
		Title:     style(sgrBold, "\x1b[38;5;213m"),
		Monospace: style("\x1b[38;5;252m"),
		Bold:      style(sgrBold, "\x1b[38;5;75m"),
		Oversize:  style(sgrUnderline, "\x1b[38;5;213m"),
		Undersize: style("\x1b[38;5;245m"),
		Italic:    style(sgrItalic, "\x1b[38;5;114m"),
	}},
	"boring": theme{name: "boring"},
}

// AvailableThemes returns the names of built-in themes.
func AvailableThemes() []string {
	names := make([]string, 0, len(builtinThemes))
	for name := range builtinThemes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ThemeByName returns a built-in theme by name.
func ThemeByName(name string) (Theme, bool) {
	if name == "" {
		return builtinThemes["default"], true
	}
	normalized := strings.ToLower(strings.TrimSpace(name))
	theme, ok := builtinThemes[normalized]
	return theme, ok
}

// DefaultTheme returns the default built-in theme.
func DefaultTheme() Theme {
	return builtinThemes["default"]
}

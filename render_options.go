package seehtml

import "golang.org/x/text/encoding/charmap"

// Option configures conversion behavior.
type Option func(*config)

type config struct {
	tags        TagSet
	closeOpen   bool
	charset     *charmap.Charmap
	maxLine     int
	diagnostics func(Diagnostic)
}

func newConfig(opts []Option) config {
	cfg := config{
		tags:    LegacyTags(),
		maxLine: DefaultMaxLineLength,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	cfg.tags = cfg.tags.WithDefaults()
	if cfg.maxLine <= 0 {
		cfg.maxLine = DefaultMaxLineLength
	}
	return cfg
}

// WithTags sets the element names written for each flag. Empty names keep
// the legacy element.
func WithTags(tags TagSet) Option {
	return func(cfg *config) {
		cfg.tags = tags
	}
}

// WithCloseOpenTags closes elements still open at the end of the document.
// By default they are left open, as the legacy converter did.
func WithCloseOpenTags(enabled bool) Option {
	return func(cfg *config) {
		cfg.closeOpen = enabled
	}
}

// WithCharset decodes bytes >= 0x80 with cs and writes them as UTF-8.
// A nil cs copies them through unchanged.
func WithCharset(cs *charmap.Charmap) Option {
	return func(cfg *config) {
		cfg.charset = cs
	}
}

// WithMaxLineLength sets the longest line kept whole. Longer lines are
// split into consecutive lines.
func WithMaxLineLength(n int) Option {
	return func(cfg *config) {
		cfg.maxLine = n
	}
}

// WithDiagnostics receives recoverable problems such as unknown font codes.
func WithDiagnostics(fn func(Diagnostic)) Option {
	return func(cfg *config) {
		cfg.diagnostics = fn
	}
}

package main

import (
	"github.com/BurntSushi/toml"
)

// fileConfig is the TOML config file. Zero values leave the flag default.
type fileConfig struct {
	Format    string     `toml:"format"`
	Width     int        `toml:"width"`
	Theme     string     `toml:"theme"`
	Charset   string     `toml:"charset"`
	CloseTags bool       `toml:"close_tags"`
	MaxLine   int        `toml:"max_line"`
	Quiet     bool       `toml:"quiet"`
	Tags      tagsConfig `toml:"tags"`
}

type tagsConfig struct {
	Monospace string `toml:"monospace"`
	Bold      string `toml:"bold"`
	Oversize  string `toml:"oversize"`
	Undersize string `toml:"undersize"`
	Italic    string `toml:"italic"`
}

func loadConfig(path string) (fileConfig, error) {
	var fc fileConfig
	if _, err := toml.DecodeFile(path, &fc); err != nil {
		return fileConfig{}, err
	}
	return fc, nil
}

// apply copies file values into opts for every flag the command line did
// not set.
func (fc fileConfig) apply(opts *options, changed func(string) bool) {
	if fc.Format != "" && !changed("format") {
		opts.format = fc.Format
	}
	if fc.Width > 0 && !changed("width") {
		opts.width = fc.Width
	}
	if fc.Theme != "" && !changed("theme") {
		opts.themeName = fc.Theme
	}
	if fc.Charset != "" && !changed("charset") {
		opts.charset = fc.Charset
	}
	if fc.CloseTags && !changed("close-tags") {
		opts.closeTags = true
	}
	if fc.MaxLine > 0 && !changed("max-line") {
		opts.maxLine = fc.MaxLine
	}
	if fc.Quiet && !changed("quiet") {
		opts.quiet = true
	}
	opts.tags.Monospace = fc.Tags.Monospace
	opts.tags.Bold = fc.Tags.Bold
	opts.tags.Oversize = fc.Tags.Oversize
	opts.tags.Undersize = fc.Tags.Undersize
	opts.tags.Italic = fc.Tags.Italic
}

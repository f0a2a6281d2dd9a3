package seehtml

import "fmt"

// TagSet names the HTML element written for each flag.
type TagSet struct {
	Monospace string
	Bold      string
	Oversize  string
	Undersize string
	Italic    string
}

// LegacyTags returns the elements the legacy converter wrote.
func LegacyTags() TagSet {
	return TagSet{
		Monospace: "tt",
		Bold:      "b",
		Oversize:  "big",
		Undersize: "small",
		Italic:    "i",
	}
}

// WithDefaults fills empty names from LegacyTags.
func (t TagSet) WithDefaults() TagSet {
	def := LegacyTags()
	if t.Monospace == "" {
		t.Monospace = def.Monospace
	}
	if t.Bold == "" {
		t.Bold = def.Bold
	}
	if t.Oversize == "" {
		t.Oversize = def.Oversize
	}
	if t.Undersize == "" {
		t.Undersize = def.Undersize
	}
	if t.Italic == "" {
		t.Italic = def.Italic
	}
	return t
}

// Name returns the element name for a single flag.
func (t TagSet) Name(f Flag) string {
	switch f {
	case Bold:
		return t.Bold
	case Oversize:
		return t.Oversize
	case Undersize:
		return t.Undersize
	case Monospace:
		return t.Monospace
	case Italic:
		return t.Italic
	}
	return ""
}

// Validate reports names that are not plain element names.
func (t TagSet) Validate() error {
	for _, f := range nestOrder {
		name := t.Name(f)
		if !isTagName(name) {
			return fmt.Errorf("%w %q for %s", ErrInvalidTag, name, f)
		}
	}
	return nil
}

func isTagName(name string) bool {
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case i > 0 && (c >= '0' && c <= '9' || c == '-'):
		default:
			return false
		}
	}
	return true
}

package seehtml

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
)

// CharsetByName looks up a single-byte charset by its WHATWG name or label,
// for example "windows-1252", "latin1" or "macintosh". An empty name or
// "raw" returns nil, meaning bytes are copied through.
func CharsetByName(name string) (*charmap.Charmap, error) {
	name = strings.TrimSpace(name)
	if name == "" || strings.EqualFold(name, "raw") {
		return nil, nil
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("%w %q", ErrUnsupportedCharset, name)
	}
	cs, ok := enc.(*charmap.Charmap)
	if !ok {
		return nil, fmt.Errorf("%w %q: not a single-byte charset", ErrUnsupportedCharset, name)
	}
	return cs, nil
}

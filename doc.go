// Package seehtml renders font-coded source listings to HTML.
//
// Listings produced by Interlisp-style editors embed their typography in the
// text itself: a 0x06 byte followed by a font code switches the style of the
// characters that follow, and the file header carries the file name between
// the byte pairs 0x06 0x04 and 0x06 0x01. This package decodes that protocol
// into a flat token stream and writes it as an HTML document whose tags
// reproduce the listing's monospace, bold, size and italic runs.
//
// Core properties:
//   - One pass over an io.Reader, one line at a time
//   - Tags are always well nested; open tags persist across lines
//   - The header's file name becomes the document title
//   - Backends consume tokens through the Sink interface
//
// Example:
//
//	f, err := os.Open("DEMO.LISP")
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer f.Close()
//	err = seehtml.Convert(seehtml.ConvertRequest{
//		Reader: f,
//		Writer: os.Stdout,
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
// Conversion can be customized with Options such as WithCharset or
// WithCloseOpenTags.
package seehtml

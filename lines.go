package seehtml

import (
	"bufio"
	"bytes"
	"io"
)

// DefaultMaxLineLength is the longest line kept whole unless configured.
const DefaultMaxLineLength = 64 << 10

// LineReader splits a listing into lines. A line ends at "\n", "\r\n" or a
// bare "\r"; the terminator is not part of the line. Lines longer than the
// maximum length are split into consecutive lines, never between a font
// sentinel and its code.
type LineReader struct {
	sc *bufio.Scanner

	line    int
	offset  int
	prevLen int
	split   bool
	cont    bool
}

// NewLineReader reads lines of at most maxLen bytes from r. A maxLen <= 0
// uses DefaultMaxLineLength.
func NewLineReader(r io.Reader, maxLen int) *LineReader {
	if maxLen <= 0 {
		maxLen = DefaultMaxLineLength
	}
	l := &LineReader{sc: bufio.NewScanner(r)}
	l.sc.Buffer(make([]byte, 0, min(4096, maxLen+2)), maxLen+2)
	l.sc.Split(splitLines(maxLen, &l.split))
	return l
}

// ReadLine returns the next line. The slice is only valid until the next
// call. It returns io.EOF after the last line.
func (l *LineReader) ReadLine() ([]byte, error) {
	if l.sc.Scan() {
		tok := l.sc.Bytes()
		if l.cont {
			l.offset += l.prevLen
		} else {
			l.line++
			l.offset = 0
		}
		l.cont = l.split
		l.prevLen = len(tok)
		return tok, nil
	}
	if err := l.sc.Err(); err != nil {
		return nil, err
	}
	return nil, io.EOF
}

// Line returns the 1-based input line of the last line read. Pieces of a
// split line share their input line.
func (l *LineReader) Line() int {
	return l.line
}

// Offset returns the byte offset of the last line read within its input
// line. It is non-zero only for the second and later pieces of a split line.
func (l *LineReader) Offset() int {
	return l.offset
}

// splitLines sets *split when it returns a piece of a line longer than
// maxLen rather than a whole line.
func splitLines(maxLen int, split *bool) bufio.SplitFunc {
	return func(data []byte, atEOF bool) (int, []byte, error) {
		*split = false
		if atEOF && len(data) == 0 {
			return 0, nil, nil
		}
		window := data
		if len(window) > maxLen+1 {
			window = window[:maxLen+1]
		}
		if i := bytes.IndexAny(window, "\r\n"); i >= 0 {
			if data[i] == '\n' {
				return i + 1, data[:i], nil
			}
			if i+1 < len(data) {
				if data[i+1] == '\n' {
					return i + 2, data[:i], nil
				}
				return i + 1, data[:i], nil
			}
			if atEOF {
				return i + 1, data[:i], nil
			}
			// A following '\n' may still arrive.
			return 0, nil, nil
		}
		if len(data) > maxLen {
			n := splitPoint(data, maxLen)
			*split = true
			return n, data[:n], nil
		}
		if atEOF {
			return len(data), data, nil
		}
		return 0, nil, nil
	}
}

// splitPoint returns maxLen, or maxLen-1 when the byte at maxLen-1 is a font
// sentinel whose code would land on the next line. Pairs are matched from the
// start of data since 0x06 is also a valid code.
func splitPoint(data []byte, maxLen int) int {
	i := 0
	for i < maxLen {
		if data[i] == FontSentinel {
			i += 2
			continue
		}
		i++
	}
	if i > maxLen && maxLen > 1 {
		return maxLen - 1
	}
	return maxLen
}

// trimEOL strips a trailing "\n", "\r\n" or "\r".
func trimEOL(line []byte) []byte {
	if n := len(line); n > 0 && line[n-1] == '\n' {
		line = line[:n-1]
	}
	if n := len(line); n > 0 && line[n-1] == '\r' {
		line = line[:n-1]
	}
	return line
}

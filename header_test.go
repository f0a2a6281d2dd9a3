package seehtml

import (
	"errors"
	"io"
	"testing"
)

func nextFrom(lines ...string) func() ([]byte, error) {
	return func() ([]byte, error) {
		if len(lines) == 0 {
			return nil, io.EOF
		}
		line := lines[0]
		lines = lines[1:]
		return []byte(line), nil
	}
}

func noNext(t *testing.T) func() ([]byte, error) {
	return func() ([]byte, error) {
		t.Fatalf("unexpected second line read")
		return nil, io.EOF
	}
}

func lineStrings(h Header) []string {
	out := make([]string, len(h.Lines))
	for i, l := range h.Lines {
		out[i] = string(l)
	}
	return out
}

func TestExtractHeaderDeclaration(t *testing.T) {
	first := `(DEFINE-FILE-INFO PACKAGE "INTERLISP")`
	second := "(FILECREATED \"date\" {DSK}\x06\x04FOO.;1\x06\x01 99)"
	h, err := ExtractHeader([]byte(first), nextFrom(second, "not read"))
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if h.Branch != HeaderDeclaration {
		t.Fatalf("branch %s", h.Branch)
	}
	if !h.HasTitle || h.Title != "FOO.;1" {
		t.Fatalf("title %q %v", h.Title, h.HasTitle)
	}
	got := lineStrings(h)
	if len(got) != 2 || got[0] != first || got[1] != second {
		t.Fatalf("lines %q", got)
	}
}

func TestExtractHeaderDeclarationNeedsCreatedMarker(t *testing.T) {
	h, err := ExtractHeader([]byte("(DEFINE-FILE-INFO)"), nextFrom("\x06\x04FOO\x06\x01"))
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if h.HasTitle {
		t.Fatalf("unexpected title %q", h.Title)
	}
	if len(h.Lines) != 2 {
		t.Fatalf("expected both lines, got %q", lineStrings(h))
	}
}

func TestExtractHeaderDeclarationAtEOF(t *testing.T) {
	h, err := ExtractHeader([]byte("(DEFINE-FILE-INFO)"), nextFrom())
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if h.Branch != HeaderDeclaration || h.HasTitle {
		t.Fatalf("unexpected header %+v", h)
	}
	if got := lineStrings(h); len(got) != 1 || got[0] != "(DEFINE-FILE-INFO)" {
		t.Fatalf("expected the first line once, got %q", got)
	}
}

func TestExtractHeaderDeclarationReadError(t *testing.T) {
	boom := errors.New("boom")
	_, err := ExtractHeader([]byte("(DEFINE-FILE-INFO)"), func() ([]byte, error) { return nil, boom })
	if !errors.Is(err, boom) {
		t.Fatalf("expected read error, got %v", err)
	}
}

func TestExtractHeaderCreated(t *testing.T) {
	first := "(FILECREATED \"date\" \x06\x04BAR\x06\x01)"
	h, err := ExtractHeader([]byte(first), noNext(t))
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if h.Branch != HeaderCreated || !h.HasTitle || h.Title != "BAR" {
		t.Fatalf("unexpected header %+v", h)
	}
	if got := lineStrings(h); len(got) != 1 || got[0] != first {
		t.Fatalf("lines %q", got)
	}
}

func TestExtractHeaderDelimited(t *testing.T) {
	first := "\x06\x04MYFILE.LISP\x06\x01"
	h, err := ExtractHeader([]byte(first), noNext(t))
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if h.Branch != HeaderDelimited || !h.HasTitle || h.Title != "MYFILE.LISP" {
		t.Fatalf("unexpected header %+v", h)
	}
}

func TestExtractHeaderNone(t *testing.T) {
	cases := []string{
		"hello",
		"\x06\x04unterminated",
		"\x06\x01\x06\x04",
	}
	for _, first := range cases {
		h, err := ExtractHeader([]byte(first), noNext(t))
		if err != nil {
			t.Fatalf("extract %q: %v", first, err)
		}
		if h.Branch != HeaderNone || h.HasTitle {
			t.Fatalf("%q: unexpected header %+v", first, h)
		}
		if got := lineStrings(h); len(got) != 1 || got[0] != first {
			t.Fatalf("%q: lines %q", first, got)
		}
	}
}

func TestExtractHeaderTitleCleanup(t *testing.T) {
	h, err := ExtractHeader([]byte("\x06\x04A\x06\x02B\x00C\x06\x01"), noNext(t))
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if h.Title != "ABC" {
		t.Fatalf("expected font controls stripped, got %q", h.Title)
	}
	h, err = ExtractHeader([]byte("x\x06\x04\x06\x01y"), noNext(t))
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if h.Branch != HeaderDelimited || h.HasTitle {
		t.Fatalf("empty file name should not produce a title: %+v", h)
	}
}

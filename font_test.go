package seehtml

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func openTok(f Flag) Token  { return Token{Kind: TokenOpen, Flag: f} }
func closeTok(f Flag) Token { return Token{Kind: TokenClose, Flag: f} }

// checkNesting replays toks over an initial stack and fails if a close does
// not match the innermost open element. It returns the final stack.
func checkNesting(t *testing.T, stack []Flag, toks []Token) []Flag {
	t.Helper()
	for _, tok := range toks {
		switch tok.Kind {
		case TokenOpen:
			stack = append(stack, tok.Flag)
		case TokenClose:
			if len(stack) == 0 || stack[len(stack)-1] != tok.Flag {
				t.Fatalf("close %s does not match open stack %v in %v", tok.Flag, stack, toks)
			}
			stack = stack[:len(stack)-1]
		}
	}
	return stack
}

func stackFlags(stack []Flag) Flag {
	var f Flag
	for _, s := range stack {
		f |= s
	}
	return f
}

func TestTransitionTargets(t *testing.T) {
	cases := map[FontCode]Flag{
		CodeMonospace:      Monospace,
		CodeBold:           Bold,
		CodeSmallMonospace: Undersize | Monospace,
		CodeLargeBold:      Bold | Oversize,
		CodePlain:          0,
		CodeComment:        Undersize | Italic,
		CodeBoldAlt:        Bold,
	}
	for code, want := range cases {
		var s FontState
		if _, err := s.Transition(code, nil); err != nil {
			t.Fatalf("code %d: %v", code, err)
		}
		if s.Open() != want {
			t.Fatalf("code %d: open %s want %s", code, s.Open(), want)
		}
	}
}

func TestTransitionSequencesStayNested(t *testing.T) {
	codes := []FontCode{1, 2, 3, 4, 5, 6, 7}
	var walk func(s FontState, stack []Flag, depth int)
	walk = func(s FontState, stack []Flag, depth int) {
		if depth == 0 {
			return
		}
		for _, code := range codes {
			next := s
			toks, err := next.Transition(code, nil)
			if err != nil {
				t.Fatalf("code %d: %v", code, err)
			}
			nextStack := checkNesting(t, append([]Flag(nil), stack...), toks)
			want, _ := code.Target()
			if next.Open() != want {
				t.Fatalf("after code %d: open %s want %s", code, next.Open(), want)
			}
			if stackFlags(nextStack) != want || len(nextStack) != countFlags(want) {
				t.Fatalf("after code %d: emitted stack %v want %s", code, nextStack, want)
			}
			walk(next, nextStack, depth-1)
		}
	}
	walk(FontState{}, nil, 4)
}

func countFlags(f Flag) int {
	n := 0
	for _, single := range NestOrder() {
		if f&single != 0 {
			n++
		}
	}
	return n
}

func TestTransitionRandomWalk(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	var s FontState
	var stack []Flag
	for i := 0; i < 5000; i++ {
		code := FontCode(rng.Intn(9))
		toks, err := s.Transition(code, nil)
		want, ok := code.Target()
		if !ok {
			if !errors.Is(err, ErrUnknownFontCode) || len(toks) != 0 {
				t.Fatalf("code %d: expected unknown code error without tokens, got %v %v", code, err, toks)
			}
			continue
		}
		stack = checkNesting(t, stack, toks)
		if s.Open() != want || stackFlags(stack) != want {
			t.Fatalf("step %d code %d: state %s stack %v want %s", i, code, s.Open(), stack, want)
		}
		for j := 1; j < len(stack); j++ {
			if stack[j-1] > stack[j] {
				t.Fatalf("step %d: stack %v out of nesting order", i, stack)
			}
		}
	}
}

func TestTransitionIdempotent(t *testing.T) {
	for code := CodeMonospace; code <= CodeBoldAlt; code++ {
		var s FontState
		if _, err := s.Transition(code, nil); err != nil {
			t.Fatalf("code %d: %v", code, err)
		}
		toks, err := s.Transition(code, nil)
		if err != nil {
			t.Fatalf("code %d: %v", code, err)
		}
		if len(toks) != 0 {
			t.Fatalf("code %d applied twice emitted %v", code, toks)
		}
	}
}

func TestCommentAfterMonospace(t *testing.T) {
	s := FontState{open: Monospace}
	toks, err := s.Transition(CodeComment, nil)
	if err != nil {
		t.Fatalf("transition: %v", err)
	}
	want := []Token{closeTok(Monospace), openTok(Undersize), openTok(Italic)}
	if diff := cmp.Diff(want, toks); diff != "" {
		t.Fatalf("code 6 after monospace (-want +got):\n%s", diff)
	}
	toks, err = s.Transition(CodeMonospace, nil)
	if err != nil {
		t.Fatalf("transition: %v", err)
	}
	want = []Token{closeTok(Italic), closeTok(Undersize), openTok(Monospace)}
	if diff := cmp.Diff(want, toks); diff != "" {
		t.Fatalf("code 1 after code 6 (-want +got):\n%s", diff)
	}
}

func TestInnerElementReopened(t *testing.T) {
	s := FontState{open: Undersize | Monospace}
	toks, err := s.Transition(CodeMonospace, nil)
	if err != nil {
		t.Fatalf("transition: %v", err)
	}
	want := []Token{closeTok(Monospace), closeTok(Undersize), openTok(Monospace)}
	if diff := cmp.Diff(want, toks); diff != "" {
		t.Fatalf("code 1 after code 3 (-want +got):\n%s", diff)
	}
}

func TestBoldAltReopensBoldOverMonospace(t *testing.T) {
	s := FontState{open: Bold | Monospace}
	toks, err := s.Transition(CodeBold, nil)
	if err != nil {
		t.Fatalf("transition: %v", err)
	}
	if diff := cmp.Diff([]Token{closeTok(Monospace)}, toks); diff != "" {
		t.Fatalf("code 2 (-want +got):\n%s", diff)
	}

	s = FontState{open: Bold | Monospace}
	toks, err = s.Transition(CodeBoldAlt, nil)
	if err != nil {
		t.Fatalf("transition: %v", err)
	}
	want := []Token{closeTok(Monospace), closeTok(Bold), openTok(Bold)}
	if diff := cmp.Diff(want, toks); diff != "" {
		t.Fatalf("code 7 (-want +got):\n%s", diff)
	}
	if s.Open() != Bold {
		t.Fatalf("expected bold only, got %s", s.Open())
	}
}

func TestBoldAltMatchesBoldFromMonospace(t *testing.T) {
	a := FontState{open: Monospace}
	b := FontState{open: Monospace}
	ta, _ := a.Transition(CodeBold, nil)
	tb, _ := b.Transition(CodeBoldAlt, nil)
	if diff := cmp.Diff(ta, tb); diff != "" {
		t.Fatalf("codes 2 and 7 differ from monospace (-2 +7):\n%s", diff)
	}
}

func TestUnknownFontCode(t *testing.T) {
	s := FontState{open: Monospace}
	for _, code := range []FontCode{0, 8, 0x41, 0xff} {
		toks, err := s.Transition(code, nil)
		if !errors.Is(err, ErrUnknownFontCode) {
			t.Fatalf("code %d: expected ErrUnknownFontCode, got %v", code, err)
		}
		if len(toks) != 0 || s.Open() != Monospace {
			t.Fatalf("code %d changed state: %v %s", code, toks, s.Open())
		}
	}
}

func TestCloseAll(t *testing.T) {
	s := FontState{open: Undersize | Italic}
	toks := s.CloseAll(nil)
	if diff := cmp.Diff([]Token{closeTok(Italic), closeTok(Undersize)}, toks); diff != "" {
		t.Fatalf("close all (-want +got):\n%s", diff)
	}
	if s.Open() != 0 {
		t.Fatalf("expected nothing open, got %s", s.Open())
	}
}

func TestFlagString(t *testing.T) {
	if got := (Bold | Italic).String(); got != "bold|italic" {
		t.Fatalf("unexpected flag string %q", got)
	}
	if got := Flag(0).String(); got != "none" {
		t.Fatalf("unexpected empty flag string %q", got)
	}
}

package cppsig

import "testing"

func TestScanTypeAlternation(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"int", "int"},
		{"unsigned long long", "unsigned long long"},
		{"signed char", "signed char"},
		{"int32_t", "int32_t"},     // keyword boundary: not fundamental
		{"charlie", "charlie"},     // identifier that starts with a keyword
		{"std::string", "std::string"},
		{"int_fast8_t", "int_fast8_t"},
		{"QString", "QString"},
	}
	for _, tt := range tests {
		s := &scanner{src: tt.input}
		got, ok := scanType(s)
		if !ok {
			t.Fatalf("scanType(%q) failed", tt.input)
		}
		if got != tt.want {
			t.Fatalf("scanType(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestScanTypePrefersLongerQualifiedMatch(t *testing.T) {
	// "int" alone is fundamental, but "int::x" reads further as a qualified
	// name, so the longer alternative must win.
	s := &scanner{src: "long LongName"}
	got, _ := scanType(s)
	if got != "long" {
		t.Fatalf("got %q", got)
	}
	s = &scanner{src: "int::member"}
	got, _ = scanType(s)
	if got != "int::member" {
		t.Fatalf("got %q", got)
	}
}

func TestScanQualifier(t *testing.T) {
	s := &scanner{src: "const typename T"}
	q, ok := scanQualifier(s)
	if !ok || q != "const typename" {
		t.Fatalf("got %q ok=%v", q, ok)
	}
	s = &scanner{src: "volatile int"}
	if _, ok := scanQualifier(s); ok {
		t.Fatalf("volatile is not in the qualifier set")
	}
	if s.pos != 0 {
		t.Fatalf("position not restored: %d", s.pos)
	}
}

func TestScanMarker(t *testing.T) {
	tests := []struct {
		input string
		want  string
		ok    bool
	}{
		{"*", "*", true},
		{"&", "&", true},
		{"*...", "*...", true},
		{"&...", "&...", true},
		{"* ...", "*", true}, // ellipsis must be adjacent
		{"...", "", false},
		{"x", "", false},
	}
	for _, tt := range tests {
		s := &scanner{src: tt.input}
		got, ok := scanMarker(s)
		if ok != tt.ok || got != tt.want {
			t.Fatalf("scanMarker(%q) = (%q, %v), want (%q, %v)", tt.input, got, ok, tt.want, tt.ok)
		}
	}
}

func TestScanKeywordBoundary(t *testing.T) {
	s := &scanner{src: "constant"}
	if s.scanKeyword("const") {
		t.Fatalf("const must not match a prefix of 'constant'")
	}
	if s.pos != 0 {
		t.Fatalf("position not restored: %d", s.pos)
	}
	s = &scanner{src: "  const *"}
	if !s.scanKeyword("const") {
		t.Fatalf("const should match with leading spaces")
	}
}

func TestScanQuoted(t *testing.T) {
	for _, in := range []string{`"hello"`, `'c'`, `"esc\"aped"`} {
		s := &scanner{src: in}
		if !scanQuoted(s) || !s.eof() {
			t.Fatalf("scanQuoted(%q) failed (pos=%d)", in, s.pos)
		}
	}
	s := &scanner{src: `"unterminated`}
	if scanQuoted(s) {
		t.Fatalf("unterminated literal should fail")
	}
}

func TestScanSkipPairSingleLevel(t *testing.T) {
	// Skip-to-close is single level: the first ')' ends the region.
	s := &scanner{src: "(a(b)c)"}
	if !scanParenPair(s) {
		t.Fatalf("scanParenPair failed")
	}
	if s.rest() != "c)" {
		t.Fatalf("rest = %q", s.rest())
	}
	s = &scanner{src: "[i]"}
	if !scanBracketPair(s) || !s.eof() {
		t.Fatalf("scanBracketPair failed")
	}
}

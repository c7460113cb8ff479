// Package cppsig parses and canonicalizes C++ declaration signatures as they
// appear in documentation-generator indexes (Doxygen tag files and the
// cross-references written against them). Given a symbol like
// "Class::method(const std::string &, int) const" it produces a stable key
// that is invariant under whitespace, argument names and default values, so
// two spellings of the same signature compare equal.
//
// The grammar deliberately covers the restricted declarator subset that
// documentation generators emit, not full C++. Unsupported shapes fail with
// a *ParseError; callers are expected to skip the offending entry.
package cppsig

import "strings"

// Keyword sets are built once at package init and never written afterwards,
// so the grammar can be shared by any number of concurrent callers.
var (
	qualifierWords = wordSet("const", "typename", "struct", "enum")

	fundamentalWords = wordSet("bool", "short", "int", "long", "signed",
		"unsigned", "char", "float", "double")
)

func wordSet(words ...string) map[string]bool {
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}

// scanner is a cursor over the input string. Recognizers below either
// consume input and report ok, or leave the position untouched and report
// !ok; alternation is expressed by the caller trying the next rule.
type scanner struct {
	src string
	pos int
}

func (s *scanner) eof() bool { return s.pos >= len(s.src) }

func (s *scanner) peek() byte { return s.src[s.pos] }

func (s *scanner) rest() string { return s.src[s.pos:] }

func (s *scanner) skipSpaces() {
	for !s.eof() && (s.peek() == ' ' || s.peek() == '\t' || s.peek() == '\n') {
		s.pos++
	}
}

// consume advances over c if it is the next byte (whitespace skipped first).
func (s *scanner) consume(c byte) bool {
	save := s.pos
	s.skipSpaces()
	if !s.eof() && s.peek() == c {
		s.pos++
		return true
	}
	s.pos = save
	return false
}

// scanWhile returns the maximal run of bytes satisfying pred, which may be
// empty. It does not skip leading whitespace.
func (s *scanner) scanWhile(pred func(byte) bool) string {
	start := s.pos
	for !s.eof() && pred(s.peek()) {
		s.pos++
	}
	return s.src[start:s.pos]
}

func isIdentByte(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_'
}

// isTypeByte admits the characters of a qualified name: identifier
// characters plus the '::' separator.
func isTypeByte(c byte) bool { return isIdentByte(c) || c == ':' }

func isDigitByte(c byte) bool { return c >= '0' && c <= '9' || c == '-' || c == '.' }

func isBitOpByte(c byte) bool { return c == '|' || c == '&' || c == '^' }

// scanKeyword consumes word if the next identifier token equals it exactly.
// Matching the whole identifier run keeps "const" from biting a parameter
// named "constant".
func (s *scanner) scanKeyword(word string) bool {
	save := s.pos
	s.skipSpaces()
	if s.scanWhile(isIdentByte) == word {
		return true
	}
	s.pos = save
	return false
}

// scanQualifier recognizes one or more qualifier keywords (const, typename,
// struct, enum) and returns them space-joined in source order.
func scanQualifier(s *scanner) (string, bool) {
	return scanKeywordSeq(s, qualifierWords)
}

// scanFundamentalType recognizes one or more fundamental-type keywords
// ("unsigned long", "signed char", ...) space-joined.
func scanFundamentalType(s *scanner) (string, bool) {
	return scanKeywordSeq(s, fundamentalWords)
}

func scanKeywordSeq(s *scanner, set map[string]bool) (string, bool) {
	var parts []string
	for {
		save := s.pos
		s.skipSpaces()
		w := s.scanWhile(isIdentByte)
		if w == "" || !set[w] {
			s.pos = save
			break
		}
		parts = append(parts, w)
	}
	if len(parts) == 0 {
		return "", false
	}
	return strings.Join(parts, " "), true
}

// scanQualifiedType recognizes an identifier-like name (alphanumerics, ':'
// and '_'), optionally followed immediately by a template-argument region
// and an optional trailing name ("Foo::Bar<T>::Baz" shapes). The template
// region is rewritten in canonical padded form.
func scanQualifiedType(s *scanner) (string, bool) {
	save := s.pos
	s.skipSpaces()
	word := s.scanWhile(isTypeByte)
	if word == "" {
		s.pos = save
		return "", false
	}
	// Template region and trailing name must be adjacent to the base name;
	// a detached "<...>" belongs to the (discarded) argument name instead.
	if s.eof() || s.peek() != '<' {
		return word, true
	}
	region, ok := scanTemplateRegion(s)
	if !ok {
		return word, true
	}
	out := word + flattenTemplate(region)
	out += s.scanWhile(isTypeByte)
	return out, true
}

// scanType recognizes either a fundamental keyword sequence or a
// qualified/templated name. Both alternatives are tried and the longer
// match wins; on equal length the fundamental reading is preferred.
// Fundamental keywords are also valid identifiers, so first-match-wins
// would misread "unsigned long" as the identifier "unsigned".
func scanType(s *scanner) (string, bool) {
	save := s.pos
	fType, fOK := scanFundamentalType(s)
	fEnd := s.pos
	s.pos = save
	qType, qOK := scanQualifiedType(s)
	qEnd := s.pos
	switch {
	case fOK && (!qOK || fEnd >= qEnd):
		s.pos = fEnd
		return fType, true
	case qOK:
		s.pos = qEnd
		return qType, true
	default:
		s.pos = save
		return "", false
	}
}

// scanMarker recognizes a pointer/reference marker: '*' or '&' with an
// optional immediately-following "...".
func scanMarker(s *scanner) (string, bool) {
	save := s.pos
	s.skipSpaces()
	if s.eof() || (s.peek() != '*' && s.peek() != '&') {
		s.pos = save
		return "", false
	}
	m := string(s.peek())
	s.pos++
	if strings.HasPrefix(s.rest(), "...") {
		s.pos += 3
		m += "..."
	}
	return m, true
}

// scanNumber recognizes a numeric/sign literal: any run of digits, '-' and
// '.' ("-1", "3.6", "5").
func scanNumber(s *scanner) bool {
	save := s.pos
	s.skipSpaces()
	if s.scanWhile(isDigitByte) == "" {
		s.pos = save
		return false
	}
	return true
}

// scanQuoted recognizes a single- or double-quoted string literal with
// backslash escapes.
func scanQuoted(s *scanner) bool {
	save := s.pos
	s.skipSpaces()
	if s.eof() {
		s.pos = save
		return false
	}
	quote := s.peek()
	if quote != '"' && quote != '\'' {
		s.pos = save
		return false
	}
	for i := s.pos + 1; i < len(s.src); i++ {
		switch s.src[i] {
		case '\\':
			i++
		case quote:
			s.pos = i + 1
			return true
		}
	}
	s.pos = save
	return false
}

// scanSkipPair consumes a bracketed region by skipping to the first closing
// bracket. Only a single nesting level is handled; that matches the shapes
// documentation generators emit inside default values.
func scanSkipPair(s *scanner, open, close byte) bool {
	save := s.pos
	s.skipSpaces()
	if s.eof() || s.peek() != open {
		s.pos = save
		return false
	}
	if i := strings.IndexByte(s.rest(), close); i >= 0 {
		s.pos += i + 1
		return true
	}
	s.pos = save
	return false
}

func scanParenPair(s *scanner) bool   { return scanSkipPair(s, '(', ')') }
func scanBracketPair(s *scanner) bool { return scanSkipPair(s, '[', ']') }

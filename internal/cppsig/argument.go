package cppsig

import "strings"

// Argument is one parsed parameter. The parameter name and any default
// value are consumed by the grammar but never stored: they must not
// influence the canonical form.
type Argument struct {
	Qualifier string // "const", "struct Foo", ... or ""
	Type      string // canonical type rendering
	Marker1   string // "*", "&", "*...", "&..." or ""
	Const     bool   // const between the two markers ("T * const *")
	Marker2   string
}

// String renders the argument in canonical order: qualifier, type, first
// marker, space-padded embedded const, second marker. Markers attach
// directly to the type with no separating space.
func (a Argument) String() string {
	var b strings.Builder
	if a.Qualifier != "" {
		b.WriteString(a.Qualifier)
		b.WriteByte(' ')
	}
	b.WriteString(a.Type)
	b.WriteString(a.Marker1)
	if a.Const {
		b.WriteString(" const ")
	}
	b.WriteString(a.Marker2)
	return b.String()
}

// scanArgument recognizes a single argument:
//
//	Qualifier? Type Marker? const? Marker? Name? (= Default)?
func scanArgument(s *scanner) (Argument, bool) {
	save := s.pos
	var a Argument
	a.Qualifier, _ = scanQualifier(s)
	t, ok := scanType(s)
	if !ok {
		s.pos = save
		return Argument{}, false
	}
	a.Type = t
	a.Marker1, _ = scanMarker(s)
	a.Const = s.scanKeyword("const")
	a.Marker2, _ = scanMarker(s)
	scanIgnoredName(s)
	scanDefaultValue(s)
	return a, true
}

// scanIgnoredName consumes the parameter name. Declarator noise around the
// name (array brackets, grouping parentheses, stray template regions) is
// swallowed too so its presence never fails the parse.
func scanIgnoredName(s *scanner) bool {
	matched := false
	for {
		save := s.pos
		s.skipSpaces()
		if s.scanWhile(isIdentByte) != "" {
			matched = true
			continue
		}
		s.pos = save
		if _, ok := scanTemplateRegion(s); ok {
			matched = true
			continue
		}
		if scanParenPair(s) || scanBracketPair(s) {
			matched = true
			continue
		}
		return matched
	}
}

// scanDefaultValue consumes "= expr" where expr is any run of literals,
// type-like names, bracketed regions and bitwise-operator characters. The
// text is skipped, never interpreted.
func scanDefaultValue(s *scanner) bool {
	save := s.pos
	if !s.consume('=') {
		return false
	}
	matched := false
	for {
		if scanNumber(s) || scanQuoted(s) {
			matched = true
			continue
		}
		if _, ok := scanType(s); ok {
			matched = true
			continue
		}
		if scanParenPair(s) {
			matched = true
			continue
		}
		if _, ok := scanTemplateRegion(s); ok {
			matched = true
			continue
		}
		if scanBracketPair(s) {
			matched = true
			continue
		}
		mark := s.pos
		s.skipSpaces()
		if s.scanWhile(isBitOpByte) != "" {
			matched = true
			continue
		}
		s.pos = mark
		break
	}
	if !matched {
		s.pos = save
		return false
	}
	return true
}

// scanArgList recognizes a parenthesized, comma-separated argument list with
// an optional variadic tail:
//
//	( ) | ( Argument (, Argument)* (, ...)? )
//
// On failure it returns a *ParseError positioned at the unrecognized text.
// The empty list is accepted here as well as by the Normalize fast path, so
// removing the fast path would not change any result.
func scanArgList(s *scanner) ([]Argument, bool, error) {
	fail := func(msg string) ([]Argument, bool, error) {
		return nil, false, &ParseError{Input: s.src, Offset: s.pos, Message: msg}
	}
	if !s.consume('(') {
		return fail("expected '('")
	}
	args := []Argument{}
	if s.consume(')') {
		// "()(int)" is a call-operator shape, not an empty list; letting the
		// remainder drop would normalize distinct overloads to the same key.
		s.skipSpaces()
		if !s.eof() {
			return fail("trailing input after empty argument list")
		}
		return args, false, nil
	}
	variadic := false
	for {
		a, ok := scanArgument(s)
		if !ok {
			return fail("argument does not match the supported declarator subset")
		}
		args = append(args, a)
		if !s.consume(',') {
			break
		}
		save := s.pos
		s.skipSpaces()
		if strings.HasPrefix(s.rest(), "...") {
			s.pos += 3
			variadic = true
			break
		}
		s.pos = save
	}
	if !s.consume(')') {
		return fail("expected ')'")
	}
	return args, variadic, nil
}

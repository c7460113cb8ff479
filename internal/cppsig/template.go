package cppsig

import "strings"

// TemplateArg is one element of a template-argument region: either a flat
// token or a nested bracket region. Exactly one of the two constructors
// applies; the variant is type-driven so nesting depth stays unbounded.
type TemplateArg interface {
	render(b *strings.Builder)
}

// templToken is a flat token. Tokens are maximal runs of characters up to
// whitespace or an angle bracket, so a comma stays glued to the token before
// it, matching the shape documentation generators print ("< int, float >").
type templToken string

// templRegion is a nested "<...>" region.
type templRegion []TemplateArg

func (t templToken) render(b *strings.Builder) {
	b.WriteByte(' ')
	b.WriteString(string(t))
}

func (r templRegion) render(b *strings.Builder) {
	// Nested regions are inserted as-is; their own '<' supplies the break.
	b.WriteString(flattenTemplate(r))
}

// flattenTemplate rewrites a parsed template region in canonical padded
// form: "<" + one leading space per element + " >", applied recursively at
// every nesting level. Flattening an already-canonical region reproduces it
// unchanged.
func flattenTemplate(region []TemplateArg) string {
	var b strings.Builder
	b.WriteByte('<')
	for _, el := range region {
		el.render(&b)
	}
	b.WriteString(" >")
	return b.String()
}

func isTemplTokenByte(c byte) bool {
	return c != '<' && c != '>' && c != ' ' && c != '\t' && c != '\n'
}

// scanTemplateRegion consumes a balanced, possibly nested angle-bracket
// region starting at '<'. It fails (restoring the position) when the
// brackets do not balance before end of input.
func scanTemplateRegion(s *scanner) ([]TemplateArg, bool) {
	save := s.pos
	s.skipSpaces()
	if s.eof() || s.peek() != '<' {
		s.pos = save
		return nil, false
	}
	s.pos++
	region := []TemplateArg{}
	for {
		s.skipSpaces()
		if s.eof() {
			s.pos = save
			return nil, false
		}
		switch s.peek() {
		case '>':
			s.pos++
			return region, true
		case '<':
			nested, ok := scanTemplateRegion(s)
			if !ok {
				s.pos = save
				return nil, false
			}
			region = append(region, templRegion(nested))
		default:
			region = append(region, templToken(s.scanWhile(isTemplTokenByte)))
		}
	}
}

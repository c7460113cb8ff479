package cppsig

import (
	"fmt"
	"strings"
)

// Normalize splits a C++ symbol or function signature into its qualified
// name and a canonical argument-list string.
//
// Examples:
//
//	Normalize("PolyVox::Volume")              => ("PolyVox::Volume", "")
//	Normalize("Volume::printAll() const")     => ("Volume::printAll", "() const")
//	Normalize("Foo::bar(const QString &)")    => ("Foo::bar", "(const QString&)")
//
// The canonical form is a pure function of the input: whitespace, argument
// names and default values never affect it. Normalization is all-or-nothing;
// on failure no partial result is returned and the error distinguishes a
// grammar mismatch (*ParseError) from a missing closing parenthesis
// (ErrUnbalanced).
func Normalize(symbol string) (name, args string, err error) {
	open := strings.IndexByte(symbol, '(')
	if open < 0 {
		// No argument list at all: the symbol is a bare type or namespace name.
		return symbol, "", nil
	}
	name = symbol[:open]
	region := symbol[open:]

	// The niladic case dominates real indexes, so match it with plain string
	// surgery before invoking the grammar. The grammar path yields the same
	// answers for these inputs; this is purely a shortcut.
	if strings.HasPrefix(region, "()") {
		stripped := strings.ReplaceAll(region, " override", "")
		stripped = strings.ReplaceAll(stripped, " final", "")
		stripped = strings.ReplaceAll(stripped, " ", "")
		switch stripped {
		case "()", "()=0", "()=default":
			return name, "()", nil
		case "()const", "()const=0":
			return name, "() const", nil
		}
	}

	// Trailing suffix text ("const", "=0", "override", ...) sits after the
	// last ')'; everything up to it is the argument list proper.
	closing := strings.LastIndexByte(region, ')')
	if closing < 0 {
		return "", "", fmt.Errorf("%w in %q", ErrUnbalanced, region)
	}
	suffix := region[closing+1:]

	s := &scanner{src: region[:closing+1]}
	parsed, variadic, err := scanArgList(s)
	if err != nil {
		return "", "", err
	}

	rendered := make([]string, 0, len(parsed)+1)
	for _, a := range parsed {
		rendered = append(rendered, a.String())
	}
	if variadic {
		rendered = append(rendered, "...")
	}
	args = "(" + strings.Join(rendered, ", ") + ")"
	if strings.Contains(suffix, "const") {
		args += " const"
	}
	return name, args, nil
}

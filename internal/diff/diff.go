// Package diff produces unified patches for tag-file changes. It uses
// github.com/pmezard/go-difflib/difflib to produce classic unified output
// (---/+++ headers, @@ hunks, lines prefixed with ' ', '-', '+').
package diff

import (
	"fmt"
	"strings"

	difflib "github.com/pmezard/go-difflib/difflib"
)

// Options controls patch generation behavior.
type Options struct {
	// MaxBytes is a guardrail on input size (old+new). When exceeded,
	// a minimal placeholder patch is returned and oversize=true.
	// 0 means "no limit".
	MaxBytes int

	// Context controls the number of context lines in unified hunks.
	// If 0, default to 4.
	Context int

	// NoPrefix controls whether FromFile/ToFile keep the caller's names
	// as-is instead of the conventional "a/" and "b/" prefixes.
	NoPrefix bool
}

// Unified produces a classic unified patch for a -> b. Returns the patch
// body and a flag indicating it was omitted due to size.
func Unified(aName, bName string, a, b []byte, opt Options) (body string, oversize bool) {
	if opt.MaxBytes > 0 && (len(a)+len(b)) > opt.MaxBytes {
		return omitted(aName, bName), true
	}
	u := difflib.UnifiedDiff{
		A:        splitLinesKeepNL(string(a)),
		B:        splitLinesKeepNL(string(b)),
		FromFile: prefixed("a/", aName, opt),
		ToFile:   prefixed("b/", bName, opt),
		Context:  contextLines(opt),
	}
	s, err := difflib.GetUnifiedDiffString(u)
	if err != nil || s == "" {
		// Very rare; return a placeholder instead of an empty patch.
		return omitted(aName, bName), false
	}
	return s, false
}

// Added produces a patch that introduces the entire content b, for the case
// where no previous version is available.
func Added(bName string, b []byte, opt Options) (string, bool) {
	if opt.MaxBytes > 0 && len(b) > opt.MaxBytes {
		return omitted("/dev/null", bName), true
	}
	u := difflib.UnifiedDiff{
		A:        []string{},
		B:        splitLinesKeepNL(string(b)),
		FromFile: "/dev/null",
		ToFile:   prefixed("b/", bName, opt),
		Context:  contextLines(opt),
	}
	s, err := difflib.GetUnifiedDiffString(u)
	if err != nil || s == "" {
		return omitted("/dev/null", bName), false
	}
	return s, false
}

func contextLines(opt Options) int {
	if opt.Context > 0 {
		return opt.Context
	}
	return 4
}

func prefixed(prefix, name string, opt Options) string {
	if opt.NoPrefix || strings.HasPrefix(name, prefix) {
		return name
	}
	return prefix + name
}

// splitLinesKeepNL splits into lines keeping newline characters, which
// produces better unified hunks. A file not ending in '\n' keeps its last
// chunk bare; unified output tolerates that.
func splitLinesKeepNL(s string) []string {
	if s == "" {
		return []string{}
	}
	return strings.SplitAfter(s, "\n")
}

// omitted returns a compact placeholder when size limits are exceeded.
func omitted(aName, bName string) string {
	return fmt.Sprintf("--- %s\n+++ %s\n@@\n# diff omitted (oversize)\n", aName, bName)
}

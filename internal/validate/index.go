// Package validate performs lightweight, dependency-free validation of the
// built symbol index before it is dumped or snapshotted. It is not a schema
// validator; it checks the structural and semantic constraints that commonly
// catch a bad index.
//
// Goals:
//   - No external dependencies (stdlib only)
//   - Aggregate multiple issues into a single error for better UX
//   - Deterministic, strict-enough checks without being overbearing
package validate

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"doxyref/internal/lookup"
)

// Index validates high-level constraints on the normalized index entries:
//
//   - Every entry has a non-empty name and URL.
//   - Args, if present, is a canonical argument-list rendering: "(...)",
//     optionally followed by " const".
//   - No duplicate (name, args) pairs.
//   - Entries are sorted by (name, args) for deterministic artifacts.
//
// Returns nil if everything looks fine, or a single aggregated error
// describing all the issues found.
func Index(entries []lookup.KeyEntry) error {
	var errs errlist

	type key struct{ name, args string }
	seen := make(map[key]struct{}, len(entries))
	for i, e := range entries {
		prefix := fmt.Sprintf("entries[%d] (%s%s)", i, e.Name, e.Args)

		if strings.TrimSpace(e.Name) == "" {
			errs.add("%s: name must be non-empty", prefix)
		}
		if strings.TrimSpace(e.URL) == "" {
			errs.add("%s: url must be non-empty", prefix)
		}
		if e.Args != "" && !validArgsShape(e.Args) {
			errs.add("%s: args %q is not a canonical argument list", prefix, e.Args)
		}

		k := key{e.Name, e.Args}
		if _, dup := seen[k]; dup {
			errs.add("%s: duplicate entry", prefix)
		} else {
			seen[k] = struct{}{}
		}
	}

	if !isSortedEntries(entries) {
		errs.add("entries should be sorted by (name, args) for deterministic output")
	}

	return errs.err()
}

// validArgsShape accepts "(...)" with an optional " const" suffix.
func validArgsShape(args string) bool {
	rest, _ := strings.CutSuffix(args, " const")
	return len(rest) >= 2 && rest[0] == '(' && rest[len(rest)-1] == ')'
}

func isSortedEntries(entries []lookup.KeyEntry) bool {
	if len(entries) < 2 {
		return true
	}
	return sort.SliceIsSorted(entries, func(i, j int) bool {
		if entries[i].Name == entries[j].Name {
			return entries[i].Args < entries[j].Args
		}
		return entries[i].Name < entries[j].Name
	})
}

// errlist aggregates multiple validation issues into a single error.
type errlist struct {
	msgs []string
}

func (e *errlist) add(format string, args ...any) {
	if e == nil {
		return
	}
	e.msgs = append(e.msgs, fmt.Sprintf(format, args...))
}

func (e *errlist) err() error {
	if e == nil || len(e.msgs) == 0 {
		return nil
	}
	return errors.New(strings.Join(e.msgs, "\n"))
}

// Package lookup builds the canonical symbol index from tag-file entries and
// resolves user-written cross references against it. Every entry's signature
// is normalized through cppsig so that lookup keys are invariant under
// whitespace, argument names and default values; queries are normalized the
// same way before matching.
package lookup

import (
	"fmt"
	"sort"
	"strings"

	"doxyref/internal/cppsig"
	"doxyref/internal/tagfile"
)

// Target is the resolution result for a symbol.
type Target struct {
	Kind string
	URL  string // relative to the documentation root
}

// KeyEntry is one row of the built index in dump/snapshot order.
type KeyEntry struct {
	Name string `json:"name"` // canonical qualified name
	Args string `json:"args,omitempty"`
	Kind string `json:"kind"`
	URL  string `json:"url"`
}

// Warning records an index entry whose signature could not be normalized.
// The entry is skipped; the rest of the index still builds.
type Warning struct {
	Name    string
	Arglist string
	Err     error
}

// Index maps canonical qualified names to their overload sets.
type Index struct {
	names map[string]map[string]Target // name -> normalizedArgs -> target
	keys  []string                     // sorted canonical names
}

// Build normalizes every tag entry and assembles the index. Normalization
// failures never abort the build: the offending entries come back as
// warnings so the caller can report and continue.
func Build(entries []tagfile.Entry) (*Index, []Warning) {
	ix := &Index{names: make(map[string]map[string]Target, len(entries))}
	var warns []Warning
	for _, e := range entries {
		name, args, err := cppsig.Normalize(e.Name + e.Arglist)
		if err != nil {
			warns = append(warns, Warning{Name: e.Name, Arglist: e.Arglist, Err: err})
			continue
		}
		overloads := ix.names[name]
		if overloads == nil {
			overloads = make(map[string]Target, 1)
			ix.names[name] = overloads
			ix.keys = append(ix.keys, name)
		}
		overloads[args] = Target{Kind: e.Kind, URL: e.URL}
	}
	sort.Strings(ix.keys)
	return ix, warns
}

// Len reports the number of distinct qualified names in the index.
func (ix *Index) Len() int { return len(ix.keys) }

// Entries returns the full index sorted by name then argument list, the
// order used by dumps and snapshots.
func (ix *Index) Entries() []KeyEntry {
	out := make([]KeyEntry, 0, len(ix.keys))
	for _, name := range ix.keys {
		overloads := ix.names[name]
		args := make([]string, 0, len(overloads))
		for a := range overloads {
			args = append(args, a)
		}
		sort.Strings(args)
		for _, a := range args {
			tgt := overloads[a]
			out = append(out, KeyEntry{Name: name, Args: a, Kind: tgt.Kind, URL: tgt.URL})
		}
	}
	return out
}

// Resolve matches a cross-reference query against the index.
//
// The query is normalized first. An exact qualified-name match is preferred;
// otherwise any name whose trailing '::' segments equal the query matches
// (so "Volume::getVoxelAt" finds "PolyVox::Volume::getVoxelAt"). Within a
// name, a query without an argument list resolves only when there is a
// single overload; with an argument list the normalized forms must match
// exactly.
func (ix *Index) Resolve(query string) (Target, error) {
	name, args, err := cppsig.Normalize(query)
	if err != nil {
		return Target{}, fmt.Errorf("normalize query %q: %w", query, err)
	}

	matches := ix.matchNames(name)
	if len(matches) == 0 {
		return Target{}, &NoMatchError{Query: query}
	}
	if len(matches) > 1 {
		return Target{}, &AmbiguousError{Query: query, Candidates: matches}
	}

	overloads := ix.names[matches[0]]
	if args == "" {
		if len(overloads) == 1 {
			for _, tgt := range overloads {
				return tgt, nil
			}
		}
		return Target{}, &AmbiguousError{
			Query:      query,
			Candidates: overloadKeys(matches[0], overloads),
		}
	}
	if tgt, ok := overloads[args]; ok {
		return tgt, nil
	}
	// A niladic query may still name a const method uniquely.
	if args == "()" {
		if tgt, ok := overloads["() const"]; ok && len(overloads) == 1 {
			return tgt, nil
		}
	}
	return Target{}, &NoMatchError{
		Query:      query,
		Candidates: overloadKeys(matches[0], overloads),
	}
}

// matchNames returns index names equal to name, or failing that, names that
// end with "::"+name.
func (ix *Index) matchNames(name string) []string {
	if _, ok := ix.names[name]; ok {
		return []string{name}
	}
	suffix := "::" + name
	var out []string
	for _, k := range ix.keys {
		if strings.HasSuffix(k, suffix) {
			out = append(out, k)
		}
	}
	return out
}

func overloadKeys(name string, overloads map[string]Target) []string {
	out := make([]string, 0, len(overloads))
	for a := range overloads {
		out = append(out, name+a)
	}
	sort.Strings(out)
	return out
}

// NoMatchError reports a query with no index entry. Candidates, when set,
// lists the overloads of the matched name that the argument list did not
// select.
type NoMatchError struct {
	Query      string
	Candidates []string
}

func (e *NoMatchError) Error() string {
	if len(e.Candidates) == 0 {
		return fmt.Sprintf("no documentation entry for %q", e.Query)
	}
	return fmt.Sprintf("no overload of %q matches; known: %s",
		e.Query, strings.Join(e.Candidates, ", "))
}

// AmbiguousError reports a query that matches several entries.
type AmbiguousError struct {
	Query      string
	Candidates []string
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("%q is ambiguous between: %s", e.Query, strings.Join(e.Candidates, ", "))
}

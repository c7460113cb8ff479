package cache

import "sort"

// BuildDelta computes the change set between two snapshots, keyed by
// canonical symbol key. Either snapshot may be nil or empty; the result is
// sorted for deterministic reports.
func BuildDelta(prev, curr *Snapshot) Delta {
	if d, ok := handleTrivialDelta(prev, curr); ok {
		return d
	}

	prevMap := indexByKey(prev.Entries)
	currMap := indexByKey(curr.Entries)

	var d Delta
	for key, pe := range prevMap {
		ce, ok := currMap[key]
		if !ok {
			d.Removed = append(d.Removed, pe)
			continue
		}
		if pe.URL != ce.URL {
			d.Changed = append(d.Changed, Changed{Key: key, URLBefore: pe.URL, URLAfter: ce.URL})
		}
	}
	for key, ce := range currMap {
		if _, ok := prevMap[key]; !ok {
			d.Added = append(d.Added, ce)
		}
	}
	sortDelta(&d)
	return d
}

func handleTrivialDelta(prev, curr *Snapshot) (Delta, bool) {
	var d Delta
	switch {
	case curr == nil || len(curr.Entries) == 0:
		if prev != nil {
			d.Removed = append(d.Removed, prev.Entries...)
		}
		sortDelta(&d)
		return d, true
	case prev == nil || len(prev.Entries) == 0:
		d.Added = append(d.Added, curr.Entries...)
		sortDelta(&d)
		return d, true
	default:
		return Delta{}, false
	}
}

func indexByKey(entries []SnapEntry) map[string]SnapEntry {
	m := make(map[string]SnapEntry, len(entries))
	for _, e := range entries {
		m[e.Key] = e
	}
	return m
}

func sortDelta(d *Delta) {
	sort.Slice(d.Added, func(i, j int) bool { return d.Added[i].Key < d.Added[j].Key })
	sort.Slice(d.Removed, func(i, j int) bool { return d.Removed[i].Key < d.Removed[j].Key })
	sort.Slice(d.Changed, func(i, j int) bool { return d.Changed[i].Key < d.Changed[j].Key })
}

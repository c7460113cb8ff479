// Package report emits the tool's on-disk artifacts: the normalized index
// dump (JSON) and the delta report (plain text with an optional unified
// diff of the raw tag XML). Output is deterministic: entries arrive sorted
// from the callers and writes are atomic so a crashed run never leaves a
// half-written artifact behind.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"doxyref/internal/cache"
	"doxyref/internal/lookup"
	"doxyref/internal/textutil"
)

// Dump is the index-dump payload.
type Dump struct {
	TagFile   string            `json:"tagFile"`
	Generated string            `json:"generated"` // ISO-8601, UTC
	Entries   []lookup.KeyEntry `json:"entries"`
}

// WriteDump writes the index dump as indented JSON via an atomic rename.
func WriteDump(path string, d Dump) error {
	if d.Entries == nil {
		d.Entries = []lookup.KeyEntry{} // [] instead of null
	}
	b, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return err
	}
	return writeAtomic(path, textutil.EnsureTrailingLF(b))
}

// RenderDelta formats a delta report. patch, when non-empty, is a unified
// diff of the raw tag XML and is appended verbatim after the key-level
// summary.
func RenderDelta(tagFile string, d cache.Delta, patch string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "delta for %s\n", tagFile)
	fmt.Fprintf(&b, "added=%d removed=%d changed=%d\n",
		len(d.Added), len(d.Removed), len(d.Changed))
	if d.Empty() {
		b.WriteString("no changes\n")
		return []byte(b.String())
	}
	b.WriteByte('\n')
	for _, e := range d.Added {
		fmt.Fprintf(&b, "+ %s -> %s\n", e.Key, e.URL)
	}
	for _, e := range d.Removed {
		fmt.Fprintf(&b, "- %s\n", e.Key)
	}
	for _, c := range d.Changed {
		fmt.Fprintf(&b, "~ %s %s -> %s\n", c.Key, c.URLBefore, c.URLAfter)
	}
	if patch != "" {
		b.WriteString("\n--- tag-file diff ---\n")
		b.WriteString(patch)
	}
	return textutil.EnsureTrailingLF([]byte(b.String()))
}

// WriteDelta writes the rendered delta report atomically.
func WriteDelta(path, tagFile string, d cache.Delta, patch string) error {
	return writeAtomic(path, RenderDelta(tagFile, d, patch))
}

// writeAtomic writes data to a temporary sibling of path and renames it
// into place.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, ".tmp-"+filepath.Base(path)+"-")
	if err != nil {
		return err
	}
	tmp := f.Name()
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}

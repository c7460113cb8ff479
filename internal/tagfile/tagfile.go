// Package tagfile reads Doxygen tag files, the machine-readable index a
// Doxygen run emits alongside the HTML output. Only the fields needed for
// cross-reference resolution are extracted: symbol names, argument lists and
// the HTML location (file plus anchor) each symbol is documented at.
package tagfile

import (
	"encoding/xml"
	"fmt"
	"os"
	"strings"

	"doxyref/internal/textutil"
)

// Entry is one resolvable symbol from a tag file. Name is fully qualified
// ("PolyVox::Volume::getVoxelAt"); Arglist is the raw argument-list text as
// Doxygen printed it ("(int x, int y) const", possibly empty); URL is the
// documentation location relative to the HTML root ("classFoo.html#a1b2c3").
type Entry struct {
	Kind    string `json:"kind"`
	Name    string `json:"name"`
	Arglist string `json:"arglist,omitempty"`
	URL     string `json:"url"`
}

type xmlTagFile struct {
	XMLName   xml.Name      `xml:"tagfile"`
	Compounds []xmlCompound `xml:"compound"`
}

type xmlCompound struct {
	Kind     string      `xml:"kind,attr"`
	Name     string      `xml:"name"`
	Filename string      `xml:"filename"`
	Members  []xmlMember `xml:"member"`
}

type xmlMember struct {
	Kind       string `xml:"kind,attr"`
	Name       string `xml:"name"`
	Anchorfile string `xml:"anchorfile"`
	Anchor     string `xml:"anchor"`
	Arglist    string `xml:"arglist"`
}

// Load reads and parses a tag file from disk. The raw bytes are normalized
// to LF/UTF-8 first so snapshots and diffs of the same file are stable
// across platforms.
func Load(path string) ([]Entry, []byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	data := textutil.NormalizeUTF8LF(raw)
	entries, err := Parse(data)
	if err != nil {
		return nil, nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return entries, data, nil
}

// Parse decodes tag-file XML into a flat entry list. Compounds become
// entries themselves (classes, namespaces, files) and every member becomes
// an entry qualified by its compound's name. Members of "file" compounds are
// free symbols and keep their own name. Nameless records are skipped.
func Parse(data []byte) ([]Entry, error) {
	var tf xmlTagFile
	if err := xml.Unmarshal(data, &tf); err != nil {
		return nil, err
	}
	var entries []Entry
	for _, c := range tf.Compounds {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			continue
		}
		if c.Filename != "" {
			entries = append(entries, Entry{
				Kind: c.Kind,
				Name: name,
				URL:  htmlName(c.Filename),
			})
		}
		for _, m := range c.Members {
			mname := strings.TrimSpace(m.Name)
			if mname == "" || m.Anchorfile == "" {
				continue
			}
			qualified := mname
			if c.Kind != "file" {
				qualified = name + "::" + mname
			}
			url := htmlName(m.Anchorfile)
			if m.Anchor != "" {
				url += "#" + m.Anchor
			}
			entries = append(entries, Entry{
				Kind:    m.Kind,
				Name:    qualified,
				Arglist: m.Arglist,
				URL:     url,
			})
		}
	}
	return entries, nil
}

// htmlName appends ".html" when the tag file stores a bare page name.
// Older Doxygen versions omit the extension for compound filenames.
func htmlName(s string) string {
	if strings.HasSuffix(s, ".html") || strings.Contains(s, ".") {
		return s
	}
	return s + ".html"
}

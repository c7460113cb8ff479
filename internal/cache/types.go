package cache

// SnapEntry is a single resolvable symbol in a snapshot. Key is the
// canonical lookup key (qualified name plus normalized argument list) and
// URL is the documentation location it resolved to at snapshot time.
type SnapEntry struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

// Snapshot captures the normalized contents of one tag file at a specific
// moment. TagFile is the source path as given by the user. Created is an
// ISO-8601 timestamp (UTC). ContentHash is the sha256 of the tag-file bytes
// and doubles as the blob-store key for the raw XML. FormatVersion versions
// the snapshot schema over time.
type Snapshot struct {
	TagFile       string      `json:"tagFile"`
	Created       string      `json:"created"`
	ContentHash   string      `json:"contentHash,omitempty"`
	FormatVersion string      `json:"formatVersion,omitempty"`
	Entries       []SnapEntry `json:"entries"`
}

// Changed pairs a key with its documentation location before and after.
type Changed struct {
	Key       string `json:"key"`
	URLBefore string `json:"urlBefore"`
	URLAfter  string `json:"urlAfter"`
}

// Delta describes the change set between two snapshots of the same tag
// file:
//
//   - Added: keys present now that were not in the previous snapshot
//   - Removed: keys no longer present
//   - Changed: keys whose documentation location moved (anchor or page)
//
// A renamed symbol has no identity across snapshots, so it surfaces as one
// Removed plus one Added entry.
type Delta struct {
	Added   []SnapEntry `json:"added"`
	Removed []SnapEntry `json:"removed"`
	Changed []Changed   `json:"changed"`
}

// Empty reports whether the delta carries no changes at all.
func (d Delta) Empty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0 && len(d.Changed) == 0
}

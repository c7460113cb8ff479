// Package cache persists what a previous doxyref run saw: a snapshot of the
// normalized index keys for one tag file, plus the raw tag XML in a
// content-addressed blob store so delta reports can show a real diff.
//
// Layout under the cache root (default ".doxyref-cache"):
//
//	<root>/<pathKey>/index.json            snapshot of the last run
//	<root>/<pathKey>/blobs/aa/bb/<sha256>  raw tag-file bytes by content hash
//
// pathKey is derived from the absolute tag-file path, so caches for
// different tag files never collide. All writes go through a temp file and
// rename; a crashed run leaves the previous snapshot intact.
package cache

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
)

const (
	defaultCacheRoot = ".doxyref-cache"
	snapshotFile     = "index.json"
)

var errBadBlobHash = errors.New("blob hash must be lowercase hex")

// PathKey derives the per-tag-file cache subdirectory name from an absolute
// path: the first 12 hex chars of its sha256.
func PathKey(abs string) string {
	return ContentHash([]byte(abs))[:12]
}

// CacheDir returns the cache directory for the given absolute tag-file
// path, under base or the default root when base is empty.
func CacheDir(base, tagAbs string) string {
	if base == "" {
		base = defaultCacheRoot
	}
	return filepath.Join(base, PathKey(tagAbs))
}

// ContentHash returns the lowercase hex sha256 of data, the hash stored in
// snapshots and used as the blob key.
func ContentHash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Load reads the snapshot for a cache directory. A missing snapshot is not
// an error: it returns (nil, nil) and the run is treated as the first one.
func Load(dir string) (*Snapshot, error) {
	b, err := os.ReadFile(filepath.Join(dir, snapshotFile))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var s Snapshot
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Save writes the snapshot to <dir>/index.json via a temp file and rename.
func Save(dir string, s *Snapshot) error {
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return writeAtomic(filepath.Join(dir, snapshotFile), bytes.NewReader(b))
}

// Clear removes the cache directory for one tag file. Clearing a directory
// that does not exist is a no-op.
func Clear(dir string) error {
	if dir == "" {
		return nil
	}
	return os.RemoveAll(dir)
}

// SaveBlob stores content-addressed data under <dir>/blobs/aa/bb/<hash>.
// hash must be the lowercase hex sha256 of the content; it is trusted, not
// recomputed. Saving an existing blob is a no-op.
func SaveBlob(dir, hash string, r io.Reader) error {
	if !validBlobHash(hash) {
		return errBadBlobHash
	}
	path := blobPath(dir, hash)
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	return writeAtomic(path, r)
}

// ReadBlob loads a blob by content hash.
func ReadBlob(dir, hash string) ([]byte, error) {
	if !validBlobHash(hash) {
		return nil, errBadBlobHash
	}
	return os.ReadFile(blobPath(dir, hash))
}

// HasBlob reports whether a blob with the given content hash is stored.
func HasBlob(dir, hash string) bool {
	if !validBlobHash(hash) {
		return false
	}
	_, err := os.Stat(blobPath(dir, hash))
	return err == nil
}

// blobPath shards blobs by the first two hash-byte pairs so no single
// directory grows unbounded.
func blobPath(dir, hash string) string {
	return filepath.Join(dir, "blobs", hash[:2], hash[2:4], hash)
}

func validBlobHash(hash string) bool {
	if len(hash) < 6 || strings.ToLower(hash) != hash {
		return false
	}
	for i := 0; i < len(hash); i++ {
		c := hash[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}

// writeAtomic streams r into a temp sibling of path, fsyncs, and renames it
// into place, creating parent directories as needed.
func writeAtomic(path string, r io.Reader) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, ".tmp-"+filepath.Base(path)+"-")
	if err != nil {
		return err
	}
	tmp := f.Name()
	_, err = io.Copy(f, r)
	if err == nil {
		err = f.Sync()
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}

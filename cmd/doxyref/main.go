// Package main provides the doxyref CLI. It reads a Doxygen tag file,
// normalizes every symbol signature into a canonical lookup key, and then
// either resolves user-supplied cross references to documentation URLs,
// dumps the normalized index (-dump), or reports what changed since the
// previous run (-delta).
//
// Modes:
//   - RESOLVE : doxyref -tag proj.tag [-base URL] <query> [<query>...]
//   - DUMP    : doxyref -tag proj.tag -dump index.json
//   - DELTA   : doxyref -tag proj.tag -delta report.txt [flags]
//
// Key design goals:
//   - Deterministic output (sorted entries, stable reports)
//   - Skip-and-warn on signatures outside the supported declarator subset
//   - Safe cache workflow (atomic snapshot writes, content-addressed blobs)
package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"doxyref/internal/cache"
	"doxyref/internal/diff"
	"doxyref/internal/lookup"
	"doxyref/internal/report"
	"doxyref/internal/tagfile"
	"doxyref/internal/validate"
)

const snapshotFormatVersion = "1"

// Config carries all parsed CLI options plus the positional queries.
type Config struct {
	tagPath      string
	baseURL      string
	dumpOut      string
	deltaOut     string
	cacheDir     string
	reset        bool
	quiet        bool
	noValidate   bool
	diffContext  int
	maxDiffBytes int
	queries      []string
}

// parseFlags parses the argument vector (excluding the program name) into a
// Config. It is separated from main so tests can drive it directly.
func parseFlags(args []string) (Config, error) {
	var cfg Config
	fs := flag.NewFlagSet("doxyref", flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage:\n")
		fmt.Fprintf(fs.Output(), "  RESOLVE : doxyref -tag proj.tag [-base URL] <query> [<query>...]\n")
		fmt.Fprintf(fs.Output(), "  DUMP    : doxyref -tag proj.tag -dump index.json\n")
		fmt.Fprintf(fs.Output(), "  DELTA   : doxyref -tag proj.tag -delta report.txt\n")
		fmt.Fprintln(fs.Output(), "\nFlags:")
		fs.PrintDefaults()
	}

	fs.StringVar(&cfg.tagPath, "tag", "", "path to the Doxygen tag file (required)")
	fs.StringVar(&cfg.baseURL, "base", "", "base URL prepended to resolved documentation locations")
	fs.StringVar(&cfg.dumpOut, "dump", "", "path to write the normalized index as JSON (mutually exclusive with -delta)")
	fs.StringVar(&cfg.deltaOut, "delta", "", "path to write a delta report against the cached snapshot (mutually exclusive with -dump)")
	fs.StringVar(&cfg.cacheDir, "cache-dir", "", "base cache directory for snapshots and blobs (default .doxyref-cache)")
	fs.BoolVar(&cfg.reset, "new", false, "reset the cache for this tag file before running")
	fs.BoolVar(&cfg.quiet, "q", false, "suppress warnings about entries that could not be normalized")
	fs.BoolVar(&cfg.noValidate, "no-validate", false, "skip structural validation of the built index")
	fs.IntVar(&cfg.diffContext, "diff-context", 4, "context lines in the delta report's unified diff")
	fs.IntVar(&cfg.maxDiffBytes, "max-diff-bytes", 2_000_000, "max bytes for the tag-file diff in -delta (0 = no limit)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	cfg.queries = fs.Args()

	if cfg.tagPath == "" {
		return Config{}, errors.New("-tag is required")
	}
	return cfg, nil
}

// selectMode picks the run mode from the mutually exclusive output flags.
func selectMode(cfg Config) (string, error) {
	switch {
	case cfg.dumpOut != "" && cfg.deltaOut != "":
		return "", errors.New("-dump and -delta are mutually exclusive")
	case cfg.dumpOut != "":
		return "dump", nil
	case cfg.deltaOut != "":
		return "delta", nil
	case len(cfg.queries) > 0:
		return "resolve", nil
	default:
		return "", errors.New("nothing to do: give queries to resolve, or -dump/-delta")
	}
}

// joinBase glues the base URL and a relative documentation location with
// exactly one slash.
func joinBase(base, rel string) string {
	if base == "" {
		return rel
	}
	return strings.TrimRight(base, "/") + "/" + rel
}

func main() {
	cfg, err := parseFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, "ERROR:", err)
		os.Exit(2)
	}
	mode, err := selectMode(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "ERROR:", err)
		os.Exit(2)
	}

	entries, raw, err := tagfile.Load(cfg.tagPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "ERROR:", err)
		os.Exit(1)
	}

	ix, warns := lookup.Build(entries)
	if !cfg.quiet {
		for _, w := range warns {
			fmt.Fprintf(os.Stderr, "Note: skipping %s%s: %v\n", w.Name, w.Arglist, w.Err)
		}
	}
	if !cfg.noValidate {
		if err := validate.Index(ix.Entries()); err != nil {
			fmt.Fprintln(os.Stderr, "ERROR:", err)
			os.Exit(1)
		}
	}

	switch mode {
	case "resolve":
		os.Exit(runResolve(cfg, ix))
	case "dump":
		os.Exit(runDump(cfg, ix))
	case "delta":
		os.Exit(runDelta(cfg, ix, raw))
	}
}

// runResolve prints one "query -> URL" line per resolvable query. A failed
// query is reported and skipped; the exit code is nonzero only when every
// query failed.
func runResolve(cfg Config, ix *lookup.Index) int {
	resolved := 0
	for _, q := range cfg.queries {
		tgt, err := ix.Resolve(q)
		if err != nil {
			fmt.Fprintln(os.Stderr, "ERROR:", err)
			continue
		}
		fmt.Printf("%s -> %s\n", q, joinBase(cfg.baseURL, tgt.URL))
		resolved++
	}
	if resolved == 0 && len(cfg.queries) > 0 {
		return 1
	}
	return 0
}

func runDump(cfg Config, ix *lookup.Index) int {
	d := report.Dump{
		TagFile:   cfg.tagPath,
		Generated: time.Now().UTC().Format(time.RFC3339),
		Entries:   ix.Entries(),
	}
	if err := report.WriteDump(cfg.dumpOut, d); err != nil {
		fmt.Fprintln(os.Stderr, "ERROR:", err)
		return 1
	}
	fmt.Printf("Wrote index dump %s (entries=%d)\n", cfg.dumpOut, len(d.Entries))
	return 0
}

// runDelta compares the current normalized index against the cached
// snapshot, writes the report, and advances the snapshot.
func runDelta(cfg Config, ix *lookup.Index, raw []byte) int {
	tagAbs, err := filepath.Abs(cfg.tagPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "ERROR:", err)
		return 1
	}
	dir := cache.CacheDir(cfg.cacheDir, tagAbs)
	if cfg.reset {
		_ = cache.Clear(dir)
	}

	prev, err := cache.Load(dir)
	if err != nil {
		fmt.Fprintln(os.Stderr, "ERROR: loading snapshot:", err)
		return 1
	}

	curr := currentSnapshot(cfg.tagPath, raw, ix)
	d := cache.BuildDelta(prev, curr)

	// Diff the raw XML when the previous version is still in the blob store.
	var patch string
	if !d.Empty() {
		opt := diff.Options{MaxBytes: cfg.maxDiffBytes, Context: cfg.diffContext}
		if prev != nil && cache.HasBlob(dir, prev.ContentHash) {
			old, err := cache.ReadBlob(dir, prev.ContentHash)
			if err == nil {
				patch, _ = diff.Unified(cfg.tagPath, cfg.tagPath, old, raw, opt)
			}
		} else if prev == nil {
			patch, _ = diff.Added(cfg.tagPath, raw, opt)
		}
	}

	if err := report.WriteDelta(cfg.deltaOut, cfg.tagPath, d, patch); err != nil {
		fmt.Fprintln(os.Stderr, "ERROR:", err)
		return 1
	}
	if err := cache.Save(dir, curr); err != nil {
		fmt.Fprintln(os.Stderr, "ERROR: saving snapshot:", err)
		return 1
	}
	_ = cache.SaveBlob(dir, curr.ContentHash, bytes.NewReader(raw))

	fmt.Printf("Wrote delta report %s (added=%d, removed=%d, changed=%d)\n",
		cfg.deltaOut, len(d.Added), len(d.Removed), len(d.Changed))
	return 0
}

// currentSnapshot converts the built index into a snapshot keyed by
// canonical name+args.
func currentSnapshot(tagPath string, raw []byte, ix *lookup.Index) *cache.Snapshot {
	keyEntries := ix.Entries()
	entries := make([]cache.SnapEntry, 0, len(keyEntries))
	for _, e := range keyEntries {
		entries = append(entries, cache.SnapEntry{Key: e.Name + e.Args, URL: e.URL})
	}
	return &cache.Snapshot{
		TagFile:       tagPath,
		Created:       time.Now().UTC().Format(time.RFC3339),
		ContentHash:   cache.ContentHash(raw),
		FormatVersion: snapshotFormatVersion,
		Entries:       entries,
	}
}

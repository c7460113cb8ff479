package tagfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const sampleTagXML = `<?xml version='1.0' encoding='UTF-8' standalone='yes' ?>
<tagfile>
  <compound kind="class">
    <name>PolyVox::Volume</name>
    <filename>classPolyVox_1_1Volume.html</filename>
    <member kind="function">
      <type>void</type>
      <name>printAll</name>
      <anchorfile>classPolyVox_1_1Volume.html</anchorfile>
      <anchor>a7d9c2f</anchor>
      <arglist>() const</arglist>
    </member>
    <member kind="function">
      <type>Voxel</type>
      <name>getVoxelAt</name>
      <anchorfile>classPolyVox_1_1Volume.html</anchorfile>
      <anchor>a11aa22</anchor>
      <arglist>(int x, int y, int z) const</arglist>
    </member>
  </compound>
  <compound kind="file">
    <name>util.h</name>
    <filename>util_8h</filename>
    <member kind="function">
      <type>int</type>
      <name>clamp</name>
      <anchorfile>util_8h.html</anchorfile>
      <anchor>abc123</anchor>
      <arglist>(int v, int lo, int hi)</arglist>
    </member>
  </compound>
</tagfile>
`

func TestParseSampleTagFile(t *testing.T) {
	entries, err := Parse([]byte(sampleTagXML))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	want := []Entry{
		{Kind: "class", Name: "PolyVox::Volume", URL: "classPolyVox_1_1Volume.html"},
		{Kind: "function", Name: "PolyVox::Volume::printAll", Arglist: "() const",
			URL: "classPolyVox_1_1Volume.html#a7d9c2f"},
		{Kind: "function", Name: "PolyVox::Volume::getVoxelAt", Arglist: "(int x, int y, int z) const",
			URL: "classPolyVox_1_1Volume.html#a11aa22"},
		{Kind: "file", Name: "util.h", URL: "util_8h.html"},
		{Kind: "function", Name: "clamp", Arglist: "(int v, int lo, int hi)",
			URL: "util_8h.html#abc123"},
	}
	if diff := cmp.Diff(want, entries); diff != "" {
		t.Fatalf("entries mismatch (-want +got):\n%s", diff)
	}
}

func TestParseRejectsMalformedXML(t *testing.T) {
	if _, err := Parse([]byte("<tagfile><compound>")); err == nil {
		t.Fatalf("expected error for truncated XML")
	}
}

func TestParseSkipsNamelessRecords(t *testing.T) {
	entries, err := Parse([]byte(`<tagfile><compound kind="class"><name></name><filename>x.html</filename></compound></tagfile>`))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("nameless compound should be skipped, got %v", entries)
	}
}

func TestLoadNormalizesLineEndings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "proj.tag")
	crlf := []byte("<tagfile>\r\n<compound kind=\"class\"><name>A</name><filename>classA.html</filename></compound>\r\n</tagfile>\r\n")
	if err := os.WriteFile(path, crlf, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	entries, data, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if len(entries) != 1 || entries[0].Name != "A" {
		t.Fatalf("entries = %v", entries)
	}
	for _, b := range data {
		if b == '\r' {
			t.Fatalf("carriage return survived normalization")
		}
	}
}

package diff

import (
	"strings"
	"testing"
)

func TestUnifiedProducesHunks(t *testing.T) {
	old := []byte("<tagfile>\n<name>a</name>\n</tagfile>\n")
	new := []byte("<tagfile>\n<name>b</name>\n</tagfile>\n")
	body, oversize := Unified("proj.tag", "proj.tag", old, new, Options{Context: 2})
	if oversize {
		t.Fatalf("unexpected oversize")
	}
	if !strings.Contains(body, "@@") {
		t.Fatalf("no hunk header in:\n%s", body)
	}
	if !strings.Contains(body, "-<name>a</name>") || !strings.Contains(body, "+<name>b</name>") {
		t.Fatalf("expected change lines in:\n%s", body)
	}
	if !strings.HasPrefix(body, "--- a/proj.tag") {
		t.Fatalf("missing a/ prefix in:\n%s", body)
	}
}

func TestUnifiedNoPrefix(t *testing.T) {
	body, _ := Unified("x", "x", []byte("1\n"), []byte("2\n"), Options{NoPrefix: true})
	if !strings.HasPrefix(body, "--- x") {
		t.Fatalf("NoPrefix ignored:\n%s", body)
	}
}

func TestUnifiedOversize(t *testing.T) {
	old := []byte(strings.Repeat("x\n", 100))
	body, oversize := Unified("a", "b", old, old, Options{MaxBytes: 10})
	if !oversize {
		t.Fatalf("expected oversize")
	}
	if !strings.Contains(body, "diff omitted") {
		t.Fatalf("placeholder missing:\n%s", body)
	}
}

func TestAddedPatch(t *testing.T) {
	body, oversize := Added("proj.tag", []byte("line1\nline2\n"), Options{})
	if oversize {
		t.Fatalf("unexpected oversize")
	}
	if !strings.Contains(body, "--- /dev/null") || !strings.Contains(body, "+line1") {
		t.Fatalf("unexpected body:\n%s", body)
	}
}

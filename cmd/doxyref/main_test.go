package main

import (
	"reflect"
	"testing"
)

func TestParseFlagsBasic(t *testing.T) {
	args := []string{"-tag", "proj.tag", "-base", "https://docs.example.org/", "Foo::bar()", "Baz"}
	cfg, err := parseFlags(args)
	if err != nil {
		t.Fatalf("parseFlags error: %v", err)
	}
	if cfg.tagPath != "proj.tag" {
		t.Fatalf("tagPath got %q", cfg.tagPath)
	}
	if cfg.baseURL != "https://docs.example.org/" {
		t.Fatalf("baseURL got %q", cfg.baseURL)
	}
	if !reflect.DeepEqual(cfg.queries, []string{"Foo::bar()", "Baz"}) {
		t.Fatalf("queries got %v", cfg.queries)
	}
}

func TestParseFlagsMissingTag(t *testing.T) {
	if _, err := parseFlags([]string{"Foo::bar()"}); err == nil {
		t.Fatalf("expected error for missing -tag")
	}
}

func TestParseFlagsDeltaOptions(t *testing.T) {
	args := []string{"-tag", "p.tag", "-delta", "out.txt", "-diff-context", "7", "-max-diff-bytes", "123"}
	cfg, err := parseFlags(args)
	if err != nil {
		t.Fatalf("parseFlags error: %v", err)
	}
	if cfg.deltaOut != "out.txt" || cfg.diffContext != 7 || cfg.maxDiffBytes != 123 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestSelectMode(t *testing.T) {
	if m, _ := selectMode(Config{dumpOut: "a"}); m != "dump" {
		t.Fatalf("mode=%s", m)
	}
	if m, _ := selectMode(Config{deltaOut: "b"}); m != "delta" {
		t.Fatalf("mode=%s", m)
	}
	if m, _ := selectMode(Config{queries: []string{"Foo"}}); m != "resolve" {
		t.Fatalf("mode=%s", m)
	}
	if _, err := selectMode(Config{dumpOut: "a", deltaOut: "b"}); err == nil {
		t.Fatalf("expected error on conflicting modes")
	}
	if _, err := selectMode(Config{}); err == nil {
		t.Fatalf("expected error when nothing to do")
	}
}

func TestJoinBase(t *testing.T) {
	tests := []struct {
		base, rel, want string
	}{
		{"", "classFoo.html#a1", "classFoo.html#a1"},
		{"https://docs.example.org", "classFoo.html", "https://docs.example.org/classFoo.html"},
		{"https://docs.example.org/", "classFoo.html", "https://docs.example.org/classFoo.html"},
	}
	for _, tt := range tests {
		if got := joinBase(tt.base, tt.rel); got != tt.want {
			t.Fatalf("joinBase(%q, %q) = %q, want %q", tt.base, tt.rel, got, tt.want)
		}
	}
}

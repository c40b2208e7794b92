package cli

import (
	"io"
	"testing"

	"github.com/matzehuels/refgraph/pkg/buildinfo"
	"github.com/matzehuels/refgraph/pkg/cache"
	"github.com/matzehuels/refgraph/pkg/pipeline"
)

func TestRootCommand(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	if root.Use != appName {
		t.Errorf("Use = %q, want %q", root.Use, appName)
	}
	if root.Version != buildinfo.Version {
		t.Errorf("Version = %q, want %q", root.Version, buildinfo.Version)
	}

	names := make(map[string]bool)
	for _, sub := range root.Commands() {
		names[sub.Name()] = true
	}
	want := []string{
		"reach", "components", "stats", "render",
		"explore", "store", "cache", "serve", "completion",
	}
	for _, name := range want {
		if !names[name] {
			t.Errorf("missing subcommand %q", name)
		}
	}
}

func TestSourceOptions(t *testing.T) {
	tests := []struct {
		input        string
		wantManifest string
		wantSnapshot string
	}{
		{"deps.toml", "deps.toml", ""},
		{"DEPS.TOML", "DEPS.TOML", ""},
		{"graph.json", "", "graph.json"},
		{"snapshot", "", "snapshot"},
	}
	for _, tt := range tests {
		opts := sourceOptions(tt.input)
		if opts.Manifest != tt.wantManifest {
			t.Errorf("sourceOptions(%q).Manifest = %q, want %q", tt.input, opts.Manifest, tt.wantManifest)
		}
		if opts.Snapshot != tt.wantSnapshot {
			t.Errorf("sourceOptions(%q).Snapshot = %q, want %q", tt.input, opts.Snapshot, tt.wantSnapshot)
		}
	}
}

func TestParseFormats(t *testing.T) {
	got := parseFormats("")
	if len(got) != 1 || got[0] != pipeline.DefaultFormat {
		t.Errorf("parseFormats(\"\") = %v, want [%s]", got, pipeline.DefaultFormat)
	}

	got = parseFormats("svg,png")
	if len(got) != 2 || got[0] != "svg" || got[1] != "png" {
		t.Errorf("parseFormats(svg,png) = %v", got)
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		output string
		input  string
		want   string
	}{
		{"", "graph.toml", "graph"},
		{"", "dir/graph.json", "dir/graph"},
		{"out.svg", "graph.toml", "out"},
		{"out.dot", "graph.toml", "out"},
		{"artifacts/result", "graph.toml", "artifacts/result"},
		{"archive.tar", "graph.toml", "archive.tar"},
	}
	for _, tt := range tests {
		if got := basePath(tt.output, tt.input); got != tt.want {
			t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
		}
	}
}

func TestNewCache(t *testing.T) {
	t.Setenv("REFGRAPH_REDIS_URL", "")

	cc, err := newCache(true)
	if err != nil {
		t.Fatalf("newCache(true) error: %v", err)
	}
	if _, ok := cc.(*cache.NullCache); !ok {
		t.Errorf("newCache(true) = %T, want *cache.NullCache", cc)
	}

	t.Setenv("REFGRAPH_CACHE_DIR", t.TempDir())
	cc, err = newCache(false)
	if err != nil {
		t.Fatalf("newCache(false) error: %v", err)
	}
	if _, ok := cc.(*cache.FileCache); !ok {
		t.Errorf("newCache(false) = %T, want *cache.FileCache", cc)
	}
}

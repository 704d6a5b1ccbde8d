// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Root discovery tests

package tests

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sony-level/nixpkgs-review/internal/nixroot"
)

// makeTree creates base/<sub...> and drops a marker in markerDir when non-empty
func makeTree(t *testing.T, sub string, markerDir string) string {
	t.Helper()
	base := t.TempDir()

	if err := os.MkdirAll(filepath.Join(base, sub), 0755); err != nil {
		t.Fatalf("Failed to create tree: %v", err)
	}

	if markerDir != "" {
		marker := filepath.Join(base, markerDir, nixroot.MarkerPath)
		if err := os.MkdirAll(filepath.Dir(marker), 0755); err != nil {
			t.Fatalf("Failed to create marker dir: %v", err)
		}
		if err := os.WriteFile(marker, []byte("{ }\n"), 0644); err != nil {
			t.Fatalf("Failed to write marker: %v", err)
		}
	}

	return base
}

func TestFindRoot(t *testing.T) {
	tests := []struct {
		name      string
		sub       string
		markerDir string
		outer     bool // also place a marker at the tree base
		want      string
	}{
		{"marker in start dir", "pkgs", "pkgs", false, "."},
		{"marker one level up", "pkgs/top-level", "pkgs", false, ".."},
		{"marker two levels up", "pkgs/by-name/he", "pkgs", false, "../.."},
		{"nearest marker wins", "a/b/c", "a/b", true, ".."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := makeTree(t, tt.sub, tt.markerDir)
			if tt.outer {
				outer := filepath.Join(base, nixroot.MarkerPath)
				if err := os.MkdirAll(filepath.Dir(outer), 0755); err != nil {
					t.Fatal(err)
				}
				if err := os.WriteFile(outer, nil, 0644); err != nil {
					t.Fatal(err)
				}
			}
			t.Chdir(filepath.Join(base, tt.sub))

			got, ok := nixroot.FindRoot()
			if !ok {
				t.Fatalf("FindRoot() not found, want %q", tt.want)
			}
			if got != tt.want {
				t.Errorf("FindRoot() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFindRoot_TwoLevelsUpResolvesToMarkerDir(t *testing.T) {
	base := makeTree(t, "x/y", "")
	marker := filepath.Join(base, nixroot.MarkerPath)
	if err := os.MkdirAll(filepath.Dir(marker), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(marker, nil, 0644); err != nil {
		t.Fatal(err)
	}
	t.Chdir(filepath.Join(base, "x", "y"))

	got, ok := nixroot.FindRoot()
	if !ok {
		t.Fatal("FindRoot() should find marker two levels up")
	}

	abs, err := filepath.Abs(got)
	if err != nil {
		t.Fatal(err)
	}
	wantAbs, err := filepath.EvalSymlinks(base)
	if err != nil {
		t.Fatal(err)
	}
	gotAbs, err := filepath.EvalSymlinks(abs)
	if err != nil {
		t.Fatal(err)
	}
	if gotAbs != wantAbs {
		t.Errorf("FindRoot() resolved to %s, want %s", gotAbs, wantAbs)
	}
}

func TestFindRoot_NotFound(t *testing.T) {
	base := makeTree(t, "no/marker/here", "")
	t.Chdir(filepath.Join(base, "no", "marker", "here"))

	if got, ok := nixroot.FindRoot(); ok {
		t.Errorf("FindRoot() = %q, want not found", got)
	}
}

func TestFindRootFrom(t *testing.T) {
	base := makeTree(t, "pkgs/applications", "")
	marker := filepath.Join(base, nixroot.MarkerPath)
	if err := os.MkdirAll(filepath.Dir(marker), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(marker, nil, 0644); err != nil {
		t.Fatal(err)
	}

	start := filepath.Join(base, "pkgs", "applications")
	got, ok := nixroot.FindRootFrom(start)
	if !ok {
		t.Fatal("FindRootFrom() should find marker")
	}
	if filepath.Clean(got) != filepath.Clean(base) {
		t.Errorf("FindRootFrom() = %q, want %q", got, base)
	}
}

func TestFindRootFrom_MarkerIsDirectoryStillCounts(t *testing.T) {
	base := t.TempDir()
	if err := os.MkdirAll(filepath.Join(base, nixroot.MarkerPath), 0755); err != nil {
		t.Fatal(err)
	}

	if _, ok := nixroot.FindRootFrom(base); !ok {
		t.Error("FindRootFrom() should accept any existing marker path")
	}
}

package uploads

import (
	"io"
	"os"
	"path/filepath"
	"testing"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestCollectFilesPatternsAndOrder(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"final.mp4":        "video",
		"raw/day1/a.mp4":   "a",
		"raw/day1/b.braw":  "b",
		"notes.txt":        "n",
		"exports/cut.mp4":  "c",
	})

	files, err := CollectFiles(root, []string{"**/*.mp4"})
	if err != nil {
		t.Fatalf("CollectFiles: %v", err)
	}

	var paths []string
	for _, f := range files {
		paths = append(paths, f.RelativePath)
	}
	want := []string{"exports/cut.mp4", "final.mp4", "raw/day1/a.mp4"}
	if len(paths) != len(want) {
		t.Fatalf("paths = %v, want %v", paths, want)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Fatalf("paths = %v, want %v", paths, want)
		}
	}
}

func TestCollectFilesMetadata(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"clips/a.mp4": "content"})

	files, err := CollectFiles(root, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 1 {
		t.Fatalf("got %d files", len(files))
	}
	f := files[0]
	if f.Name != "a.mp4" || f.RelativePath != "clips/a.mp4" || f.Size != 7 {
		t.Fatalf("file = %+v", f)
	}
	if f.Checksum == "" {
		t.Fatal("checksum not computed")
	}

	rc, err := f.Open()
	if err != nil {
		t.Fatal(err)
	}
	defer rc.Close()
	content, err := io.ReadAll(rc)
	if err != nil {
		t.Fatal(err)
	}
	if string(content) != "content" {
		t.Fatalf("content = %q", content)
	}
}

func TestCollectFilesRejectsBadPattern(t *testing.T) {
	if _, err := CollectFiles(t.TempDir(), []string{"[unterminated"}); err == nil {
		t.Fatal("expected pattern validation error")
	}
}

func TestDirSegments(t *testing.T) {
	cases := []struct {
		rel  string
		name string
		want []string
	}{
		{"a.mp4", "a.mp4", nil},
		{"raw/a.mp4", "a.mp4", []string{"raw"}},
		{"raw/day1/a.mp4", "a.mp4", []string{"raw", "day1"}},
	}
	for _, c := range cases {
		f := File{Name: c.name, RelativePath: c.rel}
		got := f.DirSegments()
		if len(got) != len(c.want) {
			t.Fatalf("DirSegments(%q) = %v, want %v", c.rel, got, c.want)
		}
		for i := range c.want {
			if got[i] != c.want[i] {
				t.Fatalf("DirSegments(%q) = %v, want %v", c.rel, got, c.want)
			}
		}
	}
}

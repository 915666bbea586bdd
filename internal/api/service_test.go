package api

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"callsheet/internal/logging"
	"callsheet/internal/storage"
	"callsheet/internal/testsupport"
	"callsheet/internal/uploads"
)

func TestSubmitUploadFlatDirectoryIgnoresLayout(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "raw", "day1"), 0o755); err != nil {
		t.Fatal(err)
	}
	for path, content := range map[string]string{
		filepath.Join(dir, "raw", "day1", "a.mp4"): "aa",
		filepath.Join(dir, "top.mp4"):              "tt",
	} {
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	cfg := testsupport.NewConfig(t)
	cfg.Drive.RootFolderID = storage.MemoryRootID
	st := testsupport.MustOpenStore(t, cfg)

	m := storage.NewMemory()
	orch := uploads.NewOrchestrator(m, logging.NewNop())
	orch.Start(context.Background())
	t.Cleanup(orch.Stop)

	svc := NewService(cfg, st, orch, logging.NewNop())
	view, err := svc.SubmitUpload(context.Background(), dir, 0, "", false)
	if err != nil {
		t.Fatalf("SubmitUpload: %v", err)
	}

	deadline := time.Now().Add(5 * time.Second)
	for {
		v, ok := orch.Job(view.ID)
		if ok && v.Status == uploads.StatusDone {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("job did not finish, status %s", v.Status)
		}
		time.Sleep(5 * time.Millisecond)
	}

	children, err := m.ListChildren(context.Background(), storage.MemoryRootID)
	if err != nil {
		t.Fatal(err)
	}
	if len(children) != 2 {
		t.Fatalf("destination root = %v, want the two files only", children)
	}
	names := map[string]bool{}
	for _, c := range children {
		if c.Folder {
			t.Fatalf("flat submission created folder %q", c.Name)
		}
		names[c.Name] = true
	}
	if !names["a.mp4"] || !names["top.mp4"] {
		t.Fatalf("unexpected destination names: %v", names)
	}
}

package storage_test

import (
	"context"
	"strings"
	"testing"

	"callsheet/internal/storage"
)

func TestMemoryCreateAndList(t *testing.T) {
	m := storage.NewMemory()
	ctx := context.Background()

	folderID, err := m.CreateFolder(ctx, storage.MemoryRootID, "Project A")
	if err != nil {
		t.Fatalf("CreateFolder: %v", err)
	}
	if _, err := m.CreateFile(ctx, folderID, "cut.mp4", strings.NewReader("video"), 5); err != nil {
		t.Fatalf("CreateFile: %v", err)
	}

	children, err := m.ListChildren(ctx, folderID)
	if err != nil {
		t.Fatalf("ListChildren: %v", err)
	}
	if len(children) != 1 || children[0].Name != "cut.mp4" || children[0].Size != 5 {
		t.Fatalf("children = %+v", children)
	}
}

func TestMemoryCreateFolderIdempotent(t *testing.T) {
	m := storage.NewMemory()
	ctx := context.Background()

	first, err := m.CreateFolder(ctx, storage.MemoryRootID, "Deliverables")
	if err != nil {
		t.Fatal(err)
	}
	second, err := m.CreateFolder(ctx, storage.MemoryRootID, "Deliverables")
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Fatalf("re-creating a folder yielded a new ID: %s vs %s", first, second)
	}
}

func TestMemoryTrashedHiddenFromListing(t *testing.T) {
	m := storage.NewMemory()
	ctx := context.Background()

	child, err := m.CreateFile(ctx, storage.MemoryRootID, "old.mp4", strings.NewReader("x"), 1)
	if err != nil {
		t.Fatal(err)
	}
	m.Trash(child.ID)

	children, err := m.ListChildren(ctx, storage.MemoryRootID)
	if err != nil {
		t.Fatal(err)
	}
	if _, found := storage.FindChild(children, "old.mp4"); found {
		t.Fatal("trashed entry still visible")
	}
}

func TestMemoryNamesCaseSensitive(t *testing.T) {
	m := storage.NewMemory()
	ctx := context.Background()

	if _, err := m.CreateFile(ctx, storage.MemoryRootID, "Final.mp4", strings.NewReader("a"), 1); err != nil {
		t.Fatal(err)
	}
	children, err := m.ListChildren(ctx, storage.MemoryRootID)
	if err != nil {
		t.Fatal(err)
	}
	if _, found := storage.FindChild(children, "final.mp4"); found {
		t.Fatal("lookup matched a name with different case")
	}
	if _, found := storage.FindChild(children, "Final.mp4"); !found {
		t.Fatal("exact name not found")
	}
}

func TestMemoryUpdateReplacesContent(t *testing.T) {
	m := storage.NewMemory()
	ctx := context.Background()

	child, err := m.CreateFile(ctx, storage.MemoryRootID, "cut.mp4", strings.NewReader("v1"), 2)
	if err != nil {
		t.Fatal(err)
	}
	updated, err := m.UpdateFile(ctx, child.ID, strings.NewReader("version two"), 11)
	if err != nil {
		t.Fatal(err)
	}
	if updated.ID != child.ID {
		t.Fatalf("update changed the file ID: %s vs %s", updated.ID, child.ID)
	}
	content, ok := m.Content(child.ID)
	if !ok || string(content) != "version two" {
		t.Fatalf("content = %q, ok=%v", content, ok)
	}
}

func TestMemoryBeforeCreateHook(t *testing.T) {
	m := storage.NewMemory()
	m.BeforeCreate = func(ctx context.Context, parentID, name string) error {
		return context.Canceled
	}
	_, err := m.CreateFile(context.Background(), storage.MemoryRootID, "x.mp4", strings.NewReader("x"), 1)
	if err == nil {
		t.Fatal("expected hook error")
	}
}

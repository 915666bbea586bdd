package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/google/uuid"
)

// MemoryRootID is the folder ID of a Memory remote's root.
const MemoryRootID = "root"

type memoryEntry struct {
	child    Child
	parentID string
	content  []byte
	trashed  bool
}

// Memory is an in-memory Remote used by tests and the dry-run upload path.
// All operations are safe for concurrent use.
type Memory struct {
	mu      sync.Mutex
	entries map[string]*memoryEntry

	// BeforeCreate, when set, runs before every CreateFile and UpdateFile
	// call while no lock is held. Returning an error fails the operation;
	// blocking on the context lets tests hold an upload mid-flight.
	BeforeCreate func(ctx context.Context, parentID, name string) error
}

// NewMemory returns an empty Memory remote with a root folder.
func NewMemory() *Memory {
	return &Memory{entries: map[string]*memoryEntry{
		MemoryRootID: {child: Child{ID: MemoryRootID, Name: "", Folder: true}},
	}}
}

func (m *Memory) ListChildren(ctx context.Context, folderID string) ([]Child, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, err := m.folder(folderID); err != nil {
		return nil, err
	}
	var out []Child
	for _, e := range m.entries {
		if e.parentID == folderID && !e.trashed {
			out = append(out, e.child)
		}
	}
	return out, nil
}

func (m *Memory) CreateFolder(ctx context.Context, parentID, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, err := m.folder(parentID); err != nil {
		return "", err
	}
	for _, e := range m.entries {
		if e.parentID == parentID && !e.trashed && e.child.Folder && e.child.Name == name {
			return e.child.ID, nil
		}
	}
	id := uuid.NewString()
	m.entries[id] = &memoryEntry{
		child:    Child{ID: id, Name: name, Folder: true},
		parentID: parentID,
	}
	return id, nil
}

func (m *Memory) CreateFile(ctx context.Context, parentID, name string, r io.Reader, size int64) (Child, error) {
	if m.BeforeCreate != nil {
		if err := m.BeforeCreate(ctx, parentID, name); err != nil {
			return Child{}, err
		}
	}
	content, err := io.ReadAll(r)
	if err != nil {
		return Child{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, err := m.folder(parentID); err != nil {
		return Child{}, err
	}
	id := uuid.NewString()
	entry := &memoryEntry{
		child:    Child{ID: id, Name: name, Size: int64(len(content))},
		parentID: parentID,
		content:  content,
	}
	m.entries[id] = entry
	return entry.child, nil
}

func (m *Memory) UpdateFile(ctx context.Context, fileID string, r io.Reader, size int64) (Child, error) {
	if m.BeforeCreate != nil {
		entry, parentID := m.lookup(fileID)
		name := ""
		if entry != nil {
			name = entry.child.Name
		}
		if err := m.BeforeCreate(ctx, parentID, name); err != nil {
			return Child{}, err
		}
	}
	content, err := io.ReadAll(r)
	if err != nil {
		return Child{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries[fileID]
	if !ok || entry.trashed || entry.child.Folder {
		return Child{}, fmt.Errorf("storage: file %s not found", fileID)
	}
	entry.content = content
	entry.child.Size = int64(len(content))
	return entry.child, nil
}

// Trash marks an entry as trashed so ListChildren stops returning it.
func (m *Memory) Trash(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.entries[id]; ok {
		e.trashed = true
	}
}

// Content returns a copy of a file's stored bytes.
func (m *Memory) Content(id string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[id]
	if !ok || e.child.Folder {
		return nil, false
	}
	return bytes.Clone(e.content), true
}

func (m *Memory) lookup(id string) (*memoryEntry, string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[id]
	if !ok {
		return nil, ""
	}
	return e, e.parentID
}

func (m *Memory) folder(id string) (*memoryEntry, error) {
	e, ok := m.entries[id]
	if !ok || e.trashed || !e.child.Folder {
		return nil, fmt.Errorf("storage: folder %s not found", id)
	}
	return e, nil
}

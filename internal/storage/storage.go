package storage

import (
	"context"
	"io"
)

// Child is a single entry inside a remote folder.
type Child struct {
	ID     string
	Name   string
	Folder bool
	Size   int64
}

// Resolution is the caller's answer to a name conflict.
type Resolution string

const (
	ResolutionOverwrite Resolution = "overwrite"
	ResolutionRename    Resolution = "rename"
	ResolutionSkip      Resolution = "skip"
)

// Valid reports whether r is one of the three accepted resolutions.
func (r Resolution) Valid() bool {
	switch r {
	case ResolutionOverwrite, ResolutionRename, ResolutionSkip:
		return true
	}
	return false
}

// Remote is the minimal surface the upload pipeline needs from a storage
// backend. Implementations must treat folder names as case sensitive and
// must not surface trashed entries from ListChildren.
type Remote interface {
	// ListChildren returns the direct children of a folder.
	ListChildren(ctx context.Context, folderID string) ([]Child, error)

	// CreateFolder creates a folder under parentID and returns its ID. If a
	// folder with that name already exists the existing ID is returned.
	CreateFolder(ctx context.Context, parentID, name string) (string, error)

	// CreateFile uploads a new file under parentID.
	CreateFile(ctx context.Context, parentID, name string, r io.Reader, size int64) (Child, error)

	// UpdateFile replaces the content of an existing file in place.
	UpdateFile(ctx context.Context, fileID string, r io.Reader, size int64) (Child, error)
}

// FindChild returns the child with the given name, matching case sensitively.
func FindChild(children []Child, name string) (Child, bool) {
	for _, c := range children {
		if c.Name == name {
			return c, true
		}
	}
	return Child{}, false
}

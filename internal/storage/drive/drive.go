// Package drive implements storage.Remote on top of the Google Drive v3 API
// using a service-account credential.
package drive

import (
	"context"
	"fmt"
	"io"
	"strings"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"callsheet/internal/services"
	"callsheet/internal/storage"
)

const folderMimeType = "application/vnd.google-apps.folder"

// Remote talks to Google Drive. Construct it with New.
type Remote struct {
	svc       *drive.Service
	chunkSize int
}

// New builds a Drive remote from a service-account credentials file. chunkMiB
// controls the resumable-upload chunk size; zero means the client default.
func New(ctx context.Context, credentialsFile string, chunkMiB int) (*Remote, error) {
	svc, err := drive.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(drive.DriveScope),
	)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "drive", "new", "create drive client", err)
	}
	return &Remote{svc: svc, chunkSize: chunkMiB * 1024 * 1024}, nil
}

func (r *Remote) ListChildren(ctx context.Context, folderID string) ([]storage.Child, error) {
	query := fmt.Sprintf("'%s' in parents and trashed = false", escapeQuery(folderID))

	var out []storage.Child
	pageToken := ""
	for {
		call := r.svc.Files.List().
			Q(query).
			Fields("nextPageToken, files(id, name, mimeType, size)").
			PageSize(1000).
			Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}
		page, err := call.Do()
		if err != nil {
			return nil, wrapAPIError("list children", err)
		}
		for _, f := range page.Files {
			out = append(out, storage.Child{
				ID:     f.Id,
				Name:   f.Name,
				Folder: f.MimeType == folderMimeType,
				Size:   f.Size,
			})
		}
		if page.NextPageToken == "" {
			return out, nil
		}
		pageToken = page.NextPageToken
	}
}

func (r *Remote) CreateFolder(ctx context.Context, parentID, name string) (string, error) {
	// Drive allows duplicate folder names, so check first to stay idempotent.
	query := fmt.Sprintf("'%s' in parents and name = '%s' and mimeType = '%s' and trashed = false",
		escapeQuery(parentID), escapeQuery(name), folderMimeType)
	existing, err := r.svc.Files.List().Q(query).Fields("files(id)").PageSize(1).Context(ctx).Do()
	if err != nil {
		return "", wrapAPIError("find folder", err)
	}
	if len(existing.Files) > 0 {
		return existing.Files[0].Id, nil
	}

	created, err := r.svc.Files.Create(&drive.File{
		Name:     name,
		MimeType: folderMimeType,
		Parents:  []string{parentID},
	}).Fields("id").Context(ctx).Do()
	if err != nil {
		return "", wrapAPIError("create folder", err)
	}
	return created.Id, nil
}

func (r *Remote) CreateFile(ctx context.Context, parentID, name string, reader io.Reader, size int64) (storage.Child, error) {
	call := r.svc.Files.Create(&drive.File{
		Name:    name,
		Parents: []string{parentID},
	}).Fields("id, name, size").Context(ctx)

	created, err := call.Media(reader, r.mediaOptions()...).Do()
	if err != nil {
		return storage.Child{}, wrapAPIError("create file", err)
	}
	return storage.Child{ID: created.Id, Name: created.Name, Size: created.Size}, nil
}

func (r *Remote) UpdateFile(ctx context.Context, fileID string, reader io.Reader, size int64) (storage.Child, error) {
	call := r.svc.Files.Update(fileID, &drive.File{}).Fields("id, name, size").Context(ctx)

	updated, err := call.Media(reader, r.mediaOptions()...).Do()
	if err != nil {
		return storage.Child{}, wrapAPIError("update file", err)
	}
	return storage.Child{ID: updated.Id, Name: updated.Name, Size: updated.Size}, nil
}

func (r *Remote) mediaOptions() []googleapi.MediaOption {
	if r.chunkSize <= 0 {
		return nil
	}
	return []googleapi.MediaOption{googleapi.ChunkSize(r.chunkSize)}
}

func wrapAPIError(operation string, err error) error {
	marker := services.ErrTransient
	if apiErr, ok := err.(*googleapi.Error); ok {
		switch apiErr.Code {
		case 401, 403:
			marker = services.ErrConfiguration
		case 404:
			marker = services.ErrNotFound
		}
	}
	return services.Wrap(marker, "drive", operation, "drive api call failed", err)
}

// escapeQuery escapes single quotes and backslashes for Drive query strings.
func escapeQuery(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `'`, `\'`)
}

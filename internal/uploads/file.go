package uploads

import (
	"encoding/hex"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/zeebo/blake3"

	"callsheet/internal/services"
)

// File is one entry in an upload job. RelativePath uses forward slashes and
// always ends in Name; for flat uploads it equals Name.
type File struct {
	Name         string
	RelativePath string
	Size         int64
	Checksum     string

	// Open returns a fresh reader over the file's content. It may be called
	// more than once for the same file (conflict retries re-read).
	Open func() (io.ReadCloser, error)
}

// DirSegments returns the relative directory path components above the file,
// left to right, or nil for a top-level file.
func (f File) DirSegments() []string {
	dir := strings.TrimSuffix(f.RelativePath, f.Name)
	dir = strings.Trim(dir, "/")
	if dir == "" {
		return nil
	}
	return strings.Split(dir, "/")
}

// CollectFiles walks root and returns the files whose root-relative paths
// match any of the glob patterns, sorted by relative path. Each file is
// checksummed so the transfer log can record what was actually sent.
func CollectFiles(root string, patterns []string) ([]File, error) {
	if len(patterns) == 0 {
		patterns = []string{"**/*"}
	}
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return nil, services.Wrap(services.ErrValidation, "uploads", "collect",
				fmt.Sprintf("invalid include pattern %q", p), nil)
		}
	}

	var files []File
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		matched := false
		for _, p := range patterns {
			ok, err := doublestar.Match(p, rel)
			if err != nil {
				return err
			}
			if ok {
				matched = true
				break
			}
		}
		if !matched {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		sum, err := checksumFile(path)
		if err != nil {
			return err
		}
		abs := path
		files = append(files, File{
			Name:         d.Name(),
			RelativePath: rel,
			Size:         info.Size(),
			Checksum:     sum,
			Open: func() (io.ReadCloser, error) {
				return os.Open(abs)
			},
		})
		return nil
	})
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "uploads", "collect", "walk upload root", err)
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].RelativePath < files[j].RelativePath
	})
	return files, nil
}

// SingleFile builds the one-entry file list for a direct (non-directory)
// upload.
func SingleFile(path string) (File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return File{}, services.Wrap(services.ErrValidation, "uploads", "collect", "stat upload file", err)
	}
	if info.IsDir() {
		return File{}, services.Wrap(services.ErrValidation, "uploads", "collect",
			fmt.Sprintf("%s is a directory", path), nil)
	}
	sum, err := checksumFile(path)
	if err != nil {
		return File{}, services.Wrap(services.ErrValidation, "uploads", "collect", "checksum upload file", err)
	}
	name := filepath.Base(path)
	return File{
		Name:         name,
		RelativePath: name,
		Size:         info.Size(),
		Checksum:     sum,
		Open: func() (io.ReadCloser, error) {
			return os.Open(path)
		},
	}, nil
}

func checksumFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := blake3.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

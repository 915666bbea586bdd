package storage

import (
	"fmt"
	"path"
	"strings"
	"time"
)

const maxVersionSuffix = 100

// RenameCandidate produces a non-conflicting name for a file whose original
// name is already taken. It tries versioned suffixes first (name_v2.ext
// through name_v100.ext) and falls back to a timestamp suffix when all of
// them are taken. taken reports whether a candidate name is already in use.
func RenameCandidate(name string, now time.Time, taken func(string) bool) string {
	ext := path.Ext(name)
	stem := strings.TrimSuffix(name, ext)

	for v := 2; v <= maxVersionSuffix; v++ {
		candidate := fmt.Sprintf("%s_v%d%s", stem, v, ext)
		if !taken(candidate) {
			return candidate
		}
	}
	return fmt.Sprintf("%s_%s%s", stem, now.UTC().Format("20060102T150405"), ext)
}

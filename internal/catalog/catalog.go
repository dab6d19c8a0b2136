// Package catalog lists and watches the level files in a directory. Listings
// use the fast metadata path, so a directory of large levels can be shown
// without parsing any of them.
package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Larleeloo/DND-Pixel-Art-Game1-sub006/internal/level"
)

// Entry is one level file found by Scan.
type Entry struct {
	level.Metadata
	// Err is set when the file could not be read; the other fields except
	// Path are empty in that case.
	Err error
}

// Title is the name shown in listings: the level name, or the file name
// when the level has none.
func (e Entry) Title() string {
	if e.Name != "" {
		return e.Name
	}
	return filepath.Base(e.Path)
}

// MetadataReader reads preview fields for one level file.
type MetadataReader interface {
	ReadMetadata(path string) (level.Metadata, error)
}

// Scan lists the level files directly inside dir whose names end in ext,
// sorted by file name.
//
// Precondition: dir must be a readable directory; ext includes the leading dot.
// Postcondition: Returns one Entry per matching file, or a non-nil error if
// dir cannot be listed. Unreadable files are reported on their Entry.
func Scan(r MetadataReader, dir, ext string) ([]Entry, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading level directory %s: %w", dir, err)
	}

	var out []Entry
	for _, de := range dirEntries {
		if de.IsDir() || !IsLevelFile(de.Name(), ext) {
			continue
		}
		path := filepath.Join(dir, de.Name())
		meta, err := r.ReadMetadata(path)
		if err != nil {
			out = append(out, Entry{Metadata: level.Metadata{Path: path}, Err: err})
			continue
		}
		out = append(out, Entry{Metadata: meta})
	}
	sort.Slice(out, func(i, j int) bool {
		return filepath.Base(out[i].Path) < filepath.Base(out[j].Path)
	})
	return out, nil
}

// IsLevelFile reports whether name carries the level extension ext,
// ignoring case. Hidden files never match; atomic saves stage through them.
func IsLevelFile(name, ext string) bool {
	base := filepath.Base(name)
	if strings.HasPrefix(base, ".") {
		return false
	}
	return strings.EqualFold(filepath.Ext(base), ext)
}

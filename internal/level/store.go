package level

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Larleeloo/DND-Pixel-Art-Game1-sub006/internal/document"
)

// Store loads and saves level files. It keeps no per-file state; every Load
// builds a new LevelData.
type Store struct {
	binder *Binder
	logger *zap.Logger
}

// NewStore returns a Store binding with presets and logging diagnostics to
// logger.
//
// Precondition: presets and logger must not be nil.
// Postcondition: Returns a non-nil Store.
func NewStore(presets *PresetTables, logger *zap.Logger) *Store {
	return &Store{binder: NewBinder(presets), logger: logger}
}

// Load reads, parses and binds the level file at path.
//
// Postcondition: Returns a fully bound LevelData, or nil and a non-nil error.
// A failed load never yields a partial level.
func (s *Store) Load(path string) (*LevelData, error) {
	data, err := readAll(path)
	if err != nil {
		s.logger.Error("reading level file", zap.String("path", path), zap.Error(err))
		return nil, err
	}
	lvl, err := s.LoadBytes(data)
	if err != nil {
		s.logger.Error("parsing level file", zap.String("path", path), zap.Error(err))
		return nil, fmt.Errorf("loading level %s: %w", path, err)
	}
	s.logger.Debug("level loaded",
		zap.String("path", path),
		zap.String("name", lvl.Name),
		zap.Int("entities", lvl.EntityCount()),
	)
	return lvl, nil
}

// LoadBytes parses and binds level text already in memory.
//
// Postcondition: Returns a fully bound LevelData, or nil and an error
// matching document.ErrSyntax.
func (s *Store) LoadBytes(data []byte) (*LevelData, error) {
	doc, err := document.ParseObject(string(data))
	if err != nil {
		return nil, fmt.Errorf("parsing level: %w", err)
	}
	return s.binder.Bind(doc), nil
}

// Save serializes lvl and writes it to path. The text goes to a temporary
// file in the same directory first and is renamed into place, so a failed
// save leaves any previous file intact.
//
// Precondition: lvl must not be nil.
// Postcondition: path holds Serialize(lvl), or a non-nil error is returned.
func (s *Store) Save(lvl *LevelData, path string) error {
	if err := writeFileAtomic(path, []byte(Serialize(lvl))); err != nil {
		s.logger.Error("writing level file", zap.String("path", path), zap.Error(err))
		return err
	}
	s.logger.Debug("level saved", zap.String("path", path), zap.String("name", lvl.Name))
	return nil
}

// Metadata is the preview information shown by level listings.
type Metadata struct {
	Path        string
	Name        string
	Description string
}

// ReadMetadata returns the name and description of the level at path using
// the fast path; the document is not parsed. Missing fields are empty.
//
// Postcondition: Returns Metadata or a non-nil I/O error.
func (s *Store) ReadMetadata(path string) (Metadata, error) {
	data, err := readAll(path)
	if err != nil {
		s.logger.Warn("reading level metadata", zap.String("path", path), zap.Error(err))
		return Metadata{}, err
	}
	return MetadataFromText(path, string(data)), nil
}

// MetadataFromText extracts preview fields from raw level text.
func MetadataFromText(path, text string) Metadata {
	m := Metadata{Path: path}
	m.Name, _ = document.ExtractString(text, "name")
	m.Description, _ = document.ExtractString(text, "description")
	return m
}

func readAll(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening level file %s: %w", path, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("reading level file %s: %w", path, err)
	}
	return data, nil
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file for %s: %w", path, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		return fmt.Errorf("setting mode on %s: %w", tmpName, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing level file %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing level file %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replacing level file %s: %w", path, err)
	}
	return nil
}

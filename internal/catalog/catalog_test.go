package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Larleeloo/DND-Pixel-Art-Game1-sub006/internal/level"
)

func newStore() *level.Store {
	return level.NewStore(level.DefaultPresets(), zap.NewNop())
}

func write(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func TestScan_SortedWithMetadata(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "b_cave.json", `{"name": "Cave", "description": "Dark and damp"}`)
	write(t, dir, "a_forest.json", `{"description": "Trees", "name": "Forest"}`)
	write(t, dir, "notes.txt", `{"name": "Ignored"}`)
	write(t, dir, ".a_forest.json.123.tmp", `{"name": "Staging"}`)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.json"), 0755))

	entries, err := Scan(newStore(), dir, ".json")
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "Forest", entries[0].Name)
	assert.Equal(t, "Trees", entries[0].Description)
	assert.Equal(t, filepath.Join(dir, "a_forest.json"), entries[0].Path)
	assert.Equal(t, "Cave", entries[1].Name)
	assert.Equal(t, "Dark and damp", entries[1].Description)
}

func TestScan_BrokenLevelStillListed(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "broken.json", `{"name": "Half written", "platforms": [{"x": `)

	entries, err := Scan(newStore(), dir, ".json")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.NoError(t, entries[0].Err)
	assert.Equal(t, "Half written", entries[0].Title())
}

func TestScan_NamelessLevelFallsBackToFileName(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "untitled.json", `{"levelWidth": 100}`)

	entries, err := Scan(newStore(), dir, ".json")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Empty(t, entries[0].Name)
	assert.Equal(t, "untitled.json", entries[0].Title())
}

type failingReader struct{ fail string }

func (f failingReader) ReadMetadata(path string) (level.Metadata, error) {
	if filepath.Base(path) == f.fail {
		return level.Metadata{}, os.ErrPermission
	}
	return level.Metadata{Path: path, Name: filepath.Base(path)}, nil
}

func TestScan_UnreadableFileReportedPerEntry(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "a.json", `{}`)
	write(t, dir, "b.json", `{}`)

	entries, err := Scan(failingReader{fail: "a.json"}, dir, ".json")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.ErrorIs(t, entries[0].Err, os.ErrPermission)
	assert.Equal(t, filepath.Join(dir, "a.json"), entries[0].Path)
	assert.NoError(t, entries[1].Err)
}

func TestScan_MissingDirectory(t *testing.T) {
	_, err := Scan(newStore(), filepath.Join(t.TempDir(), "missing"), ".json")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestIsLevelFile(t *testing.T) {
	cases := []struct {
		name string
		ext  string
		want bool
	}{
		{"cave.json", ".json", true},
		{"CAVE.JSON", ".json", true},
		{"/abs/path/cave.json", ".json", true},
		{"cave.json.bak", ".json", false},
		{"cave.lvl", ".json", false},
		{".cave.json.42.tmp", ".json", false},
		{".hidden.json", ".json", false},
		{"cave.lvl", ".lvl", true},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, IsLevelFile(tc.name, tc.ext), "IsLevelFile(%q, %q)", tc.name, tc.ext)
	}
}

package level

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Larleeloo/DND-Pixel-Art-Game1-sub006/internal/document"
)

const singlePlatformText = `{"name":"Test","groundY":720,"platforms":[{"x":10,"y":20,"spritePath":"p.png","solid":true}]}`

func newTestStore() *Store {
	return NewStore(DefaultPresets(), zap.NewNop())
}

func writeLevel(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestStore_Load(t *testing.T) {
	path := writeLevel(t, t.TempDir(), "a.json", singlePlatformText)

	lvl, err := newTestStore().Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Test", lvl.Name)
	assert.Equal(t, 720, lvl.GroundY)
	require.Len(t, lvl.Platforms, 1)
}

func TestStore_LoadFreshInstanceEachCall(t *testing.T) {
	path := writeLevel(t, t.TempDir(), "a.json", singlePlatformText)
	s := newTestStore()

	first, err := s.Load(path)
	require.NoError(t, err)
	first.Name = "mutated"
	first.Platforms[0].X = 999

	second, err := s.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Test", second.Name)
	assert.Equal(t, 10, second.Platforms[0].X)
}

func TestStore_Load_UnterminatedString(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	s := NewStore(DefaultPresets(), zap.New(core))
	path := writeLevel(t, t.TempDir(), "broken.json", `{"name": "Unterminated}`)

	lvl, err := s.Load(path)
	assert.Nil(t, lvl)
	require.Error(t, err)
	assert.ErrorIs(t, err, document.ErrSyntax)
	assert.Equal(t, 1, logs.FilterMessage("parsing level file").Len())
}

func TestStore_Load_MissingFile(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	s := NewStore(DefaultPresets(), zap.New(core))

	lvl, err := s.Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Nil(t, lvl)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Equal(t, 1, logs.FilterMessage("reading level file").Len())
}

func TestStore_Load_BadNumberAbortsWholeLoad(t *testing.T) {
	path := writeLevel(t, t.TempDir(), "n.json", `{"name": "ok", "platforms": [{"x": 1.2.3}]}`)
	lvl, err := newTestStore().Load(path)
	assert.Nil(t, lvl)
	assert.ErrorIs(t, err, document.ErrSyntax)
}

func TestStore_SaveThenLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cave.json")
	s := newTestStore()
	lvl := sampleLevel()

	require.NoError(t, s.Save(lvl, path))
	got, err := s.Load(path)
	require.NoError(t, err)
	assert.Equal(t, lvl, got)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, Serialize(lvl), string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not be left behind")
}

func TestStore_SaveOverwrites(t *testing.T) {
	path := writeLevel(t, t.TempDir(), "a.json", singlePlatformText)
	s := newTestStore()
	lvl := NewLevelData()
	lvl.Name = "Replaced"

	require.NoError(t, s.Save(lvl, path))
	got, err := s.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Replaced", got.Name)
	assert.Empty(t, got.Platforms)
}

func TestStore_Save_MissingDirectory(t *testing.T) {
	err := newTestStore().Save(NewLevelData(), filepath.Join(t.TempDir(), "nope", "a.json"))
	assert.Error(t, err)
}

func TestStore_ReadMetadata(t *testing.T) {
	path := writeLevel(t, t.TempDir(), "a.json", singlePlatformText)
	meta, err := newTestStore().ReadMetadata(path)
	require.NoError(t, err)
	assert.Equal(t, "Test", meta.Name)
	assert.Empty(t, meta.Description)
	assert.Equal(t, path, meta.Path)
}

func TestStore_ReadMetadata_UnparseableDocumentStillPreviews(t *testing.T) {
	path := writeLevel(t, t.TempDir(), "a.json", `{"name": "Half", "description": "written", "platforms": [{"x": 1.2.3`)
	meta, err := newTestStore().ReadMetadata(path)
	require.NoError(t, err)
	assert.Equal(t, "Half", meta.Name)
	assert.Equal(t, "written", meta.Description)
}

func TestStore_ConcurrentLoads(t *testing.T) {
	dir := t.TempDir()
	s := newTestStore()
	path := filepath.Join(dir, "cave.json")
	require.NoError(t, s.Save(sampleLevel(), path))

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			lvl, err := s.Load(path)
			if err == nil && lvl.Name != "Crystal Caves" {
				err = assert.AnError
			}
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		assert.NoError(t, err)
	}
}

func TestMetadataFromText(t *testing.T) {
	meta := MetadataFromText("x.json", `{"description": "Line one\nLine \"two\"", "name": "Caves"}`)
	assert.Equal(t, Metadata{Path: "x.json", Name: "Caves", Description: "Line one\nLine \"two\""}, meta)

	meta = MetadataFromText("y.json", `{}`)
	assert.Equal(t, Metadata{Path: "y.json"}, meta)
}

package service_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kibanatools/kbackup/types"
)

func TestWriteDocumentToFileFormat(t *testing.T) {
	store := newTestStore(newFakeBackend())
	dir := t.TempDir()

	d := types.Document{
		ID:     "a",
		Index:  testIndex,
		Source: map[string]interface{}{"b": "c"},
		Type:   types.TypeSearch,
	}
	path, err := store.WriteDocumentToFile(d, dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "search-a.json"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	want := `{
    "_id": "a",
    "_index": ".kibana",
    "_source": {
        "b": "c"
    },
    "_type": "search"
}
`
	assert.Equal(t, want, string(data), "keys sorted, 4-space indent, trailing newline")
}

func TestDocumentFileRoundTrip(t *testing.T) {
	store := newTestStore(newFakeBackend())
	dir := t.TempDir()

	d := types.Document{
		ID:    "main-dashboard",
		Index: testIndex,
		Source: map[string]interface{}{
			"title":      "Main",
			"panelsJSON": `[{"id":"viz-1"}]`,
			"kibanaSavedObjectMeta": map[string]interface{}{
				"searchSourceJSON": `{"filter":[]}`,
			},
		},
		Type: types.TypeDashboard,
	}
	path, err := store.WriteDocumentToFile(d, dir)
	require.NoError(t, err)

	got, err := store.ReadDocumentFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, d, got)
}

func TestWriteDocumentToFileOverwrites(t *testing.T) {
	store := newTestStore(newFakeBackend())
	dir := t.TempDir()

	d := doc("a", types.TypeSearch, map[string]interface{}{"rev": "one"})
	_, err := store.WriteDocumentToFile(d, dir)
	require.NoError(t, err)

	d.Source = map[string]interface{}{"rev": "two"}
	path, err := store.WriteDocumentToFile(d, dir)
	require.NoError(t, err)

	got, err := store.ReadDocumentFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "two", got.Source["rev"])
}

func TestPackageFileRoundTrip(t *testing.T) {
	store := newTestStore(newFakeBackend())
	dir := t.TempDir()

	set := types.DocumentSet{
		"dash-1": dashboardDoc("dash-1", "viz-1"),
		"viz-1":  doc("viz-1", types.TypeVisualization, map[string]interface{}{"title": "CPU"}),
		"s-1":    doc("s-1", types.TypeSearch, map[string]interface{}{"title": "Errors"}),
	}
	path, err := store.WritePackageToFile("nightly", set, dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "nightly-Pkg.json"), path)

	pkg, err := store.ReadPackageFromFile(path)
	require.NoError(t, err)
	require.Len(t, pkg.Docs, 3)

	got := make(types.DocumentSet, len(pkg.Docs))
	for _, d := range pkg.Docs {
		got[d.ID] = d
	}
	assert.Equal(t, set, got, "package round trip is order-independent")
}

func TestReadDocumentFromFileMalformed(t *testing.T) {
	store := newTestStore(newFakeBackend())
	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := store.ReadDocumentFromFile(path)

	var malformed *types.MalformedFileError
	require.True(t, errors.As(err, &malformed))
	assert.Equal(t, path, malformed.Path)
}

func TestReadPackageFromFileMissingDocs(t *testing.T) {
	store := newTestStore(newFakeBackend())
	path := filepath.Join(t.TempDir(), "nodocs.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"objects": []}`), 0644))

	_, err := store.ReadPackageFromFile(path)

	var malformed *types.MalformedFileError
	require.True(t, errors.As(err, &malformed))
	assert.Contains(t, malformed.Reason, "docs")
}

func TestReadDocumentFromFileMissing(t *testing.T) {
	store := newTestStore(newFakeBackend())

	_, err := store.ReadDocumentFromFile(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)

	var malformed *types.MalformedFileError
	assert.False(t, errors.As(err, &malformed), "a missing file is an I/O error, not malformed content")
}

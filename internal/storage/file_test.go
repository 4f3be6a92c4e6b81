package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"godo/internal/codec"
	"godo/internal/model"
)

func TestFile_LoadMissingYieldsEmptyDocument(t *testing.T) {
	f := NewFile(filepath.Join(t.TempDir(), "tasks.json"))

	doc, err := f.Load()
	require.NoError(t, err)
	assert.Equal(t, codec.Version, doc.Version)
	assert.Empty(t, doc.Tasks)
}

func TestFile_SaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "tasks.json")
	f := NewFile(path)

	task := model.NewTask("persist me")
	doc := codec.Export([]model.Task{task}, nil, []string{"#keep"}, nil, nil, time.Now())
	require.NoError(t, f.Save(doc))

	loaded, err := f.Load()
	require.NoError(t, err)
	require.Len(t, loaded.Tasks, 1)
	assert.Equal(t, task.ID, loaded.Tasks[0].ID)

	dec := codec.Decode(loaded)
	assert.Equal(t, []string{"#keep"}, dec.Tags)
}

func TestFile_SaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	f := NewFile(filepath.Join(dir, "tasks.json"))

	require.NoError(t, f.Save(codec.Export(nil, nil, nil, nil, nil, time.Now())))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "tasks.json", entries[0].Name())
}

func TestFile_SaveOverwrites(t *testing.T) {
	f := NewFile(filepath.Join(t.TempDir(), "tasks.json"))

	first := model.NewTask("first")
	require.NoError(t, f.Save(codec.Export([]model.Task{first}, nil, nil, nil, nil, time.Now())))

	second := model.NewTask("second")
	require.NoError(t, f.Save(codec.Export([]model.Task{second}, nil, nil, nil, nil, time.Now())))

	loaded, err := f.Load()
	require.NoError(t, err)
	require.Len(t, loaded.Tasks, 1)
	assert.Equal(t, "second", loaded.Tasks[0].Title)
}

func TestFile_LoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

	_, err := NewFile(path).Load()
	require.Error(t, err)
	var ie *codec.ImportError
	assert.ErrorAs(t, err, &ie)
}

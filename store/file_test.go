package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/studentsvc/apperror"
	"github.com/user/studentsvc/logging"
)

func newFileStore(t *testing.T) (*FileStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data", "students.json")
	return NewFileStore(path, logging.Nop{}), path
}

func TestFileStore_LoadMissingFileIsEmpty(t *testing.T) {
	s, path := newFileStore(t)

	got := s.Load(context.Background())
	assert.NotNil(t, got)
	assert.Empty(t, got)

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "load must not create the file")
}

func TestFileStore_LoadCorruptFileIsEmpty(t *testing.T) {
	s, path := newFileStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))

	for _, content := range []string{"", "{not json", `{"id":1}`, `[{"id":"x"}]`, "null"} {
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		got := s.Load(context.Background())
		assert.NotNil(t, got, "content %q", content)
		assert.Empty(t, got, "content %q", content)
	}
}

func TestFileStore_SaveThenLoadRoundTrip(t *testing.T) {
	s, _ := newFileStore(t)
	ctx := context.Background()

	want := Collection{
		{ID: 3, Name: "Cid", Level: "B2"},
		{ID: 1, Name: "Ann", Level: "A1"},
		{ID: 1, Name: "Ann again", Level: "A2"},
	}
	require.NoError(t, s.Save(ctx, want))

	assert.Equal(t, want, s.Load(ctx))
}

func TestFileStore_SaveCreatesParentDirectory(t *testing.T) {
	s, path := newFileStore(t)

	require.NoError(t, s.Save(context.Background(), Collection{{ID: 1, Name: "Ann", Level: "A1"}}))

	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestFileStore_SaveIsPrettyPrinted(t *testing.T) {
	s, path := newFileStore(t)

	require.NoError(t, s.Save(context.Background(), Collection{{ID: 1, Name: "Ann", Level: "A1"}}))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[\n  {\n    \"id\": 1,\n    \"name\": \"Ann\",\n    \"level\": \"A1\"\n  }\n]", string(raw))
}

func TestFileStore_ShorterSaveLeavesNoStaleBytes(t *testing.T) {
	s, path := newFileStore(t)
	ctx := context.Background()

	long := Collection{
		{ID: 1, Name: "Ann", Level: "A1"},
		{ID: 2, Name: "Bob with a considerably longer name", Level: "C2"},
	}
	require.NoError(t, s.Save(ctx, long))
	require.NoError(t, s.Save(ctx, long[:1]))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "Bob")
	assert.Equal(t, long[:1], s.Load(ctx))
}

func TestFileStore_SaveNilWritesEmptyArray(t *testing.T) {
	s, path := newFileStore(t)

	require.NoError(t, s.Save(context.Background(), nil))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(raw))
}

func TestFileStore_SaveFailureIsStorageError(t *testing.T) {
	dir := t.TempDir()
	// The parent "directory" is a regular file, so neither MkdirAll nor OpenFile can succeed.
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	s := NewFileStore(filepath.Join(blocker, "students.json"), nil)
	err := s.Save(context.Background(), Collection{{ID: 1}})

	require.Error(t, err)
	assert.True(t, apperror.IsStorageError(err))
}

func TestFileStore_Path(t *testing.T) {
	s := NewFileStore("data/students.json", nil)
	assert.Equal(t, "data/students.json", s.Path())
}

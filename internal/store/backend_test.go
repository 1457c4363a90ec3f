package store_test

import (
	"os"
	"path/filepath"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calvinalkan/jobtrack/internal/fs"
	"github.com/calvinalkan/jobtrack/internal/store"
	"github.com/calvinalkan/jobtrack/internal/testutil"
)

func Test_FileBackend_Get_Reports_Missing_Key(t *testing.T) {
	t.Parallel()

	b := store.NewFileBackend(fs.NewReal(), filepath.Join(t.TempDir(), "data"))

	v, ok, err := b.Get(t.Context(), "jobApplications")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, v)
}

func Test_FileBackend_Put_Creates_Dir_And_Overwrites(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "nested", "data")
	b := store.NewFileBackend(fs.NewReal(), dir)

	require.NoError(t, b.Put(t.Context(), "jobApplications", []byte(`[1]`)))
	require.NoError(t, b.Put(t.Context(), "jobApplications", []byte(`[2]`)))

	v, ok, err := b.Get(t.Context(), "jobApplications")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `[2]`, string(v))

	path, err := b.Path("jobApplications")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "jobApplications.json"), path)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func Test_FileBackend_Rejects_Keys_That_Escape_The_Dir(t *testing.T) {
	t.Parallel()

	b := store.NewFileBackend(fs.NewReal(), t.TempDir())

	for _, key := range []string{"", ".", "..", "a/b", `a\b`, "../up"} {
		_, err := b.Path(key)
		require.ErrorIs(t, err, store.ErrInvalidKey, "key %q", key)

		err = b.Put(t.Context(), key, []byte("x"))
		require.ErrorIs(t, err, store.ErrInvalidKey, "key %q", key)
	}
}

func Test_FileBackend_Surfaces_Injected_Read_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	chaos := fs.NewChaos(fs.NewReal())
	b := store.NewFileBackend(chaos, dir)

	require.NoError(t, b.Put(t.Context(), "k", []byte("v")))

	path, _ := b.Path("k")
	chaos.SetPathState(path, fs.PathIOError)

	_, _, err := b.Get(t.Context(), "k")
	require.ErrorIs(t, err, syscall.EIO)
	assert.True(t, fs.IsInjected(err))
}

func Test_Store_Over_Faulty_Disk_Rolls_Back_And_Recovers(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	chaos := fs.NewChaos(fs.NewReal())
	b := store.NewFileBackend(chaos, dir)
	clock := testutil.NewClock()

	s := openStore(t, b, clock)
	kept := mustAdd(t, s, form("Acme", "Engineer"))

	path, _ := b.Path(store.DefaultKey)
	chaos.SetPathState(path, fs.PathReadOnly)

	_, err := s.Add(t.Context(), form("Globex", "Designer"))
	require.ErrorIs(t, err, store.ErrPersist)
	require.ErrorIs(t, err, syscall.EROFS)
	assert.True(t, fs.IsInjected(err))
	assert.Equal(t, 1, s.Len())

	chaos.SetPathState(path, fs.PathNormal)

	added := mustAdd(t, s, form("Initech", "Analyst"))

	reopened := openStore(t, store.NewFileBackend(fs.NewReal(), dir), clock)
	ids := []string{}

	for _, a := range reopened.All() {
		ids = append(ids, a.ID)
	}

	assert.Equal(t, []string{kept.ID, added.ID}, ids)
	assert.Equal(t, 3, chaos.Calls("write"))
}

func Test_Store_Starts_Empty_When_Data_File_Is_Unreadable(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	chaos := fs.NewChaos(fs.NewReal())
	b := store.NewFileBackend(chaos, dir)

	seed := openStore(t, b, testutil.NewClock())
	mustAdd(t, seed, form("Acme", "Engineer"))

	path, _ := b.Path(store.DefaultKey)
	chaos.SetPathState(path, fs.PathNoPermission)

	s := openStore(t, b, testutil.NewClock())
	assert.Equal(t, 0, s.Len())
}

func Test_SQLiteBackend_Put_Get_And_Reopen(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "data", store.SQLiteFileName)

	b, err := store.OpenSQLite(t.Context(), path)
	require.NoError(t, err)

	_, ok, err := b.Get(t.Context(), "jobApplications")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, b.Put(t.Context(), "jobApplications", []byte(`[1]`)))
	require.NoError(t, b.Put(t.Context(), "jobApplications", []byte(`[1,2]`)))
	require.NoError(t, b.Put(t.Context(), "other", []byte(`x`)))
	require.NoError(t, b.Close())

	reopened, err := store.OpenSQLite(t.Context(), path)
	require.NoError(t, err)

	t.Cleanup(func() { _ = reopened.Close() })

	v, ok, err := reopened.Get(t.Context(), "jobApplications")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `[1,2]`, string(v))
}

func Test_Store_Persists_Through_SQLite(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), store.SQLiteFileName)
	clock := testutil.NewClock()

	b, err := store.OpenSQLite(t.Context(), path)
	require.NoError(t, err)

	s := openStore(t, b, clock)
	app := mustAdd(t, s, form("Acme", "Engineer"))
	require.NoError(t, s.Close())

	b2, err := store.OpenSQLite(t.Context(), path)
	require.NoError(t, err)

	reopened := openStore(t, b2, clock)
	t.Cleanup(func() { _ = reopened.Close() })

	got, ok := reopened.Get(app.ID)
	require.True(t, ok)
	assert.Equal(t, app, got)
}

func Test_OpenSQLite_Rejects_Empty_Path(t *testing.T) {
	t.Parallel()

	_, err := store.OpenSQLite(t.Context(), "")
	require.Error(t, err)
}

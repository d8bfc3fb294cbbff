package filex

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnsureParentDir_CreatesDirectory(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "state", "nested", "blog.db")

	require.NoError(t, EnsureParentDir(path))

	fi, err := os.Stat(filepath.Dir(path))
	require.NoError(t, err)
	require.True(t, fi.IsDir(), "should create a directory")

	if runtime.GOOS != "windows" {
		require.Equal(t, os.FileMode(0o700), fi.Mode().Perm()&0o700)
	}
}

func TestEnsureParentDir_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b.db")
	require.NoError(t, EnsureParentDir(path))
	require.NoError(t, EnsureParentDir(path))
}

func TestEnsureParentDir_BareNames(t *testing.T) {
	require.NoError(t, EnsureParentDir("blog.db"))
	require.NoError(t, EnsureParentDir(":memory:"))
}

func TestEnsureParentDir_FailsWhenParentIsFile(t *testing.T) {
	tmp := t.TempDir()
	file := filepath.Join(tmp, "plain")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o600))

	require.Error(t, EnsureParentDir(filepath.Join(file, "sub", "blog.db")))
}

func TestReadLimited(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "img.bin")
	require.NoError(t, os.WriteFile(path, []byte("0123456789"), 0o600))

	t.Run("within limit", func(t *testing.T) {
		got, err := ReadLimited(path, 10)
		require.NoError(t, err)
		require.Equal(t, []byte("0123456789"), got)
	})

	t.Run("no limit", func(t *testing.T) {
		got, err := ReadLimited(path, 0)
		require.NoError(t, err)
		require.Len(t, got, 10)
	})

	t.Run("over limit", func(t *testing.T) {
		_, err := ReadLimited(path, 9)
		require.ErrorIs(t, err, ErrTooLarge)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := ReadLimited(filepath.Join(tmp, "nope"), 10)
		require.ErrorIs(t, err, os.ErrNotExist)
	})
}

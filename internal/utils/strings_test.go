package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTruncateString(t *testing.T) {
	require.Equal(t, "short", TruncateString("short", 10))
	require.Equal(t, "long st...", TruncateString("long string here", 10))
	require.Equal(t, "...", TruncateString("anything", 1))
}

func TestMaskSensitive(t *testing.T) {
	require.Equal(t, "tok_****", MaskSensitive("tok_secretvalue", 4))
	require.Equal(t, "****", MaskSensitive("tok", 4))
	require.Equal(t, "****", MaskSensitive("secret", -1))
}

func TestAtomicWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.toml")

	require.NoError(t, AtomicWriteFile(path, []byte("a = 1\n"), 0600))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "a = 1\n", string(data))

	// overwrite keeps the file readable the whole time
	require.NoError(t, AtomicWriteFile(path, []byte("a = 2\n"), 0600))
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "a = 2\n", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsValidName(t *testing.T) {
	require.True(t, IsValidName("my-app"))
	require.True(t, IsValidName("app2"))
	require.True(t, IsValidName("a"))

	require.False(t, IsValidName(""))
	require.False(t, IsValidName("-app"))
	require.False(t, IsValidName("app-"))
	require.False(t, IsValidName("My-App"))
	require.False(t, IsValidName("my_app"))
	require.False(t, IsValidName("my.app"))
}

func TestValidateProjectPath(t *testing.T) {
	dir := t.TempDir()

	resolved, err := ValidateProjectPath(dir)
	require.NoError(t, err)
	require.Equal(t, dir, resolved)

	_, err = ValidateProjectPath("")
	require.Error(t, err)

	_, err = ValidateProjectPath(filepath.Join(dir, "missing"))
	require.ErrorContains(t, err, "does not exist")

	file := filepath.Join(dir, "file.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))
	_, err = ValidateProjectPath(file)
	require.ErrorContains(t, err, "not a directory")
}

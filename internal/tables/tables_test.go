package tables

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	loaded, err := Load()
	require.NoError(t, err)

	require.True(t, loaded.IsStandardLibrary("cpython3", "os"))
	require.True(t, loaded.IsStandardLibrary("cpython2", "urllib2"))
	require.False(t, loaded.IsStandardLibrary("cpython3", "requests"))
	require.False(t, loaded.IsStandardLibrary("nonexistent", "os"))

	require.True(t, loaded.IsAnyStandardLibrary("urllib2"))
	require.False(t, loaded.IsAnyStandardLibrary("requests"))
}

func TestBaseProvided(t *testing.T) {
	loaded, err := Load()
	require.NoError(t, err)

	floor, ok := loaded.BaseProvided("setuptools")
	require.True(t, ok)
	require.Equal(t, "40.0", floor)

	floor, ok = loaded.BaseProvided("pip")
	require.True(t, ok)
	require.Equal(t, "", floor)

	_, ok = loaded.BaseProvided("requests")
	require.False(t, ok)
}

func TestAlias(t *testing.T) {
	loaded, err := Load()
	require.NoError(t, err)

	target, ok := loaded.Alias("tables")
	require.True(t, ok)
	require.Equal(t, "pytables", target)

	// Lookup normalizes separators like the classifier does.
	target, ok = loaded.Alias("MsgPack_Python")
	require.True(t, ok)
	require.Equal(t, "msgpack", target)

	_, ok = loaded.Alias("requests")
	require.False(t, ok)
}

func TestCompiler(t *testing.T) {
	loaded, err := Load()
	require.NoError(t, err)

	language, ok := loaded.Compiler("cython")
	require.True(t, ok)
	require.Equal(t, "c", language)

	language, ok = loaded.Compiler("Pybind11")
	require.True(t, ok)
	require.Equal(t, "cxx", language)

	_, ok = loaded.Compiler("numpy")
	require.False(t, ok)
}

func TestLicenses(t *testing.T) {
	loaded, err := Load()
	require.NoError(t, err)

	licenses := loaded.Licenses()
	require.NotEmpty(t, licenses)
	for _, entry := range licenses {
		require.NotEmpty(t, entry.ID)
	}
}

func TestDefaultProfile(t *testing.T) {
	profile := DefaultProfile()
	require.Equal(t, "cpython3", profile.Name)
	require.Contains(t, profile.Supported, profile.MinPython)
	require.NotEmpty(t, profile.Platforms)
}

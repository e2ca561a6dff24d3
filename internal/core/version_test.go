package core

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestIsPreRelease(t *testing.T) {
	pre := []string{"1.0a1", "2.0.0rc1", "3.1.dev3", "1.0b2", "0.9alpha2", "1.0.0.pre1"}
	for _, value := range pre {
		require.True(t, IsPreRelease(value), value)
	}
	stable := []string{"1.0", "2.31.0", "5.3.1", "1.0.post1", "2020.6.20"}
	for _, value := range stable {
		require.False(t, IsPreRelease(value), value)
	}
}

func TestSortVersions(t *testing.T) {
	got := SortVersions([]string{"1.10.0", "1.2.0", "1.9.0", "2.0.0rc1", "1.0"})
	want := []string{"1.0", "1.2.0", "1.9.0", "1.10.0", "2.0.0rc1"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestSortVersionsUnparsableSortFirst(t *testing.T) {
	got := SortVersions([]string{"1.0", "garbage", "0.5"})
	require.Equal(t, "garbage", got[0])
	require.Equal(t, "1.0", got[len(got)-1])
}

func TestHighestStable(t *testing.T) {
	version, ok := HighestStable([]string{"5.3.1", "5.4.0rc1", "5.2.0"})
	require.True(t, ok)
	require.Equal(t, "5.3.1", version)

	_, ok = HighestStable([]string{"1.0a1", "1.0b2"})
	require.False(t, ok)

	_, ok = HighestStable(nil)
	require.False(t, ok)
}

func TestHighestAny(t *testing.T) {
	version, ok := HighestAny([]string{"1.0a1", "1.0b2"})
	require.True(t, ok)
	require.Equal(t, "1.0b2", version)

	_, ok = HighestAny([]string{"garbage"})
	require.False(t, ok)
}

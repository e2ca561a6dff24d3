package core

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"recipesmith/internal/tables"
	"recipesmith/internal/types"
)

func newTestClassifier(t *testing.T) Classifier {
	t.Helper()
	loaded, err := tables.Load()
	require.NoError(t, err)
	return NewClassifier(loaded, tables.DefaultProfile())
}

func TestClassifyStandardLibraryIsDropped(t *testing.T) {
	classifier := newTestClassifier(t)
	for _, name := range []string{"os", "json", "typing", "configparser"} {
		classified, keep := classifier.Classify(types.DependencySpec{Name: name, Raw: name})
		require.False(t, keep, name)
		require.Equal(t, types.ClassStandardLibrary, classified.Class, name)
	}
}

// A module that belongs to any interpreter profile's standard library is
// never emitted, even when the target profile does not list it.
func TestClassifyStandardLibraryWinsAcrossProfiles(t *testing.T) {
	classifier := newTestClassifier(t)
	classified, keep := classifier.Classify(types.DependencySpec{Name: "urllib2", Raw: "urllib2"})
	require.False(t, keep)
	require.Equal(t, types.ClassStandardLibrary, classified.Class)
}

func TestClassifyBaseProvided(t *testing.T) {
	classifier := newTestClassifier(t)

	classified, keep := classifier.Classify(types.DependencySpec{Name: "pip", Raw: "pip"})
	require.True(t, keep)
	require.Equal(t, types.ClassBaseProvided, classified.Class)
	require.Equal(t, "pip", classified.TargetName)
	require.Empty(t, classified.Spec.Constraints)

	classified, keep = classifier.Classify(types.DependencySpec{Name: "setuptools", Raw: "setuptools"})
	require.True(t, keep)
	require.Equal(t, types.ClassBaseProvided, classified.Class)
	want := []types.VersionConstraint{{Op: types.ConstraintOpGte, Version: "40.0"}}
	if diff := cmp.Diff(want, classified.Spec.Constraints); diff != "" {
		t.Fatalf("floor constraint mismatch (-want +got):\n%s", diff)
	}
}

func TestClassifyBaseProvidedKeepsExistingFloor(t *testing.T) {
	classifier := newTestClassifier(t)
	dep := types.DependencySpec{
		Name:        "setuptools",
		Raw:         "setuptools >=42.0",
		Constraints: []types.VersionConstraint{{Op: types.ConstraintOpGte, Version: "42.0"}},
	}
	classified, keep := classifier.Classify(dep)
	require.True(t, keep)
	want := []types.VersionConstraint{{Op: types.ConstraintOpGte, Version: "42.0"}}
	if diff := cmp.Diff(want, classified.Spec.Constraints); diff != "" {
		t.Fatalf("constraints mismatch (-want +got):\n%s", diff)
	}
}

func TestClassifyExternalNormalizesAndAliases(t *testing.T) {
	classifier := newTestClassifier(t)
	tests := []struct {
		name   string
		target string
	}{
		{"Foo_Bar", "foo-bar"},
		{"requests", "requests"},
		{"tables", "pytables"},
		{"torch", "pytorch"},
		{"opencv-python", "opencv"},
		{"msgpack_python", "msgpack"},
	}
	for _, tt := range tests {
		classified, keep := classifier.Classify(types.DependencySpec{Name: tt.name, Raw: tt.name})
		require.True(t, keep, tt.name)
		require.Equal(t, types.ClassExternal, classified.Class, tt.name)
		require.Equal(t, tt.target, classified.TargetName, tt.name)
	}
}

func TestClassifyAllDropsStandardLibraryOnly(t *testing.T) {
	classifier := newTestClassifier(t)
	deps := []types.DependencySpec{
		{Name: "os", Raw: "os"},
		{Name: "foo-bar", Raw: "foo-bar"},
		{Name: "baz", Raw: "baz"},
	}
	classified := classifier.ClassifyAll(deps)
	require.Len(t, classified, 2)
	require.Equal(t, "foo-bar", classified[0].TargetName)
	require.Equal(t, "baz", classified[1].TargetName)
}

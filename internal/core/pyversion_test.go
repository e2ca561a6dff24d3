package core

import (
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/require"

	"recipesmith/internal/tables"
	"recipesmith/internal/types"
)

func TestEvaluatePythonSupport(t *testing.T) {
	profile := tables.DefaultProfile()

	support, err := EvaluatePythonSupport("", profile)
	require.NoError(t, err)
	require.Empty(t, support.Excluded)
	require.Equal(t, profile.Supported, support.Supported)

	support, err = EvaluatePythonSupport(">=3.7", profile)
	require.NoError(t, err)
	require.Equal(t, []string{"2.7", "3.6"}, support.Excluded)
	require.Equal(t, []string{"3.7", "3.8"}, support.Supported)

	_, err = EvaluatePythonSupport("not-a-specifier", profile)
	require.Error(t, err)
	require.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}

func TestSkipSelector(t *testing.T) {
	profile := tables.DefaultProfile()
	tests := []struct {
		requiresPython string
		want           string
	}{
		{"", ""},
		{">=3.5", "py2k"},
		{">=3.6", "py2k"},
		{">=3.7", "py<37"},
		{"<=3.7", "py>=38"},
		{"<=3.7.1", "py>=38"},
		{"<3.7", "py>=37"},
		{">2.7, !=3.0.*, !=3.1.*, !=3.2.*, !=3.3.*, !=3.4.*", "py2k"},
		{">=2.7, !=3.6.*", "py==36"},
		{">3.7", "py<38"},
		{">2.7", "py2k"},
		{"<3", "py3k"},
		{"!=3.7", "py==37"},
	}
	for _, tt := range tests {
		got, warnings, err := SkipSelector(tt.requiresPython, profile)
		require.NoError(t, err, tt.requiresPython)
		require.Empty(t, warnings, tt.requiresPython)
		require.Equal(t, tt.want, got, tt.requiresPython)
	}
}

func TestPythonFloor(t *testing.T) {
	profile := tables.DefaultProfile()
	tests := []struct {
		requiresPython string
		want           string
	}{
		{"", ""},
		{">=3.5", ">=3.6"},
		{">=3.6", ">=3.6"},
		{">=3.7", ">=3.7"},
		{"<=3.7", "<3.8"},
		{"<=3.7.1", "<3.8"},
		{"<3.7", "<3.7"},
		{">2.7, !=3.0.*, !=3.1.*, !=3.2.*, !=3.3.*, !=3.4.*", ">=3.6"},
		{">=2.7, !=3.6.*", "!=3.6"},
		{">3.7", ">=3.8"},
		{">2.7", ">=3.6"},
		{"<3", "<3.0"},
		{"!=3.7", "!=3.7"},
	}
	for _, tt := range tests {
		got, warnings, err := PythonFloor(tt.requiresPython, profile)
		require.NoError(t, err, tt.requiresPython)
		require.Empty(t, warnings, tt.requiresPython)
		require.Equal(t, tt.want, got, tt.requiresPython)
	}
}

func TestSkipSelectorComplexShapeDegrades(t *testing.T) {
	profile := tables.DefaultProfile()
	got, warnings, err := SkipSelector("!=3.6.*, !=3.8.*", profile)
	require.NoError(t, err)
	require.Equal(t, "", got)
	require.Len(t, warnings, 1)
	require.Equal(t, types.WarnComplexPythonRange, warnings[0].Kind)

	floor, warnings, err := PythonFloor("!=3.6.*, !=3.8.*", profile)
	require.NoError(t, err)
	require.Equal(t, "", floor)
	require.Len(t, warnings, 1)
}

func TestSkipSelectorNothingSupported(t *testing.T) {
	profile := tables.DefaultProfile()
	_, _, err := SkipSelector("<2.0", profile)
	require.Error(t, err)
	require.Equal(t, errbuilder.CodeFailedPrecondition, errbuilder.CodeOf(err))

	_, _, err = PythonFloor("<2.0", profile)
	require.Error(t, err)
	require.Equal(t, errbuilder.CodeFailedPrecondition, errbuilder.CodeOf(err))
}

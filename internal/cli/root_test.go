package cli

import (
	"errors"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/require"
)

func TestRootCommandWiring(t *testing.T) {
	root := newRootCommand()
	require.Equal(t, "recipesmith", root.Use)
	require.NotNil(t, root.PersistentFlags().Lookup("config"))
	require.NotNil(t, root.PersistentFlags().Lookup("log-level"))

	var generate bool
	for _, cmd := range root.Commands() {
		if cmd.Name() == "generate" {
			generate = true
			for _, flag := range []string{"version", "ecosystem", "output", "license-threshold", "workers"} {
				require.NotNil(t, cmd.Flags().Lookup(flag), flag)
			}
		}
	}
	require.True(t, generate, "generate command not registered")
}

func TestExitCodeForError(t *testing.T) {
	tests := []struct {
		code errbuilder.ErrCode
		want int
	}{
		{errbuilder.CodeInvalidArgument, 2},
		{errbuilder.CodeAlreadyExists, 2},
		{errbuilder.CodeFailedPrecondition, 3},
		{errbuilder.CodeNotFound, 4},
		{errbuilder.CodeInternal, 5},
	}
	for _, tt := range tests {
		err := errbuilder.New().WithCode(tt.code).WithMsg("boom")
		require.Equal(t, tt.want, exitCodeForError(err), tt.want)
	}
	require.Equal(t, 1, exitCodeForError(errors.New("plain")))
}

package cli

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"recipesmith/internal/app"
)

func TestParsePackageRef(t *testing.T) {
	tests := []struct {
		arg  string
		want app.PackageRef
	}{
		{"pytest", app.PackageRef{Name: "pytest"}},
		{"pytest==5.3.1", app.PackageRef{Name: "pytest", Version: "5.3.1"}},
		{" requests == 2.31.0 ", app.PackageRef{Name: "requests", Version: "2.31.0"}},
		{"pkg==", app.PackageRef{Name: "pkg"}},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, parsePackageRef(tt.arg)); diff != "" {
			t.Fatalf("ref mismatch for %q (-want +got):\n%s", tt.arg, diff)
		}
	}
}

func TestGenerateCommandUsage(t *testing.T) {
	cmd := newGenerateCommand()
	require.Equal(t, "generate", cmd.Name())
	require.Error(t, cmd.Args(cmd, nil))
	require.NoError(t, cmd.Args(cmd, []string{"pytest"}))
	require.NoError(t, cmd.Args(cmd, []string{"pytest", "requests"}))
}

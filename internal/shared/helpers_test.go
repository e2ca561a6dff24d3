package shared

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizePipName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Foo_Bar", "foo-bar"},
		{"zope.interface", "zope-interface"},
		{"  Requests ", "requests"},
		{"already-normal", "already-normal"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, NormalizePipName(tt.in), tt.in)
	}
}

func TestImportName(t *testing.T) {
	require.Equal(t, "foo_bar", ImportName("Foo-Bar"))
	require.Equal(t, "zope_interface", ImportName("zope.interface"))
}

func TestHTTPStatusError(t *testing.T) {
	err := HTTPStatusError(503, "https://example.org")
	require.EqualError(t, err, "status=503 url=https://example.org")
}

package ports

import (
	"context"

	"recipesmith/internal/types"
)

// SourcePort fetches one raw metadata record per (package, version) from
// an upstream ecosystem. An empty version resolves to the latest stable
// release, falling back to the highest pre-release when no stable release
// exists (the returned record is flagged pre-release in that case).
type SourcePort interface {
	Fetch(ctx context.Context, name string, version string) (types.RawMetadataRecord, error)
}

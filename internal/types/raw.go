package types

// RawMetadataRecord is the ecosystem-native metadata bag produced by a
// source adapter. Exactly one record exists per (package, version); it is
// discarded after normalization. Field names follow the upstream schema
// loosely; adapters fill only what their ecosystem exposes.
type RawMetadataRecord struct {
	Ecosystem EcosystemKind

	Name    string
	Version string

	// PreRelease marks a record whose version was resolved via the
	// pre-release fallback because no stable release exists upstream.
	PreRelease bool

	Summary        string
	HomePage       string
	License        string
	Classifiers    []string
	RequiresDist   []string
	RequiresPython string

	// SetupRequires and EntryPoints are only populated by the sdist
	// adapter; the index API does not expose them.
	SetupRequires []string
	EntryPoints   []string

	SourceURL    string
	SourceSHA256 string
}

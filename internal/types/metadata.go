package types

// UnknownValue is the explicit sentinel substituted for optional metadata
// fields the upstream record does not carry. It is rendered into the
// document verbatim so the section structure stays complete.
const UnknownValue = "<unknown>"

type VersionConstraint struct {
	Op      ConstraintOp
	Version string
}

// EnvironmentMarker is one parsed clause of a source-ecosystem dependency
// condition, e.g. sys_platform == "win32". Multiple markers on the same
// dependency combine with logical AND.
type EnvironmentMarker struct {
	Variable string
	Op       string
	Value    string
}

type DependencySpec struct {
	Name        string
	Extras      []string
	Constraints []VersionConstraint
	Markers     []EnvironmentMarker

	// Raw preserves the original declaration string for warnings and
	// selector lookup.
	Raw string
}

// CanonicalPackageMetadata is the ecosystem-agnostic model a pipeline run
// builds once and never mutates. Name and Version are always present;
// everything else degrades to UnknownValue or empty.
type CanonicalPackageMetadata struct {
	Name    string
	Version string

	// VersionParsed is false when the upstream version string is not a
	// valid PEP 440 version. Such versions are kept verbatim but excluded
	// from ordering-sensitive logic.
	VersionParsed bool
	PreRelease    bool

	Summary     string
	HomePage    string
	LicenseText string
	Classifiers []string

	Dependencies      []DependencySpec
	BuildDependencies []DependencySpec

	RequiresPython string
	EntryPoints    []string

	SourceURL    string
	SourceSHA256 string
}

// ClassifiedDependency tags a DependencySpec with its toolchain class.
// External entries carry the remapped target-ecosystem name.
type ClassifiedDependency struct {
	Spec       DependencySpec
	Class      DependencyClass
	TargetName string
}

// InterpreterProfile describes the target interpreter set a recipe is
// synthesized for: which interpreter versions the build matrix covers and
// the minimum version recipes may require.
type InterpreterProfile struct {
	Name      string
	Supported []string
	MinPython string
	Platforms []string
}

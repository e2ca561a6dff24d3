package types

// EcosystemKind selects the upstream metadata source variant. Adapter
// construction dispatches on this value, there is no adapter hierarchy.
type EcosystemKind string

const (
	EcosystemPyPI  EcosystemKind = "pypi"
	EcosystemSdist EcosystemKind = "sdist"
)

// DependencyClass partitions declared dependencies against the target
// toolchain.
type DependencyClass string

const (
	ClassStandardLibrary DependencyClass = "standard-library"
	ClassBaseProvided    DependencyClass = "base-provided"
	ClassExternal        DependencyClass = "external"
)

// RequirementPhase names a requirements block of the recipe document.
type RequirementPhase string

const (
	PhaseBuild RequirementPhase = "build"
	PhaseHost  RequirementPhase = "host"
	PhaseRun   RequirementPhase = "run"
	PhaseTest  RequirementPhase = "test"
)

type ConstraintOp string

const (
	ConstraintOpNone   ConstraintOp = ""
	ConstraintOpEq     ConstraintOp = "=="
	ConstraintOpNe     ConstraintOp = "!="
	ConstraintOpCompat ConstraintOp = "~="
	ConstraintOpGte    ConstraintOp = ">="
	ConstraintOpLte    ConstraintOp = "<="
	ConstraintOpGt     ConstraintOp = ">"
	ConstraintOpLt     ConstraintOp = "<"
)

// WarningKind tags a data-quality degradation recorded while a pipeline
// run continued.
type WarningKind string

const (
	WarnUnparsableDependency WarningKind = "unparsable-dependency"
	WarnUnparsableVersion    WarningKind = "unparsable-version"
	WarnUnknownMarker        WarningKind = "unknown-marker"
	WarnMissingField         WarningKind = "missing-field"
	WarnComplexPythonRange   WarningKind = "complex-python-range"
	WarnWeakLicense          WarningKind = "weak-license"
)

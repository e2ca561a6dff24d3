// Package policies captures the pipeline's graceful-degradation rules as
// explicit decision tables. Components consult the table instead of
// encoding drop/flag/substitute choices inline, so each policy can be
// tested and changed independently.
package policies

// FailureKind names a data-quality problem a component can hit without
// aborting the run.
type FailureKind string

const (
	// FailureUnparsableDependency: a declared dependency string that does
	// not parse under the source grammar.
	FailureUnparsableDependency FailureKind = "unparsable-dependency"

	// FailureUnknownMarker: an environment marker whose syntax or
	// variable is not recognized.
	FailureUnknownMarker FailureKind = "unknown-marker"

	// FailureExtraMarker: a marker gating the dependency on an optional
	// extra of the package.
	FailureExtraMarker FailureKind = "extra-marker"

	// FailureMissingOptionalField: an optional metadata field absent from
	// the raw record.
	FailureMissingOptionalField FailureKind = "missing-optional-field"

	// FailureUnparsableVersion: a version string that is not a valid
	// ordered version.
	FailureUnparsableVersion FailureKind = "unparsable-version"

	// FailureWeakLicense: the best license candidate scored below the
	// configured threshold.
	FailureWeakLicense FailureKind = "weak-license"
)

// Action is the degradation applied for a failure kind.
type Action string

const (
	// ActionDrop removes the entry and records a warning.
	ActionDrop Action = "drop"

	// ActionDegradeUnconditional keeps the entry without its condition
	// and records a warning. Omitting a real requirement is a worse
	// failure than over-including one.
	ActionDegradeUnconditional Action = "degrade-unconditional"

	// ActionPlaceholder substitutes the explicit unknown sentinel.
	ActionPlaceholder Action = "placeholder"

	// ActionKeepOpaque preserves the value verbatim but excludes it from
	// ordering-sensitive logic.
	ActionKeepOpaque Action = "keep-opaque"

	// ActionNoMatch reports an explicit "no match" instead of a weak
	// guess. A wrong identifier is worse than an explicit unknown.
	ActionNoMatch Action = "no-match"
)

// DegradationPolicy maps failure kinds to actions.
type DegradationPolicy struct {
	table map[FailureKind]Action
}

// Default returns the shipped decision table.
func Default() DegradationPolicy {
	return DegradationPolicy{table: map[FailureKind]Action{
		FailureUnparsableDependency: ActionDrop,
		FailureUnknownMarker:        ActionDegradeUnconditional,
		FailureExtraMarker:          ActionDrop,
		FailureMissingOptionalField: ActionPlaceholder,
		FailureUnparsableVersion:    ActionKeepOpaque,
		FailureWeakLicense:          ActionNoMatch,
	}}
}

// ActionFor returns the action for a failure kind. Unknown kinds degrade
// to ActionDrop, the most conservative choice for data we cannot
// interpret at all.
func (p DegradationPolicy) ActionFor(kind FailureKind) Action {
	if action, ok := p.table[kind]; ok {
		return action
	}
	return ActionDrop
}

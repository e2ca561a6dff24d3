package core

import (
	"recipesmith/internal/shared"
	"recipesmith/internal/tables"
	"recipesmith/internal/types"
)

// Classifier partitions declared dependencies against the target
// toolchain. Standard-library modules are dropped entirely, base-provided
// packages are emitted with an optional minimum-version floor, and
// everything else is external with a remapped target name.
type Classifier struct {
	tables  *tables.Tables
	profile types.InterpreterProfile
}

func NewClassifier(t *tables.Tables, profile types.InterpreterProfile) Classifier {
	return Classifier{tables: t, profile: profile}
}

// Classify tags one dependency. keep is false when the dependency must
// not appear in the recipe at all (standard library is always resolvable
// from the toolchain).
func (c Classifier) Classify(dep types.DependencySpec) (types.ClassifiedDependency, bool) {
	// Standard-library classification wins over the alias table, for any
	// interpreter profile: never emit a requirement for something the
	// toolchain provides.
	if c.tables.IsStandardLibrary(c.profile.Name, dep.Name) || c.tables.IsAnyStandardLibrary(dep.Name) {
		return types.ClassifiedDependency{Spec: dep, Class: types.ClassStandardLibrary}, false
	}

	if floor, ok := c.tables.BaseProvided(dep.Name); ok {
		classified := types.ClassifiedDependency{
			Spec:       dep,
			Class:      types.ClassBaseProvided,
			TargetName: shared.NormalizePipName(dep.Name),
		}
		if floor != "" && !hasFloor(dep.Constraints) {
			classified.Spec.Constraints = append(append([]types.VersionConstraint(nil), dep.Constraints...),
				types.VersionConstraint{Op: types.ConstraintOpGte, Version: floor})
		}
		return classified, true
	}

	target := shared.NormalizePipName(dep.Name)
	if alias, ok := c.tables.Alias(target); ok {
		target = alias
	}
	return types.ClassifiedDependency{
		Spec:       dep,
		Class:      types.ClassExternal,
		TargetName: target,
	}, true
}

// ClassifyAll classifies a list, dropping standard-library entries.
func (c Classifier) ClassifyAll(deps []types.DependencySpec) []types.ClassifiedDependency {
	var out []types.ClassifiedDependency
	for _, dep := range deps {
		if classified, keep := c.Classify(dep); keep {
			out = append(out, classified)
		}
	}
	return out
}

// hasFloor reports whether the comparator set already bounds the version
// from below.
func hasFloor(constraints []types.VersionConstraint) bool {
	for _, constraint := range constraints {
		switch constraint.Op {
		case types.ConstraintOpGte, types.ConstraintOpGt, types.ConstraintOpEq, types.ConstraintOpCompat:
			return true
		}
	}
	return false
}

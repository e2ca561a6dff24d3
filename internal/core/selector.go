package core

import (
	"strings"

	"recipesmith/internal/policies"
	"recipesmith/internal/types"
)

// SelectorResolver translates source environment markers into target
// selector conditions. Markers it cannot interpret degrade to
// unconditional with a warning; a dependency is never silently dropped
// for having a strange marker. The one deliberate drop is the "extra"
// marker: such dependencies belong to an optional feature set of the
// package and are excluded from the recipe.
type SelectorResolver struct {
	profile types.InterpreterProfile
	policy  policies.DegradationPolicy
}

func NewSelectorResolver(profile types.InterpreterProfile, policy policies.DegradationPolicy) SelectorResolver {
	return SelectorResolver{profile: profile, policy: policy}
}

// SelectorResolution maps dependency declarations (by raw string) to
// their selector conditions. Dropped lists declarations excluded by the
// extra-marker policy.
type SelectorResolution struct {
	Selectors map[string]types.SelectorCondition
	Dropped   map[string]bool
	Warnings  []types.Warning
}

// ResolveAll resolves every dependency's markers. Dependencies without
// markers get no selector (unconditional).
func (r SelectorResolver) ResolveAll(deps []types.DependencySpec) SelectorResolution {
	resolution := SelectorResolution{
		Selectors: map[string]types.SelectorCondition{},
		Dropped:   map[string]bool{},
	}
	for _, dep := range deps {
		condition, drop, warnings := r.Resolve(dep)
		resolution.Warnings = append(resolution.Warnings, warnings...)
		if drop {
			resolution.Dropped[dep.Raw] = true
			continue
		}
		if !condition.IsZero() {
			resolution.Selectors[dep.Raw] = condition
		}
	}
	return resolution
}

// Resolve translates one dependency's markers, AND-combining multiple
// clauses.
func (r SelectorResolver) Resolve(dep types.DependencySpec) (types.SelectorCondition, bool, []types.Warning) {
	var condition types.SelectorCondition
	var warnings []types.Warning
	for _, marker := range dep.Markers {
		term, drop, known := r.translate(marker)
		if drop {
			if r.policy.ActionFor(policies.FailureExtraMarker) == policies.ActionDrop {
				return types.SelectorCondition{}, true, warnings
			}
			continue
		}
		if !known {
			if r.policy.ActionFor(policies.FailureUnknownMarker) == policies.ActionDegradeUnconditional {
				warnings = append(warnings, types.Warning{
					Kind:    types.WarnUnknownMarker,
					Subject: dep.Raw,
					Detail:  "marker degraded to unconditional: " + marker.Variable + marker.Op + marker.Value,
				})
			}
			continue
		}
		condition = condition.And(term)
	}
	return condition, false, warnings
}

// translate maps one marker clause to a selector term. drop reports the
// extra-marker case; known is false for unrecognized variables, values,
// or operators.
func (r SelectorResolver) translate(marker types.EnvironmentMarker) (term string, drop bool, known bool) {
	switch marker.Variable {
	case "extra":
		return "", true, true
	case "sys_platform":
		return platformTerm(marker.Op, sysPlatformName(marker.Value))
	case "platform_system":
		return platformTerm(marker.Op, platformSystemName(marker.Value))
	case "os_name":
		return platformTerm(marker.Op, osNameTerm(marker.Value))
	case "python_version":
		return pythonVersionTerm(marker.Op, marker.Value)
	default:
		return "", false, false
	}
}

func sysPlatformName(value string) string {
	switch strings.ToLower(value) {
	case "win32", "cygwin":
		return "win"
	case "darwin":
		return "osx"
	case "linux", "linux2":
		return "linux"
	default:
		return ""
	}
}

func platformSystemName(value string) string {
	switch strings.ToLower(value) {
	case "windows":
		return "win"
	case "darwin":
		return "osx"
	case "linux":
		return "linux"
	default:
		return ""
	}
}

func osNameTerm(value string) string {
	switch strings.ToLower(value) {
	case "nt":
		return "win"
	case "posix":
		return "unix"
	default:
		return ""
	}
}

func platformTerm(op string, platform string) (string, bool, bool) {
	if platform == "" {
		return "", false, false
	}
	switch op {
	case "==", "===":
		return platform, false, true
	case "!=":
		return "not " + platform, false, true
	default:
		return "", false, false
	}
}

// pythonVersionTerm renders interpreter-version comparisons in selector
// grammar: python_version < "3.6" becomes py<36.
func pythonVersionTerm(op string, value string) (string, bool, bool) {
	digits := strings.ReplaceAll(strings.TrimSpace(value), ".", "")
	if digits == "" || !isDigits(digits) {
		return "", false, false
	}
	if op == "===" {
		op = "=="
	}
	switch op {
	case "==", "!=", "<", "<=", ">", ">=":
		return "py" + op + digits, false, true
	default:
		return "", false, false
	}
}

func isDigits(value string) bool {
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

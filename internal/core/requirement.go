package core

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	pep440 "github.com/aquasecurity/go-pep440-version"

	"recipesmith/internal/types"
)

// opTokens is the ordered list of constraint operators tried during
// parsing. Longer tokens must precede shorter ones to avoid false matches
// (e.g. ">=" before ">").
var opTokens = []types.ConstraintOp{
	types.ConstraintOpGte,
	types.ConstraintOpLte,
	types.ConstraintOpCompat,
	types.ConstraintOpNe,
	types.ConstraintOpEq,
	types.ConstraintOpGt,
	types.ConstraintOpLt,
}

var markerClauseRe = regexp.MustCompile(`^\s*\(?\s*([A-Za-z_][A-Za-z0-9_]*)\s*(===|==|!=|<=|>=|<|>|~=)\s*['"]?([^'")\s]+)['"]?\s*\)?\s*$`)

// ParseRequirement parses one dependency declaration in the source
// ecosystem's grammar: a name, optional extras, an optional comparator
// set (parenthesized or bare), and an optional environment marker after
// ";". Examples it accepts:
//
//	py (>=1.5.0)
//	foo>=1.0,<2.0; platform_system=='Windows'
//	requests[security] >=2.8.1
//
// Marker clauses that do not match the clause grammar degrade to an
// unconditional dependency and are reported as warnings; a declaration
// without a usable name is an error.
func ParseRequirement(raw string) (types.DependencySpec, []types.Warning, error) {
	spec := types.DependencySpec{Raw: strings.TrimSpace(raw)}
	if spec.Raw == "" {
		return types.DependencySpec{}, nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("empty dependency declaration")
	}

	reqPart := spec.Raw
	markerPart := ""
	if idx := strings.Index(reqPart, ";"); idx >= 0 {
		markerPart = strings.TrimSpace(reqPart[idx+1:])
		reqPart = strings.TrimSpace(reqPart[:idx])
	}

	reqPart = strings.NewReplacer("(", " ", ")", " ").Replace(reqPart)
	if idx := strings.Index(reqPart, "["); idx >= 0 {
		end := strings.Index(reqPart, "]")
		if end < idx {
			return types.DependencySpec{}, nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("unterminated extras in dependency: " + spec.Raw)
		}
		for _, extra := range strings.Split(reqPart[idx+1:end], ",") {
			if extra = strings.TrimSpace(extra); extra != "" {
				spec.Extras = append(spec.Extras, extra)
			}
		}
		reqPart = reqPart[:idx] + " " + reqPart[end+1:]
	}

	name, constraintPart := splitNameConstraints(reqPart)
	if name == "" {
		return types.DependencySpec{}, nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("dependency declaration has no name: " + spec.Raw)
	}
	spec.Name = name

	if constraintPart != "" {
		constraints, err := parseConstraintSet(constraintPart)
		if err != nil {
			return types.DependencySpec{}, nil, err
		}
		spec.Constraints = constraints
	}

	var warnings []types.Warning
	if markerPart != "" {
		markers, markerWarnings := parseMarkers(markerPart, spec.Raw)
		spec.Markers = markers
		warnings = append(warnings, markerWarnings...)
	}
	return spec, warnings, nil
}

// splitNameConstraints separates the package name from the comparator
// set. The name runs up to the first whitespace or operator character.
func splitNameConstraints(value string) (string, string) {
	value = strings.TrimSpace(value)
	cut := len(value)
	for i, r := range value {
		if r == ' ' || r == '\t' || r == '<' || r == '>' || r == '=' || r == '!' || r == '~' {
			cut = i
			break
		}
	}
	return strings.TrimSpace(value[:cut]), strings.TrimSpace(value[cut:])
}

// parseConstraintSet parses a comma-separated comparator set and
// validates it against PEP 440 specifier grammar.
func parseConstraintSet(value string) ([]types.VersionConstraint, error) {
	if _, err := pep440.NewSpecifiers(value); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("invalid comparator set: " + value).
			WithCause(err)
	}
	var out []types.VersionConstraint
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		constraint, err := parseConstraint(part)
		if err != nil {
			return nil, err
		}
		out = append(out, constraint)
	}
	return out, nil
}

// parseConstraint splits one "op version" token into a VersionConstraint.
func parseConstraint(raw string) (types.VersionConstraint, error) {
	for _, op := range opTokens {
		if strings.HasPrefix(raw, string(op)) {
			version := strings.TrimSpace(strings.TrimPrefix(raw, string(op)))
			if version == "" {
				return types.VersionConstraint{}, errbuilder.New().
					WithCode(errbuilder.CodeInvalidArgument).
					WithMsg(fmt.Sprintf("constraint missing version: %s", raw))
			}
			return types.VersionConstraint{Op: op, Version: version}, nil
		}
	}
	return types.VersionConstraint{}, errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(fmt.Sprintf("constraint missing operator: %s", raw))
}

// parseMarkers splits an environment marker on "and" and parses each
// clause. Clauses that do not parse are skipped with a warning so the
// dependency still gets emitted unconditionally.
func parseMarkers(value string, subject string) ([]types.EnvironmentMarker, []types.Warning) {
	var markers []types.EnvironmentMarker
	var warnings []types.Warning
	for _, clause := range strings.Split(value, " and ") {
		groups := markerClauseRe.FindStringSubmatch(clause)
		if groups == nil {
			warnings = append(warnings, types.Warning{
				Kind:    types.WarnUnknownMarker,
				Subject: subject,
				Detail:  "unparsable marker clause: " + strings.TrimSpace(clause),
			})
			continue
		}
		markers = append(markers, types.EnvironmentMarker{
			Variable: groups[1],
			Op:       groups[2],
			Value:    groups[3],
		})
	}
	return markers, warnings
}

// FormatConstraints renders a comparator set back into the document
// spelling, preserving declaration order: ">=1.5.0" or ">=0.12,<1.0".
func FormatConstraints(constraints []types.VersionConstraint) string {
	parts := make([]string, 0, len(constraints))
	for _, constraint := range constraints {
		parts = append(parts, string(constraint.Op)+constraint.Version)
	}
	return strings.Join(parts, ",")
}

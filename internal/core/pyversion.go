package core

import (
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	pep440 "github.com/aquasecurity/go-pep440-version"

	"recipesmith/internal/types"
)

// PythonSupport is the evaluation of a requires-python declaration
// against the profile's supported interpreter set: which versions of the
// build matrix the package excludes.
type PythonSupport struct {
	// Excluded holds supported versions (in profile order) the package
	// does not accept.
	Excluded []string
	// Supported holds the remainder, also in profile order.
	Supported []string
}

// EvaluatePythonSupport checks each interpreter version of the profile
// against the declared specifier set.
func EvaluatePythonSupport(requiresPython string, profile types.InterpreterProfile) (PythonSupport, error) {
	requiresPython = strings.TrimSpace(requiresPython)
	if requiresPython == "" {
		return PythonSupport{Supported: append([]string(nil), profile.Supported...)}, nil
	}
	spec, err := pep440.NewSpecifiers(requiresPython)
	if err != nil {
		return PythonSupport{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("invalid requires-python declaration: " + requiresPython).
			WithCause(err)
	}
	var support PythonSupport
	for _, candidate := range profile.Supported {
		version, err := pep440.Parse(candidate)
		if err != nil {
			return PythonSupport{}, errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("invalid interpreter version in profile: " + candidate).
				WithCause(err)
		}
		if spec.Check(version) {
			support.Supported = append(support.Supported, candidate)
		} else {
			support.Excluded = append(support.Excluded, candidate)
		}
	}
	return support, nil
}

// SkipSelector derives the build-skip selector from a requires-python
// declaration: the selector matches exactly the interpreter versions the
// package excludes. Empty means no skip is needed. Exclusion patterns
// with no contiguous shape degrade to no selector with a warning; a
// package excluding the whole matrix is an error.
func SkipSelector(requiresPython string, profile types.InterpreterProfile) (string, []types.Warning, error) {
	support, err := EvaluatePythonSupport(requiresPython, profile)
	if err != nil {
		return "", nil, err
	}
	if len(support.Excluded) == 0 {
		return "", nil, nil
	}
	if len(support.Supported) == 0 {
		return "", nil, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("package supports no interpreter version of the target profile: " + requiresPython)
	}

	py2, py3Excluded := splitPy2(support.Excluded)
	_, py3All := splitPy2(profile.Supported)

	switch {
	case py2 && len(py3Excluded) == 0:
		return "py2k", nil, nil
	case !py2 && len(py3Excluded) == len(py3All):
		return "py3k", nil, nil
	case py2 && isPrefix(py3All, py3Excluded):
		// A bottom-contiguous exclusion also covers 2.7 numerically:
		// py<37 matches py27 as well.
		next := py3All[len(py3Excluded)]
		return "py<" + versionDigits(next), nil, nil
	case !py2 && isSuffix(py3All, py3Excluded):
		return "py>=" + versionDigits(py3Excluded[0]), nil, nil
	case !py2 && len(py3Excluded) == 1:
		return "py==" + versionDigits(py3Excluded[0]), nil, nil
	default:
		return "", []types.Warning{{
			Kind:    types.WarnComplexPythonRange,
			Subject: requiresPython,
			Detail:  "exclusion pattern has no selector shape, build matrix not narrowed",
		}}, nil
	}
}

// PythonFloor derives the version constraint attached to the python
// requirement entries. Empty means unconstrained. The profile's minimum
// python acts as a floor: packages supporting older interpreters still
// get the minimum the target ecosystem builds for.
func PythonFloor(requiresPython string, profile types.InterpreterProfile) (string, []types.Warning, error) {
	support, err := EvaluatePythonSupport(requiresPython, profile)
	if err != nil {
		return "", nil, err
	}
	if len(support.Excluded) == 0 {
		return "", nil, nil
	}
	if len(support.Supported) == 0 {
		return "", nil, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("package supports no interpreter version of the target profile: " + requiresPython)
	}

	py2, py3Excluded := splitPy2(support.Excluded)
	_, py3All := splitPy2(profile.Supported)

	switch {
	case !py2 && len(py3Excluded) == len(py3All):
		return "<3.0", nil, nil
	case py2 && len(py3Excluded) == 0:
		return ">=" + maxVersion(profile.MinPython, py3All[0]), nil, nil
	case py2 && isPrefix(py3All, py3Excluded):
		next := py3All[len(py3Excluded)]
		return ">=" + maxVersion(profile.MinPython, next), nil, nil
	case !py2 && isSuffix(py3All, py3Excluded):
		return "<" + py3Excluded[0], nil, nil
	case !py2 && len(py3Excluded) == 1:
		return "!=" + py3Excluded[0], nil, nil
	default:
		return "", []types.Warning{{
			Kind:    types.WarnComplexPythonRange,
			Subject: requiresPython,
			Detail:  "exclusion pattern has no constraint shape, python left unconstrained",
		}}, nil
	}
}

// splitPy2 separates the 2.x marker version from the 3.x versions.
func splitPy2(versions []string) (bool, []string) {
	var py3 []string
	py2 := false
	for _, version := range versions {
		if strings.HasPrefix(version, "2") {
			py2 = true
			continue
		}
		py3 = append(py3, version)
	}
	return py2, py3
}

func isPrefix(all []string, candidate []string) bool {
	if len(candidate) == 0 || len(candidate) > len(all) {
		return false
	}
	for i, version := range candidate {
		if all[i] != version {
			return false
		}
	}
	return true
}

func isSuffix(all []string, candidate []string) bool {
	if len(candidate) == 0 || len(candidate) > len(all) {
		return false
	}
	offset := len(all) - len(candidate)
	for i, version := range candidate {
		if all[offset+i] != version {
			return false
		}
	}
	return true
}

// versionDigits renders "3.7" as "37" for selector grammar.
func versionDigits(version string) string {
	return strings.ReplaceAll(version, ".", "")
}

// maxVersion returns the higher of two dotted versions, used to apply the
// profile's minimum-python floor.
func maxVersion(a string, b string) string {
	if a == "" {
		return b
	}
	if b == "" {
		return a
	}
	va, errA := pep440.Parse(a)
	vb, errB := pep440.Parse(b)
	if errA != nil || errB != nil {
		return b
	}
	if va.GreaterThan(vb) {
		return a
	}
	return b
}

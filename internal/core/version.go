package core

import (
	"regexp"
	"sort"

	pep440 "github.com/aquasecurity/go-pep440-version"
)

// preReleaseRe matches PEP 440 pre-release and dev segments: 1.0a1,
// 2.0.0rc1, 3.1.dev3, 1.0b2.post1 and the spelled-out alpha/beta forms.
var preReleaseRe = regexp.MustCompile(`(?i)(^|[0-9.\-_])(a|b|c|rc|alpha|beta|pre|preview|dev)[0-9]*([.\-_]|$)`)

// IsPreRelease reports whether a version string denotes a pre-release or
// development release.
func IsPreRelease(value string) bool {
	return preReleaseRe.MatchString(value)
}

// SortVersions orders version strings ascending under PEP 440 semantics.
// Unparsable versions sort below every parsable one so they never win a
// "latest" resolution; among themselves they keep lexical order for
// determinism.
func SortVersions(versions []string) []string {
	ordered := append([]string(nil), versions...)
	parsed := make(map[string]*pep440.Version, len(ordered))
	for _, value := range ordered {
		if v, err := pep440.Parse(value); err == nil {
			parsed[value] = &v
		}
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		vi, oki := parsed[ordered[i]]
		vj, okj := parsed[ordered[j]]
		switch {
		case oki && okj:
			return vi.LessThan(*vj)
		case oki:
			return false
		case okj:
			return true
		default:
			return ordered[i] < ordered[j]
		}
	})
	return ordered
}

// HighestStable returns the highest parsable stable version. ok is false
// when no stable version exists.
func HighestStable(versions []string) (string, bool) {
	var stable []string
	for _, value := range versions {
		if _, err := pep440.Parse(value); err != nil {
			continue
		}
		if !IsPreRelease(value) {
			stable = append(stable, value)
		}
	}
	if len(stable) == 0 {
		return "", false
	}
	ordered := SortVersions(stable)
	return ordered[len(ordered)-1], true
}

// HighestAny returns the highest parsable version regardless of
// pre-release status. ok is false when nothing parses.
func HighestAny(versions []string) (string, bool) {
	var parsable []string
	for _, value := range versions {
		if _, err := pep440.Parse(value); err == nil {
			parsable = append(parsable, value)
		}
	}
	if len(parsable) == 0 {
		return "", false
	}
	ordered := SortVersions(parsable)
	return ordered[len(ordered)-1], true
}

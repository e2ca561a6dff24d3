package core

import (
	"fmt"
	"sort"

	"recipesmith/internal/tables"
	"recipesmith/internal/types"
)

// DetectCompilers splits compiler-signal requirements (cython, pybind11)
// out of a setup-time dependency list. It returns the implied compiler
// languages, sorted and deduplicated, plus the remaining dependencies.
// The signal requirement itself is consumed: the recipe carries the
// compiler entry instead of the package.
func DetectCompilers(t *tables.Tables, deps []types.DependencySpec) ([]string, []types.DependencySpec) {
	seen := map[string]bool{}
	var languages []string
	var remaining []types.DependencySpec
	for _, dep := range deps {
		language, ok := t.Compiler(dep.Name)
		if !ok {
			remaining = append(remaining, dep)
			continue
		}
		if !seen[language] {
			seen[language] = true
			languages = append(languages, language)
		}
	}
	sort.Strings(languages)
	return languages, remaining
}

// CompilerEntry renders a compiler language as the build-phase template
// entry the target ecosystem expands per platform.
func CompilerEntry(language string) string {
	return fmt.Sprintf("{{ compiler('%s') }}", language)
}

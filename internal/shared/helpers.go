// Package shared provides common utility functions used across multiple
// packages in the recipesmith codebase.
package shared

import (
	"fmt"
	"strings"
)

// NormalizePipName lowercases a Python package name and replaces
// underscores and dots with hyphens, following PEP 503 normalization.
// The target packaging ecosystem uses the same convention, so this is
// also the final separator normalization for external target names.
func NormalizePipName(value string) string {
	lower := strings.ToLower(strings.TrimSpace(value))
	replacer := strings.NewReplacer("_", "-", ".", "-")
	return replacer.Replace(lower)
}

// ImportName converts a normalized package name into the module name used
// for the recipe's import smoke test.
func ImportName(value string) string {
	return strings.ReplaceAll(NormalizePipName(value), "-", "_")
}

// HTTPStatusError creates a formatted error for non-2xx HTTP responses.
func HTTPStatusError(status int, url string) error {
	return fmt.Errorf("status=%d url=%s", status, url)
}

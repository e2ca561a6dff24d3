package core

import (
	"context"
	"sort"
	"strings"

	assert "github.com/ZanzyTHEbar/assert-lib"

	"recipesmith/internal/shared"
	"recipesmith/internal/types"
)

// Assembler merges normalized metadata, classified dependencies, the
// license match, and selector conditions into the final document. It is a
// pure function of its inputs: identical inputs produce an identical
// document, and nothing it receives is mutated.
type Assembler struct{}

func NewAssembler() Assembler {
	return Assembler{}
}

// AssembleInput carries the joined analyzer outputs.
type AssembleInput struct {
	Metadata  types.CanonicalPackageMetadata
	RunDeps   []types.ClassifiedDependency
	HostDeps  []types.ClassifiedDependency
	License   types.LicenseMatch
	Selectors SelectorResolution

	// Compilers lists the compiler languages implied by setup-time
	// requirements. A non-empty list marks the package as compiled: the
	// build phase carries the compiler entries and noarch is off.
	Compilers []string

	// SkipSelector and PythonFloor come from the requires-python
	// evaluation; both may be empty.
	SkipSelector string
	PythonFloor  string
}

func (a Assembler) Assemble(ctx context.Context, in AssembleInput) (types.RecipeDocument, error) {
	assert.NotEmpty(ctx, in.Metadata.Name, "metadata name must be set")
	assert.NotEmpty(ctx, in.Metadata.Version, "metadata version must be set")

	doc := types.RecipeDocument{
		Package: types.PackageSection{
			Name:    in.Metadata.Name,
			Version: in.Metadata.Version,
		},
		Source: types.SourceSection{
			URL:    placeholder(in.Metadata.SourceURL),
			SHA256: placeholder(in.Metadata.SourceSHA256),
		},
		Build: types.BuildSection{
			Number:      0,
			Script:      "pip install . --no-deps -vv",
			EntryPoints: append([]string(nil), in.Metadata.EntryPoints...),
		},
		Test: types.TestSection{
			Imports:  []string{shared.ImportName(in.Metadata.Name)},
			Requires: []string{"pip"},
			Commands: []string{"pip check"},
		},
		About: types.AboutSection{
			Home:    placeholder(in.Metadata.HomePage),
			License: licenseValue(in.License),
			Summary: placeholder(in.Metadata.Summary),
		},
		Extra: types.ExtraSection{
			RecipeMaintainers: []string{"AddYourGitHubIdHere"},
		},
	}

	// Only a pure-python package with an unrestricted interpreter range
	// is noarch; compiled packages build per platform.
	if in.SkipSelector == "" && len(in.Compilers) == 0 {
		doc.Build.NoArch = "python"
	}
	if in.SkipSelector != "" {
		doc.Build.Skip = &types.RecipeEntry{
			Value:    "true",
			Selector: types.SelectorCondition{Terms: []string{in.SkipSelector}},
		}
	}

	pythonEntry := types.RecipeEntry{Value: strings.TrimSpace("python " + in.PythonFloor)}

	var build []types.RecipeEntry
	for _, language := range in.Compilers {
		build = append(build, types.RecipeEntry{Value: CompilerEntry(language)})
	}
	doc.Requirements.Build = sortEntries(build)

	host := []types.RecipeEntry{pythonEntry, {Value: "pip"}}
	host = append(host, a.requirementEntries(in.HostDeps, in.Selectors)...)
	doc.Requirements.Host = sortEntries(host)

	run := []types.RecipeEntry{pythonEntry}
	run = append(run, a.requirementEntries(in.RunDeps, in.Selectors)...)
	doc.Requirements.Run = sortEntries(run)

	return doc, nil
}

// requirementEntries renders classified dependencies as recipe lines,
// attaching the resolved selector of each and skipping entries the
// selector resolution dropped.
func (a Assembler) requirementEntries(deps []types.ClassifiedDependency, resolution SelectorResolution) []types.RecipeEntry {
	var entries []types.RecipeEntry
	seen := map[string]bool{}
	for _, dep := range deps {
		if resolution.Dropped[dep.Spec.Raw] {
			continue
		}
		value := dep.TargetName
		if constraints := FormatConstraints(dep.Spec.Constraints); constraints != "" {
			value += " " + constraints
		}
		entry := types.RecipeEntry{Value: value}
		if selector, ok := resolution.Selectors[dep.Spec.Raw]; ok {
			entry.Selector = selector
		}
		key := entry.Value + "#" + entry.Selector.Expression()
		if seen[key] {
			continue
		}
		seen[key] = true
		entries = append(entries, entry)
	}
	return entries
}

// sortEntries orders a phase alphabetically by target name for
// deterministic, diff-friendly output. Input is not mutated.
func sortEntries(entries []types.RecipeEntry) []types.RecipeEntry {
	ordered := append([]types.RecipeEntry(nil), entries...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Value < ordered[j].Value
	})
	return ordered
}

func placeholder(value string) string {
	if strings.TrimSpace(value) == "" {
		return types.UnknownValue
	}
	return value
}

func licenseValue(match types.LicenseMatch) string {
	if !match.Matched {
		return types.UnknownValue
	}
	return match.Identifier
}

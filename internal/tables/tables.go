// Package tables holds the static lookup data the pipeline consults:
// standard-library module names per interpreter profile, base-toolchain
// provided packages, source-to-target name aliases, and the canonical
// license corpus. The data is embedded, parsed once at startup, and
// passed by reference into each component; nothing mutates it afterwards.
package tables

import (
	"embed"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"recipesmith/internal/shared"
	"recipesmith/internal/types"
)

//go:embed data/*.yaml
var dataFS embed.FS

// LicenseEntry is one canonical identifier with its alternate spellings.
type LicenseEntry struct {
	ID    string   `yaml:"id"`
	Names []string `yaml:"names"`
}

type stdlibFile struct {
	Profiles map[string][]string `yaml:"profiles"`
}

type baseFile struct {
	Provided map[string]string `yaml:"provided"`
}

type aliasFile struct {
	Aliases map[string]string `yaml:"aliases"`
}

type licenseFile struct {
	Licenses []LicenseEntry `yaml:"licenses"`
}

type compilerFile struct {
	Compilers map[string]string `yaml:"compilers"`
}

// Tables is the loaded, read-only lookup state.
type Tables struct {
	stdlib    map[string]map[string]struct{}
	provided  map[string]string
	aliases   map[string]string
	licenses  []LicenseEntry
	compilers map[string]string
}

// Load parses the embedded data files. Call once at startup.
func Load() (*Tables, error) {
	var stdlib stdlibFile
	if err := readData("data/stdlib.yaml", &stdlib); err != nil {
		return nil, err
	}
	var base baseFile
	if err := readData("data/base.yaml", &base); err != nil {
		return nil, err
	}
	var aliases aliasFile
	if err := readData("data/aliases.yaml", &aliases); err != nil {
		return nil, err
	}
	var licenses licenseFile
	if err := readData("data/licenses.yaml", &licenses); err != nil {
		return nil, err
	}
	var compilers compilerFile
	if err := readData("data/compilers.yaml", &compilers); err != nil {
		return nil, err
	}

	t := &Tables{
		stdlib:    map[string]map[string]struct{}{},
		provided:  map[string]string{},
		aliases:   map[string]string{},
		licenses:  licenses.Licenses,
		compilers: map[string]string{},
	}
	for profile, modules := range stdlib.Profiles {
		set := make(map[string]struct{}, len(modules))
		for _, module := range modules {
			set[module] = struct{}{}
		}
		t.stdlib[profile] = set
	}
	for name, floor := range base.Provided {
		t.provided[shared.NormalizePipName(name)] = floor
	}
	for source, target := range aliases.Aliases {
		t.aliases[shared.NormalizePipName(source)] = target
	}
	for name, language := range compilers.Compilers {
		t.compilers[shared.NormalizePipName(name)] = language
	}
	return t, nil
}

func readData(path string, out any) error {
	data, err := dataFS.ReadFile(path)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to read embedded table: " + path).
			WithCause(err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to parse embedded table: " + path).
			WithCause(err)
	}
	return nil
}

// IsStandardLibrary reports whether module belongs to the standard
// library of the given interpreter profile.
func (t *Tables) IsStandardLibrary(profile string, module string) bool {
	set, ok := t.stdlib[profile]
	if !ok {
		return false
	}
	_, found := set[module]
	return found
}

// IsAnyStandardLibrary reports whether module is standard library under
// any known profile. Used by the classifier tie rule: a name resolvable
// from some toolchain never becomes a package requirement via an alias.
func (t *Tables) IsAnyStandardLibrary(module string) bool {
	for _, set := range t.stdlib {
		if _, found := set[module]; found {
			return true
		}
	}
	return false
}

// BaseProvided returns the minimum-version floor for a base-toolchain
// package, and whether the name is base-provided at all. An empty floor
// means no minimum is enforced.
func (t *Tables) BaseProvided(name string) (string, bool) {
	floor, ok := t.provided[shared.NormalizePipName(name)]
	return floor, ok
}

// Alias returns the remapped target name for a known source/target
// mismatch.
func (t *Tables) Alias(name string) (string, bool) {
	target, ok := t.aliases[shared.NormalizePipName(name)]
	return target, ok
}

// Compiler returns the compiler language a setup-time requirement
// implies, and whether the name signals compiled extensions at all.
func (t *Tables) Compiler(name string) (string, bool) {
	language, ok := t.compilers[shared.NormalizePipName(name)]
	return language, ok
}

// Licenses returns the canonical license corpus in file order.
func (t *Tables) Licenses() []LicenseEntry {
	return t.licenses
}

// DefaultProfile is the interpreter profile used when the caller supplies
// none: the CPython 3 build matrix with a 3.6 floor, mirroring the
// versions the target ecosystem actually builds for, plus legacy 2.7 so
// upper-bound constraints produce py2k skip selectors.
func DefaultProfile() types.InterpreterProfile {
	return types.InterpreterProfile{
		Name:      "cpython3",
		Supported: []string{"2.7", "3.6", "3.7", "3.8"},
		MinPython: "3.6",
		Platforms: []string{"linux", "osx", "win"},
	}
}

package adapters

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"recipesmith/internal/types"
)

// RecipeFileAdapter renders a document to the target manifest text and
// writes it under Dir/<package>/meta.yaml. The emitter is hand-rolled:
// selector conditions are line comments and a generic YAML marshaller
// would quote them into literal string content.
type RecipeFileAdapter struct {
	Dir string
}

func NewRecipeFileAdapter(dir string) RecipeFileAdapter {
	return RecipeFileAdapter{Dir: dir}
}

func (a RecipeFileAdapter) Write(doc types.RecipeDocument) (string, error) {
	if strings.TrimSpace(a.Dir) == "" {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("output directory is required")
	}
	rendered, err := a.Render(doc)
	if err != nil {
		return "", err
	}
	dir := filepath.Join(a.Dir, doc.Package.Name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create recipe directory").
			WithCause(err)
	}
	path := filepath.Join(dir, "meta.yaml")
	if err := os.WriteFile(path, rendered, 0644); err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write recipe file").
			WithCause(err)
	}
	return path, nil
}

// Render emits the document. All required sections appear even when
// semantically empty so the output is always schema-valid; identical
// documents render byte-for-byte identically.
func (a RecipeFileAdapter) Render(doc types.RecipeDocument) ([]byte, error) {
	if strings.TrimSpace(doc.Package.Name) == "" || strings.TrimSpace(doc.Package.Version) == "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("document missing package name or version")
	}

	var b bytes.Buffer
	fmt.Fprintf(&b, "package:\n")
	fmt.Fprintf(&b, "  name: %s\n", doc.Package.Name)
	fmt.Fprintf(&b, "  version: %q\n", doc.Package.Version)

	fmt.Fprintf(&b, "\nsource:\n")
	fmt.Fprintf(&b, "  url: %s\n", doc.Source.URL)
	fmt.Fprintf(&b, "  sha256: %s\n", doc.Source.SHA256)

	fmt.Fprintf(&b, "\nbuild:\n")
	fmt.Fprintf(&b, "  number: %d\n", doc.Build.Number)
	if doc.Build.NoArch != "" {
		fmt.Fprintf(&b, "  noarch: %s\n", doc.Build.NoArch)
	}
	if doc.Build.Skip != nil {
		fmt.Fprintf(&b, "  skip: %s\n", entryLine(*doc.Build.Skip))
	}
	if len(doc.Build.EntryPoints) > 0 {
		fmt.Fprintf(&b, "  entry_points:\n")
		for _, point := range doc.Build.EntryPoints {
			fmt.Fprintf(&b, "    - %s\n", point)
		}
	}
	if doc.Build.Script != "" {
		fmt.Fprintf(&b, "  script: %s\n", doc.Build.Script)
	}

	fmt.Fprintf(&b, "\nrequirements:\n")
	emitPhase(&b, "build", doc.Requirements.Build)
	emitPhase(&b, "host", doc.Requirements.Host)
	emitPhase(&b, "run", doc.Requirements.Run)

	fmt.Fprintf(&b, "\ntest:\n")
	emitList(&b, "imports", doc.Test.Imports)
	emitList(&b, "requires", doc.Test.Requires)
	emitList(&b, "commands", doc.Test.Commands)

	fmt.Fprintf(&b, "\nabout:\n")
	fmt.Fprintf(&b, "  home: %s\n", doc.About.Home)
	fmt.Fprintf(&b, "  license: %s\n", doc.About.License)
	fmt.Fprintf(&b, "  summary: %s\n", doc.About.Summary)

	fmt.Fprintf(&b, "\nextra:\n")
	emitList(&b, "recipe-maintainers", doc.Extra.RecipeMaintainers)

	return b.Bytes(), nil
}

func emitPhase(b *bytes.Buffer, phase string, entries []types.RecipeEntry) {
	if len(entries) == 0 {
		return
	}
	fmt.Fprintf(b, "  %s:\n", phase)
	for _, entry := range entries {
		fmt.Fprintf(b, "    - %s\n", entryLine(entry))
	}
}

func emitList(b *bytes.Buffer, key string, values []string) {
	if len(values) == 0 {
		return
	}
	fmt.Fprintf(b, "  %s:\n", key)
	for _, value := range values {
		fmt.Fprintf(b, "    - %s\n", value)
	}
}

// entryLine renders a value with its selector comment: "colorama  # [win]".
func entryLine(entry types.RecipeEntry) string {
	if entry.Selector.IsZero() {
		return entry.Value
	}
	return fmt.Sprintf("%s  # [%s]", entry.Value, entry.Selector.Expression())
}

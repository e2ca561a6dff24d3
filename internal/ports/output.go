package ports

import "recipesmith/internal/types"

// RecipeWriterPort serializes an assembled document to the target
// manifest text format. Render is pure; Write persists the rendered text
// and returns the written path.
type RecipeWriterPort interface {
	Render(doc types.RecipeDocument) ([]byte, error)
	Write(doc types.RecipeDocument) (string, error)
}

package types

// RecipeEntry is one line of a recipe list, optionally gated by a
// selector condition.
type RecipeEntry struct {
	Value    string
	Selector SelectorCondition
}

type PackageSection struct {
	Name    string
	Version string
}

type SourceSection struct {
	URL    string
	SHA256 string
}

type BuildSection struct {
	Number      int
	NoArch      string
	Skip        *RecipeEntry
	Script      string
	EntryPoints []string
}

// RequirementsSection partitions classified dependencies by phase. Within
// each phase entries are sorted alphabetically by target name.
type RequirementsSection struct {
	Build []RecipeEntry
	Host  []RecipeEntry
	Run   []RecipeEntry
}

type TestSection struct {
	Imports  []string
	Requires []string
	Commands []string
}

type AboutSection struct {
	Home    string
	License string
	Summary string
}

type ExtraSection struct {
	RecipeMaintainers []string
}

// RecipeDocument is the assembled manifest handed to the document writer.
// All sections are always present, even when semantically empty, so the
// output is schema-valid regardless of how much upstream data was usable.
type RecipeDocument struct {
	Package      PackageSection
	Source       SourceSection
	Build        BuildSection
	Requirements RequirementsSection
	Test         TestSection
	About        AboutSection
	Extra        ExtraSection
}

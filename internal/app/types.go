package app

import "recipesmith/internal/types"

type SynthesizeRequest struct {
	Name      string
	Version   string
	Ecosystem types.EcosystemKind

	// OutputDir, when set, writes the rendered recipe under
	// <OutputDir>/<package>/meta.yaml. Empty skips writing.
	OutputDir string

	// LicenseThreshold overrides the default similarity floor when > 0.
	LicenseThreshold float64

	// Profile overrides the default target interpreter profile.
	Profile *types.InterpreterProfile
}

type SynthesizeResult struct {
	Document types.RecipeDocument
	Path     string
	Warnings []types.Warning
}

type PackageRef struct {
	Name    string
	Version string
}

type BatchRequest struct {
	Packages         []PackageRef
	Ecosystem        types.EcosystemKind
	OutputDir        string
	LicenseThreshold float64
	Profile          *types.InterpreterProfile
	Workers          int
}

type BatchFailure struct {
	Name string
	Err  error
}

type BatchResult struct {
	Results  []SynthesizeResult
	Failures []BatchFailure
}

package types

// LicenseMatch is the outcome of fuzzy license identification. Matched
// false is a valid terminal state, not an error; Identifier is empty and
// Score carries the best rejected candidate's similarity for diagnostics.
type LicenseMatch struct {
	Identifier string
	Score      float64
	Matched    bool
}

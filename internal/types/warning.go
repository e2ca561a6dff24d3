package types

// Warning records a single graceful degradation: the pipeline continued
// but a sub-field was dropped, degraded, or replaced by a placeholder.
type Warning struct {
	Kind    WarningKind
	Subject string
	Detail  string
}

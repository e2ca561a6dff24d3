package adapters

import (
	"github.com/ZanzyTHEbar/errbuilder-go"

	"recipesmith/internal/ports"
	"recipesmith/internal/types"
)

// NewSourceAdapter returns the source adapter for an ecosystem kind.
func NewSourceAdapter(kind types.EcosystemKind, fetcher ports.FetcherPort) (ports.SourcePort, error) {
	switch kind {
	case types.EcosystemPyPI, "":
		return NewPyPISourceAdapter(fetcher), nil
	case types.EcosystemSdist:
		return NewSdistSourceAdapter(fetcher), nil
	default:
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("unknown ecosystem kind: " + string(kind))
	}
}

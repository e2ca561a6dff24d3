package ports

import "context"

// FetchResult is the payload of one successful byte retrieval.
type FetchResult struct {
	Body        []byte
	ContentType string
}

// FetcherPort is the injected "retrieve bytes for URL" capability. The
// transport owns retries; this pipeline treats a failure as terminal for
// the current fetch and surfaces it to the caller.
type FetcherPort interface {
	Get(ctx context.Context, url string) (FetchResult, error)
}

package adapters

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"recipesmith/internal/ports"
	"recipesmith/internal/shared"
)

const defaultFetchTimeout = 60 * time.Second

// transportFailureMsg prefixes every transport-level error so callers can
// distinguish retryable network failures from upstream data problems.
const transportFailureMsg = "transport failure"

// HTTPFetcherAdapter is the default FetcherPort implementation. It does
// not retry; the caller owns retry policy, this adapter only bounds each
// request with a timeout.
type HTTPFetcherAdapter struct {
	client *http.Client
}

func NewHTTPFetcherAdapter(timeout time.Duration) HTTPFetcherAdapter {
	if timeout <= 0 {
		timeout = defaultFetchTimeout
	}
	return HTTPFetcherAdapter{client: &http.Client{Timeout: timeout}}
}

func (a HTTPFetcherAdapter) Get(ctx context.Context, url string) (ports.FetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return ports.FetchResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("invalid fetch url: " + url).
			WithCause(err)
	}
	resp, err := a.client.Do(req)
	if err != nil {
		return ports.FetchResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(transportFailureMsg).
			WithCause(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ports.FetchResult{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("resource not found upstream").
			WithCause(shared.HTTPStatusError(resp.StatusCode, url))
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return ports.FetchResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(transportFailureMsg).
			WithCause(shared.HTTPStatusError(resp.StatusCode, url))
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return ports.FetchResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(transportFailureMsg).
			WithCause(err)
	}
	return ports.FetchResult{
		Body:        body,
		ContentType: resp.Header.Get("Content-Type"),
	}, nil
}

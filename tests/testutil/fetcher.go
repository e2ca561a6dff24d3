// Package testutil provides shared fakes and builders for tests:
// an in-memory FetcherPort and a tar.gz archive builder.
package testutil

import (
	"context"
	"sync"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"recipesmith/internal/ports"
)

// FakeFetcher serves canned bodies by URL. Unknown URLs report NotFound,
// matching the HTTP adapter's behavior for a 404. Calls records every
// requested URL in order.
type FakeFetcher struct {
	Responses map[string][]byte
	Errors    map[string]error

	mu    sync.Mutex
	Calls []string
}

func NewFakeFetcher() *FakeFetcher {
	return &FakeFetcher{
		Responses: map[string][]byte{},
		Errors:    map[string]error{},
	}
}

func (f *FakeFetcher) Get(_ context.Context, url string) (ports.FetchResult, error) {
	f.mu.Lock()
	f.Calls = append(f.Calls, url)
	f.mu.Unlock()

	if err, ok := f.Errors[url]; ok {
		return ports.FetchResult{}, err
	}
	body, ok := f.Responses[url]
	if !ok {
		return ports.FetchResult{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("resource not found upstream: " + url)
	}
	return ports.FetchResult{Body: body, ContentType: "application/octet-stream"}, nil
}

// CallCount returns how many fetches were made.
func (f *FakeFetcher) CallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Calls)
}

package app

import (
	"time"

	"recipesmith/internal/adapters"
	"recipesmith/internal/policies"
	"recipesmith/internal/ports"
	"recipesmith/internal/tables"
)

// Service wires the pipeline's capabilities. The tables are loaded once
// here and shared read-only by every run.
type Service struct {
	Fetcher ports.FetcherPort
	Tables  *tables.Tables
	Policy  policies.DegradationPolicy
	Clock   func() time.Time
}

// now reads the injected clock, falling back to the wall clock for a
// zero-value Service.
func (s Service) now() time.Time {
	if s.Clock != nil {
		return s.Clock()
	}
	return time.Now()
}

func NewService() (Service, error) {
	loaded, err := tables.Load()
	if err != nil {
		return Service{}, err
	}
	return Service{
		Fetcher: adapters.NewHTTPFetcherAdapter(0),
		Tables:  loaded,
		Policy:  policies.Default(),
		Clock:   time.Now,
	}, nil
}

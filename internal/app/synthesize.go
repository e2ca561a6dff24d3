package app

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"recipesmith/internal/adapters"
	"recipesmith/internal/core"
	"recipesmith/internal/tables"
	"recipesmith/internal/types"
)

const defaultBatchWorkers = 4

// Synthesize runs the full pipeline for one package: fetch the raw
// record, normalize it, run the three independent analyzers concurrently,
// assemble the document, and optionally write it. All data flows as
// immutable values; the only blocking operation is the upstream fetch.
func (s Service) Synthesize(ctx context.Context, req SynthesizeRequest) (SynthesizeResult, error) {
	started := s.now()
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return SynthesizeResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("package name is required")
	}
	profile := tables.DefaultProfile()
	if req.Profile != nil {
		profile = *req.Profile
	}

	source, err := adapters.NewSourceAdapter(req.Ecosystem, s.Fetcher)
	if err != nil {
		return SynthesizeResult{}, err
	}
	record, err := source.Fetch(ctx, name, req.Version)
	if err != nil {
		return SynthesizeResult{}, err
	}

	meta, warnings, err := core.NewNormalizer(s.Policy).Normalize(ctx, record)
	if err != nil {
		return SynthesizeResult{}, err
	}

	// The three analyzers share no data; they join at the assembler.
	var (
		runDeps    []types.ClassifiedDependency
		hostDeps   []types.ClassifiedDependency
		compilers  []string
		license    types.LicenseMatch
		resolution core.SelectorResolution
		skip       string
		floor      string
		pyWarnings []types.Warning
	)
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		classifier := core.NewClassifier(s.Tables, profile)
		runDeps = classifier.ClassifyAll(meta.Dependencies)
		var buildDeps []types.DependencySpec
		compilers, buildDeps = core.DetectCompilers(s.Tables, meta.BuildDependencies)
		hostDeps = classifier.ClassifyAll(buildDeps)
		return groupCtx.Err()
	})
	group.Go(func() error {
		matcher := core.NewLicenseMatcher(s.Tables, req.LicenseThreshold, s.Policy)
		license = matcher.Match(licenseInput(meta))
		return groupCtx.Err()
	})
	group.Go(func() error {
		resolver := core.NewSelectorResolver(profile, s.Policy)
		all := append(append([]types.DependencySpec(nil), meta.Dependencies...), meta.BuildDependencies...)
		resolution = resolver.ResolveAll(all)

		var err error
		var skipWarnings, floorWarnings []types.Warning
		skip, skipWarnings, err = core.SkipSelector(meta.RequiresPython, profile)
		if err != nil {
			return err
		}
		floor, floorWarnings, err = core.PythonFloor(meta.RequiresPython, profile)
		if err != nil {
			return err
		}
		pyWarnings = append(skipWarnings, floorWarnings...)
		return groupCtx.Err()
	})
	if err := group.Wait(); err != nil {
		return SynthesizeResult{}, err
	}
	warnings = append(warnings, resolution.Warnings...)
	warnings = append(warnings, pyWarnings...)

	doc, err := core.NewAssembler().Assemble(ctx, core.AssembleInput{
		Metadata:     meta,
		RunDeps:      runDeps,
		HostDeps:     hostDeps,
		Compilers:    compilers,
		License:      license,
		Selectors:    resolution,
		SkipSelector: skip,
		PythonFloor:  floor,
	})
	if err != nil {
		return SynthesizeResult{}, err
	}

	result := SynthesizeResult{Document: doc, Warnings: warnings}
	if strings.TrimSpace(req.OutputDir) != "" {
		writer := adapters.NewRecipeFileAdapter(req.OutputDir)
		path, err := writer.Write(doc)
		if err != nil {
			return SynthesizeResult{}, err
		}
		result.Path = path
	}

	for _, warning := range warnings {
		log.Ctx(ctx).Warn().
			Str("kind", string(warning.Kind)).
			Str("subject", warning.Subject).
			Msg(warning.Detail)
	}
	log.Ctx(ctx).Info().
		Str("package", doc.Package.Name).
		Str("version", doc.Package.Version).
		Int("warnings", len(warnings)).
		Dur("elapsed", s.now().Sub(started)).
		Msg("recipe synthesized")
	return result, nil
}

// licenseInput prefers the explicit license field, falling back to the
// license trove classifier when the field is blank or a boilerplate
// non-answer.
func licenseInput(meta types.CanonicalPackageMetadata) string {
	text := strings.TrimSpace(meta.LicenseText)
	if text != "" && !strings.EqualFold(text, "unknown") {
		return text
	}
	for _, classifier := range meta.Classifiers {
		if rest, ok := strings.CutPrefix(classifier, "License :: OSI Approved :: "); ok {
			return rest
		}
	}
	return text
}

// SynthesizeBatch fans out over independent packages with a bounded
// worker count. A per-package failure (typically NotFound) is collected
// and does not abort the remaining packages; only context cancellation
// stops the batch.
func (s Service) SynthesizeBatch(ctx context.Context, req BatchRequest) (BatchResult, error) {
	if len(req.Packages) == 0 {
		return BatchResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("at least one package is required")
	}
	workerCount := req.Workers
	if workerCount <= 0 {
		workerCount = defaultBatchWorkers
	}
	if len(req.Packages) < workerCount {
		workerCount = len(req.Packages)
	}

	var mu sync.Mutex
	var batch BatchResult
	sem := make(chan struct{}, workerCount)
	var wg sync.WaitGroup
	for _, ref := range req.Packages {
		ref := ref
		wg.Add(1)
		go func() {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			if ctx.Err() != nil {
				return
			}
			result, err := s.Synthesize(ctx, SynthesizeRequest{
				Name:             ref.Name,
				Version:          ref.Version,
				Ecosystem:        req.Ecosystem,
				OutputDir:        req.OutputDir,
				LicenseThreshold: req.LicenseThreshold,
				Profile:          req.Profile,
			})
			mu.Lock()
			if err != nil {
				batch.Failures = append(batch.Failures, BatchFailure{Name: ref.Name, Err: err})
			} else {
				batch.Results = append(batch.Results, result)
			}
			mu.Unlock()
		}()
	}
	wg.Wait()
	if err := ctx.Err(); err != nil {
		return BatchResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("batch cancelled").
			WithCause(err)
	}

	sort.Slice(batch.Results, func(i, j int) bool {
		return batch.Results[i].Document.Package.Name < batch.Results[j].Document.Package.Name
	})
	sort.Slice(batch.Failures, func(i, j int) bool {
		return batch.Failures[i].Name < batch.Failures[j].Name
	})
	return batch, nil
}

package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"recipesmith/internal/core"
	"recipesmith/internal/ports"
	"recipesmith/internal/shared"
	"recipesmith/internal/types"
)

const defaultPyPIBaseURL = "https://pypi.org/pypi"

// PyPISourceAdapter fetches metadata from the package index JSON API.
type PyPISourceAdapter struct {
	fetcher ports.FetcherPort
	baseURL string
}

func NewPyPISourceAdapter(fetcher ports.FetcherPort) PyPISourceAdapter {
	return PyPISourceAdapter{fetcher: fetcher, baseURL: defaultPyPIBaseURL}
}

// WithBaseURL overrides the index endpoint, mainly for tests and mirrors.
func (a PyPISourceAdapter) WithBaseURL(baseURL string) PyPISourceAdapter {
	a.baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	return a
}

// pypiResponse mirrors the slice of the index JSON schema this adapter
// consumes.
type pypiResponse struct {
	Info struct {
		Name           string   `json:"name"`
		Version        string   `json:"version"`
		Summary        string   `json:"summary"`
		HomePage       string   `json:"home_page"`
		License        string   `json:"license"`
		Classifiers    []string `json:"classifiers"`
		RequiresDist   []string `json:"requires_dist"`
		RequiresPython string   `json:"requires_python"`
	} `json:"info"`
	URLs     []pypiFile            `json:"urls"`
	Releases map[string][]pypiFile `json:"releases"`
}

type pypiFile struct {
	PackageType string            `json:"packagetype"`
	URL         string            `json:"url"`
	Digests     map[string]string `json:"digests"`
}

func (a PyPISourceAdapter) Fetch(ctx context.Context, name string, version string) (types.RawMetadataRecord, error) {
	name = shared.NormalizePipName(name)
	if name == "" {
		return types.RawMetadataRecord{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("package name is required")
	}

	response, err := a.fetchJSON(ctx, name, strings.TrimSpace(version))
	if err != nil {
		return types.RawMetadataRecord{}, err
	}

	resolved := strings.TrimSpace(version)
	preRelease := false
	if resolved == "" {
		resolved, preRelease, err = resolveLatest(name, response.Releases)
		if err != nil {
			return types.RawMetadataRecord{}, err
		}
		// The unversioned endpoint describes the latest upload, which may
		// differ from the stable-preference policy; refetch when they
		// disagree so dependency data matches the resolved version.
		if resolved != strings.TrimSpace(response.Info.Version) {
			response, err = a.fetchJSON(ctx, name, resolved)
			if err != nil {
				return types.RawMetadataRecord{}, err
			}
		}
	}

	record := types.RawMetadataRecord{
		Ecosystem:      types.EcosystemPyPI,
		Name:           name,
		Version:        resolved,
		PreRelease:     preRelease,
		Summary:        response.Info.Summary,
		HomePage:       response.Info.HomePage,
		License:        response.Info.License,
		Classifiers:    response.Info.Classifiers,
		RequiresDist:   response.Info.RequiresDist,
		RequiresPython: response.Info.RequiresPython,
	}
	record.SourceURL, record.SourceSHA256 = sdistDigest(response.URLs)
	if record.SourceURL == "" {
		// Fall back to the release file list when the top-level urls
		// section is empty (older index responses).
		record.SourceURL, record.SourceSHA256 = sdistDigest(response.Releases[resolved])
	}
	a.enrichFromSdist(ctx, &record)

	log.Ctx(ctx).Debug().
		Str("package", name).
		Str("version", resolved).
		Bool("pre_release", preRelease).
		Msg("index metadata fetched")
	return record, nil
}

// enrichFromSdist follows the source archive URL and merges the
// PKG-INFO-derived fields the index API does not expose: setup-time
// requirements and entry points, plus any core field the index left
// blank. The archive is best-effort; on failure the index record stands.
func (a PyPISourceAdapter) enrichFromSdist(ctx context.Context, record *types.RawMetadataRecord) {
	if record.SourceURL == "" {
		return
	}
	result, err := a.fetcher.Get(ctx, record.SourceURL)
	if err != nil {
		log.Ctx(ctx).Debug().
			Str("package", record.Name).
			Str("url", record.SourceURL).
			Err(err).
			Msg("source archive unavailable, recipe built from index metadata only")
		return
	}
	sdist := types.RawMetadataRecord{}
	if err := readSdistArchive(result.Body, &sdist); err != nil {
		log.Ctx(ctx).Debug().
			Str("package", record.Name).
			Err(err).
			Msg("source archive unreadable, recipe built from index metadata only")
		return
	}

	record.SetupRequires = sdist.SetupRequires
	record.EntryPoints = sdist.EntryPoints
	if record.Summary == "" {
		record.Summary = sdist.Summary
	}
	if record.HomePage == "" {
		record.HomePage = sdist.HomePage
	}
	if record.License == "" {
		record.License = sdist.License
	}
	if record.RequiresPython == "" {
		record.RequiresPython = sdist.RequiresPython
	}
	if len(record.Classifiers) == 0 {
		record.Classifiers = sdist.Classifiers
	}
	if len(record.RequiresDist) == 0 {
		record.RequiresDist = sdist.RequiresDist
	}
}

func (a PyPISourceAdapter) fetchJSON(ctx context.Context, name string, version string) (pypiResponse, error) {
	url := fmt.Sprintf("%s/%s/json", a.baseURL, name)
	if version != "" {
		url = fmt.Sprintf("%s/%s/%s/json", a.baseURL, name, version)
	}
	result, err := a.fetcher.Get(ctx, url)
	if err != nil {
		return pypiResponse{}, err
	}
	var response pypiResponse
	if err := json.Unmarshal(result.Body, &response); err != nil {
		return pypiResponse{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to decode index response for " + name).
			WithCause(err)
	}
	if strings.TrimSpace(response.Info.Name) == "" {
		return pypiResponse{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("package not found upstream: " + name)
	}
	return response, nil
}

// resolveLatest applies the stable-preference policy: highest stable
// release wins; the highest pre-release is used only when no stable
// release exists, flagging the record. When nothing is orderable at all
// the version resolution is ambiguous.
func resolveLatest(name string, releases map[string][]pypiFile) (string, bool, error) {
	versions := make([]string, 0, len(releases))
	for version := range releases {
		versions = append(versions, version)
	}
	if stable, ok := core.HighestStable(versions); ok {
		return stable, false, nil
	}
	if pre, ok := core.HighestAny(versions); ok {
		return pre, true, nil
	}
	return "", false, errbuilder.New().
		WithCode(errbuilder.CodeFailedPrecondition).
		WithMsg("cannot resolve latest version for " + name)
}

// sdistDigest picks the source archive entry; compiled artifacts never
// provide the recipe's source hash.
func sdistDigest(files []pypiFile) (string, string) {
	for _, file := range files {
		if file.PackageType == "sdist" {
			return file.URL, file.Digests["sha256"]
		}
	}
	return "", ""
}

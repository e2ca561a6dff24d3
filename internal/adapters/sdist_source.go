package adapters

import (
	"archive/tar"
	"bufio"
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"recipesmith/internal/ports"
	"recipesmith/internal/shared"
	"recipesmith/internal/types"
)

const defaultSdistBaseURL = "https://pypi.io/packages/source"

// SdistSourceAdapter fetches the source archive itself and reads the
// metadata files it carries (PKG-INFO, entry_points.txt). Unlike the
// index API it sees setup-time requirements and entry points, at the cost
// of downloading the archive. A version is required; the archive URL
// scheme has no latest alias.
type SdistSourceAdapter struct {
	fetcher ports.FetcherPort
	baseURL string
}

func NewSdistSourceAdapter(fetcher ports.FetcherPort) SdistSourceAdapter {
	return SdistSourceAdapter{fetcher: fetcher, baseURL: defaultSdistBaseURL}
}

func (a SdistSourceAdapter) WithBaseURL(baseURL string) SdistSourceAdapter {
	a.baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	return a
}

func (a SdistSourceAdapter) Fetch(ctx context.Context, name string, version string) (types.RawMetadataRecord, error) {
	name = shared.NormalizePipName(name)
	if name == "" {
		return types.RawMetadataRecord{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("package name is required")
	}
	version = strings.TrimSpace(version)
	if version == "" {
		return types.RawMetadataRecord{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("sdist source requires an explicit version")
	}

	url := fmt.Sprintf("%s/%s/%s/%s-%s.tar.gz", a.baseURL, name[:1], name, name, version)
	result, err := a.fetcher.Get(ctx, url)
	if err != nil {
		return types.RawMetadataRecord{}, err
	}

	record := types.RawMetadataRecord{
		Ecosystem:    types.EcosystemSdist,
		Name:         name,
		Version:      version,
		SourceURL:    url,
		SourceSHA256: digestOf(result.Body),
	}
	if err := readSdistArchive(result.Body, &record); err != nil {
		return types.RawMetadataRecord{}, err
	}
	log.Ctx(ctx).Debug().
		Str("package", name).
		Str("version", version).
		Int("bytes", len(result.Body)).
		Msg("sdist metadata extracted")
	return record, nil
}

func digestOf(body []byte) string {
	sum := sha256.Sum256(body)
	return hex.EncodeToString(sum[:])
}

// readSdistArchive walks the tarball for PKG-INFO and entry_points.txt.
// Only the shallowest PKG-INFO counts; egg-info copies deeper in the
// tree duplicate it. Shared with the index adapter's sdist enrichment.
func readSdistArchive(body []byte, record *types.RawMetadataRecord) error {
	gz, err := gzip.NewReader(bytes.NewReader(body))
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("source archive is not a gzip stream").
			WithCause(err)
	}
	defer gz.Close()

	reader := tar.NewReader(gz)
	pkgInfoDepth := -1
	found := false
	for {
		header, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to read source archive").
				WithCause(err)
		}
		if header.Typeflag != tar.TypeReg {
			continue
		}
		base := path.Base(header.Name)
		depth := strings.Count(path.Clean(header.Name), "/")
		switch base {
		case "PKG-INFO":
			if pkgInfoDepth >= 0 && depth >= pkgInfoDepth {
				continue
			}
			content, err := io.ReadAll(reader)
			if err != nil {
				return errbuilder.New().
					WithCode(errbuilder.CodeInternal).
					WithMsg("failed to read PKG-INFO").
					WithCause(err)
			}
			applyPkgInfo(content, record)
			pkgInfoDepth = depth
			found = true
		case "entry_points.txt":
			content, err := io.ReadAll(reader)
			if err != nil {
				return errbuilder.New().
					WithCode(errbuilder.CodeInternal).
					WithMsg("failed to read entry_points.txt").
					WithCause(err)
			}
			record.EntryPoints = parseEntryPoints(content)
		}
	}
	if !found {
		return errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("source archive carries no PKG-INFO")
	}
	return nil
}

// applyPkgInfo parses the RFC 822 style metadata header block.
func applyPkgInfo(content []byte, record *types.RawMetadataRecord) {
	scanner := bufio.NewScanner(bytes.NewReader(content))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			// Header block ends at the first blank line; the long
			// description payload follows.
			break
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		switch strings.ToLower(strings.TrimSpace(key)) {
		case "summary":
			record.Summary = value
		case "home-page":
			record.HomePage = value
		case "license":
			record.License = value
		case "classifier":
			record.Classifiers = append(record.Classifiers, value)
		case "requires-dist":
			record.RequiresDist = append(record.RequiresDist, value)
		case "requires-python":
			record.RequiresPython = value
		case "setup-requires", "setup-requires-dist":
			record.SetupRequires = append(record.SetupRequires, value)
		}
	}
}

// parseEntryPoints extracts console and gui script declarations.
func parseEntryPoints(content []byte) []string {
	var points []string
	section := ""
	scanner := bufio.NewScanner(bytes.NewReader(content))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			section = strings.TrimSuffix(strings.TrimPrefix(line, "["), "]")
			continue
		}
		if section == "console_scripts" || section == "gui_scripts" {
			points = append(points, line)
		}
	}
	return points
}

package adapters

import (
	"context"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/require"

	"recipesmith/internal/types"
	"recipesmith/tests/testutil"
)

const testIndexURL = "https://index.test"

func TestPyPIFetchExplicitVersion(t *testing.T) {
	fetcher := testutil.NewFakeFetcher()
	fetcher.Responses[testIndexURL+"/pytest/5.3.1/json"] = []byte(`{
		"info": {
			"name": "pytest",
			"version": "5.3.1",
			"summary": "simple powerful testing",
			"home_page": "https://example.org/pytest",
			"license": "MIT",
			"classifiers": ["License :: OSI Approved :: MIT License"],
			"requires_dist": ["py (>=1.5.0)", "wcwidth"],
			"requires_python": ">=3.5"
		},
		"urls": [
			{"packagetype": "bdist_wheel", "url": "https://files.test/pytest-5.3.1.whl", "digests": {"sha256": "aaaa"}},
			{"packagetype": "sdist", "url": "https://files.test/pytest-5.3.1.tar.gz", "digests": {"sha256": "bbbb"}}
		],
		"releases": {}
	}`)

	adapter := NewPyPISourceAdapter(fetcher).WithBaseURL(testIndexURL)
	record, err := adapter.Fetch(context.Background(), "PyTest", "5.3.1")
	require.NoError(t, err)

	require.Equal(t, types.EcosystemPyPI, record.Ecosystem)
	require.Equal(t, "pytest", record.Name)
	require.Equal(t, "5.3.1", record.Version)
	require.False(t, record.PreRelease)
	require.Equal(t, "simple powerful testing", record.Summary)
	require.Equal(t, "MIT", record.License)
	require.Equal(t, ">=3.5", record.RequiresPython)
	require.Equal(t, []string{"py (>=1.5.0)", "wcwidth"}, record.RequiresDist)
	require.Equal(t, "https://files.test/pytest-5.3.1.tar.gz", record.SourceURL)
	require.Equal(t, "bbbb", record.SourceSHA256)

	// The archive itself was requested but is unavailable here; the
	// index record stands untouched.
	require.Equal(t, 2, fetcher.CallCount())
	require.Empty(t, record.SetupRequires)
	require.Empty(t, record.EntryPoints)
}

// The unversioned endpoint describes the latest upload; when that upload
// is a pre-release and a stable release exists, the adapter resolves to
// the stable one and refetches its metadata.
func TestPyPIFetchLatestPrefersStable(t *testing.T) {
	fetcher := testutil.NewFakeFetcher()
	fetcher.Responses[testIndexURL+"/pytest/json"] = []byte(`{
		"info": {"name": "pytest", "version": "5.4.0rc1"},
		"urls": [],
		"releases": {
			"5.2.0": [],
			"5.3.1": [],
			"5.4.0rc1": []
		}
	}`)
	fetcher.Responses[testIndexURL+"/pytest/5.3.1/json"] = []byte(`{
		"info": {"name": "pytest", "version": "5.3.1", "summary": "s", "home_page": "h"},
		"urls": [{"packagetype": "sdist", "url": "https://files.test/pytest-5.3.1.tar.gz", "digests": {"sha256": "bbbb"}}],
		"releases": {}
	}`)

	adapter := NewPyPISourceAdapter(fetcher).WithBaseURL(testIndexURL)
	record, err := adapter.Fetch(context.Background(), "pytest", "")
	require.NoError(t, err)

	require.Equal(t, "5.3.1", record.Version)
	require.False(t, record.PreRelease)
	require.Equal(t, "s", record.Summary)
	// Unversioned fetch, stable refetch, archive attempt.
	require.Equal(t, 3, fetcher.CallCount())
}

// The index API never exposes setup-time requirements or entry points;
// they come from the source archive the index record links to.
func TestPyPIFetchMergesSdistMetadata(t *testing.T) {
	archive := testutil.TarGz(t, []testutil.TarEntry{
		{Name: "gsw-3.3.1/PKG-INFO", Body: "Metadata-Version: 2.1\n" +
			"Name: gsw\n" +
			"Version: 3.3.1\n" +
			"Summary: thermodynamic equation of seawater\n" +
			"License: BSD 3-Clause License\n" +
			"Setup-Requires-Dist: cython\n" +
			"Setup-Requires-Dist: numpy\n" +
			"\n" +
			"long description\n"},
		{Name: "gsw-3.3.1/gsw.egg-info/entry_points.txt", Body: "[console_scripts]\ngsw = gsw.cli:main\n"},
	})
	fetcher := testutil.NewFakeFetcher()
	fetcher.Responses[testIndexURL+"/gsw/3.3.1/json"] = []byte(`{
		"info": {
			"name": "gsw",
			"version": "3.3.1",
			"summary": "thermodynamic equation of seawater",
			"home_page": "https://example.org/gsw",
			"license": "BSD 3-Clause License",
			"requires_dist": ["numpy"]
		},
		"urls": [{"packagetype": "sdist", "url": "https://files.test/gsw-3.3.1.tar.gz", "digests": {"sha256": "dddd"}}],
		"releases": {}
	}`)
	fetcher.Responses["https://files.test/gsw-3.3.1.tar.gz"] = archive

	adapter := NewPyPISourceAdapter(fetcher).WithBaseURL(testIndexURL)
	record, err := adapter.Fetch(context.Background(), "gsw", "3.3.1")
	require.NoError(t, err)

	// Index fields win; the archive contributes what the API lacks.
	require.Equal(t, "https://example.org/gsw", record.HomePage)
	require.Equal(t, []string{"numpy"}, record.RequiresDist)
	require.Equal(t, []string{"cython", "numpy"}, record.SetupRequires)
	require.Equal(t, []string{"gsw = gsw.cli:main"}, record.EntryPoints)
	require.Equal(t, "dddd", record.SourceSHA256)
}

func TestPyPIFetchLatestPreReleaseFallback(t *testing.T) {
	fetcher := testutil.NewFakeFetcher()
	fetcher.Responses[testIndexURL+"/newpkg/json"] = []byte(`{
		"info": {"name": "newpkg", "version": "1.0rc1"},
		"urls": [],
		"releases": {"1.0rc1": [], "1.0a1": []}
	}`)

	adapter := NewPyPISourceAdapter(fetcher).WithBaseURL(testIndexURL)
	record, err := adapter.Fetch(context.Background(), "newpkg", "")
	require.NoError(t, err)

	require.Equal(t, "1.0rc1", record.Version)
	require.True(t, record.PreRelease)
	require.Equal(t, 1, fetcher.CallCount())
}

func TestPyPIFetchAmbiguousVersion(t *testing.T) {
	fetcher := testutil.NewFakeFetcher()
	fetcher.Responses[testIndexURL+"/oddpkg/json"] = []byte(`{
		"info": {"name": "oddpkg", "version": "snapshot"},
		"urls": [],
		"releases": {"snapshot": []}
	}`)

	adapter := NewPyPISourceAdapter(fetcher).WithBaseURL(testIndexURL)
	_, err := adapter.Fetch(context.Background(), "oddpkg", "")
	require.Error(t, err)
	require.Equal(t, errbuilder.CodeFailedPrecondition, errbuilder.CodeOf(err))
}

func TestPyPIFetchNotFound(t *testing.T) {
	fetcher := testutil.NewFakeFetcher()
	adapter := NewPyPISourceAdapter(fetcher).WithBaseURL(testIndexURL)

	// Transport-level 404.
	_, err := adapter.Fetch(context.Background(), "missing", "1.0")
	require.Error(t, err)
	require.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))

	// Index answers but carries no package.
	fetcher.Responses[testIndexURL+"/ghost/1.0/json"] = []byte(`{"info": {}}`)
	_, err = adapter.Fetch(context.Background(), "ghost", "1.0")
	require.Error(t, err)
	require.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))
}

func TestPyPIFetchEmptyName(t *testing.T) {
	adapter := NewPyPISourceAdapter(testutil.NewFakeFetcher())
	_, err := adapter.Fetch(context.Background(), "  ", "1.0")
	require.Error(t, err)
	require.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}

func TestPyPIFetchMalformedJSON(t *testing.T) {
	fetcher := testutil.NewFakeFetcher()
	fetcher.Responses[testIndexURL+"/broken/1.0/json"] = []byte(`{not json`)
	adapter := NewPyPISourceAdapter(fetcher).WithBaseURL(testIndexURL)

	_, err := adapter.Fetch(context.Background(), "broken", "1.0")
	require.Error(t, err)
	require.Equal(t, errbuilder.CodeInternal, errbuilder.CodeOf(err))
}

// Older index responses carry the file list only under releases.
func TestPyPIFetchSdistFromReleases(t *testing.T) {
	fetcher := testutil.NewFakeFetcher()
	fetcher.Responses[testIndexURL+"/oldpkg/2.0/json"] = []byte(`{
		"info": {"name": "oldpkg", "version": "2.0"},
		"urls": [],
		"releases": {
			"2.0": [{"packagetype": "sdist", "url": "https://files.test/oldpkg-2.0.tar.gz", "digests": {"sha256": "cccc"}}]
		}
	}`)

	adapter := NewPyPISourceAdapter(fetcher).WithBaseURL(testIndexURL)
	record, err := adapter.Fetch(context.Background(), "oldpkg", "2.0")
	require.NoError(t, err)
	require.Equal(t, "https://files.test/oldpkg-2.0.tar.gz", record.SourceURL)
	require.Equal(t, "cccc", record.SourceSHA256)
}

package core

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	pep440 "github.com/aquasecurity/go-pep440-version"
	"github.com/rs/zerolog/log"

	"recipesmith/internal/policies"
	"recipesmith/internal/shared"
	"recipesmith/internal/types"
)

// Normalizer converts a raw ecosystem record into the canonical model.
// Missing optional fields become the unknown sentinel; malformed
// dependency strings are dropped with a warning; only a missing name or
// version is an error.
type Normalizer struct {
	policy policies.DegradationPolicy
}

func NewNormalizer(policy policies.DegradationPolicy) Normalizer {
	return Normalizer{policy: policy}
}

func (n Normalizer) Normalize(ctx context.Context, record types.RawMetadataRecord) (types.CanonicalPackageMetadata, []types.Warning, error) {
	name := shared.NormalizePipName(record.Name)
	version := strings.TrimSpace(record.Version)
	if name == "" || version == "" {
		return types.CanonicalPackageMetadata{}, nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("raw record missing name or version")
	}

	meta := types.CanonicalPackageMetadata{
		Name:           name,
		Version:        version,
		PreRelease:     record.PreRelease,
		Classifiers:    append([]string(nil), record.Classifiers...),
		RequiresPython: strings.TrimSpace(record.RequiresPython),
		EntryPoints:    append([]string(nil), record.EntryPoints...),
		SourceURL:      strings.TrimSpace(record.SourceURL),
		SourceSHA256:   strings.TrimSpace(record.SourceSHA256),
	}

	var warnings []types.Warning
	if _, err := pep440.Parse(version); err == nil {
		meta.VersionParsed = true
	} else if n.policy.ActionFor(policies.FailureUnparsableVersion) == policies.ActionKeepOpaque {
		warnings = append(warnings, types.Warning{
			Kind:    types.WarnUnparsableVersion,
			Subject: name,
			Detail:  "version kept verbatim, excluded from ordering: " + version,
		})
	}

	meta.Summary, warnings = n.optionalField(record.Summary, name, "summary", warnings)
	meta.HomePage, warnings = n.optionalField(record.HomePage, name, "home page", warnings)
	meta.LicenseText = strings.TrimSpace(record.License)

	meta.Dependencies, warnings = n.parseDependencies(ctx, record.RequiresDist, warnings)
	meta.BuildDependencies, warnings = n.parseDependencies(ctx, record.SetupRequires, warnings)

	log.Ctx(ctx).Debug().
		Str("package", meta.Name).
		Str("version", meta.Version).
		Int("deps", len(meta.Dependencies)).
		Int("warnings", len(warnings)).
		Msg("metadata normalized")
	return meta, warnings, nil
}

func (n Normalizer) optionalField(value string, subject string, field string, warnings []types.Warning) (string, []types.Warning) {
	value = strings.TrimSpace(value)
	if value != "" {
		return value, warnings
	}
	if n.policy.ActionFor(policies.FailureMissingOptionalField) == policies.ActionPlaceholder {
		warnings = append(warnings, types.Warning{
			Kind:    types.WarnMissingField,
			Subject: subject,
			Detail:  field + " missing upstream",
		})
	}
	return types.UnknownValue, warnings
}

func (n Normalizer) parseDependencies(ctx context.Context, entries []string, warnings []types.Warning) ([]types.DependencySpec, []types.Warning) {
	var specs []types.DependencySpec
	for _, entry := range entries {
		if strings.TrimSpace(entry) == "" {
			continue
		}
		spec, specWarnings, err := ParseRequirement(entry)
		if err != nil {
			if n.policy.ActionFor(policies.FailureUnparsableDependency) == policies.ActionDrop {
				warnings = append(warnings, types.Warning{
					Kind:    types.WarnUnparsableDependency,
					Subject: entry,
					Detail:  err.Error(),
				})
				log.Ctx(ctx).Warn().Str("entry", entry).Msg("dropped unparsable dependency")
			}
			continue
		}
		spec.Name = shared.NormalizePipName(spec.Name)
		specs = append(specs, spec)
		warnings = append(warnings, specWarnings...)
	}
	return specs, warnings
}

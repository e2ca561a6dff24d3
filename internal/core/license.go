package core

import (
	"sort"
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"

	"recipesmith/internal/policies"
	"recipesmith/internal/tables"
	"recipesmith/internal/types"
)

// DefaultLicenseThreshold is the similarity floor below which a candidate
// is reported as "no match" instead of a weak guess. Policy constant, not
// a derived invariant.
const DefaultLicenseThreshold = 0.70

// LicenseMatcher fuzzy-matches free-text license declarations against the
// canonical identifier corpus. Matching is deterministic: no randomness,
// no external calls, and ties between equally scored candidates break
// toward the lexicographically smaller identifier.
type LicenseMatcher struct {
	corpus    []tables.LicenseEntry
	threshold float64
	policy    policies.DegradationPolicy
}

func NewLicenseMatcher(t *tables.Tables, threshold float64, policy policies.DegradationPolicy) LicenseMatcher {
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultLicenseThreshold
	}
	corpus := append([]tables.LicenseEntry(nil), t.Licenses()...)
	sort.Slice(corpus, func(i, j int) bool { return corpus[i].ID < corpus[j].ID })
	return LicenseMatcher{corpus: corpus, threshold: threshold, policy: policy}
}

// Match scores the input against every corpus entry and returns the best
// candidate, or an unmatched result when the input is empty or the best
// score falls below the threshold.
func (m LicenseMatcher) Match(text string) types.LicenseMatch {
	normalized := normalizeLicenseText(text)
	if normalized == "" {
		return types.LicenseMatch{}
	}

	best := types.LicenseMatch{}
	for _, entry := range m.corpus {
		score := tokenSetRatio(normalized, normalizeLicenseText(entry.ID))
		for _, name := range entry.Names {
			if s := tokenSetRatio(normalized, normalizeLicenseText(name)); s > score {
				score = s
			}
		}
		// Strictly greater: the corpus is sorted by identifier, so equal
		// scores keep the earlier (smaller) identifier.
		if score > best.Score {
			best = types.LicenseMatch{Identifier: entry.ID, Score: score}
		}
	}

	if best.Score < m.threshold {
		if m.policy.ActionFor(policies.FailureWeakLicense) == policies.ActionNoMatch {
			return types.LicenseMatch{Score: best.Score}
		}
	}
	best.Matched = true
	return best
}

// normalizeLicenseText lowercases and strips punctuation so matching is
// symmetric under casing and whitespace variations.
func normalizeLicenseText(value string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(value) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// tokenSetRatio computes the token-set similarity of two normalized
// strings in [0, 1]: tokens common to both are compared against each
// side's full token set and the best pairing wins. This makes
// "BSD 3-Clause License" score high against "BSD-3-Clause" even though
// the raw strings differ substantially.
func tokenSetRatio(a string, b string) float64 {
	tokensA := tokenSet(a)
	tokensB := tokenSet(b)
	if len(tokensA) == 0 || len(tokensB) == 0 {
		return 0
	}

	var inter, onlyA, onlyB []string
	for token := range tokensA {
		if _, ok := tokensB[token]; ok {
			inter = append(inter, token)
		} else {
			onlyA = append(onlyA, token)
		}
	}
	for token := range tokensB {
		if _, ok := tokensA[token]; !ok {
			onlyB = append(onlyB, token)
		}
	}
	sort.Strings(inter)
	sort.Strings(onlyA)
	sort.Strings(onlyB)

	base := strings.Join(inter, " ")
	full1 := strings.TrimSpace(base + " " + strings.Join(onlyA, " "))
	full2 := strings.TrimSpace(base + " " + strings.Join(onlyB, " "))

	lev := metrics.NewLevenshtein()
	score := strutil.Similarity(full1, full2, lev)
	if base != "" {
		if s := strutil.Similarity(base, full1, lev); s > score {
			score = s
		}
		if s := strutil.Similarity(base, full2, lev); s > score {
			score = s
		}
	}
	return score
}

func tokenSet(value string) map[string]struct{} {
	set := map[string]struct{}{}
	for _, token := range strings.Fields(value) {
		set[token] = struct{}{}
	}
	return set
}

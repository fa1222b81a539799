// Package dedup removes near-duplicate excerpts from a ranked result set.
//
// Retrieval tiers frequently surface the same exam paper twice: once as the
// full document and once as a narrowed excerpt, or under two ingestion
// variants of the same source. Deduplication keeps the most complete
// version and drops anything that is a containment or a ≥90% token-overlap
// duplicate of an already accepted text.
package dedup

import (
	"regexp"
	"sort"
	"strings"

	"github.com/HOUSSAM16ai/my-ai-project-sub004/pkg/normalizer"
	"github.com/HOUSSAM16ai/my-ai-project-sub004/pkg/types"
)

// OverlapThreshold is the token-overlap ratio above which two texts are
// treated as duplicates.
const OverlapThreshold = 0.9

var headingPattern = regexp.MustCompile(`(?m)^##`)

// Deduplicator is stateless and safe for concurrent use.
type Deduplicator struct {
	threshold float64
}

// New returns a Deduplicator with the default overlap threshold.
func New() *Deduplicator {
	return &Deduplicator{threshold: OverlapThreshold}
}

// Dedupe returns the surviving texts ordered by length descending, so the
// most complete version of duplicated content always wins. It is
// idempotent: Dedupe(Dedupe(x)) == Dedupe(x).
func (d *Deduplicator) Dedupe(texts []string) []string {
	if len(texts) <= 1 {
		return append([]string(nil), texts...)
	}

	ordered := append([]string(nil), texts...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return len(ordered[i]) > len(ordered[j])
	})

	type accepted struct {
		body   string          // header-stripped, folded
		tokens map[string]bool // token set of body
	}

	var kept []string
	var keptBodies []accepted
	for _, text := range ordered {
		body := normalizer.Fold(stripHeader(text))
		tokens := tokenSet(body)

		dup := false
		for _, a := range keptBodies {
			if body != "" && strings.Contains(a.body, body) {
				dup = true
				break
			}
			if overlap(tokens, a.tokens) >= d.threshold {
				dup = true
				break
			}
		}
		if dup {
			continue
		}
		kept = append(kept, text)
		keptBodies = append(keptBodies, accepted{body: body, tokens: tokens})
	}
	return kept
}

// DedupeCandidates drops candidates duplicating an already accepted one,
// comparing with the same containment and overlap rules as Dedupe. Survivors
// keep their incoming (score) order; duplicate resolution still prefers the
// longest text, so the most complete version survives regardless of rank.
func (d *Deduplicator) DedupeCandidates(candidates []types.Candidate) []types.Candidate {
	if len(candidates) <= 1 {
		return append([]types.Candidate(nil), candidates...)
	}

	// Resolve by ID first: tiers can surface the same document twice.
	seen := make(map[string]bool, len(candidates))
	unique := make([]types.Candidate, 0, len(candidates))
	for _, c := range candidates {
		if seen[c.ID] {
			continue
		}
		seen[c.ID] = true
		unique = append(unique, c)
	}

	byLength := make([]int, len(unique))
	for i := range byLength {
		byLength[i] = i
	}
	sort.SliceStable(byLength, func(i, j int) bool {
		return len(unique[byLength[i]].Text()) > len(unique[byLength[j]].Text())
	})

	type accepted struct {
		body   string
		tokens map[string]bool
	}

	survivors := make(map[int]bool, len(unique))
	var keptBodies []accepted
	for _, idx := range byLength {
		body := normalizer.Fold(stripHeader(unique[idx].Text()))
		tokens := tokenSet(body)

		dup := false
		for _, a := range keptBodies {
			if body != "" && strings.Contains(a.body, body) {
				dup = true
				break
			}
			if overlap(tokens, a.tokens) >= d.threshold {
				dup = true
				break
			}
		}
		if dup {
			continue
		}
		survivors[idx] = true
		keptBodies = append(keptBodies, accepted{body: body, tokens: tokens})
	}

	kept := make([]types.Candidate, 0, len(survivors))
	for i, c := range unique {
		if survivors[i] {
			kept = append(kept, c)
		}
	}
	return kept
}

// stripHeader drops the shared header block (title and exam-card metadata)
// so two excerpts of the same paper are compared on their actual sections.
func stripHeader(text string) string {
	loc := headingPattern.FindStringIndex(text)
	if loc == nil {
		return text
	}
	return text[loc[0]:]
}

func tokenSet(folded string) map[string]bool {
	set := make(map[string]bool)
	for _, tok := range strings.Fields(folded) {
		set[tok] = true
	}
	return set
}

// overlap returns the share of candidate tokens already present in the
// accepted set. Asymmetric on purpose: a short excerpt fully contained in a
// long one is a duplicate, not the other way around.
func overlap(candidate, accepted map[string]bool) float64 {
	if len(candidate) == 0 {
		return 0
	}
	hits := 0
	for tok := range candidate {
		if accepted[tok] {
			hits++
		}
	}
	return float64(hits) / float64(len(candidate))
}

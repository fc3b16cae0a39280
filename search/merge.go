package search

import (
	"sort"

	"github.com/clefworks/scorebase/ai"
	"github.com/clefworks/scorebase/core"
)

// Merge concatenates the candidate lists, deduplicates by content signature
// keeping the highest-scoring entry for each piece, and returns up to limit
// candidates in ranking order.
//
// Ranking is score descending, then provenance priority (user-uploaded over
// local-import over cloud-indexed), then ascending identifier. The output
// depends only on the input lists, never on map iteration order.
func Merge(limit int, lists ...[]*core.Candidate) []*core.Candidate {
	merged := make([]*core.Candidate, 0)
	bySignature := make(map[string]int)

	for _, list := range lists {
		for _, candidate := range list {
			if candidate == nil || candidate.Item == nil {
				continue
			}

			sig := candidate.Item.Signature
			if sig == "" {
				sig = core.SignatureFromMetadata(candidate.Item.Title, candidate.Item.Composer)
			}

			at, seen := bySignature[sig]
			if !seen {
				bySignature[sig] = len(merged)
				merged = append(merged, candidate)
				continue
			}
			if ranksAbove(candidate, merged[at]) {
				merged[at] = candidate
			}
		}
	}

	sort.SliceStable(merged, func(a, b int) bool {
		return ranksAbove(merged[a], merged[b])
	})

	if limit >= 0 && len(merged) > limit {
		merged = merged[:limit]
	}

	return merged
}

// ranksAbove reports whether a should be ordered before b.
func ranksAbove(a, b *core.Candidate) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	if pa, pb := a.Item.Provenance.Priority(), b.Item.Provenance.Priority(); pa != pb {
		return pa > pb
	}
	return a.Item.Id < b.Item.Id
}

// candidateFromCloud lifts a datastore hit into a candidate. The synthesized
// item carries cloud provenance and the remotely indexed signature; when the
// datastore doesn't carry one, a metadata signature stands in so the hit
// still deduplicates against local results.
func candidateFromCloud(hit ai.CloudCandidate) *core.Candidate {
	sig := hit.Signature
	if sig == "" {
		sig = core.SignatureFromMetadata(hit.Title, hit.Composer)
	}

	return &core.Candidate{
		Item: &core.LibraryItem{
			Title:        hit.Title,
			Composer:     hit.Composer,
			KeySignature: hit.KeySignature,
			Path:         hit.Reference,
			Provenance:   core.ProvenanceCloudIndex,
			Signature:    sig,
		},
		Score:  hit.Score,
		Source: core.SourceCloud,
	}
}

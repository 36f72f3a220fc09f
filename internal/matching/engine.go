// Package matching ranks vendor-directory candidates against an RFQ's
// requirements. The scorer is deterministic and rule-based; given the same
// candidates it always produces the same ordered result.
package matching

import (
	"context"
	"sort"

	"rfq-intake/internal/common/logger"
	"rfq-intake/internal/common/metrics"
	"rfq-intake/internal/directory"
	"rfq-intake/internal/models"
)

// Location scores. Exact town match outranks same-county-only; vendors
// outside the county never become candidates at all.
const (
	scoreTownMatch   = 2
	scoreCountyMatch = 1
)

// Constraints are the per-RFQ inputs beyond category and county.
type Constraints struct {
	Town      string
	BudgetMin *float64
	BudgetMax *float64
}

// Engine scores and ranks candidates from the directory read port.
type Engine struct {
	dir        directory.Directory
	maxMatches int
	log        logger.Logger
}

func NewEngine(dir directory.Directory, maxMatches int, log logger.Logger) *Engine {
	return &Engine{dir: dir, maxMatches: maxMatches, log: log}
}

// Match returns the top ranked vendors for the category and county, capped at
// the configured ceiling. An empty result sets NeedsAdminReview; a directory
// failure is logged and degrades to the same outcome, never to an error. Both
// paths fail safe toward human review rather than dropping the RFQ.
func (e *Engine) Match(ctx context.Context, categorySlug, county string, c Constraints) models.MatchResult {
	candidates, err := e.dir.FindCandidates(ctx, categorySlug, county)
	if err != nil {
		e.log.Error("Vendor directory unavailable, flagging for admin review", map[string]interface{}{
			"categorySlug": categorySlug,
			"county":       county,
			"error":        err.Error(),
		})
		metrics.MatchOutcomes.WithLabelValues("directory_error").Inc()
		return models.MatchResult{NeedsAdminReview: true}
	}

	ranked := e.rank(candidates, categorySlug, county, c)
	metrics.MatchCandidates.Observe(float64(len(ranked)))

	if len(ranked) == 0 {
		e.log.Info("No matching vendors, flagging for admin review", map[string]interface{}{
			"categorySlug": categorySlug,
			"county":       county,
		})
		metrics.MatchOutcomes.WithLabelValues("no_candidates").Inc()
		return models.MatchResult{NeedsAdminReview: true}
	}

	metrics.MatchOutcomes.WithLabelValues("matched").Inc()
	return models.MatchResult{Vendors: ranked}
}

// rank applies the hard filters and the ordering rules. The directory already
// filters, but the engine re-checks so a stale cache entry or a misbehaving
// implementation can never leak an out-of-county or over-capacity vendor.
func (e *Engine) rank(candidates []models.Vendor, categorySlug, county string, c Constraints) []models.ScoredVendor {
	type rankedVendor struct {
		models.ScoredVendor
		rating *float64
	}

	eligible := make([]rankedVendor, 0, len(candidates))
	for _, v := range candidates {
		if v.CategorySlug != categorySlug || v.County != county {
			continue
		}
		if !v.Active || v.OverCapacity {
			continue
		}
		score := scoreCountyMatch
		if c.Town != "" && v.Town == c.Town {
			score = scoreTownMatch
		}
		eligible = append(eligible, rankedVendor{
			ScoredVendor: models.ScoredVendor{VendorID: v.ID, Score: score},
			rating:       v.Rating,
		})
	}

	sort.Slice(eligible, func(i, j int) bool {
		a, b := eligible[i], eligible[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		// Rating descending, unrated last.
		switch {
		case a.rating != nil && b.rating != nil && *a.rating != *b.rating:
			return *a.rating > *b.rating
		case a.rating != nil && b.rating == nil:
			return true
		case a.rating == nil && b.rating != nil:
			return false
		}
		// Stable final tie-break for determinism.
		return a.VendorID < b.VendorID
	})

	if len(eligible) > e.maxMatches {
		eligible = eligible[:e.maxMatches]
	}

	out := make([]models.ScoredVendor, len(eligible))
	for i, rv := range eligible {
		out[i] = rv.ScoredVendor
	}
	return out
}

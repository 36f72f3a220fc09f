// Package directory is the read port onto the externally owned vendor
// directory. The postgres implementation applies the hard filters (category
// slug, county, active, capacity); ranking belongs to the matching engine.
package directory

import (
	"context"

	"rfq-intake/internal/models"
)

// Directory finds candidate vendors for a category in a county. Vendors
// outside the county, inactive vendors and vendors flagged over capacity are
// never returned.
type Directory interface {
	FindCandidates(ctx context.Context, categorySlug, county string) ([]models.Vendor, error)
}

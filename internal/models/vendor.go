package models

// Vendor is a read-only projection of the externally owned vendor directory.
type Vendor struct {
	ID           string   `db:"id" json:"id"`
	Name         string   `db:"name" json:"name"`
	CategorySlug string   `db:"category_slug" json:"categorySlug"`
	County       string   `db:"county" json:"county"`
	Town         string   `db:"town" json:"town"`
	Email        string   `db:"email" json:"email,omitempty"`
	Phone        string   `db:"phone" json:"phone,omitempty"`
	Rating       *float64 `db:"rating" json:"rating,omitempty"` // 0-5, nil when unrated
	Active       bool     `db:"active" json:"active"`
	OverCapacity bool     `db:"over_capacity" json:"overCapacity"`
}

// MatchResult is the transient outcome of one matching run. NeedsAdminReview
// is true iff the ordered vendor list is empty, whether because no candidates
// survived the filters or because the directory read failed.
type MatchResult struct {
	Vendors          []ScoredVendor `json:"vendors"`
	NeedsAdminReview bool           `json:"needsAdminReview"`
}

// ScoredVendor is one ranked entry of a MatchResult.
type ScoredVendor struct {
	VendorID string `json:"vendorId"`
	Score    int    `json:"score"`
}

// VendorIDs returns the ranked vendor ids in order.
func (m MatchResult) VendorIDs() []string {
	ids := make([]string, 0, len(m.Vendors))
	for _, v := range m.Vendors {
		ids = append(ids, v.VendorID)
	}
	return ids
}

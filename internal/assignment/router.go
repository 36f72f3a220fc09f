// Package assignment turns an RFQ type into a recipient plan and persists the
// resulting assignments into the two recipient stores.
package assignment

import (
	"context"

	"rfq-intake/internal/common/logger"
	"rfq-intake/internal/matching"
	"rfq-intake/internal/models"
)

// PlannedRecipient is one vendor the RFQ will be exposed to, with the initial
// row state for the recipient stores.
type PlannedRecipient struct {
	VendorID string
	Type     models.RecipientType
	Status   models.RecipientStatus
}

// Plan is a routing outcome: the RFQ's post-routing status, the recipients to
// write, and whether the RFQ needs a human to pick vendors or approve it.
type Plan struct {
	Status           models.RFQStatus
	Recipients       []PlannedRecipient
	NeedsAdminReview bool
	MatchedCount     int
}

// RouteInput carries everything a strategy may need. SelectedVendors is only
// populated for the caller-supplied-vendor types; validation guarantees the
// cardinality rules before routing runs.
type RouteInput struct {
	RFQ             models.RFQ
	SelectedVendors []string
}

type strategy struct {
	initialStatus models.RFQStatus
	plan          func(ctx context.Context, r *Router, in RouteInput) Plan
}

// Router dispatches on the closed RFQType set. A single table maps each type
// to its strategy; an unknown type cannot reach this point because the type is
// parsed at the HTTP edge.
type Router struct {
	matcher    *matching.Engine
	strategies map[models.RFQType]strategy
	log        logger.Logger
}

func NewRouter(matcher *matching.Engine, log logger.Logger) *Router {
	r := &Router{matcher: matcher, log: log}
	r.strategies = map[models.RFQType]strategy{
		models.RFQTypeDirect:        {models.StatusSubmitted, planDirect},
		models.RFQTypeVendorRequest: {models.StatusSubmitted, planVendorRequest},
		models.RFQTypeWizard:        {models.StatusSubmitted, planWizard},
		models.RFQTypePublic:        {models.StatusPendingApproval, planPublic},
	}
	return r
}

// InitialStatus is the status the RFQ row is inserted with, before routing
// has run. Wizard RFQs may later be flagged needs_admin_review; that update
// happens outside the buyer lock.
func (r *Router) InitialStatus(t models.RFQType) models.RFQStatus {
	return r.strategies[t].initialStatus
}

// Route produces the recipient plan for an already-created RFQ.
func (r *Router) Route(ctx context.Context, in RouteInput) Plan {
	return r.strategies[in.RFQ.Type].plan(ctx, r, in)
}

func planDirect(_ context.Context, _ *Router, in RouteInput) Plan {
	return Plan{
		Status:     models.StatusSubmitted,
		Recipients: fromSelected(in.SelectedVendors, models.RecipientDirect),
	}
}

func planVendorRequest(_ context.Context, _ *Router, in RouteInput) Plan {
	return Plan{
		Status:     models.StatusSubmitted,
		Recipients: fromSelected(in.SelectedVendors, models.RecipientVendorRequest),
	}
}

// planWizard runs the matcher. Zero matches is a first-class outcome: the RFQ
// survives with no recipients and gets flagged for manual admin matching.
func planWizard(ctx context.Context, r *Router, in RouteInput) Plan {
	result := r.matcher.Match(ctx, in.RFQ.CategorySlug, in.RFQ.County, matching.Constraints{
		Town:      in.RFQ.Town,
		BudgetMin: in.RFQ.BudgetMin,
		BudgetMax: in.RFQ.BudgetMax,
	})
	if result.NeedsAdminReview {
		return Plan{
			Status:           models.StatusNeedsAdminReview,
			NeedsAdminReview: true,
		}
	}

	recipients := make([]PlannedRecipient, 0, len(result.Vendors))
	for _, v := range result.Vendors {
		recipients = append(recipients, PlannedRecipient{
			VendorID: v.VendorID,
			Type:     models.RecipientMatched,
			Status:   models.RecipientStatusPending,
		})
	}
	return Plan{
		Status:       models.StatusSubmitted,
		Recipients:   recipients,
		MatchedCount: len(recipients),
	}
}

// planPublic matches vendors but holds every assignment in pending_approval.
// Nothing reaches a vendor until an admin approves; creation is deliberately
// decoupled from vendor exposure for this type.
func planPublic(ctx context.Context, r *Router, in RouteInput) Plan {
	result := r.matcher.Match(ctx, in.RFQ.CategorySlug, in.RFQ.County, matching.Constraints{
		Town:      in.RFQ.Town,
		BudgetMin: in.RFQ.BudgetMin,
		BudgetMax: in.RFQ.BudgetMax,
	})

	recipients := make([]PlannedRecipient, 0, len(result.Vendors))
	for _, v := range result.Vendors {
		recipients = append(recipients, PlannedRecipient{
			VendorID: v.VendorID,
			Type:     models.RecipientPublic,
			Status:   models.RecipientStatusPendingApproval,
		})
	}
	return Plan{
		Status:           models.StatusPendingApproval,
		Recipients:       recipients,
		NeedsAdminReview: true,
		MatchedCount:     len(recipients),
	}
}

func fromSelected(vendorIDs []string, t models.RecipientType) []PlannedRecipient {
	out := make([]PlannedRecipient, 0, len(vendorIDs))
	for _, id := range vendorIDs {
		out = append(out, PlannedRecipient{
			VendorID: id,
			Type:     t,
			Status:   models.RecipientStatusSent,
		})
	}
	return out
}

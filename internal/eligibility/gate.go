// Package eligibility decides whether a buyer may submit another RFQ right
// now. The gate is read-only; it runs inside the per-buyer critical section so
// its quota recount and the subsequent insert are serialized.
package eligibility

import (
	"context"

	"rfq-intake/internal/common/logger"
	"rfq-intake/internal/models"
	"rfq-intake/internal/quota"
)

// Reasons a submission is not allowed to proceed for free.
const (
	ReasonVerificationRequired = "verification_required"
	ReasonQuotaExceeded        = "quota_exceeded"
)

// Decision is the gate's outcome. RequiresPayment is a terminal business
// outcome, not a failure; the caller surfaces a payment prompt with the
// current count and limit.
type Decision struct {
	Allowed         bool
	RequiresPayment bool
	CurrentCount    int
	Limit           int
	Reason          string
}

// Gate validates account prerequisites and quota, in that order.
type Gate struct {
	ledger *quota.Ledger
	limit  int
	log    logger.Logger
}

func NewGate(ledger *quota.Ledger, freeMonthlyLimit int, log logger.Logger) *Gate {
	return &Gate{ledger: ledger, limit: freeMonthlyLimit, log: log}
}

// Check runs the two checks. Verification is checked first and short-circuits;
// an unverified buyer never reaches the quota recount. An error return means
// the ledger read itself failed, not a business denial.
func (g *Gate) Check(ctx context.Context, q quota.Querier, buyer models.Buyer) (Decision, error) {
	if !buyer.ContactVerified {
		g.log.Info("Submission blocked, contact not verified", map[string]interface{}{
			"buyerId": buyer.ID,
		})
		return Decision{
			Allowed: false,
			Reason:  ReasonVerificationRequired,
			Limit:   g.limit,
		}, nil
	}

	count, err := g.ledger.CountSubmittedThisMonth(ctx, q, buyer.ID)
	if err != nil {
		return Decision{}, err
	}

	if count >= g.limit {
		g.log.Info("Submission requires payment, free quota used", map[string]interface{}{
			"buyerId":      buyer.ID,
			"currentCount": count,
			"limit":        g.limit,
		})
		return Decision{
			Allowed:         false,
			RequiresPayment: true,
			CurrentCount:    count,
			Limit:           g.limit,
			Reason:          ReasonQuotaExceeded,
		}, nil
	}

	return Decision{
		Allowed:      true,
		CurrentCount: count,
		Limit:        g.limit,
	}, nil
}

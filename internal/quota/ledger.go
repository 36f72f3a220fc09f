// Package quota implements the monthly free-submission ledger. The count is
// always recomputed from the rfqs table, never cached, so a concurrent
// submission holding the buyer lock observes the latest state.
package quota

import (
	"context"
	"database/sql"
	"fmt"

	"rfq-intake/internal/common/logger"
)

// Querier is satisfied by *sql.DB and *sql.Tx. The ledger is usually invoked
// with the transaction opened by WithBuyerLock.
type Querier interface {
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// Ledger counts a buyer's submitted RFQs in the current calendar month.
type Ledger struct {
	log logger.Logger
}

func NewLedger(log logger.Logger) *Ledger {
	return &Ledger{log: log}
}

// CountSubmittedThisMonth returns the number of rfqs rows for the buyer with
// status 'submitted' created since the first day of the current month. Rows in
// pending_approval or needs_admin_review do not consume quota.
func (l *Ledger) CountSubmittedThisMonth(ctx context.Context, q Querier, buyerID string) (int, error) {
	var count int
	err := q.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM rfqs
		WHERE buyer_id = $1
		  AND status = 'submitted'
		  AND created_at >= date_trunc('month', now())`,
		buyerID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count submitted rfqs: %w", err)
	}

	l.log.Debug("Quota recount", map[string]interface{}{
		"buyerId": buyerID,
		"count":   count,
	})
	return count, nil
}

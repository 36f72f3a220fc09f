package assignment

import (
	"context"

	"rfq-intake/internal/common/database"
	"rfq-intake/internal/common/logger"
	"rfq-intake/internal/common/metrics"

	"github.com/google/uuid"
)

// AssignmentResult reports which vendors were persisted into the canonical
// store. Legacy-store failures are logged and counted but do not fail a
// vendor; the legacy inbox is best-effort relative to the canonical table.
type AssignmentResult struct {
	Succeeded []string
	Failed    []string
}

// Writer persists recipient assignments into two stores: rfq_recipients
// (canonical) and vendor_inbox (read by the legacy vendor dashboard). Both
// writes are idempotent on (rfq_id, vendor_id), so a retry of the whole batch
// never duplicates rows. A failure in either store never aborts the other and
// never rolls back the already-committed RFQ.
type Writer struct {
	db  *database.PostgresClient
	log logger.Logger
}

func NewWriter(db *database.PostgresClient, log logger.Logger) *Writer {
	return &Writer{db: db, log: log}
}

// Assign writes one row per vendor into each store. The RFQ's existence must
// never depend on this fan-out succeeding.
func (w *Writer) Assign(ctx context.Context, rfqID string, recipients []PlannedRecipient) AssignmentResult {
	var result AssignmentResult

	for _, r := range recipients {
		canonicalOK := w.writeCanonical(ctx, rfqID, r)
		w.writeLegacy(ctx, rfqID, r)

		if canonicalOK {
			result.Succeeded = append(result.Succeeded, r.VendorID)
		} else {
			result.Failed = append(result.Failed, r.VendorID)
		}
	}

	if len(result.Failed) > 0 {
		w.log.Warn("Some recipient assignments failed", map[string]interface{}{
			"rfqId":     rfqID,
			"succeeded": len(result.Succeeded),
			"failed":    len(result.Failed),
		})
	}
	return result
}

func (w *Writer) writeCanonical(ctx context.Context, rfqID string, r PlannedRecipient) bool {
	_, err := w.db.Exec(ctx, `
		INSERT INTO rfq_recipients (rfq_id, vendor_id, recipient_type, status)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (rfq_id, vendor_id) DO NOTHING`,
		rfqID, r.VendorID, string(r.Type), string(r.Status),
	)
	if err != nil {
		w.log.Error("Canonical recipient write failed", map[string]interface{}{
			"rfqId":    rfqID,
			"vendorId": r.VendorID,
			"error":    err.Error(),
		})
		metrics.RecipientWrites.WithLabelValues("canonical", "error").Inc()
		return false
	}
	metrics.RecipientWrites.WithLabelValues("canonical", "ok").Inc()
	return true
}

func (w *Writer) writeLegacy(ctx context.Context, rfqID string, r PlannedRecipient) {
	_, err := w.db.Exec(ctx, `
		INSERT INTO vendor_inbox (id, rfq_id, vendor_id, status)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (rfq_id, vendor_id) DO NOTHING`,
		uuid.NewString(), rfqID, r.VendorID, string(r.Status),
	)
	if err != nil {
		w.log.Error("Legacy inbox write failed", map[string]interface{}{
			"rfqId":    rfqID,
			"vendorId": r.VendorID,
			"error":    err.Error(),
		})
		metrics.RecipientWrites.WithLabelValues("legacy", "error").Inc()
		return
	}
	metrics.RecipientWrites.WithLabelValues("legacy", "ok").Inc()
}

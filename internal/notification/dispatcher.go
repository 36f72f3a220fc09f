package notification

import (
	"context"

	"rfq-intake/internal/common/logger"
	"rfq-intake/internal/models"
)

// Dispatcher translates an intake outcome into outbox intents. Branches are
// mutually exclusive on (type, matching outcome). Every enqueue failure is
// swallowed with a log line: notification is decoration on top of a committed
// RFQ, never a correctness requirement.
type Dispatcher struct {
	outbox *Outbox
	log    logger.Logger
}

func NewDispatcher(outbox *Outbox, log logger.Logger) *Dispatcher {
	return &Dispatcher{outbox: outbox, log: log}
}

// Dispatch enqueues the buyer and vendor intents for a created RFQ.
// vendorIDs are the recipients that were actually assigned. For the public
// type vendors are deliberately not notified; nothing reaches them until an
// admin approves the RFQ.
func (d *Dispatcher) Dispatch(ctx context.Context, rfq models.RFQ, vendorIDs []string, needsAdminReview bool) {
	payload := map[string]string{
		"rfqTitle": rfq.Title,
	}

	switch {
	case rfq.Type == models.RFQTypeWizard && needsAdminReview:
		d.enqueue(ctx, models.OutboxEntry{
			RFQID:            rfq.ID,
			RecipientID:      rfq.BuyerID,
			RecipientType:    models.NotifyRecipientBuyer,
			NotificationType: models.NotificationRFQUnderReview,
			Payload:          payload,
		})

	case rfq.Type == models.RFQTypePublic:
		d.enqueue(ctx, models.OutboxEntry{
			RFQID:            rfq.ID,
			RecipientID:      rfq.BuyerID,
			RecipientType:    models.NotifyRecipientBuyer,
			NotificationType: models.NotificationRFQPendingReview,
			Payload:          payload,
		})

	case rfq.Type == models.RFQTypeWizard:
		d.enqueue(ctx, models.OutboxEntry{
			RFQID:            rfq.ID,
			RecipientID:      rfq.BuyerID,
			RecipientType:    models.NotifyRecipientBuyer,
			NotificationType: models.NotificationRFQAutoMatched,
			Payload:          payload,
		})
		d.notifyVendors(ctx, rfq, vendorIDs, payload)

	default: // direct, vendor-request
		d.enqueue(ctx, models.OutboxEntry{
			RFQID:            rfq.ID,
			RecipientID:      rfq.BuyerID,
			RecipientType:    models.NotifyRecipientBuyer,
			NotificationType: models.NotificationRFQSentToVendor,
			Payload:          payload,
		})
		d.notifyVendors(ctx, rfq, vendorIDs, payload)
	}
}

// notifyVendors enqueues one high-priority intent per assigned vendor. High
// priority additionally triggers the SMS channel in the worker.
func (d *Dispatcher) notifyVendors(ctx context.Context, rfq models.RFQ, vendorIDs []string, payload map[string]string) {
	for _, vendorID := range vendorIDs {
		d.enqueue(ctx, models.OutboxEntry{
			RFQID:            rfq.ID,
			RecipientID:      vendorID,
			RecipientType:    models.NotifyRecipientVendor,
			NotificationType: models.NotificationVendorNewRFQ,
			Priority:         models.PriorityHigh,
			Payload:          payload,
		})
	}
}

func (d *Dispatcher) enqueue(ctx context.Context, entry models.OutboxEntry) {
	if err := d.outbox.Enqueue(ctx, entry); err != nil {
		d.log.Error("Failed to enqueue notification", map[string]interface{}{
			"rfqId":            entry.RFQID,
			"recipientId":      entry.RecipientID,
			"notificationType": entry.NotificationType,
			"error":            err.Error(),
		})
	}
}

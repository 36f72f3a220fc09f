package models

import "time"

// Notification types produced by the intake pipeline. One per response branch
// of the orchestrator plus the vendor-facing assignment notice.
const (
	NotificationRFQUnderReview   = "rfq_under_review"
	NotificationRFQAutoMatched   = "rfq_auto_matched"
	NotificationRFQPendingReview = "rfq_pending_admin_review"
	NotificationRFQSentToVendor  = "rfq_sent_to_vendor"
	NotificationVendorNewRFQ     = "vendor_new_rfq"
)

// Outbox row statuses.
const (
	OutboxStatusPending = "pending"
	OutboxStatusSent    = "sent"
	OutboxStatusFailed  = "failed"
)

// Recipient types for notification routing.
const (
	NotifyRecipientBuyer  = "buyer"
	NotifyRecipientVendor = "vendor"
)

// Priorities. High priority additionally triggers the SMS channel.
const (
	PriorityHigh   = "high"
	PriorityNormal = "normal"
)

// OutboxEntry is one durable notification intent. The orchestrator enqueues
// these synchronously; a background worker delivers them after the HTTP
// response has already been written.
type OutboxEntry struct {
	ID               string            `db:"id" json:"id"`
	RFQID            string            `db:"rfq_id" json:"rfqId"`
	RecipientID      string            `db:"recipient_id" json:"recipientId"`
	RecipientType    string            `db:"recipient_type" json:"recipientType"`
	NotificationType string            `db:"notification_type" json:"notificationType"`
	Priority         string            `db:"priority" json:"priority"`
	Payload          map[string]string `db:"-" json:"payload,omitempty"`
	Status           string            `db:"status" json:"status"`
	Attempts         int               `db:"attempts" json:"attempts"`
	LastError        string            `db:"last_error" json:"lastError,omitempty"`
	CreatedAt        time.Time         `db:"created_at" json:"createdAt"`
	SentAt           *time.Time        `db:"sent_at" json:"sentAt,omitempty"`
}

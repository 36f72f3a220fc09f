// Package notification implements the durable notification pipeline: the
// orchestrator enqueues intents into an outbox table synchronously, and a
// background worker delivers them after the HTTP response has been written.
// Delivery failure is observable in the table instead of silently dropped.
package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"rfq-intake/internal/common/database"
	"rfq-intake/internal/common/logger"
	"rfq-intake/internal/models"

	"github.com/google/uuid"
)

// Outbox persists notification intents.
type Outbox struct {
	db  *database.PostgresClient
	log logger.Logger
}

func NewOutbox(db *database.PostgresClient, log logger.Logger) *Outbox {
	return &Outbox{db: db, log: log}
}

// Enqueue inserts one pending outbox row. Callers treat a failure as
// best-effort: log and continue, the RFQ is already committed.
func (o *Outbox) Enqueue(ctx context.Context, entry models.OutboxEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.Priority == "" {
		entry.Priority = models.PriorityNormal
	}

	payload := []byte("{}")
	if len(entry.Payload) > 0 {
		data, err := json.Marshal(entry.Payload)
		if err != nil {
			return fmt.Errorf("marshal payload: %w", err)
		}
		payload = data
	}

	_, err := o.db.Exec(ctx, `
		INSERT INTO notification_outbox
			(id, rfq_id, recipient_id, recipient_type, notification_type, priority, payload, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, 'pending')`,
		entry.ID, entry.RFQID, entry.RecipientID, entry.RecipientType,
		entry.NotificationType, entry.Priority, payload,
	)
	if err != nil {
		return fmt.Errorf("insert outbox entry: %w", err)
	}

	o.log.Debug("Notification enqueued", map[string]interface{}{
		"rfqId":            entry.RFQID,
		"recipientType":    entry.RecipientType,
		"notificationType": entry.NotificationType,
	})
	return nil
}

package notification

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"rfq-intake/internal/common/config"
	"rfq-intake/internal/common/database"
	"rfq-intake/internal/common/logger"
	"rfq-intake/internal/common/metrics"
	"rfq-intake/internal/models"
)

// Worker consumes the notification outbox. Its lifetime is the process, not
// any request: a timeout on the HTTP side never aborts a delivery that is
// already claimed. Rows are claimed with FOR UPDATE SKIP LOCKED so multiple
// instances can poll the same table without stepping on each other.
type Worker struct {
	db     *database.PostgresClient
	sender *Sender
	cfg    config.NotificationConfig
	log    logger.Logger
}

func NewWorker(db *database.PostgresClient, sender *Sender, cfg config.NotificationConfig, log logger.Logger) *Worker {
	return &Worker{db: db, sender: sender, cfg: cfg, log: log}
}

// Run polls until ctx is cancelled. The in-flight batch finishes before Run
// returns.
func (w *Worker) Run(ctx context.Context) {
	interval := time.Duration(w.cfg.PollInterval) * time.Second
	w.log.Info("Notification worker started", map[string]interface{}{
		"pollInterval": interval.String(),
		"batchSize":    w.cfg.BatchSize,
	})

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info("Notification worker stopping", nil)
			return
		case <-ticker.C:
			if n, err := w.ProcessBatch(context.Background()); err != nil {
				w.log.Error("Outbox batch failed", map[string]interface{}{
					"error": err.Error(),
				})
			} else if n > 0 {
				w.log.Debug("Outbox batch processed", map[string]interface{}{
					"count": n,
				})
			}
		}
	}
}

// ProcessBatch claims and delivers up to BatchSize pending rows. Each row
// transitions to sent, stays pending for a later retry, or lands in failed
// once its attempts are exhausted.
func (w *Worker) ProcessBatch(ctx context.Context) (int, error) {
	tx, err := w.db.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin outbox tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	entries, err := w.claim(ctx, tx)
	if err != nil {
		return 0, err
	}

	for _, entry := range entries {
		w.deliver(ctx, tx, entry)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit outbox tx: %w", err)
	}
	return len(entries), nil
}

func (w *Worker) claim(ctx context.Context, tx *sql.Tx) ([]models.OutboxEntry, error) {
	rows, err := tx.QueryContext(ctx, `
		SELECT id, rfq_id, recipient_id, recipient_type, notification_type, priority, attempts
		FROM notification_outbox
		WHERE status = 'pending'
		ORDER BY created_at
		LIMIT $1
		FOR UPDATE SKIP LOCKED`,
		w.cfg.BatchSize,
	)
	if err != nil {
		return nil, fmt.Errorf("claim outbox rows: %w", err)
	}
	defer rows.Close()

	var entries []models.OutboxEntry
	for rows.Next() {
		var e models.OutboxEntry
		if err := rows.Scan(
			&e.ID, &e.RFQID, &e.RecipientID, &e.RecipientType,
			&e.NotificationType, &e.Priority, &e.Attempts,
		); err != nil {
			return nil, fmt.Errorf("scan outbox row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (w *Worker) deliver(ctx context.Context, tx *sql.Tx, entry models.OutboxEntry) {
	email, phone, err := w.recipientContact(ctx, tx, entry)
	if err == nil {
		// Load the title for rendering from the rfqs row.
		var title string
		if scanErr := tx.QueryRowContext(ctx,
			`SELECT title FROM rfqs WHERE id = $1`, entry.RFQID,
		).Scan(&title); scanErr == nil {
			entry.Payload = map[string]string{"rfqTitle": title}
		}
		err = w.sender.Send(ctx, entry, email, phone)
	}

	if err == nil {
		if _, execErr := tx.ExecContext(ctx, `
			UPDATE notification_outbox
			SET status = 'sent', attempts = attempts + 1, sent_at = now(), last_error = ''
			WHERE id = $1`,
			entry.ID,
		); execErr != nil {
			w.log.Error("Failed to mark outbox row sent", map[string]interface{}{
				"id":    entry.ID,
				"error": execErr.Error(),
			})
		}
		metrics.NotificationsDispatched.WithLabelValues(channelFor(entry), "sent").Inc()
		return
	}

	status := models.OutboxStatusPending
	if entry.Attempts+1 >= w.cfg.MaxAttempts {
		status = models.OutboxStatusFailed
	}
	w.log.Warn("Notification delivery failed", map[string]interface{}{
		"id":       entry.ID,
		"rfqId":    entry.RFQID,
		"attempts": entry.Attempts + 1,
		"status":   status,
		"error":    err.Error(),
	})
	if _, execErr := tx.ExecContext(ctx, `
		UPDATE notification_outbox
		SET status = $2, attempts = attempts + 1, last_error = $3
		WHERE id = $1`,
		entry.ID, status, err.Error(),
	); execErr != nil {
		w.log.Error("Failed to record outbox failure", map[string]interface{}{
			"id":    entry.ID,
			"error": execErr.Error(),
		})
	}
	metrics.NotificationsDispatched.WithLabelValues(channelFor(entry), string(status)).Inc()
}

func (w *Worker) recipientContact(ctx context.Context, tx *sql.Tx, entry models.OutboxEntry) (string, string, error) {
	var query string
	switch entry.RecipientType {
	case models.NotifyRecipientBuyer:
		query = `SELECT email, phone FROM buyers WHERE id = $1`
	case models.NotifyRecipientVendor:
		query = `SELECT email, phone FROM vendors WHERE id = $1`
	default:
		return "", "", fmt.Errorf("invalid recipient type: %s", entry.RecipientType)
	}

	var email, phone string
	err := tx.QueryRowContext(ctx, query, entry.RecipientID).Scan(&email, &phone)
	return email, phone, err
}

func channelFor(entry models.OutboxEntry) string {
	if entry.Priority == models.PriorityHigh {
		return "email+sms"
	}
	return "email"
}

package intake

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"rfq-intake/internal/common/database"
	"rfq-intake/internal/common/logger"
	"rfq-intake/internal/models"
)

// Store holds the raw SQL the orchestrator needs around the RFQ row itself.
type Store struct {
	db  *database.PostgresClient
	log logger.Logger
}

func NewStore(db *database.PostgresClient, log logger.Logger) *Store {
	return &Store{db: db, log: log}
}

// GetBuyer loads the submitting buyer. sql.ErrNoRows maps to 404 upstream.
func (s *Store) GetBuyer(ctx context.Context, buyerID string) (models.Buyer, error) {
	var b models.Buyer
	err := s.db.QueryRow(ctx, `
		SELECT id, email, phone, contact_verified, created_at
		FROM buyers WHERE id = $1`,
		buyerID,
	).Scan(&b.ID, &b.Email, &b.Phone, &b.ContactVerified, &b.CreatedAt)
	if err != nil {
		return models.Buyer{}, err
	}
	return b, nil
}

// CategoryExists reports whether the slug references a known category.
func (s *Store) CategoryExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := s.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM categories WHERE slug = $1)`, slug,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check category: %w", err)
	}
	return exists, nil
}

// FirstJobType returns the slug of the category's first job type by position.
// Used when a submission omits jobTypeSlug.
func (s *Store) FirstJobType(ctx context.Context, categorySlug string) (string, error) {
	var slug string
	err := s.db.QueryRow(ctx, `
		SELECT slug FROM job_types
		WHERE category_slug = $1
		ORDER BY position, slug
		LIMIT 1`,
		categorySlug,
	).Scan(&slug)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("first job type: %w", err)
	}
	return slug, nil
}

// InsertRFQ writes the RFQ row inside the caller's transaction, which holds
// the per-buyer advisory lock.
func (s *Store) InsertRFQ(ctx context.Context, tx *sql.Tx, rfq models.RFQ) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO rfqs
			(id, buyer_id, title, description, category_slug, job_type_slug,
			 county, town, budget_min, budget_max, desired_start_date,
			 rfq_type, status, visibility, is_paid, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
		rfq.ID, rfq.BuyerID, rfq.Title, rfq.Description, rfq.CategorySlug,
		rfq.JobTypeSlug, rfq.County, rfq.Town, rfq.BudgetMin, rfq.BudgetMax,
		rfq.DesiredStartDate, string(rfq.Type), string(rfq.Status),
		string(rfq.Visibility), rfq.IsPaid, rfq.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert rfq: %w", err)
	}
	return nil
}

// UpdateRFQStatus flips the status after routing, outside the buyer lock.
func (s *Store) UpdateRFQStatus(ctx context.Context, rfqID string, status models.RFQStatus) error {
	_, err := s.db.Exec(ctx,
		`UPDATE rfqs SET status = $2 WHERE id = $1`, rfqID, string(status))
	if err != nil {
		return fmt.Errorf("update rfq status: %w", err)
	}
	return nil
}

// RecordAudit inserts an audit row. Best effort: a failure is logged and
// never surfaced to the caller.
func (s *Store) RecordAudit(ctx context.Context, eventType, resourceType, resourceID string, details map[string]interface{}) {
	payload, err := json.Marshal(details)
	if err != nil {
		payload = []byte("{}")
	}
	if _, err := s.db.Exec(ctx, `
		INSERT INTO audit_log (event_type, resource_type, resource_id, details)
		VALUES ($1, $2, $3, $4)`,
		eventType, resourceType, resourceID, payload,
	); err != nil {
		s.log.Warn("Audit log insert failed", map[string]interface{}{
			"eventType":  eventType,
			"resourceId": resourceID,
			"error":      err.Error(),
		})
	}
}

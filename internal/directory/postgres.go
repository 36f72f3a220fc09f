package directory

import (
	"context"
	"fmt"

	"rfq-intake/internal/common/database"
	"rfq-intake/internal/common/logger"
	"rfq-intake/internal/models"
)

// PostgresDirectory reads candidates straight from the vendors projection.
type PostgresDirectory struct {
	db  *database.PostgresClient
	log logger.Logger
}

func NewPostgresDirectory(db *database.PostgresClient, log logger.Logger) *PostgresDirectory {
	return &PostgresDirectory{db: db, log: log}
}

func (d *PostgresDirectory) FindCandidates(ctx context.Context, categorySlug, county string) ([]models.Vendor, error) {
	rows, err := d.db.Query(ctx, `
		SELECT id, name, category_slug, county, town, email, phone, rating, active, over_capacity
		FROM vendors
		WHERE category_slug = $1
		  AND county = $2
		  AND active
		  AND NOT over_capacity`,
		categorySlug, county,
	)
	if err != nil {
		return nil, fmt.Errorf("query vendors: %w", err)
	}
	defer rows.Close()

	var vendors []models.Vendor
	for rows.Next() {
		var v models.Vendor
		if err := rows.Scan(
			&v.ID, &v.Name, &v.CategorySlug, &v.County, &v.Town,
			&v.Email, &v.Phone, &v.Rating, &v.Active, &v.OverCapacity,
		); err != nil {
			return nil, fmt.Errorf("scan vendor: %w", err)
		}
		vendors = append(vendors, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate vendors: %w", err)
	}

	d.log.Debug("Directory lookup", map[string]interface{}{
		"categorySlug": categorySlug,
		"county":       county,
		"candidates":   len(vendors),
	})
	return vendors, nil
}

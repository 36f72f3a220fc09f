package assignment

import (
	"context"
	"errors"
	"testing"

	"rfq-intake/internal/common/database"
	"rfq-intake/internal/common/logger"
	"rfq-intake/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func plannedRecipients(ids ...string) []PlannedRecipient {
	out := make([]PlannedRecipient, 0, len(ids))
	for _, id := range ids {
		out = append(out, PlannedRecipient{
			VendorID: id,
			Type:     models.RecipientMatched,
			Status:   models.RecipientStatusPending,
		})
	}
	return out
}

func TestWriter_Assign_DualWrite(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO rfq_recipients`).
		WithArgs("rfq-001", "v-001", "matched", "pending").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO vendor_inbox`).
		WithArgs(sqlmock.AnyArg(), "rfq-001", "v-001", "pending").
		WillReturnResult(sqlmock.NewResult(0, 1))

	writer := NewWriter(&database.PostgresClient{DB: db}, logger.NewTestLogger(t))
	result := writer.Assign(context.Background(), "rfq-001", plannedRecipients("v-001"))

	assert.Equal(t, []string{"v-001"}, result.Succeeded)
	assert.Empty(t, result.Failed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// A duplicate pair hits ON CONFLICT DO NOTHING and affects zero rows; the
// second call must still count as succeeded and must not duplicate anything.
func TestWriter_Assign_IdempotentRetry(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	for i := 0; i < 2; i++ {
		affected := int64(1 - i)
		mock.ExpectExec(`INSERT INTO rfq_recipients`).
			WithArgs("rfq-001", "v-001", "matched", "pending").
			WillReturnResult(sqlmock.NewResult(0, affected))
		mock.ExpectExec(`INSERT INTO vendor_inbox`).
			WithArgs(sqlmock.AnyArg(), "rfq-001", "v-001", "pending").
			WillReturnResult(sqlmock.NewResult(0, affected))
	}

	writer := NewWriter(&database.PostgresClient{DB: db}, logger.NewTestLogger(t))

	first := writer.Assign(context.Background(), "rfq-001", plannedRecipients("v-001"))
	second := writer.Assign(context.Background(), "rfq-001", plannedRecipients("v-001"))

	assert.Equal(t, first.Succeeded, second.Succeeded)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// The canonical failure must not stop the legacy write, and the next vendor
// must still be processed.
func TestWriter_Assign_CanonicalFailureDoesNotAbort(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO rfq_recipients`).
		WithArgs("rfq-001", "v-001", "matched", "pending").
		WillReturnError(errors.New("disk full"))
	mock.ExpectExec(`INSERT INTO vendor_inbox`).
		WithArgs(sqlmock.AnyArg(), "rfq-001", "v-001", "pending").
		WillReturnResult(sqlmock.NewResult(0, 1))

	mock.ExpectExec(`INSERT INTO rfq_recipients`).
		WithArgs("rfq-001", "v-002", "matched", "pending").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO vendor_inbox`).
		WithArgs(sqlmock.AnyArg(), "rfq-001", "v-002", "pending").
		WillReturnResult(sqlmock.NewResult(0, 1))

	writer := NewWriter(&database.PostgresClient{DB: db}, logger.NewTestLogger(t))
	result := writer.Assign(context.Background(), "rfq-001", plannedRecipients("v-001", "v-002"))

	assert.Equal(t, []string{"v-002"}, result.Succeeded)
	assert.Equal(t, []string{"v-001"}, result.Failed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWriter_Assign_LegacyFailureDoesNotFailVendor(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO rfq_recipients`).
		WithArgs("rfq-001", "v-001", "matched", "pending").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO vendor_inbox`).
		WithArgs(sqlmock.AnyArg(), "rfq-001", "v-001", "pending").
		WillReturnError(errors.New("legacy table locked"))

	writer := NewWriter(&database.PostgresClient{DB: db}, logger.NewTestLogger(t))
	result := writer.Assign(context.Background(), "rfq-001", plannedRecipients("v-001"))

	assert.Equal(t, []string{"v-001"}, result.Succeeded)
	assert.Empty(t, result.Failed)
}

func TestWriter_Assign_NoRecipients(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	writer := NewWriter(&database.PostgresClient{DB: db}, logger.NewTestLogger(t))
	result := writer.Assign(context.Background(), "rfq-001", nil)

	assert.Empty(t, result.Succeeded)
	assert.Empty(t, result.Failed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

package eligibility

import (
	"context"
	"errors"
	"testing"

	"rfq-intake/internal/common/logger"
	"rfq-intake/internal/models"
	"rfq-intake/internal/quota"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

// ==========================
// Test Helper Functions
// ==========================

func newGate(t *testing.T) *Gate {
	log := logger.NewTestLogger(t)
	return NewGate(quota.NewLedger(log), 3, log)
}

func verifiedBuyer() models.Buyer {
	return models.Buyer{ID: "buyer-001", Email: "buyer@example.com", ContactVerified: true}
}

// ==========================
// Verification Check Tests
// ==========================

func TestGate_Check_UnverifiedBuyer(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	// No quota query expected: verification short-circuits.
	buyer := verifiedBuyer()
	buyer.ContactVerified = false

	decision, err := newGate(t).Check(context.Background(), db, buyer)

	assert.NoError(t, err)
	assert.False(t, decision.Allowed)
	assert.False(t, decision.RequiresPayment)
	assert.Equal(t, ReasonVerificationRequired, decision.Reason)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ==========================
// Quota Check Tests
// ==========================

func TestGate_Check_UnderQuota(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\)`).
		WithArgs("buyer-001").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	decision, err := newGate(t).Check(context.Background(), db, verifiedBuyer())

	assert.NoError(t, err)
	assert.True(t, decision.Allowed)
	assert.False(t, decision.RequiresPayment)
	assert.Equal(t, 2, decision.CurrentCount)
	assert.Equal(t, 3, decision.Limit)
}

func TestGate_Check_QuotaExhausted(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\)`).
		WithArgs("buyer-001").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	decision, err := newGate(t).Check(context.Background(), db, verifiedBuyer())

	assert.NoError(t, err)
	assert.False(t, decision.Allowed)
	assert.True(t, decision.RequiresPayment)
	assert.Equal(t, ReasonQuotaExceeded, decision.Reason)
	assert.Equal(t, 3, decision.CurrentCount)
	assert.Equal(t, 3, decision.Limit)
}

func TestGate_Check_OverQuota(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\)`).
		WithArgs("buyer-001").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(5))

	decision, err := newGate(t).Check(context.Background(), db, verifiedBuyer())

	assert.NoError(t, err)
	assert.True(t, decision.RequiresPayment)
	assert.Equal(t, 5, decision.CurrentCount)
}

func TestGate_Check_LedgerError(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\)`).
		WithArgs("buyer-001").
		WillReturnError(errors.New("db down"))

	_, err = newGate(t).Check(context.Background(), db, verifiedBuyer())

	assert.Error(t, err)
}

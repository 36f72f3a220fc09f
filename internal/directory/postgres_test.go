package directory

import (
	"context"
	"errors"
	"testing"

	"rfq-intake/internal/common/database"
	"rfq-intake/internal/common/logger"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func vendorRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "name", "category_slug", "county", "town",
		"email", "phone", "rating", "active", "over_capacity",
	})
}

func TestPostgresDirectory_FindCandidates(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, name, category_slug`).
		WithArgs("plumbing", "Galway").
		WillReturnRows(vendorRows().
			AddRow("v-001", "Atlantic Plumbing", "plumbing", "Galway", "Clifden",
				"info@atlantic.example", "+353871234567", 4.5, true, false).
			AddRow("v-002", "City Pipes", "plumbing", "Galway", "Galway",
				"", "", nil, true, false))

	dir := NewPostgresDirectory(&database.PostgresClient{DB: db}, logger.NewTestLogger(t))
	vendors, err := dir.FindCandidates(context.Background(), "plumbing", "Galway")

	assert.NoError(t, err)
	assert.Len(t, vendors, 2)
	assert.Equal(t, "v-001", vendors[0].ID)
	assert.NotNil(t, vendors[0].Rating)
	assert.Equal(t, 4.5, *vendors[0].Rating)
	assert.Nil(t, vendors[1].Rating)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresDirectory_FindCandidates_Empty(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, name, category_slug`).
		WithArgs("plumbing", "Leitrim").
		WillReturnRows(vendorRows())

	dir := NewPostgresDirectory(&database.PostgresClient{DB: db}, logger.NewTestLogger(t))
	vendors, err := dir.FindCandidates(context.Background(), "plumbing", "Leitrim")

	assert.NoError(t, err)
	assert.Empty(t, vendors)
}

func TestPostgresDirectory_FindCandidates_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, name, category_slug`).
		WillReturnError(errors.New("connection refused"))

	dir := NewPostgresDirectory(&database.PostgresClient{DB: db}, logger.NewTestLogger(t))
	_, err = dir.FindCandidates(context.Background(), "plumbing", "Galway")

	assert.Error(t, err)
}

package database

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDSN(t *testing.T) {
	assert.Equal(t, "root@tcp(db:3306)/venue?charset=utf8mb4&parseTime=true&loc=UTC", DSN("root", "", "db", "3306", "venue"))
	assert.Equal(t, "app:pw@tcp(db:3306)/venue?charset=utf8mb4&parseTime=true&loc=UTC", DSN("app", "pw", "db", "3306", "venue"))
}

func TestMigrateRunsEveryStatement(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	for range schema {
		mock.ExpectExec("CREATE TABLE IF NOT EXISTS").WillReturnResult(sqlmock.NewResult(0, 0))
	}
	require.NoError(t, Migrate(context.Background(), db))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrateStopsOnError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS users").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS halls").WillReturnError(errors.New("denied"))

	err = Migrate(context.Background(), db)
	assert.ErrorContains(t, err, "migrate step 2")
}

package database

import (
	"context"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDSN(t *testing.T) {
	dsn := DSN("hotel", "pw", "db", "3306", "hotel")
	assert.True(t, strings.HasPrefix(dsn, "hotel:pw@tcp(db:3306)/hotel?"), dsn)
	assert.Contains(t, dsn, "parseTime=true")
	assert.Contains(t, dsn, "charset=utf8mb4")
}

func TestStatementsCoverEveryTable(t *testing.T) {
	stmts := Statements()
	require.Len(t, stmts, 8)
	for i, table := range []string{"users", "refresh_tokens", "rooms", "events", "inventory_items", "reservations", "baskets", "basket_items"} {
		assert.Contains(t, stmts[i], "CREATE TABLE IF NOT EXISTS "+table+" (")
	}
}

func TestMigrateExecutesInOrder(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	for range Statements() {
		mock.ExpectExec("CREATE TABLE IF NOT EXISTS").WillReturnResult(sqlmock.NewResult(0, 0))
	}
	require.NoError(t, Migrate(context.Background(), db))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeedSkipsNonEmptyCatalogue(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	for range demoUsers {
		mock.ExpectExec("INSERT IGNORE INTO users").WillReturnResult(sqlmock.NewResult(0, 0))
	}
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM rooms`).WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(5))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM events`).WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(0))
	for range demoEvents {
		mock.ExpectExec("INSERT INTO events").WillReturnResult(sqlmock.NewResult(1, 1))
	}

	require.NoError(t, Seed(context.Background(), db, 4))
	assert.NoError(t, mock.ExpectationsWereMet())
}

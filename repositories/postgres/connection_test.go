package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDB_InitSchema(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS movies`).WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, db.InitSchema(context.Background()))
}

func TestDB_ResetSchema(t *testing.T) {
	t.Run("drops, recreates and seeds in one transaction", func(t *testing.T) {
		db, mock := newMockDB(t)

		mock.ExpectBegin()
		mock.ExpectExec(`DROP TABLE IF EXISTS movies`).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(`CREATE TABLE IF NOT EXISTS movies`).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(`INSERT INTO actors \(name, age, gender\) VALUES \('Christian Bale', 48, 'Male'\)`).
			WillReturnResult(sqlmock.NewResult(1, 2))
		mock.ExpectCommit()

		assert.NoError(t, db.ResetSchema(context.Background()))
	})

	t.Run("rolls back when a statement fails", func(t *testing.T) {
		db, mock := newMockDB(t)

		mock.ExpectBegin()
		mock.ExpectExec(`DROP TABLE`).WillReturnError(errors.New("permission denied"))
		mock.ExpectRollback()

		err := db.ResetSchema(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to reset schema")
	})
}

func TestDB_HealthCheck(t *testing.T) {
	conn, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer conn.Close()
	db := NewDBFromConn(conn, zap.NewNop())

	mock.ExpectPing()
	mock.ExpectQuery("SELECT 1").WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))
	assert.NoError(t, db.HealthCheck(context.Background()))

	mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	err = db.HealthCheck(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database health check failed")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryFactory(t *testing.T) {
	db, mock := newMockDB(t)
	factory := NewRepositoryFactoryFromDB(db, zap.NewNop())

	repos := factory.NewRepositories()
	assert.NotNil(t, repos.Movies)
	assert.NotNil(t, repos.Actors)
	assert.NotNil(t, factory.GetTransactionManager())
	assert.Same(t, db, factory.GetDB())

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS movies`).WillReturnResult(sqlmock.NewResult(0, 0))
	assert.NoError(t, factory.PrepareSchema(context.Background(), false))
}

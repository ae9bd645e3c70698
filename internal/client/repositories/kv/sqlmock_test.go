package kv

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func TestSQLiteStore_DriverErrorsAreWrapped(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("disk I/O error")

	tests := []struct {
		name   string
		expect func(m sqlmock.Sqlmock)
		call   func(s *SQLiteStore) error
		msg    string
	}{
		{
			name:   "get",
			expect: func(m sqlmock.Sqlmock) { m.ExpectQuery(`SELECT value FROM kv`).WithArgs("login_attempts").WillReturnError(boom) },
			call: func(s *SQLiteStore) error {
				_, err := s.Get(ctx, "login_attempts")
				return err
			},
			msg: "failed to get kv[login_attempts]",
		},
		{
			name:   "set",
			expect: func(m sqlmock.Sqlmock) { m.ExpectExec(`INSERT INTO kv`).WillReturnError(boom) },
			call:   func(s *SQLiteStore) error { return s.Set(ctx, "login_attempts", []byte("{}")) },
			msg:    "failed to set kv[login_attempts]",
		},
		{
			name:   "delete",
			expect: func(m sqlmock.Sqlmock) { m.ExpectExec(`DELETE FROM kv WHERE key`).WithArgs("login_attempts").WillReturnError(boom) },
			call:   func(s *SQLiteStore) error { return s.Delete(ctx, "login_attempts") },
			msg:    "failed to delete kv[login_attempts]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newSQLMockDB(t)
			tt.expect(mock)

			err := tt.call(NewSQLiteStore(db))

			require.ErrorIs(t, err, boom)
			require.ErrorContains(t, err, tt.msg)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSQLiteStore_GetMissingIsNil(t *testing.T) {
	db, mock := newSQLMockDB(t)
	mock.ExpectQuery(`SELECT value FROM kv`).WithArgs("nope").WillReturnError(sql.ErrNoRows)

	v, err := NewSQLiteStore(db).Get(context.Background(), "nope")
	require.NoError(t, err)
	require.Nil(t, v)
	require.NoError(t, mock.ExpectationsWereMet())
}

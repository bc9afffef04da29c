package localstore

import (
	"context"
	"database/sql"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
)

func newMockStore(t *testing.T) (*Postgres, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewPostgres(sqlx.NewDb(db, "postgres")), mock
}

func TestPostgres_Get(t *testing.T) {
	s, mock := newMockStore(t)

	rows := sqlmock.NewRows([]string{"value"}).AddRow([]byte(`{"lang":"en"}`))
	mock.ExpectQuery(`SELECT value FROM local_kv WHERE key = \$1`).
		WithArgs("prefs.language").
		WillReturnRows(rows)

	v, ok, err := s.Get(context.Background(), "prefs.language")
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if string(v) != `{"lang":"en"}` {
		t.Fatalf("value = %q", v)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestPostgres_GetMissing(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT value FROM local_kv WHERE key = \$1`).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, ok, err := s.Get(context.Background(), "missing")
	if err != nil || ok {
		t.Fatalf("missing key: ok=%v err=%v", ok, err)
	}
}

func TestPostgres_PutUpserts(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(`INSERT INTO local_kv`).
		WithArgs("cart.items", []byte(`[]`), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := s.Put(context.Background(), "cart.items", []byte(`[]`)); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestPostgres_Delete(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(`DELETE FROM local_kv WHERE key = \$1`).
		WithArgs("auth.token").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := s.Delete(context.Background(), "auth.token"); err != nil {
		t.Fatalf("delete: %v", err)
	}
}

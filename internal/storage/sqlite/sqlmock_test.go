package sqlite

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/mmynk/shoplist/internal/storage"
)

func newMockStore(t *testing.T) (*SQLiteStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return newWithDB(db), mock
}

func TestRunMigrations(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to create sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta(schema)).WillReturnResult(sqlmock.NewResult(0, 0))
	if err := runMigrations(db); err != nil {
		t.Fatalf("runMigrations failed: %v", err)
	}

	mock.ExpectExec("CREATE TABLE").WillReturnError(errors.New("disk full"))
	if err := runMigrations(db); err == nil {
		t.Error("Expected migration error to be returned")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Unmet expectations: %v", err)
	}
}

func TestRunInTx(t *testing.T) {
	ctx := context.Background()

	t.Run("commits and shares the transaction with nested calls", func(t *testing.T) {
		store, mock := newMockStore(t)
		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM sessions").WithArgs("s1", "list").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("DELETE FROM sessions").WithArgs("s2", "list").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := store.RunInTx(ctx, func(ctx context.Context) error {
			if err := store.Sessions().Delete(ctx, "s1", "list"); err != nil {
				return err
			}
			return store.RunInTx(ctx, func(ctx context.Context) error {
				return store.Sessions().Delete(ctx, "s2", "list")
			})
		})
		if err != nil {
			t.Fatalf("RunInTx failed: %v", err)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("Unmet expectations: %v", err)
		}
	})

	t.Run("rolls back on error", func(t *testing.T) {
		store, mock := newMockStore(t)
		boom := errors.New("boom")
		mock.ExpectBegin()
		mock.ExpectRollback()

		err := store.RunInTx(ctx, func(ctx context.Context) error { return boom })
		if !errors.Is(err, boom) {
			t.Fatalf("Expected boom, got %v", err)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("Unmet expectations: %v", err)
		}
	})

	t.Run("rolls back and re-panics", func(t *testing.T) {
		store, mock := newMockStore(t)
		mock.ExpectBegin()
		mock.ExpectRollback()

		defer func() {
			if r := recover(); r == nil {
				t.Error("Expected panic to propagate")
			}
			if err := mock.ExpectationsWereMet(); err != nil {
				t.Errorf("Unmet expectations: %v", err)
			}
		}()
		_ = store.RunInTx(ctx, func(ctx context.Context) error { panic("boom") })
	})
}

func TestMapError_NoRows(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectQuery("SELECT (.+) FROM items WHERE id = ?").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(itemColumns))

	_, err := store.GetItem(context.Background(), "missing")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestMapError_ContextPassesThrough(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectExec("DELETE FROM sessions").WillReturnError(context.DeadlineExceeded)

	err := store.Sessions().Delete(context.Background(), "s1", "list")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Expected DeadlineExceeded, got %v", err)
	}
	if errors.Is(err, storage.ErrNotFound) {
		t.Error("Context errors must not map to storage errors")
	}
}

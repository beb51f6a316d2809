package zsq

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestTX(t *testing.T) {
	ctx := context.Background()

	t.Run("commit", func(t *testing.T) {
		db, mock := newMock(t, DialectSQLite, nil)
		mock.ExpectBegin()
		mock.ExpectPrepare(`insert into t values (?)`).
			ExpectExec().
			WithArgs(int64(1)).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		err := db.TX(ctx, func(ctx context.Context, tx *Tx) error {
			res, err := tx.Exec(ctx, `insert into t values ?`, List(1))
			if err != nil {
				return err
			}
			return res.Close()
		})
		if err != nil {
			t.Fatal(err)
		}
	})

	t.Run("rollback", func(t *testing.T) {
		boom := errors.New("oh noes")
		db, mock := newMock(t, DialectSQLite, nil)
		mock.ExpectBegin()
		mock.ExpectPrepare(`insert into t values (?)`).
			ExpectExec().
			WithArgs(int64(1)).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectRollback()

		// One successful write, then a failure: the transaction must roll
		// back and the error must come back untouched.
		err := db.TX(ctx, func(ctx context.Context, tx *Tx) error {
			res, err := tx.Exec(ctx, `insert into t values ?`, List(1))
			if err != nil {
				return err
			}
			res.Close()
			return boom
		})
		if err != boom {
			t.Fatalf("error was changed: %v", err)
		}
	})

	t.Run("begin error", func(t *testing.T) {
		boom := errors.New("connection refused")
		db, mock := newMock(t, DialectSQLite, nil)
		mock.ExpectBegin().WillReturnError(boom)

		err := db.TX(ctx, func(context.Context, *Tx) error { return nil })
		if !errors.Is(err, boom) {
			t.Fatalf("wrong error: %v", err)
		}
		if !strings.Contains(err.Error(), "zsq.TX") {
			t.Errorf("unhelpful error: %v", err)
		}
	})

	t.Run("commit error", func(t *testing.T) {
		boom := errors.New("disk I/O error")
		db, mock := newMock(t, DialectSQLite, nil)
		mock.ExpectBegin()
		mock.ExpectCommit().WillReturnError(boom)

		err := db.TX(ctx, func(context.Context, *Tx) error { return nil })
		if !errors.Is(err, boom) {
			t.Fatalf("wrong error: %v", err)
		}
		if !strings.Contains(err.Error(), "zsq.TX commit") {
			t.Errorf("unhelpful error: %v", err)
		}
	})

	t.Run("malformed arguments roll back", func(t *testing.T) {
		db, mock := newMock(t, DialectSQLite, nil)
		mock.ExpectBegin()
		mock.ExpectRollback()

		err := db.TX(ctx, func(ctx context.Context, tx *Tx) error {
			_, err := tx.Exec(ctx, `insert into t values (?, ?)`, V(1))
			return err
		})
		if !errors.Is(err, ErrMalformedArguments) {
			t.Fatalf("wrong error: %v", err)
		}
	})
}

package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/parleyhq/parley/internal/domain"
)

type fakeRow struct {
	scan func(dest ...any) error
}

func (r fakeRow) Scan(dest ...any) error { return r.scan(dest...) }

type fakeRows struct {
	turns []domain.ChatTurn
	pos   int
	err   error
}

func (r *fakeRows) Close()                                       {}
func (r *fakeRows) Err() error                                   { return r.err }
func (r *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *fakeRows) Values() ([]any, error)                       { return nil, nil }
func (r *fakeRows) RawValues() [][]byte                          { return nil }
func (r *fakeRows) Conn() *pgx.Conn                              { return nil }

func (r *fakeRows) Next() bool {
	if r.pos >= len(r.turns) {
		return false
	}
	r.pos++
	return true
}

func (r *fakeRows) Scan(dest ...any) error {
	turn := r.turns[r.pos-1]
	*dest[0].(*string) = turn.UserID
	*dest[1].(*string) = turn.Message
	*dest[2].(*string) = turn.Reply
	*dest[3].(*time.Time) = turn.CreatedAt
	return nil
}

type fakeDB struct {
	row  fakeRow
	rows *fakeRows
	exec func(sql string, args []any) error

	execSQL  []string
	execArgs [][]any
}

func (db *fakeDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	db.execSQL = append(db.execSQL, sql)
	db.execArgs = append(db.execArgs, args)
	if db.exec != nil {
		return pgconn.CommandTag{}, db.exec(sql, args)
	}
	return pgconn.CommandTag{}, nil
}

func (db *fakeDB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return db.rows, nil
}

func (db *fakeDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return db.row
}

func TestFindUserByUserID(t *testing.T) {
	t.Run("existing user", func(t *testing.T) {
		db := &fakeDB{row: fakeRow{scan: func(dest ...any) error {
			*dest[0].(*string) = "ana_b_x_com"
			*dest[1].(*string) = "Ana"
			*dest[2].(*string) = "ana.b@x.com"
			return nil
		}}}

		user, err := NewService(db).FindUserByUserID(context.Background(), "ana_b_x_com")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if user.UserID != "ana_b_x_com" || user.Name != "Ana" || user.Email != "ana.b@x.com" {
			t.Errorf("unexpected user: %+v", user)
		}
	})

	t.Run("no rows maps to ErrUserNotFound", func(t *testing.T) {
		db := &fakeDB{row: fakeRow{scan: func(dest ...any) error {
			return pgx.ErrNoRows
		}}}

		_, err := NewService(db).FindUserByUserID(context.Background(), "ghost")
		if !errors.Is(err, domain.ErrUserNotFound) {
			t.Errorf("expected ErrUserNotFound, got %v", err)
		}
	})

	t.Run("other errors propagate", func(t *testing.T) {
		db := &fakeDB{row: fakeRow{scan: func(dest ...any) error {
			return errors.New("connection reset")
		}}}

		_, err := NewService(db).FindUserByUserID(context.Background(), "ana_b_x_com")
		if err == nil || errors.Is(err, domain.ErrUserNotFound) {
			t.Errorf("expected storage error, got %v", err)
		}
	})
}

func TestInsertChatTurn(t *testing.T) {
	db := &fakeDB{}

	err := NewService(db).InsertChatTurn(context.Background(), "ana_b_x_com", "hello", "hi there")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(db.execArgs) != 1 {
		t.Fatalf("expected one exec, got %d", len(db.execArgs))
	}
	want := []any{"ana_b_x_com", "hello", "hi there"}
	for i, arg := range db.execArgs[0] {
		if arg != want[i] {
			t.Errorf("arg %d: expected %v, got %v", i, want[i], arg)
		}
	}
}

func TestListChatTurns(t *testing.T) {
	t.Run("preserves insertion order", func(t *testing.T) {
		db := &fakeDB{rows: &fakeRows{turns: []domain.ChatTurn{
			{UserID: "u", Message: "first", Reply: "r1"},
			{UserID: "u", Message: "second", Reply: "r2"},
		}}}

		turns, err := NewService(db).ListChatTurns(context.Background(), "u")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(turns) != 2 {
			t.Fatalf("expected 2 turns, got %d", len(turns))
		}
		if turns[0].Message != "first" || turns[1].Message != "second" {
			t.Errorf("order not preserved: %+v", turns)
		}
	})

	t.Run("no turns yields empty slice", func(t *testing.T) {
		db := &fakeDB{rows: &fakeRows{}}

		turns, err := NewService(db).ListChatTurns(context.Background(), "u")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if turns == nil || len(turns) != 0 {
			t.Errorf("expected empty non-nil slice, got %#v", turns)
		}
	})
}

package store

import (
	"context"
	"errors"
	"testing"

	"user-service/internal/database"
	"user-service/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

/* ---------- 假實作 ---------- */

// fakeUserRow 支援兩種 Scan 呼叫場景：
// 1) len(dest)==5 → GetUserByID / GetUserByEmail
// 2) len(dest)==1 → CreateUser (id)
type fakeUserRow struct {
	scanErr error
	user    *model.User
}

func (r *fakeUserRow) Scan(dest ...any) error {
	if r.scanErr != nil {
		return r.scanErr
	}
	u := r.user
	switch len(dest) {
	case 5:
		*dest[0].(*int) = u.ID
		*dest[1].(*string) = u.Email
		*dest[2].(*string) = u.FirstName
		*dest[3].(*string) = u.LastName
		*dest[4].(*string) = u.HashedPassword
	case 1:
		*dest[0].(*int) = u.ID
	default:
		panic("fakeUserRow.Scan: unexpected dest count")
	}
	return nil
}

func uniqueErr() error {
	return &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key", Message: "duplicate key value"}
}

/* ---------- 完整測試 ---------- */

func TestUserStore(t *testing.T) {
	sample := &model.User{
		ID:             7,
		Email:          "alice@example.com",
		FirstName:      "Alice",
		LastName:       "Liddell",
		HashedPassword: "hash123",
	}

	/* --- GetUserByID --- */
	t.Run("GetUserByID success", func(t *testing.T) {
		var gotArgs []any
		db := &database.FakeDB{
			QueryRowFn: func(_ context.Context, _ string, args ...any) pgx.Row {
				gotArgs = args
				return &fakeUserRow{user: sample}
			},
		}
		u, err := GetUserByID(context.Background(), db, 7)
		require.NoError(t, err)
		require.Equal(t, *sample, *u)
		require.Equal(t, []any{7}, gotArgs)
	})

	t.Run("GetUserByID not found", func(t *testing.T) {
		db := &database.FakeDB{
			QueryRowFn: func(_ context.Context, _ string, _ ...any) pgx.Row {
				return &fakeUserRow{scanErr: pgx.ErrNoRows}
			},
		}
		u, err := GetUserByID(context.Background(), db, 999)
		require.ErrorIs(t, err, ErrNotFound)
		require.Nil(t, u)
	})

	t.Run("GetUserByID db error", func(t *testing.T) {
		db := &database.FakeDB{
			QueryRowFn: func(_ context.Context, _ string, _ ...any) pgx.Row {
				return &fakeUserRow{scanErr: errors.New("conn reset")}
			},
		}
		_, err := GetUserByID(context.Background(), db, 1)
		require.Error(t, err)
		require.NotErrorIs(t, err, ErrNotFound)
	})

	/* --- GetUserByEmail --- */
	t.Run("GetUserByEmail success", func(t *testing.T) {
		db := &database.FakeDB{
			QueryRowFn: func(_ context.Context, _ string, args ...any) pgx.Row {
				require.Equal(t, []any{"alice@example.com"}, args)
				return &fakeUserRow{user: sample}
			},
		}
		u, err := GetUserByEmail(context.Background(), db, "alice@example.com")
		require.NoError(t, err)
		require.Equal(t, 7, u.ID)
	})

	t.Run("GetUserByEmail not found", func(t *testing.T) {
		db := &database.FakeDB{
			QueryRowFn: func(_ context.Context, _ string, _ ...any) pgx.Row {
				return &fakeUserRow{scanErr: pgx.ErrNoRows}
			},
		}
		u, err := GetUserByEmail(context.Background(), db, "bob@example.com")
		require.ErrorIs(t, err, ErrNotFound)
		require.Nil(t, u)
	})

	/* --- CreateUser --- */
	t.Run("CreateUser success", func(t *testing.T) {
		newUser := &model.User{Email: "bob@example.com", FirstName: "Bob", LastName: "B", HashedPassword: "pwdhash"}
		db := &database.FakeDB{
			QueryRowFn: func(_ context.Context, _ string, args ...any) pgx.Row {
				require.Equal(t, []any{"bob@example.com", "Bob", "B", "pwdhash"}, args)
				return &fakeUserRow{user: &model.User{ID: 42}}
			},
		}
		created, err := CreateUser(context.Background(), db, newUser)
		require.NoError(t, err)
		require.Equal(t, 42, created.ID)
		require.Equal(t, "bob@example.com", created.Email)
	})

	t.Run("CreateUser duplicate", func(t *testing.T) {
		db := &database.FakeDB{
			QueryRowFn: func(_ context.Context, _ string, _ ...any) pgx.Row {
				return &fakeUserRow{scanErr: uniqueErr()}
			},
		}
		_, err := CreateUser(context.Background(), db, &model.User{})
		require.ErrorIs(t, err, ErrDuplicateKey)
		var pgErr *pgconn.PgError
		require.ErrorAs(t, err, &pgErr)
		require.Contains(t, err.Error(), "users_email_key")
	})

	t.Run("CreateUser error", func(t *testing.T) {
		db := &database.FakeDB{
			QueryRowFn: func(_ context.Context, _ string, _ ...any) pgx.Row {
				return &fakeUserRow{scanErr: errors.New("insert failed")}
			},
		}
		_, err := CreateUser(context.Background(), db, &model.User{})
		require.Error(t, err)
		require.NotErrorIs(t, err, ErrDuplicateKey)
	})

	/* --- UpdateUser --- */
	t.Run("UpdateUser success", func(t *testing.T) {
		db := &database.FakeDB{
			ExecFn: func(_ context.Context, _ string, args ...any) (pgconn.CommandTag, error) {
				require.Equal(t, []any{sample.Email, sample.FirstName, sample.LastName, sample.ID}, args)
				return pgconn.NewCommandTag("UPDATE 1"), nil
			},
		}
		require.NoError(t, UpdateUser(context.Background(), db, sample))
	})

	t.Run("UpdateUser no rows", func(t *testing.T) {
		db := &database.FakeDB{
			ExecFn: func(_ context.Context, _ string, _ ...any) (pgconn.CommandTag, error) {
				return pgconn.NewCommandTag("UPDATE 0"), nil
			},
		}
		require.ErrorIs(t, UpdateUser(context.Background(), db, sample), ErrNotFound)
	})

	t.Run("UpdateUser duplicate", func(t *testing.T) {
		db := &database.FakeDB{
			ExecFn: func(_ context.Context, _ string, _ ...any) (pgconn.CommandTag, error) {
				return pgconn.CommandTag{}, uniqueErr()
			},
		}
		require.ErrorIs(t, UpdateUser(context.Background(), db, sample), ErrDuplicateKey)
	})

	t.Run("UpdateUser error", func(t *testing.T) {
		db := &database.FakeDB{
			ExecFn: func(_ context.Context, _ string, _ ...any) (pgconn.CommandTag, error) {
				return pgconn.CommandTag{}, errors.New("update failed")
			},
		}
		require.Error(t, UpdateUser(context.Background(), db, sample))
	})
}

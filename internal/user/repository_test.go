package user

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func TestRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRepository(db)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs(sqlmock.AnyArg(), "a@b.com", "hashed", "customer").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password", "role", "created_at", "updated_at"}).
			AddRow("u-1", "a@b.com", "hashed", "customer", now, now))

	u, err := repo.Create(context.Background(), "a@b.com", "hashed", "customer")
	require.NoError(t, err)
	assert.Equal(t, "u-1", u.ID)
	assert.Equal(t, "a@b.com", u.Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_FindByEmail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRepository(db)
	now := time.Now()

	t.Run("WithSellerProfile", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("SELECT u.id, u.email, u.password, u.role, s.id")).
			WithArgs("s@b.com").
			WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password", "role", "seller_id", "created_at", "updated_at"}).
				AddRow("u-2", "s@b.com", "hashed", "seller", "seller-1", now, now))

		u, err := repo.FindByEmail(context.Background(), "s@b.com")
		require.NoError(t, err)
		require.NotNil(t, u.SellerID)
		assert.Equal(t, "seller-1", *u.SellerID)
	})

	t.Run("WithoutSellerProfile", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("SELECT u.id, u.email, u.password, u.role, s.id")).
			WithArgs("a@b.com").
			WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password", "role", "seller_id", "created_at", "updated_at"}).
				AddRow("u-1", "a@b.com", "hashed", "customer", nil, now, now))

		u, err := repo.FindByEmail(context.Background(), "a@b.com")
		require.NoError(t, err)
		assert.Nil(t, u.SellerID)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("SELECT u.id, u.email, u.password, u.role, s.id")).
			WithArgs("missing@b.com").
			WillReturnError(sql.ErrNoRows)

		_, err := repo.FindByEmail(context.Background(), "missing@b.com")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestRepository_CreateSellerProfile(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRepository(db)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO seller_profiles")).
		WithArgs(sqlmock.AnyArg(), "u-1", "Hamper Haven").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "store_name", "approved", "created_at", "updated_at"}).
			AddRow("seller-1", "u-1", "Hamper Haven", false, now, now))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET role")).
		WithArgs("seller", "u-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	p, err := repo.CreateSellerProfile(context.Background(), "u-1", "Hamper Haven")
	require.NoError(t, err)
	assert.Equal(t, "seller-1", p.ID)
	assert.False(t, p.Approved)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ApproveSellerProfile(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta("UPDATE seller_profiles SET approved")).
			WithArgs("seller-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.ApproveSellerProfile(context.Background(), "seller-1"))
	})

	t.Run("Missing", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta("UPDATE seller_profiles SET approved")).
			WithArgs("seller-404").
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.ApproveSellerProfile(context.Background(), "seller-404"), ErrUserNotFound)
	})
}

package wishlist

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_Add(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewRepository(db)

	t.Run("Inserts", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO wishlist_items")).
			WithArgs(sqlmock.AnyArg(), "u-1", "prod-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Add(context.Background(), "u-1", "prod-1"))
	})

	t.Run("DuplicateIsNoop", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO wishlist_items")).
			WithArgs(sqlmock.AnyArg(), "u-1", "prod-1").
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.NoError(t, repo.Add(context.Background(), "u-1", "prod-1"))
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Remove(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM wishlist_items")).
		WithArgs("u-1", "prod-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.Remove(context.Background(), "u-1", "prod-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewRepository(db)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, user_id, product_id, created_at FROM wishlist_items")).
		WithArgs("u-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "product_id", "created_at"}).
			AddRow("w-2", "u-1", "prod-2", now).
			AddRow("w-1", "u-1", "prod-1", now.Add(-time.Hour)))

	items, err := repo.List(context.Background(), "u-1")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "prod-2", items[0].ProductID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

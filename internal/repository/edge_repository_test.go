package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLikeRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("exists", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewLikeRepository(db)

		mock.ExpectQuery(`SELECT EXISTS \(SELECT 1 FROM likes WHERE post_id = \$1 AND user_id = \$2\)`).
			WithArgs("p1", "u1").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		exists, err := repo.Exists(ctx, "p1", "u1")

		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("insert writes a row", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewLikeRepository(db)

		mock.ExpectExec(`INSERT INTO likes \(post_id, user_id, created_at\) VALUES \(\$1, \$2, now\(\)\) ON CONFLICT DO NOTHING`).
			WithArgs("p1", "u1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		inserted, err := repo.Insert(ctx, "p1", "u1")

		require.NoError(t, err)
		assert.True(t, inserted)
	})

	t.Run("insert of existing edge is a no-op", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewLikeRepository(db)

		mock.ExpectExec(`INSERT INTO likes`).
			WithArgs("p1", "u1").
			WillReturnResult(sqlmock.NewResult(0, 0))

		inserted, err := repo.Insert(ctx, "p1", "u1")

		require.NoError(t, err)
		assert.False(t, inserted)
	})

	t.Run("insert on missing post", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewLikeRepository(db)

		mock.ExpectExec(`INSERT INTO likes`).WillReturnError(&pq.Error{Code: "23503"})

		_, err := repo.Insert(ctx, "nope", "u1")

		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("delete reports removal", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewLikeRepository(db)

		mock.ExpectExec(`DELETE FROM likes WHERE post_id = \$1 AND user_id = \$2`).
			WithArgs("p1", "u1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`DELETE FROM likes`).
			WithArgs("p1", "u1").
			WillReturnResult(sqlmock.NewResult(0, 0))

		deleted, err := repo.Delete(ctx, "p1", "u1")
		require.NoError(t, err)
		assert.True(t, deleted)

		deleted, err = repo.Delete(ctx, "p1", "u1")
		require.NoError(t, err)
		assert.False(t, deleted)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestFollowRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("uses follow columns", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewFollowRepository(db)

		mock.ExpectExec(`INSERT INTO follows \(follower_id, following_id, created_at\)`).
			WithArgs("a", "b").
			WillReturnResult(sqlmock.NewResult(0, 1))

		inserted, err := repo.Insert(ctx, "a", "b")

		require.NoError(t, err)
		assert.True(t, inserted)
	})

	t.Run("stats", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewFollowRepository(db)

		mock.ExpectQuery(`SELECT\s+\(SELECT COUNT\(\*\) FROM follows WHERE following_id = \$1\) AS followers`).
			WithArgs("u1").
			WillReturnRows(sqlmock.NewRows([]string{"followers", "following"}).AddRow(12, 3))

		stats, err := repo.Stats(ctx, "u1")

		require.NoError(t, err)
		assert.Equal(t, 12, stats.Followers)
		assert.Equal(t, 3, stats.Following)
	})

	t.Run("stats error", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewFollowRepository(db)

		mock.ExpectQuery(`FROM follows`).WillReturnError(errors.New("down"))

		_, err := repo.Stats(ctx, "u1")

		assert.Error(t, err)
	})
}
